package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderItemRequest represents one menu item line in an order request
type OrderItemRequest struct {
	MenuItemID uuid.UUID       `json:"menu_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1"`
	OpenAccountID *uuid.UUID         `json:"open_account_id"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   decimal.Decimal `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	Number         string              `json:"number"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	Total          decimal.Decimal     `json:"total"`
	Discount       decimal.Decimal     `json:"discount"`
	DiscountReason string              `json:"discount_reason,omitempty"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	OpenAccountID  *uuid.UUID          `json:"open_account_id,omitempty"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// CreateOpenAccountRequest represents a request to open a tab
type CreateOpenAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// AttachOrderRequest represents a request to attach an order to a tab
type AttachOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// CloseAccountRequest represents a request to close a tab. The discount
// is optional; whatever the tab's orders cannot absorb is dropped.
type CloseAccountRequest struct {
	Discount      *decimal.Decimal `json:"discount"`
	Reason        string           `json:"reason" binding:"max=500"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=cash card transfer"`
}

// OpenAccountResponse represents a tab in API responses
type OpenAccountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CloseAccountResponse summarizes the settlement of a tab
type CloseAccountResponse struct {
	Account         OpenAccountResponse `json:"account"`
	Orders          []OrderResponse     `json:"orders"`
	Total           decimal.Decimal     `json:"total"`
	DiscountApplied decimal.Decimal     `json:"discount_applied"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *ordering.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		Total:          o.Total,
		Discount:       o.Discount,
		DiscountReason: o.DiscountReason,
		PaymentMethod:  string(o.PaymentMethod),
		OpenAccountID:  o.OpenAccountID,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Amount:     item.Amount,
		})
	}
	return resp
}

// ToOpenAccountResponse converts a domain tab to a response DTO
func ToOpenAccountResponse(a *ordering.OpenAccount) *OpenAccountResponse {
	return &OpenAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Status:    string(a.Status),
		ClosedAt:  a.ClosedAt,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
