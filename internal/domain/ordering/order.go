package ordering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid, OrderStatusCancelled:
		return false
	}
	return false
}

// PaymentMethod represents how an order was settled
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line for a menu item
func NewOrderItem(menuItemID uuid.UUID, name string, unitPrice, quantity decimal.Decimal) (OrderItem, error) {
	if menuItemID == uuid.Nil {
		return OrderItem{}, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item ID cannot be empty")
	}
	if name == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_MENU_ITEM", "Menu item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return OrderItem{
		ID:         uuid.New(),
		MenuItemID: menuItemID,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		Amount:     quantity.Mul(unitPrice),
	}, nil
}

// Order represents a placed order. Its number is allocated by the
// sequencer inside the creation transaction and never reused.
type Order struct {
	shared.BaseAggregateRoot
	Number         string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountReason string          `gorm:"type:text"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20)"`
	OpenAccountID  *uuid.UUID      `gorm:"type:uuid;index"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order with the given allocated number
func NewOrder(number string, items []OrderItem, openAccountID *uuid.UUID) (*Order, error) {
	if _, ok := ParseOrderNumber(number); !ok {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must have the form #N")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order requires at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		OpenAccountID:     openAccountID,
		Status:            OrderStatusPending,
		Discount:          decimal.Zero,
	}

	total := decimal.Zero
	order.Items = make([]OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
		total = total.Add(item.Amount)
	}
	order.Total = total

	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// ApplyDiscount reduces the total by amount, accumulates the discount
// and appends the audit note to any existing reason. The caller is
// responsible for clipping amount to the order's total.
func (o *Order) ApplyDiscount(amount decimal.Decimal, note string) error {
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount amount must be positive")
	}
	if amount.GreaterThan(o.Total) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the order total")
	}

	o.Total = o.Total.Sub(amount)
	o.Discount = o.Discount.Add(amount)
	o.DiscountReason = appendReason(o.DiscountReason, note)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderDiscountAppliedEvent(o, amount))
	return nil
}

// MarkPaid settles a pending order
func (o *Order) MarkPaid(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash, card or transfer")
	}
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.ErrInvalidState
	}

	o.Status = OrderStatusPaid
	o.PaymentMethod = method
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderPaidEvent(o))
	return nil
}

// Cancel voids a pending order
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.ErrInvalidState
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// FormatOrderNumber renders a counter value as a display number
func FormatOrderNumber(n int64) string {
	return fmt.Sprintf("#%d", n)
}

// ParseOrderNumber extracts the numeric suffix from a display number.
// Returns false for anything that is not strictly #N with N >= 1.
func ParseOrderNumber(number string) (int64, bool) {
	suffix, ok := strings.CutPrefix(number, "#")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func appendReason(existing, note string) string {
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return existing + " | " + note
}
