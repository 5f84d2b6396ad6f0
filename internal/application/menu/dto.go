package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// IngredientLineRequest represents one supply reference in a create or
// update request
type IngredientLineRequest struct {
	SupplyID uuid.UUID       `json:"supply_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	Name         string                  `json:"name" binding:"required,min=1,max=200"`
	Description  string                  `json:"description" binding:"max=2000"`
	SellingPrice decimal.Decimal         `json:"selling_price" binding:"required"`
	Ingredients  []IngredientLineRequest `json:"ingredients"`
}

// UpdateMenuItemRequest represents a request to update a menu item
type UpdateMenuItemRequest struct {
	Name         *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string                 `json:"description" binding:"omitempty,max=2000"`
	SellingPrice *decimal.Decimal        `json:"selling_price"`
	Ingredients  []IngredientLineRequest `json:"ingredients"`
	Active       *bool                   `json:"active"`
}

// IngredientLineResponse represents a supply reference in API responses
type IngredientLineResponse struct {
	SupplyID uuid.UUID       `json:"supply_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Position int             `json:"position"`
}

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID           uuid.UUID                `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	SellingPrice decimal.Decimal          `json:"selling_price"`
	Status       string                   `json:"status"`
	Ingredients  []IngredientLineResponse `json:"ingredients,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	Version      int                      `json:"version"`
}

// MenuItemCostResponse represents the costing of a menu item. Both
// figures are null when any ingredient's cost cannot be resolved.
type MenuItemCostResponse struct {
	MenuItemID     uuid.UUID       `json:"menu_item_id"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	IngredientCost *string         `json:"ingredient_cost"`
	Margin         *string         `json:"margin"`
}

// ToMenuItemResponse converts a domain menu item to a response DTO
func ToMenuItemResponse(m *menu.MenuItem) *MenuItemResponse {
	resp := &MenuItemResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		SellingPrice: m.SellingPrice.Amount(),
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Version:      m.Version,
	}
	for _, line := range m.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientLineResponse{
			SupplyID: line.SupplyID,
			Quantity: line.Quantity,
			Position: line.Position,
		})
	}
	return resp
}

// ToMenuItemCostResponse converts a domain item cost to a response DTO
func ToMenuItemCostResponse(m *menu.MenuItem, cost menu.ItemCost) *MenuItemCostResponse {
	resp := &MenuItemCostResponse{
		MenuItemID:   m.ID,
		SellingPrice: m.SellingPrice.Amount(),
	}
	if cost.IngredientCost.Known() {
		rendered := cost.IngredientCost.StringFixed(2)
		resp.IngredientCost = &rendered
	}
	if cost.Margin.Known() {
		rendered := cost.Margin.StringFixed(2)
		resp.Margin = &rendered
	}
	return resp
}
