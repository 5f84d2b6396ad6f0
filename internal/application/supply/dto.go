package supply

import (
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/shopspring/decimal"
)

// RecipeLineRequest represents one ingredient line in a create or
// update request
type RecipeLineRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateSupplyRequest represents a request to create a new supply
type CreateSupplyRequest struct {
	Name             string              `json:"name" binding:"required,min=1,max=200"`
	Kind             string              `json:"kind" binding:"required,oneof=purchased composed"`
	Unit             string              `json:"unit" binding:"omitempty,max=10"`
	PurchasePrice    *decimal.Decimal    `json:"purchase_price"`
	PurchaseQuantity *decimal.Decimal    `json:"purchase_quantity"`
	RecipeLines      []RecipeLineRequest `json:"recipe_lines"`
	YieldAmount      *decimal.Decimal    `json:"yield_amount"`
	YieldUnit        string              `json:"yield_unit" binding:"omitempty,max=10"`
}

// UpdateSupplyRequest represents a request to update a supply. The kind
// is fixed at creation; everything else can change.
type UpdateSupplyRequest struct {
	Name             *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Unit             *string             `json:"unit" binding:"omitempty,max=10"`
	PurchasePrice    *decimal.Decimal    `json:"purchase_price"`
	PurchaseQuantity *decimal.Decimal    `json:"purchase_quantity"`
	RecipeLines      []RecipeLineRequest `json:"recipe_lines"`
	YieldAmount      *decimal.Decimal    `json:"yield_amount"`
	YieldUnit        *string             `json:"yield_unit" binding:"omitempty,max=10"`
}

// RecipeLineResponse represents an ingredient line in API responses
type RecipeLineResponse struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Position     int             `json:"position"`
}

// SupplyResponse represents a supply in API responses
type SupplyResponse struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	Kind             string               `json:"kind"`
	Unit             string               `json:"unit,omitempty"`
	PurchasePrice    *decimal.Decimal     `json:"purchase_price,omitempty"`
	PurchaseQuantity *decimal.Decimal     `json:"purchase_quantity,omitempty"`
	RecipeLines      []RecipeLineResponse `json:"recipe_lines,omitempty"`
	YieldAmount      *decimal.Decimal     `json:"yield_amount,omitempty"`
	YieldUnit        string               `json:"yield_unit,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Version          int                  `json:"version"`
}

// Cost status values
const (
	CostStatusKnown    = "known"
	CostStatusUnknown  = "unknown"
	CostStatusCircular = "circular"
)

// CostResponse represents a resolved per-unit cost. Cost is null
// unless the status is known.
type CostResponse struct {
	SupplyID uuid.UUID `json:"supply_id"`
	Cost     *string   `json:"cost"`
	Status   string    `json:"status"`
}

// ToSupplyResponse converts a domain supply to a response DTO
func ToSupplyResponse(s *supply.Supply) *SupplyResponse {
	resp := &SupplyResponse{
		ID:               s.ID,
		Name:             s.Name,
		Kind:             string(s.Kind),
		Unit:             s.Unit.Code(),
		PurchasePrice:    s.PurchasePrice,
		PurchaseQuantity: s.PurchaseQuantity,
		YieldAmount:      s.YieldAmount,
		YieldUnit:        s.YieldUnit.Code(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
	for _, line := range s.RecipeLines {
		resp.RecipeLines = append(resp.RecipeLines, RecipeLineResponse{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Position:     line.Position,
		})
	}
	return resp
}

// ToCostResponse converts a resolved cost to a response DTO
func ToCostResponse(id uuid.UUID, cost supply.UnitCost, circular bool) CostResponse {
	resp := CostResponse{SupplyID: id, Status: CostStatusUnknown}
	switch {
	case circular:
		resp.Status = CostStatusCircular
	case cost.Known():
		rendered := cost.StringFixed(2)
		resp.Cost = &rendered
		resp.Status = CostStatusKnown
	}
	return resp
}
