package supply

import (
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SupplyKind discriminates how a supply acquires its cost
type SupplyKind string

const (
	// SupplyKindPurchased is a raw ingredient priced by an external purchase
	SupplyKindPurchased SupplyKind = "purchased"
	// SupplyKindComposed is a preparation whose cost derives from a recipe
	SupplyKindComposed SupplyKind = "composed"
)

// RecipeLine is one weighted ingredient reference inside a composed
// supply's recipe. Lines are ordered by Position.
type RecipeLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SupplyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position     int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RecipeLine) TableName() string {
	return "supply_recipe_lines"
}

// IsWellFormed reports whether the line carries a usable ingredient
// reference and a positive quantity. Malformed lines are ignored by
// validation and never contribute to cost.
func (l RecipeLine) IsWellFormed() bool {
	return l.IngredientID != uuid.Nil && l.Quantity.IsPositive()
}

// Supply represents a kitchen supply: either a purchased raw ingredient
// or a composed preparation built from other supplies.
// It is the aggregate root for the cost graph.
type Supply struct {
	shared.BaseAggregateRoot
	Name string     `gorm:"type:varchar(200);not null"`
	Kind SupplyKind `gorm:"type:varchar(20);not null;index"`

	// Purchased supplies
	Unit             valueobject.Unit `gorm:"type:varchar(10)"`
	PurchasePrice    *decimal.Decimal `gorm:"type:decimal(18,4)"`
	PurchaseQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`

	// Composed supplies
	RecipeLines []RecipeLine     `gorm:"foreignKey:SupplyID;constraint:OnDelete:CASCADE"`
	YieldAmount *decimal.Decimal `gorm:"type:decimal(18,4)"`
	YieldUnit   valueobject.Unit `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (Supply) TableName() string {
	return "supplies"
}

// NewPurchasedSupply creates a purchased supply
func NewPurchasedSupply(name string, unit valueobject.Unit, price, quantity decimal.Decimal) (*Supply, error) {
	if err := validateSupplyName(name); err != nil {
		return nil, err
	}
	if unit.IsZero() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Purchased supply requires a measurement unit")
	}

	s := &Supply{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              SupplyKindPurchased,
		Unit:              unit,
		PurchasePrice:     &price,
		PurchaseQuantity:  &quantity,
	}
	s.AddDomainEvent(NewSupplyCreatedEvent(s))
	return s, nil
}

// NewComposedSupply creates a composed supply from recipe lines
func NewComposedSupply(name string, lines []RecipeLine, yieldAmount decimal.Decimal, yieldUnit valueobject.Unit) (*Supply, error) {
	if err := validateSupplyName(name); err != nil {
		return nil, err
	}

	s := &Supply{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              SupplyKindComposed,
		YieldAmount:       &yieldAmount,
		YieldUnit:         yieldUnit,
	}
	s.SetRecipeLines(lines)
	s.AddDomainEvent(NewSupplyCreatedEvent(s))
	return s, nil
}

// IsPurchased returns true for purchased supplies
func (s *Supply) IsPurchased() bool {
	return s.Kind == SupplyKindPurchased
}

// IsComposed returns true for composed supplies
func (s *Supply) IsComposed() bool {
	return s.Kind == SupplyKindComposed
}

// Rename updates the supply name
func (s *Supply) Rename(name string) error {
	if err := validateSupplyName(name); err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplyUpdatedEvent(s))
	return nil
}

// SetPurchaseTerms updates price and quantity of a purchased supply
func (s *Supply) SetPurchaseTerms(price, quantity decimal.Decimal) error {
	if !s.IsPurchased() {
		return shared.NewDomainError("INVALID_STATE", "Only purchased supplies carry purchase terms")
	}
	s.PurchasePrice = &price
	s.PurchaseQuantity = &quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplyUpdatedEvent(s))
	return nil
}

// SetRecipeLines replaces the recipe, assigning line identities and order
func (s *Supply) SetRecipeLines(lines []RecipeLine) {
	s.RecipeLines = make([]RecipeLine, 0, len(lines))
	for i, line := range lines {
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.SupplyID = s.ID
		line.Position = i
		s.RecipeLines = append(s.RecipeLines, line)
	}
	s.UpdatedAt = time.Now()
}

// SetYield updates the yield of a composed supply
func (s *Supply) SetYield(amount decimal.Decimal, unit valueobject.Unit) error {
	if !s.IsComposed() {
		return shared.NewDomainError("INVALID_STATE", "Only composed supplies carry a yield")
	}
	s.YieldAmount = &amount
	s.YieldUnit = unit
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSupplyUpdatedEvent(s))
	return nil
}

// WellFormedRecipeLines returns the recipe with malformed lines dropped,
// preserving order
func (s *Supply) WellFormedRecipeLines() []RecipeLine {
	lines := make([]RecipeLine, 0, len(s.RecipeLines))
	for _, line := range s.RecipeLines {
		if line.IsWellFormed() {
			lines = append(lines, line)
		}
	}
	return lines
}

// ReferencesSupply reports whether any recipe line points at the given id
func (s *Supply) ReferencesSupply(id uuid.UUID) bool {
	for _, line := range s.RecipeLines {
		if line.IngredientID == id {
			return true
		}
	}
	return false
}

func validateSupplyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supply name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supply name cannot exceed 200 characters")
	}
	return nil
}
