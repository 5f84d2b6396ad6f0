package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MenuItemStatus represents the availability of a menu item
type MenuItemStatus string

const (
	MenuItemStatusActive   MenuItemStatus = "active"
	MenuItemStatusInactive MenuItemStatus = "inactive"
)

// IngredientLine is one weighted supply reference inside a menu item's
// recipe. Lines are ordered by Position.
type IngredientLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (IngredientLine) TableName() string {
	return "menu_item_ingredients"
}

// IsWellFormed reports whether the line carries a usable supply
// reference and a positive quantity
func (l IngredientLine) IsWellFormed() bool {
	return l.SupplyID != uuid.Nil && l.Quantity.IsPositive()
}

// MenuItem represents a sellable dish built from supplies.
// It is the aggregate root for menu operations.
type MenuItem struct {
	shared.BaseAggregateRoot
	Name         string            `gorm:"type:varchar(200);not null"`
	Description  string            `gorm:"type:text"`
	SellingPrice valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Status       MenuItemStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Ingredients  []IngredientLine  `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// NewMenuItem creates a menu item
func NewMenuItem(name string, sellingPrice valueobject.Money, ingredients []IngredientLine) (*MenuItem, error) {
	if err := validateMenuItemName(name); err != nil {
		return nil, err
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	item := &MenuItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SellingPrice:      sellingPrice,
		Status:            MenuItemStatusActive,
	}
	item.SetIngredients(ingredients)
	item.AddDomainEvent(NewMenuItemCreatedEvent(item))
	return item, nil
}

// IsActive returns true when the item can be sold
func (m *MenuItem) IsActive() bool {
	return m.Status == MenuItemStatusActive
}

// Update updates the item's basic information
func (m *MenuItem) Update(name, description string) error {
	if err := validateMenuItemName(name); err != nil {
		return err
	}
	m.Name = name
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))
	return nil
}

// SetSellingPrice updates the selling price
func (m *MenuItem) SetSellingPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	m.SellingPrice = price
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))
	return nil
}

// SetIngredients replaces the recipe, assigning line identities and order
func (m *MenuItem) SetIngredients(lines []IngredientLine) {
	m.Ingredients = make([]IngredientLine, 0, len(lines))
	for i, line := range lines {
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.MenuItemID = m.ID
		line.Position = i
		m.Ingredients = append(m.Ingredients, line)
	}
	m.UpdatedAt = time.Now()
}

// Activate makes the item sellable
func (m *MenuItem) Activate() {
	m.Status = MenuItemStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))
}

// Deactivate removes the item from sale without deleting it
func (m *MenuItem) Deactivate() {
	m.Status = MenuItemStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))
}

// WellFormedIngredients returns the recipe with malformed lines
// dropped, preserving order
func (m *MenuItem) WellFormedIngredients() []IngredientLine {
	lines := make([]IngredientLine, 0, len(m.Ingredients))
	for _, line := range m.Ingredients {
		if line.IsWellFormed() {
			lines = append(lines, line)
		}
	}
	return lines
}

// ReferencesSupply reports whether any ingredient line points at the
// given supply id
func (m *MenuItem) ReferencesSupply(id uuid.UUID) bool {
	for _, line := range m.Ingredients {
		if line.SupplyID == id {
			return true
		}
	}
	return false
}

func validateMenuItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Menu item name cannot exceed 200 characters")
	}
	return nil
}
