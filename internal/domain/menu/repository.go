package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// MenuItemRepository defines the interface for menu item persistence
type MenuItemRepository interface {
	// FindByID finds a menu item by its ID, ingredients included
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindAll finds all menu items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]MenuItem, error)

	// FindActive finds all active menu items
	FindActive(ctx context.Context, filter shared.Filter) ([]MenuItem, error)

	// Save creates or updates a menu item and its ingredient lines
	Save(ctx context.Context, item *MenuItem) error

	// Delete deletes a menu item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts menu items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks whether a menu item with the given name exists
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// CountReferencingSupply counts menu items whose recipe uses the
	// given supply
	CountReferencingSupply(ctx context.Context, supplyID uuid.UUID) (int64, error)
}
