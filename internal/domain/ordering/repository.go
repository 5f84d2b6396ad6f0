package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its display number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindAll finds all orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByOpenAccount finds all orders attached to a tab, newest first
	FindByOpenAccount(ctx context.Context, openAccountID uuid.UUID) ([]*Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error

	// SaveBatch persists multiple orders in one call
	SaveBatch(ctx context.Context, orders []*Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// MaxNumberSuffix returns the largest numeric suffix among existing
	// order numbers, 0 when there are none. Used to seed the counter.
	MaxNumberSuffix(ctx context.Context) (int64, error)
}

// OrderCounterRepository hands out order numbers. Next must run inside
// the same transaction as the order insert and hold a row lock for the
// duration, so concurrent creations serialize and failures give the
// number back.
type OrderCounterRepository interface {
	// Next locks the counter row, seeds it from seed if absent,
	// increments and returns the new value
	Next(ctx context.Context, seed int64) (int64, error)
}

// OpenAccountRepository defines the interface for tab persistence
type OpenAccountRepository interface {
	// FindByID finds a tab by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OpenAccount, error)

	// FindAll finds all tabs matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]OpenAccount, error)

	// FindOpen finds all open tabs
	FindOpen(ctx context.Context, filter shared.Filter) ([]OpenAccount, error)

	// Save creates or updates a tab
	Save(ctx context.Context, account *OpenAccount) error

	// Count counts tabs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
