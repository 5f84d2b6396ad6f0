package supply

import (
	"context"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/shared"
)

// SupplyRepository is the persistence contract for the Supply aggregate
type SupplyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supply, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supply, error)
	// Snapshot loads the entire catalog with recipe lines in one query,
	// for building a CostGraph
	Snapshot(ctx context.Context) ([]Supply, error)
	Save(ctx context.Context, s *Supply) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// CountReferencedBy counts supplies whose recipe references the
	// given id, for delete guards
	CountReferencedBy(ctx context.Context, id uuid.UUID) (int64, error)
}
