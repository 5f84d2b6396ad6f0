package supply

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CostCache caches the resolved cost map between supply writes. A miss
// is not an error; callers fall back to resolving against a fresh
// snapshot. Any supply write must invalidate the cache, since a single
// edit can change costs anywhere downstream of it.
type CostCache interface {
	// Get retrieves the cached cost map. The second return is false on
	// a cache miss.
	Get(ctx context.Context) (map[uuid.UUID]UnitCost, bool, error)

	// Set stores the cost map with the specified TTL. If ttl is 0, the
	// implementation uses a default TTL.
	Set(ctx context.Context, costs map[uuid.UUID]UnitCost, ttl time.Duration) error

	// Invalidate removes the cached cost map.
	Invalidate(ctx context.Context) error
}
