package persistence

import (
	"context"
	"errors"

	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterRowID is the primary key of the single counter row.
const counterRowID = 1

// GormOrderCounterRepository implements OrderCounterRepository using
// GORM. Next takes a FOR UPDATE lock on the counter row so concurrent
// order creations serialize on it; constructed from a transaction, the
// lock is held until that transaction ends.
type GormOrderCounterRepository struct {
	db *gorm.DB
}

// NewGormOrderCounterRepository creates a new GormOrderCounterRepository
func NewGormOrderCounterRepository(db *gorm.DB) *GormOrderCounterRepository {
	return &GormOrderCounterRepository{db: db}
}

// Next locks the counter row, seeds it from seed if absent, increments
// and returns the new value
func (r *GormOrderCounterRepository) Next(ctx context.Context, seed int64) (int64, error) {
	var counter ordering.OrderCounter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "id = ?", counterRowID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First order ever: seed the row. A concurrent creation may
		// win the insert, so re-acquire the lock afterwards.
		seedRow := ordering.OrderCounter{ID: counterRowID, Value: seed}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&seedRow).Error; err != nil {
			return 0, err
		}
		err = r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "id = ?", counterRowID).Error
	}
	if err != nil {
		return 0, err
	}

	value := counter.Next()
	if err := r.db.WithContext(ctx).Save(&counter).Error; err != nil {
		return 0, err
	}
	return value, nil
}

// Ensure GormOrderCounterRepository implements OrderCounterRepository
var _ ordering.OrderCounterRepository = (*GormOrderCounterRepository)(nil)
