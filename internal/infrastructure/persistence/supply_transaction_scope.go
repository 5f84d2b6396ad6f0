package persistence

import (
	"context"

	appsupply "github.com/ldipasquale/terzo-posto-server/internal/application/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"gorm.io/gorm"
)

// GormSupplyTransactionScope implements the supply TransactionScope
// using GORM transactions. Execute takes a table-level lock on supplies
// before running the function, so concurrent catalog writers serialize
// and each one validates against the state the previous writer
// committed. Readers are not blocked.
type GormSupplyTransactionScope struct {
	db *gorm.DB
}

// NewGormSupplyTransactionScope creates a new GormSupplyTransactionScope.
func NewGormSupplyTransactionScope(db *gorm.DB) *GormSupplyTransactionScope {
	return &GormSupplyTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSupplyTransactionScope) Execute(ctx context.Context, fn func(repos appsupply.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE supplies IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		return fn(&gormSupplyTransactionalRepositories{tx: tx})
	})
}

// gormSupplyTransactionalRepositories provides access to the supply
// repository within a transaction.
type gormSupplyTransactionalRepositories struct {
	tx *gorm.DB
}

// Supplies returns the supply repository scoped to the current transaction.
func (r *gormSupplyTransactionalRepositories) Supplies() supply.SupplyRepository {
	return NewGormSupplyRepository(r.tx)
}

// Ensure GormSupplyTransactionScope implements TransactionScope
var _ appsupply.TransactionScope = (*GormSupplyTransactionScope)(nil)

// Ensure gormSupplyTransactionalRepositories implements TransactionalRepositories
var _ appsupply.TransactionalRepositories = (*gormSupplyTransactionalRepositories)(nil)
