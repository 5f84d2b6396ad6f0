package persistence

import (
	"context"

	appordering "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. It provides atomic execution of multiple repository
// operations, notably order creation together with the number counter.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to the ordering
// repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Counter returns the order counter repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Counter() ordering.OrderCounterRepository {
	return NewGormOrderCounterRepository(r.tx)
}

// OpenAccounts returns the tab repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OpenAccounts() ordering.OpenAccountRepository {
	return NewGormOpenAccountRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appordering.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appordering.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
