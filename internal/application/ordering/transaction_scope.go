package ordering

import (
	"context"

	"github.com/ldipasquale/terzo-posto-server/internal/domain/ordering"
)

// TransactionScope provides transactional access to ordering
// repositories. When a function is executed within a transaction scope,
// all repository operations will be part of the same database
// transaction and will be committed or rolled back atomically.
//
// Order creation depends on this: the counter increment and the order
// insert must commit together so a failed insert gives the number back,
// and closing a tab must persist every touched order with the tab's
// closed state in one shot.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ordering
// repositories within a transaction. All repositories returned share
// the same underlying database transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() ordering.OrderRepository
	// Counter returns the order counter repository scoped to the
	// current transaction
	Counter() ordering.OrderCounterRepository
	// OpenAccounts returns the tab repository scoped to the current transaction
	OpenAccounts() ordering.OpenAccountRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	orderRepo       ordering.OrderRepository
	counterRepo     ordering.OrderCounterRepository
	openAccountRepo ordering.OpenAccountRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo ordering.OrderRepository,
	counterRepo ordering.OrderCounterRepository,
	openAccountRepo ordering.OpenAccountRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		counterRepo:     counterRepo,
		openAccountRepo: openAccountRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() ordering.OrderRepository {
	return s.orderRepo
}

// Counter returns the order counter repository.
func (s *NoOpTransactionScope) Counter() ordering.OrderCounterRepository {
	return s.counterRepo
}

// OpenAccounts returns the tab repository.
func (s *NoOpTransactionScope) OpenAccounts() ordering.OpenAccountRepository {
	return s.openAccountRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
