package supply

import (
	"context"

	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
)

// TransactionScope provides transactional access to the supply
// repository. When a function is executed within a transaction scope,
// all repository operations will be part of the same database
// transaction and will be committed or rolled back atomically.
//
// Catalog writes depend on this: the candidate is validated against a
// snapshot taken inside the same transaction that persists it, and the
// scope serializes writers, so two concurrent recipe edits cannot each
// pass validation and jointly commit a cycle.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the supply repository
// within a transaction.
type TransactionalRepositories interface {
	// Supplies returns the supply repository scoped to the current transaction
	Supplies() supply.SupplyRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	supplyRepo supply.SupplyRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository.
func NewNoOpTransactionScope(supplyRepo supply.SupplyRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{supplyRepo: supplyRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Supplies returns the supply repository.
func (s *NoOpTransactionScope) Supplies() supply.SupplyRepository {
	return s.supplyRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
