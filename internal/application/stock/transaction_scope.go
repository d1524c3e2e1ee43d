package stock

import (
	"context"

	"github.com/storekeep/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically. The sell operation depends on this: the stock
// decrement and the sale insert must succeed or fail together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() stock.ItemRepository
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() stock.SaleRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	itemRepo stock.ItemRepository
	saleRepo stock.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(itemRepo stock.ItemRepository, saleRepo stock.SaleRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo: itemRepo,
		saleRepo: saleRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() stock.ItemRepository {
	return s.itemRepo
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() stock.SaleRepository {
	return s.saleRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
