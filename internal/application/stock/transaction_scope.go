package stock

import (
	"context"

	"github.com/erp/stockops/internal/domain/stock"
)

// TransactionScope provides transactional access to stock repositories.
// The whole reassignment flow (validate, expand, cancel, draft, remap,
// confirm) runs inside one Execute call, so either every document mutation
// commits or an error rolls all of them back. The core performs no
// multi-step compensation of its own.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// PickingRepo returns the picking repository scoped to the current transaction
	PickingRepo() stock.PickingRepository
	// MoveRepo returns the move repository scoped to the current transaction
	MoveRepo() stock.MoveRepository
	// WarehouseRepo returns the warehouse repository scoped to the current transaction
	WarehouseRepo() stock.WarehouseRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and in-memory repositories.
type NoOpTransactionScope struct {
	pickingRepo   stock.PickingRepository
	moveRepo      stock.MoveRepository
	warehouseRepo stock.WarehouseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	pickingRepo stock.PickingRepository,
	moveRepo stock.MoveRepository,
	warehouseRepo stock.WarehouseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		pickingRepo:   pickingRepo,
		moveRepo:      moveRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PickingRepo returns the picking repository.
func (s *NoOpTransactionScope) PickingRepo() stock.PickingRepository {
	return s.pickingRepo
}

// MoveRepo returns the move repository.
func (s *NoOpTransactionScope) MoveRepo() stock.MoveRepository {
	return s.moveRepo
}

// WarehouseRepo returns the warehouse repository.
func (s *NoOpTransactionScope) WarehouseRepo() stock.WarehouseRepository {
	return s.warehouseRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
