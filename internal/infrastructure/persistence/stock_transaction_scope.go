package persistence

import (
	"context"

	appstock "github.com/erp/stockops/internal/application/stock"
	"github.com/erp/stockops/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// The whole reassignment flow runs through one Execute call, so a validation
// or remapping failure rolls back every document mutation at once.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// PickingRepo returns the picking repository scoped to the current transaction
func (r *gormTransactionalRepositories) PickingRepo() stock.PickingRepository {
	return NewGormPickingRepository(r.tx)
}

// MoveRepo returns the move repository scoped to the current transaction
func (r *gormTransactionalRepositories) MoveRepo() stock.MoveRepository {
	return NewGormMoveRepository(r.tx)
}

// WarehouseRepo returns the warehouse repository scoped to the current transaction
func (r *gormTransactionalRepositories) WarehouseRepo() stock.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appstock.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appstock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
