package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOperationTypeRepository implements OperationTypeRepository using GORM
type GormOperationTypeRepository struct {
	db *gorm.DB
}

// NewGormOperationTypeRepository creates a new GormOperationTypeRepository
func NewGormOperationTypeRepository(db *gorm.DB) *GormOperationTypeRepository {
	return &GormOperationTypeRepository{db: db}
}

// FindByID finds an operation type by its ID
func (r *GormOperationTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.OperationType, error) {
	var ot stock.OperationType
	err := r.db.WithContext(ctx).
		Preload("DefaultSourceLocation").
		Preload("DefaultDestLocation").
		First(&ot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ot, nil
}

// FindByWarehouse finds all operation types of a warehouse
func (r *GormOperationTypeRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*stock.OperationType, error) {
	var types []*stock.OperationType
	err := r.db.WithContext(ctx).
		Preload("DefaultSourceLocation").
		Preload("DefaultDestLocation").
		Where("warehouse_id = ?", warehouseID).
		Order("sequence_code ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// Ensure GormOperationTypeRepository implements OperationTypeRepository
var _ stock.OperationTypeRepository = (*GormOperationTypeRepository)(nil)
