package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse with its locations and operation types loaded
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Warehouse, error) {
	var warehouse stock.Warehouse
	if err := r.preloaded(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindByCode finds a warehouse by its short code
func (r *GormWarehouseRepository) FindByCode(ctx context.Context, code string) (*stock.Warehouse, error) {
	var warehouse stock.Warehouse
	if err := r.preloaded(ctx).First(&warehouse, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll lists all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*stock.Warehouse, error) {
	query := r.preloaded(ctx)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	field := ValidateSortField(filter.OrderBy, WarehouseSortFields, "code")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	var warehouses []*stock.Warehouse
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Save persists a warehouse together with its locations and operation types
func (r *GormWarehouseRepository) Save(ctx context.Context, w *stock.Warehouse) error {
	db := r.db.WithContext(ctx)

	for _, loc := range []*stock.Location{w.StockLocation, w.InputLocation, w.OutputLocation, w.PackLocation} {
		if loc == nil {
			continue
		}
		if err := db.Save(loc).Error; err != nil {
			return err
		}
	}
	if err := db.Omit("OperationTypes", "StockLocation", "InputLocation", "OutputLocation", "PackLocation").Save(w).Error; err != nil {
		return err
	}
	for i := range w.OperationTypes {
		ot := &w.OperationTypes[i]
		ot.WarehouseID = w.ID
		if err := db.Omit("DefaultSourceLocation", "DefaultDestLocation").Save(ot).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormWarehouseRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("StockLocation").
		Preload("InputLocation").
		Preload("OutputLocation").
		Preload("PackLocation").
		Preload("OperationTypes").
		Preload("OperationTypes.DefaultSourceLocation").
		Preload("OperationTypes.DefaultDestLocation")
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ stock.WarehouseRepository = (*GormWarehouseRepository)(nil)
