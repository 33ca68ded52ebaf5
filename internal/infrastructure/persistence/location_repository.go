package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Location, error) {
	var loc stock.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByUsage finds locations by usage
func (r *GormLocationRepository) FindByUsage(ctx context.Context, usage stock.LocationUsage) ([]*stock.Location, error) {
	var locations []*stock.Location
	err := r.db.WithContext(ctx).
		Where("usage = ?", usage).
		Order("name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// Save persists a location
func (r *GormLocationRepository) Save(ctx context.Context, l *stock.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// Ensure GormLocationRepository implements LocationRepository
var _ stock.LocationRepository = (*GormLocationRepository)(nil)
