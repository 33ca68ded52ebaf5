package stock

import (
	"context"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// PickingRepository defines the interface for picking persistence.
//
// Implementations must return pickings as fully loaded document graphs:
// moves with their lines, predecessor/successor references resolved to
// in-memory pointers, and operation type and locations preloaded. The core
// services operate on that graph synchronously; nothing is lazy-loaded
// mid-operation.
type PickingRepository interface {
	// FindByID finds a picking by its ID with the full graph loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Picking, error)

	// FindByIDs finds multiple pickings by ID. Link references between the
	// returned pickings (and any picking reachable from them) share pointers,
	// so chain discovery can walk them without further loading.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Picking, error)

	// FindByWarehouse finds pickings whose operation type belongs to a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]*Picking, error)

	// Save persists a picking and its moves, lines and link rows
	Save(ctx context.Context, p *Picking) error

	// SaveAll persists multiple pickings
	SaveAll(ctx context.Context, pickings []*Picking) error

	// Count counts pickings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// MoveRepository defines the interface for move persistence
type MoveRepository interface {
	// FindByID finds a move by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Move, error)

	// FindByPicking finds all moves owned by a picking
	FindByPicking(ctx context.Context, pickingID uuid.UUID) ([]*Move, error)

	// Save persists a move with its lines and link rows
	Save(ctx context.Context, m *Move) error

	// ReplaceLinks rewrites the predecessor/successor join rows for a move
	ReplaceLinks(ctx context.Context, m *Move) error
}

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse with locations and operation types loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByCode finds a warehouse by its short code
	FindByCode(ctx context.Context, code string) (*Warehouse, error)

	// FindAll lists all warehouses
	FindAll(ctx context.Context, filter shared.Filter) ([]*Warehouse, error)

	// Save persists a warehouse with its locations and operation types
	Save(ctx context.Context, w *Warehouse) error
}

// OperationTypeRepository defines the interface for operation type persistence
type OperationTypeRepository interface {
	// FindByID finds an operation type by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OperationType, error)

	// FindByWarehouse finds all operation types of a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*OperationType, error)
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByUsage finds locations by usage (e.g. all customer locations)
	FindByUsage(ctx context.Context, usage LocationUsage) ([]*Location, error)

	// Save persists a location
	Save(ctx context.Context, l *Location) error
}
