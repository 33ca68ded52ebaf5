package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMoveRepository implements MoveRepository using GORM. Unlike the picking
// repository it reads single moves without materializing the whole chain;
// link references come back as IDs stitched onto shallow neighbor stubs.
type GormMoveRepository struct {
	db *gorm.DB
}

// NewGormMoveRepository creates a new GormMoveRepository
func NewGormMoveRepository(db *gorm.DB) *GormMoveRepository {
	return &GormMoveRepository{db: db}
}

// FindByID finds a move by its ID
func (r *GormMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Move, error) {
	var move stock.Move
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("SourceLocation").
		Preload("DestLocation").
		Preload("Successors").
		Preload("Predecessors").
		First(&move, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &move, nil
}

// FindByPicking finds all moves owned by a picking
func (r *GormMoveRepository) FindByPicking(ctx context.Context, pickingID uuid.UUID) ([]*stock.Move, error) {
	var moves []*stock.Move
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("picking_id = ?", pickingID).
		Find(&moves).Error
	if err != nil {
		return nil, err
	}
	return moves, nil
}

// Save persists a move with its lines and link rows
func (r *GormMoveRepository) Save(ctx context.Context, m *stock.Move) error {
	return saveMove(r.db.WithContext(ctx), m, make(map[uuid.UUID]bool))
}

// ReplaceLinks rewrites the predecessor and successor join rows of a move
// from its in-memory references.
func (r *GormMoveRepository) ReplaceLinks(ctx context.Context, m *stock.Move) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("origin_move_id = ? OR dest_move_id = ?", m.ID, m.ID).Delete(&moveLink{}).Error; err != nil {
		return err
	}
	links := make([]moveLink, 0, len(m.Successors)+len(m.Predecessors))
	for _, next := range m.Successors {
		links = append(links, moveLink{OriginMoveID: m.ID, DestMoveID: next.ID})
	}
	for _, prev := range m.Predecessors {
		links = append(links, moveLink{OriginMoveID: prev.ID, DestMoveID: m.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return db.Create(&links).Error
}

// Ensure GormMoveRepository implements MoveRepository
var _ stock.MoveRepository = (*GormMoveRepository)(nil)
