package persistence

import (
	"context"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// moveLink is one chain edge in the stock_move_links join table. Each edge is
// stored once; the origin side reads it as a successor reference and the
// destination side as a predecessor reference.
type moveLink struct {
	OriginMoveID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DestMoveID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (moveLink) TableName() string {
	return "stock_move_links"
}

// GormPickingRepository implements PickingRepository using GORM.
//
// Reads materialize the full document graph: the requested pickings plus
// every picking reachable through move links, with all link references
// resolved to shared in-memory pointers. The services walk and mutate that
// graph synchronously, so a cascade that leaks outside the requested set
// still lands on loaded, saveable documents.
type GormPickingRepository struct {
	db *gorm.DB
}

// NewGormPickingRepository creates a new GormPickingRepository
func NewGormPickingRepository(db *gorm.DB) *GormPickingRepository {
	return &GormPickingRepository{db: db}
}

// FindByID finds a picking by its ID with the full graph loaded
func (r *GormPickingRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Picking, error) {
	pickings, err := r.FindByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(pickings) == 0 {
		return nil, shared.ErrNotFound
	}
	return pickings[0], nil
}

// FindByIDs finds multiple pickings by ID, loading the transitive closure of
// their move chains. The returned slice preserves the requested order.
func (r *GormPickingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*stock.Picking, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	loader := newGraphLoader(r.db.WithContext(ctx))
	if err := loader.load(ids); err != nil {
		return nil, err
	}

	result := make([]*stock.Picking, 0, len(ids))
	for _, id := range ids {
		p, ok := loader.pickings[id]
		if !ok {
			return nil, shared.ErrNotFound
		}
		result = append(result, p)
	}
	return result, nil
}

// FindByWarehouse finds pickings whose operation type belongs to a warehouse
func (r *GormPickingRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]*stock.Picking, error) {
	var ids []uuid.UUID
	query := r.db.WithContext(ctx).
		Model(&stock.Picking{}).
		Joins("JOIN stock_operation_types ot ON ot.id = stock_pickings.operation_type_id").
		Where("ot.warehouse_id = ?", warehouseID)
	query = applyPickingFilter(query, filter)

	if err := query.Pluck("stock_pickings.id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*stock.Picking{}, nil
	}
	return r.FindByIDs(ctx, ids)
}

// Count counts pickings matching the filter
func (r *GormPickingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&stock.Picking{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if state, ok := filter.Filters["state"]; ok {
		query = query.Where("state = ?", state)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a picking together with its moves, lines and link rows
func (r *GormPickingRepository) Save(ctx context.Context, p *stock.Picking) error {
	return r.SaveAll(ctx, []*stock.Picking{p})
}

// SaveAll persists multiple pickings. Moves directly linked to the saved
// documents are persisted as well, since cancellation and remapping may have
// touched their state or procurement method.
func (r *GormPickingRepository) SaveAll(ctx context.Context, pickings []*stock.Picking) error {
	if len(pickings) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)

	saved := make(map[uuid.UUID]bool)
	for _, p := range pickings {
		if err := db.Omit("Moves", "OperationType", "SourceLocation", "DestLocation").Save(p).Error; err != nil {
			return err
		}
		for _, m := range p.Moves {
			if err := saveMove(db, m, saved); err != nil {
				return err
			}
		}
	}

	// Linked neighbors may carry cascade effects even when their own picking
	// is not part of the saved set.
	for _, p := range pickings {
		for _, m := range p.Moves {
			for _, next := range m.Successors {
				if err := saveMove(db, next, saved); err != nil {
					return err
				}
			}
			for _, prev := range m.Predecessors {
				if err := saveMove(db, prev, saved); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// saveMove persists one move's own columns, rewrites its lines and its
// origin-side link rows. Predecessor edges are owned by the upstream move and
// rewritten when that move is saved.
func saveMove(db *gorm.DB, m *stock.Move, saved map[uuid.UUID]bool) error {
	if saved[m.ID] {
		return nil
	}
	saved[m.ID] = true

	if err := db.Omit("Lines", "Successors", "Predecessors", "Picking", "SourceLocation", "DestLocation").Save(m).Error; err != nil {
		return err
	}

	if err := db.Where("move_id = ?", m.ID).Delete(&stock.MoveLine{}).Error; err != nil {
		return err
	}
	if len(m.Lines) > 0 {
		lines := make([]stock.MoveLine, len(m.Lines))
		copy(lines, m.Lines)
		for i := range lines {
			lines[i].MoveID = m.ID
		}
		if err := db.Create(&lines).Error; err != nil {
			return err
		}
	}

	if err := db.Where("origin_move_id = ?", m.ID).Delete(&moveLink{}).Error; err != nil {
		return err
	}
	if len(m.Successors) > 0 {
		links := make([]moveLink, 0, len(m.Successors))
		for _, next := range m.Successors {
			links = append(links, moveLink{OriginMoveID: m.ID, DestMoveID: next.ID})
		}
		if err := db.Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func applyPickingFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("stock_pickings.name LIKE ?", "%"+filter.Search+"%")
	}
	if state, ok := filter.Filters["state"]; ok {
		query = query.Where("stock_pickings.state = ?", state)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	field := ValidateSortField(filter.OrderBy, PickingSortFields, "name")
	query = query.Order("stock_pickings." + field + " " + ValidateSortOrder(filter.OrderDir))
	return query
}

// graphLoader materializes a set of pickings and the transitive closure of
// their move chains as one connected pointer graph.
type graphLoader struct {
	db       *gorm.DB
	pickings map[uuid.UUID]*stock.Picking
	moves    map[uuid.UUID]*stock.Move
	edges    []moveLink
}

func newGraphLoader(db *gorm.DB) *graphLoader {
	return &graphLoader{
		db:       db,
		pickings: make(map[uuid.UUID]*stock.Picking),
		moves:    make(map[uuid.UUID]*stock.Move),
	}
}

func (l *graphLoader) load(seedIDs []uuid.UUID) error {
	frontier := seedIDs
	for len(frontier) > 0 {
		if err := l.loadPickings(frontier); err != nil {
			return err
		}
		next, err := l.expandLinks()
		if err != nil {
			return err
		}
		frontier = next
	}
	l.stitch()
	return nil
}

// loadPickings loads one frontier of pickings with moves, lines, operation
// types and locations, registering every move for link stitching.
func (l *graphLoader) loadPickings(ids []uuid.UUID) error {
	missing := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := l.pickings[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var batch []*stock.Picking
	err := l.db.
		Preload("Moves.Lines").
		Preload("Moves.SourceLocation").
		Preload("Moves.DestLocation").
		Preload("OperationType").
		Preload("SourceLocation").
		Preload("DestLocation").
		Where("id IN ?", missing).
		Find(&batch).Error
	if err != nil {
		return err
	}

	for _, p := range batch {
		l.pickings[p.ID] = p
		for _, m := range p.Moves {
			m.Picking = p
			l.moves[m.ID] = m
		}
	}
	return nil
}

// expandLinks loads the link rows touching any known move and returns the
// picking IDs of linked moves not loaded yet.
func (l *graphLoader) expandLinks() ([]uuid.UUID, error) {
	moveIDs := make([]uuid.UUID, 0, len(l.moves))
	for id := range l.moves {
		moveIDs = append(moveIDs, id)
	}
	if len(moveIDs) == 0 {
		return nil, nil
	}

	var edges []moveLink
	err := l.db.
		Where("origin_move_id IN ? OR dest_move_id IN ?", moveIDs, moveIDs).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	l.edges = edges

	unknown := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, e := range edges {
		for _, id := range []uuid.UUID{e.OriginMoveID, e.DestMoveID} {
			if _, ok := l.moves[id]; !ok && !seen[id] {
				seen[id] = true
				unknown = append(unknown, id)
			}
		}
	}
	if len(unknown) == 0 {
		return nil, nil
	}

	// Linked moves live inside other pickings; load those whole so the graph
	// stays document-complete. Orphan moves without a picking load directly.
	var stubs []stock.Move
	if err := l.db.Select("id", "picking_id").Where("id IN ?", unknown).Find(&stubs).Error; err != nil {
		return nil, err
	}

	pickingIDs := make([]uuid.UUID, 0)
	orphanIDs := make([]uuid.UUID, 0)
	seenPicking := make(map[uuid.UUID]bool)
	for _, s := range stubs {
		if s.PickingID != nil {
			if !seenPicking[*s.PickingID] {
				seenPicking[*s.PickingID] = true
				pickingIDs = append(pickingIDs, *s.PickingID)
			}
		} else {
			orphanIDs = append(orphanIDs, s.ID)
		}
	}
	if len(orphanIDs) > 0 {
		var orphans []*stock.Move
		if err := l.db.Preload("Lines").Where("id IN ?", orphanIDs).Find(&orphans).Error; err != nil {
			return nil, err
		}
		for _, m := range orphans {
			l.moves[m.ID] = m
		}
	}
	return pickingIDs, nil
}

// stitch resolves every loaded edge into shared predecessor/successor
// pointers, keeping the two directions symmetric.
func (l *graphLoader) stitch() {
	for _, m := range l.moves {
		m.Successors = nil
		m.Predecessors = nil
	}
	for _, e := range l.edges {
		origin, ok1 := l.moves[e.OriginMoveID]
		dest, ok2 := l.moves[e.DestMoveID]
		if !ok1 || !ok2 {
			continue
		}
		origin.Successors = append(origin.Successors, dest)
		dest.Predecessors = append(dest.Predecessors, origin)
	}
}

// Ensure GormPickingRepository implements PickingRepository
var _ stock.PickingRepository = (*GormPickingRepository)(nil)
