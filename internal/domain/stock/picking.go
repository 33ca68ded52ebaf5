package stock

import (
	"time"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// Picking groups one or more moves sharing an operation type and a
// source/destination context (e.g. "Pick", "Ship", "Receipt"). Its state
// derives from the states of its moves. It is the aggregate root for
// shipment/receipt documents.
type Picking struct {
	shared.BaseAggregateRoot
	Name             string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	State            MoveState `gorm:"type:varchar(16);not null;default:'draft'"`
	OperationTypeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceLocationID uuid.UUID `gorm:"type:uuid;not null"`
	DestLocationID   uuid.UUID `gorm:"type:uuid;not null"`

	OperationType  *OperationType `gorm:"foreignKey:OperationTypeID"`
	SourceLocation *Location      `gorm:"foreignKey:SourceLocationID"`
	DestLocation   *Location      `gorm:"foreignKey:DestLocationID"`

	Moves []*Move `gorm:"foreignKey:PickingID"`
}

// TableName returns the table name for GORM
func (Picking) TableName() string {
	return "stock_pickings"
}

// NewPicking creates a draft picking for an operation type
func NewPicking(name string, opType *OperationType, source, dest *Location) (*Picking, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Picking name cannot be empty")
	}
	if opType == nil {
		return nil, shared.NewValidationError("INVALID_OPERATION_TYPE", "Operation type is required")
	}
	if source == nil || dest == nil {
		return nil, shared.NewValidationError("INVALID_LOCATION", "Source and destination locations are required")
	}
	return &Picking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		State:             StateDraft,
		OperationTypeID:   opType.ID,
		SourceLocationID:  source.ID,
		DestLocationID:    dest.ID,
		OperationType:     opType,
		SourceLocation:    source,
		DestLocation:      dest,
	}, nil
}

// AddMove attaches a move to this picking and stamps it with the picking's
// operation context.
func (p *Picking) AddMove(m *Move) {
	m.PickingID = &p.ID
	m.Picking = p
	p.Moves = append(p.Moves, m)
}

// WarehouseID returns the warehouse owning this picking's operation type
func (p *Picking) WarehouseID() uuid.UUID {
	if p.OperationType == nil {
		return uuid.Nil
	}
	return p.OperationType.WarehouseID
}

// HasDoneMove reports whether any non-scrapped move is done. Such a picking
// is immutable history and can be neither cancelled nor reassigned.
func (p *Picking) HasDoneMove() bool {
	for _, m := range p.Moves {
		if m.IsImmutable() {
			return true
		}
	}
	return false
}

// RefreshState recomputes the picking state from its moves: done only when
// every move is done or cancelled (with at least one done), cancel when all
// moves are cancelled, otherwise the least advanced live move wins.
func (p *Picking) RefreshState() {
	if len(p.Moves) == 0 {
		p.State = StateDraft
		return
	}

	order := map[MoveState]int{
		StateDraft:     0,
		StateWaiting:   1,
		StateConfirmed: 2,
		StateAssigned:  3,
		StateDone:      4,
	}

	least := -1
	allCancel := true
	anyDone := false
	for _, m := range p.Moves {
		if m.State == StateCancel {
			continue
		}
		allCancel = false
		if m.State == StateDone {
			anyDone = true
			continue
		}
		if rank, ok := order[m.State]; ok && (least == -1 || rank < least) {
			least = rank
		}
	}

	switch {
	case allCancel:
		p.State = StateCancel
	case least == -1 && anyDone:
		p.State = StateDone
	default:
		for state, rank := range order {
			if rank == least {
				p.State = state
				break
			}
		}
	}
	p.UpdatedAt = time.Now()
}

// SetOperationContext rewrites the picking's operation type and locations.
// Used by warehouse remapping; callers propagate the same values to the
// owned moves.
func (p *Picking) SetOperationContext(opType *OperationType, source, dest *Location) {
	p.OperationTypeID = opType.ID
	p.OperationType = opType
	p.SourceLocationID = source.ID
	p.SourceLocation = source
	p.DestLocationID = dest.ID
	p.DestLocation = dest
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
