package stock

import (
	"time"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoveState is the lifecycle state of a stock move.
type MoveState string

const (
	StateDraft     MoveState = "draft"
	StateWaiting   MoveState = "waiting" // waiting on an upstream move
	StateConfirmed MoveState = "confirmed"
	StateAssigned  MoveState = "assigned" // reservation complete
	StateDone      MoveState = "done"
	StateCancel    MoveState = "cancel"
)

// IsValid checks if the state is a known MoveState
func (s MoveState) IsValid() bool {
	switch s {
	case StateDraft, StateWaiting, StateConfirmed, StateAssigned, StateDone, StateCancel:
		return true
	}
	return false
}

// String returns the string representation of MoveState
func (s MoveState) String() string {
	return string(s)
}

// ProcureMethod tells re-confirmation whether a move is satisfied from stock
// on hand or must wait for its upstream legs.
type ProcureMethod string

const (
	MakeToStock ProcureMethod = "make_to_stock"
	MakeToOrder ProcureMethod = "make_to_order"
)

// Tracking is the lot/serial tracking requirement of a move.
type Tracking string

const (
	TrackingNone   Tracking = "none"
	TrackingLot    Tracking = "lot"
	TrackingSerial Tracking = "serial"
)

// Move is the atomic unit of planned inventory movement between two
// locations. Moves form a DAG through predecessor/successor references,
// typically spanning multiple pickings in a multi-step warehouse route.
type Move struct {
	shared.BaseEntity
	Reference        string     `gorm:"type:varchar(64)"`
	PickingID        *uuid.UUID `gorm:"type:uuid;index"`
	OperationTypeID  uuid.UUID  `gorm:"type:uuid;not null"`
	WarehouseID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	SourceLocationID uuid.UUID  `gorm:"type:uuid;not null"`
	DestLocationID   uuid.UUID  `gorm:"type:uuid;not null"`

	State           MoveState       `gorm:"type:varchar(16);not null;default:'draft'"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tracking        Tracking        `gorm:"type:varchar(8);not null;default:'none'"`
	ProcureMethod   ProcureMethod   `gorm:"type:varchar(16);not null;default:'make_to_stock'"`
	PropagateCancel bool            `gorm:"not null;default:true"`
	Scrapped        bool            `gorm:"not null;default:false"`

	SourceLocation *Location `gorm:"foreignKey:SourceLocationID"`
	DestLocation   *Location `gorm:"foreignKey:DestLocationID"`
	Picking        *Picking  `gorm:"foreignKey:PickingID"`

	Lines []MoveLine `gorm:"foreignKey:MoveID"`

	// Successors wait on this move; Predecessors must complete before this
	// move can be fully satisfied. The join table stores each edge once;
	// both slices read the same rows from opposite ends.
	Successors   []*Move `gorm:"many2many:stock_move_links;joinForeignKey:OriginMoveID;joinReferences:DestMoveID"`
	Predecessors []*Move `gorm:"many2many:stock_move_links;joinForeignKey:DestMoveID;joinReferences:OriginMoveID"`
}

// TableName returns the table name for GORM
func (Move) TableName() string {
	return "stock_moves"
}

// NewMove creates a draft move between two locations
func NewMove(reference string, opType *OperationType, warehouseID uuid.UUID, source, dest *Location, qty decimal.Decimal, tracking Tracking) (*Move, error) {
	if opType == nil {
		return nil, shared.NewValidationError("INVALID_OPERATION_TYPE", "Operation type is required")
	}
	if source == nil || dest == nil {
		return nil, shared.NewValidationError("INVALID_LOCATION", "Source and destination locations are required")
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Move quantity must be positive")
	}
	return &Move{
		BaseEntity:       shared.NewBaseEntity(),
		Reference:        reference,
		OperationTypeID:  opType.ID,
		WarehouseID:      warehouseID,
		SourceLocationID: source.ID,
		DestLocationID:   dest.ID,
		SourceLocation:   source,
		DestLocation:     dest,
		State:            StateDraft,
		Quantity:         qty,
		Tracking:         tracking,
		ProcureMethod:    MakeToStock,
		PropagateCancel:  true,
	}, nil
}

// LinkSuccessor records that next waits on m, maintaining the symmetric
// predecessor/successor invariant in both directions. Linking also flips the
// successor to make_to_order so confirmation waits on the upstream leg.
func (m *Move) LinkSuccessor(next *Move) {
	if next == nil || next == m || m.hasSuccessor(next.ID) {
		return
	}
	m.Successors = append(m.Successors, next)
	next.Predecessors = append(next.Predecessors, m)
	next.ProcureMethod = MakeToOrder
}

// UnlinkPredecessors severs all upstream references in both directions.
// This is the default cancellation behavior the chain-preserving path skips.
func (m *Move) UnlinkPredecessors() {
	for _, pred := range m.Predecessors {
		pred.removeSuccessor(m.ID)
	}
	m.Predecessors = nil
}

// DetachSuccessor severs the link between m and one downstream move, in both
// directions.
func (m *Move) DetachSuccessor(next *Move) {
	m.removeSuccessor(next.ID)
	next.removePredecessor(m.ID)
}

func (m *Move) hasSuccessor(id uuid.UUID) bool {
	for _, s := range m.Successors {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (m *Move) removeSuccessor(id uuid.UUID) {
	for i, s := range m.Successors {
		if s.ID == id {
			m.Successors = append(m.Successors[:i], m.Successors[i+1:]...)
			return
		}
	}
}

func (m *Move) removePredecessor(id uuid.UUID) {
	for i, p := range m.Predecessors {
		if p.ID == id {
			m.Predecessors = append(m.Predecessors[:i], m.Predecessors[i+1:]...)
			return
		}
	}
}

// HasPredecessors reports whether any upstream move feeds this one
func (m *Move) HasPredecessors() bool {
	return len(m.Predecessors) > 0
}

// IsDone reports whether the move is recorded history
func (m *Move) IsDone() bool {
	return m.State == StateDone
}

// IsImmutable reports whether the move may never be cancelled: done
// inventory movements are immutable history unless they were scrapped.
func (m *Move) IsImmutable() bool {
	return m.State == StateDone && !m.Scrapped
}

// Reserve replaces the move's reservation with the given lines and marks the
// move assigned.
func (m *Move) Reserve(lines []MoveLine) {
	m.Lines = lines
	m.State = StateAssigned
	m.UpdatedAt = time.Now()
}

// ClearReservation drops all reservation lines and picked flags
func (m *Move) ClearReservation() {
	m.Lines = nil
	m.UpdatedAt = time.Now()
}

// ReservedQuantity returns the total quantity currently reserved on lines
func (m *Move) ReservedQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range m.Lines {
		total = total.Add(m.Lines[i].Quantity)
	}
	return total
}

// LotNames returns the lot/serial identities reserved on this move, in line
// order.
func (m *Move) LotNames() []string {
	names := make([]string, 0, len(m.Lines))
	for i := range m.Lines {
		if m.Lines[i].LotName != "" {
			names = append(names, m.Lines[i].LotName)
		}
	}
	return names
}
