package stock

import (
	"fmt"
	"time"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quant is on-hand stock of one lot/serial at one location. The engine keeps
// quants only as far as reservation needs them; valuation and costing live
// elsewhere.
type Quant struct {
	LocationID uuid.UUID
	LotName    string
	Quantity   decimal.Decimal
}

// InventoryEngine is the host inventory engine the reassignment core calls
// into: confirmation, reservation, unreserve and completion of moves, with
// quant bookkeeping per location and lot/serial. Cancellation is not here;
// it belongs to ChainPreservingCanceller, which owns both the default and
// the chain-preserving behavior.
type InventoryEngine struct {
	quants []*Quant
}

// NewInventoryEngine creates an engine with an empty stock ledger
func NewInventoryEngine() *InventoryEngine {
	return &InventoryEngine{}
}

// AddStock puts quantity of a lot/serial on hand at a location
func (e *InventoryEngine) AddStock(locationID uuid.UUID, lotName string, qty decimal.Decimal) {
	for _, q := range e.quants {
		if q.LocationID == locationID && q.LotName == lotName {
			q.Quantity = q.Quantity.Add(qty)
			return
		}
	}
	e.quants = append(e.quants, &Quant{LocationID: locationID, LotName: lotName, Quantity: qty})
}

// Available returns the quantity of a lot/serial on hand at a location
func (e *InventoryEngine) Available(locationID uuid.UUID, lotName string) decimal.Decimal {
	for _, q := range e.quants {
		if q.LocationID == locationID && q.LotName == lotName {
			return q.Quantity
		}
	}
	return decimal.Zero
}

// LotsAt returns the lot/serial names with stock on hand at a location
func (e *InventoryEngine) LotsAt(locationID uuid.UUID) []string {
	var lots []string
	for _, q := range e.quants {
		if q.LocationID == locationID && q.Quantity.GreaterThan(decimal.Zero) {
			lots = append(lots, q.LotName)
		}
	}
	return lots
}

// Confirm runs standard confirmation over the pickings: draft moves become
// confirmed, or waiting when their procurement method ties them to an
// upstream leg that has not completed yet.
func (e *InventoryEngine) Confirm(pickings []*Picking) error {
	for _, p := range pickings {
		for _, m := range p.Moves {
			if m.State != StateDraft {
				continue
			}
			if m.ProcureMethod == MakeToOrder && !e.predecessorsDone(m) {
				m.State = StateWaiting
			} else {
				m.State = StateConfirmed
			}
			m.UpdatedAt = time.Now()
		}
		p.RefreshState()
	}
	return nil
}

func (e *InventoryEngine) predecessorsDone(m *Move) bool {
	for _, pred := range m.Predecessors {
		if !pred.IsDone() {
			return false
		}
	}
	return true
}

// Reserve assigns stock on hand at each move's source location to the move,
// creating one line per serial for serial-tracked moves and a single line
// otherwise. Moves that cannot be fully reserved are left untouched.
func (e *InventoryEngine) Reserve(pickings []*Picking) error {
	for _, p := range pickings {
		for _, m := range p.Moves {
			switch m.State {
			case StateConfirmed:
			case StateWaiting:
				if !e.predecessorsDone(m) {
					continue
				}
			default:
				continue
			}

			if m.Tracking == TrackingSerial {
				lots := e.LotsAt(m.SourceLocationID)
				needed := int(m.Quantity.IntPart())
				if len(lots) < needed {
					continue
				}
				lines := make([]MoveLine, 0, needed)
				for _, lot := range lots[:needed] {
					lines = append(lines, *NewMoveLine(m.ID, lot, decimal.NewFromInt(1)))
				}
				m.Reserve(lines)
			} else {
				if e.Available(m.SourceLocationID, "").LessThan(m.Quantity) {
					continue
				}
				m.Reserve([]MoveLine{*NewMoveLine(m.ID, "", m.Quantity)})
			}
		}
		p.RefreshState()
	}
	return nil
}

// Unreserve drops all reservation lines from the moves, returning nothing to
// the ledger (quants track on-hand stock, not reservations).
func (e *InventoryEngine) Unreserve(moves []*Move) {
	for _, m := range moves {
		m.ClearReservation()
		if m.State == StateAssigned {
			m.State = StateConfirmed
		}
	}
}

// MarkDone completes assigned moves: each reserved line's stock relocates
// from the move source to the move destination and the move becomes done.
// Downstream waiting moves are then eligible for reservation at the new
// location.
func (e *InventoryEngine) MarkDone(pickings []*Picking) error {
	for _, p := range pickings {
		for _, m := range p.Moves {
			if m.State != StateAssigned {
				return shared.NewValidationError(
					"VALIDATE_UNRESERVED_MOVE",
					fmt.Sprintf("Move %s is not fully reserved and cannot be validated", m.Reference),
				)
			}
			for i := range m.Lines {
				line := &m.Lines[i]
				e.removeStock(m.SourceLocationID, line.LotName, line.Quantity)
				e.AddStock(m.DestLocationID, line.LotName, line.Quantity)
				line.Picked = true
			}
			m.State = StateDone
			m.UpdatedAt = time.Now()
		}
		p.RefreshState()
	}
	return nil
}

func (e *InventoryEngine) removeStock(locationID uuid.UUID, lotName string, qty decimal.Decimal) {
	for _, q := range e.quants {
		if q.LocationID == locationID && q.LotName == lotName {
			q.Quantity = q.Quantity.Sub(qty)
			return
		}
	}
}
