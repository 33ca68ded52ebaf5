package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// ChainPreservingCanceller is a domain service that transitions moves to
// cancel. The default behavior severs predecessor links and resets the
// procurement method, which is what lets a cancelled chain be rebuilt from
// scratch. The preserve-chain mode keeps both intact so the same chain can
// later be reset to draft and re-confirmed against a different warehouse
// without losing serial, lot, or procurement linkage.
//
// Cascade cancellation over the successor graph runs on an explicit worklist
// with a visited set, so it terminates even on malformed cyclic link data
// and does not recurse on long chains.
type ChainPreservingCanceller struct{}

// NewChainPreservingCanceller creates a new canceller
func NewChainPreservingCanceller() *ChainPreservingCanceller {
	return &ChainPreservingCanceller{}
}

// Cancel transitions all cancellable moves in the set to cancel, dropping
// their reservations. With preserveChain the predecessor/successor references
// and procure_method survive; without it the default link-severing behavior
// applies.
//
// A move that is done and not scrapped fails the whole batch up front: done
// inventory movements are immutable history.
func (c *ChainPreservingCanceller) Cancel(moves []*Move, preserveChain bool) error {
	for _, m := range moves {
		if m.IsImmutable() {
			return shared.NewValidationError(
				"CANCEL_DONE_MOVE",
				"You cannot cancel a stock move that has been set to 'Done'. Create a return in order to reverse the moves which took place.",
			)
		}
	}

	visited := make(map[uuid.UUID]struct{})
	worklist := make([]*Move, 0, len(moves))
	for _, m := range moves {
		if m.State == StateCancel || (m.State == StateDone && m.Scrapped) {
			continue
		}
		if _, seen := visited[m.ID]; seen {
			continue
		}
		visited[m.ID] = struct{}{}
		worklist = append(worklist, m)
	}

	var cancelled []*Move
	for len(worklist) > 0 {
		m := worklist[0]
		worklist = worklist[1:]

		m.ClearReservation()
		m.State = StateCancel
		cancelled = append(cancelled, m)

		if !m.PropagateCancel {
			continue
		}
		for _, next := range m.Successors {
			if next.IsDone() || next.State == StateCancel {
				continue
			}
			if _, seen := visited[next.ID]; seen {
				continue
			}
			// A successor with a live alternate predecessor keeps waiting
			// on it and must not be cancelled.
			if !c.otherPredecessorsCancelled(next, m) {
				continue
			}
			visited[next.ID] = struct{}{}
			worklist = append(worklist, next)
		}
	}

	if !preserveChain {
		c.severChains(cancelled)
	}
	return nil
}

// otherPredecessorsCancelled checks whether every predecessor of next other
// than cause is already cancelled. Moves are marked cancel when popped from
// the worklist, so a shared successor cascades exactly once: when the last
// of its predecessors goes through.
func (c *ChainPreservingCanceller) otherPredecessorsCancelled(next, cause *Move) bool {
	for _, pred := range next.Predecessors {
		if pred.ID == cause.ID {
			continue
		}
		if pred.State != StateCancel {
			return false
		}
	}
	return true
}

// severChains applies the default cancellation bookkeeping: surviving
// successors fall back to make_to_stock and every upstream reference of a
// cancelled move is cleared in both directions.
func (c *ChainPreservingCanceller) severChains(cancelled []*Move) {
	for _, m := range cancelled {
		for _, next := range m.Successors {
			if next.State == StateCancel {
				continue
			}
			next.ProcureMethod = MakeToStock
			next.removePredecessor(m.ID)
		}
		m.Successors = nil
		m.UnlinkPredecessors()
		m.ProcureMethod = MakeToStock
	}
}
