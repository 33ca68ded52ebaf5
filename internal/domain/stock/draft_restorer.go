package stock

import (
	"time"

	"github.com/erp/stockops/internal/domain/shared"
)

// DraftRestorer transitions cancelled moves back to draft. Moves that kept
// upstream links through a chain-preserving cancellation get their
// procurement method restored to make_to_order, so re-confirmation
// re-establishes the wait on the upstream leg instead of reserving from
// stock on hand.
type DraftRestorer struct{}

// NewDraftRestorer creates a new restorer
func NewDraftRestorer() *DraftRestorer {
	return &DraftRestorer{}
}

// Restore sets every move in the set back to draft. It fails the whole batch
// if any move is not currently cancelled.
//
// The procurement restore depends only on the existence of a predecessor
// link, never on the predecessor's current state, so restoring a chain works
// in any order while its members are mid-restoration.
func (r *DraftRestorer) Restore(moves []*Move) error {
	for _, m := range moves {
		if m.State != StateCancel {
			return shared.NewValidationError(
				"DRAFT_NON_CANCELLED_MOVE",
				"You can set to draft cancelled moves only",
			)
		}
	}

	for _, m := range moves {
		m.State = StateDraft
		if m.HasPredecessors() {
			m.ProcureMethod = MakeToOrder
		}
		m.UpdatedAt = time.Now()
	}
	return nil
}
