package stock

import (
	"context"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PickingWorkflowService handles the picking-level cancel and back-to-draft
// operation: the standard (chain-severing) cancellation followed by a reset
// to draft. This works on pickings in any state apart from done.
type PickingWorkflowService struct {
	scope     TransactionScope
	canceller *stock.ChainPreservingCanceller
	restorer  *stock.DraftRestorer
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPickingWorkflowService creates a new PickingWorkflowService
func NewPickingWorkflowService(scope TransactionScope, logger *zap.Logger) *PickingWorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PickingWorkflowService{
		scope:     scope,
		canceller: stock.NewChainPreservingCanceller(),
		restorer:  stock.NewDraftRestorer(),
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PickingWorkflowService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// CancelAndBackToDraft cancels the pickings (default behavior, severing any
// chain links) and then resets all their moves to draft. Pickings already
// cancelled skip straight to draft restoration.
func (s *PickingWorkflowService) CancelAndBackToDraft(ctx context.Context, auth AuthContext, pickingIDs []uuid.UUID) ([]PickingResponse, error) {
	if err := requireRole(auth, RoleCancelBackToDraft); err != nil {
		return nil, err
	}
	if len(pickingIDs) == 0 {
		return nil, shared.NewUserError("NO_PICKINGS", "No pickings selected")
	}

	var result []PickingResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pickings, err := repos.PickingRepo().FindByIDs(ctx, pickingIDs)
		if err != nil {
			return err
		}
		working := stock.NewPickingSet(pickings...)

		for _, p := range working.Items() {
			if p.HasDoneMove() {
				return shared.NewUserError(
					"PICKING_DONE",
					"Picking "+p.Name+" is done and cannot be cancelled or set back to draft",
				)
			}
		}

		toCancel := working.Filter(func(p *stock.Picking) bool { return p.State != stock.StateCancel })
		if err := s.canceller.Cancel(toCancel.Moves(), false); err != nil {
			return err
		}
		if err := s.restorer.Restore(working.Moves()); err != nil {
			return err
		}

		for _, p := range working.Items() {
			p.RefreshState()
			p.AddDomainEvent(stock.NewPickingCancelledEvent(p, false))
			p.AddDomainEvent(stock.NewPickingBackToDraftEvent(p))
		}
		if err := repos.PickingRepo().SaveAll(ctx, working.Items()); err != nil {
			return err
		}

		s.logger.Info("pickings cancelled and reset to draft",
			zap.Int("count", working.Len()),
			zap.String("user_id", auth.UserID.String()),
		)
		s.publishDomainEvents(ctx, working.Items())
		result = ToPickingResponses(working.Items())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PickingWorkflowService) publishDomainEvents(ctx context.Context, pickings []*stock.Picking) {
	if s.publisher == nil {
		return
	}
	for _, p := range pickings {
		events := p.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		// Errors are logged by the event bus, not propagated
		_ = s.publisher.Publish(ctx, events...)
		p.ClearDomainEvents()
	}
}
