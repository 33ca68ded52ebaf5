package stock

import (
	"context"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionState tracks the progress of a reassignment session. Failure can
// abort at SessionValidated before any mutation occurs; later failures leave
// already-mutated documents mutated and rely on the enclosing transaction
// for rollback.
type SessionState string

const (
	SessionPending   SessionState = "PENDING"
	SessionValidated SessionState = "VALIDATED"
	SessionCancelled SessionState = "CANCELLED"
	SessionDrafted   SessionState = "DRAFTED"
	SessionRemapped  SessionState = "REMAPPED"
	SessionConfirmed SessionState = "CONFIRMED"
)

// PickingConfirmer is the host-engine confirmation contract. Standard
// re-confirmation resumes reservation/allocation against the remapped
// locations; the orchestrator only delegates to it.
type PickingConfirmer interface {
	Confirm(pickings []*stock.Picking) error
}

// ChangeWarehouseService orchestrates reassigning pickings (and optionally
// their full chains) to a different warehouse: validate, expand, cancel with
// chain preservation, restore to draft, remap, re-confirm.
type ChangeWarehouseService struct {
	scope     TransactionScope
	confirmer PickingConfirmer
	canceller *stock.ChainPreservingCanceller
	restorer  *stock.DraftRestorer
	discovery *stock.ChainDiscovery
	remapper  *stock.WarehouseRemapper
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewChangeWarehouseService creates a new ChangeWarehouseService
func NewChangeWarehouseService(scope TransactionScope, confirmer PickingConfirmer, logger *zap.Logger) *ChangeWarehouseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeWarehouseService{
		scope:     scope,
		confirmer: confirmer,
		canceller: stock.NewChainPreservingCanceller(),
		restorer:  stock.NewDraftRestorer(),
		discovery: stock.NewChainDiscovery(),
		remapper:  stock.NewWarehouseRemapper(),
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ChangeWarehouseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// ChangeWarehouseSession is an ephemeral reassignment session over a seed
// set of pickings. It exists only for the duration of one orchestration and
// is never durably stored.
type ChangeWarehouseSession struct {
	svc              *ChangeWarehouseService
	auth             AuthContext
	seedIDs          []uuid.UUID
	seed             *stock.PickingSet
	currentWarehouse *stock.Warehouse
	target           *stock.Warehouse
	includeChained   bool
	state            SessionState
}

// OpenSession loads the seed pickings and opens a reassignment session.
// The permission check runs before any other validation; a done picking in
// the seed set fails immediately.
func (s *ChangeWarehouseService) OpenSession(ctx context.Context, auth AuthContext, pickingIDs []uuid.UUID) (*ChangeWarehouseSession, error) {
	if err := requireRole(auth, RoleCancelBackToDraft); err != nil {
		return nil, err
	}
	if len(pickingIDs) == 0 {
		return nil, shared.NewUserError("NO_PICKINGS", "No pickings selected")
	}

	var session *ChangeWarehouseSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pickings, err := repos.PickingRepo().FindByIDs(ctx, pickingIDs)
		if err != nil {
			return err
		}
		seed := stock.NewPickingSet(pickings...)
		for _, p := range seed.Items() {
			if p.HasDoneMove() {
				return shared.NewUserError(
					"PICKING_DONE",
					"Picking "+p.Name+" is done; its warehouse can no longer be changed",
				)
			}
		}

		session = &ChangeWarehouseSession{
			svc:     s,
			auth:    auth,
			seedIDs: pickingIDs,
			seed:    seed,
			state:   SessionPending,
		}

		// The current warehouse is well-defined only when all seeds share one.
		if whID := sharedWarehouseID(seed); whID != uuid.Nil {
			wh, err := repos.WarehouseRepo().FindByID(ctx, whID)
			if err != nil {
				return err
			}
			session.currentWarehouse = wh
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func sharedWarehouseID(seed *stock.PickingSet) uuid.UUID {
	var whID uuid.UUID
	for _, p := range seed.Items() {
		id := p.WarehouseID()
		if whID == uuid.Nil {
			whID = id
		} else if whID != id {
			return uuid.Nil
		}
	}
	return whID
}

// CurrentWarehouse returns the warehouse shared by all seed pickings, or nil
// when the seeds span warehouses.
func (sess *ChangeWarehouseSession) CurrentWarehouse() *stock.Warehouse {
	return sess.currentWarehouse
}

// State returns the session's progress state
func (sess *ChangeWarehouseSession) State() SessionState {
	return sess.state
}

// SetTarget selects the destination warehouse and whether linked pickings in
// the chain follow along.
func (sess *ChangeWarehouseSession) SetTarget(ctx context.Context, warehouseID uuid.UUID, includeChained bool) error {
	if warehouseID == uuid.Nil {
		return shared.NewUserError("NO_TARGET_WAREHOUSE", "Please select a new warehouse")
	}
	return sess.svc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		wh, err := repos.WarehouseRepo().FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		sess.target = wh
		sess.includeChained = includeChained
		return nil
	})
}

// Preview returns the working set the session would reassign: the seed
// pickings, expanded to the full chain when includeChained is set.
func (sess *ChangeWarehouseSession) Preview() ChangeWarehousePreview {
	working := sess.workingSet(sess.seed)
	summaries := make([]PickingSummary, 0, working.Len())
	for _, p := range working.Items() {
		summaries = append(summaries, ToPickingSummary(p))
	}
	return ChangeWarehousePreview{ChainedPickings: summaries, Count: working.Len()}
}

func (sess *ChangeWarehouseSession) workingSet(seed *stock.PickingSet) *stock.PickingSet {
	if sess.includeChained {
		return sess.svc.discovery.Expand(seed.Items())
	}
	return seed
}

// Execute runs the reassignment: validate, expand, cancel with chain
// preservation, restore to draft, remap every document, re-confirm. The
// whole flow runs in one transaction; validation failures abort before any
// mutation.
func (sess *ChangeWarehouseSession) Execute(ctx context.Context) (*ChangeWarehouseResult, error) {
	if sess.target == nil {
		return nil, shared.NewUserError("NO_TARGET_WAREHOUSE", "Please select a new warehouse")
	}

	var result *ChangeWarehouseResult
	err := sess.svc.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Reload inside the transaction so the session never acts on stale
		// documents.
		pickings, err := repos.PickingRepo().FindByIDs(ctx, sess.seedIDs)
		if err != nil {
			return err
		}
		working := sess.workingSet(stock.NewPickingSet(pickings...))

		if err := sess.validate(working); err != nil {
			return err
		}
		sess.state = SessionValidated

		sourceWarehouses, err := sess.loadSourceWarehouses(ctx, repos, working)
		if err != nil {
			return err
		}

		if err := sess.cancelPreservingChains(working); err != nil {
			return err
		}
		sess.state = SessionCancelled

		if err := sess.svc.restorer.Restore(working.Moves()); err != nil {
			return err
		}
		for _, p := range working.Items() {
			p.RefreshState()
		}
		sess.state = SessionDrafted

		if err := sess.remapAll(working, sourceWarehouses); err != nil {
			return err
		}
		sess.state = SessionRemapped

		if err := sess.svc.confirmer.Confirm(working.Items()); err != nil {
			return err
		}
		sess.state = SessionConfirmed

		if err := repos.PickingRepo().SaveAll(ctx, working.Items()); err != nil {
			return err
		}

		sess.svc.logger.Info("pickings reassigned to new warehouse",
			zap.Int("count", working.Len()),
			zap.String("target_warehouse", sess.target.Code),
			zap.String("user_id", sess.auth.UserID.String()),
		)
		sess.svc.publishDomainEvents(ctx, working.Items())
		result = &ChangeWarehouseResult{UpdatedPickings: ToPickingResponses(working.Items())}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validate checks the whole working set before any mutation. A chain with
// some moves done and others cancellable aborts the session entirely rather
// than reassigning a partial chain.
func (sess *ChangeWarehouseSession) validate(working *stock.PickingSet) error {
	for _, p := range working.Items() {
		if p.WarehouseID() == sess.target.ID {
			return shared.NewUserError(
				"SAME_WAREHOUSE",
				"New warehouse must be different from current warehouse",
			)
		}
		for _, m := range p.Moves {
			if m.IsImmutable() {
				return shared.NewUserError(
					"PICKING_DONE",
					"Picking "+p.Name+" contains done moves; its warehouse can no longer be changed",
				)
			}
		}
	}
	return nil
}

func (sess *ChangeWarehouseSession) loadSourceWarehouses(ctx context.Context, repos TransactionalRepositories, working *stock.PickingSet) (map[uuid.UUID]*stock.Warehouse, error) {
	warehouses := make(map[uuid.UUID]*stock.Warehouse)
	for _, p := range working.Items() {
		whID := p.WarehouseID()
		if whID == uuid.Nil {
			return nil, shared.NewConfigurationError(
				"MISSING_OPERATION_TYPE",
				"Picking "+p.Name+" has no operation type and cannot be reassigned",
			)
		}
		if _, ok := warehouses[whID]; ok {
			continue
		}
		wh, err := repos.WarehouseRepo().FindByID(ctx, whID)
		if err != nil {
			return nil, err
		}
		warehouses[whID] = wh
	}
	return warehouses, nil
}

// cancelPreservingChains cancels every picking not already cancelled,
// keeping chain links intact. Already-cancelled documents skip straight to
// draft restoration.
func (sess *ChangeWarehouseSession) cancelPreservingChains(working *stock.PickingSet) error {
	toCancel := working.Filter(func(p *stock.Picking) bool { return p.State != stock.StateCancel })
	if toCancel.Len() == 0 {
		return nil
	}
	if err := sess.svc.canceller.Cancel(toCancel.Moves(), true); err != nil {
		return err
	}
	for _, p := range toCancel.Items() {
		p.RefreshState()
		p.AddDomainEvent(stock.NewPickingCancelledEvent(p, true))
	}
	return nil
}

func (sess *ChangeWarehouseSession) remapAll(working *stock.PickingSet, sources map[uuid.UUID]*stock.Warehouse) error {
	for _, p := range working.Items() {
		source := sources[p.WarehouseID()]
		if err := sess.svc.remapper.Remap(p, source, sess.target); err != nil {
			return err
		}
		p.AddDomainEvent(stock.NewWarehouseReassignedEvent(p, source.ID, sess.target.ID))
	}
	return nil
}

func (s *ChangeWarehouseService) publishDomainEvents(ctx context.Context, pickings []*stock.Picking) {
	if s.publisher == nil {
		return
	}
	for _, p := range pickings {
		events := p.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.publisher.Publish(ctx, events...)
		p.ClearDomainEvents()
	}
}
