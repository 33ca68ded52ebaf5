package stock

import (
	"context"
	"testing"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memPickingRepo is an in-memory PickingRepository for service tests. The
// stored pickings are the same pointers the services mutate, matching the
// shared-graph contract of the real repository.
type memPickingRepo struct {
	pickings map[uuid.UUID]*stock.Picking
	saved    [][]*stock.Picking
}

func newMemPickingRepo(pickings ...*stock.Picking) *memPickingRepo {
	r := &memPickingRepo{pickings: make(map[uuid.UUID]*stock.Picking)}
	for _, p := range pickings {
		r.pickings[p.ID] = p
	}
	return r
}

func (r *memPickingRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.Picking, error) {
	p, ok := r.pickings[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memPickingRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*stock.Picking, error) {
	out := make([]*stock.Picking, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.pickings[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPickingRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, _ shared.Filter) ([]*stock.Picking, error) {
	var out []*stock.Picking
	for _, p := range r.pickings {
		if p.WarehouseID() == warehouseID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPickingRepo) Save(_ context.Context, p *stock.Picking) error {
	r.pickings[p.ID] = p
	r.saved = append(r.saved, []*stock.Picking{p})
	return nil
}

func (r *memPickingRepo) SaveAll(_ context.Context, pickings []*stock.Picking) error {
	for _, p := range pickings {
		r.pickings[p.ID] = p
	}
	r.saved = append(r.saved, pickings)
	return nil
}

func (r *memPickingRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.pickings)), nil
}

type memWarehouseRepo struct {
	warehouses map[uuid.UUID]*stock.Warehouse
}

func newMemWarehouseRepo(warehouses ...*stock.Warehouse) *memWarehouseRepo {
	r := &memWarehouseRepo{warehouses: make(map[uuid.UUID]*stock.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *memWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*stock.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w, nil
}

func (r *memWarehouseRepo) FindByCode(_ context.Context, code string) (*stock.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]*stock.Warehouse, error) {
	out := make([]*stock.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		out = append(out, w)
	}
	return out, nil
}

func (r *memWarehouseRepo) Save(_ context.Context, w *stock.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

type memMoveRepo struct{}

func (r *memMoveRepo) FindByID(_ context.Context, _ uuid.UUID) (*stock.Move, error) {
	return nil, shared.ErrNotFound
}

func (r *memMoveRepo) FindByPicking(_ context.Context, _ uuid.UUID) ([]*stock.Move, error) {
	return nil, nil
}

func (r *memMoveRepo) Save(_ context.Context, _ *stock.Move) error { return nil }

func (r *memMoveRepo) ReplaceLinks(_ context.Context, _ *stock.Move) error { return nil }

// capturingPublisher records every published event type in order
type capturingPublisher struct {
	eventTypes []string
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		p.eventTypes = append(p.eventTypes, ev.EventType())
	}
	return nil
}

// fixture is a 2-step delivery chain (pick feeding ship) in one warehouse,
// with a second warehouse available as a reassignment target.
type fixture struct {
	source   *stock.Warehouse
	target   *stock.Warehouse
	customer *stock.Location
	pick     *stock.Picking
	ship     *stock.Picking
	pickMove *stock.Move
	shipMove *stock.Move

	pickingRepo   *memPickingRepo
	warehouseRepo *memWarehouseRepo
	scope         *NoOpTransactionScope
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	source, err := stock.NewWarehouse("Chicago", "CHI", stock.DeliveryPickShip, stock.ReceptionOneStep)
	require.NoError(t, err)
	target, err := stock.NewWarehouse("Denver", "DEN", stock.DeliveryPickShip, stock.ReceptionOneStep)
	require.NoError(t, err)
	customer := stock.NewPartnerLocation("Customers", stock.UsageCustomer)

	pickType := source.OperationTypeBySequenceCode("PICK")
	outType := source.OperationTypeBySequenceCode("OUT")

	pick, err := stock.NewPicking("CHI/PICK/0001", pickType, source.StockLocation, source.OutputLocation)
	require.NoError(t, err)
	ship, err := stock.NewPicking("CHI/OUT/0001", outType, source.OutputLocation, customer)
	require.NoError(t, err)

	pickMove, err := stock.NewMove("PICK/0001", pickType, source.ID, source.StockLocation, source.OutputLocation, decimal.NewFromInt(2), stock.TrackingNone)
	require.NoError(t, err)
	shipMove, err := stock.NewMove("OUT/0001", outType, source.ID, source.OutputLocation, customer, decimal.NewFromInt(2), stock.TrackingNone)
	require.NoError(t, err)

	pick.AddMove(pickMove)
	ship.AddMove(shipMove)
	pickMove.LinkSuccessor(shipMove)
	pickMove.State = stock.StateConfirmed
	shipMove.State = stock.StateWaiting
	pick.RefreshState()
	ship.RefreshState()

	pickingRepo := newMemPickingRepo(pick, ship)
	warehouseRepo := newMemWarehouseRepo(source, target)

	return &fixture{
		source:        source,
		target:        target,
		customer:      customer,
		pick:          pick,
		ship:          ship,
		pickMove:      pickMove,
		shipMove:      shipMove,
		pickingRepo:   pickingRepo,
		warehouseRepo: warehouseRepo,
		scope:         NewNoOpTransactionScope(pickingRepo, &memMoveRepo{}, warehouseRepo),
	}
}

func authorized() AuthContext {
	return AuthContext{UserID: uuid.New(), Roles: []string{RoleCancelBackToDraft}}
}

func unauthorized() AuthContext {
	return AuthContext{UserID: uuid.New(), Roles: []string{"stock.user"}}
}
