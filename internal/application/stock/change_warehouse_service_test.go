package stock

import (
	"context"
	"fmt"
	"testing"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChangeService(f *fixture) *ChangeWarehouseService {
	return NewChangeWarehouseService(f.scope, stock.NewInventoryEngine(), nil)
}

func TestChangeWarehouseService_OpenSessionRequiresRole(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)

	_, err := svc.OpenSession(context.Background(), unauthorized(), []uuid.UUID{f.ship.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_ROLE", domainErr.Code)
}

func TestChangeWarehouseService_OpenSessionRejectsEmptySelection(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)

	_, err := svc.OpenSession(context.Background(), authorized(), nil)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_PICKINGS", domainErr.Code)
}

func TestChangeWarehouseService_OpenSessionRejectsDonePicking(t *testing.T) {
	f := newFixture(t)
	f.shipMove.State = stock.StateDone
	svc := newChangeService(f)

	_, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PICKING_DONE", domainErr.Code)
}

func TestChangeWarehouseService_OpenSessionResolvesCurrentWarehouse(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)

	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.pick.ID, f.ship.ID})

	require.NoError(t, err)
	require.NotNil(t, session.CurrentWarehouse())
	assert.Equal(t, f.source.ID, session.CurrentWarehouse().ID)
	assert.Equal(t, SessionPending, session.State())
}

func TestChangeWarehouseSession_SetTarget(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)

	err = session.SetTarget(context.Background(), uuid.Nil, false)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_TARGET_WAREHOUSE", domainErr.Code)

	err = session.SetTarget(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, true))
}

func TestChangeWarehouseSession_PreviewExpandsChain(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, true))

	preview := session.Preview()

	assert.Equal(t, 2, preview.Count)
	names := []string{preview.ChainedPickings[0].Name, preview.ChainedPickings[1].Name}
	assert.ElementsMatch(t, []string{"CHI/OUT/0001", "CHI/PICK/0001"}, names)
}

func TestChangeWarehouseSession_PreviewWithoutChaining(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, false))

	preview := session.Preview()

	assert.Equal(t, 1, preview.Count)
	assert.Equal(t, "CHI/OUT/0001", preview.ChainedPickings[0].Name)
}

func TestChangeWarehouseSession_ExecuteRequiresTarget(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)

	_, err = session.Execute(context.Background())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_TARGET_WAREHOUSE", domainErr.Code)
}

func TestChangeWarehouseSession_ExecuteRejectsSameWarehouse(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.source.ID, false))

	_, err = session.Execute(context.Background())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SAME_WAREHOUSE", domainErr.Code)
	// Validation failed before any mutation.
	assert.Equal(t, stock.StateWaiting, f.shipMove.State)
	assert.Empty(t, f.pickingRepo.saved)
}

func TestChangeWarehouseSession_ExecuteRejectsDoneMoveInChain(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, true))

	// The pick leg completes between session opening and execution.
	f.pickMove.State = stock.StateDone

	_, err = session.Execute(context.Background())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PICKING_DONE", domainErr.Code)
	assert.Empty(t, f.pickingRepo.saved)
}

func TestChangeWarehouseSession_ExecuteReassignsWholeChain(t *testing.T) {
	f := newFixture(t)
	publisher := &capturingPublisher{}
	svc := newChangeService(f)
	svc.SetEventPublisher(publisher)

	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, true))

	result, err := session.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SessionConfirmed, session.State())
	require.Len(t, result.UpdatedPickings, 2)

	// Both documents now carry the target warehouse's context.
	assert.Equal(t, f.target.ID, f.pick.WarehouseID())
	assert.Equal(t, f.target.ID, f.ship.WarehouseID())
	assert.Equal(t, f.target.StockLocation.ID, f.pick.SourceLocationID)
	assert.Equal(t, f.target.OutputLocation.ID, f.pick.DestLocationID)
	assert.Equal(t, f.target.OutputLocation.ID, f.ship.SourceLocationID)
	assert.Equal(t, f.customer.ID, f.ship.DestLocationID)

	// The preserved chain re-confirmed: head pulls from stock, the linked
	// leg waits on it again.
	assert.Equal(t, stock.StateConfirmed, f.pickMove.State)
	assert.Equal(t, stock.StateWaiting, f.shipMove.State)
	assert.Equal(t, stock.MakeToOrder, f.shipMove.ProcureMethod)
	assert.True(t, f.shipMove.HasPredecessors())

	require.Len(t, f.pickingRepo.saved, 1)
	assert.Len(t, f.pickingRepo.saved[0], 2)

	assert.Contains(t, publisher.eventTypes, stock.EventTypePickingCancelled)
	assert.Contains(t, publisher.eventTypes, stock.EventTypeWarehouseReassigned)
}

// Reassigning many unrelated chains in one session must remap every document
// and keep each chain's links and reservations strictly to itself.
func TestChangeWarehouseSession_ExecuteBatchOfIndependentChains(t *testing.T) {
	source, err := stock.NewWarehouse("Chicago", "CHI", stock.DeliveryPickShip, stock.ReceptionOneStep)
	require.NoError(t, err)
	target, err := stock.NewWarehouse("Denver", "DEN", stock.DeliveryPickShip, stock.ReceptionOneStep)
	require.NoError(t, err)
	customer := stock.NewPartnerLocation("Customers", stock.UsageCustomer)

	pickType := source.OperationTypeBySequenceCode("PICK")
	outType := source.OperationTypeBySequenceCode("OUT")

	type chainPair struct {
		pick, ship         *stock.Picking
		pickMove, shipMove *stock.Move
	}

	const chainCount = 10
	chains := make([]chainPair, 0, chainCount)
	all := make([]*stock.Picking, 0, 2*chainCount)
	seeds := make([]uuid.UUID, 0, chainCount)
	for i := 0; i < chainCount; i++ {
		suffix := fmt.Sprintf("%04d", i+1)
		pick, err := stock.NewPicking("CHI/PICK/"+suffix, pickType, source.StockLocation, source.OutputLocation)
		require.NoError(t, err)
		ship, err := stock.NewPicking("CHI/OUT/"+suffix, outType, source.OutputLocation, customer)
		require.NoError(t, err)
		pickMove, err := stock.NewMove("PICK/"+suffix, pickType, source.ID, source.StockLocation, source.OutputLocation, decimal.NewFromInt(2), stock.TrackingLot)
		require.NoError(t, err)
		shipMove, err := stock.NewMove("OUT/"+suffix, outType, source.ID, source.OutputLocation, customer, decimal.NewFromInt(2), stock.TrackingLot)
		require.NoError(t, err)

		pick.AddMove(pickMove)
		ship.AddMove(shipMove)
		pickMove.LinkSuccessor(shipMove)
		pickMove.State = stock.StateConfirmed
		shipMove.State = stock.StateWaiting
		// Each pick leg holds a reservation on its own lot.
		pickMove.Reserve([]stock.MoveLine{*stock.NewMoveLine(pickMove.ID, "LOT-"+suffix, decimal.NewFromInt(2))})
		pick.RefreshState()
		ship.RefreshState()

		chains = append(chains, chainPair{pick: pick, ship: ship, pickMove: pickMove, shipMove: shipMove})
		all = append(all, pick, ship)
		seeds = append(seeds, ship.ID)
	}

	pickingRepo := newMemPickingRepo(all...)
	scope := NewNoOpTransactionScope(pickingRepo, &memMoveRepo{}, newMemWarehouseRepo(source, target))
	svc := NewChangeWarehouseService(scope, stock.NewInventoryEngine(), nil)

	session, err := svc.OpenSession(context.Background(), authorized(), seeds)
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), target.ID, true))
	assert.Equal(t, 2*chainCount, session.Preview().Count)

	result, err := session.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, result.UpdatedPickings, 2*chainCount)

	targetPick := target.OperationTypeBySequenceCode("PICK")
	targetOut := target.OperationTypeBySequenceCode("OUT")
	require.NotNil(t, targetPick)
	require.NotNil(t, targetOut)

	for _, ch := range chains {
		// Every document carries the target's equivalent operation type.
		assert.Equal(t, targetPick.ID, ch.pick.OperationType.ID)
		assert.Equal(t, targetOut.ID, ch.ship.OperationType.ID)
		assert.Equal(t, target.ID, ch.pick.WarehouseID())
		assert.Equal(t, target.ID, ch.ship.WarehouseID())
		assert.Equal(t, target.StockLocation.ID, ch.pickMove.SourceLocationID)
		assert.Equal(t, target.OutputLocation.ID, ch.pickMove.DestLocationID)
		assert.Equal(t, target.OutputLocation.ID, ch.shipMove.SourceLocationID)
		assert.Equal(t, customer.ID, ch.shipMove.DestLocationID)

		// Old reservations are gone and no line leaked in from another chain.
		assert.Empty(t, ch.pickMove.Lines)
		assert.Empty(t, ch.shipMove.Lines)

		// The link topology is still exactly one edge inside the chain.
		require.Len(t, ch.pickMove.Successors, 1)
		assert.Equal(t, ch.shipMove.ID, ch.pickMove.Successors[0].ID)
		require.Len(t, ch.shipMove.Predecessors, 1)
		assert.Equal(t, ch.pickMove.ID, ch.shipMove.Predecessors[0].ID)
		assert.Empty(t, ch.pickMove.Predecessors)
		assert.Empty(t, ch.shipMove.Successors)

		assert.Equal(t, stock.StateConfirmed, ch.pickMove.State)
		assert.Equal(t, stock.StateWaiting, ch.shipMove.State)
		assert.Equal(t, stock.MakeToOrder, ch.shipMove.ProcureMethod)
	}
}

func TestChangeWarehouseSession_ExecuteWithoutChainingLeavesLinkedPicking(t *testing.T) {
	f := newFixture(t)
	svc := newChangeService(f)
	session, err := svc.OpenSession(context.Background(), authorized(), []uuid.UUID{f.ship.ID})
	require.NoError(t, err)
	require.NoError(t, session.SetTarget(context.Background(), f.target.ID, false))

	_, err = session.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, f.target.ID, f.ship.WarehouseID())
	// The pick leg was outside the working set; cancellation never cascades
	// upstream, so it keeps its warehouse and state.
	assert.Equal(t, f.source.ID, f.pick.WarehouseID())
	assert.Equal(t, stock.StateConfirmed, f.pickMove.State)
}
