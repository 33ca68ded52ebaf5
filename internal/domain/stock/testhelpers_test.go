package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustWarehouse(t *testing.T, name, code string, delivery DeliverySteps, reception ReceptionSteps) *Warehouse {
	t.Helper()
	w, err := NewWarehouse(name, code, delivery, reception)
	require.NoError(t, err)
	return w
}

func mustPicking(t *testing.T, name string, opType *OperationType, source, dest *Location) *Picking {
	t.Helper()
	p, err := NewPicking(name, opType, source, dest)
	require.NoError(t, err)
	return p
}

func mustMove(t *testing.T, ref string, opType *OperationType, w *Warehouse, source, dest *Location, qty int64, tracking Tracking) *Move {
	t.Helper()
	m, err := NewMove(ref, opType, w.ID, source, dest, decimal.NewFromInt(qty), tracking)
	require.NoError(t, err)
	return m
}

// deliveryChain is a 2-step delivery: a pick leg feeding a ship leg.
type deliveryChain struct {
	warehouse *Warehouse
	customer  *Location
	pick      *Picking
	ship      *Picking
	pickMove  *Move
	shipMove  *Move
}

// buildDeliveryChain builds a confirmed pick+ship chain in a 2-step delivery
// warehouse. The pick move feeds the ship move, so the ship leg is
// make_to_order and waits on the pick leg.
func buildDeliveryChain(t *testing.T, tracking Tracking) *deliveryChain {
	t.Helper()
	w := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)
	customer := NewPartnerLocation("Customers", UsageCustomer)

	pickType := w.OperationTypeBySequenceCode("PICK")
	outType := w.OperationTypeBySequenceCode("OUT")
	require.NotNil(t, pickType)
	require.NotNil(t, outType)

	pick := mustPicking(t, "CHI/PICK/0001", pickType, w.StockLocation, w.OutputLocation)
	ship := mustPicking(t, "CHI/OUT/0001", outType, w.OutputLocation, customer)

	pickMove := mustMove(t, "PICK/0001", pickType, w, w.StockLocation, w.OutputLocation, 2, tracking)
	shipMove := mustMove(t, "OUT/0001", outType, w, w.OutputLocation, customer, 2, tracking)

	pick.AddMove(pickMove)
	ship.AddMove(shipMove)
	pickMove.LinkSuccessor(shipMove)

	pickMove.State = StateConfirmed
	shipMove.State = StateWaiting
	pick.RefreshState()
	ship.RefreshState()

	return &deliveryChain{
		warehouse: w,
		customer:  customer,
		pick:      pick,
		ship:      ship,
		pickMove:  pickMove,
		shipMove:  shipMove,
	}
}
