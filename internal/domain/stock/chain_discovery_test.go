package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainDiscovery_ExpandsBothDirections(t *testing.T) {
	w := mustWarehouse(t, "Denver", "DEN", DeliveryPickPackShip, ReceptionOneStep)
	customer := NewPartnerLocation("Customers", UsageCustomer)

	pickType := w.OperationTypeBySequenceCode("PICK")
	packType := w.OperationTypeBySequenceCode("PACK")
	outType := w.OperationTypeBySequenceCode("OUT")

	pickP := mustPicking(t, "DEN/PICK/0001", pickType, w.StockLocation, w.PackLocation)
	packP := mustPicking(t, "DEN/PACK/0001", packType, w.PackLocation, w.OutputLocation)
	shipP := mustPicking(t, "DEN/OUT/0001", outType, w.OutputLocation, customer)

	pickM := mustMove(t, "PICK/1", pickType, w, w.StockLocation, w.PackLocation, 1, TrackingNone)
	packM := mustMove(t, "PACK/1", packType, w, w.PackLocation, w.OutputLocation, 1, TrackingNone)
	shipM := mustMove(t, "OUT/1", outType, w, w.OutputLocation, customer, 1, TrackingNone)
	pickP.AddMove(pickM)
	packP.AddMove(packM)
	shipP.AddMove(shipM)
	pickM.LinkSuccessor(packM)
	packM.LinkSuccessor(shipM)

	// Seeding the middle leg must reach both ends of the route.
	set := NewChainDiscovery().Expand([]*Picking{packP})

	require.Equal(t, 3, set.Len())
	assert.True(t, set.Contains(pickP.ID))
	assert.True(t, set.Contains(packP.ID))
	assert.True(t, set.Contains(shipP.ID))
	// The seed stays first.
	assert.Equal(t, packP.ID, set.Items()[0].ID)
}

func TestChainDiscovery_SeedOnlyWhenUnlinked(t *testing.T) {
	chain := buildDeliveryChain(t, TrackingNone)
	lone := mustPicking(t, "CHI/PICK/0099", chain.pick.OperationType, chain.warehouse.StockLocation, chain.warehouse.OutputLocation)

	set := NewChainDiscovery().Expand([]*Picking{lone})

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains(lone.ID))
}

func TestChainDiscovery_DeduplicatesOverlappingSeeds(t *testing.T) {
	chain := buildDeliveryChain(t, TrackingNone)

	set := NewChainDiscovery().Expand([]*Picking{chain.pick, chain.ship, chain.pick})

	assert.Equal(t, 2, set.Len())
}

func TestChainDiscovery_ToleratesCyclicLinks(t *testing.T) {
	chain := buildDeliveryChain(t, TrackingNone)
	// Malformed data: the ship leg also feeds the pick leg.
	chain.shipMove.LinkSuccessor(chain.pickMove)

	set := NewChainDiscovery().Expand([]*Picking{chain.pick})

	assert.Equal(t, 2, set.Len())
}

func TestChainDiscovery_SkipsMovesWithoutOwner(t *testing.T) {
	chain := buildDeliveryChain(t, TrackingNone)
	orphan := mustMove(t, "OUT/ORPHAN", chain.ship.OperationType, chain.warehouse, chain.warehouse.OutputLocation, chain.customer, 1, TrackingNone)
	chain.shipMove.LinkSuccessor(orphan)

	set := NewChainDiscovery().Expand([]*Picking{chain.pick})

	assert.Equal(t, 2, set.Len())
}
