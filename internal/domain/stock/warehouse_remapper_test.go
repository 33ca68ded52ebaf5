package stock

import (
	"testing"

	"github.com/erp/stockops/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseRemapper_OutgoingKeepsCustomerDestination(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)
	target := mustWarehouse(t, "Denver", "DEN", DeliveryPickShip, ReceptionOneStep)
	customer := NewPartnerLocation("Customers", UsageCustomer)

	outType := source.OperationTypeBySequenceCode("OUT")
	ship := mustPicking(t, "CHI/OUT/0001", outType, source.OutputLocation, customer)
	move := mustMove(t, "OUT/1", outType, source, source.OutputLocation, customer, 1, TrackingNone)
	ship.AddMove(move)

	require.NoError(t, NewWarehouseRemapper().Remap(ship, source, target))

	wantType := target.OperationTypeBySequenceCode("OUT")
	assert.Equal(t, wantType.ID, ship.OperationTypeID)
	assert.Equal(t, target.OutputLocation.ID, ship.SourceLocationID)
	assert.Equal(t, customer.ID, ship.DestLocationID)

	// The move carries exactly the picking's resolved context.
	assert.Equal(t, wantType.ID, move.OperationTypeID)
	assert.Equal(t, target.ID, move.WarehouseID)
	assert.Equal(t, target.OutputLocation.ID, move.SourceLocationID)
	assert.Equal(t, customer.ID, move.DestLocationID)
}

func TestWarehouseRemapper_OutgoingToSingleStepUsesStock(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)
	target := mustWarehouse(t, "Reno", "REN", DeliveryShipOnly, ReceptionOneStep)
	customer := NewPartnerLocation("Customers", UsageCustomer)

	outType := source.OperationTypeBySequenceCode("OUT")
	ship := mustPicking(t, "CHI/OUT/0002", outType, source.OutputLocation, customer)

	require.NoError(t, NewWarehouseRemapper().Remap(ship, source, target))

	assert.Equal(t, target.StockLocation.ID, ship.SourceLocationID)
	assert.Equal(t, customer.ID, ship.DestLocationID)
}

func TestWarehouseRemapper_InternalLegMapsByRole(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)
	target := mustWarehouse(t, "Denver", "DEN", DeliveryPickShip, ReceptionOneStep)

	pickType := source.OperationTypeBySequenceCode("PICK")
	pick := mustPicking(t, "CHI/PICK/0001", pickType, source.StockLocation, source.OutputLocation)

	require.NoError(t, NewWarehouseRemapper().Remap(pick, source, target))

	// stock -> output in the old warehouse becomes stock -> output in the
	// new one even though the location records differ.
	assert.Equal(t, target.StockLocation.ID, pick.SourceLocationID)
	assert.Equal(t, target.OutputLocation.ID, pick.DestLocationID)
	assert.Equal(t, target.OperationTypeBySequenceCode("PICK").ID, pick.OperationTypeID)
}

func TestWarehouseRemapper_KindFallbackWhenSequenceCodeMissing(t *testing.T) {
	source := mustWarehouse(t, "Denver", "DEN", DeliveryPickPackShip, ReceptionOneStep)
	target := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)

	packType := source.OperationTypeBySequenceCode("PACK")
	require.NotNil(t, packType)
	pack := mustPicking(t, "DEN/PACK/0001", packType, source.PackLocation, source.OutputLocation)

	require.NoError(t, NewWarehouseRemapper().Remap(pack, source, target))

	// No "PACK" in a 2-step target; the internal kind fallback picks the
	// pick operation type. The pack role has no counterpart either, so the
	// source falls back to the new type's default.
	newType := target.OperationTypeBySequenceCode("PICK")
	assert.Equal(t, newType.ID, pack.OperationTypeID)
	assert.Equal(t, target.StockLocation.ID, pack.SourceLocationID)
	assert.Equal(t, target.OutputLocation.ID, pack.DestLocationID)
}

func TestWarehouseRemapper_NoEquivalentOperationType(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryPickShip, ReceptionOneStep)
	target := mustWarehouse(t, "Reno", "REN", DeliveryShipOnly, ReceptionOneStep)

	pickType := source.OperationTypeBySequenceCode("PICK")
	pick := mustPicking(t, "CHI/PICK/0002", pickType, source.StockLocation, source.OutputLocation)

	err := NewWarehouseRemapper().Remap(pick, source, target)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_EQUIVALENT_OPERATION_TYPE", domainErr.Code)
	assert.Equal(t, shared.KindConfiguration, domainErr.Kind)
}

func TestWarehouseRemapper_IncomingFollowsTargetReception(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryShipOnly, ReceptionOneStep)
	target := mustWarehouse(t, "Denver", "DEN", DeliveryShipOnly, ReceptionTwoSteps)
	supplier := NewPartnerLocation("Suppliers", UsageSupplier)

	inType := source.OperationTypeBySequenceCode("IN")
	receipt := mustPicking(t, "CHI/IN/0001", inType, supplier, source.StockLocation)

	require.NoError(t, NewWarehouseRemapper().Remap(receipt, source, target))

	assert.Equal(t, supplier.ID, receipt.SourceLocationID)
	assert.Equal(t, target.InputLocation.ID, receipt.DestLocationID)
}

func TestWarehouseRemapper_MissingOperationType(t *testing.T) {
	source := mustWarehouse(t, "Chicago", "CHI", DeliveryShipOnly, ReceptionOneStep)
	target := mustWarehouse(t, "Denver", "DEN", DeliveryShipOnly, ReceptionOneStep)
	customer := NewPartnerLocation("Customers", UsageCustomer)

	ship := mustPicking(t, "CHI/OUT/0003", source.OperationTypeBySequenceCode("OUT"), source.StockLocation, customer)
	ship.OperationType = nil

	err := NewWarehouseRemapper().Remap(ship, source, target)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_OPERATION_TYPE", domainErr.Code)
}
