package stock

import (
	"fmt"

	"github.com/erp/stockops/internal/domain/shared"
)

// WarehouseRemapper rewrites a picking's operation type and locations to
// their equivalents in a target warehouse, then stamps the same resolved
// context onto every owned move.
//
// Locations are matched by the structural role they play in the old
// warehouse (main stock / input / output / pack), never by identity:
// the interior legs of a multi-step chain must land on the semantically
// corresponding location in the target even though the physical records
// differ. Supplier- and customer-owned locations are outside any warehouse
// and always survive untouched.
type WarehouseRemapper struct{}

// NewWarehouseRemapper creates a new remapper
func NewWarehouseRemapper() *WarehouseRemapper {
	return &WarehouseRemapper{}
}

// Remap rewrites picking to belong to target. The source warehouse is the
// one currently owning the picking's operation type; it is needed to
// classify the old locations by role.
//
// Each move receives exactly the context resolved for its picking; nothing
// is recomputed per move, so remapping a batch has no ordering dependency.
func (r *WarehouseRemapper) Remap(picking *Picking, source, target *Warehouse) error {
	oldType := picking.OperationType
	if oldType == nil {
		return shared.NewConfigurationError("MISSING_OPERATION_TYPE", "Picking has no operation type loaded")
	}

	newType := target.OperationTypeBySequenceCode(oldType.SequenceCode)
	if newType == nil {
		newType = target.OperationTypeByKind(oldType.Kind)
	}
	if newType == nil {
		return shared.NewConfigurationError(
			"NO_EQUIVALENT_OPERATION_TYPE",
			fmt.Sprintf("Could not find an equivalent %s operation type in warehouse %q for operation %q",
				oldType.Kind, target.Name, oldType.Name),
		)
	}

	newSource := r.resolveSource(picking.SourceLocation, newType, source, target)
	newDest := r.resolveDest(picking.DestLocation, newType, source, target)

	picking.SetOperationContext(newType, newSource, newDest)
	for _, m := range picking.Moves {
		m.OperationTypeID = newType.ID
		m.WarehouseID = target.ID
		m.SourceLocationID = newSource.ID
		m.SourceLocation = newSource
		m.DestLocationID = newDest.ID
		m.DestLocation = newDest
	}
	return nil
}

// resolveSource applies the source-location policy, first match wins.
func (r *WarehouseRemapper) resolveSource(old *Location, newType *OperationType, source, target *Warehouse) *Location {
	// Receipts keep their supplier source; return flows keep their customer
	// source.
	if old != nil && old.Usage.IsExternal() {
		return old
	}

	if newType.Kind == KindInternal && old != nil {
		switch source.RoleOf(old.ID) {
		case RoleStock:
			return target.StockLocation
		case RoleOutput:
			if loc := target.OutputLocation; loc != nil {
				return loc
			}
		case RoleInput:
			if loc := target.InputLocation; loc != nil {
				return loc
			}
		case RolePack:
			if loc := target.PackLocation; loc != nil {
				return loc
			}
		}
	}

	if newType.Kind == KindOutgoing {
		if target.UsesMultiStepDelivery() {
			return target.OutputLocation
		}
		return target.StockLocation
	}

	if newType.Kind == KindIncoming && old != nil {
		return old
	}

	if newType.DefaultSourceLocation != nil {
		return newType.DefaultSourceLocation
	}
	return target.StockLocation
}

// resolveDest mirrors resolveSource symmetrically.
func (r *WarehouseRemapper) resolveDest(old *Location, newType *OperationType, source, target *Warehouse) *Location {
	// Deliveries keep their customer destination; supplier returns keep the
	// supplier destination.
	if old != nil && old.Usage.IsExternal() {
		return old
	}

	if newType.Kind == KindInternal && old != nil {
		switch source.RoleOf(old.ID) {
		case RoleOutput:
			if loc := target.OutputLocation; loc != nil {
				return loc
			}
		case RoleStock:
			return target.StockLocation
		case RolePack:
			if loc := target.PackLocation; loc != nil {
				return loc
			}
		case RoleInput:
			if loc := target.InputLocation; loc != nil {
				return loc
			}
		}
	}

	if newType.Kind == KindOutgoing && old != nil {
		return old
	}

	if newType.Kind == KindIncoming {
		if target.UsesMultiStepReception() {
			return target.InputLocation
		}
		return target.StockLocation
	}

	if newType.DefaultDestLocation != nil {
		return newType.DefaultDestLocation
	}
	return target.StockLocation
}
