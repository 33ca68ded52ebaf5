package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliverySteps is the configured outbound routing of a warehouse.
type DeliverySteps string

const (
	DeliveryShipOnly     DeliverySteps = "ship_only"      // stock -> customer
	DeliveryPickShip     DeliverySteps = "pick_ship"      // stock -> output -> customer
	DeliveryPickPackShip DeliverySteps = "pick_pack_ship" // stock -> pack -> output -> customer
)

// ReceptionSteps is the configured inbound routing of a warehouse.
type ReceptionSteps string

const (
	ReceptionOneStep    ReceptionSteps = "one_step"    // supplier -> stock
	ReceptionTwoSteps   ReceptionSteps = "two_steps"   // supplier -> input -> stock
	ReceptionThreeSteps ReceptionSteps = "three_steps" // supplier -> input -> quality -> stock
)

// Warehouse owns a fixed set of named storage locations and one operation
// type per category. Which locations exist depends on the configured step
// count; input/output/pack are nil for warehouses that do not use them.
// It is the aggregate root for warehouse configuration.
type Warehouse struct {
	shared.BaseAggregateRoot
	Name           string         `gorm:"not null"`
	Code           string         `gorm:"type:varchar(8);not null;uniqueIndex"`
	DeliverySteps  DeliverySteps  `gorm:"type:varchar(16);not null;default:'ship_only'"`
	ReceptionSteps ReceptionSteps `gorm:"type:varchar(16);not null;default:'one_step'"`

	StockLocationID  uuid.UUID  `gorm:"type:uuid;not null"`
	InputLocationID  *uuid.UUID `gorm:"type:uuid"`
	OutputLocationID *uuid.UUID `gorm:"type:uuid"`
	PackLocationID   *uuid.UUID `gorm:"type:uuid"`

	StockLocation  *Location `gorm:"foreignKey:StockLocationID"`
	InputLocation  *Location `gorm:"foreignKey:InputLocationID"`
	OutputLocation *Location `gorm:"foreignKey:OutputLocationID"`
	PackLocation   *Location `gorm:"foreignKey:PackLocationID"`

	OperationTypes []OperationType `gorm:"foreignKey:WarehouseID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "stock_warehouses"
}

// NewWarehouse provisions a warehouse with the locations and operation types
// its step configuration calls for, mirroring how the host ERP sets up a
// warehouse: a main stock location always, input/output/pack only when the
// reception/delivery routing needs them, and one operation type per category
// with defaults pointing at the right locations.
func NewWarehouse(name, code string, delivery DeliverySteps, reception ReceptionSteps) (*Warehouse, error) {
	if name == "" || code == "" {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse name and code are required")
	}

	w := &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		DeliverySteps:     delivery,
		ReceptionSteps:    reception,
	}

	stockLoc := NewLocation(code+"/Stock", UsageInternal, &w.ID)
	w.StockLocationID = stockLoc.ID
	w.StockLocation = stockLoc

	if w.UsesMultiStepReception() {
		in := NewLocation(code+"/Input", UsageInternal, &w.ID)
		w.InputLocationID = &in.ID
		w.InputLocation = in
	}
	if w.UsesMultiStepDelivery() {
		out := NewLocation(code+"/Output", UsageInternal, &w.ID)
		w.OutputLocationID = &out.ID
		w.OutputLocation = out
	}
	if delivery == DeliveryPickPackShip {
		pack := NewLocation(code+"/Packing Zone", UsageInternal, &w.ID)
		w.PackLocationID = &pack.ID
		w.PackLocation = pack
	}

	if err := w.provisionOperationTypes(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Warehouse) provisionOperationTypes() error {
	receipts, err := NewOperationType(w.ID, w.Name+": Receipts", KindIncoming, "IN")
	if err != nil {
		return err
	}
	if w.UsesMultiStepReception() {
		receipts.DefaultDestLocationID = w.InputLocationID
		receipts.DefaultDestLocation = w.InputLocation
	} else {
		receipts.DefaultDestLocationID = &w.StockLocationID
		receipts.DefaultDestLocation = w.StockLocation
	}

	delivery, err := NewOperationType(w.ID, w.Name+": Delivery Orders", KindOutgoing, "OUT")
	if err != nil {
		return err
	}
	if w.UsesMultiStepDelivery() {
		delivery.DefaultSourceLocationID = w.OutputLocationID
		delivery.DefaultSourceLocation = w.OutputLocation
	} else {
		delivery.DefaultSourceLocationID = &w.StockLocationID
		delivery.DefaultSourceLocation = w.StockLocation
	}

	w.OperationTypes = []OperationType{*receipts, *delivery}

	if w.UsesMultiStepDelivery() {
		pick, err := NewOperationType(w.ID, w.Name+": Pick", KindInternal, "PICK")
		if err != nil {
			return err
		}
		pick.DefaultSourceLocationID = &w.StockLocationID
		pick.DefaultSourceLocation = w.StockLocation
		if w.DeliverySteps == DeliveryPickPackShip {
			pick.DefaultDestLocationID = w.PackLocationID
			pick.DefaultDestLocation = w.PackLocation

			pack, err := NewOperationType(w.ID, w.Name+": Pack", KindInternal, "PACK")
			if err != nil {
				return err
			}
			pack.DefaultSourceLocationID = w.PackLocationID
			pack.DefaultSourceLocation = w.PackLocation
			pack.DefaultDestLocationID = w.OutputLocationID
			pack.DefaultDestLocation = w.OutputLocation
			w.OperationTypes = append(w.OperationTypes, *pick, *pack)
		} else {
			pick.DefaultDestLocationID = w.OutputLocationID
			pick.DefaultDestLocation = w.OutputLocation
			w.OperationTypes = append(w.OperationTypes, *pick)
		}
	}
	if w.UsesMultiStepReception() {
		internal, err := NewOperationType(w.ID, w.Name+": Internal Transfers", KindInternal, "INT")
		if err != nil {
			return err
		}
		internal.DefaultSourceLocationID = w.InputLocationID
		internal.DefaultSourceLocation = w.InputLocation
		internal.DefaultDestLocationID = &w.StockLocationID
		internal.DefaultDestLocation = w.StockLocation
		w.OperationTypes = append(w.OperationTypes, *internal)
	}
	return nil
}

// UsesMultiStepDelivery reports whether deliveries pass through the output
// location before leaving the warehouse.
func (w *Warehouse) UsesMultiStepDelivery() bool {
	return w.DeliverySteps == DeliveryPickShip || w.DeliverySteps == DeliveryPickPackShip
}

// UsesMultiStepReception reports whether receipts land on the input location
// before being put away into stock.
func (w *Warehouse) UsesMultiStepReception() bool {
	return w.ReceptionSteps == ReceptionTwoSteps || w.ReceptionSteps == ReceptionThreeSteps
}

// RoleOf classifies a location by the structural role it plays in this
// warehouse. Locations the warehouse does not own get RoleNone.
func (w *Warehouse) RoleOf(locationID uuid.UUID) LocationRole {
	switch {
	case locationID == w.StockLocationID:
		return RoleStock
	case w.InputLocationID != nil && locationID == *w.InputLocationID:
		return RoleInput
	case w.OutputLocationID != nil && locationID == *w.OutputLocationID:
		return RoleOutput
	case w.PackLocationID != nil && locationID == *w.PackLocationID:
		return RolePack
	}
	return RoleNone
}

// LocationFor returns the location playing the given role, or nil if this
// warehouse's step configuration does not include it.
func (w *Warehouse) LocationFor(role LocationRole) *Location {
	switch role {
	case RoleStock:
		return w.StockLocation
	case RoleInput:
		return w.InputLocation
	case RoleOutput:
		return w.OutputLocation
	case RolePack:
		return w.PackLocation
	}
	return nil
}

// OperationTypeBySequenceCode finds an operation type by its fine-grained
// sequence code (e.g. "PICK"), or nil if the warehouse has none.
func (w *Warehouse) OperationTypeBySequenceCode(code string) *OperationType {
	for i := range w.OperationTypes {
		if w.OperationTypes[i].SequenceCode == code {
			return &w.OperationTypes[i]
		}
	}
	return nil
}

// OperationTypeByKind finds the first operation type of the given coarse
// category, or nil if the warehouse has none.
func (w *Warehouse) OperationTypeByKind(kind OperationKind) *OperationType {
	for i := range w.OperationTypes {
		if w.OperationTypes[i].Kind == kind {
			return &w.OperationTypes[i]
		}
	}
	return nil
}
