package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// OperationKind is the coarse category of an operation type. It drives the
// location policy when a document is moved to another warehouse.
type OperationKind string

const (
	KindIncoming OperationKind = "incoming"
	KindOutgoing OperationKind = "outgoing"
	KindInternal OperationKind = "internal"
)

// IsValid checks if the kind is a known OperationKind
func (k OperationKind) IsValid() bool {
	switch k {
	case KindIncoming, KindOutgoing, KindInternal:
		return true
	}
	return false
}

// String returns the string representation of OperationKind
func (k OperationKind) String() string {
	return string(k)
}

// OperationType describes a category of picking (receipt, delivery, pick,
// internal transfer) scoped to exactly one warehouse. The SequenceCode
// (e.g. "IN", "OUT", "PICK") is the fine-grained identifier used to find
// the equivalent operation type in another warehouse; Kind is the coarse
// fallback.
type OperationType struct {
	shared.BaseEntity
	WarehouseID             uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name                    string        `gorm:"not null"`
	Kind                    OperationKind `gorm:"type:varchar(16);not null"`
	SequenceCode            string        `gorm:"type:varchar(16);not null;index"`
	DefaultSourceLocationID *uuid.UUID    `gorm:"type:uuid"`
	DefaultDestLocationID   *uuid.UUID    `gorm:"type:uuid"`

	DefaultSourceLocation *Location `gorm:"foreignKey:DefaultSourceLocationID"`
	DefaultDestLocation   *Location `gorm:"foreignKey:DefaultDestLocationID"`
}

// TableName returns the table name for GORM
func (OperationType) TableName() string {
	return "stock_operation_types"
}

// NewOperationType creates an operation type scoped to a warehouse
func NewOperationType(warehouseID uuid.UUID, name string, kind OperationKind, sequenceCode string) (*OperationType, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_OPERATION_KIND", "Unknown operation kind: "+string(kind))
	}
	if sequenceCode == "" {
		return nil, shared.NewValidationError("INVALID_SEQUENCE_CODE", "Sequence code cannot be empty")
	}
	return &OperationType{
		BaseEntity:   shared.NewBaseEntity(),
		WarehouseID:  warehouseID,
		Name:         name,
		Kind:         kind,
		SequenceCode: sequenceCode,
	}, nil
}
