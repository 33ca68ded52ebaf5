package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for stock document events
const (
	EventTypePickingCancelled    = "stock.picking.cancelled"
	EventTypePickingBackToDraft  = "stock.picking.back_to_draft"
	EventTypeWarehouseReassigned = "stock.picking.warehouse_reassigned"
)

// PickingCancelledEvent is emitted when a picking's moves are cancelled
type PickingCancelledEvent struct {
	shared.BaseDomainEvent
	PickingName    string `json:"picking_name"`
	ChainPreserved bool   `json:"chain_preserved"`
}

// NewPickingCancelledEvent creates a new PickingCancelledEvent
func NewPickingCancelledEvent(p *Picking, chainPreserved bool) *PickingCancelledEvent {
	return &PickingCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingCancelled, "Picking", p.ID),
		PickingName:     p.Name,
		ChainPreserved:  chainPreserved,
	}
}

// PickingBackToDraftEvent is emitted when a cancelled picking is reset to draft
type PickingBackToDraftEvent struct {
	shared.BaseDomainEvent
	PickingName string `json:"picking_name"`
}

// NewPickingBackToDraftEvent creates a new PickingBackToDraftEvent
func NewPickingBackToDraftEvent(p *Picking) *PickingBackToDraftEvent {
	return &PickingBackToDraftEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePickingBackToDraft, "Picking", p.ID),
		PickingName:     p.Name,
	}
}

// WarehouseReassignedEvent is emitted when a picking is remapped to another
// warehouse
type WarehouseReassignedEvent struct {
	shared.BaseDomainEvent
	PickingName     string    `json:"picking_name"`
	FromWarehouseID uuid.UUID `json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID `json:"to_warehouse_id"`
}

// NewWarehouseReassignedEvent creates a new WarehouseReassignedEvent
func NewWarehouseReassignedEvent(p *Picking, from, to uuid.UUID) *WarehouseReassignedEvent {
	return &WarehouseReassignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWarehouseReassigned, "Picking", p.ID),
		PickingName:     p.Name,
		FromWarehouseID: from,
		ToWarehouseID:   to,
	}
}
