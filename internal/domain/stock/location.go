package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationUsage describes who owns a storage location. External usages
// (supplier, customer) never belong to a warehouse and are never remapped
// when a document changes warehouse.
type LocationUsage string

const (
	UsageInternal LocationUsage = "internal"
	UsageSupplier LocationUsage = "supplier"
	UsageCustomer LocationUsage = "customer"
	UsageTransit  LocationUsage = "transit"
	UsageView     LocationUsage = "view"
)

// IsValid checks if the usage is a known LocationUsage
func (u LocationUsage) IsValid() bool {
	switch u {
	case UsageInternal, UsageSupplier, UsageCustomer, UsageTransit, UsageView:
		return true
	}
	return false
}

// IsExternal reports whether the location is owned by a business partner
// rather than a warehouse.
func (u LocationUsage) IsExternal() bool {
	return u == UsageSupplier || u == UsageCustomer
}

// LocationRole is the structural role a location plays inside its warehouse.
// Remapping matches locations across warehouses by role, not by identity:
// the pick leg of a 2-step delivery must land on the target warehouse's
// output location even though the records differ.
type LocationRole string

const (
	RoleStock  LocationRole = "stock"
	RoleInput  LocationRole = "input"
	RoleOutput LocationRole = "output"
	RolePack   LocationRole = "pack"
	RoleNone   LocationRole = "none"
)

// Location represents a storage location. Internal locations belong to
// exactly one warehouse; supplier/customer locations stand alone.
type Location struct {
	shared.BaseEntity
	Name        string        `gorm:"not null"`
	Usage       LocationUsage `gorm:"type:varchar(16);not null;default:'internal'"`
	WarehouseID *uuid.UUID    `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "stock_locations"
}

// NewLocation creates a warehouse-owned internal location
func NewLocation(name string, usage LocationUsage, warehouseID *uuid.UUID) *Location {
	return &Location{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Usage:       usage,
		WarehouseID: warehouseID,
	}
}

// NewPartnerLocation creates a supplier- or customer-owned location
func NewPartnerLocation(name string, usage LocationUsage) *Location {
	return NewLocation(name, usage, nil)
}
