package stock

import (
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoveLine is a concrete reservation/execution record for a move, optionally
// carrying a lot/serial identity. Lines are owned by their move and are
// destroyed and recreated as the reservation changes.
type MoveLine struct {
	shared.BaseEntity
	MoveID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotName  string          `gorm:"type:varchar(64)"` // lot/serial identity, empty when untracked
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Picked   bool            `gorm:"not null;default:false"` // true once an operator recorded this unit
}

// TableName returns the table name for GORM
func (MoveLine) TableName() string {
	return "stock_move_lines"
}

// NewMoveLine creates a reservation line for a move
func NewMoveLine(moveID uuid.UUID, lotName string, quantity decimal.Decimal) *MoveLine {
	return &MoveLine{
		BaseEntity: shared.NewBaseEntity(),
		MoveID:     moveID,
		LotName:    lotName,
		Quantity:   quantity,
	}
}
