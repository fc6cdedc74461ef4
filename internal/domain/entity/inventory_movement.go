package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryMovement representa un movimiento de inventario (positivo entrada, negativo salida).
// Es de solo inserción.
type InventoryMovement struct {
	ID        int64
	ItemID    int64
	ChangeQty decimal.Decimal
	Reason    *string
	CreatedAt time.Time
}
