package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo o producto con stock propio.
// StockQty solo cambia a través de movimientos; InitialQty guarda el valor de siembra
// para poder verificar StockQty = InitialQty + Σ movimientos.
type InventoryItem struct {
	ID                int64
	Name              string
	StockQty          decimal.Decimal
	InitialQty        decimal.Decimal
	Unit              string
	CostCents         int64
	PriceCents        int64
	LowStockThreshold decimal.Decimal
	Active            bool
	CreatedAt         time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral.
func (i *InventoryItem) IsLowStock() bool {
	return i.StockQty.LessThanOrEqual(i.LowStockThreshold)
}
