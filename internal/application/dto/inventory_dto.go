package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory/items.
// StockQty, si viene, es el valor de siembra del libro.
type CreateInventoryItemRequest struct {
	Name              string           `json:"name"`
	StockQty          *decimal.Decimal `json:"stock_qty"`
	Unit              *string          `json:"unit"`
	CostCents         *int64           `json:"cost_cents"`
	PriceCents        *int64           `json:"price_cents"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	Active            *bool            `json:"active"`
}

// UpdateInventoryItemRequest body para PUT /api/inventory/items/:id.
// No incluye stock_qty: el stock solo cambia con movimientos.
type UpdateInventoryItemRequest struct {
	Name              *string          `json:"name"`
	Unit              *string          `json:"unit"`
	CostCents         *int64           `json:"cost_cents"`
	PriceCents        *int64           `json:"price_cents"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	Active            *bool            `json:"active"`
}

// InventoryItemResponse salida de un ítem.
type InventoryItemResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	StockQty          decimal.Decimal `json:"stock_qty"`
	Unit              string          `json:"unit"`
	CostCents         int64           `json:"cost_cents"`
	PriceCents        int64           `json:"price_cents"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// RegisterMovementRequest body para POST /api/inventory/items/:id/movements.
type RegisterMovementRequest struct {
	ChangeQty *decimal.Decimal `json:"change_qty"`
	Reason    *string          `json:"reason"`
}

// InventoryMovementResponse salida de un movimiento.
type InventoryMovementResponse struct {
	ID        int64           `json:"id"`
	ItemID    int64           `json:"item_id"`
	ChangeQty decimal.Decimal `json:"change_qty"`
	Reason    *string         `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReconcileResponse verificación del libro: stock_qty = initial_qty + movements_total.
type ReconcileResponse struct {
	ItemID         int64           `json:"item_id"`
	StockQty       decimal.Decimal `json:"stock_qty"`
	InitialQty     decimal.Decimal `json:"initial_qty"`
	MovementsTotal decimal.Decimal `json:"movements_total"`
	Consistent     bool            `json:"consistent"`
}
