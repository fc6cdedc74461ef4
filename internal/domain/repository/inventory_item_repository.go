package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para ítems de inventario.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// GetForUpdate obtiene el ítem bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// Update actualiza datos descriptivos; nunca stock_qty.
	Update(ctx context.Context, item *entity.InventoryItem) error
	// UpdateStock fija stock_qty. Solo lo usa el registro de movimientos.
	UpdateStock(ctx context.Context, id int64, qty decimal.Decimal) error
	// List ordena activos primero y luego por nombre.
	List(ctx context.Context, lowStockOnly bool) ([]*entity.InventoryItem, error)
}
