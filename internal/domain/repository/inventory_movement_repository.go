package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryMovement, error)
	ListByItem(ctx context.Context, itemID int64, limit int) ([]*entity.InventoryMovement, error)
	// SumByItem devuelve Σ change_qty del ítem (cero si no hay movimientos).
	SumByItem(ctx context.Context, itemID int64) (decimal.Decimal, error)
}
