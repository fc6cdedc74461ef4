package inventory

import (
	"context"

	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que stock y movimiento se escriban juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryItemRepository,
		movements repository.InventoryMovementRepository,
	) error) error
}
