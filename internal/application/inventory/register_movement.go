package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

// RegisterMovementUseCase aplica movimientos al libro de inventario con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	allowNegative bool
	tracer        trace.Tracer
}

// NewRegisterMovementUseCase construye el caso de uso. allowNegative=false rechaza
// movimientos que dejarían el stock por debajo de cero.
func NewRegisterMovementUseCase(txRunner TxRunner, allowNegative bool) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		allowNegative: allowNegative,
		tracer:        otel.Tracer("barberia-api/inventory"),
	}
}

// ApplyMovement bloquea el ítem, suma changeQty al stock y registra el movimiento en la misma transacción.
// Cero es un cambio válido y queda registrado.
func (uc *RegisterMovementUseCase) ApplyMovement(ctx context.Context, itemID int64, changeQty decimal.Decimal, reason *string) (*entity.InventoryMovement, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.ApplyMovement", trace.WithAttributes(
		attribute.Int64("item_id", itemID),
		attribute.String("change_qty", changeQty.String()),
	))
	defer span.End()

	if err := validateQty("change_qty", changeQty); err != nil {
		return nil, err
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(items repository.InventoryItemRepository, movements repository.InventoryMovementRepository) error {
		item, err := items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: ítem %d", domain.ErrNotFound, itemID)
		}
		newStock := item.StockQty.Add(changeQty)
		if !uc.allowNegative && newStock.IsNegative() {
			return fmt.Errorf("%w: ítem %d tiene %s", domain.ErrInsufficientStock, itemID, item.StockQty.String())
		}
		if err := validateQty("stock_qty resultante", newStock); err != nil {
			return err
		}
		if err := items.UpdateStock(ctx, itemID, newStock); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{ItemID: itemID, ChangeQty: changeQty, Reason: reason}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return mov, nil
}

// RegisterMovementFromRequest adapta el request HTTP a ApplyMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, itemID int64, in dto.RegisterMovementRequest) (*dto.InventoryMovementResponse, error) {
	if in.ChangeQty == nil {
		return nil, fmt.Errorf("%w: change_qty es obligatorio", domain.ErrInvalidInput)
	}
	mov, err := uc.ApplyMovement(ctx, itemID, *in.ChangeQty, in.Reason)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.InventoryMovementResponse {
	return &dto.InventoryMovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ChangeQty: m.ChangeQty,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}
