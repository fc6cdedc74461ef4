package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// CashMovementRepository define el puerto para el libro de caja (solo inserción).
type CashMovementRepository interface {
	Create(ctx context.Context, movement *entity.CashMovement) error
	GetByID(ctx context.Context, id int64) (*entity.CashMovement, error)
	// List filtra por created_at con límites inclusivos; más recientes primero.
	List(ctx context.Context, from, to *time.Time, limit int) ([]*entity.CashMovement, error)
	// Summarize suma entradas y salidas en el rango (límites inclusivos).
	Summarize(ctx context.Context, from, to *time.Time) (entity.CashSummary, error)
}
