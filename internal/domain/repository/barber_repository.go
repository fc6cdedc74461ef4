package repository

import (
	"context"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// BarberRepository define el puerto de persistencia para Barber.
type BarberRepository interface {
	Create(ctx context.Context, barber *entity.Barber) error
	GetByID(ctx context.Context, id int64) (*entity.Barber, error)
	Update(ctx context.Context, barber *entity.Barber) error
	// List ordena activos primero y luego por nombre.
	List(ctx context.Context) ([]*entity.Barber, error)
	Count(ctx context.Context) (int, error)
}
