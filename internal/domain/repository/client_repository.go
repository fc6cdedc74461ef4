package repository

import (
	"context"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	// List busca por nombre o teléfono cuando query no está vacío; más recientes primero.
	List(ctx context.Context, query string, limit int) ([]*entity.Client, error)
}
