package repository

import (
	"context"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para Service.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id int64) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	List(ctx context.Context) ([]*entity.Service, error)
	Count(ctx context.Context) (int, error)
}
