package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

// BarberUseCase casos de uso CRUD para barberos.
type BarberUseCase struct {
	repo repository.BarberRepository
}

// NewBarberUseCase construye el caso de uso.
func NewBarberUseCase(repo repository.BarberRepository) *BarberUseCase {
	return &BarberUseCase{repo: repo}
}

// Create crea un barbero. Activo por defecto.
func (uc *BarberUseCase) Create(ctx context.Context, in dto.CreateBarberRequest) (*dto.BarberResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	barber := &entity.Barber{Name: name, Phone: in.Phone, Email: in.Email, Active: true}
	if in.Active != nil {
		barber.Active = *in.Active
	}
	if err := uc.repo.Create(ctx, barber); err != nil {
		return nil, err
	}
	return toBarberResponse(barber), nil
}

// Update actualiza un barbero (parcial).
func (uc *BarberUseCase) Update(ctx context.Context, id int64, in dto.UpdateBarberRequest) (*dto.BarberResponse, error) {
	barber, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, fmt.Errorf("%w: barbero %d", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		barber.Name = name
	}
	if in.Phone != nil {
		barber.Phone = in.Phone
	}
	if in.Email != nil {
		barber.Email = in.Email
	}
	if in.Active != nil {
		barber.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, barber); err != nil {
		return nil, err
	}
	return toBarberResponse(barber), nil
}

// List lista barberos: activos primero, luego por nombre.
func (uc *BarberUseCase) List(ctx context.Context) ([]dto.BarberResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BarberResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBarberResponse(b))
	}
	return out, nil
}

func toBarberResponse(b *entity.Barber) *dto.BarberResponse {
	return &dto.BarberResponse{
		ID:        b.ID,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}
