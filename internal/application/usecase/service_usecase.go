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

// ServiceUseCase casos de uso CRUD para el catálogo de servicios.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create crea un servicio. name, duration_min y price_cents son obligatorios.
func (uc *ServiceUseCase) Create(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.DurationMin == nil || in.PriceCents == nil {
		return nil, fmt.Errorf("%w: name, duration_min y price_cents son obligatorios", domain.ErrInvalidInput)
	}
	svc := &entity.Service{Name: name, DurationMin: *in.DurationMin, PriceCents: *in.PriceCents, Active: true}
	if in.Active != nil {
		svc.Active = *in.Active
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// Update actualiza un servicio (parcial).
func (uc *ServiceUseCase) Update(ctx context.Context, id int64, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: servicio %d", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.DurationMin != nil {
		svc.DurationMin = *in.DurationMin
	}
	if in.PriceCents != nil {
		svc.PriceCents = *in.PriceCents
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

// List lista servicios: activos primero, luego por nombre.
func (uc *ServiceUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toServiceResponse(s))
	}
	return out, nil
}

func validateService(s *entity.Service) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
	case s.DurationMin <= 0:
		return fmt.Errorf("%w: duration_min debe ser mayor que cero", domain.ErrInvalidInput)
	case s.PriceCents <= 0:
		return fmt.Errorf("%w: price_cents debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		DurationMin: s.DurationMin,
		PriceCents:  s.PriceCents,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}
