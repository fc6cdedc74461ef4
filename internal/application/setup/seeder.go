package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/barberia-api/internal/application/auth"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// Config datos del usuario administrador inicial.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Seeder crea datos iniciales cuando las tablas están vacías. Es idempotente.
type Seeder struct {
	users    repository.UserRepository
	services repository.ServiceRepository
	barbers  repository.BarberRepository
	cfg      Config
	log      *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(users repository.UserRepository, services repository.ServiceRepository, barbers repository.BarberRepository, cfg Config, log *logger.Logger) *Seeder {
	return &Seeder{users: users, services: services, barbers: barbers, cfg: cfg, log: log}
}

func strPtr(s string) *string { return &s }

var defaultServices = []entity.Service{
	{Name: "Corte Masculino", DurationMin: 40, PriceCents: 4000, Active: true},
	{Name: "Barba Completa", DurationMin: 30, PriceCents: 3000, Active: true},
	{Name: "Corte + Barba", DurationMin: 60, PriceCents: 6500, Active: true},
}

var defaultBarbers = []entity.Barber{
	{Name: "João", Phone: strPtr("55999999999"), Email: strPtr("joao@barbearia.local"), Active: true},
	{Name: "Carlos", Phone: strPtr("55888888888"), Email: strPtr("carlos@barbearia.local"), Active: true},
}

// Run siembra admin, servicios y barberos si no existen.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.seedServices(ctx); err != nil {
		return fmt.Errorf("seed servicios: %w", err)
	}
	if err := s.seedBarbers(ctx); err != nil {
		return fmt.Errorf("seed barberos: %w", err)
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	hash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	u := &entity.User{
		Name:         "Administrador",
		Email:        strings.ToLower(s.cfg.AdminEmail),
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.log.Info().Str("email", u.Email).Msg("usuario admin creado")
	return nil
}

func (s *Seeder) seedServices(ctx context.Context) error {
	n, err := s.services.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, svc := range defaultServices {
		svc := svc
		if err := s.services.Create(ctx, &svc); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(defaultServices)).Msg("servicios iniciales creados")
	return nil
}

func (s *Seeder) seedBarbers(ctx context.Context) error {
	n, err := s.barbers.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, b := range defaultBarbers {
		b := b
		if err := s.barbers.Create(ctx, &b); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(defaultBarbers)).Msg("barberos iniciales creados")
	return nil
}
