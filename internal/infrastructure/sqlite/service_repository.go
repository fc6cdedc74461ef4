package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepository)(nil)

// ServiceRepository implementación SQLite de repository.ServiceRepository.
type ServiceRepository struct {
	db querier
}

// NewServiceRepository construye el repositorio.
func NewServiceRepository(db querier) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, name, duration_min, price_cents, active, created_at`

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	s.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO services (name, duration_min, price_cents, active, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		s.Name, s.DurationMin, s.PriceCents, s.Active, formatTime(s.CreatedAt),
	).Scan(&s.ID)
	return mapError(err)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE services SET name = ?, duration_min = ?, price_cents = ?, active = ? WHERE id = ?`,
		s.Name, s.DurationMin, s.PriceCents, s.Active, s.ID,
	)
	return mapError(err)
}

func (r *ServiceRepository) List(ctx context.Context) ([]*entity.Service, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}

func scanService(s rowScanner) (*entity.Service, error) {
	var svc entity.Service
	var created string
	if err := s.Scan(&svc.ID, &svc.Name, &svc.DurationMin, &svc.PriceCents, &svc.Active, &created); err != nil {
		return nil, err
	}
	var err error
	if svc.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &svc, nil
}
