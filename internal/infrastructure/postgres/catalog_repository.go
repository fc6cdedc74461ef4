package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var (
	_ repository.BarberRepository  = (*BarberRepo)(nil)
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.ServiceRepository = (*ServiceRepo)(nil)
)

// BarberRepo implementación de BarberRepository sobre PostgreSQL.
type BarberRepo struct {
	q Querier
}

// NewBarberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBarberRepository(q Querier) *BarberRepo {
	return &BarberRepo{q: q}
}

func (r *BarberRepo) Create(ctx context.Context, b *entity.Barber) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO barbers (name, phone, email, active) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		b.Name, b.Phone, b.Email, b.Active,
	).Scan(&b.ID, &b.CreatedAt)
	return mapError("insert barber", err)
}

func (r *BarberRepo) GetByID(ctx context.Context, id int64) (*entity.Barber, error) {
	var b entity.Barber
	err := r.q.QueryRow(ctx,
		`SELECT id, name, phone, email, active, created_at FROM barbers WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Phone, &b.Email, &b.Active, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barber: %w", err)
	}
	return &b, nil
}

func (r *BarberRepo) Update(ctx context.Context, b *entity.Barber) error {
	_, err := r.q.Exec(ctx,
		`UPDATE barbers SET name = $1, phone = $2, email = $3, active = $4 WHERE id = $5`,
		b.Name, b.Phone, b.Email, b.Active, b.ID)
	return mapError("update barber", err)
}

func (r *BarberRepo) List(ctx context.Context) ([]*entity.Barber, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, phone, email, active, created_at FROM barbers ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Barber
	for rows.Next() {
		var b entity.Barber
		if err := rows.Scan(&b.ID, &b.Name, &b.Phone, &b.Email, &b.Active, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *BarberRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM barbers`).Scan(&n)
	return n, err
}

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO clients (name, phone, email, notes) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		c.Name, c.Phone, c.Email, c.Notes,
	).Scan(&c.ID, &c.CreatedAt)
	return mapError("insert client", err)
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx,
		`SELECT id, name, phone, email, notes, created_at FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx,
		`UPDATE clients SET name = $1, phone = $2, email = $3, notes = $4 WHERE id = $5`,
		c.Name, c.Phone, c.Email, c.Notes, c.ID)
	return mapError("update client", err)
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete client", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ClientRepo) List(ctx context.Context, query string, limit int) ([]*entity.Client, error) {
	var (
		rows pgx.Rows
		err  error
	)
	const cols = `id, name, phone, email, notes, created_at`
	if query != "" {
		like := "%" + query + "%"
		rows, err = r.q.Query(ctx,
			`SELECT `+cols+` FROM clients WHERE name ILIKE $1 OR phone ILIKE $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
			like, limit)
	} else {
		rows, err = r.q.Query(ctx, `SELECT `+cols+` FROM clients ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ServiceRepo implementación de ServiceRepository sobre PostgreSQL.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO services (name, duration_min, price_cents, active) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		s.Name, s.DurationMin, s.PriceCents, s.Active,
	).Scan(&s.ID, &s.CreatedAt)
	return mapError("insert service", err)
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(ctx,
		`SELECT id, name, duration_min, price_cents, active, created_at FROM services WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.DurationMin, &s.PriceCents, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx,
		`UPDATE services SET name = $1, duration_min = $2, price_cents = $3, active = $4 WHERE id = $5`,
		s.Name, s.DurationMin, s.PriceCents, s.Active, s.ID)
	return mapError("update service", err)
}

func (r *ServiceRepo) List(ctx context.Context) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, duration_min, price_cents, active, created_at FROM services ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var out []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMin, &s.PriceCents, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *ServiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&n)
	return n, err
}
