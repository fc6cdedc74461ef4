package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.BarberRepository = (*BarberRepository)(nil)

// BarberRepository implementación SQLite de repository.BarberRepository.
type BarberRepository struct {
	db querier
}

// NewBarberRepository construye el repositorio.
func NewBarberRepository(db querier) *BarberRepository {
	return &BarberRepository{db: db}
}

const barberColumns = `id, name, phone, email, active, created_at`

func (r *BarberRepository) Create(ctx context.Context, b *entity.Barber) error {
	b.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO barbers (name, phone, email, active, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		b.Name, b.Phone, b.Email, b.Active, formatTime(b.CreatedAt),
	).Scan(&b.ID)
	return mapError(err)
}

func (r *BarberRepository) GetByID(ctx context.Context, id int64) (*entity.Barber, error) {
	b, err := scanBarber(r.db.QueryRowContext(ctx, `SELECT `+barberColumns+` FROM barbers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *BarberRepository) Update(ctx context.Context, b *entity.Barber) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE barbers SET name = ?, phone = ?, email = ?, active = ? WHERE id = ?`,
		b.Name, b.Phone, b.Email, b.Active, b.ID,
	)
	return mapError(err)
}

func (r *BarberRepository) List(ctx context.Context) ([]*entity.Barber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+barberColumns+` FROM barbers ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.Barber
	for rows.Next() {
		b, err := scanBarber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BarberRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM barbers`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBarber(s rowScanner) (*entity.Barber, error) {
	var b entity.Barber
	var phone, email sql.NullString
	var created string
	if err := s.Scan(&b.ID, &b.Name, &phone, &email, &b.Active, &created); err != nil {
		return nil, err
	}
	b.Phone, b.Email = nullString(phone), nullString(email)
	var err error
	if b.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &b, nil
}
