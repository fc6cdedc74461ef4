package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepository)(nil)

// ClientRepository implementación SQLite de repository.ClientRepository.
type ClientRepository struct {
	db querier
}

// NewClientRepository construye el repositorio.
func NewClientRepository(db querier) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, phone, email, notes, created_at`

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	c.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO clients (name, phone, email, notes, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		c.Name, c.Phone, c.Email, c.Notes, formatTime(c.CreatedAt),
	).Scan(&c.ID)
	return mapError(err)
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, phone = ?, email = ?, notes = ? WHERE id = ?`,
		c.Name, c.Phone, c.Email, c.Notes, c.ID,
	)
	return mapError(err)
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *ClientRepository) List(ctx context.Context, query string, limit int) ([]*entity.Client, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query != "" {
		like := "%" + query + "%"
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+clientColumns+` FROM clients WHERE name LIKE ? OR phone LIKE ? ORDER BY created_at DESC, id DESC LIMIT ?`,
			like, like, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClient(s rowScanner) (*entity.Client, error) {
	var c entity.Client
	var phone, email, notes sql.NullString
	var created string
	if err := s.Scan(&c.ID, &c.Name, &phone, &email, &notes, &created); err != nil {
		return nil, err
	}
	c.Phone, c.Email, c.Notes = nullString(phone), nullString(email), nullString(notes)
	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &c, nil
}
