package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación SQLite de repository.UserRepository.
type UserRepository struct {
	db querier
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserta un usuario.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Role, formatTime(u.CreatedAt),
	).Scan(&u.ID)
	return mapError(err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ?`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?`, email)
}

// Count cuenta usuarios.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	var created string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}
