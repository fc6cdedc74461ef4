package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepository)(nil)

// CashMovementRepository implementación SQLite de repository.CashMovementRepository.
type CashMovementRepository struct {
	db querier
}

// NewCashMovementRepository construye el repositorio.
func NewCashMovementRepository(db querier) *CashMovementRepository {
	return &CashMovementRepository{db: db}
}

const cashColumns = `id, type, amount_cents, description, appointment_id, created_at`

func (r *CashMovementRepository) Create(ctx context.Context, m *entity.CashMovement) error {
	m.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cash_movements (type, amount_cents, description, appointment_id, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		m.Type, m.AmountCents, m.Description, m.AppointmentID, formatTime(m.CreatedAt),
	).Scan(&m.ID)
	return mapError(err)
}

func (r *CashMovementRepository) GetByID(ctx context.Context, id int64) (*entity.CashMovement, error) {
	m, err := scanCash(r.db.QueryRowContext(ctx, `SELECT `+cashColumns+` FROM cash_movements WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *CashMovementRepository) List(ctx context.Context, from, to *time.Time, limit int) ([]*entity.CashMovement, error) {
	where, args := rangeClause(from, to)
	q := `SELECT ` + cashColumns + ` FROM cash_movements` + where + ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.CashMovement
	for rows.Next() {
		m, err := scanCash(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *CashMovementRepository) Summarize(ctx context.Context, from, to *time.Time) (entity.CashSummary, error) {
	where, args := rangeClause(from, to)
	var s entity.CashSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN type = 'in' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'out' THEN amount_cents ELSE 0 END), 0)
		 FROM cash_movements`+where, args...,
	).Scan(&s.TotalIn, &s.TotalOut)
	return s, err
}

// rangeClause filtra created_at con límites inclusivos.
func rangeClause(from, to *time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if from != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, formatTime(*from))
	}
	if to != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, formatTime(*to))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanCash(s rowScanner) (*entity.CashMovement, error) {
	var m entity.CashMovement
	var desc sql.NullString
	var appt sql.NullInt64
	var created string
	if err := s.Scan(&m.ID, &m.Type, &m.AmountCents, &desc, &appt, &created); err != nil {
		return nil, err
	}
	m.Description, m.AppointmentID = nullString(desc), nullInt64(appt)
	var err error
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &m, nil
}
