package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación de CashMovementRepository sobre PostgreSQL.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador.
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

const cashColumns = `id, type, amount_cents, description, appointment_id, created_at`

func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO cash_movements (type, amount_cents, description, appointment_id) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.Type, m.AmountCents, m.Description, m.AppointmentID,
	).Scan(&m.ID, &m.CreatedAt)
	return mapError("insert cash movement", err)
}

func (r *CashMovementRepo) GetByID(ctx context.Context, id int64) (*entity.CashMovement, error) {
	var m entity.CashMovement
	err := r.q.QueryRow(ctx, `SELECT `+cashColumns+` FROM cash_movements WHERE id = $1`, id).Scan(
		&m.ID, &m.Type, &m.AmountCents, &m.Description, &m.AppointmentID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash movement: %w", err)
	}
	return &m, nil
}

func (r *CashMovementRepo) List(ctx context.Context, from, to *time.Time, limit int) ([]*entity.CashMovement, error) {
	where, args := rangeClause(from, to)
	q := `SELECT ` + cashColumns + ` FROM cash_movements` + where + ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.AmountCents, &m.Description, &m.AppointmentID, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *CashMovementRepo) Summarize(ctx context.Context, from, to *time.Time) (entity.CashSummary, error) {
	where, args := rangeClause(from, to)
	var s entity.CashSummary
	err := r.q.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'in'), 0)::bigint,
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'out'), 0)::bigint
		 FROM cash_movements`+where, args...,
	).Scan(&s.TotalIn, &s.TotalOut)
	if err != nil {
		return entity.CashSummary{}, fmt.Errorf("summarize cash: %w", err)
	}
	return s, nil
}

// rangeClause filtra created_at con límites inclusivos.
func rangeClause(from, to *time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
