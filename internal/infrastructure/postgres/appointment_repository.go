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

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `a.id, a.client_id, a.barber_id, a.service_id, a.start_at, a.end_at, a.status, a.notes, a.created_at`

// Create inserta la cita. La restricción de exclusión devuelve domain.ErrConflict.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO appointments (client_id, barber_id, service_id, start_at, end_at, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		a.ClientID, a.BarberID, a.ServiceID, a.StartAt, a.EndAt, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
	return mapError("insert appointment", err)
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	var a entity.Appointment
	err := r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1`, id).Scan(
		&a.ID, &a.ClientID, &a.BarberID, &a.ServiceID, &a.StartAt, &a.EndAt, &a.Status, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	normalize(&a)
	return &a, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	_, err := r.q.Exec(ctx,
		`UPDATE appointments SET client_id = $1, barber_id = $2, service_id = $3, start_at = $4, end_at = $5,
		 status = $6, notes = $7 WHERE id = $8`,
		a.ClientID, a.BarberID, a.ServiceID, a.StartAt, a.EndAt, a.Status, a.Notes, a.ID)
	return mapError("update appointment", err)
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete appointment", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AppointmentRepo) List(ctx context.Context, f entity.AppointmentFilter) ([]*entity.Appointment, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("a.start_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("a.end_at <= $%d", *f.To)
	}
	if f.BarberID != nil {
		add("a.barber_id = $%d", *f.BarberID)
	}
	if f.ClientID != nil {
		add("a.client_id = $%d", *f.ClientID)
	}
	q := `SELECT ` + appointmentColumns + `, c.name, b.name, s.name
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN barbers b ON b.id = a.barber_id
		JOIN services s ON s.id = a.service_id`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY a.start_at ASC, a.id ASC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.BarberID, &a.ServiceID, &a.StartAt, &a.EndAt, &a.Status, &a.Notes, &a.CreatedAt,
			&a.ClientName, &a.BarberName, &a.ServiceName); err != nil {
			return nil, err
		}
		normalize(&a)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// CountOverlapping usa la misma condición que scheduling.Interval.Overlaps.
func (r *AppointmentRepo) CountOverlapping(ctx context.Context, barberID int64, start, end time.Time, excludeID *int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE barber_id = $1 AND status = 'scheduled'
		   AND NOT (end_at <= $2 OR start_at >= $3)
		   AND ($4::bigint IS NULL OR id <> $4)`,
		barberID, start, end, excludeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overlapping: %w", err)
	}
	return n, nil
}

// normalize devuelve las fechas en UTC, igual que el resto de la API.
func normalize(a *entity.Appointment) {
	a.StartAt = a.StartAt.UTC()
	a.EndAt = a.EndAt.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
}
