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

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)

// AppointmentRepository implementación SQLite de repository.AppointmentRepository.
type AppointmentRepository struct {
	db querier
}

// NewAppointmentRepository construye el repositorio.
func NewAppointmentRepository(db querier) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `a.id, a.client_id, a.barber_id, a.service_id, a.start_at, a.end_at, a.status, a.notes, a.created_at`

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	a.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO appointments (client_id, barber_id, service_id, start_at, end_at, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		a.ClientID, a.BarberID, a.ServiceID, formatTime(a.StartAt), formatTime(a.EndAt), a.Status, a.Notes, formatTime(a.CreatedAt),
	).Scan(&a.ID)
	return mapError(err)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET client_id = ?, barber_id = ?, service_id = ?, start_at = ?, end_at = ?, status = ?, notes = ?
		 WHERE id = ?`,
		a.ClientID, a.BarberID, a.ServiceID, formatTime(a.StartAt), formatTime(a.EndAt), a.Status, a.Notes, a.ID,
	)
	return mapError(err)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *AppointmentRepository) List(ctx context.Context, f entity.AppointmentFilter) ([]*entity.Appointment, error) {
	var (
		where []string
		args  []any
	)
	if f.From != nil {
		where = append(where, "a.start_at >= ?")
		args = append(args, formatTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "a.end_at <= ?")
		args = append(args, formatTime(*f.To))
	}
	if f.BarberID != nil {
		where = append(where, "a.barber_id = ?")
		args = append(args, *f.BarberID)
	}
	if f.ClientID != nil {
		where = append(where, "a.client_id = ?")
		args = append(args, *f.ClientID)
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
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		var start, end, created string
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.ClientID, &a.BarberID, &a.ServiceID, &start, &end, &a.Status, &notes, &created,
			&a.ClientName, &a.BarberName, &a.ServiceName); err != nil {
			return nil, err
		}
		if err := fillAppointment(&a, start, end, created, notes); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// CountOverlapping usa la misma condición que scheduling.Interval.Overlaps:
// NOT (end_at <= start OR start_at >= end).
func (r *AppointmentRepository) CountOverlapping(ctx context.Context, barberID int64, start, end time.Time, excludeID *int64) (int, error) {
	q := `SELECT COUNT(*) FROM appointments
		WHERE barber_id = ? AND status = 'scheduled'
		  AND NOT (end_at <= ? OR start_at >= ?)`
	args := []any{barberID, formatTime(start), formatTime(end)}
	if excludeID != nil {
		q += " AND id <> ?"
		args = append(args, *excludeID)
	}
	var n int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

func scanAppointment(s rowScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	var start, end, created string
	var notes sql.NullString
	if err := s.Scan(&a.ID, &a.ClientID, &a.BarberID, &a.ServiceID, &start, &end, &a.Status, &notes, &created); err != nil {
		return nil, err
	}
	if err := fillAppointment(&a, start, end, created, notes); err != nil {
		return nil, err
	}
	return &a, nil
}

func fillAppointment(a *entity.Appointment, start, end, created string, notes sql.NullString) error {
	var err error
	if a.StartAt, err = parseTime(start); err != nil {
		return err
	}
	if a.EndAt, err = parseTime(end); err != nil {
		return err
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return err
	}
	a.Notes = nullString(notes)
	return nil
}
