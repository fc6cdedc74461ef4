package repository

import (
	"context"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para citas.
// Las escrituras que dependen de CountOverlapping deben ejecutarse dentro de
// la transacción de agenda (appointment.TxRunner) para que verificación y escritura sean atómicas.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	GetByID(ctx context.Context, id int64) (*entity.Appointment, error)
	Update(ctx context.Context, appt *entity.Appointment) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error)
	// CountOverlapping cuenta citas 'scheduled' del barbero cuyo intervalo se solapa
	// con [start, end), excluyendo excludeID si no es nil.
	CountOverlapping(ctx context.Context, barberID int64, start, end time.Time, excludeID *int64) (int, error)
}
