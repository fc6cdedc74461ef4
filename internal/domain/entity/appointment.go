package entity

import (
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/scheduling"
)

// Estados de una cita. Solo StatusScheduled participa en la detección de conflictos.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

// ValidAppointmentStatus indica si s es un estado conocido.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// Appointment representa una cita de un cliente con un barbero para un servicio.
// El intervalo es semiabierto: [StartAt, EndAt).
type Appointment struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time
	Status    string
	Notes     *string
	CreatedAt time.Time

	// Nombres desnormalizados, solo presentes en listados (JOIN).
	ClientName  string
	BarberName  string
	ServiceName string
}

// Interval devuelve el intervalo de la cita.
func (a *Appointment) Interval() scheduling.Interval {
	return scheduling.Interval{Start: a.StartAt, End: a.EndAt}
}

// Blocks indica si la cita ocupa la agenda del barbero.
func (a *Appointment) Blocks() bool {
	return a.Status == AppointmentStatusScheduled
}

// AppointmentFilter filtros del listado de citas.
type AppointmentFilter struct {
	From     *time.Time
	To       *time.Time
	BarberID *int64
	ClientID *int64
	Limit    int
}
