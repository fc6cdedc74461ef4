package dto

import "time"

// CreateAppointmentRequest body para POST /api/appointments.
// Todos los campos salvo notes son obligatorios; se usan punteros para detectar ausencia.
type CreateAppointmentRequest struct {
	ClientID  *int64  `json:"client_id"`
	BarberID  *int64  `json:"barber_id"`
	ServiceID *int64  `json:"service_id"`
	StartAt   *string `json:"start_at"`
	EndAt     *string `json:"end_at"`
	Notes     *string `json:"notes"`
}

// UpdateAppointmentRequest body para PUT /api/appointments/:id (parcial).
type UpdateAppointmentRequest struct {
	ClientID  *int64  `json:"client_id"`
	BarberID  *int64  `json:"barber_id"`
	ServiceID *int64  `json:"service_id"`
	StartAt   *string `json:"start_at"`
	EndAt     *string `json:"end_at"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status"`
}

// AppointmentListQuery filtros de GET /api/appointments.
type AppointmentListQuery struct {
	From     string `query:"from"`
	To       string `query:"to"`
	BarberID int64  `query:"barber_id"`
	ClientID int64  `query:"client_id"`
}

// AppointmentResponse salida de una cita. Los nombres solo vienen en listados.
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	BarberID    int64     `json:"barber_id"`
	ServiceID   int64     `json:"service_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	ClientName  string    `json:"client_name,omitempty"`
	BarberName  string    `json:"barber_name,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
}
