package dto

import "time"

// CreateBarberRequest entrada para crear un barbero.
type CreateBarberRequest struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Active *bool   `json:"active"`
}

// UpdateBarberRequest actualización parcial de un barbero.
type UpdateBarberRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Active *bool   `json:"active"`
}

// BarberResponse salida de un barbero.
type BarberResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
