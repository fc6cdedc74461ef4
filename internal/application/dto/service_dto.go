package dto

import "time"

// CreateServiceRequest entrada para crear un servicio.
type CreateServiceRequest struct {
	Name        string `json:"name"`
	DurationMin *int   `json:"duration_min"`
	PriceCents  *int64 `json:"price_cents"`
	Active      *bool  `json:"active"`
}

// UpdateServiceRequest actualización parcial de un servicio.
type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	DurationMin *int    `json:"duration_min"`
	PriceCents  *int64  `json:"price_cents"`
	Active      *bool   `json:"active"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DurationMin int       `json:"duration_min"`
	PriceCents  int64     `json:"price_cents"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
