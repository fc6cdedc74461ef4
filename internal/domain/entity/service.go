package entity

import "time"

// Service representa un servicio ofrecido (corte, barba...). Precio en centavos.
type Service struct {
	ID          int64
	Name        string
	DurationMin int
	PriceCents  int64
	Active      bool
	CreatedAt   time.Time
}
