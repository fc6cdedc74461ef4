package entity

import "time"

// Barber representa un profesional que atiende citas.
type Barber struct {
	ID        int64
	Name      string
	Phone     *string
	Email     *string
	Active    bool
	CreatedAt time.Time
}
