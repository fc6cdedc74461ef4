package entity

import "time"

// Client representa un cliente de la barbería.
type Client struct {
	ID        int64
	Name      string
	Phone     *string
	Email     *string
	Notes     *string
	CreatedAt time.Time
}
