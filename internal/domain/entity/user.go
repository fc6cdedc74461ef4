package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
)

// User representa un usuario del panel administrativo.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
}
