package entity

import "time"

// Tipos de movimiento de caja.
const (
	CashTypeIn  = "in"  // entrada
	CashTypeOut = "out" // salida
)

// CashMovement es un registro inmutable de entrada o salida de caja (centavos).
type CashMovement struct {
	ID            int64
	Type          string
	AmountCents   int64
	Description   *string
	AppointmentID *int64
	CreatedAt     time.Time
}

// CashSummary totales de caja en un rango.
type CashSummary struct {
	TotalIn  int64
	TotalOut int64
}

// Balance devuelve TotalIn - TotalOut.
func (s CashSummary) Balance() int64 {
	return s.TotalIn - s.TotalOut
}
