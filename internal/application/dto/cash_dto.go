package dto

import "time"

// CreateCashMovementRequest body para POST /api/cash.
type CreateCashMovementRequest struct {
	Type          string  `json:"type"`
	AmountCents   *int64  `json:"amount_cents"`
	Description   *string `json:"description"`
	AppointmentID *int64  `json:"appointment_id"`
}

// CashMovementResponse salida de un movimiento de caja.
type CashMovementResponse struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	AmountCents   int64     `json:"amount_cents"`
	Description   *string   `json:"description"`
	AppointmentID *int64    `json:"appointment_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// CashSummaryResponse salida de GET /api/cash/summary (centavos).
type CashSummaryResponse struct {
	TotalIn  int64 `json:"total_in"`
	TotalOut int64 `json:"total_out"`
	Balance  int64 `json:"balance"`
}
