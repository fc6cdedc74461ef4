package cash

import (
	"context"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

// Statement datos del extracto de caja para un rango (límites opcionales).
type Statement struct {
	From      *time.Time
	To        *time.Time
	Movements []*entity.CashMovement
	Summary   entity.CashSummary
	// Truncated indica que Movements trae solo los más recientes; Summary cubre todo el rango.
	Truncated bool
}

// ReportGenerator genera el extracto de caja en PDF. Implementado en infrastructure/pdf.
type ReportGenerator interface {
	GenerateCashStatement(ctx context.Context, st Statement) ([]byte, error)
}
