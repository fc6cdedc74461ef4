package cash

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

const listLimit = 500

// UseCase registro y consulta del libro de caja.
type UseCase struct {
	movements repository.CashMovementRepository
	appts     repository.AppointmentRepository
	reports   ReportGenerator
	tracer    trace.Tracer
}

// NewUseCase construye el caso de uso. reports puede ser nil si no se sirve el PDF.
func NewUseCase(movements repository.CashMovementRepository, appts repository.AppointmentRepository, reports ReportGenerator) *UseCase {
	return &UseCase{
		movements: movements,
		appts:     appts,
		reports:   reports,
		tracer:    otel.Tracer("barberia-api/cash"),
	}
}

// Create registra una entrada o salida. amount_cents debe ser positivo y appointment_id,
// si viene, debe existir.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCashMovementRequest) (*dto.CashMovementResponse, error) {
	if in.Type != entity.CashTypeIn && in.Type != entity.CashTypeOut {
		return nil, fmt.Errorf("%w: type debe ser in u out", domain.ErrInvalidInput)
	}
	if in.AmountCents == nil || *in.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount_cents debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.AppointmentID != nil {
		appt, err := uc.appts.GetByID(ctx, *in.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt == nil {
			return nil, fmt.Errorf("%w: cita %d", domain.ErrNotFound, *in.AppointmentID)
		}
	}
	m := &entity.CashMovement{
		Type:          in.Type,
		AmountCents:   *in.AmountCents,
		Description:   in.Description,
		AppointmentID: in.AppointmentID,
	}
	if err := uc.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return toCashMovementResponse(m), nil
}

// List devuelve movimientos en [from, to], más recientes primero.
func (uc *UseCase) List(ctx context.Context, from, to string) ([]dto.CashMovementResponse, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.movements.List(ctx, f, t, listLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toCashMovementResponse(m))
	}
	return out, nil
}

// Summarize totaliza entradas y salidas en [from, to]. Sin movimientos devuelve ceros.
func (uc *UseCase) Summarize(ctx context.Context, from, to string) (*dto.CashSummaryResponse, error) {
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	ctx, span := uc.tracer.Start(ctx, "cash.Summarize")
	defer span.End()

	s, err := uc.movements.Summarize(ctx, f, t)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &dto.CashSummaryResponse{TotalIn: s.TotalIn, TotalOut: s.TotalOut, Balance: s.Balance()}, nil
}

func parseRange(from, to string) (*time.Time, *time.Time, error) {
	f, err := dto.ParseOptionalTimestamp("from", from)
	if err != nil {
		return nil, nil, err
	}
	t, err := dto.ParseOptionalTimestamp("to", to)
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}

func toCashMovementResponse(m *entity.CashMovement) *dto.CashMovementResponse {
	return &dto.CashMovementResponse{
		ID:            m.ID,
		Type:          m.Type,
		AmountCents:   m.AmountCents,
		Description:   m.Description,
		AppointmentID: m.AppointmentID,
		CreatedAt:     m.CreatedAt,
	}
}
