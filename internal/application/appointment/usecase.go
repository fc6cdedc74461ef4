package appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
	"github.com/jhoicas/barberia-api/internal/domain/scheduling"
)

const (
	listLimit = 500
	// lockAttempts reintentos de Update cuando otra escritura cambió el barbero de la cita
	// entre la lectura inicial y la toma de bloqueos.
	lockAttempts = 3
)

var errBarberMoved = errors.New("appointment: el barbero de la cita cambió durante la edición")

// UseCase casos de uso de la agenda: alta, edición, baja y consulta de citas.
type UseCase struct {
	tx       TxRunner
	appts    repository.AppointmentRepository
	clients  repository.ClientRepository
	barbers  repository.BarberRepository
	services repository.ServiceRepository
	tracer   trace.Tracer
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	appts repository.AppointmentRepository,
	clients repository.ClientRepository,
	barbers repository.BarberRepository,
	services repository.ServiceRepository,
) *UseCase {
	return &UseCase{
		tx:       tx,
		appts:    appts,
		clients:  clients,
		barbers:  barbers,
		services: services,
		tracer:   otel.Tracer("barberia-api/appointment"),
	}
}

// HasConflict indica si el barbero ya tiene una cita 'scheduled' que se solapa con [start, end).
// excludeID permite ignorar la propia cita al editarla.
func (uc *UseCase) HasConflict(ctx context.Context, barberID int64, start, end time.Time, excludeID *int64) (bool, error) {
	return uc.hasConflict(ctx, uc.appts, barberID, scheduling.Interval{Start: start, End: end}, excludeID)
}

func (uc *UseCase) hasConflict(ctx context.Context, repo repository.AppointmentRepository, barberID int64, iv scheduling.Interval, excludeID *int64) (bool, error) {
	ctx, span := uc.tracer.Start(ctx, "appointment.HasConflict",
		trace.WithAttributes(attribute.Int64("barber_id", barberID)))
	defer span.End()

	// Un intervalo vacío no ocupa ningún instante.
	if iv.Empty() {
		return false, nil
	}
	n, err := repo.CountOverlapping(ctx, barberID, iv.Start, iv.End, excludeID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("contar solapamientos: %w", err)
	}
	span.SetAttributes(attribute.Int("overlapping", n))
	return n > 0, nil
}

// Create valida la cita, verifica que cliente, barbero y servicio existan y la persiste
// si el barbero está libre. Verificación y escritura ocurren en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if in.ClientID == nil || in.BarberID == nil || in.ServiceID == nil || in.StartAt == nil || in.EndAt == nil {
		return nil, fmt.Errorf("%w: client_id, barber_id, service_id, start_at y end_at son obligatorios", domain.ErrInvalidInput)
	}
	start, err := dto.ParseTimestamp("start_at", *in.StartAt)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseTimestamp("end_at", *in.EndAt)
	if err != nil {
		return nil, err
	}
	iv, err := scheduling.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, *in.ClientID, *in.BarberID, *in.ServiceID); err != nil {
		return nil, err
	}

	ctx, span := uc.tracer.Start(ctx, "appointment.Create")
	defer span.End()

	appt := &entity.Appointment{
		ClientID:  *in.ClientID,
		BarberID:  *in.BarberID,
		ServiceID: *in.ServiceID,
		StartAt:   iv.Start,
		EndAt:     iv.End,
		Status:    entity.AppointmentStatusScheduled,
		Notes:     in.Notes,
	}
	err = uc.tx.RunForBarbers(ctx, []int64{appt.BarberID}, func(appts repository.AppointmentRepository) error {
		conflict, err := uc.hasConflict(ctx, appts, appt.BarberID, iv, nil)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrConflict
		}
		return appts.Create(ctx, appt)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// Update aplica una actualización parcial. El conflicto se evalúa sobre barbero, inicio y fin
// resultantes, excluyendo la propia cita, solo si el estado resultante es 'scheduled'.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	current, err := uc.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: cita %d", domain.ErrNotFound, id)
	}
	if in.Status != nil && !entity.ValidAppointmentStatus(*in.Status) {
		return nil, fmt.Errorf("%w: status debe ser scheduled, cancelled o completed", domain.ErrInvalidInput)
	}
	var start, end *time.Time
	if in.StartAt != nil {
		t, err := dto.ParseTimestamp("start_at", *in.StartAt)
		if err != nil {
			return nil, err
		}
		start = &t
	}
	if in.EndAt != nil {
		t, err := dto.ParseTimestamp("end_at", *in.EndAt)
		if err != nil {
			return nil, err
		}
		end = &t
	}
	if err := uc.checkChangedReferences(ctx, in); err != nil {
		return nil, err
	}

	ctx, span := uc.tracer.Start(ctx, "appointment.Update",
		trace.WithAttributes(attribute.Int64("appointment_id", id)))
	defer span.End()

	barberIDs := lockSet(current.BarberID, in.BarberID)
	var updated *entity.Appointment
	for attempt := 1; ; attempt++ {
		var seen int64
		err = uc.tx.RunForBarbers(ctx, barberIDs, func(appts repository.AppointmentRepository) error {
			appt, err := appts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if appt == nil {
				return fmt.Errorf("%w: cita %d", domain.ErrNotFound, id)
			}
			if !slices.Contains(barberIDs, appt.BarberID) {
				seen = appt.BarberID
				return errBarberMoved
			}
			merge(appt, in, start, end)
			iv, err := scheduling.NewInterval(appt.StartAt, appt.EndAt)
			if err != nil {
				return err
			}
			if appt.Blocks() {
				conflict, err := uc.hasConflict(ctx, appts, appt.BarberID, iv, &appt.ID)
				if err != nil {
					return err
				}
				if conflict {
					return domain.ErrConflict
				}
			}
			if err := appts.Update(ctx, appt); err != nil {
				return err
			}
			updated = appt
			return nil
		})
		if !errors.Is(err, errBarberMoved) {
			break
		}
		if attempt == lockAttempts {
			err = fmt.Errorf("%w: cita %d modificada concurrentemente", domain.ErrConflict, id)
			break
		}
		barberIDs = lockSet(seen, in.BarberID)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toAppointmentResponse(updated), nil
}

// lockSet barberos a bloquear: el actual de la cita y, si cambia, el nuevo.
func lockSet(current int64, requested *int64) []int64 {
	ids := []int64{current}
	if requested != nil && *requested != current {
		ids = append(ids, *requested)
	}
	return ids
}

// Delete elimina la cita. ErrNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.appts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: cita %d", domain.ErrNotFound, id)
	}
	return nil
}

// Get obtiene una cita por ID.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appt, err := uc.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("%w: cita %d", domain.ErrNotFound, id)
	}
	return toAppointmentResponse(appt), nil
}

// List devuelve citas con start_at >= from y end_at <= to, ordenadas por inicio.
func (uc *UseCase) List(ctx context.Context, q dto.AppointmentListQuery) ([]dto.AppointmentResponse, error) {
	from, err := dto.ParseOptionalTimestamp("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseOptionalTimestamp("to", q.To)
	if err != nil {
		return nil, err
	}
	filter := entity.AppointmentFilter{From: from, To: to, Limit: listLimit}
	if q.BarberID > 0 {
		filter.BarberID = &q.BarberID
	}
	if q.ClientID > 0 {
		filter.ClientID = &q.ClientID
	}
	list, err := uc.appts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAppointmentResponse(a))
	}
	return out, nil
}

func (uc *UseCase) checkReferences(ctx context.Context, clientID, barberID, serviceID int64) error {
	c, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, clientID)
	}
	b, err := uc.barbers.GetByID(ctx, barberID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: barbero %d", domain.ErrNotFound, barberID)
	}
	s, err := uc.services.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: servicio %d", domain.ErrNotFound, serviceID)
	}
	return nil
}

func (uc *UseCase) checkChangedReferences(ctx context.Context, in dto.UpdateAppointmentRequest) error {
	if in.ClientID != nil {
		c, err := uc.clients.GetByID(ctx, *in.ClientID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, *in.ClientID)
		}
	}
	if in.BarberID != nil {
		b, err := uc.barbers.GetByID(ctx, *in.BarberID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: barbero %d", domain.ErrNotFound, *in.BarberID)
		}
	}
	if in.ServiceID != nil {
		s, err := uc.services.GetByID(ctx, *in.ServiceID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: servicio %d", domain.ErrNotFound, *in.ServiceID)
		}
	}
	return nil
}

func merge(appt *entity.Appointment, in dto.UpdateAppointmentRequest, start, end *time.Time) {
	if in.ClientID != nil {
		appt.ClientID = *in.ClientID
	}
	if in.BarberID != nil {
		appt.BarberID = *in.BarberID
	}
	if in.ServiceID != nil {
		appt.ServiceID = *in.ServiceID
	}
	if start != nil {
		appt.StartAt = *start
	}
	if end != nil {
		appt.EndAt = *end
	}
	if in.Notes != nil {
		appt.Notes = in.Notes
	}
	if in.Status != nil {
		appt.Status = *in.Status
	}
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:          a.ID,
		ClientID:    a.ClientID,
		BarberID:    a.BarberID,
		ServiceID:   a.ServiceID,
		StartAt:     a.StartAt,
		EndAt:       a.EndAt,
		Status:      a.Status,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		ClientName:  a.ClientName,
		BarberName:  a.BarberName,
		ServiceName: a.ServiceName,
	}
}
