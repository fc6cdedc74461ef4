package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/infrastructure/sqlite"
)

var dbSeq atomic.Int64

type fixture struct {
	appts     *sqlite.AppointmentRepository
	clients   *sqlite.ClientRepository
	barbers   *sqlite.BarberRepository
	services  *sqlite.ServiceRepository
	items     *sqlite.InventoryItemRepository
	movements *sqlite.InventoryMovementRepository
	cash      *sqlite.CashMovementRepository
	tx        *sqlite.TxRunner

	clientID, barberID, serviceID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), fmt.Sprintf("test-%d.db", dbSeq.Add(1)))
	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		appts:     sqlite.NewAppointmentRepository(db),
		clients:   sqlite.NewClientRepository(db),
		barbers:   sqlite.NewBarberRepository(db),
		services:  sqlite.NewServiceRepository(db),
		items:     sqlite.NewInventoryItemRepository(db),
		movements: sqlite.NewInventoryMovementRepository(db),
		cash:      sqlite.NewCashMovementRepository(db),
		tx:        sqlite.NewTxRunner(db),
	}
	c := &entity.Client{Name: "Pedro"}
	require.NoError(t, f.clients.Create(ctx, c))
	b := &entity.Barber{Name: "João", Active: true}
	require.NoError(t, f.barbers.Create(ctx, b))
	s := &entity.Service{Name: "Corte", DurationMin: 30, PriceCents: 4000, Active: true}
	require.NoError(t, f.services.Create(ctx, s))
	f.clientID, f.barberID, f.serviceID = c.ID, b.ID, s.ID
	return f
}

func (f *fixture) appointmentUseCase() *appointment.UseCase {
	return appointment.NewUseCase(f.tx, f.appts, f.clients, f.barbers, f.services)
}

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", "2025-03-10T"+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) book(t *testing.T, uc *appointment.UseCase, start, end string) (*dto.AppointmentResponse, error) {
	t.Helper()
	s, e := "2025-03-10T"+start, "2025-03-10T"+end
	return uc.Create(context.Background(), dto.CreateAppointmentRequest{
		ClientID: &f.clientID, BarberID: &f.barberID, ServiceID: &f.serviceID, StartAt: &s, EndAt: &e,
	})
}

func TestHasConflict_AgendaVacia(t *testing.T) {
	f := newFixture(t)
	ok, err := f.appointmentUseCase().HasConflict(context.Background(), f.barberID, at("10:00"), at("10:30"), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreate_CitasContiguasNoChocan(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	_, err := f.book(t, uc, "10:00", "10:30")
	require.NoError(t, err)
	_, err = f.book(t, uc, "10:30", "11:00")
	require.NoError(t, err)
}

func TestCreate_Solapamiento(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	_, err := f.book(t, uc, "10:00", "10:40")
	require.NoError(t, err)

	_, err = f.book(t, uc, "10:20", "10:50")
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := uc.List(context.Background(), dto.AppointmentListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "la cita en conflicto no debe persistirse")
}

func TestCreate_LimitesSubMilisegundo(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	a, err := f.book(t, uc, "10:00:00Z", "10:30:00.0019Z")
	require.NoError(t, err)
	end := time.Date(2025, 3, 10, 10, 30, 0, int(time.Millisecond), time.UTC)
	assert.Equal(t, end, a.EndAt)

	stored, err := uc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.EndAt, stored.EndAt, "la respuesta del alta debe coincidir con lo guardado")

	_, err = f.book(t, uc, "10:30:00.0005Z", "11:00:00Z")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.book(t, uc, "10:30:00.0015Z", "11:00:00Z")
	assert.NoError(t, err, "10:30:00.001 queda contigua al fin de la primera")
}

func TestCreate_ConcurrenteUnaSolaGana(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()

	const n = 8
	var (
		wg        sync.WaitGroup
		ok        atomic.Int32
		conflicts atomic.Int32
	)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book(t, uc, "10:00", "10:30")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrConflict):
				conflicts.Add(1)
			default:
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("error inesperado: %v", err)
	}
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())

	list, err := uc.List(context.Background(), dto.AppointmentListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate_PropioIntervaloNoChoca(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	a, err := f.book(t, uc, "10:00", "10:30")
	require.NoError(t, err)

	ok, err := uc.HasConflict(context.Background(), f.barberID, a.StartAt, a.EndAt, &a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	notes := "cliente pidió degradado"
	upd, err := uc.Update(context.Background(), a.ID, dto.UpdateAppointmentRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, &notes, upd.Notes)
}

func TestCancelada_NoBloquea(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	a, err := f.book(t, uc, "10:00", "10:30")
	require.NoError(t, err)

	cancelled := entity.AppointmentStatusCancelled
	_, err = uc.Update(context.Background(), a.ID, dto.UpdateAppointmentRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = f.book(t, uc, "10:00", "10:30")
	assert.NoError(t, err)
}

func TestList_FiltrosYNombres(t *testing.T) {
	f := newFixture(t)
	uc := f.appointmentUseCase()
	_, err := f.book(t, uc, "09:00", "09:30")
	require.NoError(t, err)
	_, err = f.book(t, uc, "14:00", "14:30")
	require.NoError(t, err)

	list, err := uc.List(context.Background(), dto.AppointmentListQuery{From: "2025-03-10T12:00", To: "2025-03-10T23:59"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, at("14:00"), list[0].StartAt)
	assert.Equal(t, "Pedro", list[0].ClientName)
	assert.Equal(t, "João", list[0].BarberName)
	assert.Equal(t, "Corte", list[0].ServiceName)
}

func TestApplyMovement_MasCincoMenosTres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := &entity.InventoryItem{Name: "Pomada", StockQty: decimal.NewFromInt(10), InitialQty: decimal.NewFromInt(10), Unit: "un", Active: true}
	require.NoError(t, f.items.Create(ctx, item))

	ledger := inventory.NewRegisterMovementUseCase(f.tx, true)
	_, err := ledger.ApplyMovement(ctx, item.ID, decimal.NewFromInt(5), nil)
	require.NoError(t, err)
	_, err = ledger.ApplyMovement(ctx, item.ID, decimal.NewFromInt(-3), nil)
	require.NoError(t, err)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQty.Equal(decimal.NewFromInt(12)), "stock = %s", got.StockQty)

	movs, err := f.movements.ListByItem(ctx, item.ID, 10)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	sum, err := f.movements.SumByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(2)))

	rec, err := inventory.NewItemUseCase(f.items, f.movements).Reconcile(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}

func TestApplyMovement_SinStockNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := &entity.InventoryItem{Name: "Gel", StockQty: decimal.NewFromInt(1), InitialQty: decimal.NewFromInt(1), Unit: "un", Active: true}
	require.NoError(t, f.items.Create(ctx, item))

	ledger := inventory.NewRegisterMovementUseCase(f.tx, false)
	_, err := ledger.ApplyMovement(ctx, item.ID, decimal.NewFromInt(-2), nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.StockQty.Equal(decimal.NewFromInt(1)), "el rollback debe dejar el stock intacto")
	movs, err := f.movements.ListByItem(ctx, item.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApplyMovement_ItemInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := inventory.NewRegisterMovementUseCase(f.tx, true).ApplyMovement(context.Background(), 999, decimal.NewFromInt(1), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryList_BajoStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.items.Create(ctx, &entity.InventoryItem{Name: "A", StockQty: decimal.NewFromInt(1), LowStockThreshold: decimal.NewFromInt(2), Unit: "un", Active: true}))
	require.NoError(t, f.items.Create(ctx, &entity.InventoryItem{Name: "B", StockQty: decimal.NewFromInt(5), LowStockThreshold: decimal.NewFromInt(2), Unit: "un", Active: true}))

	low, err := f.items.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A", low[0].Name)
}

func TestCashSummarize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.cash.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CashSummary{}, empty)

	require.NoError(t, f.cash.Create(ctx, &entity.CashMovement{Type: entity.CashTypeIn, AmountCents: 1000}))
	require.NoError(t, f.cash.Create(ctx, &entity.CashMovement{Type: entity.CashTypeOut, AmountCents: 400}))

	s, err := f.cash.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), s.TotalIn)
	assert.Equal(t, int64(400), s.TotalOut)
	assert.Equal(t, int64(600), s.Balance())

	future := time.Now().Add(time.Hour)
	s, err = f.cash.Summarize(ctx, &future, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CashSummary{}, s)
}

func TestClientDelete_EliminaCitas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.book(t, f.appointmentUseCase(), "10:00", "10:30")
	require.NoError(t, err)

	ok, err := f.clients.Delete(ctx, f.clientID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := f.appts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = f.clients.Delete(ctx, f.clientID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Ninguna secuencia de altas y ediciones deja dos citas 'scheduled' solapadas para un barbero.
func TestAgenda_SinSolapamientos(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t)
		ctx := context.Background()
		b2 := &entity.Barber{Name: "Carlos", Active: true}
		require.NoError(rt, f.barbers.Create(ctx, b2))
		barbers := []int64{f.barberID, b2.ID}
		uc := f.appointmentUseCase()
		base := at("08:00")

		var created []int64
		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			barber := rapid.SampledFrom(barbers).Draw(rt, "barber")
			startMin := rapid.IntRange(0, 600).Draw(rt, "start")
			dur := rapid.IntRange(1, 120).Draw(rt, "dur")
			s := base.Add(time.Duration(startMin) * time.Minute).Format(time.RFC3339)
			e := base.Add(time.Duration(startMin+dur) * time.Minute).Format(time.RFC3339)

			if len(created) > 0 && rapid.Bool().Draw(rt, "update") {
				id := rapid.SampledFrom(created).Draw(rt, "id")
				_, err := uc.Update(ctx, id, dto.UpdateAppointmentRequest{BarberID: &barber, StartAt: &s, EndAt: &e})
				if err != nil && !assert.ErrorIs(rt, err, domain.ErrConflict) {
					rt.FailNow()
				}
				continue
			}
			a, err := uc.Create(ctx, dto.CreateAppointmentRequest{
				ClientID: &f.clientID, BarberID: &barber, ServiceID: &f.serviceID, StartAt: &s, EndAt: &e,
			})
			if err != nil {
				if !assert.ErrorIs(rt, err, domain.ErrConflict) {
					rt.FailNow()
				}
				continue
			}
			created = append(created, a.ID)
		}

		all, err := f.appts.List(ctx, entity.AppointmentFilter{})
		require.NoError(rt, err)
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				a, b := all[i], all[j]
				if a.BarberID != b.BarberID || !a.Blocks() || !b.Blocks() {
					continue
				}
				if a.Interval().Overlaps(b.Interval()) {
					rt.Fatalf("citas %d y %d del barbero %d se solapan", a.ID, b.ID, a.BarberID)
				}
			}
		}
	})
}
