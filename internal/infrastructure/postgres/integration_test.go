//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/infrastructure/postgres"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "barberia",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw"},
		Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "iniciar contenedor PostgreSQL")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(c) })

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://%s:%s@%s/barberia?sslmode=disable", testUser, testPassword, endpoint)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "el esquema debe ser idempotente")
	return pool
}

type pgFixture struct {
	pool                          *pgxpool.Pool
	uc                            *appointment.UseCase
	clientID, barberID, serviceID int64
}

func newPGFixture(t *testing.T) *pgFixture {
	pool := startPostgres(t)
	ctx := context.Background()
	clients := postgres.NewClientRepository(pool)
	barbers := postgres.NewBarberRepository(pool)
	services := postgres.NewServiceRepository(pool)

	c := &entity.Client{Name: "Pedro"}
	require.NoError(t, clients.Create(ctx, c))
	b := &entity.Barber{Name: "João", Active: true}
	require.NoError(t, barbers.Create(ctx, b))
	s := &entity.Service{Name: "Corte", DurationMin: 30, PriceCents: 4000, Active: true}
	require.NoError(t, services.Create(ctx, s))

	uc := appointment.NewUseCase(postgres.NewTxRunner(pool), postgres.NewAppointmentRepository(pool), clients, barbers, services)
	return &pgFixture{pool: pool, uc: uc, clientID: c.ID, barberID: b.ID, serviceID: s.ID}
}

func (f *pgFixture) request(start, end string) dto.CreateAppointmentRequest {
	s, e := "2025-03-10T"+start+":00Z", "2025-03-10T"+end+":00Z"
	return dto.CreateAppointmentRequest{ClientID: &f.clientID, BarberID: &f.barberID, ServiceID: &f.serviceID, StartAt: &s, EndAt: &e}
}

func TestPostgres_Agenda(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	a, err := f.uc.Create(ctx, f.request("10:00", "10:40"))
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, f.request("10:20", "10:50"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Create(ctx, f.request("10:40", "11:00"))
	assert.NoError(t, err, "contiguas no chocan")

	ok, err := f.uc.HasConflict(ctx, f.barberID, a.StartAt, a.EndAt, &a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// La restricción de exclusión rechaza solapamientos aunque no se pase por el caso de uso.
func TestPostgres_RestriccionDeExclusion(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	repo := postgres.NewAppointmentRepository(f.pool)
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	first := &entity.Appointment{ClientID: f.clientID, BarberID: f.barberID, ServiceID: f.serviceID,
		StartAt: start, EndAt: start.Add(40 * time.Minute), Status: entity.AppointmentStatusScheduled}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Appointment{ClientID: f.clientID, BarberID: f.barberID, ServiceID: f.serviceID,
		StartAt: start.Add(20 * time.Minute), EndAt: start.Add(50 * time.Minute), Status: entity.AppointmentStatusScheduled}
	assert.ErrorIs(t, repo.Create(ctx, second), domain.ErrConflict)

	second.Status = entity.AppointmentStatusCancelled
	assert.NoError(t, repo.Create(ctx, second), "las canceladas no participan")
}

func TestPostgres_ReservasConcurrentes(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	const n = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, confl int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(ctx, f.request("15:00", "15:30"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrConflict):
				confl++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, confl)
}

func TestPostgres_LibroConcurrente(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	items := postgres.NewInventoryItemRepository(pool)
	movements := postgres.NewInventoryMovementRepository(pool)

	item := &entity.InventoryItem{Name: "Pomada", StockQty: decimal.NewFromInt(3), InitialQty: decimal.NewFromInt(3), Unit: "un", Active: true}
	require.NoError(t, items.Create(ctx, item))

	ledger := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(pool), true)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyMovement(ctx, item.ID, decimal.RequireFromString("0.5"), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := inventory.NewItemUseCase(items, movements).Reconcile(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, rec.StockQty.Equal(decimal.NewFromInt(13)), "stock = %s", rec.StockQty)
	assert.True(t, rec.Consistent)
}

func TestPostgres_ResumenCaja(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	cash := postgres.NewCashMovementRepository(pool)

	s, err := cash.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CashSummary{}, s)

	require.NoError(t, cash.Create(ctx, &entity.CashMovement{Type: entity.CashTypeIn, AmountCents: 1000}))
	require.NoError(t, cash.Create(ctx, &entity.CashMovement{Type: entity.CashTypeOut, AmountCents: 400}))
	s, err = cash.Summarize(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CashSummary{TotalIn: 1000, TotalOut: 400}, s)
	assert.Equal(t, int64(600), s.Balance())
}
