package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barberia-api/internal/app"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/barberia-api/pkg/config"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Name: "barberia-api-test"},
		DB:        config.DBConfig{Driver: config.DriverSQLite},
		JWT:       config.JWTConfig{Secret: "e2e-secret", Expiration: 60, Issuer: "barberia-api-test"},
		HTTP:      config.HTTPConfig{CORSOrigins: "*"},
		Inventory: config.InventoryConfig{AllowNegativeStock: true},
		Seed:      config.SeedConfig{Enabled: true, AdminEmail: "admin@barbearia.local", AdminPassword: "admin123"},
	}
}

type harness struct {
	t     *testing.T
	app   *fiber.App
	token string
}

// newHarness levanta la app sobre una base SQLite temporal, siembra datos y hace login.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	store := app.SQLiteStore(db)
	require.NoError(t, app.Seed(ctx, cfg, store, logger.Nop()))

	h := &harness{t: t, app: app.New(cfg, store, logger.Nop())}
	var login dto.LoginResponse
	code := h.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "admin@barbearia.local", "password": "admin123",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, login.Token)
	h.token = login.Token
	return h
}

// do envía la petición con el token actual y decodifica la respuesta en out (si no es nil).
func (h *harness) do(method, path string, body any, out any) int {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(h.t, err)
		if len(raw) > 0 {
			require.NoError(h.t, json.Unmarshal(raw, out), string(raw))
		}
	}
	return resp.StatusCode
}

// refs crea un cliente y devuelve ids de cliente, primer barbero y primer servicio.
func (h *harness) refs() (clientID, barberID, serviceID int64) {
	h.t.Helper()
	var client dto.ClientResponse
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/clients", map[string]string{"name": "Pedro"}, &client))

	var barbers []dto.BarberResponse
	require.Equal(h.t, http.StatusOK, h.do(http.MethodGet, "/api/barbers", nil, &barbers))
	require.NotEmpty(h.t, barbers)

	var services []dto.ServiceResponse
	require.Equal(h.t, http.StatusOK, h.do(http.MethodGet, "/api/services", nil, &services))
	require.NotEmpty(h.t, services)

	return client.ID, barbers[0].ID, services[0].ID
}

func booking(clientID, barberID, serviceID int64, start, end string) map[string]any {
	return map[string]any{
		"client_id":  clientID,
		"barber_id":  barberID,
		"service_id": serviceID,
		"start_at":   start,
		"end_at":     end,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SinToken_Retorna401(t *testing.T) {
	h := newHarness(t)
	h.token = ""
	var body dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/appointments", nil, &body))
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	h := newHarness(t)
	h.token = ""
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/auth/login",
		map[string]string{"email": "admin@barbearia.local", "password": "otra"}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/auth/login",
		map[string]string{"email": "admin@barbearia.local"}, nil))
}

func TestAPI_Me(t *testing.T) {
	h := newHarness(t)
	var me dto.MeResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/me", nil, &me))
	assert.Equal(t, "admin@barbearia.local", me.User.Email)
	assert.Equal(t, "Administrador", me.User.Name)
}

func TestAPI_Health(t *testing.T) {
	h := newHarness(t)
	h.token = ""
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Agenda
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CitaSinServicio_Retorna400SinInsertar(t *testing.T) {
	h := newHarness(t)
	clientID, barberID, _ := h.refs()

	body := map[string]any{
		"client_id": clientID,
		"barber_id": barberID,
		"start_at":  "2025-01-10T10:00:00Z",
		"end_at":    "2025-01-10T10:30:00Z",
	}
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/appointments", body, &errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)

	var list []dto.AppointmentResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/appointments", nil, &list))
	assert.Empty(t, list)
}

func TestAPI_CitaSolapada_Retorna409(t *testing.T) {
	h := newHarness(t)
	clientID, barberID, serviceID := h.refs()

	var first dto.AppointmentResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/appointments",
		booking(clientID, barberID, serviceID, "2025-01-10T10:00:00Z", "2025-01-10T10:40:00Z"), &first))
	assert.Equal(t, "scheduled", first.Status)

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/api/appointments",
		booking(clientID, barberID, serviceID, "2025-01-10T10:20:00Z", "2025-01-10T10:50:00Z"), &errBody))
	assert.Equal(t, "SCHEDULE_CONFLICT", errBody.Code)

	// Contiguas no chocan (intervalos semiabiertos).
	assert.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/appointments",
		booking(clientID, barberID, serviceID, "2025-01-10T10:40:00Z", "2025-01-10T11:00:00Z"), nil))

	var list []dto.AppointmentResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/appointments?barber_id="+itoa(barberID), nil, &list))
	assert.Len(t, list, 2)
}

func TestAPI_ActualizarCitaMismoHorario_OK(t *testing.T) {
	h := newHarness(t)
	clientID, barberID, serviceID := h.refs()

	var appt dto.AppointmentResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/appointments",
		booking(clientID, barberID, serviceID, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z"), &appt))

	path := "/api/appointments/" + itoa(appt.ID)
	var updated dto.AppointmentResponse
	assert.Equal(t, http.StatusOK, h.do(http.MethodPut, path, map[string]any{
		"start_at": "2025-01-10T10:00:00Z",
		"end_at":   "2025-01-10T10:30:00Z",
		"notes":    "degradê",
	}, &updated))
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "degradê", *updated.Notes)
}

func TestAPI_EliminarCita(t *testing.T) {
	h := newHarness(t)
	clientID, barberID, serviceID := h.refs()

	var appt dto.AppointmentResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/appointments",
		booking(clientID, barberID, serviceID, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z"), &appt))

	path := "/api/appointments/" + itoa(appt.ID)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, path, nil, nil))
}

func TestAPI_CuerpoMalformado_Retorna400(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_BODY", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MovimientosDeInventario(t *testing.T) {
	h := newHarness(t)

	var item dto.InventoryItemResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/inventory/items",
		map[string]any{"name": "Pomada", "stock_qty": 10, "low_stock_threshold": 3}, &item))

	movements := "/api/inventory/items/" + itoa(item.ID) + "/movements"
	var mv dto.InventoryMovementResponse
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, movements,
		map[string]any{"change_qty": 5, "reason": "compra"}, &mv))
	assert.True(t, decimal.NewFromInt(5).Equal(mv.ChangeQty))
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, movements,
		map[string]any{"change_qty": -3, "reason": "uso"}, nil))

	var list []dto.InventoryMovementResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, movements, nil, &list))
	assert.Len(t, list, 2)

	var rec dto.ReconcileResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/inventory/items/"+itoa(item.ID)+"/reconcile", nil, &rec))
	assert.True(t, decimal.NewFromInt(12).Equal(rec.StockQty))
	assert.True(t, decimal.NewFromInt(2).Equal(rec.MovementsTotal))
	assert.True(t, rec.Consistent)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, movements, map[string]any{"reason": "sin cantidad"}, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/inventory/items/9999/movements",
		map[string]any{"change_qty": 1}, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Caja
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CajaValidacionYResumen(t *testing.T) {
	h := newHarness(t)

	var summary dto.CashSummaryResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/cash/summary", nil, &summary))
	assert.Equal(t, dto.CashSummaryResponse{}, summary)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "in"}, nil), "amount_cents es obligatorio")
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "x", "amount_cents": 100}, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "in", "amount_cents": 100, "appointment_id": 9999}, nil))

	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "in", "amount_cents": 1000, "description": "corte"}, nil))
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "out", "amount_cents": 400, "description": "insumos"}, nil))

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/cash/summary", nil, &summary))
	assert.Equal(t, dto.CashSummaryResponse{TotalIn: 1000, TotalOut: 400, Balance: 600}, summary)
}

func TestAPI_ExtractoPDF(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/cash",
		map[string]any{"type": "in", "amount_cents": 4000}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cash/report.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "caixa.pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
