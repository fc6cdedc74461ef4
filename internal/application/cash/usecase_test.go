package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barberia-api/internal/application/cash"
	"github.com/jhoicas/barberia-api/internal/application/dto"
	"github.com/jhoicas/barberia-api/internal/domain"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

type memCash struct {
	rows []entity.CashMovement
	// Último rango recibido por Summarize.
	from, to *time.Time
}

func (m *memCash) Create(_ context.Context, c *entity.CashMovement) error {
	c.ID = int64(len(m.rows) + 1)
	c.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, *c)
	return nil
}

func (m *memCash) GetByID(_ context.Context, id int64) (*entity.CashMovement, error) {
	for _, r := range m.rows {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memCash) List(_ context.Context, _, _ *time.Time, limit int) ([]*entity.CashMovement, error) {
	out := make([]*entity.CashMovement, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		r := m.rows[i]
		out = append(out, &r)
	}
	return out, nil
}

func (m *memCash) Summarize(_ context.Context, from, to *time.Time) (entity.CashSummary, error) {
	m.from, m.to = from, to
	var s entity.CashSummary
	for _, r := range m.rows {
		if r.Type == entity.CashTypeIn {
			s.TotalIn += r.AmountCents
		} else {
			s.TotalOut += r.AmountCents
		}
	}
	return s, nil
}

type memAppts struct {
	repository.AppointmentRepository
	ids map[int64]bool
}

func (m memAppts) GetByID(_ context.Context, id int64) (*entity.Appointment, error) {
	if !m.ids[id] {
		return nil, nil
	}
	return &entity.Appointment{ID: id}, nil
}

type fakeReports struct{ got cash.Statement }

func (f *fakeReports) GenerateCashStatement(_ context.Context, s cash.Statement) ([]byte, error) {
	f.got = s
	return []byte("%PDF-1.3"), nil
}

func amount(v int64) *int64 { return &v }

func newUseCase() (*cash.UseCase, *memCash, *fakeReports) {
	repo := &memCash{}
	reports := &fakeReports{}
	return cash.NewUseCase(repo, memAppts{ids: map[int64]bool{7: true}}, reports), repo, reports
}

func TestSummarize_SinMovimientos(t *testing.T) {
	uc, _, _ := newUseCase()
	got, err := uc.Summarize(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, dto.CashSummaryResponse{}, *got)
}

func TestSummarize_EntradasYSalidas(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase()
	_, err := uc.Create(ctx, dto.CreateCashMovementRequest{Type: "in", AmountCents: amount(1000)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCashMovementRequest{Type: "out", AmountCents: amount(400)})
	require.NoError(t, err)

	got, err := uc.Summarize(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, dto.CashSummaryResponse{TotalIn: 1000, TotalOut: 400, Balance: 600}, *got)
}

func TestSummarize_RangoInclusivoSePropaga(t *testing.T) {
	uc, repo, _ := newUseCase()
	_, err := uc.Summarize(context.Background(), "2025-03-01", "2025-03-31T23:59:59Z")
	require.NoError(t, err)
	require.NotNil(t, repo.from)
	require.NotNil(t, repo.to)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *repo.from)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), *repo.to)

	_, err = uc.Summarize(context.Background(), "ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newUseCase()

	cases := []struct {
		name string
		in   dto.CreateCashMovementRequest
		want error
	}{
		{"tipo inválido", dto.CreateCashMovementRequest{Type: "transfer", AmountCents: amount(100)}, domain.ErrInvalidInput},
		{"sin monto", dto.CreateCashMovementRequest{Type: "in"}, domain.ErrInvalidInput},
		{"monto cero", dto.CreateCashMovementRequest{Type: "in", AmountCents: amount(0)}, domain.ErrInvalidInput},
		{"monto negativo", dto.CreateCashMovementRequest{Type: "out", AmountCents: amount(-5)}, domain.ErrInvalidInput},
		{"cita inexistente", dto.CreateCashMovementRequest{Type: "in", AmountCents: amount(100), AppointmentID: amount(99)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, repo.rows)

	out, err := uc.Create(ctx, dto.CreateCashMovementRequest{Type: "in", AmountCents: amount(4000), AppointmentID: amount(7)})
	require.NoError(t, err)
	require.NotNil(t, out.AppointmentID)
	assert.Equal(t, int64(7), *out.AppointmentID)
}

func TestStatementPDF(t *testing.T) {
	ctx := context.Background()
	uc, _, reports := newUseCase()
	_, err := uc.Create(ctx, dto.CreateCashMovementRequest{Type: "in", AmountCents: amount(1500)})
	require.NoError(t, err)

	pdf, name, err := uc.StatementPDF(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, "caixa_20250301_20250331.pdf", name)
	assert.NotEmpty(t, pdf)
	assert.Len(t, reports.got.Movements, 1)
	assert.Equal(t, int64(1500), reports.got.Summary.TotalIn)

	_, name, err = uc.StatementPDF(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "caixa.pdf", name)
}

func TestStatementPDF_ListaTruncadaConTotalesCompletos(t *testing.T) {
	ctx := context.Background()
	uc, repo, reports := newUseCase()
	for i := 0; i < 501; i++ {
		require.NoError(t, repo.Create(ctx, &entity.CashMovement{Type: entity.CashTypeIn, AmountCents: 100}))
	}

	_, _, err := uc.StatementPDF(ctx, "", "")
	require.NoError(t, err)
	assert.True(t, reports.got.Truncated)
	assert.Len(t, reports.got.Movements, 500)
	assert.Equal(t, int64(501), reports.got.Movements[0].ID, "los más recientes primero")
	assert.Equal(t, int64(50100), reports.got.Summary.TotalIn)

	uc, repo, reports = newUseCase()
	require.NoError(t, repo.Create(ctx, &entity.CashMovement{Type: entity.CashTypeIn, AmountCents: 100}))
	_, _, err = uc.StatementPDF(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, reports.got.Truncated)
}
