// Package pdf genera el extracto de caja en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la barbería  │  Período + fecha emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Descripción | Cita | Valor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / SALDO                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/barberia-api/internal/application/cash"
	"github.com/jhoicas/barberia-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 25, Green: 135, Blue: 84}
	colorOut     = &props.Color{Red: 176, Green: 42, Blue: 55}
)

var _ cash.ReportGenerator = (*CashStatementGenerator)(nil)

// CashStatementGenerator implementa cash.ReportGenerator usando Maroto v2.
// Los valores se formatean en reales (pt-BR) con golang.org/x/text.
type CashStatementGenerator struct {
	title   string
	printer *message.Printer
	now     func() time.Time
}

// NewCashStatementGenerator construye el generador. title aparece en la cabecera.
func NewCashStatementGenerator(title string) *CashStatementGenerator {
	return &CashStatementGenerator{
		title:   title,
		printer: message.NewPrinter(language.BrazilianPortuguese),
		now:     time.Now,
	}
}

// GenerateCashStatement genera el PDF y devuelve sus bytes.
func (g *CashStatementGenerator) GenerateCashStatement(_ context.Context, st cash.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de caixa", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(st.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum movimento no período.", props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		)))
	}
	for _, mv := range st.Movements {
		m.AddRows(g.movementRow(mv))
	}
	if st.Truncated {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(truncatedNote(len(st.Movements)), props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(st.Summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *CashStatementGenerator) headerRow(st cash.Statement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Extrato de caixa", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(st.From, st.To), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido em "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Data", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Descrição", 5, align.Left),
		h("Agend.", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

func (g *CashStatementGenerator) movementRow(mv *entity.CashMovement) core.Row {
	kind, color := "Entrada", colorIn
	if mv.Type == entity.CashTypeOut {
		kind, color = "Saída", colorOut
	}
	desc := "-"
	if mv.Description != nil && *mv.Description != "" {
		desc = *mv.Description
	}
	appt := "-"
	if mv.AppointmentID != nil {
		appt = "#" + strconv.FormatInt(*mv.AppointmentID, 10)
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(mv.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(kind, props.Text{Size: 8, Top: 1, Align: align.Center, Color: color})),
		col.New(5).Add(text.New(desc, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(appt, props.Text{Size: 8, Top: 1, Align: align.Center})),
		col.New(2).Add(text.New(g.formatCents(mv.AmountCents), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
	)
}

func (g *CashStatementGenerator) totalsRow(s entity.CashSummary) core.Row {
	label := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Entradas:", 2),
			label("Saídas:", 8),
			text.New("SALDO:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 14, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(g.formatCents(s.TotalIn), 2),
			value(g.formatCents(s.TotalOut), 8),
			text.New(g.formatCents(s.Balance()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 14, Color: colorPrimary}),
		),
	)
}

// formatCents formatea centavos como "R$ 1.234,50".
func (g *CashStatementGenerator) formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return sign + "R$ " + g.printer.Sprint(number.Decimal(float64(cents)/100, number.Scale(2)))
}

func truncatedNote(shown int) string {
	return "Lista limitada aos " + strconv.Itoa(shown) + " movimentos mais recentes; os totais incluem todo o período."
}

func periodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "todo o histórico"
	case from == nil:
		return "até " + to.Format("02/01/2006")
	case to == nil:
		return "desde " + from.Format("02/01/2006")
	}
	return from.Format("02/01/2006") + " a " + to.Format("02/01/2006")
}
