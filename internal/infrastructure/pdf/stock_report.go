// Package pdf genera la hoja de conteo de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + organización  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Und | Total | Mín | Estado | Valor 
//	│         (debajo de cada producto: cantidades por bodega)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / agotados / stock bajo / valor total    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	invdomain "github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

var _ inventory.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReport genera la hoja de conteo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(ctx context.Context, report inventory.StockReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conteo de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	names := warehouseNames(report)
	for _, r := range report.Rows {
		m.AddRows(productRows(r, names)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report inventory.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CONTEO DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Organización: "+report.OrgID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Bodegas: %d", len(report.Warehouses)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Und", 1, align.Center),
		h("Total", 2, align.Right),
		h("Mín.", 1, align.Right),
		h("Estado", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

// productRows: fila del producto y, si tiene stock, el desglose por bodega.
func productRows(r inventory.StockReportRow, names map[string]string) []core.Row {
	rows := []core.Row{row.New(6).Add(
		col.New(2).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(r.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(formatQty(r.TotalQuantity), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(1).Add(text.New(formatQty(r.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(statusLabel(r.Status), props.Text{
			Size: 7, Align: align.Center, Top: 1, Color: statusColor(r.Status),
		})),
		col.New(2).Add(text.New("$"+formatMoney(r.Value.StringFixed(0)), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)}
	if detail := warehouseDetail(r, names); detail != "" {
		rows = append(rows, row.New(4).Add(
			col.New(2),
			col.New(10).Add(text.New(detail, props.Text{Size: 6.5, Color: colorGray, Left: 1})),
		))
	}
	return rows
}

func summaryRow(report inventory.StockReport) core.Row {
	var out, low int
	total := decimal.Zero
	for _, r := range report.Rows {
		switch r.Status {
		case invdomain.StatusOut:
			out++
		case invdomain.StatusLow:
			low++
		}
		total = total.Add(r.Value)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			label("Agotados:"),
			label("Stock bajo:"),
			label("Valor total:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(report.Rows))),
			value(fmt.Sprintf("%d", out)),
			value(fmt.Sprintf("%d", low)),
			value("$"+formatMoney(total.StringFixed(0))),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func warehouseNames(report inventory.StockReport) map[string]string {
	names := make(map[string]string, len(report.Warehouses))
	for _, w := range report.Warehouses {
		names[w.ID] = w.Name
	}
	return names
}

// warehouseDetail "Bodega A: 10 · Bodega B: 2.5", ordenado por nombre.
func warehouseDetail(r inventory.StockReportRow, names map[string]string) string {
	if len(r.ByWarehouse) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.ByWarehouse))
	for id, q := range r.ByWarehouse {
		name := names[id]
		if name == "" {
			name = id
		}
		parts = append(parts, name+": "+formatQty(q))
	}
	sort.Strings(parts)
	return strings.Join(parts, " · ")
}

func statusLabel(s invdomain.Status) string {
	switch s {
	case invdomain.StatusOut:
		return "AGOTADO"
	case invdomain.StatusLow:
		return "BAJO"
	default:
		return "OK"
	}
}

func statusColor(s invdomain.Status) *props.Color {
	switch s {
	case invdomain.StatusOut:
		return colorAlert
	case invdomain.StatusLow:
		return colorWarn
	default:
		return colorGray
	}
}

// formatQty cantidad sin ceros sobrantes: 10, 2.5, 0.125.
func formatQty(d decimal.Decimal) string {
	return d.String()
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
