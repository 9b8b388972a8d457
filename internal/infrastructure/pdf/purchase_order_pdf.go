// Package pdf genera la versión imprimible de una orden de compra para enviar
// al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ORDEN DE COMPRA + purchase id  │  Fecha de entrega  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR / UBICACIÓN / MONEDA                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Cant | Costo Unit. | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA ORDEN                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apprepl "github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

var _ apprepl.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// moneyPrinter separadores de miles en los importes (formato en-GB, la moneda
// de operación habitual es GBP).
var moneyPrinter = message.NewPrinter(language.BritishEnglish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera el PDF de una orden de compra usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(_ context.Context, attempt *entity.OrderAttempt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(attempt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(attempt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(attempt) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(attempt))

	if attempt.Status != entity.StatusComplete {
		m.AddRows(statusNoticeRow(attempt))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + purchase id (izq) y fecha de entrega esperada (der).
func headerRow(attempt *entity.OrderAttempt) core.Row {
	ref := attempt.PurchaseID
	if ref == "" {
		ref = attempt.ID
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Referencia: "+ref, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Entrega esperada", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(attempt.DeliveryDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitida: "+attempt.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// supplierRow: proveedor, ubicación de recepción y moneda.
func supplierRow(attempt *entity.OrderAttempt) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR Y RECEPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Proveedor: %s   |   Ubicación: %s   |   Moneda: %s",
				attempt.SupplierID, attempt.LocationID, attempt.Currency,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 4, align.Left),
		h("Cant.", 2, align.Center),
		h("Costo Unit.", 3, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de la orden.
func tableLineRows(attempt *entity.OrderAttempt) []core.Row {
	result := make([]core.Row, 0, len(attempt.Lines))
	for _, l := range attempt.Lines {
		sku := l.SKU
		if sku == "" {
			sku = l.StockItemID
		}
		subtotal := l.UnitCost.Mul(decimal.NewFromInt(int64(l.Qty)))

		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				sku,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(attempt.Currency, l.UnitCost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(attempt.Currency, subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de la orden alineado a la derecha.
func totalRow(attempt *entity.OrderAttempt) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL DE LA ORDEN:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(formatMoney(attempt.Currency, attempt.TotalValue()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// statusNoticeRow: advertencia cuando la orden no quedó completa en la plataforma.
func statusNoticeRow(attempt *entity.OrderAttempt) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"ATENCIÓN: colocación %s — %d de %d líneas confirmadas en la plataforma. "+
				"Verificar antes de enviar al proveedor.",
			attempt.Status, attempt.NextLine, len(attempt.Lines),
		), props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney importe con separadores de miles y dos decimales, prefijado con la
// moneda de la orden. Ej: "GBP 1,234.50".
func formatMoney(currency string, d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("%s %.2f", currency, f)
}
