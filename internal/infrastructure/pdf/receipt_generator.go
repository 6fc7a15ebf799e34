// Package pdf renderiza el comprobante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Comprobante + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + DNI       │  VENDEDOR                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto (SKU) | P.Unit | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + método de pago                                     │
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

	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles para métodos de pago.
var paymentLabels = map[string]string{
	"cash":     "Efectivo",
	"card":     "Tarjeta",
	"transfer": "Transferencia",
	"wallet":   "Billetera móvil",
}

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	businessName string
}

// NewReceiptGenerator construye el generador con el nombre del negocio para el header.
func NewReceiptGenerator(businessName string) *ReceiptGenerator {
	return &ReceiptGenerator{businessName: businessName}
}

// GenerateReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, data *sales.ReceiptData) ([]byte, error) {
	sale := data.Sale

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Venta "+sale.SaleNumber, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq) y número + fecha (der).
func (g *ReceiptGenerator) headerRow(sale *dto.SaleResponse) core.Row {
	fecha := sale.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(sale.SaleNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// partiesRow: cliente (izq) y vendedor (der).
func partiesRow(sale *dto.SaleResponse) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("DNI: "+sale.CustomerDNI, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("VENDEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(sale.SellerName, "—"), props.Text{Size: 9, Align: align.Right, Top: 7}),
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
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []dto.SaleItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				fmt.Sprintf("%s (%s)", it.ProductName, it.ProductSKU),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				it.TotalPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total a pagar y método de pago.
func totalRow(sale *dto.SaleResponse) core.Row {
	payment := paymentLabels[sale.PaymentMethod]
	if payment == "" {
		payment = sale.PaymentMethod
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Método de pago: "+payment, props.Text{Size: 9, Top: 4, Color: colorGray}),
		),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(sale.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
