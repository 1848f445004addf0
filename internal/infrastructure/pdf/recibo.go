// Package pdf genera el recibo de venta en PDF para imprimir o enviar al
// cliente después de registrar la transacción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Recibo N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre │ ATENDIÓ: trabajador │ PAGO: método/tipo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Notas + leyenda de agradecimiento                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

var (
	colorPrimario = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DatosRecibo reúne todo lo que el recibo necesita, ya resuelto por el caller:
// la venta con su línea, y los nombres legibles de cliente, producto y cajero.
type DatosRecibo struct {
	Venta          entity.Venta
	Detalle        entity.Detalle
	NombreCliente  string
	NombreProducto string
	NombreCajero   string
	Negocio        string
}

// GeneradorRecibo genera recibos de venta con Maroto v2.
type GeneradorRecibo struct{}

// NewGeneradorRecibo construye el generador.
func NewGeneradorRecibo() *GeneradorRecibo { return &GeneradorRecibo{} }

// Generar produce el PDF del recibo y devuelve sus bytes.
func (g *GeneradorRecibo) Generar(_ context.Context, datos DatosRecibo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Recibo de venta %d", datos.Venta.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(encabezadoRecibo(datos))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(filaParticipantes(datos))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(cabeceraLineas())
	m.AddRows(filaLinea(datos))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))
	m.AddRows(filaTotales(datos.Venta, datos.Detalle))

	if notas := strings.TrimSpace(datos.Venta.Notas); notas != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+notas, props.Text{Size: 8, Color: colorGris, Top: 2}),
		)))
	}
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra.", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorPrimario, Top: 3,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// encabezadoRecibo: nombre del negocio (izq), número y fecha (der).
func encabezadoRecibo(datos DatosRecibo) core.Row {
	negocio := datos.Negocio
	if negocio == "" {
		negocio = "Punto de Venta"
	}
	fecha := datos.Venta.Fecha
	if fecha == "" {
		fecha = "—"
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New(negocio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", datos.Venta.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGris,
			}),
		),
	)
}

// filaParticipantes: cliente, cajero y condición de pago en una banda.
func filaParticipantes(datos DatosRecibo) core.Row {
	pago := datos.Venta.MetodoPago
	if datos.Venta.TipoVenta == entity.TipoVentaCredito {
		pago += " (crédito)"
	}

	bloque := func(titulo, valor string) core.Col {
		return col.New(4).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimario, Top: 1,
			}),
			text.New(noVacio(valor, "—"), props.Text{Size: 9, Top: 6}),
		)
	}

	return row.New(12).Add(
		bloque("CLIENTE", datos.NombreCliente),
		bloque("ATENDIÓ", datos.NombreCajero),
		bloque("PAGO", pago),
	)
}

func cabeceraLineas() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func filaLinea(datos DatosRecibo) core.Row {
	d := datos.Detalle
	return row.New(7).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", d.Cantidad),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(
			noVacio(datos.NombreProducto, fmt.Sprintf("Producto %d", d.IDProducto)),
			props.Text{Size: 8, Align: align.Left, Top: 1},
		)),
		col.New(2).Add(text.New(
			"$"+montoFijo(d.Precio),
			props.Text{Size: 8, Align: align.Right, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+montoFijo(d.Subtotal),
			props.Text{Size: 8, Align: align.Right, Top: 1},
		)),
	)
}

// filaTotales: subtotal, porcentajes aplicados y total final.
func filaTotales(v entity.Venta, d entity.Detalle) core.Row {
	etiqueta := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	valor := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(30).Add(
		col.New(4),
		col.New(4).Add(
			etiqueta("Subtotal:"),
			etiqueta("Descuento:"),
			etiqueta("Impuesto:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimario, Right: 2, Top: 21,
			}),
		),
		col.New(4).Add(
			valor("$"+montoFijo(d.Subtotal)),
			valor(montoFijo(v.Descuento)+"%"),
			valor(montoFijo(v.Impuesto)+"%"),
			text.New("$"+montoFijo(v.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimario, Right: 1, Top: 21,
			}),
		),
	)
}

func noVacio(s, alternativa string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return alternativa
}

// montoFijo formatea un monto con dos decimales exactos.
func montoFijo(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}
