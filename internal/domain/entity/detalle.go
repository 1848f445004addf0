package entity

// Detalle es la línea de una venta (/sellDetails). En este flujo cada venta
// gestiona exactamente una línea; el subtotal se recalcula siempre en el
// cliente antes de enviarse (cantidad × precio), nunca se confía en el valor
// que tenga el formulario.
type Detalle struct {
	ID         int64   `json:"idVentaDetalle,omitempty"`
	IDVenta    int64   `json:"idVenta"`
	IDProducto int64   `json:"idProducto"`
	Cantidad   int     `json:"cantidad"`
	Precio     float64 `json:"precio"`
	Subtotal   float64 `json:"subtotal"`
}
