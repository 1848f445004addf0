package entity

// Tipos de venta según condición de pago.
const (
	TipoVentaContado = "CASH"
	TipoVentaCredito = "CREDIT"
)

// Estados del encabezado de venta.
const (
	EstadoVentaPagada    = "PAID"
	EstadoVentaPendiente = "PENDING"
	EstadoVentaCancelada = "CANCELLED"
)

// Métodos de pago aceptados por el formulario de venta.
const (
	MetodoPagoEfectivo      = "efectivo"
	MetodoPagoTarjeta       = "tarjeta"
	MetodoPagoTransferencia = "transferencia"
)

// Venta es el encabezado de una transacción de venta tal como lo expone el
// backend en /sell. Los montos viajan como números JSON (float); el cálculo
// local se hace con decimal y se convierte justo antes de serializar.
type Venta struct {
	ID           int64    `json:"idVenta,omitempty"`
	IDSucursal   int64    `json:"idSucursal"`
	IDCliente    int64    `json:"idCliente"`
	IDTrabajador int64    `json:"idTrabajador"`
	Total        float64  `json:"totalVenta"`
	Descuento    float64  `json:"descuento"`
	Impuesto     float64  `json:"impuesto"`
	MetodoPago   string   `json:"metodoPago"`
	TipoVenta    string   `json:"tipoVenta"`
	Notas        string   `json:"notas"`
	Estado       string   `json:"estado,omitempty"`
	IDTarjeta    *int64   `json:"idTarjeta,omitempty"`
	Fecha        string   `json:"fecha,omitempty"`
	Detalles     []Detalle `json:"detalles,omitempty"`
}

// RequiereTarjeta indica si el método de pago obliga a resolver una tarjeta.
func (v Venta) RequiereTarjeta() bool {
	return v.MetodoPago == MetodoPagoTarjeta
}
