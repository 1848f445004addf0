package entity

// Tipos de tarjeta aceptados por el backend (/tarjeta).
const (
	TipoTarjetaCredito = "CREDITO"
	TipoTarjetaDebito  = "DEBITO"
)

// Tarjeta es una tarjeta de pago registrada. Se crea de forma perezosa desde
// el sub-flujo de la venta y persiste independiente de cualquier venta.
type Tarjeta struct {
	ID     int64  `json:"idTarjeta,omitempty"`
	Nombre string `json:"nombre"` // emisor o etiqueta visible
	Numero string `json:"numero"` // últimos dígitos que captura la máscara de la UI
	Tipo   string `json:"tipo"`
}
