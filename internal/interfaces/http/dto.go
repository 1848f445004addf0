package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-admin/internal/application/venta"
	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// validate instancia compartida del validador de DTOs.
var validate = validator.New()

// ErrorResponse cuerpo de error uniforme del gateway.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Etapa   string `json:"etapa,omitempty"`
}

// LoginRequest credenciales del trabajador.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TarjetaRequest alta de tarjeta desde el formulario.
type TarjetaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=3"`
	Numero string `json:"numero" validate:"required,len=4,numeric"`
	Tipo   string `json:"tipo" validate:"required,oneof=CREDITO DEBITO"`
}

// TarjetaVentaDTO referencia de tarjeta dentro de una venta: id existente o
// campos para crearla en línea.
type TarjetaVentaDTO struct {
	IDTarjeta int64  `json:"idTarjeta"`
	Nombre    string `json:"nombre"`
	Numero    string `json:"numero"`
	Tipo      string `json:"tipo"`
}

// RegistrarVentaRequest formulario de venta. Los porcentajes van en [0,100].
type RegistrarVentaRequest struct {
	IDCliente      int64           `json:"idCliente" validate:"required,gt=0"`
	IDProducto     int64           `json:"idProducto" validate:"required,gt=0"`
	Cantidad       int             `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario float64         `json:"precioUnitario" validate:"gte=0"`
	Descuento      float64         `json:"descuento" validate:"gte=0,lte=100"`
	Impuesto       float64         `json:"impuesto" validate:"gte=0,lte=100"`
	Notas          string          `json:"notas"`
	MetodoPago     string          `json:"metodoPago" validate:"required,oneof=efectivo tarjeta transferencia"`
	ACredito       bool            `json:"aCredito"`
	Tarjeta        TarjetaVentaDTO `json:"tarjeta"`
}

// contexto traduce el DTO al valor inmutable que consume la saga.
func (r RegistrarVentaRequest) contexto() venta.ContextoVenta {
	return venta.ContextoVenta{
		IDCliente:      r.IDCliente,
		IDProducto:     r.IDProducto,
		Cantidad:       r.Cantidad,
		PrecioUnitario: decimal.NewFromFloat(r.PrecioUnitario),
		Descuento:      decimal.NewFromFloat(r.Descuento),
		Impuesto:       decimal.NewFromFloat(r.Impuesto),
		Notas:          r.Notas,
		MetodoPago:     r.MetodoPago,
		ACredito:       r.ACredito,
		Tarjeta: venta.SeleccionTarjeta{
			IDExistente: r.Tarjeta.IDTarjeta,
			Nombre:      r.Tarjeta.Nombre,
			Numero:      r.Tarjeta.Numero,
			Tipo:        r.Tarjeta.Tipo,
		},
	}
}

// VentaResponse desenlace de la saga hacia el cliente del gateway.
type VentaResponse struct {
	Venta               entity.Venta   `json:"venta"`
	Detalle             entity.Detalle `json:"detalle"`
	InventarioPendiente bool           `json:"inventarioPendiente,omitempty"`
	Advertencia         string         `json:"advertencia,omitempty"`
}
