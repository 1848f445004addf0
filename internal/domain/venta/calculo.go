package venta

import "github.com/shopspring/decimal"

// Cálculo de montos del formulario de venta (servicio de dominio).
// Es el mismo cálculo que muestra la UI y el que se envía al backend:
//
//	Subtotal = Cantidad * PrecioUnitario
//	Total    = (Subtotal - Subtotal*Descuento/100) * (1 + Impuesto/100)
//
// Descuento e impuesto son porcentajes en [0,100].

var cien = decimal.NewFromInt(100)

// Subtotal calcula cantidad × precio unitario.
func Subtotal(cantidad int, precioUnitario decimal.Decimal) decimal.Decimal {
	return precioUnitario.Mul(decimal.NewFromInt(int64(cantidad)))
}

// Total aplica descuento y luego impuesto sobre el subtotal.
// El resultado se entrega sin redondear; quien lo muestre o lo envíe decide
// el redondeo (la UI y el payload usan dos decimales).
func Total(cantidad int, precioUnitario, descuento, impuesto decimal.Decimal) decimal.Decimal {
	subtotal := Subtotal(cantidad, precioUnitario)
	conDescuento := subtotal.Sub(subtotal.Mul(descuento).Div(cien))
	return conDescuento.Add(conDescuento.Mul(impuesto).Div(cien))
}

// TotalRedondeado es Total con redondeo a dos decimales, el valor que viaja
// en totalVenta.
func TotalRedondeado(cantidad int, precioUnitario, descuento, impuesto decimal.Decimal) decimal.Decimal {
	return Total(cantidad, precioUnitario, descuento, impuesto).Round(2)
}
