package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// InventarioDetalle es un lote de stock de un producto dentro del inventario
// de una sucursal (/inventoryDetails). Un producto puede tener varios lotes
// (condiciones o remesas distintas); el verificador de stock los suma y el
// descuento de inventario elige exactamente uno.
type InventarioDetalle struct {
	ID           int64            `json:"idInventarioDetalle"`
	IDInventario int64            `json:"idInventario"`
	IDProducto   int64            `json:"idProducto"`
	Cantidad     CantidadTolerante `json:"cantidad"`
	Condicion    string           `json:"condicion,omitempty"`
	Disponible   bool             `json:"disponible"`
}

// CantidadTolerante es una cantidad entera que tolera basura del backend:
// null, ausente, string numérico o valores no numéricos se leen como 0.
// El verificador de stock depende de esta semántica para no abortar la suma
// por un registro corrupto.
type CantidadTolerante int

// UnmarshalJSON acepta número, string numérico o cualquier otra cosa (→ 0).
func (c *CantidadTolerante) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	// Número JSON directo (se trunca a entero si llega con decimales)
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = CantidadTolerante(int(f))
		return nil
	}
	// String numérico: "12"
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, convErr := strconv.Atoi(s); convErr == nil {
			*c = CantidadTolerante(n)
			return nil
		}
	}
	*c = 0
	return nil
}

// MarshalJSON siempre escribe la cantidad como número entero.
func (c CantidadTolerante) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// Int devuelve la cantidad como int nativo.
func (c CantidadTolerante) Int() int { return int(c) }
