package entity

import "strings"

// Producto entidad de referencia del catálogo (/product). Solo lectura en este flujo.
type Producto struct {
	ID     int64   `json:"idProducto"`
	Nombre string  `json:"nombre"`
	Modelo string  `json:"modelo,omitempty"`
	Precio float64 `json:"precio"`
}

// Etiqueta devuelve el texto con el que se muestra el producto en el buscador.
func (p Producto) Etiqueta() string {
	if p.Nombre != "" {
		return p.Nombre
	}
	return p.Modelo
}

// Persona datos personales anidados en cliente y trabajador.
type Persona struct {
	Nombre          string `json:"nombre"`
	PrimerApellido  string `json:"primerApellido"`
	SegundoApellido string `json:"segundoApellido"`
}

// NombreCompleto concatena nombre y apellidos omitiendo los vacíos.
func (p Persona) NombreCompleto() string {
	partes := make([]string, 0, 3)
	for _, s := range []string{p.Nombre, p.PrimerApellido, p.SegundoApellido} {
		if s = strings.TrimSpace(s); s != "" {
			partes = append(partes, s)
		}
	}
	return strings.Join(partes, " ")
}

// Cliente entidad de referencia (/client). Solo lectura en este flujo.
type Cliente struct {
	ID      int64   `json:"idCliente"`
	Persona Persona `json:"persona"`
}

// Etiqueta devuelve el texto con el que se muestra el cliente en el buscador.
func (c Cliente) Etiqueta() string { return c.Persona.NombreCompleto() }
