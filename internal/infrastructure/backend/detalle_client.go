package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// unmarshalLista helper compartido por los clientes que aceptan listas con o
// sin objeto envoltorio.
func unmarshalLista(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// DetalleClient operaciones sobre las líneas de venta (/sellDetails).
type DetalleClient struct {
	c *Client
}

// NewDetalleClient construye el cliente del recurso.
func NewDetalleClient(c *Client) *DetalleClient {
	return &DetalleClient{c: c}
}

// Crear registra la línea de una venta.
func (dc *DetalleClient) Crear(ctx context.Context, d entity.Detalle) (entity.Detalle, error) {
	var creado entity.Detalle
	if err := dc.c.post(ctx, "/sellDetails", d, &creado); err != nil {
		return entity.Detalle{}, err
	}
	if creado.ID == 0 {
		creado = d
	}
	return creado, nil
}

// Actualizar modifica una línea existente en sitio (cantidad, precio, subtotal).
func (dc *DetalleClient) Actualizar(ctx context.Context, d entity.Detalle) (entity.Detalle, error) {
	if d.ID == 0 {
		return entity.Detalle{}, fmt.Errorf("backend: actualizar detalle sin id")
	}
	var actualizado entity.Detalle
	if err := dc.c.put(ctx, fmt.Sprintf("/sellDetails/%d", d.ID), d, &actualizado); err != nil {
		return entity.Detalle{}, err
	}
	if actualizado.ID == 0 {
		actualizado = d
	}
	return actualizado, nil
}

// PorVenta devuelve las líneas de una venta. Este flujo solo gestiona la
// primera, pero el recurso puede traer varias.
func (dc *DetalleClient) PorVenta(ctx context.Context, idVenta int64) ([]entity.Detalle, error) {
	var detalles []entity.Detalle
	if err := dc.c.get(ctx, fmt.Sprintf("/sellDetails/venta/%d", idVenta), &detalles); err != nil {
		return nil, err
	}
	return detalles, nil
}
