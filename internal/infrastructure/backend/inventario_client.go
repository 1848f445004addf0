package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// InventarioClient operaciones sobre los lotes de stock (/inventoryDetails).
type InventarioClient struct {
	c *Client
}

// NewInventarioClient construye el cliente del recurso.
func NewInventarioClient(c *Client) *InventarioClient {
	return &InventarioClient{c: c}
}

// PorProducto devuelve todos los lotes de inventario de un producto.
// Es la fuente tanto del verificador de stock como del descuento.
func (ic *InventarioClient) PorProducto(ctx context.Context, idProducto int64) ([]entity.InventarioDetalle, error) {
	var lotes []entity.InventarioDetalle
	if err := ic.c.get(ctx, fmt.Sprintf("/inventoryDetails/producto/%d", idProducto), &lotes); err != nil {
		return nil, err
	}
	return lotes, nil
}

// Actualizar aplica el descuento sobre un lote concreto (cantidad y bandera
// de disponibilidad ya recalculadas por el caller).
func (ic *InventarioClient) Actualizar(ctx context.Context, lote entity.InventarioDetalle) error {
	if lote.ID == 0 {
		return fmt.Errorf("backend: actualizar lote de inventario sin id")
	}
	return ic.c.put(ctx, fmt.Sprintf("/inventoryDetails/%d", lote.ID), lote, nil)
}
