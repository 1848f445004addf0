package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// VentaClient operaciones sobre el recurso de encabezados de venta (/sell).
type VentaClient struct {
	c *Client
}

// NewVentaClient construye el cliente del recurso.
func NewVentaClient(c *Client) *VentaClient {
	return &VentaClient{c: c}
}

// Crear registra un encabezado de venta nuevo y devuelve la venta con el id
// asignado por el backend.
func (vc *VentaClient) Crear(ctx context.Context, v entity.Venta) (entity.Venta, error) {
	var creada entity.Venta
	if err := vc.c.post(ctx, "/sell", v, &creada); err != nil {
		return entity.Venta{}, err
	}
	if creada.ID == 0 {
		return entity.Venta{}, fmt.Errorf("backend: la respuesta de /sell no trae idVenta")
	}
	return creada, nil
}

// Actualizar modifica un encabezado existente por id.
func (vc *VentaClient) Actualizar(ctx context.Context, v entity.Venta) (entity.Venta, error) {
	if v.ID == 0 {
		return entity.Venta{}, fmt.Errorf("backend: actualizar venta sin id")
	}
	var actualizada entity.Venta
	if err := vc.c.put(ctx, fmt.Sprintf("/sell/%d", v.ID), v, &actualizada); err != nil {
		return entity.Venta{}, err
	}
	if actualizada.ID == 0 {
		actualizada = v
	}
	return actualizada, nil
}

// PorSucursal lista las ventas de una sucursal. El backend a veces envuelve
// la lista en {"ventas": [...]} o {"data": [...]}; se aceptan ambas formas.
func (vc *VentaClient) PorSucursal(ctx context.Context, idSucursal int64) ([]entity.Venta, error) {
	var envoltura listaVentas
	if err := vc.c.get(ctx, fmt.Sprintf("/sell/sucursal/%d", idSucursal), &envoltura); err != nil {
		return nil, err
	}
	return envoltura.items, nil
}

// listaVentas tolera respuesta como arreglo plano o como objeto envoltorio.
type listaVentas struct {
	items []entity.Venta
}

func (l *listaVentas) UnmarshalJSON(data []byte) error {
	var directa []entity.Venta
	if err := unmarshalLista(data, &directa); err == nil {
		l.items = directa
		return nil
	}
	var envuelta struct {
		Ventas []entity.Venta `json:"ventas"`
		Data   []entity.Venta `json:"data"`
	}
	if err := unmarshalLista(data, &envuelta); err != nil {
		return err
	}
	if envuelta.Ventas != nil {
		l.items = envuelta.Ventas
	} else {
		l.items = envuelta.Data
	}
	return nil
}
