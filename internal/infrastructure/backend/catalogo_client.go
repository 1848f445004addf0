package backend

import (
	"context"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// CatalogoClient lecturas de las entidades de referencia del catálogo:
// clientes (/client) y productos (/product). Este flujo nunca las muta.
type CatalogoClient struct {
	c *Client
}

// NewCatalogoClient construye el cliente del recurso.
func NewCatalogoClient(c *Client) *CatalogoClient {
	return &CatalogoClient{c: c}
}

// Clientes devuelve la lista completa de clientes.
func (cc *CatalogoClient) Clientes(ctx context.Context) ([]entity.Cliente, error) {
	var envoltura listaClientes
	if err := cc.c.get(ctx, "/client", &envoltura); err != nil {
		return nil, err
	}
	return envoltura.items, nil
}

// Productos devuelve la lista completa de productos.
func (cc *CatalogoClient) Productos(ctx context.Context) ([]entity.Producto, error) {
	var envoltura listaProductos
	if err := cc.c.get(ctx, "/product", &envoltura); err != nil {
		return nil, err
	}
	return envoltura.items, nil
}

type listaClientes struct {
	items []entity.Cliente
}

func (l *listaClientes) UnmarshalJSON(data []byte) error {
	var directa []entity.Cliente
	if err := unmarshalLista(data, &directa); err == nil {
		l.items = directa
		return nil
	}
	var envuelta struct {
		Clients []entity.Cliente `json:"clients"`
		Data    []entity.Cliente `json:"data"`
	}
	if err := unmarshalLista(data, &envuelta); err != nil {
		return err
	}
	if envuelta.Clients != nil {
		l.items = envuelta.Clients
	} else {
		l.items = envuelta.Data
	}
	return nil
}

type listaProductos struct {
	items []entity.Producto
}

func (l *listaProductos) UnmarshalJSON(data []byte) error {
	var directa []entity.Producto
	if err := unmarshalLista(data, &directa); err == nil {
		l.items = directa
		return nil
	}
	var envuelta struct {
		Products []entity.Producto `json:"products"`
		Data     []entity.Producto `json:"data"`
	}
	if err := unmarshalLista(data, &envuelta); err != nil {
		return err
	}
	if envuelta.Products != nil {
		l.items = envuelta.Products
	} else {
		l.items = envuelta.Data
	}
	return nil
}
