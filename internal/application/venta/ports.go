package venta

import (
	"context"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// Puertos hacia los recursos remotos. Los implementan los clientes de
// internal/infrastructure/backend; las pruebas usan dobles.

// VentaAPI recurso de encabezados de venta (/sell).
type VentaAPI interface {
	Crear(ctx context.Context, v entity.Venta) (entity.Venta, error)
	Actualizar(ctx context.Context, v entity.Venta) (entity.Venta, error)
}

// DetalleAPI recurso de líneas de venta (/sellDetails).
type DetalleAPI interface {
	Crear(ctx context.Context, d entity.Detalle) (entity.Detalle, error)
	Actualizar(ctx context.Context, d entity.Detalle) (entity.Detalle, error)
	PorVenta(ctx context.Context, idVenta int64) ([]entity.Detalle, error)
}

// InventarioAPI recurso de lotes de stock (/inventoryDetails).
type InventarioAPI interface {
	PorProducto(ctx context.Context, idProducto int64) ([]entity.InventarioDetalle, error)
	Actualizar(ctx context.Context, lote entity.InventarioDetalle) error
}

// TarjetaAPI recurso de tarjetas de pago (/tarjeta).
type TarjetaAPI interface {
	Crear(ctx context.Context, t entity.Tarjeta) (entity.Tarjeta, error)
}

// Sesion identidad del trabajador que registra la venta.
type Sesion interface {
	Perfil(ctx context.Context, forzar bool) (entity.Perfil, error)
}
