// Package venta implementa el orquestador de transacciones de venta: una saga
// de llamadas independientes contra un backend sin transacciones entre
// recursos. La secuencia es
//
//	validación → verificación de stock → (tarjeta) → encabezado → detalle →
//	(descuento de inventario)
//
// con fallo absorbente etiquetado por etapa. No hay atomicidad: un fallo al
// descontar inventario deja la venta y su detalle persistidos y se reporta
// como condición aparte, reparable con RepararInventario.
package venta

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/internal/domain/entity"
	dventa "github.com/jhoicas/pos-admin/internal/domain/venta"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// AdvertenciaInventario mensaje de la condición parcial: el registro de
// negocio existe pero el stock no se descontó.
const AdvertenciaInventario = "venta registrada, inventario no actualizado"

// ContextoVenta es el valor inmutable que viaja por todas las etapas de la
// saga; reemplaza cualquier estado ambiental mutable. Para modificar una venta
// existente se activan Modificando, IDVenta e IDDetalle, que el caller debe
// recuperar de la lista de ventas previamente cargada: la saga no los deriva.
type ContextoVenta struct {
	IDCliente      int64
	IDProducto     int64
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Descuento      decimal.Decimal // porcentaje [0,100]
	Impuesto       decimal.Decimal // porcentaje [0,100]
	Notas          string
	MetodoPago     string
	ACredito       bool
	Tarjeta        SeleccionTarjeta

	Modificando bool
	IDVenta     int64
	IDDetalle   int64
}

// clave identifica el formulario/sesión para el candado de vuelo único.
func (cx ContextoVenta) clave() string {
	return fmt.Sprintf("%d|%d|%d", cx.IDCliente, cx.IDProducto, cx.IDVenta)
}

// Resultado desenlace de una saga exitosa. InventarioPendiente marca la
// condición parcial en la que el descuento de stock no se aplicó.
type Resultado struct {
	Venta               entity.Venta
	Detalle             entity.Detalle
	InventarioPendiente bool
	Advertencia         string
}

// Saga orquestador de ventas.
type Saga struct {
	ventas     VentaAPI
	detalles   DetalleAPI
	inventario InventarioAPI
	stock      *VerificadorStock
	tarjetas   *ResolutorTarjeta
	sesion     Sesion
	log        *logger.Logger

	mu      sync.Mutex
	enVuelo map[string]struct{}
}

// NewSaga construye el orquestador.
func NewSaga(
	ventas VentaAPI,
	detalles DetalleAPI,
	inventario InventarioAPI,
	stock *VerificadorStock,
	tarjetas *ResolutorTarjeta,
	sesion Sesion,
	log *logger.Logger,
) *Saga {
	return &Saga{
		ventas:     ventas,
		detalles:   detalles,
		inventario: inventario,
		stock:      stock,
		tarjetas:   tarjetas,
		sesion:     sesion,
		log:        log.Componente("saga"),
		enVuelo:    make(map[string]struct{}),
	}
}

// Registrar ejecuta la saga completa para el contexto dado. Los envíos
// solapados sobre el mismo formulario se rechazan con domain.ErrSaleInFlight.
func (s *Saga) Registrar(ctx context.Context, cx ContextoVenta) (Resultado, error) {
	clave := cx.clave()
	if !s.adquirir(clave) {
		return Resultado{}, domain.ErrSaleInFlight
	}
	defer s.liberar(clave)

	// ── 1. Validación: nada toca la red si el formulario está incompleto ──
	if err := validarContexto(cx); err != nil {
		return Resultado{}, fallaEn(EtapaValidacion, err)
	}

	perfil, err := s.sesion.Perfil(ctx, false)
	if err != nil {
		return Resultado{}, fallaEn(EtapaSesion, err)
	}

	// ── 2. Verificación de stock (solo al crear; modificar no re-verifica
	// ni toca inventario, limitación conocida del flujo) ──
	if !cx.Modificando {
		res, err := s.stock.Verificar(ctx, cx.IDProducto, cx.Cantidad)
		if err != nil {
			return Resultado{}, fallaEn(EtapaStock, err)
		}
		if !res.OK {
			return Resultado{}, fallaEn(EtapaStock, &ErrStockInsuficiente{
				Disponible: res.Disponible,
				Solicitado: cx.Cantidad,
			})
		}
	}

	// ── 3. Resolución de tarjeta, solo si el método de pago la exige ──
	var idTarjeta *int64
	if cx.MetodoPago == entity.MetodoPagoTarjeta {
		id, err := s.tarjetas.Resolver(ctx, cx.Tarjeta)
		if err != nil {
			return Resultado{}, fallaEn(EtapaTarjeta, err)
		}
		idTarjeta = &id
	}

	// ── 4. Encabezado: crear o actualizar según el modo ──
	encabezado, err := s.upsertEncabezado(ctx, cx, perfil, idTarjeta)
	if err != nil {
		return Resultado{}, fallaEn(EtapaEncabezado, err)
	}

	// ── 5. Detalle: atado al id de venta que devolvió el paso anterior ──
	detalle, err := s.upsertDetalle(ctx, cx, encabezado.ID)
	if err != nil {
		return Resultado{}, fallaEn(EtapaDetalle, err)
	}

	resultado := Resultado{Venta: encabezado, Detalle: detalle}

	// ── 6. Descuento de inventario, solo al crear. Un fallo aquí NO revierte
	// los pasos 4-5: la venta queda registrada y la condición se reporta
	// aparte para que pueda repararse después. ──
	if !cx.Modificando {
		if err := s.descontarInventario(ctx, cx.IDProducto, cx.Cantidad); err != nil {
			s.log.Warn().Err(err).
				Int64("idVenta", encabezado.ID).
				Int64("idProducto", cx.IDProducto).
				Msg(AdvertenciaInventario)
			resultado.InventarioPendiente = true
			resultado.Advertencia = AdvertenciaInventario
			return resultado, nil
		}
	}

	s.log.Info().
		Int64("idVenta", encabezado.ID).
		Int64("idCliente", cx.IDCliente).
		Int64("idProducto", cx.IDProducto).
		Bool("modificando", cx.Modificando).
		Msg("venta registrada")
	return resultado, nil
}

// RepararInventario reintenta únicamente el descuento de stock de una venta
// que quedó con InventarioPendiente. Usa la primera línea de la venta, que es
// la única que este flujo gestiona.
func (s *Saga) RepararInventario(ctx context.Context, idVenta int64) error {
	detalles, err := s.detalles.PorVenta(ctx, idVenta)
	if err != nil {
		return fallaEn(EtapaInventario, fmt.Errorf("recuperar detalle de la venta %d: %w", idVenta, err))
	}
	if len(detalles) == 0 {
		return fallaEn(EtapaInventario, domain.ErrNotFound)
	}
	d := detalles[0]
	if err := s.descontarInventario(ctx, d.IDProducto, d.Cantidad); err != nil {
		return fallaEn(EtapaInventario, err)
	}
	s.log.Info().Int64("idVenta", idVenta).Int64("idProducto", d.IDProducto).
		Msg("inventario reparado")
	return nil
}

// ── etapas internas ───────────────────────────────────────────────────────────

func validarContexto(cx ContextoVenta) error {
	if cx.IDCliente == 0 || cx.IDProducto == 0 {
		return fmt.Errorf("%w: debes seleccionar un cliente y un producto", domain.ErrInvalidInput)
	}
	if cx.Cantidad <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if cx.PrecioUnitario.IsNegative() {
		return fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	if cx.Descuento.IsNegative() || cx.Descuento.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: el descuento debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if cx.Impuesto.IsNegative() || cx.Impuesto.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: el impuesto debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if cx.Modificando && (cx.IDVenta == 0 || cx.IDDetalle == 0) {
		return fmt.Errorf("%w: modificar requiere idVenta e idVentaDetalle", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Saga) upsertEncabezado(ctx context.Context, cx ContextoVenta, perfil entity.Perfil, idTarjeta *int64) (entity.Venta, error) {
	tipo := entity.TipoVentaContado
	estado := entity.EstadoVentaPagada
	if cx.ACredito {
		tipo = entity.TipoVentaCredito
		estado = entity.EstadoVentaPendiente
	}

	v := entity.Venta{
		IDSucursal:   perfil.IDSucursal,
		IDCliente:    cx.IDCliente,
		IDTrabajador: perfil.ID,
		Total:        dventa.TotalRedondeado(cx.Cantidad, cx.PrecioUnitario, cx.Descuento, cx.Impuesto).InexactFloat64(),
		Descuento:    cx.Descuento.InexactFloat64(),
		Impuesto:     cx.Impuesto.InexactFloat64(),
		MetodoPago:   cx.MetodoPago,
		TipoVenta:    tipo,
		Estado:       estado,
		Notas:        cx.Notas,
		IDTarjeta:    idTarjeta,
	}

	if cx.Modificando {
		v.ID = cx.IDVenta
		return s.ventas.Actualizar(ctx, v)
	}
	return s.ventas.Crear(ctx, v)
}

func (s *Saga) upsertDetalle(ctx context.Context, cx ContextoVenta, idVenta int64) (entity.Detalle, error) {
	d := entity.Detalle{
		IDVenta:    idVenta,
		IDProducto: cx.IDProducto,
		Cantidad:   cx.Cantidad,
		Precio:     cx.PrecioUnitario.InexactFloat64(),
		// Siempre recalculado aquí, nunca tomado del formulario.
		Subtotal: dventa.Subtotal(cx.Cantidad, cx.PrecioUnitario).InexactFloat64(),
	}

	if cx.Modificando {
		d.ID = cx.IDDetalle
		return s.detalles.Actualizar(ctx, d)
	}
	return s.detalles.Crear(ctx, d)
}

// descontarInventario vuelve a leer los lotes del producto, elige el primero
// con existencias y le resta la cantidad vendida. El descuento usa exactamente
// un lote: si el primero con existencias no alcanza, la etapa falla en lugar
// de repartir la resta entre varios lotes.
func (s *Saga) descontarInventario(ctx context.Context, idProducto int64, cantidad int) error {
	lotes, err := s.inventario.PorProducto(ctx, idProducto)
	if err != nil {
		return fmt.Errorf("releer lotes del producto %d: %w", idProducto, err)
	}

	var elegido *entity.InventarioDetalle
	for i := range lotes {
		if lotes[i].Cantidad.Int() > 0 {
			elegido = &lotes[i]
			break
		}
	}
	if elegido == nil {
		return fmt.Errorf("producto %d sin lotes con existencias (agotado entre verificación y descuento)", idProducto)
	}
	if elegido.Cantidad.Int() < cantidad {
		return fmt.Errorf("lote %d con %d existencias, insuficiente para descontar %d",
			elegido.ID, elegido.Cantidad.Int(), cantidad)
	}

	restante := elegido.Cantidad.Int() - cantidad
	elegido.Cantidad = entity.CantidadTolerante(restante)
	elegido.Disponible = restante > 0

	if err := s.inventario.Actualizar(ctx, *elegido); err != nil {
		return fmt.Errorf("aplicar descuento en lote %d: %w", elegido.ID, err)
	}
	return nil
}

// ── candado de vuelo único ────────────────────────────────────────────────────

func (s *Saga) adquirir(clave string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ocupado := s.enVuelo[clave]; ocupado {
		return false
	}
	s.enVuelo[clave] = struct{}{}
	return true
}

func (s *Saga) liberar(clave string) {
	s.mu.Lock()
	delete(s.enVuelo, clave)
	s.mu.Unlock()
}
