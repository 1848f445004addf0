package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-admin/internal/application/catalogo"
	"github.com/jhoicas/pos-admin/internal/application/venta"
	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/internal/infrastructure/backend"
	"github.com/jhoicas/pos-admin/internal/infrastructure/pdf"
)

// RegistradorVentas orquestación de la transacción de venta.
type RegistradorVentas interface {
	Registrar(ctx context.Context, cx venta.ContextoVenta) (venta.Resultado, error)
	RepararInventario(ctx context.Context, idVenta int64) error
}

// ListadorVentas lectura de ventas por sucursal.
type ListadorVentas interface {
	PorSucursal(ctx context.Context, idSucursal int64) ([]entity.Venta, error)
}

// DetallesVenta lectura de las líneas de una venta.
type DetallesVenta interface {
	PorVenta(ctx context.Context, idVenta int64) ([]entity.Detalle, error)
}

// ReciboPDF generación del recibo imprimible.
type ReciboPDF interface {
	Generar(ctx context.Context, datos pdf.DatosRecibo) ([]byte, error)
}

// VentaHandler maneja el registro, la modificación y la consulta de ventas.
type VentaHandler struct {
	saga     RegistradorVentas
	ventas   ListadorVentas
	detalles DetallesVenta
	perfil   PerfilUC
	recibo   ReciboPDF
	catalogo *catalogo.Cache
	negocio  string
}

// NewVentaHandler construye el handler.
func NewVentaHandler(saga RegistradorVentas, ventas ListadorVentas, detalles DetallesVenta, perfil PerfilUC, recibo ReciboPDF, cat *catalogo.Cache, negocio string) *VentaHandler {
	return &VentaHandler{saga: saga, ventas: ventas, detalles: detalles, perfil: perfil, recibo: recibo, catalogo: cat, negocio: negocio}
}

// Registrar ejecuta la saga de venta completa.
// POST /api/ventas
func (h *VentaHandler) Registrar(c *fiber.Ctx) error {
	var in RegistrarVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	res, err := h.saga.Registrar(c.Context(), in.contexto())
	if err != nil {
		return respuestaErrorSaga(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(VentaResponse{
		Venta:               res.Venta,
		Detalle:             res.Detalle,
		InventarioPendiente: res.InventarioPendiente,
		Advertencia:         res.Advertencia,
	})
}

// Modificar re-ejecuta la saga en modo modificación sobre una venta existente.
// PUT /api/ventas/:id
func (h *VentaHandler) Modificar(c *fiber.Ctx) error {
	idVenta, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || idVenta <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id de venta inválido"})
	}
	idDetalle, err := strconv.ParseInt(c.Query("idVentaDetalle"), 10, 64)
	if err != nil || idDetalle <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "idVentaDetalle requerido"})
	}

	var in RegistrarVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	cx := in.contexto()
	cx.Modificando = true
	cx.IDVenta = idVenta
	cx.IDDetalle = idDetalle

	res, err := h.saga.Registrar(c.Context(), cx)
	if err != nil {
		return respuestaErrorSaga(c, err)
	}
	return c.JSON(VentaResponse{Venta: res.Venta, Detalle: res.Detalle})
}

// Listar devuelve las ventas de la sucursal del trabajador autenticado.
// GET /api/ventas
func (h *VentaHandler) Listar(c *fiber.Ctx) error {
	perfil, err := h.perfil.Perfil(c.Context(), false)
	if err != nil {
		return respuestaErrorSaga(c, err)
	}
	ventas, err := h.ventas.PorSucursal(c.Context(), perfil.IDSucursal)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"ventas": ventas})
}

// Reparar reintenta el descuento de inventario de una venta pendiente.
// POST /api/ventas/:id/reparar
func (h *VentaHandler) Reparar(c *fiber.Ctx) error {
	idVenta, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || idVenta <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id de venta inválido"})
	}
	if err := h.saga.RepararInventario(c.Context(), idVenta); err != nil {
		return respuestaErrorSaga(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "idVenta": idVenta})
}

// Recibo genera el PDF del recibo de una venta registrada.
// GET /api/ventas/:id/recibo
func (h *VentaHandler) Recibo(c *fiber.Ctx) error {
	idVenta, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || idVenta <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id de venta inválido"})
	}

	perfil, err := h.perfil.Perfil(c.Context(), false)
	if err != nil {
		return respuestaErrorSaga(c, err)
	}
	ventas, err := h.ventas.PorSucursal(c.Context(), perfil.IDSucursal)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	var encontrada *entity.Venta
	for i := range ventas {
		if ventas[i].ID == idVenta {
			encontrada = &ventas[i]
			break
		}
	}
	if encontrada == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada en la sucursal"})
	}

	detalles, err := h.detalles.PorVenta(c.Context(), idVenta)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	if len(detalles) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "la venta no tiene líneas"})
	}

	bytes, err := h.recibo.Generar(c.Context(), pdf.DatosRecibo{
		Venta:          *encontrada,
		Detalle:        detalles[0],
		NombreCliente:  h.nombreCliente(encontrada.IDCliente),
		NombreProducto: h.nombreProducto(detalles[0].IDProducto),
		NombreCajero:   perfil.Nombre(),
		Negocio:        h.negocio,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "PDF", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(bytes)
}

// nombreCliente busca la etiqueta del cliente en el catálogo cacheado;
// cadena vacía si el catálogo no lo tiene (el recibo muestra un guion).
func (h *VentaHandler) nombreCliente(id int64) string {
	if h.catalogo == nil {
		return ""
	}
	for _, cl := range h.catalogo.Clientes() {
		if cl.ID == id {
			return cl.Etiqueta()
		}
	}
	return ""
}

func (h *VentaHandler) nombreProducto(id int64) string {
	if h.catalogo == nil {
		return ""
	}
	for _, p := range h.catalogo.Productos() {
		if p.ID == id {
			return p.Etiqueta()
		}
	}
	return ""
}

// respuestaErrorSaga traduce un error de la saga (etiquetado por etapa) al
// código HTTP y cuerpo del gateway.
func respuestaErrorSaga(c *fiber.Ctx, err error) error {
	etapa := string(venta.EtapaDe(err))

	var campo *venta.ErrorCampoTarjeta
	switch {
	case errors.Is(err, domain.ErrSaleInFlight):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "SALE_IN_FLIGHT", Message: "ya hay una venta en curso para este formulario"})
	case errors.Is(err, domain.ErrInsufficientStock):
		var insuf *venta.ErrStockInsuficiente
		msg := "stock insuficiente"
		if errors.As(err, &insuf) {
			msg = insuf.Error()
		}
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: msg, Etapa: etapa})
	case errors.As(err, &campo):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: campo.Error(), Etapa: etapa})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error(), Etapa: etapa})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "SESSION", Message: "inicia sesión de nuevo", Etapa: etapa})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: err.Error(), Etapa: etapa})
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: apiErr.Message, Etapa: etapa})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error(), Etapa: etapa})
}
