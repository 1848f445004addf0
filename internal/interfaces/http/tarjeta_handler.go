package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// TarjetasUC lecturas y altas del recurso de tarjetas.
type TarjetasUC interface {
	Listar(ctx context.Context) ([]entity.Tarjeta, error)
	Crear(ctx context.Context, t entity.Tarjeta) (entity.Tarjeta, error)
}

// TarjetaHandler maneja el catálogo de tarjetas de pago.
type TarjetaHandler struct {
	tarjetas TarjetasUC
}

// NewTarjetaHandler construye el handler.
func NewTarjetaHandler(tarjetas TarjetasUC) *TarjetaHandler {
	return &TarjetaHandler{tarjetas: tarjetas}
}

// Listar devuelve las tarjetas registradas.
// GET /api/tarjetas
func (h *TarjetaHandler) Listar(c *fiber.Ctx) error {
	tarjetas, err := h.tarjetas.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"tarjetas": tarjetas})
}

// Crear registra una tarjeta nueva.
// POST /api/tarjetas
func (h *TarjetaHandler) Crear(c *fiber.Ctx) error {
	var in TarjetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	creada, err := h.tarjetas.Crear(c.Context(), entity.Tarjeta{
		Nombre: in.Nombre,
		Numero: in.Numero,
		Tipo:   in.Tipo,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(creada)
}
