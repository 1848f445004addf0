package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/internal/infrastructure/backend"
)

// SesionUC ciclo de vida de los tokens de la sesión del trabajador.
type SesionUC interface {
	Login(ctx context.Context, email, password string) error
	Limpiar()
	Autenticado() bool
}

// PerfilUC caché del perfil del trabajador autenticado.
type PerfilUC interface {
	Perfil(ctx context.Context, forzar bool) (entity.Perfil, error)
	Invalidar()
}

// AuthHandler maneja login y logout contra el backend remoto.
type AuthHandler struct {
	sesion SesionUC
	perfil PerfilUC
}

// NewAuthHandler construye el handler.
func NewAuthHandler(sesion SesionUC, perfil PerfilUC) *AuthHandler {
	return &AuthHandler{sesion: sesion, perfil: perfil}
}

// Login autentica al trabajador y precarga su perfil.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	if err := h.sesion.Login(c.Context(), in.Email, in.Password); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == fiber.StatusUnauthorized || apiErr.StatusCode == fiber.StatusForbidden) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "BAD_CREDENTIALS", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}

	// Precarga con forzado: el perfil queda fresco para las ventas que siguen.
	perfil, err := h.perfil.Perfil(c.Context(), true)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "PROFILE", Message: "sesión iniciada pero el perfil no se pudo cargar"})
	}

	return c.JSON(perfil)
}

// Logout descarta tokens y perfil cacheado.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sesion.Limpiar()
	h.perfil.Invalidar()
	return c.JSON(fiber.Map{"status": "ok"})
}

// Perfil devuelve el perfil del trabajador, forzando refetch con ?forzar=true.
// GET /api/auth/perfil
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	perfil, err := h.perfil.Perfil(c.Context(), c.QueryBool("forzar"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSessionExpired) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Code: "SESSION", Message: "inicia sesión de nuevo"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(perfil)
}
