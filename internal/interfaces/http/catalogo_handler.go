package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-admin/internal/application/catalogo"
)

// CatalogoHandler expone las listas de referencia del formulario con su
// buscador. Las listas se cargan en memoria la primera vez que se piden.
type CatalogoHandler struct {
	cache *catalogo.Cache
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(cache *catalogo.Cache) *CatalogoHandler {
	return &CatalogoHandler{cache: cache}
}

// Clientes devuelve clientes filtrados por ?buscar=; ?recargar=true fuerza
// releer del backend.
// GET /api/clientes
func (h *CatalogoHandler) Clientes(c *fiber.Ctx) error {
	if !h.cache.Cargado() || c.QueryBool("recargar") {
		h.cache.Cargar(c.Context())
	}
	return c.JSON(fiber.Map{"clientes": h.cache.FiltrarClientes(c.Query("buscar"))})
}

// Productos devuelve productos filtrados por ?buscar=.
// GET /api/productos
func (h *CatalogoHandler) Productos(c *fiber.Ctx) error {
	if !h.cache.Cargado() || c.QueryBool("recargar") {
		h.cache.Cargar(c.Context())
	}
	return c.JSON(fiber.Map{"productos": h.cache.FiltrarProductos(c.Query("buscar"))})
}
