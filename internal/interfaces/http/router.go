package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-admin/internal/application/catalogo"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sesion   SesionUC
	Perfil   PerfilUC
	Saga     RegistradorVentas
	Ventas   ListadorVentas
	Detalles DetallesVenta
	Tarjetas TarjetasUC
	Catalogo *catalogo.Cache
	Recibo   ReciboPDF
	Negocio  string
}

// Router registra las rutas del gateway.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.Sesion, deps.Perfil)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/perfil", authHandler.Perfil)

	// Ventas
	ventaHandler := NewVentaHandler(deps.Saga, deps.Ventas, deps.Detalles, deps.Perfil, deps.Recibo, deps.Catalogo, deps.Negocio)
	ventas := api.Group("/ventas")
	ventas.Get("/", ventaHandler.Listar)
	ventas.Post("/", ventaHandler.Registrar)
	ventas.Put("/:id", ventaHandler.Modificar)
	ventas.Post("/:id/reparar", ventaHandler.Reparar)
	ventas.Get("/:id/recibo", ventaHandler.Recibo)

	// Tarjetas
	tarjetaHandler := NewTarjetaHandler(deps.Tarjetas)
	tarjetas := api.Group("/tarjetas")
	tarjetas.Get("/", tarjetaHandler.Listar)
	tarjetas.Post("/", tarjetaHandler.Crear)

	// Catálogo (clientes y productos de referencia)
	catalogoHandler := NewCatalogoHandler(deps.Catalogo)
	api.Get("/clientes", catalogoHandler.Clientes)
	api.Get("/productos", catalogoHandler.Productos)
}
