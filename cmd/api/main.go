package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-admin/internal/application/catalogo"
	"github.com/jhoicas/pos-admin/internal/application/session"
	appventa "github.com/jhoicas/pos-admin/internal/application/venta"
	"github.com/jhoicas/pos-admin/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/pos-admin/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/pos-admin/internal/interfaces/http"
	"github.com/jhoicas/pos-admin/pkg/config"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	backendCfg := backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}

	// Sesión: los tokens van por un cliente de auth propio, sin pasar por el
	// cliente autenticado, para que el refresh nunca se dispare a sí mismo.
	authClient := backend.NewAuthClient(backendCfg)
	tokens := session.NewTokens(authClient, log)

	client := backend.New(backendCfg, tokens, log)
	ventaClient := backend.NewVentaClient(client)
	detalleClient := backend.NewDetalleClient(client)
	inventarioClient := backend.NewInventarioClient(client)
	tarjetaClient := backend.NewTarjetaClient(client)
	catalogoClient := backend.NewCatalogoClient(client)
	workerClient := backend.NewWorkerClient(client)

	perfil := session.NewProvider(workerClient, cfg.Session.Email, cfg.Session.CacheTTL, log)
	cache := catalogo.NewCache(catalogoClient, log)

	saga := appventa.NewSaga(
		ventaClient,
		detalleClient,
		inventarioClient,
		appventa.NewVerificadorStock(inventarioClient, log),
		appventa.NewResolutorTarjeta(tarjetaClient, log),
		perfil,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sesion:   tokens,
		Perfil:   perfil,
		Saga:     saga,
		Ventas:   ventaClient,
		Detalles: detalleClient,
		Tarjetas: tarjetaClient,
		Catalogo: cache,
		Recibo:   infrapdf.NewGeneradorRecibo(),
		Negocio:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
