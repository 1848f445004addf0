package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-admin/internal/application/catalogo"
	appventa "github.com/jhoicas/pos-admin/internal/application/venta"
	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-admin/internal/interfaces/http"
	"github.com/jhoicas/pos-admin/internal/infrastructure/backend"
	"github.com/jhoicas/pos-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type sesionDoble struct {
	errLogin error
	logins   int
	limpiada bool
}

func (s *sesionDoble) Login(_ context.Context, _, _ string) error {
	s.logins++
	return s.errLogin
}
func (s *sesionDoble) Limpiar()          { s.limpiada = true }
func (s *sesionDoble) Autenticado() bool { return s.logins > 0 }

type perfilDoble struct {
	perfil     entity.Perfil
	err        error
	invalidado bool
}

func (p *perfilDoble) Perfil(_ context.Context, _ bool) (entity.Perfil, error) {
	return p.perfil, p.err
}
func (p *perfilDoble) Invalidar() { p.invalidado = true }

type sagaDoble struct {
	resultado  appventa.Resultado
	err        error
	errReparar error

	contextos  []appventa.ContextoVenta
	reparadas  []int64
}

func (s *sagaDoble) Registrar(_ context.Context, cx appventa.ContextoVenta) (appventa.Resultado, error) {
	s.contextos = append(s.contextos, cx)
	return s.resultado, s.err
}

func (s *sagaDoble) RepararInventario(_ context.Context, idVenta int64) error {
	s.reparadas = append(s.reparadas, idVenta)
	return s.errReparar
}

type ventasDoble struct {
	ventas []entity.Venta
	err    error
}

func (v *ventasDoble) PorSucursal(_ context.Context, _ int64) ([]entity.Venta, error) {
	return v.ventas, v.err
}

type detallesDoble struct {
	detalles []entity.Detalle
}

func (d *detallesDoble) PorVenta(_ context.Context, _ int64) ([]entity.Detalle, error) {
	return d.detalles, nil
}

type tarjetasDoble struct {
	tarjetas []entity.Tarjeta
	creadas  []entity.Tarjeta
}

func (f *tarjetasDoble) Listar(_ context.Context) ([]entity.Tarjeta, error) {
	return f.tarjetas, nil
}

func (f *tarjetasDoble) Crear(_ context.Context, t entity.Tarjeta) (entity.Tarjeta, error) {
	t.ID = int64(len(f.creadas) + 1)
	f.creadas = append(f.creadas, t)
	return t, nil
}

type catalogoDoble struct {
	clientes  []entity.Cliente
	productos []entity.Producto
}

func (f *catalogoDoble) Clientes(_ context.Context) ([]entity.Cliente, error) {
	return f.clientes, nil
}

func (f *catalogoDoble) Productos(_ context.Context) ([]entity.Producto, error) {
	return f.productos, nil
}

type reciboDoble struct{}

func (reciboDoble) Generar(_ context.Context, _ pdf.DatosRecibo) ([]byte, error) {
	return []byte("%PDF-falso"), nil
}

type entorno struct {
	app      *fiber.App
	sesion   *sesionDoble
	perfil   *perfilDoble
	saga     *sagaDoble
	ventas   *ventasDoble
	detalles *detallesDoble
	tarjetas *tarjetasDoble
}

func nuevoEntorno() *entorno {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	e := &entorno{
		sesion: &sesionDoble{},
		perfil: &perfilDoble{perfil: entity.Perfil{
			ID: 3, IDSucursal: 2, Email: "cajero@tienda.co",
			Persona: entity.Persona{Nombre: "Ana", PrimerApellido: "Pérez"},
		}},
		saga:     &sagaDoble{},
		ventas:   &ventasDoble{},
		detalles: &detallesDoble{},
		tarjetas: &tarjetasDoble{},
	}

	cache := catalogo.NewCache(&catalogoDoble{
		clientes: []entity.Cliente{
			{ID: 1, Persona: entity.Persona{Nombre: "José", PrimerApellido: "Ramírez"}},
			{ID: 2, Persona: entity.Persona{Nombre: "Luz", PrimerApellido: "Gómez"}},
		},
		productos: []entity.Producto{{ID: 7, Nombre: "Teclado"}},
	}, log)

	e.app = fiber.New()
	apphttp.Router(e.app, apphttp.RouterDeps{
		Sesion:   e.sesion,
		Perfil:   e.perfil,
		Saga:     e.saga,
		Ventas:   e.ventas,
		Detalles: e.detalles,
		Tarjetas: e.tarjetas,
		Catalogo: cache,
		Recibo:   reciboDoble{},
		Negocio:  "Tienda de prueba",
	})
	return e
}

func peticionJSON(t *testing.T, app *fiber.App, method, target string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodificar(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func formularioValido() map[string]any {
	return map[string]any{
		"idCliente":      1,
		"idProducto":     7,
		"cantidad":       3,
		"precioUnitario": 20.0,
		"descuento":      10.0,
		"impuesto":       16.0,
		"metodoPago":     "efectivo",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarVentaDevuelve201(t *testing.T) {
	e := nuevoEntorno()
	e.saga.resultado = appventa.Resultado{
		Venta:   entity.Venta{ID: 100, Total: 62.64},
		Detalle: entity.Detalle{ID: 500, IDVenta: 100},
	}

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", formularioValido())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out apphttp.VentaResponse
	decodificar(t, resp, &out)
	assert.Equal(t, int64(100), out.Venta.ID)
	assert.False(t, out.InventarioPendiente)

	require.Len(t, e.saga.contextos, 1)
	cx := e.saga.contextos[0]
	assert.Equal(t, int64(1), cx.IDCliente)
	assert.Equal(t, 3, cx.Cantidad)
	assert.False(t, cx.Modificando)
	assert.Equal(t, "20", cx.PrecioUnitario.String())
}

func TestRegistrarVentaInventarioPendiente(t *testing.T) {
	e := nuevoEntorno()
	e.saga.resultado = appventa.Resultado{
		Venta:               entity.Venta{ID: 100},
		InventarioPendiente: true,
		Advertencia:         appventa.AdvertenciaInventario,
	}

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", formularioValido())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode,
		"inventario pendiente sigue siendo una venta registrada")

	var out apphttp.VentaResponse
	decodificar(t, resp, &out)
	assert.True(t, out.InventarioPendiente)
	assert.Equal(t, appventa.AdvertenciaInventario, out.Advertencia)
}

func TestRegistrarVentaValidaDTO(t *testing.T) {
	e := nuevoEntorno()

	cuerpo := formularioValido()
	cuerpo["cantidad"] = 0

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", cuerpo)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, e.saga.contextos, "un DTO inválido no llega a la saga")
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	e := nuevoEntorno()
	e.saga.err = &appventa.ErrorEtapa{
		Etapa: appventa.EtapaStock,
		Err:   &appventa.ErrStockInsuficiente{Disponible: 2, Solicitado: 3},
	}

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", formularioValido())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out apphttp.ErrorResponse
	decodificar(t, resp, &out)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, string(appventa.EtapaStock), out.Etapa)
	assert.Contains(t, out.Message, "disponibles 2")
}

func TestRegistrarVentaSesionExpirada(t *testing.T) {
	e := nuevoEntorno()
	e.saga.err = &appventa.ErrorEtapa{Etapa: appventa.EtapaSesion, Err: domain.ErrSessionExpired}

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", formularioValido())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var out apphttp.ErrorResponse
	decodificar(t, resp, &out)
	assert.Equal(t, "SESSION", out.Code)
}

func TestRegistrarVentaEnVuelo(t *testing.T) {
	e := nuevoEntorno()
	e.saga.err = domain.ErrSaleInFlight

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/", formularioValido())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out apphttp.ErrorResponse
	decodificar(t, resp, &out)
	assert.Equal(t, "SALE_IN_FLIGHT", out.Code)
}

func TestModificarVentaActivaElModo(t *testing.T) {
	e := nuevoEntorno()
	e.saga.resultado = appventa.Resultado{Venta: entity.Venta{ID: 100}}

	resp := peticionJSON(t, e.app, http.MethodPut, "/api/ventas/100?idVentaDetalle=500", formularioValido())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, e.saga.contextos, 1)
	cx := e.saga.contextos[0]
	assert.True(t, cx.Modificando)
	assert.Equal(t, int64(100), cx.IDVenta)
	assert.Equal(t, int64(500), cx.IDDetalle)
}

func TestModificarVentaExigeIDDetalle(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodPut, "/api/ventas/100", formularioValido())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, e.saga.contextos)
}

func TestListarVentasUsaLaSucursalDelPerfil(t *testing.T) {
	e := nuevoEntorno()
	e.ventas.ventas = []entity.Venta{{ID: 100, IDSucursal: 2}}

	resp := peticionJSON(t, e.app, http.MethodGet, "/api/ventas/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Ventas []entity.Venta `json:"ventas"`
	}
	decodificar(t, resp, &out)
	require.Len(t, out.Ventas, 1)
	assert.Equal(t, int64(100), out.Ventas[0].ID)
}

func TestRepararInventario(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/ventas/100/reparar", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []int64{100}, e.saga.reparadas)
}

func TestReciboDevuelvePDF(t *testing.T) {
	e := nuevoEntorno()
	e.ventas.ventas = []entity.Venta{{ID: 100, IDSucursal: 2, IDCliente: 1, Total: 62.64}}
	e.detalles.detalles = []entity.Detalle{{ID: 500, IDVenta: 100, IDProducto: 7, Cantidad: 3}}

	resp := peticionJSON(t, e.app, http.MethodGet, "/api/ventas/100/recibo", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestReciboVentaInexistente(t *testing.T) {
	e := nuevoEntorno()
	e.ventas.ventas = []entity.Venta{{ID: 200, IDSucursal: 2}}

	resp := peticionJSON(t, e.app, http.MethodGet, "/api/ventas/100/recibo", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginDevuelvePerfil(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "cajero@tienda.co", "password": "secreto",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out entity.Perfil
	decodificar(t, resp, &out)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, 1, e.sesion.logins)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	e := nuevoEntorno()
	e.sesion.errLogin = &backend.APIError{StatusCode: http.StatusUnauthorized, Message: "bad credentials"}

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "cajero@tienda.co", "password": "mala",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var out apphttp.ErrorResponse
	decodificar(t, resp, &out)
	assert.Equal(t, "BAD_CREDENTIALS", out.Code)
}

func TestLoginValidaEmail(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "no-es-un-email", "password": "secreto",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, e.sesion.logins)
}

func TestLogoutDescartaSesionYPerfil(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, e.sesion.limpiada)
	assert.True(t, e.perfil.invalidado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarjetas y catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearTarjetaValidaDTO(t *testing.T) {
	e := nuevoEntorno()

	casos := []map[string]string{
		{"nombre": "Vi", "numero": "4242", "tipo": "CREDITO"},
		{"nombre": "Visa", "numero": "42425", "tipo": "CREDITO"},
		{"nombre": "Visa", "numero": "4242", "tipo": "AMEX"},
	}
	for i, cuerpo := range casos {
		resp := peticionJSON(t, e.app, http.MethodPost, "/api/tarjetas/", cuerpo)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "caso %d", i)
	}
	assert.Empty(t, e.tarjetas.creadas)

	resp := peticionJSON(t, e.app, http.MethodPost, "/api/tarjetas/", map[string]string{
		"nombre": "Visa Bancolombia", "numero": "4242", "tipo": "CREDITO",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, e.tarjetas.creadas, 1)
}

func TestCatalogoFiltraClientes(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodGet, "/api/clientes?buscar=ramirez", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Clientes []entity.Cliente `json:"clientes"`
	}
	decodificar(t, resp, &out)
	require.Len(t, out.Clientes, 1, "la búsqueda ignora tildes")
	assert.Equal(t, int64(1), out.Clientes[0].ID)
}

func TestCatalogoProductos(t *testing.T) {
	e := nuevoEntorno()

	resp := peticionJSON(t, e.app, http.MethodGet, fmt.Sprintf("/api/productos?buscar=%s", "tecla"), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Productos []entity.Producto `json:"productos"`
	}
	decodificar(t, resp, &out)
	require.Len(t, out.Productos, 1)
	assert.Equal(t, int64(7), out.Productos[0].ID)
}
