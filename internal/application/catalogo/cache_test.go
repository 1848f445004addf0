package catalogo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

type catalogoFalso struct {
	clientes     []entity.Cliente
	productos    []entity.Producto
	errClientes  error
	errProductos error
}

func (f *catalogoFalso) Clientes(_ context.Context) ([]entity.Cliente, error) {
	return f.clientes, f.errClientes
}

func (f *catalogoFalso) Productos(_ context.Context) ([]entity.Producto, error) {
	return f.productos, f.errProductos
}

func loggerPrueba() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func cliente(id int64, nombre, apellido string) entity.Cliente {
	return entity.Cliente{ID: id, Persona: entity.Persona{Nombre: nombre, PrimerApellido: apellido}}
}

func TestCacheCargar(t *testing.T) {
	api := &catalogoFalso{
		clientes:  []entity.Cliente{cliente(1, "Ana", "Pérez")},
		productos: []entity.Producto{{ID: 7, Nombre: "Teclado"}},
	}
	c := NewCache(api, loggerPrueba())

	assert.False(t, c.Cargado())
	c.Cargar(context.Background())
	assert.True(t, c.Cargado())
	assert.Len(t, c.Clientes(), 1)
	assert.Len(t, c.Productos(), 1)
}

func TestCacheCargarDegradaAListaVacia(t *testing.T) {
	api := &catalogoFalso{
		errClientes: errors.New("503"),
		productos:   []entity.Producto{{ID: 7, Nombre: "Teclado"}},
	}
	c := NewCache(api, loggerPrueba())

	c.Cargar(context.Background())
	assert.True(t, c.Cargado(), "un fallo parcial no bloquea el formulario")
	assert.Empty(t, c.Clientes(), "la lista que falló queda vacía")
	assert.Len(t, c.Productos(), 1, "la lista que cargó se conserva")
}

func TestFiltrarClientesIgnoraTildesYMayusculas(t *testing.T) {
	api := &catalogoFalso{clientes: []entity.Cliente{
		cliente(1, "Ana", "Pérez"),
		cliente(2, "José", "Ramírez"),
		cliente(3, "Luz", "Gómez"),
	}}
	c := NewCache(api, loggerPrueba())
	c.Cargar(context.Background())

	res := c.FiltrarClientes("perez")
	require.Len(t, res, 1)
	assert.Equal(t, int64(1), res[0].ID)

	res = c.FiltrarClientes("RAMÍREZ")
	require.Len(t, res, 1)
	assert.Equal(t, int64(2), res[0].ID)

	assert.Empty(t, c.FiltrarClientes("martinez"))
}

func TestFiltrarProductosTerminoVacioDevuelveInicio(t *testing.T) {
	api := &catalogoFalso{}
	for i := 1; i <= 30; i++ {
		api.productos = append(api.productos, entity.Producto{
			ID:     int64(i),
			Nombre: fmt.Sprintf("Producto %02d", i),
		})
	}
	c := NewCache(api, loggerPrueba())
	c.Cargar(context.Background())

	res := c.FiltrarProductos("")
	require.Len(t, res, MaxResultados, "el buscador corta en %d sugerencias", MaxResultados)
	assert.Equal(t, int64(1), res[0].ID)
}

func TestFiltrarProductosUsaModeloComoEtiqueta(t *testing.T) {
	api := &catalogoFalso{productos: []entity.Producto{
		{ID: 1, Modelo: "XR-500"},
		{ID: 2, Nombre: "Monitor", Modelo: "ZZ-1"},
	}}
	c := NewCache(api, loggerPrueba())
	c.Cargar(context.Background())

	res := c.FiltrarProductos("xr-5")
	require.Len(t, res, 1)
	assert.Equal(t, int64(1), res[0].ID, "sin nombre, el modelo es la etiqueta del buscador")
}
