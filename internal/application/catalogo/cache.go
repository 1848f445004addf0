// Package catalogo mantiene en memoria las listas de referencia del formulario
// de venta (clientes y productos) y el filtrado del buscador. Un fallo al
// cargar degrada a lista vacía en lugar de bloquear el formulario.
package catalogo

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// MaxResultados tope de sugerencias que devuelve el buscador.
const MaxResultados = 20

// CatalogoAPI lecturas de las listas de referencia del backend.
type CatalogoAPI interface {
	Clientes(ctx context.Context) ([]entity.Cliente, error)
	Productos(ctx context.Context) ([]entity.Producto, error)
}

// Cache listas de clientes y productos cargadas una vez por sesión y
// refrescables bajo demanda.
type Cache struct {
	api CatalogoAPI
	log *logger.Logger

	mu        sync.RWMutex
	clientes  []entity.Cliente
	productos []entity.Producto
	cargado   bool
}

// NewCache construye la caché de catálogo.
func NewCache(api CatalogoAPI, log *logger.Logger) *Cache {
	return &Cache{api: api, log: log.Componente("catalogo")}
}

// Cargar obtiene ambas listas del backend. Un fallo en cualquiera de las dos
// deja esa lista vacía y se registra como advertencia: el formulario sigue
// operable aunque sin sugerencias.
func (c *Cache) Cargar(ctx context.Context) {
	clientes, err := c.api.Clientes(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo cargar la lista de clientes")
		clientes = nil
	}
	productos, err := c.api.Productos(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo cargar la lista de productos")
		productos = nil
	}

	c.mu.Lock()
	c.clientes = clientes
	c.productos = productos
	c.cargado = true
	c.mu.Unlock()

	c.log.Info().
		Int("clientes", len(clientes)).
		Int("productos", len(productos)).
		Msg("catálogo cargado")
}

// Clientes devuelve la lista cargada, vacía si aún no se cargó.
func (c *Cache) Clientes() []entity.Cliente {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientes
}

// Productos devuelve la lista cargada, vacía si aún no se cargó.
func (c *Cache) Productos() []entity.Producto {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.productos
}

// Cargado indica si Cargar ya corrió al menos una vez.
func (c *Cache) Cargado() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cargado
}

// FiltrarClientes devuelve hasta MaxResultados clientes cuyo nombre contiene
// el término, sin distinguir mayúsculas ni tildes. Término vacío devuelve el
// inicio de la lista.
func (c *Cache) FiltrarClientes(termino string) []entity.Cliente {
	c.mu.RLock()
	defer c.mu.RUnlock()

	necesita := normalizar(termino)
	out := make([]entity.Cliente, 0, MaxResultados)
	for _, cl := range c.clientes {
		if necesita == "" || strings.Contains(normalizar(cl.Etiqueta()), necesita) {
			out = append(out, cl)
			if len(out) == MaxResultados {
				break
			}
		}
	}
	return out
}

// FiltrarProductos igual que FiltrarClientes, sobre la etiqueta del producto.
func (c *Cache) FiltrarProductos(termino string) []entity.Producto {
	c.mu.RLock()
	defer c.mu.RUnlock()

	necesita := normalizar(termino)
	out := make([]entity.Producto, 0, MaxResultados)
	for _, p := range c.productos {
		if necesita == "" || strings.Contains(normalizar(p.Etiqueta()), necesita) {
			out = append(out, p)
			if len(out) == MaxResultados {
				break
			}
		}
	}
	return out
}

// quitaTildes descompone (NFD) y elimina las marcas diacríticas, de modo que
// "Pérez" y "Perez" comparen igual.
var quitaTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizar(s string) string {
	plano, _, err := transform.String(quitaTildes, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(strings.TrimSpace(plano))
}
