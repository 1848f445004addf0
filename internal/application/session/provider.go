package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// PerfilFetcher obtiene el perfil del trabajador desde el backend.
// Lo implementa backend.WorkerClient.
type PerfilFetcher interface {
	PerfilPorEmail(ctx context.Context, email string) (entity.Perfil, error)
}

// Provider cache de perfil con TTL y fallback a valor viejo.
//
// Comportamiento del contrato:
//   - dentro de la ventana TTL devuelve el perfil cacheado sin red;
//   - expirado (o con forzar=true) lo vuelve a pedir;
//   - si la petición falla y existe un valor cacheado, aunque esté vencido,
//     se devuelve ese valor viejo con un warning en lugar del error.
type Provider struct {
	fetcher PerfilFetcher
	email   string
	ttl     time.Duration
	log     *logger.Logger

	mu         sync.Mutex // serializa el fetch: un solo refresh en vuelo
	cacheado   *entity.Perfil
	obtenidoEn time.Time
	ahora      func() time.Time
}

// NewProvider construye el cache de perfil. ttl<=0 usa 1 hora, la ventana del
// cliente original.
func NewProvider(fetcher PerfilFetcher, email string, ttl time.Duration, log *logger.Logger) *Provider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Provider{
		fetcher: fetcher,
		email:   email,
		ttl:     ttl,
		log:     log.Componente("session"),
		ahora:   time.Now,
	}
}

// Perfil devuelve el perfil del trabajador, cacheado si está fresco.
func (p *Provider) Perfil(ctx context.Context, forzar bool) (entity.Perfil, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !forzar && p.cacheado != nil && p.ahora().Sub(p.obtenidoEn) <= p.ttl {
		return *p.cacheado, nil
	}

	perfil, err := p.fetcher.PerfilPorEmail(ctx, p.email)
	if err != nil {
		// Fallback: mejor un perfil viejo que dejar la venta sin identidad.
		if p.cacheado != nil {
			p.log.Warn().Err(err).Msg("fallo al refrescar perfil, usando valor cacheado viejo")
			return *p.cacheado, nil
		}
		return entity.Perfil{}, err
	}

	p.cacheado = &perfil
	p.obtenidoEn = p.ahora()
	p.log.Debug().Int64("idTrabajador", perfil.ID).Int64("idSucursal", perfil.IDSucursal).
		Msg("perfil actualizado")
	return perfil, nil
}

// Invalidar descarta el perfil cacheado (logout o cambio de usuario).
func (p *Provider) Invalidar() {
	p.mu.Lock()
	p.cacheado = nil
	p.obtenidoEn = time.Time{}
	p.mu.Unlock()
}
