package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// WorkerClient lectura del perfil del trabajador (/worker/getByEmail).
// Viaja por el cliente base, así que hereda la misma política de
// refresh-and-retry que el resto de recursos.
type WorkerClient struct {
	c *Client
}

// NewWorkerClient construye el cliente del recurso.
func NewWorkerClient(c *Client) *WorkerClient {
	return &WorkerClient{c: c}
}

// PerfilPorEmail obtiene el perfil del trabajador autenticado.
func (wc *WorkerClient) PerfilPorEmail(ctx context.Context, email string) (entity.Perfil, error) {
	var perfil entity.Perfil
	path := "/worker/getByEmail?email=" + url.QueryEscape(email)
	if err := wc.c.get(ctx, path, &perfil); err != nil {
		return entity.Perfil{}, err
	}
	if perfil.ID == 0 {
		return entity.Perfil{}, fmt.Errorf("backend: respuesta de perfil inválida para %s", email)
	}
	return perfil, nil
}
