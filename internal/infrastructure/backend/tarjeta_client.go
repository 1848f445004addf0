package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
)

// TarjetaClient operaciones sobre tarjetas de pago (/tarjeta).
type TarjetaClient struct {
	c *Client
}

// NewTarjetaClient construye el cliente del recurso.
func NewTarjetaClient(c *Client) *TarjetaClient {
	return &TarjetaClient{c: c}
}

// Listar devuelve las tarjetas registradas. Las tarjetas creadas en línea no
// se cachean: volver a seleccionarlas implica volver a listar.
func (tc *TarjetaClient) Listar(ctx context.Context) ([]entity.Tarjeta, error) {
	var tarjetas []entity.Tarjeta
	if err := tc.c.get(ctx, "/tarjeta", &tarjetas); err != nil {
		return nil, err
	}
	return tarjetas, nil
}

// Crear registra una tarjeta nueva y devuelve el id asignado.
func (tc *TarjetaClient) Crear(ctx context.Context, t entity.Tarjeta) (entity.Tarjeta, error) {
	var creada entity.Tarjeta
	if err := tc.c.post(ctx, "/tarjeta", t, &creada); err != nil {
		return entity.Tarjeta{}, err
	}
	if creada.ID == 0 {
		return entity.Tarjeta{}, fmt.Errorf("backend: la respuesta de /tarjeta no trae idTarjeta")
	}
	return creada, nil
}
