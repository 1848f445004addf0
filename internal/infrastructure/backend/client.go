// Package backend contiene los clientes tipados hacia el servicio remoto de
// catálogo/inventario. Todas las peticiones pasan por un único cliente base
// autenticado: inyección del bearer token, correlación X-Request-ID, parseo
// del sobre de error y un único ciclo refresh-and-retry ante 401, compartido
// por todos los recursos por igual.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-admin/pkg/logger"
)

// TokenSource entrega el bearer token vigente y sabe canjear uno nuevo cuando
// el backend responde 401. Lo implementa el proveedor de sesión.
type TokenSource interface {
	// Token devuelve el bearer token actual.
	Token(ctx context.Context) (string, error)
	// Refresh canjea la credencial de refresco por un token nuevo.
	// Si el canje es rechazado de forma definitiva debe limpiar el estado
	// local y devolver domain.ErrSessionExpired.
	Refresh(ctx context.Context) (string, error)
}

// Config parámetros del cliente base.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client cliente HTTP base autenticado contra el backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logger.Logger
}

// New construye el cliente base.
func New(cfg Config, tokens TokenSource, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.Componente("backend"),
	}
}

// doJSON ejecuta una petición JSON autenticada. Si el backend responde 401
// intenta UN refresh del token y reintenta la misma petición una sola vez;
// un segundo 401 se propaga tal cual.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: serializar request %s %s: %w", method, path, err)
		}
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("backend: obtener token: %w", err)
	}

	resp, raw, err := c.once(ctx, method, path, body, tok)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn().Str("ruta", path).Msg("401 del backend, refrescando token y reintentando")
		tok, err = c.tokens.Refresh(ctx)
		if err != nil {
			return err
		}
		resp, raw, err = c.once(ctx, method, path, body, tok)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("backend: deserializar respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

// once lanza una única petición y devuelve el status con el body ya leído.
func (c *Client) once(ctx context.Context, method, path string, body []byte, bearer string) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: crear request %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("backend: petición cancelada %s %s: %w", method, path, ctx.Err())
		}
		return nil, nil, fmt.Errorf("backend: llamada HTTP %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	// Leer el body una sola vez; el sobre de error se parsea sobre estos bytes.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("backend: leer respuesta %s %s: %w", method, path, err)
	}
	return resp, raw, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, payload, out)
}
