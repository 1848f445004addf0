// Package session mantiene la sesión del trabajador frente al backend: el par
// de tokens (acceso/refresco) y el perfil cacheado con TTL. Es el colaborador
// del que depende la saga de ventas para identidad, sucursal y bearer token.
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/internal/infrastructure/backend"
	"github.com/jhoicas/pos-admin/pkg/logger"
	"github.com/jhoicas/pos-admin/pkg/token"
)

// margenExpiracion anticipa el refresh para que un token a punto de vencer no
// caiga en mitad de una saga.
const margenExpiracion = 30 * time.Second

// Tokens almacena el bearer vigente y la credencial de refresco.
// Implementa backend.TokenSource: todos los recursos comparten esta única
// política de renovación.
type Tokens struct {
	mu      sync.Mutex
	auth    *backend.AuthClient
	access  string
	refresh string
	log     *logger.Logger
}

// NewTokens construye el almacén de tokens.
func NewTokens(auth *backend.AuthClient, log *logger.Logger) *Tokens {
	return &Tokens{auth: auth, log: log.Componente("session")}
}

// Login autentica contra el backend y guarda las credenciales recibidas.
func (t *Tokens) Login(ctx context.Context, email, password string) error {
	creds, err := t.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.access = creds.AccessToken
	t.refresh = creds.RefreshToken
	t.mu.Unlock()
	t.log.Info().Str("email", email).Msg("sesión iniciada")
	return nil
}

// Token devuelve el bearer vigente. Si el JWT declara una expiración ya
// alcanzada (o inminente) se refresca antes de entregarlo.
func (t *Tokens) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	access := t.access
	t.mu.Unlock()

	if access == "" {
		return "", domain.ErrUnauthorized
	}
	if token.Expirado(access, margenExpiracion) {
		t.log.Debug().Msg("token por vencer, refresh proactivo")
		return t.Refresh(ctx)
	}
	return access, nil
}

// Refresh canjea la credencial de refresco por un access token nuevo.
// Un rechazo definitivo (401/403 del endpoint de refresh) limpia todo el
// estado local y devuelve domain.ErrSessionExpired: el caller debe reiniciar
// la autenticación.
func (t *Tokens) Refresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.refresh == "" {
		t.access = ""
		return "", domain.ErrSessionExpired
	}

	creds, err := t.auth.Refresh(ctx, t.refresh)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			t.access = ""
			t.refresh = ""
			t.log.Warn().Msg("refresh rechazado, sesión local eliminada")
			return "", domain.ErrSessionExpired
		}
		return "", err
	}

	t.access = creds.AccessToken
	if creds.RefreshToken != "" {
		t.refresh = creds.RefreshToken
	}
	return t.access, nil
}

// Limpiar descarta los tokens (logout).
func (t *Tokens) Limpiar() {
	t.mu.Lock()
	t.access = ""
	t.refresh = ""
	t.mu.Unlock()
}

// Autenticado indica si hay un bearer almacenado.
func (t *Tokens) Autenticado() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.access != ""
}
