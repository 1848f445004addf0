package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AuthClient canjea credenciales por tokens contra el backend. No usa el
// cliente base: estas rutas son justamente las que producen el bearer y no
// deben entrar en el ciclo refresh-and-retry.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthClient construye el cliente de autenticación.
func NewAuthClient(cfg Config) *AuthClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AuthClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Credenciales respuesta de login/refresh.
type Credenciales struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Login autentica con email y contraseña.
func (ac *AuthClient) Login(ctx context.Context, email, password string) (Credenciales, error) {
	return ac.canjear(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh canjea la credencial de refresco por un access token nuevo.
func (ac *AuthClient) Refresh(ctx context.Context, refreshToken string) (Credenciales, error) {
	return ac.canjear(ctx, "/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
}

func (ac *AuthClient) canjear(ctx context.Context, path string, payload map[string]string) (Credenciales, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Credenciales{}, fmt.Errorf("backend: serializar credenciales: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Credenciales{}, fmt.Errorf("backend: crear request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ac.httpClient.Do(req)
	if err != nil {
		return Credenciales{}, fmt.Errorf("backend: llamada HTTP %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Credenciales{}, fmt.Errorf("backend: leer respuesta %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Credenciales{}, parseAPIError(resp.StatusCode, raw)
	}

	var creds Credenciales
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credenciales{}, fmt.Errorf("backend: deserializar credenciales de %s: %w", path, err)
	}
	if creds.AccessToken == "" {
		return Credenciales{}, fmt.Errorf("backend: respuesta inesperada de %s: no se recibió access_token", path)
	}
	return creds, nil
}
