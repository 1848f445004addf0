package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiraEn devuelve cuánto falta para que expire un bearer token JWT emitido
// por el backend. El parseo es sin verificación de firma: este cliente no
// conoce el secret del backend, solo necesita leer el claim exp para decidir
// cuándo refrescar de forma proactiva.
// Si el token no es JWT o no trae exp, devuelve error y el caller debe tratar
// el token como de vigencia desconocida (refrescar solo al recibir 401).
func ExpiraEn(tokenString string) (time.Duration, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return 0, fmt.Errorf("token: parsear JWT: %w", err)
	}
	if claims.ExpiresAt == nil {
		return 0, fmt.Errorf("token: sin claim exp")
	}
	return time.Until(claims.ExpiresAt.Time), nil
}

// Expirado indica si el token ya venció (o vence dentro del margen dado).
// Un token no parseable se reporta como no expirado: la decisión final la
// toma el backend respondiendo 401.
func Expirado(tokenString string, margen time.Duration) bool {
	restante, err := ExpiraEn(tokenString)
	if err != nil {
		return false
	}
	return restante <= margen
}
