package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrSessionExpired    = errors.New("sesión expirada, es necesario iniciar sesión de nuevo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSaleInFlight      = errors.New("ya hay un registro de venta en curso")
)
