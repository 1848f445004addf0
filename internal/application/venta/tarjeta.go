package venta

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// SeleccionTarjeta lo que el formulario capturó para el pago con tarjeta:
// una tarjeta existente (IDExistente > 0) o los campos para crear una nueva.
type SeleccionTarjeta struct {
	IDExistente int64
	Nombre      string // emisor o etiqueta
	Numero      string // token numérico corto que deja pasar la máscara de la UI
	Tipo        string // CREDITO | DEBITO | otro
}

// ErrorCampoTarjeta error de validación atribuible a un campo concreto del
// formulario de tarjeta. Se produce antes de cualquier llamada de red.
type ErrorCampoTarjeta struct {
	Campo   string
	Mensaje string
}

func (e *ErrorCampoTarjeta) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Mensaje)
}

// numeroTarjetaRe la máscara de la UI captura los últimos 4 dígitos.
var numeroTarjetaRe = regexp.MustCompile(`^[0-9]{4}$`)

// ResolutorTarjeta resuelve la referencia de tarjeta de una venta: devuelve el
// id ya seleccionado o crea la tarjeta nueva en línea. Las tarjetas creadas no
// se cachean entre sesiones.
type ResolutorTarjeta struct {
	tarjetas TarjetaAPI
	log      *logger.Logger
}

// NewResolutorTarjeta construye el resolutor.
func NewResolutorTarjeta(tarjetas TarjetaAPI, log *logger.Logger) *ResolutorTarjeta {
	return &ResolutorTarjeta{tarjetas: tarjetas, log: log.Componente("tarjeta")}
}

// Resolver devuelve el id de tarjeta a adjuntar a la venta.
func (r *ResolutorTarjeta) Resolver(ctx context.Context, sel SeleccionTarjeta) (int64, error) {
	if sel.IDExistente > 0 {
		return sel.IDExistente, nil
	}

	if err := validarTarjetaNueva(sel); err != nil {
		return 0, err
	}

	creada, err := r.tarjetas.Crear(ctx, entity.Tarjeta{
		Nombre: strings.TrimSpace(sel.Nombre),
		Numero: sel.Numero,
		Tipo:   sel.Tipo,
	})
	if err != nil {
		return 0, err
	}
	r.log.Info().Int64("idTarjeta", creada.ID).Msg("tarjeta creada en línea")
	return creada.ID, nil
}

// validarTarjetaNueva valida los campos del formulario en el cliente; si algo
// falla no se toca la red.
func validarTarjetaNueva(sel SeleccionTarjeta) error {
	if utf8.RuneCountInString(strings.TrimSpace(sel.Nombre)) < 3 {
		return &ErrorCampoTarjeta{Campo: "nombre", Mensaje: "el nombre del emisor necesita al menos 3 caracteres"}
	}
	if !numeroTarjetaRe.MatchString(sel.Numero) {
		return &ErrorCampoTarjeta{Campo: "numero", Mensaje: "el número debe ser de exactamente 4 dígitos"}
	}
	if strings.TrimSpace(sel.Tipo) == "" {
		return &ErrorCampoTarjeta{Campo: "tipo", Mensaje: "selecciona el tipo de tarjeta"}
	}
	return nil
}
