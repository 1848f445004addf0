package venta

import (
	"errors"
	"fmt"
)

// Etapa identifica el paso de la saga en el que ocurrió un fallo. El manejador
// superior usa la etapa para decidir qué mensaje mostrar y si los pasos previos
// ya dejaron efectos durables en el backend.
type Etapa string

const (
	EtapaValidacion Etapa = "validacion"
	EtapaSesion     Etapa = "sesion"
	EtapaStock      Etapa = "verificacion-stock"
	EtapaTarjeta    Etapa = "tarjeta"
	EtapaEncabezado Etapa = "encabezado"
	EtapaDetalle    Etapa = "detalle"
	EtapaInventario Etapa = "inventario"
)

// ErrorEtapa error con la etapa de la saga adjunta.
type ErrorEtapa struct {
	Etapa Etapa
	Err   error
}

func (e *ErrorEtapa) Error() string {
	return fmt.Sprintf("etapa %s: %v", e.Etapa, e.Err)
}

func (e *ErrorEtapa) Unwrap() error { return e.Err }

// fallaEn etiqueta un error con su etapa.
func fallaEn(etapa Etapa, err error) error {
	return &ErrorEtapa{Etapa: etapa, Err: err}
}

// EtapaDe devuelve la etapa de un error de saga, o cadena vacía si el error no
// viene etiquetado.
func EtapaDe(err error) Etapa {
	var ee *ErrorEtapa
	if errors.As(err, &ee) {
		return ee.Etapa
	}
	return ""
}
