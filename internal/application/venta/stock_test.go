package venta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-admin/internal/domain/entity"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

type inventarioFalso struct {
	lotes        []entity.InventarioDetalle
	errLectura   error
	errEscritura error

	lecturas       int
	actualizados   []entity.InventarioDetalle
}

func (f *inventarioFalso) PorProducto(_ context.Context, _ int64) ([]entity.InventarioDetalle, error) {
	f.lecturas++
	if f.errLectura != nil {
		return nil, f.errLectura
	}
	return f.lotes, nil
}

func (f *inventarioFalso) Actualizar(_ context.Context, lote entity.InventarioDetalle) error {
	if f.errEscritura != nil {
		return f.errEscritura
	}
	f.actualizados = append(f.actualizados, lote)
	return nil
}

func loggerPrueba() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestVerificadorStockSumaLotes(t *testing.T) {
	inv := &inventarioFalso{lotes: []entity.InventarioDetalle{
		{ID: 1, IDProducto: 7, Cantidad: 5},
		{ID: 2, IDProducto: 7, Cantidad: 0},
		{ID: 3, IDProducto: 7, Cantidad: 3},
	}}
	v := NewVerificadorStock(inv, loggerPrueba())

	res, err := v.Verificar(context.Background(), 7, 9)
	require.NoError(t, err, "la insuficiencia no es un error de verificación")
	assert.False(t, res.OK)
	assert.Equal(t, 8, res.Disponible)

	res, err = v.Verificar(context.Background(), 7, 8)
	require.NoError(t, err)
	assert.True(t, res.OK, "8 solicitados con 8 disponibles debe pasar")
}

func TestVerificadorStockIgnoraCantidadesNegativas(t *testing.T) {
	inv := &inventarioFalso{lotes: []entity.InventarioDetalle{
		{ID: 1, Cantidad: entity.CantidadTolerante(-4)},
		{ID: 2, Cantidad: 6},
	}}
	v := NewVerificadorStock(inv, loggerPrueba())

	res, err := v.Verificar(context.Background(), 7, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Disponible, "las cantidades negativas no restan del total")
	assert.True(t, res.OK)
}

func TestVerificadorStockFalloDeRed(t *testing.T) {
	caida := errors.New("connection refused")
	inv := &inventarioFalso{errLectura: caida}
	v := NewVerificadorStock(inv, loggerPrueba())

	_, err := v.Verificar(context.Background(), 7, 1)
	require.Error(t, err, "un fallo de red es distinto de stock insuficiente")
	assert.ErrorIs(t, err, caida)
	assert.Contains(t, err.Error(), "no se pudo verificar")
}
