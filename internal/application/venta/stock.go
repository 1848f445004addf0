package venta

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-admin/internal/domain"
	"github.com/jhoicas/pos-admin/pkg/logger"
)

// ResultadoStock resultado de la verificación de existencias.
type ResultadoStock struct {
	OK         bool
	Disponible int
}

// ErrStockInsuficiente el total de lotes no alcanza para la cantidad pedida.
// Envuelve domain.ErrInsufficientStock y conserva la cantidad disponible para
// mostrarla al usuario.
type ErrStockInsuficiente struct {
	Disponible int
	Solicitado int
}

func (e *ErrStockInsuficiente) Error() string {
	return fmt.Sprintf("stock insuficiente: disponibles %d, solicitados %d", e.Disponible, e.Solicitado)
}

func (e *ErrStockInsuficiente) Is(target error) bool {
	return target == domain.ErrInsufficientStock
}

// VerificadorStock suma las existencias de todos los lotes de un producto y
// decide si la venta puede continuar. Solo lectura; la verificación y el
// descuento posterior NO son atómicos entre sí.
type VerificadorStock struct {
	inventario InventarioAPI
	log        *logger.Logger
}

// NewVerificadorStock construye el verificador.
func NewVerificadorStock(inventario InventarioAPI, log *logger.Logger) *VerificadorStock {
	return &VerificadorStock{inventario: inventario, log: log.Componente("stock")}
}

// Verificar obtiene todos los lotes del producto y compara la suma contra la
// cantidad solicitada. Un fallo de red se devuelve como error ("no se pudo
// verificar"), distinto de la insuficiencia (ResultadoStock.OK=false).
// Cantidades ausentes o no numéricas cuentan como 0.
func (v *VerificadorStock) Verificar(ctx context.Context, idProducto int64, solicitado int) (ResultadoStock, error) {
	lotes, err := v.inventario.PorProducto(ctx, idProducto)
	if err != nil {
		return ResultadoStock{}, fmt.Errorf("no se pudo verificar el stock: %w", err)
	}

	disponible := 0
	for _, lote := range lotes {
		if q := lote.Cantidad.Int(); q > 0 {
			disponible += q
		}
	}

	res := ResultadoStock{OK: disponible >= solicitado, Disponible: disponible}
	v.log.Debug().
		Int64("idProducto", idProducto).
		Int("solicitado", solicitado).
		Int("disponible", disponible).
		Bool("ok", res.OK).
		Msg("verificación de stock")
	return res, nil
}
