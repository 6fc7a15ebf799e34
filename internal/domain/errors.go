package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductInactive   = errors.New("producto inactivo")
	ErrCorruptSequence   = errors.New("secuencia de ventas corrupta")
)

// StockError detalla una falla de disponibilidad: qué producto, cuánto hay y
// cuánto se pidió. errors.Is(err, ErrInsufficientStock) sigue funcionando.
type StockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
