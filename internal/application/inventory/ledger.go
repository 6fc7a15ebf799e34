// Package inventory implementa el libro de existencias: validación y
// descuento atómico de stock dentro de la transacción de la venta.
package inventory

import (
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// StockLedger opera sobre los repositorios del caller (misma transacción).
// El protocolo es en dos fases: primero CheckAvailability para cada línea de
// la venta, recién después Deduct. Así una venta con una línea inválida no
// descuenta nada.
type StockLedger struct{}

// NewStockLedger construye el libro de existencias.
func NewStockLedger() *StockLedger { return &StockLedger{} }

// CheckAvailability carga el producto bloqueando la fila (SELECT FOR UPDATE)
// y valida que exista, esté activo y tenga stock suficiente. No muta nada; el
// bloqueo serializa ventas concurrentes sobre el mismo producto.
func (l *StockLedger) CheckAvailability(productRepo repository.ProductRepository, productID string, qty int) (*entity.Product, error) {
	product, err := productRepo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsActive {
		return nil, domain.ErrProductInactive
	}
	if product.StockQuantity < qty {
		return nil, &domain.StockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.StockQuantity,
			Requested:   qty,
		}
	}
	return product, nil
}

// Deduct descuenta qty del stock del producto y devuelve el stock resultante.
// Precondición: CheckAvailability pasó dentro de esta misma transacción. El
// UPDATE re-verifica stock_quantity >= qty, así el stock jamás queda negativo.
func (l *StockLedger) Deduct(productRepo repository.ProductRepository, productID string, qty int) (int, error) {
	newStock, err := productRepo.DeductStock(productID, qty)
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
