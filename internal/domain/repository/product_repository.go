package repository

import "github.com/tu-usuario/punto-venta/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Debe usarse dentro de una transacción antes de descontar stock.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// DeductStock descuenta qty del stock y devuelve el stock resultante.
	// La sentencia exige stock_quantity >= qty; si no hay filas afectadas el
	// stock hubiera quedado negativo y se retorna ErrInsufficientStock.
	DeductStock(productID string, qty int) (int, error)
	// AddStock suma qty al stock (reposición) y devuelve el stock resultante.
	AddStock(productID string, qty int) (int, error)
	// SetStock fija el stock en qty (ajuste de inventario) y devuelve el
	// valor fijado.
	SetStock(productID string, qty int) (int, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	SetActive(id string, active bool) error
}
