package repository

import (
	"time"

	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
	CustomerID string
}

// SaleListRow fila de listado: la venta más los nombres resueltos por JOIN.
type SaleListRow struct {
	Sale         entity.Sale
	CustomerDNI  string
	CustomerName string
	SellerName   string
	ItemCount    int
}

// SaleItemDetail línea de venta con los datos del producto (JOIN products).
type SaleItemDetail struct {
	Item        entity.SaleItem
	ProductName string
	ProductSKU  string
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// LastNumber devuelve el sale_number de la venta más reciente por fecha de
	// creación, o ErrNotFound si no hay ventas.
	LastNumber() (string, error)
	ItemsBySale(saleID string) ([]SaleItemDetail, error)
	// List devuelve la página de ventas más el total de filas que cumplen el filtro.
	List(filter SaleFilter, limit, offset int) ([]SaleListRow, int, error)
}
