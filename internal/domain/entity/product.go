package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas para Product.
const (
	CategoryAlimentos   = "alimentos"
	CategoryBebidas     = "bebidas"
	CategoryLimpieza    = "limpieza"
	CategoryElectronica = "electronica"
	CategoryRopa        = "ropa"
	CategoryOtros       = "otros"
)

// ValidCategory indica si la categoría pertenece al conjunto permitido.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAlimentos, CategoryBebidas, CategoryLimpieza,
		CategoryElectronica, CategoryRopa, CategoryOtros:
		return true
	}
	return false
}

// Product representa un producto del catálogo. StockQuantity nunca baja de
// cero: el motor de ventas lo valida antes de descontar y el repositorio lo
// re-verifica en el UPDATE. Los productos no se borran, se desactivan.
type Product struct {
	ID            string
	SKU           string // código único de negocio, inmutable
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, >= 0
	StockQuantity int
	MinStock      int
	Category      string
	Brand         string
	ImageURL      string
	IsActive      bool
	CreatedBy     string // usuario que lo creó
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
