package entity

import "github.com/shopspring/decimal"

// SaleItem es una línea de venta. UnitPrice es una foto del precio del
// producto al momento de la venta: cambios de precio posteriores no alteran
// ventas históricas. TotalPrice = Quantity × UnitPrice.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int // entero positivo
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}
