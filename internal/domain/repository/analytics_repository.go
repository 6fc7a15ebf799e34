package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentBreakdown agregado de ventas por método de pago.
type PaymentBreakdown struct {
	PaymentMethod string
	Count         int64
	Total         decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre ventas ya confirmadas.
// Todas las sumas usan COALESCE para devolver cero en períodos sin datos.
type AnalyticsRepository interface {
	// SalesTotals cuenta ventas y suma ingresos en el rango (límites opcionales).
	SalesTotals(ctx context.Context, start, end *time.Time) (count int64, revenue decimal.Decimal, err error)
	// SalesByPayment agrupa cantidad y monto por método de pago en el rango.
	SalesByPayment(ctx context.Context, start, end *time.Time) ([]PaymentBreakdown, error)
	// SalesSince cuenta ventas y suma ingresos desde el instante dado.
	SalesSince(ctx context.Context, since time.Time) (count int64, revenue decimal.Decimal, err error)
	// ProductCounts devuelve productos activos y productos con stock bajo
	// (stock_quantity <= min_stock).
	ProductCounts(ctx context.Context) (total, lowStock int64, err error)
	CountSalesByStatus(ctx context.Context, status string) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
}
