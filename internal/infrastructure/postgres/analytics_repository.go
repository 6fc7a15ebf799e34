package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de solo lectura sobre ventas completadas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// dateRangeWhere arma el WHERE de rango opcional sobre ventas completadas.
func dateRangeWhere(start, end *time.Time) (string, []any) {
	where := ` WHERE status = '` + entity.SaleStatusCompleted + `'`
	args := []any{}
	if start != nil {
		args = append(args, *start)
		where += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		where += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	return where, args
}

// SalesTotals cuenta ventas y suma ingresos en el rango dado.
func (r *AnalyticsRepo) SalesTotals(ctx context.Context, start, end *time.Time) (int64, decimal.Decimal, error) {
	where, args := dateRangeWhere(start, end)
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM sales` + where
	var count int64
	var revenue decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count, &revenue); err != nil {
		return 0, decimal.Zero, fmt.Errorf("sales totals: %w", err)
	}
	return count, revenue, nil
}

// SalesByPayment agrupa cantidad y monto por método de pago en el rango dado.
func (r *AnalyticsRepo) SalesByPayment(ctx context.Context, start, end *time.Time) ([]repository.PaymentBreakdown, error) {
	where, args := dateRangeWhere(start, end)
	query := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales` + where + `
		GROUP BY payment_method
		ORDER BY payment_method`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by payment: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentBreakdown
	for rows.Next() {
		var b repository.PaymentBreakdown
		if err := rows.Scan(&b.PaymentMethod, &b.Count, &b.Total); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SalesSince cuenta ventas y suma ingresos desde el instante dado.
func (r *AnalyticsRepo) SalesSince(ctx context.Context, since time.Time) (int64, decimal.Decimal, error) {
	return r.SalesTotals(ctx, &since, nil)
}

// ProductCounts devuelve productos activos totales y con stock en o bajo su mínimo.
func (r *AnalyticsRepo) ProductCounts(ctx context.Context) (int64, int64, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock_quantity <= min_stock)
		FROM products WHERE is_active = TRUE`
	var total, lowStock int64
	if err := r.q.QueryRow(ctx, query).Scan(&total, &lowStock); err != nil {
		return 0, 0, fmt.Errorf("product counts: %w", err)
	}
	return total, lowStock, nil
}

// CountSalesByStatus cuenta ventas en el estado dado.
func (r *AnalyticsRepo) CountSalesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sales by status: %w", err)
	}
	return count, nil
}

// CountActiveUsers cuenta usuarios activos.
func (r *AnalyticsRepo) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return count, nil
}
