package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, customer_id, sold_by, total_amount, payment_method, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.CustomerID, sale.SoldBy,
		sale.TotalAmount, sale.PaymentMethod, sale.Status, sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, sale_number, customer_id, sold_by, total_amount, payment_method, status, notes, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleNumber, &s.CustomerID, &s.SoldBy, &s.TotalAmount,
		&s.PaymentMethod, &s.Status, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// LastNumber devuelve el sale_number de la venta más reciente, o ErrNotFound
// si todavía no hay ventas.
func (r *SaleRepo) LastNumber() (string, error) {
	query := `SELECT sale_number FROM sales ORDER BY created_at DESC, sale_number DESC LIMIT 1`
	var number string
	err := r.q.QueryRow(context.Background(), query).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("last sale number: %w", err)
	}
	return number, nil
}

// ItemsBySale devuelve las líneas de una venta con nombre y SKU del producto.
func (r *SaleRepo) ItemsBySale(saleID string) ([]repository.SaleItemDetail, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.total_price,
		       p.name, p.sku
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale items: %w", err)
	}
	defer rows.Close()

	var items []repository.SaleItemDetail
	for rows.Next() {
		var d repository.SaleItemDetail
		if err := rows.Scan(
			&d.Item.ID, &d.Item.SaleID, &d.Item.ProductID, &d.Item.Quantity,
			&d.Item.UnitPrice, &d.Item.TotalPrice, &d.ProductName, &d.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// List devuelve una página de ventas (con nombres resueltos) más el total de
// filas que cumplen el filtro. El filtro de fechas es inclusivo en ambos
// extremos y opcional en cada uno.
func (r *SaleRepo) List(filter repository.SaleFilter, limit, offset int) ([]repository.SaleListRow, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	next := func() string {
		n++
		return "$" + strconv.Itoa(n)
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += ` AND s.created_at >= ` + next()
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += ` AND s.created_at <= ` + next()
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += ` AND s.status = ` + next()
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += ` AND s.customer_id = ` + next()
	}

	countQuery := `SELECT COUNT(*) FROM sales s` + where
	var total int
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, limit)
	limitPh := next()
	args = append(args, offset)
	offsetPh := next()
	query := `
		SELECT s.id, s.sale_number, s.customer_id, s.sold_by, s.total_amount,
		       s.payment_method, s.status, s.notes, s.created_at,
		       c.dni, c.name, u.name,
		       (SELECT COUNT(*) FROM sale_items si WHERE si.sale_id = s.id)
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		JOIN users u ON u.id = s.sold_by` + where + `
		ORDER BY s.created_at DESC
		LIMIT ` + limitPh + ` OFFSET ` + offsetPh
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleListRow
	for rows.Next() {
		var row repository.SaleListRow
		if err := rows.Scan(
			&row.Sale.ID, &row.Sale.SaleNumber, &row.Sale.CustomerID, &row.Sale.SoldBy,
			&row.Sale.TotalAmount, &row.Sale.PaymentMethod, &row.Sale.Status, &row.Sale.Notes,
			&row.Sale.CreatedAt, &row.CustomerDNI, &row.CustomerName, &row.SellerName, &row.ItemCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale row: %w", err)
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
