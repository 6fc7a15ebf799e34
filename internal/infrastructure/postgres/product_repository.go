package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, price, stock_quantity, min_stock, category, brand, image_url, is_active, created_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, stock_quantity, min_stock, category, brand, image_url, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Price,
		product.StockQuantity, product.MinStock, product.Category, product.Brand,
		product.ImageURL, product.IsActive, product.CreatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtiene el producto bloqueando la fila hasta el fin de la
// transacción. Solo tiene sentido con un Querier transaccional.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// Update persiste los campos mutables de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, min_stock = $5, category = $6,
		    brand = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.MinStock,
		product.Category, product.Brand, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeductStock descuenta qty del stock y devuelve el stock resultante. La
// condición stock_quantity >= qty hace imposible dejar la columna negativa:
// si no afecta filas es que el stock no alcanzaba (o el producto no existe).
func (r *ProductRepo) DeductStock(productID string, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2
		RETURNING stock_quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, productID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("deduct stock: %w", err)
	}
	return remaining, nil
}

// AddStock suma qty al stock (reposición) y devuelve el stock resultante.
func (r *ProductRepo) AddStock(productID string, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING stock_quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, productID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add stock: %w", err)
	}
	return remaining, nil
}

// SetStock fija el stock en qty (ajuste de inventario).
func (r *ProductRepo) SetStock(productID string, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock_quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING stock_quantity`
	var remaining int
	err := r.q.QueryRow(context.Background(), query, productID, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("set stock: %w", err)
	}
	return remaining, nil
}

// List lista productos paginados, opcionalmente solo los activos.
func (r *ProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock productos activos cuyo stock está en o bajo su mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active = TRUE AND stock_quantity <= min_stock
		ORDER BY stock_quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// SetActive activa o desactiva un producto (baja lógica).
func (r *ProductRepo) SetActive(id string, active bool) error {
	query := `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.MinStock,
		&p.Category, &p.Brand, &p.ImageURL, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.MinStock,
			&p.Category, &p.Brand, &p.ImageURL, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
