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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, dni, name, email, phone, address, customer_type, is_active, created_at, updated_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. El índice único sobre dni convierte la
// creación concurrente del mismo cliente en ErrDuplicate para el perdedor.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, dni, name, email, phone, address, customer_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.DNI, customer.Name, customer.Email, customer.Phone,
		customer.Address, customer.CustomerType, customer.IsActive, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.q.QueryRow(context.Background(), query, id), "get customer")
}

// GetByDNI obtiene un cliente por su documento.
func (r *CustomerRepo) GetByDNI(dni string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE dni = $1`
	return scanCustomer(r.q.QueryRow(context.Background(), query, dni), "get customer by dni")
}

// List lista clientes paginados por nombre.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.DNI, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.CustomerType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

// Update persiste la ficha del cliente. El DNI no se toca.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, customer_type = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.Address, customer.CustomerType, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva un cliente.
func (r *CustomerRepo) SetActive(id string, active bool) error {
	query := `UPDATE customers SET is_active = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, active)
	if err != nil {
		return fmt.Errorf("set customer active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row, op string) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.DNI, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.CustomerType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
