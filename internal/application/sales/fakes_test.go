package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de ventas. store simula la base de datos y
// fakeTxRunner reproduce la semántica de rollback: si el callback falla, el
// estado vuelve al snapshot previo a la "transacción".
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer // por DNI
	users     map[string]*entity.User     // por firebase UID
	sales     []*entity.Sale
	items     []*entity.SaleItem
	sequences map[string]int64
}

func newStore() *store {
	return &store{
		products:  map[string]*entity.Product{},
		customers: map[string]*entity.Customer{},
		users:     map[string]*entity.User{},
		sequences: map[string]int64{},
	}
}

// clone copia profunda del estado (snapshot pre-transacción).
func (s *store) clone() *store {
	c := newStore()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.customers {
		cu := *v
		c.customers[k] = &cu
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for _, v := range s.sales {
		sa := *v
		c.sales = append(c.sales, &sa)
	}
	for _, v := range s.items {
		it := *v
		c.items = append(c.items, &it)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func (s *store) restore(from *store) {
	s.products = from.products
	s.customers = from.customers
	s.users = from.users
	s.sales = from.sales
	s.items = from.items
	s.sequences = from.sequences
}

func (s *store) addProduct(id, sku, name string, price float64, stock int, active bool) {
	s.products[id] = &entity.Product{
		ID: id, SKU: sku, Name: name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
		Category:      entity.CategoryOtros,
		IsActive:      active,
	}
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeductStock(productID string, qty int) (int, error) {
	p, ok := r.s.products[productID]
	if !ok || p.StockQuantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return p.StockQuantity, nil
}

func (r *fakeProductRepo) AddStock(productID string, qty int) (int, error) {
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity += qty
	return p.StockQuantity, nil
}

func (r *fakeProductRepo) SetStock(productID string, qty int) (int, error) {
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity = qty
	return p.StockQuantity, nil
}

func (r *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if onlyActive && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) SetActive(id string, active bool) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = active
	return nil
}

// ── CustomerRepository ────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *store }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	if _, ok := r.s.customers[c.DNI]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.customers[c.DNI] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByDNI(dni string) (*entity.Customer, error) {
	c, ok := r.s.customers[dni]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.s.customers[c.DNI]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.customers[c.DNI] = &cp
	return nil
}

func (r *fakeCustomerRepo) SetActive(id string, active bool) error { return nil }

// ── UserRepository ────────────────────────────────────────────────────────────

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.s.users[u.FirebaseUID]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	r.s.users[u.FirebaseUID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByFirebaseUID(uid string) (*entity.User, error) {
	u, ok := r.s.users[uid]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error { return nil }

func (r *fakeUserRepo) TouchLastLogin(id string, at time.Time) error { return nil }

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

// ── SaleRepository ────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *store }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	for _, existing := range r.s.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.ID == id {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) LastNumber() (string, error) {
	if len(r.s.sales) == 0 {
		return "", domain.ErrNotFound
	}
	last := r.s.sales[0]
	for _, sale := range r.s.sales[1:] {
		if sale.CreatedAt.After(last.CreatedAt) {
			last = sale
		}
	}
	return last.SaleNumber, nil
}

func (r *fakeSaleRepo) ItemsBySale(saleID string) ([]repository.SaleItemDetail, error) {
	var out []repository.SaleItemDetail
	for _, item := range r.s.items {
		if item.SaleID != saleID {
			continue
		}
		d := repository.SaleItemDetail{Item: *item}
		if p, ok := r.s.products[item.ProductID]; ok {
			d.ProductName = p.Name
			d.ProductSKU = p.SKU
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter, limit, offset int) ([]repository.SaleListRow, int, error) {
	var rows []repository.SaleListRow
	for _, sale := range r.s.sales {
		if filter.Status != "" && sale.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && sale.CustomerID != filter.CustomerID {
			continue
		}
		rows = append(rows, repository.SaleListRow{Sale: *sale})
	}
	total := len(rows)
	if offset >= len(rows) {
		return nil, total, nil
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// ── SequenceRepository ────────────────────────────────────────────────────────

type fakeSequenceRepo struct{ s *store }

func (r *fakeSequenceRepo) NextValue(name string) (int64, error) {
	v, ok := r.s.sequences[name]
	if !ok {
		return 0, domain.ErrNotFound
	}
	v++
	r.s.sequences[name] = v
	return v, nil
}

func (r *fakeSequenceRepo) Seed(name string, value int64) (int64, error) {
	if v, ok := r.s.sequences[name]; ok {
		v++
		r.s.sequences[name] = v
		return v, nil
	}
	r.s.sequences[name] = value
	return value, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *store }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(
		&fakeProductRepo{s: r.s},
		&fakeCustomerRepo{s: r.s},
		&fakeUserRepo{s: r.s},
		&fakeSaleRepo{s: r.s},
		&fakeSequenceRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snapshot)
		return err
	}
	return nil
}
