package customers_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/application/customers"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// memCustomerRepo fake mínimo indexado por id, con DNI único.
type memCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	for _, existing := range r.byID {
		if existing.DNI == c.DNI {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) GetByDNI(dni string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.DNI == dni {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) SetActive(id string, active bool) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsActive = active
	return nil
}

// memSaleRepo solo implementa List con filtro por cliente; lo demás no se
// usa en estos tests.
type memSaleRepo struct {
	sales []*entity.Sale
}

func (r *memSaleRepo) Create(sale *entity.Sale) error         { return nil }
func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error { return nil }
func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return nil, nil
}
func (r *memSaleRepo) LastNumber() (string, error) { return "", domain.ErrNotFound }
func (r *memSaleRepo) ItemsBySale(saleID string) ([]repository.SaleItemDetail, error) {
	return nil, nil
}

func (r *memSaleRepo) List(filter repository.SaleFilter, limit, offset int) ([]repository.SaleListRow, int, error) {
	var rows []repository.SaleListRow
	for _, sale := range r.sales {
		if filter.CustomerID != "" && sale.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && sale.Status != filter.Status {
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

func newUseCase(customerRepo *memCustomerRepo, saleRepo *memSaleRepo) *customers.CustomerUseCase {
	if saleRepo == nil {
		saleRepo = &memSaleRepo{}
	}
	return customers.NewCustomerUseCase(customerRepo, saleRepo)
}

func TestCreateCustomer_AltaValida(t *testing.T) {
	uc := newUseCase(newMemCustomerRepo(), nil)

	out, err := uc.Create(dto.CreateCustomerRequest{DNI: "12345678", Name: "Juan Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", out.DNI)
	assert.Equal(t, entity.CustomerTypeIndividual, out.CustomerType, "tipo por defecto")
	assert.True(t, out.IsActive)
}

func TestCreateCustomer_DNIDuplicado(t *testing.T) {
	uc := newUseCase(newMemCustomerRepo(), nil)

	_, err := uc.Create(dto.CreateCustomerRequest{DNI: "12345678", Name: "Juan Pérez"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCustomerRequest{DNI: "12345678", Name: "Otro Nombre"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateCustomer_Validacion(t *testing.T) {
	uc := newUseCase(newMemCustomerRepo(), nil)

	cases := []struct {
		name string
		in   dto.CreateCustomerRequest
	}{
		{"sin dni", dto.CreateCustomerRequest{Name: "Juan Pérez"}},
		{"sin nombre", dto.CreateCustomerRequest{DNI: "12345678"}},
		{"tipo inválido", dto.CreateCustomerRequest{DNI: "12345678", Name: "Juan", CustomerType: "corporativo"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDeactivateCustomer_BajaLogica(t *testing.T) {
	repo := newMemCustomerRepo()
	uc := newUseCase(repo, nil)

	out, err := uc.Create(dto.CreateCustomerRequest{DNI: "12345678", Name: "Juan Pérez"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(out.ID))
	got, err := uc.Get(out.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "el cliente queda inactivo, no borrado")

	assert.ErrorIs(t, uc.Deactivate("no-existe"), domain.ErrNotFound)
}

// El historial solo trae ventas del cliente pedido, con paginación.
func TestCustomerSales_FiltraPorCliente(t *testing.T) {
	repo := newMemCustomerRepo()
	saleRepo := &memSaleRepo{}
	uc := newUseCase(repo, saleRepo)

	created, err := uc.Create(dto.CreateCustomerRequest{DNI: "12345678", Name: "Juan Pérez"})
	require.NoError(t, err)

	saleRepo.sales = append(saleRepo.sales,
		&entity.Sale{ID: "s1", SaleNumber: "V-000001", CustomerID: created.ID, TotalAmount: decimal.NewFromFloat(10), Status: entity.SaleStatusCompleted},
		&entity.Sale{ID: "s2", SaleNumber: "V-000002", CustomerID: "otro", TotalAmount: decimal.NewFromFloat(20), Status: entity.SaleStatusCompleted},
		&entity.Sale{ID: "s3", SaleNumber: "V-000003", CustomerID: created.ID, TotalAmount: decimal.NewFromFloat(30), Status: entity.SaleStatusCompleted},
	)

	out, err := uc.Sales(created.ID, repository.SaleFilter{}, dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Sales, 2)
	for _, s := range out.Sales {
		assert.NotEqual(t, "V-000002", s.SaleNumber, "ventas de otros clientes quedan fuera")
	}
}

func TestCustomerSales_ClienteInexistente(t *testing.T) {
	uc := newUseCase(newMemCustomerRepo(), nil)

	_, err := uc.Sales("no-existe", repository.SaleFilter{}, dto.PageRequest{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
