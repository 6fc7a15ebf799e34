package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/application/catalog"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// memProductRepo fake en memoria indexado por id.
type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.byID {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) DeductStock(productID string, qty int) (int, error) {
	p, ok := r.byID[productID]
	if !ok || p.StockQuantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return p.StockQuantity, nil
}

func (r *memProductRepo) AddStock(productID string, qty int) (int, error) {
	p, ok := r.byID[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity += qty
	return p.StockQuantity, nil
}

func (r *memProductRepo) SetStock(productID string, qty int) (int, error) {
	p, ok := r.byID[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity = qty
	return p.StockQuantity, nil
}

func (r *memProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if onlyActive && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.IsActive && p.StockQuantity <= p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) SetActive(id string, active bool) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func validProduct() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:           "SKU-001",
		Name:          "Arroz 1kg",
		Price:         decimal.NewFromFloat(3.50),
		StockQuantity: 20,
		MinStock:      5,
		Category:      entity.CategoryAlimentos,
	}
}

func TestCreateProduct_AltaValida(t *testing.T) {
	uc := catalog.NewProductUseCase(newMemProductRepo())

	out, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", out.SKU)
	assert.True(t, out.IsActive)
	assert.Equal(t, 20, out.StockQuantity)
}

func TestCreateProduct_SKUDuplicado(t *testing.T) {
	uc := catalog.NewProductUseCase(newMemProductRepo())

	_, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)
	_, err = uc.Create("user-1", validProduct())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateProduct_Validacion(t *testing.T) {
	uc := catalog.NewProductUseCase(newMemProductRepo())

	cases := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"sin sku", func(in *dto.CreateProductRequest) { in.SKU = " " }},
		{"sin nombre", func(in *dto.CreateProductRequest) { in.Name = "" }},
		{"precio negativo", func(in *dto.CreateProductRequest) { in.Price = decimal.NewFromFloat(-1) }},
		{"stock negativo", func(in *dto.CreateProductRequest) { in.StockQuantity = -1 }},
		{"categoría inválida", func(in *dto.CreateProductRequest) { in.Category = "juguetes" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProduct()
			tc.mutate(&in)
			_, err := uc.Create("user-1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateProduct_CamposParciales(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(4.00)
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(newPrice))
	assert.Equal(t, "Arroz 1kg", out.Name, "los campos no enviados no cambian")
	assert.Equal(t, "SKU-001", out.SKU, "el SKU es inmutable")
}

func TestDeactivateProduct_BajaLogica(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(created.ID))
	got, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "el producto queda inactivo, no borrado")
}

func TestListLowStock(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)

	low := validProduct()
	low.StockQuantity = 2 // bajo el mínimo de 5
	_, err := uc.Create("user-1", low)
	require.NoError(t, err)

	ok := validProduct()
	ok.SKU = "SKU-002"
	ok.Name = "Aceite 1L"
	_, err = uc.Create("user-1", ok)
	require.NoError(t, err)

	out, err := uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "SKU-001", out[0].SKU)
}

func TestUpdateStock_Reposicion(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	out, err := uc.UpdateStock(created.ID, dto.UpdateStockRequest{StockQuantity: 30, Operation: catalog.StockOpAdd})
	require.NoError(t, err)
	assert.Equal(t, 50, out.StockQuantity)
	assert.Equal(t, created.Name, out.Name)
}

func TestUpdateStock_AjusteDirecto(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	// sin operation explícita se fija el valor
	out, err := uc.UpdateStock(created.ID, dto.UpdateStockRequest{StockQuantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, out.StockQuantity)
}

func TestUpdateStock_RetiroInsuficiente(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	_, err = uc.UpdateStock(created.ID, dto.UpdateStockRequest{StockQuantity: 21, Operation: catalog.StockOpSubtract})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.StockQuantity, "el stock no se toca")
}

func TestUpdateStock_Validacion(t *testing.T) {
	repo := newMemProductRepo()
	uc := catalog.NewProductUseCase(repo)
	created, err := uc.Create("user-1", validProduct())
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.UpdateStockRequest
	}{
		{"operación desconocida", dto.UpdateStockRequest{StockQuantity: 1, Operation: "multiply"}},
		{"set negativo", dto.UpdateStockRequest{StockQuantity: -1}},
		{"add cero", dto.UpdateStockRequest{StockQuantity: 0, Operation: catalog.StockOpAdd}},
		{"subtract negativo", dto.UpdateStockRequest{StockQuantity: -3, Operation: catalog.StockOpSubtract}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.UpdateStock(created.ID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateStock_ProductoInexistente(t *testing.T) {
	uc := catalog.NewProductUseCase(newMemProductRepo())

	_, err := uc.UpdateStock("no-existe", dto.UpdateStockRequest{StockQuantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
