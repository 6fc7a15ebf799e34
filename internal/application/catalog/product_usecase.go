// Package catalog gestiona el catálogo de productos: altas, ediciones y
// consultas. El stock no se modifica aquí salvo reposición explícita; los
// descuentos por venta pasan por el motor de ventas.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto. El SKU es único; un duplicado se reporta
// como conflicto.
func (uc *ProductUseCase) Create(createdBy string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateCreateProduct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		MinStock:      in.MinStock,
		Category:      in.Category,
		Brand:         in.Brand,
		ImageURL:      in.ImageURL,
		IsActive:      true,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		if err == domain.ErrDuplicate {
			return nil, fmt.Errorf("%w: ya existe un producto con SKU %s", domain.ErrConflict, product.SKU)
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por id.
func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente solo los activos.
func (uc *ProductUseCase) List(onlyActive bool, limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.productRepo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Products: out, Limit: limit, Offset: offset}, nil
}

// ListLowStock productos cuyo stock quedó en o bajo su mínimo.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update edita campos mutables de un producto. SKU y stock no se tocan aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
		}
		product.MinStock = *in.MinStock
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, fmt.Errorf("%w: categoría inválida %s", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Operaciones de UpdateStock.
const (
	StockOpSet      = "set"
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"
)

// UpdateStock repone o ajusta el stock de un producto. set fija el valor,
// add repone, subtract retira (y falla con ErrInsufficientStock si dejaría
// el stock negativo). Los descuentos por venta no pasan por aquí.
func (uc *ProductUseCase) UpdateStock(id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	op := in.Operation
	if op == "" {
		op = StockOpSet
	}
	switch op {
	case StockOpSet:
		if in.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock_quantity no puede ser negativo", domain.ErrInvalidInput)
		}
	case StockOpAdd, StockOpSubtract:
		if in.StockQuantity <= 0 {
			return nil, fmt.Errorf("%w: stock_quantity debe ser un entero positivo", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: operation inválida %s", domain.ErrInvalidInput, op)
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var remaining int
	switch op {
	case StockOpAdd:
		remaining, err = uc.productRepo.AddStock(id, in.StockQuantity)
	case StockOpSubtract:
		remaining, err = uc.productRepo.DeductStock(id, in.StockQuantity)
	default:
		remaining, err = uc.productRepo.SetStock(id, in.StockQuantity)
	}
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ID: product.ID, Name: product.Name, StockQuantity: remaining}, nil
}

// Deactivate baja lógica: el producto deja de ser vendible pero conserva su
// historial en ventas ya emitidas.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.SetActive(id, false)
}

func validateCreateProduct(in dto.CreateProductRequest) error {
	if strings.TrimSpace(in.SKU) == "" {
		return fmt.Errorf("%w: sku es requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.MinStock < 0 {
		return fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if !entity.ValidCategory(in.Category) {
		return fmt.Errorf("%w: categoría inválida %s", domain.ErrInvalidInput, in.Category)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		Category:      p.Category,
		Brand:         p.Brand,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
