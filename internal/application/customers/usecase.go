// Package customers consulta y mantiene la ficha de clientes. El alta puede
// ser directa o implícita dentro de una venta (buscar-o-crear por DNI); aquí
// también se consulta el historial de compras de cada cliente.
package customers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, saleRepo: saleRepo}
}

// Create da de alta un cliente de forma directa. El DNI es único; un
// duplicado se reporta como conflicto.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.DNI = strings.TrimSpace(in.DNI)
	in.Name = strings.TrimSpace(in.Name)
	if in.DNI == "" {
		return nil, fmt.Errorf("%w: dni es requerido", domain.ErrInvalidInput)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	customerType := in.CustomerType
	if customerType == "" {
		customerType = entity.CustomerTypeIndividual
	}
	if customerType != entity.CustomerTypeIndividual && customerType != entity.CustomerTypeBusiness {
		return nil, fmt.Errorf("%w: customer_type inválido %s", domain.ErrInvalidInput, customerType)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		DNI:          in.DNI,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		CustomerType: customerType,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		if err == domain.ErrDuplicate {
			return nil, fmt.Errorf("%w: ya existe un cliente con DNI %s", domain.ErrConflict, in.DNI)
		}
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get obtiene un cliente por id.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// GetByDNI obtiene un cliente por su documento.
func (uc *CustomerUseCase) GetByDNI(dni string) (*dto.CustomerResponse, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" {
		return nil, fmt.Errorf("%w: dni es requerido", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByDNI(dni)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]dto.CustomerResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	customers, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update edita la ficha. El DNI es clave natural y no se modifica.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.CustomerType != nil {
		if *in.CustomerType != entity.CustomerTypeIndividual && *in.CustomerType != entity.CustomerTypeBusiness {
			return nil, fmt.Errorf("%w: customer_type inválido %s", domain.ErrInvalidInput, *in.CustomerType)
		}
		customer.CustomerType = *in.CustomerType
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Deactivate baja lógica: el cliente deja de aparecer en altas nuevas pero
// conserva su historial de compras.
func (uc *CustomerUseCase) Deactivate(id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.SetActive(id, false)
}

// Sales historial de compras del cliente, con los mismos filtros de fecha y
// estado que el listado general de ventas.
func (uc *CustomerUseCase) Sales(id string, filter repository.SaleFilter, page dto.PageRequest) (*dto.ListSalesResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	page.Normalize()
	filter.CustomerID = customer.ID
	rows, total, err := uc.saleRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.ListSalesResponse{
		Sales:       make([]dto.SaleSummary, 0, len(rows)),
		Total:       total,
		TotalPages:  (total + page.Limit - 1) / page.Limit,
		CurrentPage: page.Page,
	}
	for _, row := range rows {
		out.Sales = append(out.Sales, dto.SaleSummary{
			ID:            row.Sale.ID,
			SaleNumber:    row.Sale.SaleNumber,
			CustomerDNI:   row.CustomerDNI,
			CustomerName:  row.CustomerName,
			SellerName:    row.SellerName,
			TotalAmount:   row.Sale.TotalAmount,
			PaymentMethod: row.Sale.PaymentMethod,
			Status:        row.Sale.Status,
			ItemCount:     row.ItemCount,
			CreatedAt:     row.Sale.CreatedAt,
		})
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		DNI:          c.DNI,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		CustomerType: c.CustomerType,
		IsActive:     c.IsActive,
	}
}
