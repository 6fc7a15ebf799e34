// Package sales contiene el motor de ventas: creación transaccional de la
// venta (validación de stock, consecutivo, cliente, vendedor, persistencia y
// descuento como una sola unidad atómica) y las consultas de solo lectura.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// CreateSaleUseCase crea una venta y descuenta el inventario en una sola
// transacción. Orden del protocolo: validar entrada, validar stock de TODAS
// las líneas, calcular total, asignar consecutivo, resolver vendedor y
// cliente, persistir cabecera y líneas, descontar stock, commit. Cualquier
// error entre el chequeo de stock y el descuento descarta todo: ni venta, ni
// líneas, ni mutación de stock, ni cliente/usuario nuevo.
type CreateSaleUseCase struct {
	txRunner  TxRunner
	ledger    Ledger
	sellers   SellerResolver
	allocator NumberAllocator
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, ledger Ledger, sellers SellerResolver) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		sellers:  sellers,
	}
}

// aggregatedItem cantidad total pedida de un producto dentro de la venta.
// El mismo producto puede aparecer en varias líneas; el chequeo de stock se
// hace sobre la suma para no sub-validar.
type aggregatedItem struct {
	productID string
	quantity  int
}

// CreateSale ejecuta el protocolo completo y devuelve la venta materializada.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, seller identity.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateCreateSale(in); err != nil {
		return nil, err
	}
	perProduct := aggregateQuantities(in.Items)
	now := time.Now()

	var out *dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		userRepo repository.UserRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error {
		// 1) Validar stock de todas las líneas antes de mutar nada. Las filas
		// de producto quedan bloqueadas hasta el commit.
		products := make(map[string]*entity.Product, len(perProduct))
		for _, ai := range perProduct {
			product, err := uc.ledger.CheckAvailability(productRepo, ai.productID, ai.quantity)
			if err != nil {
				return err
			}
			products[ai.productID] = product
		}

		// 2) Total y líneas preparadas. UnitPrice es la foto del precio actual.
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			product := products[it.ProductID]
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, &entity.SaleItem{
				ID:         uuid.New().String(),
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal,
			})
		}

		// 3) Consecutivo de venta (serializado por el contador).
		number, err := uc.allocator.Allocate(saleRepo, seqRepo)
		if err != nil {
			return err
		}

		// 4) Vendedor: upsert idempotente por uid del proveedor de identidad.
		sellerUser, _, err := uc.sellers.Resolve(userRepo, seller)
		if err != nil {
			return err
		}

		// 5) Cliente: find-or-create por DNI, gana la primera escritura del nombre.
		customer, _, err := resolveCustomer(customerRepo, in.CustomerDNI, in.CustomerName, now)
		if err != nil {
			return err
		}

		// 6) Cabecera y líneas.
		sale := &entity.Sale{
			ID:            uuid.New().String(),
			SaleNumber:    number,
			CustomerID:    customer.ID,
			SoldBy:        sellerUser.ID,
			TotalAmount:   total,
			PaymentMethod: in.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrConflict // consecutivo en disputa: reintentar la venta completa
			}
			return err
		}
		for _, item := range items {
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// 7) Descontar stock, una vez por línea.
		for _, item := range items {
			if _, err := uc.ledger.Deduct(productRepo, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		out = buildSaleResponse(sale, items, products, customer, sellerUser)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validateCreateSale valida la entrada antes de abrir la transacción.
func validateCreateSale(in dto.CreateSaleRequest) error {
	if strings.TrimSpace(in.CustomerDNI) == "" {
		return fmt.Errorf("%w: customer_dni es requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name es requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: payment_method %q no es válido", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la venta debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: cada item debe incluir product_id", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrInvalidInput)
		}
	}
	return nil
}

// aggregateQuantities suma cantidades por producto preservando el orden de
// primera aparición.
func aggregateQuantities(items []dto.SaleItemRequest) []aggregatedItem {
	index := make(map[string]int, len(items))
	out := make([]aggregatedItem, 0, len(items))
	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			out[i].quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, aggregatedItem{productID: it.ProductID, quantity: it.Quantity})
	}
	return out
}

// resolveCustomer busca el cliente por DNI y lo crea si no existe. Si ya
// existe, el nombre recibido se ignora (política deliberada: la primera
// escritura gana y el historial no se reescribe).
func resolveCustomer(customerRepo repository.CustomerRepository, dni, name string, now time.Time) (*entity.Customer, bool, error) {
	customer, err := customerRepo.GetByDNI(dni)
	if err != nil {
		return nil, false, err
	}
	if customer != nil {
		return customer, false, nil
	}
	customer = &entity.Customer{
		ID:           uuid.New().String(),
		DNI:          dni,
		Name:         name,
		CustomerType: entity.CustomerTypeIndividual,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := customerRepo.Create(customer); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, false, domain.ErrConflict
		}
		return nil, false, err
	}
	return customer, true, nil
}

func buildSaleResponse(
	sale *entity.Sale,
	items []*entity.SaleItem,
	products map[string]*entity.Product,
	customer *entity.Customer,
	seller *entity.User,
) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		SaleNumber:    sale.SaleNumber,
		CustomerID:    customer.ID,
		CustomerDNI:   customer.DNI,
		CustomerName:  customer.Name,
		SellerID:      seller.ID,
		SellerName:    seller.Name,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		product := products[item.ProductID]
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}
