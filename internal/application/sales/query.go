package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// SaleQueryUseCase consultas de solo lectura sobre ventas confirmadas:
// listado paginado con filtros, detalle completo y estadísticas agregadas.
type SaleQueryUseCase struct {
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	userRepo      repository.UserRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	analyticsRepo repository.AnalyticsRepository,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
	}
}

// List devuelve la página de ventas que cumplen el filtro, más metadatos de
// paginación en el formato del frontend (total, total_pages, current_page).
func (uc *SaleQueryUseCase) List(filter repository.SaleFilter, page dto.PageRequest) (*dto.ListSalesResponse, error) {
	page.Normalize()
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

// Get devuelve el detalle completo de una venta: líneas con producto,
// cliente y vendedor.
func (uc *SaleQueryUseCase) Get(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.saleRepo.ItemsBySale(sale.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		SaleNumber:    sale.SaleNumber,
		CustomerID:    sale.CustomerID,
		SellerID:      sale.SoldBy,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          d.Item.ID,
			ProductID:   d.Item.ProductID,
			ProductName: d.ProductName,
			ProductSKU:  d.ProductSKU,
			Quantity:    d.Item.Quantity,
			UnitPrice:   d.Item.UnitPrice,
			TotalPrice:  d.Item.TotalPrice,
		})
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		resp.CustomerDNI = customer.DNI
		resp.CustomerName = customer.Name
	}
	seller, err := uc.userRepo.GetByID(sale.SoldBy)
	if err != nil {
		return nil, err
	}
	if seller != nil {
		resp.SellerName = seller.Name
	}
	return resp, nil
}

// Stats agrega ventas del rango: conteo, ingresos, ticket promedio y
// desglose por método de pago. Con cero ventas todo vale cero (sin división
// por cero).
func (uc *SaleQueryUseCase) Stats(ctx context.Context, start, end *time.Time) (*dto.SalesStatsResponse, error) {
	count, revenue, err := uc.analyticsRepo.SalesTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byPayment, err := uc.analyticsRepo.SalesByPayment(ctx, start, end)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(count)).Round(2)
	}
	out := &dto.SalesStatsResponse{
		TotalSales:     count,
		TotalRevenue:   revenue,
		AvgSaleValue:   avg,
		SalesByPayment: make([]dto.PaymentMethodStats, 0, len(byPayment)),
	}
	for _, b := range byPayment {
		out.SalesByPayment = append(out.SalesByPayment, dto.PaymentMethodStats{
			PaymentMethod: b.PaymentMethod,
			Count:         b.Count,
			Total:         b.Total,
		})
	}
	return out, nil
}
