package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de la venta entrante: producto y cantidad.
// El precio nunca viene del cliente; se toma del producto al momento de vender.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerDNI   string            `json:"customer_dni"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items"`
	Notes         string            `json:"notes,omitempty"`
}

// SaleItemResponse línea de venta en respuestas, con datos del producto.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse venta materializada con líneas, cliente y vendedor.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	CustomerID    string             `json:"customer_id"`
	CustomerDNI   string             `json:"customer_dni"`
	CustomerName  string             `json:"customer_name"`
	SellerID      string             `json:"seller_id"`
	SellerName    string             `json:"seller_name,omitempty"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleSummary fila de listado (sin líneas completas).
type SaleSummary struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerDNI   string          `json:"customer_dni"`
	CustomerName  string          `json:"customer_name"`
	SellerName    string          `json:"seller_name,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListSalesResponse respuesta paginada de GET /api/sales.
type ListSalesResponse struct {
	Sales       []SaleSummary `json:"sales"`
	Total       int           `json:"total"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// PaymentMethodStats agregado por método de pago.
type PaymentMethodStats struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// SalesStatsResponse respuesta de GET /api/sales/stats.
// AvgSaleValue es 0 cuando no hay ventas (sin división por cero).
type SalesStatsResponse struct {
	TotalSales     int64                `json:"total_sales"`
	TotalRevenue   decimal.Decimal      `json:"total_revenue"`
	AvgSaleValue   decimal.Decimal      `json:"avg_sale_value"`
	SalesByPayment []PaymentMethodStats `json:"sales_by_payment"`
}
