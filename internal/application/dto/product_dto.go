package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos opcionales;
// SKU es inmutable y el stock solo cambia vía ventas o reposición.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// UpdateStockRequest body para PATCH /api/products/:id/stock. operation
// acepta set (default), add y subtract.
type UpdateStockRequest struct {
	StockQuantity int    `json:"stock_quantity"`
	Operation     string `json:"operation,omitempty"`
}

// StockResponse stock resultante tras una reposición o ajuste.
type StockResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
