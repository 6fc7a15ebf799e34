package sales

import (
	"context"

	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
)

// ReceiptData datos ya materializados para renderizar el comprobante.
type ReceiptData struct {
	Sale *dto.SaleResponse
}

// ReceiptGenerator puerto de renderizado del comprobante PDF.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data *ReceiptData) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de una venta existente. Es solo
// lectura: no participa de la transacción de creación.
type ReceiptUseCase struct {
	queries   *SaleQueryUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(queries *SaleQueryUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{queries: queries, generator: generator}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Generate(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.queries.Get(saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateReceipt(ctx, &ReceiptData{Sale: sale})
	if err != nil {
		return nil, "", err
	}
	return pdf, "comprobante-" + sale.SaleNumber + ".pdf", nil
}
