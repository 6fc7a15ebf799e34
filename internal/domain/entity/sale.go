package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentWallet   = "wallet" // billetera móvil
)

// ValidPaymentMethod indica si el método pertenece al conjunto permitido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentWallet:
		return true
	}
	return false
}

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// Sale es la cabecera de una venta. SaleNumber es único, secuencial e
// inmutable una vez asignado. TotalAmount es derivado: siempre igual a la
// suma de los TotalPrice de sus líneas. Una venta nunca se persiste sin al
// menos una línea.
type Sale struct {
	ID            string
	SaleNumber    string // V-000001, V-000002, ...
	CustomerID    string
	SoldBy        string // usuario vendedor
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Status        string
	Notes         string
	CreatedAt     time.Time
}
