package sales

import (
	"context"

	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ventas:
// chequeo de stock, consecutivo, cliente, cabecera, líneas y descuento viven
// en la misma unidad y se confirman o descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		userRepo repository.UserRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// Ledger contrato del libro de existencias, ejecutado con los repositorios
// del caller (misma transacción). Si retorna error el caller hace rollback.
type Ledger interface {
	CheckAvailability(productRepo repository.ProductRepository, productID string, qty int) (*entity.Product, error)
	Deduct(productRepo repository.ProductRepository, productID string, qty int) (int, error)
}

// SellerResolver resuelve el vendedor a partir del principal autenticado,
// creando la fila de User si es el primer acceso.
type SellerResolver interface {
	Resolve(userRepo repository.UserRepository, p identity.Principal) (*entity.User, bool, error)
}
