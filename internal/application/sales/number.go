package sales

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

const (
	saleNumberPrefix = "V-"
	saleNumberDigits = 6
	saleSequenceName = "sale_number"
)

// NumberAllocator asigna consecutivos V-NNNNNN. El valor sale de un contador
// dedicado cuyo incremento bloquea la fila, de modo que dos ventas
// concurrentes jamás reciben el mismo número. Debe invocarse dentro de la
// misma transacción que persiste la venta: si la venta se descarta, el
// incremento también.
type NumberAllocator struct{}

// Allocate devuelve el siguiente número de venta. La primera vez siembra el
// contador a partir de la venta más reciente (V-000001 si no hay ninguna);
// un sale_number almacenado que no parsea como V-<dígitos> detiene la
// asignación con ErrCorruptSequence en vez de arriesgar un duplicado.
func (NumberAllocator) Allocate(saleRepo repository.SaleRepository, seqRepo repository.SequenceRepository) (string, error) {
	n, err := seqRepo.NextValue(saleSequenceName)
	if errors.Is(err, domain.ErrNotFound) {
		seed := int64(1)
		last, lerr := saleRepo.LastNumber()
		switch {
		case errors.Is(lerr, domain.ErrNotFound):
			// sin ventas previas: arranca en V-000001
		case lerr != nil:
			return "", lerr
		default:
			v, perr := parseSaleNumber(last)
			if perr != nil {
				return "", perr
			}
			seed = v + 1
		}
		n, err = seqRepo.Seed(saleSequenceName, seed)
	}
	if err != nil {
		return "", err
	}
	return formatSaleNumber(n), nil
}

func formatSaleNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", saleNumberPrefix, saleNumberDigits, n)
}

func parseSaleNumber(s string) (int64, error) {
	raw, ok := strings.CutPrefix(s, saleNumberPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: sale_number %q", domain.ErrCorruptSequence, s)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: sale_number %q", domain.ErrCorruptSequence, s)
	}
	return n, nil
}
