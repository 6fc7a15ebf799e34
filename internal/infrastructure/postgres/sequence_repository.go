package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores monotónicos sobre la tabla sale_sequences. El
// UPDATE bloquea la fila del contador hasta el commit, así dos transacciones
// concurrentes se serializan y nunca repiten un valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de contadores. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextValue incrementa el contador y devuelve el valor resultante, o
// ErrNotFound si el contador aún no fue sembrado.
func (r *SequenceRepo) NextValue(name string) (int64, error) {
	query := `UPDATE sale_sequences SET value = value + 1 WHERE name = $1 RETURNING value`
	var value int64
	err := r.q.QueryRow(context.Background(), query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("next sequence value: %w", err)
	}
	return value, nil
}

// Seed crea el contador con el valor dado. Si otro proceso lo sembró primero
// el ON CONFLICT incrementa el existente, de modo que el valor devuelto sigue
// siendo único.
func (r *SequenceRepo) Seed(name string, value int64) (int64, error) {
	query := `
		INSERT INTO sale_sequences (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = sale_sequences.value + 1
		RETURNING value`
	var out int64
	if err := r.q.QueryRow(context.Background(), query, name, value).Scan(&out); err != nil {
		return 0, fmt.Errorf("seed sequence: %w", err)
	}
	return out, nil
}
