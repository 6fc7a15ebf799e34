// Package identity mapea identidades del proveedor externo a filas de User.
// La verificación de credenciales vive en el proveedor; aquí solo se persiste
// el mapeo uid externo -> usuario, de forma idempotente.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// Principal identidad ya verificada por el proveedor externo.
type Principal struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier puerto hacia el proveedor de identidad.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Principal, error)
}

// Resolver upsert idempotente de usuarios por UID del proveedor.
type Resolver struct{}

// NewResolver construye el resolver.
func NewResolver() *Resolver { return &Resolver{} }

// Resolve busca el usuario por UID externo y lo crea con rol por defecto si
// no existe. Si dos peticiones compiten por crear el mismo usuario, la que
// pierde la carrera relee la fila ganadora.
func (r *Resolver) Resolve(userRepo repository.UserRepository, p Principal) (*entity.User, bool, error) {
	if p.UID == "" {
		return nil, false, domain.ErrInvalidInput
	}
	user, err := userRepo.GetByFirebaseUID(p.UID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	name := p.Name
	if name == "" {
		name = p.Email
	}
	now := time.Now()
	user = &entity.User{
		ID:          uuid.New().String(),
		FirebaseUID: p.UID,
		Email:       p.Email,
		Name:        name,
		Role:        entity.RoleVendedor,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := userRepo.Create(user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := userRepo.GetByFirebaseUID(p.UID)
			if gerr != nil {
				return nil, false, gerr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}
