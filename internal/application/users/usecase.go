// Package users administración de usuarios del sistema: listado, cambio de
// rol y activación/desactivación. Toda la superficie es solo-admin; el alta
// sigue siendo idempotente en el primer acceso autenticado.
package users

import (
	"fmt"
	"time"

	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// UserAdminUseCase casos de uso de administración de usuarios.
type UserAdminUseCase struct {
	userRepo repository.UserRepository
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(userRepo repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{userRepo: userRepo}
}

// List lista usuarios paginados.
func (uc *UserAdminUseCase) List(limit, offset int) ([]dto.UserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Get obtiene un usuario por id.
func (uc *UserAdminUseCase) Get(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// UpdateRole cambia el rol de un usuario. Los roles válidos son admin y
// vendedor; todo usuario nace vendedor y la promoción pasa por aquí.
func (uc *UserAdminUseCase) UpdateRole(id string, role string) (*dto.UserResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleVendedor {
		return nil, fmt.Errorf("%w: rol inválido %s", domain.ErrInvalidInput, role)
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SetActive activa o desactiva un usuario. Un usuario desactivado conserva
// sus ventas pero no puede iniciar sesión ni vender.
func (uc *UserAdminUseCase) SetActive(id string, active bool) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
