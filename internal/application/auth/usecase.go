// Package auth intercambia el ID token del proveedor de identidad por un
// token de sesión propio. No valida credenciales: eso es del proveedor.
package auth

import (
	"context"
	"time"

	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
	"github.com/tu-usuario/punto-venta/pkg/jwt"
)

// JWTConfig configuración para la emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase verifica el ID token externo, resuelve (o crea) el usuario y
// emite el token de sesión de la aplicación.
type AuthUseCase struct {
	verifier identity.TokenVerifier
	resolver *identity.Resolver
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(verifier identity.TokenVerifier, resolver *identity.Resolver, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{verifier: verifier, resolver: resolver, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica el ID token contra el proveedor, hace el upsert del usuario
// y devuelve token de sesión + usuario. Usuarios desactivados no entran.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.IDToken == "" {
		return nil, domain.ErrInvalidInput
	}
	principal, err := uc.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, _, err := uc.resolver.Resolve(uc.userRepo, *principal)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	_ = uc.userRepo.TouchLastLogin(user.ID, time.Now()) // best effort

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Me devuelve el usuario del token de sesión.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}
