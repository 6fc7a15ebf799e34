package dto

import "time"

// LoginRequest body para POST /api/auth/login: el ID token emitido por el
// proveedor de identidad, que se intercambia por un token de sesión propio.
type LoginRequest struct {
	IDToken string `json:"id_token"`
}

// UserResponse usuario en respuestas.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UpdateRoleRequest body para PATCH /api/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserStatusRequest body para PATCH /api/users/:id/status.
type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// LoginResponse token de sesión + usuario resuelto.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
