package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema, mapeado 1:1 con una identidad del
// proveedor externo (FirebaseUID). La fila se crea de forma idempotente en el
// primer acceso autenticado.
type User struct {
	ID          string
	FirebaseUID string
	Email       string
	Name        string
	Role        string // admin | vendedor
	IsActive    bool
	LastLogin   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
