package repository

import (
	"time"

	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByFirebaseUID(uid string) (*entity.User, error)
	Update(user *entity.User) error
	TouchLastLogin(id string, at time.Time) error
	List(limit, offset int) ([]*entity.User, error)
}
