package users_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/punto-venta/internal/application/users"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// memUserRepo fake mínimo indexado por id.
type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}}
}

func (r *memUserRepo) add(id, name, role string, active bool) {
	r.byID[id] = &entity.User{
		ID: id, FirebaseUID: "uid-" + id, Name: name,
		Role: role, IsActive: active, CreatedAt: time.Now(),
	}
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.byID[u.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByFirebaseUID(uid string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) TouchLastLogin(id string, at time.Time) error { return nil }

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// Promoción: un vendedor pasa a admin y el cambio queda persistido.
func TestUpdateRole_PromocionAAdmin(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ana Vendedora", entity.RoleVendedor, true)
	uc := users.NewUserAdminUseCase(repo)

	out, err := uc.UpdateRole("u1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, entity.RoleAdmin, repo.byID["u1"].Role)
}

// Solo admin y vendedor son roles válidos.
func TestUpdateRole_RolInvalido(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ana Vendedora", entity.RoleVendedor, true)
	uc := users.NewUserAdminUseCase(repo)

	_, err := uc.UpdateRole("u1", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.RoleVendedor, repo.byID["u1"].Role, "el rol no cambia")
}

func TestUpdateRole_UsuarioInexistente(t *testing.T) {
	uc := users.NewUserAdminUseCase(newMemUserRepo())

	_, err := uc.UpdateRole("no-existe", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Desactivar conserva la fila; el usuario solo pierde acceso.
func TestSetActive_Desactivacion(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ana Vendedora", entity.RoleVendedor, true)
	uc := users.NewUserAdminUseCase(repo)

	out, err := uc.SetActive("u1", false)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	require.Contains(t, repo.byID, "u1")
	assert.False(t, repo.byID["u1"].IsActive)

	// y la reactivación lo devuelve
	out, err = uc.SetActive("u1", true)
	require.NoError(t, err)
	assert.True(t, out.IsActive)
}

func TestListUsers(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ana Vendedora", entity.RoleVendedor, true)
	repo.add("u2", "Luis Admin", entity.RoleAdmin, true)
	uc := users.NewUserAdminUseCase(repo)

	out, err := uc.List(50, 0)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
