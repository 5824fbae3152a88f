package usecase

import (
	"testing"

	"libraryapi/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanBorrow(t *testing.T) {
	assert.True(t, CanBorrow(entity.Identity{ID: "m", Role: entity.RoleMember}))
	assert.True(t, CanBorrow(entity.Identity{ID: "l", Role: entity.RoleLibrarian}))
	assert.False(t, CanBorrow(entity.Identity{ID: "a", Role: entity.RoleAdmin}))
	assert.False(t, CanBorrow(entity.Identity{}))
}

func TestCanReturn(t *testing.T) {
	rec := entity.BorrowRecord{ID: "r1", BookID: "b1", MemberID: "m1"}

	assert.True(t, CanReturn(entity.Identity{ID: "m1", Role: entity.RoleMember}, rec))
	assert.False(t, CanReturn(entity.Identity{ID: "m2", Role: entity.RoleMember}, rec))
	assert.True(t, CanReturn(entity.Identity{ID: "l1", Role: entity.RoleLibrarian}, rec))
	assert.True(t, CanReturn(entity.Identity{ID: "a1", Role: entity.RoleAdmin}, rec))
	assert.False(t, CanReturn(entity.Identity{}, rec))
}

func TestCanManageCatalog(t *testing.T) {
	assert.True(t, CanManageCatalog(entity.Identity{Role: entity.RoleLibrarian}))
	assert.True(t, CanManageCatalog(entity.Identity{Role: entity.RoleAdmin}))
	assert.False(t, CanManageCatalog(entity.Identity{Role: entity.RoleMember}))
	assert.False(t, CanManageCatalog(entity.Identity{}))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(entity.RoleAdmin))
	assert.True(t, ValidRole(entity.RoleLibrarian))
	assert.True(t, ValidRole(entity.RoleMember))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superuser"))
}
