package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/domain/access"
)

var (
	allRoles   = []access.Role{access.RoleAdmin, access.RoleManager, access.RoleViewer}
	allActions = []access.Action{access.ActionRead, access.ActionWrite, access.ActionDelete, access.ActionManage}
)

func userWith(role access.Role) access.User {
	return access.User{ID: "u-1", Role: role, OrgID: "org-1"}
}

func TestCan_TablaDePermisos(t *testing.T) {
	expected := map[access.Role]map[access.Action]bool{
		access.RoleAdmin:   {access.ActionRead: true, access.ActionWrite: true, access.ActionDelete: true, access.ActionManage: true},
		access.RoleManager: {access.ActionRead: true, access.ActionWrite: true},
		access.RoleViewer:  {access.ActionRead: true},
	}
	for _, r := range allRoles {
		for _, a := range allActions {
			got := access.Can(userWith(r), a, "org-1")
			assert.Equal(t, expected[r][a], got, "rol=%s acción=%s", r, a)

			// sin organización destino se evalúa solo el rol
			assert.Equal(t, expected[r][a], access.Can(userWith(r), a, ""), "rol=%s acción=%s sin org", r, a)
		}
	}
}

func TestCan_OtraOrganizacionSiempreNiega(t *testing.T) {
	for _, r := range allRoles {
		for _, a := range allActions {
			assert.False(t, access.Can(userWith(r), a, "org-2"), "rol=%s acción=%s", r, a)
		}
	}
}

func TestCan_RolDesconocidoNiega(t *testing.T) {
	u := access.User{ID: "u", Role: access.Role("owner"), OrgID: "org-1"}
	assert.False(t, access.Can(u, access.ActionRead, "org-1"))
}

func TestWrappers(t *testing.T) {
	mgr := userWith(access.RoleManager)
	assert.True(t, access.CanRead(mgr, "org-1"))
	assert.True(t, access.CanWrite(mgr, "org-1"))
	assert.False(t, access.CanDelete(mgr, "org-1"))
	assert.False(t, access.CanManage(mgr, "org-1"))

	admin := userWith(access.RoleAdmin)
	assert.True(t, access.CanDelete(admin, "org-1"))
	assert.True(t, access.CanManage(admin, "org-1"))
	assert.False(t, access.CanManage(admin, "org-9"))
}

func TestHasHigherRole(t *testing.T) {
	assert.True(t, access.HasHigherRole(access.RoleAdmin, access.RoleManager))
	assert.False(t, access.HasHigherRole(access.RoleManager, access.RoleAdmin))
	assert.True(t, access.HasHigherRole(access.RoleManager, access.RoleViewer))
	assert.False(t, access.HasHigherRole(access.RoleViewer, access.RoleManager))

	// roles iguales cuentan como "mayor o igual"
	for _, r := range allRoles {
		assert.True(t, access.HasHigherRole(r, r), "rol=%s", r)
	}
}

func TestCanUpdateRole(t *testing.T) {
	admin := userWith(access.RoleAdmin)
	manager := userWith(access.RoleManager)
	viewer := userWith(access.RoleViewer)

	// solo admin puede otorgar admin
	for _, u := range []access.User{admin, manager, viewer} {
		assert.Equal(t, u.Role == access.RoleAdmin, access.CanUpdateRole(u, access.RoleAdmin), "actor=%s", u.Role)
	}

	assert.True(t, access.CanUpdateRole(admin, access.RoleManager))
	assert.True(t, access.CanUpdateRole(admin, access.RoleViewer))
	assert.True(t, access.CanUpdateRole(manager, access.RoleManager))
	assert.True(t, access.CanUpdateRole(manager, access.RoleViewer))

	// viewer nunca actualiza roles
	for _, r := range allRoles {
		assert.False(t, access.CanUpdateRole(viewer, r), "objetivo=%s", r)
	}

	assert.False(t, access.CanUpdateRole(admin, access.Role("root")))
}

func TestParseRole(t *testing.T) {
	r, ok := access.ParseRole("manager")
	assert.True(t, ok)
	assert.Equal(t, access.RoleManager, r)

	_, ok = access.ParseRole("bodeguero")
	assert.False(t, ok)

	assert.True(t, access.ActionManage.Valid())
	assert.False(t, access.Action("export").Valid())
}
