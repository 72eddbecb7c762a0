// Package access implementa el control de acceso por roles (RBAC) multi-tenant.
//
// Es un conjunto de funciones puras: no hace I/O ni guarda estado más allá de la
// tabla estática de permisos. Aplicar la decisión es responsabilidad del llamador.
package access

// Role nivel de privilegio de un usuario dentro de su organización.
type Role string

// Action categoría de operación que se intenta autorizar.
type Action string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// User es la vista del usuario que consume el control de acceso.
type User struct {
	ID    string
	Role  Role
	OrgID string
}

// permissionSet conjunto inmutable de acciones de un rol.
type permissionSet map[Action]struct{}

func newPermissionSet(actions ...Action) permissionSet {
	s := make(permissionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// rolePermissions se construye una sola vez al iniciar el proceso y no se expone.
var rolePermissions = map[Role]permissionSet{
	RoleAdmin:   newPermissionSet(ActionRead, ActionWrite, ActionDelete, ActionManage),
	RoleManager: newPermissionSet(ActionRead, ActionWrite),
	RoleViewer:  newPermissionSet(ActionRead),
}

var roleRank = map[Role]int{
	RoleAdmin:   3,
	RoleManager: 2,
	RoleViewer:  1,
}

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Valid informa si la acción es una de las conocidas.
func (a Action) Valid() bool {
	switch a {
	case ActionRead, ActionWrite, ActionDelete, ActionManage:
		return true
	}
	return false
}

// ParseRole convierte un string (p. ej. el claim del JWT) en Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Can decide si el usuario puede ejecutar la acción.
// targetOrgID vacío significa "sin organización destino"; si viene y difiere de la del
// usuario se niega siempre, antes de mirar el rol.
func Can(user User, action Action, targetOrgID string) bool {
	if targetOrgID != "" && user.OrgID != targetOrgID {
		return false
	}
	perms, ok := rolePermissions[user.Role]
	if !ok {
		return false
	}
	_, allowed := perms[action]
	return allowed
}

func CanRead(user User, targetOrgID string) bool   { return Can(user, ActionRead, targetOrgID) }
func CanWrite(user User, targetOrgID string) bool  { return Can(user, ActionWrite, targetOrgID) }
func CanDelete(user User, targetOrgID string) bool { return Can(user, ActionDelete, targetOrgID) }
func CanManage(user User, targetOrgID string) bool { return Can(user, ActionManage, targetOrgID) }

// HasHigherRole devuelve true si a tiene un rango MAYOR O IGUAL que b.
// Roles iguales devuelven true; quien necesite orden estricto debe comprobar a != b.
func HasHigherRole(a, b Role) bool {
	return roleRank[a] >= roleRank[b]
}

// CanUpdateRole decide si currentUser puede asignar targetRole a otro usuario.
// Solo un admin puede otorgar admin; manager y admin pueden otorgar manager o viewer.
func CanUpdateRole(currentUser User, targetRole Role) bool {
	if !targetRole.Valid() {
		return false
	}
	if targetRole == RoleAdmin {
		return currentUser.Role == RoleAdmin
	}
	return currentUser.Role == RoleAdmin || currentUser.Role == RoleManager
}
