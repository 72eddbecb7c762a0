package entity

import (
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/access"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema. Pertenece a exactamente una organización.
type User struct {
	ID           string
	OrgID        string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         access.Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessUser proyecta el usuario al modelo de control de acceso.
func (u *User) AccessUser() access.User {
	return access.User{ID: u.ID, Role: u.Role, OrgID: u.OrgID}
}
