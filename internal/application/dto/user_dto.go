package dto

import "time"

// SignUpRequest entrada para registrar una organización nueva con su administrador.
type SignUpRequest struct {
	OrgName  string `json:"org_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// AddMemberRequest entrada para agregar un miembro a la organización.
type AddMemberRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin manager viewer"`
}

// UpdateMemberRoleRequest entrada para cambiar el rol de un miembro.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager viewer"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberListResponse miembros de una organización.
type MemberListResponse struct {
	Items []UserResponse `json:"items"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SignUpResponse salida del registro: token, usuario y organización creada.
type SignUpResponse struct {
	Token              string       `json:"token"`
	User               UserResponse `json:"user"`
	OrgID              string       `json:"org_id"`
	DefaultWarehouseID string       `json:"default_warehouse_id"`
}
