package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora de auditoría.
const (
	AuditMemberAdded       = "member.added"
	AuditMemberRoleUpdated = "member.role_updated"
	AuditMemberRemoved     = "member.removed"
	AuditOrgCreated        = "organization.created"
	AuditOrgRenamed        = "organization.renamed"
)

// AuditLog registra un cambio administrativo hecho por un usuario dentro de una organización.
type AuditLog struct {
	ID         string
	OrgID      string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Meta       json.RawMessage
	CreatedAt  time.Time
}
