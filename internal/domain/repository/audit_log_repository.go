package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AuditLogRepository bitácora de cambios administrativos (solo inserción).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	ListByOrg(ctx context.Context, orgID string, limit, offset int) ([]*entity.AuditLog, error)
}
