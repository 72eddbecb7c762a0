package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora de auditoría sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada. Meta se guarda como jsonb.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	meta := l.Meta
	if len(meta) == 0 {
		meta = []byte("{}")
	}
	query := `
		INSERT INTO audit_logs (id, org_id, actor_id, action, entity_type, entity_id, meta, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrgID, l.ActorID, l.Action, l.EntityType, l.EntityID, string(meta), l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByOrg entradas más recientes primero.
func (r *AuditLogRepo) ListByOrg(ctx context.Context, orgID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, org_id, COALESCE(actor_id::text, ''), action, entity_type, entity_id, meta::text, created_at
		FROM audit_logs WHERE org_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var (
			l    entity.AuditLog
			meta string
		)
		if err := rows.Scan(&l.ID, &l.OrgID, &l.ActorID, &l.Action, &l.EntityType, &l.EntityID, &meta, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		l.Meta = []byte(meta)
		list = append(list, &l)
	}
	return list, rows.Err()
}
