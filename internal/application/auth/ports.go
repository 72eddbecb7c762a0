package auth

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SignUpTxRunner crea organización, administrador, bodega por defecto y bitácora en una sola transacción.
type SignUpTxRunner interface {
	RunSignUp(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
		warehouseRepo repository.WarehouseRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
