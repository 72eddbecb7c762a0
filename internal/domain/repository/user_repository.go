package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/access"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRole(ctx context.Context, id string, role access.Role) error
	ListByOrg(ctx context.Context, orgID string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
