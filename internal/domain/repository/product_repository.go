package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByOrgAndCode(ctx context.Context, orgID, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ListByOrg lista productos por organización; productType vacío no filtra.
	ListByOrg(ctx context.Context, orgID, productType string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
