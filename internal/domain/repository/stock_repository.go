package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Las mutaciones se hacen dentro de transacciones: Lock serializa el par hasta el fin de la tx.
type StockRepository interface {
	// Lock adquiere un bloqueo exclusivo sobre el par (producto, bodega) hasta el commit o rollback.
	Lock(ctx context.Context, productID, warehouseID string) error
	// Get devuelve nil, nil si el par no tiene registro.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.Stock, error)
}
