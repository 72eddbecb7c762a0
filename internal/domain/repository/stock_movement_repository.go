package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial de movimientos.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Limit       int
	Offset      int
}

// StockKey identifica un registro de stock.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// StockMovementRepository define el puerto de persistencia para movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve la página pedida (más recientes primero) y el total que cumple el filtro.
	List(ctx context.Context, orgID string, filter MovementFilter) ([]*entity.StockMovement, int, error)
	// SumByKey suma qty_change por (producto, bodega) para la organización.
	SumByKey(ctx context.Context, orgID string) (map[StockKey]decimal.Decimal, error)
}
