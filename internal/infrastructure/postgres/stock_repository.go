package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Lock toma un advisory lock de transacción sobre el par; se libera con Commit o Rollback.
// Bloquea también pares que aún no tienen fila, cosa que SELECT FOR UPDATE no cubre.
func (r *StockRepo) Lock(ctx context.Context, productID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, stockLockKey(productID, warehouseID))
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	return nil
}

// Get obtiene el stock actual de un producto en una bodega; nil si no hay registro.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT org_id, product_id, warehouse_id, quantity, updated_at
		FROM stocks WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.OrgID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (org_id, product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, stock.OrgID, stock.ProductID, stock.WarehouseID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct lista el stock del producto en todas las bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	return r.list(ctx, `
		SELECT org_id, product_id, warehouse_id, quantity, updated_at
		FROM stocks WHERE product_id = $1 ORDER BY warehouse_id`, productID)
}

// ListByOrg lista todos los registros de stock de la organización.
func (r *StockRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.Stock, error) {
	return r.list(ctx, `
		SELECT org_id, product_id, warehouse_id, quantity, updated_at
		FROM stocks WHERE org_id = $1 ORDER BY product_id, warehouse_id`, orgID)
}

func (r *StockRepo) list(ctx context.Context, query string, arg string) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.OrgID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
