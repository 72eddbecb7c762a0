package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo movimientos de stock sobre PostgreSQL. Solo inserta; nunca actualiza ni borra.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, org_id, product_id, warehouse_id, qty_change, reason, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OrgID, m.ProductID, m.WarehouseID, m.QtyChange, m.Reason, m.Note, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List historial de la organización, más recientes primero, con el total para paginar.
func (r *StockMovementRepo) List(ctx context.Context, orgID string, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where := `org_id = $1 AND ($2 = '' OR product_id::text = $2) AND ($3 = '' OR warehouse_id::text = $3)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE `+where,
		orgID, f.ProductID, f.WarehouseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, org_id, product_id, warehouse_id, qty_change, reason, note, COALESCE(created_by::text, ''), created_at
		FROM stock_movements WHERE `+where+`
		ORDER BY created_at DESC, id DESC LIMIT $4 OFFSET $5`,
		orgID, f.ProductID, f.WarehouseID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OrgID, &m.ProductID, &m.WarehouseID, &m.QtyChange, &m.Reason, &m.Note, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// SumByKey suma qty_change por (producto, bodega).
func (r *StockMovementRepo) SumByKey(ctx context.Context, orgID string) (map[repository.StockKey]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, warehouse_id, SUM(qty_change)
		FROM stock_movements WHERE org_id = $1
		GROUP BY product_id, warehouse_id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("sum stock movements: %w", err)
	}
	defer rows.Close()
	sums := make(map[repository.StockKey]decimal.Decimal)
	for rows.Next() {
		var (
			key repository.StockKey
			sum decimal.Decimal
		)
		if err := rows.Scan(&key.ProductID, &key.WarehouseID, &sum); err != nil {
			return nil, fmt.Errorf("scan movement sum: %w", err)
		}
		sums[key] = sum
	}
	return sums, rows.Err()
}
