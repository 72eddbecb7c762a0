package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación aceptados por RegisterMovementUseCase.
const (
	OperationMovement = "movement"
	OperationTransfer = "transfer"
	OperationSet      = "set"
)

// StockMovementRequest body para POST /api/stock/movements.
type StockMovementRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	QtyChange   decimal.Decimal `json:"qty_change"`
	Reason      string          `json:"reason"` // in, out, transfer, adjust
	Note        string          `json:"note,omitempty"`
}

// StockTransferRequest body para POST /api/stock/transfers.
type StockTransferRequest struct {
	ProductID       string          `json:"product_id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Note            string          `json:"note,omitempty"`
}

// SetQuantityRequest body para PUT /api/stock/quantity (conteo físico).
type SetQuantityRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	QtyChange   decimal.Decimal `json:"qty_change"`
	Reason      string          `json:"reason"`
	Note        string          `json:"note"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items      []StockMovementResponse `json:"items"`
	Pagination Pagination              `json:"pagination"`
}

// WarehouseStockDTO cantidad en una bodega.
type WarehouseStockDTO struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ProductStockDTO producto con su stock por bodega y total.
type ProductStockDTO struct {
	ProductID     string              `json:"product_id"`
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	Unit          string              `json:"unit"`
	MinStock      decimal.Decimal     `json:"min_stock"`
	Stocks        []WarehouseStockDTO `json:"stocks"`
	TotalQuantity decimal.Decimal     `json:"totalQuantity"`
	IsLowStock    bool                `json:"isLowStock"`
	Status        string              `json:"status"` // out, low, normal
}

// StockListResponse listado paginado del stock.
type StockListResponse struct {
	Items      []ProductStockDTO `json:"items"`
	Pagination Pagination        `json:"pagination"`
}

// ReconcileMismatchDTO registro cuyo stock no coincide con la suma de sus movimientos.
type ReconcileMismatchDTO struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MovementSum decimal.Decimal `json:"movement_sum"`
	Difference  decimal.Decimal `json:"difference"`
}
