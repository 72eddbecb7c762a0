package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual de un producto en una bodega.
// Se crea con el primer movimiento del par (producto, bodega) y nunca se elimina implícitamente.
type Stock struct {
	OrgID       string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
