package inventory

import "github.com/shopspring/decimal"

// Status clasificación del stock total de un producto frente a su mínimo.
type Status string

const (
	StatusOut    Status = "out"
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
)

// StockStatus clasifica la cantidad: 0 es agotado, hasta minStock es bajo, por encima es normal.
func StockStatus(quantity, minStock decimal.Decimal) Status {
	switch {
	case quantity.IsZero():
		return StatusOut
	case quantity.LessThanOrEqual(minStock):
		return StatusLow
	default:
		return StatusNormal
	}
}

// IsLowStock indica si la cantidad está en o por debajo del mínimo (incluye agotado).
func IsLowStock(quantity, minStock decimal.Decimal) bool {
	return quantity.LessThanOrEqual(minStock)
}

// StockValue valoriza una cantidad a precio por unidad, redondeado a 2 decimales.
func StockValue(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}
