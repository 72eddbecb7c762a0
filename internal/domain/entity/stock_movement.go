package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de movimiento de inventario.
const (
	MovementReasonIn       = "in"       // entrada
	MovementReasonOut      = "out"      // salida
	MovementReasonTransfer = "transfer" // traslado entre bodegas
	MovementReasonAdjust   = "adjust"   // ajuste / conteo
)

// ValidMovementReason indica si reason es una de las razones admitidas.
func ValidMovementReason(reason string) bool {
	switch reason {
	case MovementReasonIn, MovementReasonOut, MovementReasonTransfer, MovementReasonAdjust:
		return true
	}
	return false
}

// StockMovement es una entrada inmutable del libro de movimientos.
// QtyChange nunca es cero: positivo suma, negativo resta.
type StockMovement struct {
	ID          string
	OrgID       string
	ProductID   string
	WarehouseID string
	QtyChange   decimal.Decimal
	Reason      string // in, out, transfer, adjust
	Note        string
	CreatedBy   string // UserID
	CreatedAt   time.Time
}
