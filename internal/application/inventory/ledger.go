package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// CorrectionNote nota de los movimientos generados por SetAbsoluteQuantity.
const CorrectionNote = "Stock count correction"

// QuantityScale decimales que guardan las columnas NUMERIC(14,4) de stocks y stock_movements.
const QuantityScale = 4

// fitsScale indica si d se almacena sin redondeo; "1.50000" es válido, "0.00005" no.
func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(QuantityScale))
}

func scaleError(field string) error {
	return fmt.Errorf("%w: %s admite como máximo %d decimales", domain.ErrInvalidInput, field, QuantityScale)
}

// Ledger aplica cambios de cantidad sobre los registros de stock y deja el rastro en stock_movements.
// No verifica permisos: el llamador autoriza antes de invocarlo.
type Ledger struct {
	tx    TxRunner
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

// NewLedger construye el libro de stock.
func NewLedger(tx TxRunner, log zerolog.Logger) *Ledger {
	return &Ledger{
		tx:    tx,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// MovementInput entrada de ApplyMovement. QtyChange con signo, nunca cero.
type MovementInput struct {
	OrgID       string
	ProductID   string
	WarehouseID string
	QtyChange   decimal.Decimal
	Reason      string
	Note        string
	ActorID     string
}

// TransferInput entrada de Transfer. Quantity debe ser positiva.
type TransferInput struct {
	OrgID           string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Note            string
	ActorID         string
}

// AdjustInput entrada de SetAbsoluteQuantity (corrección por conteo físico).
type AdjustInput struct {
	OrgID       string
	ProductID   string
	WarehouseID string
	NewQuantity decimal.Decimal
	ActorID     string
}

// WarehouseQuantity cantidad de un producto en una bodega.
type WarehouseQuantity struct {
	WarehouseID string
	Quantity    decimal.Decimal
}

// ApplyMovement aplica un movimiento con signo al par (producto, bodega).
// Una salida mayor que la existencia falla con *domain.InsufficientStockError sin mutar nada.
func (l *Ledger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.QtyChange.IsZero() {
		return nil, fmt.Errorf("%w: qty_change no puede ser cero", domain.ErrInvalidInput)
	}
	if !fitsScale(in.QtyChange) {
		return nil, scaleError("qty_change")
	}
	if !entity.ValidMovementReason(in.Reason) {
		return nil, fmt.Errorf("%w: razón %q no válida", domain.ErrInvalidInput, in.Reason)
	}

	var mov *entity.StockMovement
	err := l.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		if err := stockRepo.Lock(ctx, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		current, err := currentQuantity(ctx, stockRepo, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if in.QtyChange.IsNegative() && in.QtyChange.Abs().GreaterThan(current) {
			return domain.NewInsufficientStock(current)
		}
		mov, err = l.write(ctx, stockRepo, movRepo, in, current.Add(in.QtyChange))
		return err
	})
	if err != nil {
		l.logFailure(err, in.ProductID, in.WarehouseID)
		return nil, err
	}

	l.log.Info().
		Str("org_id", in.OrgID).
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Str("qty_change", in.QtyChange.String()).
		Str("reason", in.Reason).
		Msg("movimiento registrado")
	return mov, nil
}

// Transfer mueve cantidad entre dos bodegas del mismo producto: dos movimientos espejo en una sola transacción.
func (l *Ledger) Transfer(ctx context.Context, in TransferInput) error {
	if in.FromWarehouseID == in.ToWarehouseID {
		return domain.ErrInvalidTransfer
	}
	if !in.Quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad a trasladar debe ser positiva", domain.ErrInvalidInput)
	}
	if !fitsScale(in.Quantity) {
		return scaleError("quantity")
	}

	err := l.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		// Orden fijo de bloqueo para que dos traslados opuestos no se bloqueen mutuamente.
		keys := []string{in.FromWarehouseID, in.ToWarehouseID}
		sort.Strings(keys)
		for _, wh := range keys {
			if err := stockRepo.Lock(ctx, in.ProductID, wh); err != nil {
				return err
			}
		}

		source, err := currentQuantity(ctx, stockRepo, in.ProductID, in.FromWarehouseID)
		if err != nil {
			return err
		}
		if source.LessThan(in.Quantity) {
			return domain.NewInsufficientStock(source)
		}
		dest, err := currentQuantity(ctx, stockRepo, in.ProductID, in.ToWarehouseID)
		if err != nil {
			return err
		}

		out := MovementInput{
			OrgID:       in.OrgID,
			ProductID:   in.ProductID,
			WarehouseID: in.FromWarehouseID,
			QtyChange:   in.Quantity.Neg(),
			Reason:      entity.MovementReasonTransfer,
			Note:        transferNote("Transfer to", in.ToWarehouseID, in.Note),
			ActorID:     in.ActorID,
		}
		if _, err := l.write(ctx, stockRepo, movRepo, out, source.Sub(in.Quantity)); err != nil {
			return err
		}
		inbound := MovementInput{
			OrgID:       in.OrgID,
			ProductID:   in.ProductID,
			WarehouseID: in.ToWarehouseID,
			QtyChange:   in.Quantity,
			Reason:      entity.MovementReasonTransfer,
			Note:        transferNote("Transfer from", in.FromWarehouseID, in.Note),
			ActorID:     in.ActorID,
		}
		_, err = l.write(ctx, stockRepo, movRepo, inbound, dest.Add(in.Quantity))
		return err
	})
	if err != nil {
		l.logFailure(err, in.ProductID, in.FromWarehouseID)
		return err
	}

	l.log.Info().
		Str("org_id", in.OrgID).
		Str("product_id", in.ProductID).
		Str("from_warehouse_id", in.FromWarehouseID).
		Str("to_warehouse_id", in.ToWarehouseID).
		Str("quantity", in.Quantity.String()).
		Msg("traslado registrado")
	return nil
}

// SetAbsoluteQuantity fija la cantidad tras un conteo físico. Registra un movimiento adjust por la diferencia;
// si la diferencia es cero no escribe nada y devuelve nil, nil.
func (l *Ledger) SetAbsoluteQuantity(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.NewQuantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if !fitsScale(in.NewQuantity) {
		return nil, scaleError("new_quantity")
	}

	var mov *entity.StockMovement
	err := l.tx.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		if err := stockRepo.Lock(ctx, in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		current, err := currentQuantity(ctx, stockRepo, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		delta := in.NewQuantity.Sub(current)
		if delta.IsZero() {
			return nil
		}
		mov, err = l.write(ctx, stockRepo, movRepo, MovementInput{
			OrgID:       in.OrgID,
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			QtyChange:   delta,
			Reason:      entity.MovementReasonAdjust,
			Note:        CorrectionNote,
			ActorID:     in.ActorID,
		}, in.NewQuantity)
		return err
	})
	if err != nil {
		l.logFailure(err, in.ProductID, in.WarehouseID)
		return nil, err
	}
	if mov != nil {
		l.log.Info().
			Str("org_id", in.OrgID).
			Str("product_id", in.ProductID).
			Str("warehouse_id", in.WarehouseID).
			Str("qty_change", mov.QtyChange.String()).
			Msg("conteo de stock corregido")
	}
	return mov, nil
}

// ListStockForProduct devuelve la cantidad del producto en cada bodega con registro.
func (l *Ledger) ListStockForProduct(ctx context.Context, productID string) ([]WarehouseQuantity, error) {
	var levels []WarehouseQuantity
	err := l.tx.Run(ctx, func(stockRepo repository.StockRepository, _ repository.StockMovementRepository) error {
		stocks, err := stockRepo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		levels = make([]WarehouseQuantity, 0, len(stocks))
		for _, s := range stocks {
			levels = append(levels, WarehouseQuantity{WarehouseID: s.WarehouseID, Quantity: s.Quantity})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// TotalQuantity suma las cantidades de todas las bodegas.
func TotalQuantity(levels []WarehouseQuantity) decimal.Decimal {
	total := decimal.Zero
	for _, lv := range levels {
		total = total.Add(lv.Quantity)
	}
	return total
}

// write persiste la nueva cantidad y el movimiento; se invoca siempre dentro de la tx y con el par bloqueado.
func (l *Ledger) write(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	in MovementInput,
	newQty decimal.Decimal,
) (*entity.StockMovement, error) {
	now := l.now()
	if err := stockRepo.Upsert(ctx, &entity.Stock{
		OrgID:       in.OrgID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    newQty,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:          l.newID(),
		OrgID:       in.OrgID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		QtyChange:   in.QtyChange,
		Reason:      in.Reason,
		Note:        in.Note,
		CreatedBy:   in.ActorID,
		CreatedAt:   now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (l *Ledger) logFailure(err error, productID, warehouseID string) {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		l.log.Warn().
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Str("available", insufficient.Available.String()).
			Msg("stock insuficiente")
		return
	}
	l.log.Error().Err(err).Str("product_id", productID).Str("warehouse_id", warehouseID).Msg("mutación de stock fallida")
}

func currentQuantity(ctx context.Context, stockRepo repository.StockRepository, productID, warehouseID string) (decimal.Decimal, error) {
	s, err := stockRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return decimal.Zero, nil
	}
	return s.Quantity, nil
}

func transferNote(prefix, warehouseID, note string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s. %s", prefix, warehouseID, note))
}
