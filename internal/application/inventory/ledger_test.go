package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

const (
	org     = "org-1"
	product = "prod-1"
	whA     = "wh-a"
	whB     = "wh-b"
	actor   = "user-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestLedger(store *memStore) *Ledger {
	l := NewLedger(store, zerolog.Nop())
	n := 0
	l.newID = func() string { n++; return fmt.Sprintf("mov-%d", n) }
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func sumMovements(movs []entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(m.QtyChange)
	}
	return total
}

func TestApplyMovement_EntradaCreaRegistro(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store)

	mov, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA,
		QtyChange: dec("12.5"), Reason: entity.MovementReasonIn, Note: "compra", ActorID: actor,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, "mov-1", mov.ID)
	assert.Equal(t, org, mov.OrgID)
	assert.True(t, dec("12.5").Equal(mov.QtyChange))
	assert.Equal(t, entity.MovementReasonIn, mov.Reason)
	assert.Equal(t, "compra", mov.Note)
	assert.Equal(t, actor, mov.CreatedBy)
	assert.False(t, mov.CreatedAt.IsZero())

	assert.True(t, dec("12.5").Equal(store.quantity(product, whA)))
	assert.Len(t, store.movementsFor(product, whA), 1)
}

func TestApplyMovement_SalidaDescuenta(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	l := newTestLedger(store)

	_, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("-100"), Reason: entity.MovementReasonOut, ActorID: actor,
	})
	require.NoError(t, err)
	assert.True(t, store.quantity(product, whA).IsZero())
	// el registro llega a cero pero persiste
	assert.True(t, store.hasRecord(product, whA))
}

func TestApplyMovement_StockInsuficienteNoMuta(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	l := newTestLedger(store)

	mov, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("-150"), Reason: entity.MovementReasonOut, ActorID: actor,
	})
	require.Error(t, err)
	assert.Nil(t, mov)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, dec("100").Equal(insufficient.Available))

	assert.True(t, dec("100").Equal(store.quantity(product, whA)))
	assert.Empty(t, store.movementsFor(product, whA))
}

func TestApplyMovement_SalidaSinRegistro(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store)

	_, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("-1"), Reason: entity.MovementReasonOut, ActorID: actor,
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, insufficient.Available.IsZero())
	assert.False(t, store.hasRecord(product, whA))
}

func TestApplyMovement_Precondiciones(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store)

	_, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: decimal.Zero, Reason: entity.MovementReasonIn,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("1"), Reason: "gift",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_FallaDeMovimientoRevierteStock(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "10")
	store.failOnMovement = 1
	l := newTestLedger(store)

	_, err := l.ApplyMovement(context.Background(), MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("5"), Reason: entity.MovementReasonIn,
	})
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, dec("10").Equal(store.quantity(product, whA)))
}

func TestTransfer_Correcto(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	store.seed(org, product, whB, "20")
	l := newTestLedger(store)

	err := l.Transfer(context.Background(), TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB,
		Quantity: dec("30"), Note: "reposición", ActorID: actor,
	})
	require.NoError(t, err)

	assert.True(t, dec("70").Equal(store.quantity(product, whA)))
	assert.True(t, dec("50").Equal(store.quantity(product, whB)))

	require.Len(t, store.movements, 2)
	out := store.movementsFor(product, whA)
	in := store.movementsFor(product, whB)
	require.Len(t, out, 1)
	require.Len(t, in, 1)
	assert.True(t, dec("-30").Equal(out[0].QtyChange))
	assert.True(t, dec("30").Equal(in[0].QtyChange))
	assert.Equal(t, entity.MovementReasonTransfer, out[0].Reason)
	assert.Equal(t, entity.MovementReasonTransfer, in[0].Reason)
	assert.Equal(t, "Transfer to wh-b. reposición", out[0].Note)
	assert.Equal(t, "Transfer from wh-a. reposición", in[0].Note)
}

func TestTransfer_CreaDestino(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whB, "5")
	l := newTestLedger(store)

	require.NoError(t, l.Transfer(context.Background(), TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whB, ToWarehouseID: whA, Quantity: dec("2"),
	}))
	assert.True(t, dec("3").Equal(store.quantity(product, whB)))
	assert.True(t, dec("2").Equal(store.quantity(product, whA)))
	assert.Equal(t, "Transfer to wh-a.", store.movementsFor(product, whB)[0].Note)

	// los pares se bloquean en orden fijo sin importar la dirección
	require.Len(t, store.locks, 1)
	assert.Equal(t, []string{whA, whB}, store.locks[0])
}

func TestTransfer_InsuficienteSinEfectoParcial(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	l := newTestLedger(store)

	err := l.Transfer(context.Background(), TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: dec("150"),
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, dec("100").Equal(insufficient.Available))

	assert.True(t, dec("100").Equal(store.quantity(product, whA)))
	assert.False(t, store.hasRecord(product, whB))
	assert.Empty(t, store.movements)
}

func TestTransfer_FallaEnSegundoMovimientoRevierteTodo(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	store.seed(org, product, whB, "0")
	store.failOnMovement = 2
	l := newTestLedger(store)

	err := l.Transfer(context.Background(), TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: dec("40"),
	})
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, dec("100").Equal(store.quantity(product, whA)))
	assert.True(t, store.quantity(product, whB).IsZero())
	assert.Empty(t, store.movements)
}

func TestTransfer_Precondiciones(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "100")
	l := newTestLedger(store)

	err := l.Transfer(context.Background(), TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whA, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)

	for _, q := range []string{"0", "-5"} {
		err = l.Transfer(context.Background(), TransferInput{
			OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: dec(q),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", q)
	}
	assert.Empty(t, store.movements)
	assert.Empty(t, store.locks)
}

func TestSetAbsoluteQuantity_Idempotente(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "42")
	l := newTestLedger(store)

	mov, err := l.SetAbsoluteQuantity(context.Background(), AdjustInput{
		OrgID: org, ProductID: product, WarehouseID: whA, NewQuantity: dec("42"), ActorID: actor,
	})
	require.NoError(t, err)
	assert.Nil(t, mov)
	assert.True(t, dec("42").Equal(store.quantity(product, whA)))
	assert.Empty(t, store.movements)
}

func TestSetAbsoluteQuantity_RegistraDiferencia(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "42")
	l := newTestLedger(store)

	// una disminución no se rechaza por stock insuficiente
	mov, err := l.SetAbsoluteQuantity(context.Background(), AdjustInput{
		OrgID: org, ProductID: product, WarehouseID: whA, NewQuantity: dec("0"), ActorID: actor,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.True(t, dec("-42").Equal(mov.QtyChange))
	assert.Equal(t, entity.MovementReasonAdjust, mov.Reason)
	assert.Equal(t, CorrectionNote, mov.Note)
	assert.True(t, store.quantity(product, whA).IsZero())

	mov, err = l.SetAbsoluteQuantity(context.Background(), AdjustInput{
		OrgID: org, ProductID: product, WarehouseID: whB, NewQuantity: dec("7.25"), ActorID: actor,
	})
	require.NoError(t, err)
	assert.True(t, dec("7.25").Equal(mov.QtyChange))
	assert.True(t, dec("7.25").Equal(store.quantity(product, whB)))
}

func TestSetAbsoluteQuantity_NegativoRechazado(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "3")
	l := newTestLedger(store)

	_, err := l.SetAbsoluteQuantity(context.Background(), AdjustInput{
		OrgID: org, ProductID: product, WarehouseID: whA, NewQuantity: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, dec("3").Equal(store.quantity(product, whA)))
}

func TestLedger_RechazaMasDecimalesQueLaColumna(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "0.0001")
	l := newTestLedger(store)
	ctx := context.Background()

	err := l.Transfer(ctx, TransferInput{
		OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: dec("0.00005"), ActorID: actor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.ApplyMovement(ctx, MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("0.00001"), Reason: entity.MovementReasonIn, ActorID: actor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.SetAbsoluteQuantity(ctx, AdjustInput{
		OrgID: org, ProductID: product, WarehouseID: whA, NewQuantity: dec("2.12345"), ActorID: actor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, dec("0.0001").Equal(store.quantity(product, whA)))
	assert.False(t, store.hasRecord(product, whB))
	assert.Empty(t, store.movements)

	// Ceros sobrantes no cuentan como decimales.
	mov, err := l.ApplyMovement(ctx, MovementInput{
		OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("1.50000"), Reason: entity.MovementReasonIn, ActorID: actor,
	})
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(mov.QtyChange))
	assert.True(t, dec("1.5001").Equal(store.quantity(product, whA)))
	assert.True(t, sumMovements(store.movementsFor(product, whA)).Add(dec("0.0001")).Equal(store.quantity(product, whA)))
}

func TestLedger_ConservacionTrasSecuencia(t *testing.T) {
	store := newMemStore()
	l := newTestLedger(store)
	ctx := context.Background()

	steps := []func() error{
		func() error {
			_, err := l.ApplyMovement(ctx, MovementInput{OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("50"), Reason: entity.MovementReasonIn})
			return err
		},
		func() error {
			return l.Transfer(ctx, TransferInput{OrgID: org, ProductID: product, FromWarehouseID: whA, ToWarehouseID: whB, Quantity: dec("20.5")})
		},
		func() error {
			_, err := l.ApplyMovement(ctx, MovementInput{OrgID: org, ProductID: product, WarehouseID: whB, QtyChange: dec("-0.5"), Reason: entity.MovementReasonOut})
			return err
		},
		func() error {
			_, err := l.SetAbsoluteQuantity(ctx, AdjustInput{OrgID: org, ProductID: product, WarehouseID: whA, NewQuantity: dec("31")})
			return err
		},
		func() error {
			return l.Transfer(ctx, TransferInput{OrgID: org, ProductID: product, FromWarehouseID: whB, ToWarehouseID: whA, Quantity: dec("5")})
		},
	}
	for i, step := range steps {
		require.NoError(t, step(), "paso %d", i)
	}
	// un rechazo no altera la conservación
	_, err := l.ApplyMovement(ctx, MovementInput{OrgID: org, ProductID: product, WarehouseID: whB, QtyChange: dec("-1000"), Reason: entity.MovementReasonOut})
	require.Error(t, err)

	for _, wh := range []string{whA, whB} {
		assert.True(t, sumMovements(store.movementsFor(product, wh)).Equal(store.quantity(product, wh)), "bodega %s", wh)
	}
	assert.True(t, dec("36").Equal(store.quantity(product, whA)))
	assert.True(t, dec("15").Equal(store.quantity(product, whB)))
}

func TestApplyMovement_Concurrente(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "0")
	l := newTestLedger(store)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.ApplyMovement(context.Background(), MovementInput{
				OrgID: org, ProductID: product, WarehouseID: whA, QtyChange: dec("1"), Reason: entity.MovementReasonIn,
			})
		}()
	}
	wg.Wait()
	assert.True(t, dec("40").Equal(store.quantity(product, whA)))
	assert.Len(t, store.movementsFor(product, whA), 40)
}

func TestListStockForProduct(t *testing.T) {
	store := newMemStore()
	store.seed(org, product, whA, "10")
	store.seed(org, product, whB, "2.5")
	store.seed(org, "prod-2", whA, "99")
	l := newTestLedger(store)

	levels, err := l.ListStockForProduct(context.Background(), product)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, whA, levels[0].WarehouseID)
	assert.True(t, dec("12.5").Equal(TotalQuantity(levels)))
	assert.True(t, TotalQuantity(nil).IsZero())
}
