package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var errBoom = errors.New("falla simulada")

// memStore TxRunner en memoria: cada Run trabaja sobre una copia y solo la publica si fn no falla.
type memStore struct {
	mu        sync.Mutex
	stocks    map[repository.StockKey]entity.Stock
	movements []entity.StockMovement

	// failOnMovement hace fallar el n-ésimo Create de movimiento (1-based) dentro de una tx.
	failOnMovement int
	locks          [][]string
}

func newMemStore() *memStore {
	return &memStore{stocks: map[repository.StockKey]entity.Stock{}}
}

func (s *memStore) seed(orgID, productID, warehouseID, qty string) {
	s.stocks[repository.StockKey{ProductID: productID, WarehouseID: warehouseID}] = entity.Stock{
		OrgID: orgID, ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.RequireFromString(qty),
	}
}

func (s *memStore) quantity(productID, warehouseID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stocks[repository.StockKey{ProductID: productID, WarehouseID: warehouseID}].Quantity
}

func (s *memStore) hasRecord(productID, warehouseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stocks[repository.StockKey{ProductID: productID, WarehouseID: warehouseID}]
	return ok
}

func (s *memStore) movementsFor(productID, warehouseID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, stocks: make(map[repository.StockKey]entity.Stock, len(s.stocks))}
	for k, v := range s.stocks {
		tx.stocks[k] = v
	}
	if err := fn(tx, tx); err != nil {
		return err
	}
	s.stocks = tx.stocks
	s.movements = append(s.movements, tx.movements...)
	if len(tx.locked) > 0 {
		s.locks = append(s.locks, tx.locked)
	}
	return nil
}

type memTx struct {
	store     *memStore
	stocks    map[repository.StockKey]entity.Stock
	movements []entity.StockMovement
	locked    []string
	creates   int
}

func (t *memTx) Lock(_ context.Context, _, warehouseID string) error {
	t.locked = append(t.locked, warehouseID)
	return nil
}

func (t *memTx) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	s, ok := t.view()[repository.StockKey{ProductID: productID, WarehouseID: warehouseID}]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (t *memTx) Upsert(_ context.Context, stock *entity.Stock) error {
	t.stocks[repository.StockKey{ProductID: stock.ProductID, WarehouseID: stock.WarehouseID}] = *stock
	return nil
}

func (t *memTx) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range t.view() {
		if s.ProductID == productID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (t *memTx) ListByOrg(_ context.Context, orgID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range t.view() {
		if s.OrgID == orgID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

func (t *memTx) Create(_ context.Context, m *entity.StockMovement) error {
	t.creates++
	if t.store.failOnMovement > 0 && t.creates == t.store.failOnMovement {
		return errBoom
	}
	t.movements = append(t.movements, *m)
	return nil
}

func (t *memTx) List(_ context.Context, orgID string, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var all []*entity.StockMovement
	for i := len(t.store.movements) - 1; i >= 0; i-- {
		m := t.store.movements[i]
		if m.OrgID != orgID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		all = append(all, &m)
	}
	total := len(all)
	if f.Offset >= total {
		return []*entity.StockMovement{}, total, nil
	}
	end := f.Offset + f.Limit
	if f.Limit <= 0 || end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (t *memTx) SumByKey(_ context.Context, orgID string) (map[repository.StockKey]decimal.Decimal, error) {
	sums := map[repository.StockKey]decimal.Decimal{}
	for _, m := range t.store.movements {
		if m.OrgID != orgID {
			continue
		}
		k := repository.StockKey{ProductID: m.ProductID, WarehouseID: m.WarehouseID}
		sums[k] = sums[k].Add(m.QtyChange)
	}
	return sums, nil
}

// reader expone el estado confirmado como repositorios fuera de transacción.
func (s *memStore) reader() *memTx {
	return &memTx{store: s}
}

func (t *memTx) view() map[repository.StockKey]entity.Stock {
	if t.stocks == nil {
		return t.store.stocks
	}
	return t.stocks
}
