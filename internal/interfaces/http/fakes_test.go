package http_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// store base en memoria para probar los handlers de punta a punta.
type store struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	users      map[string]*entity.User
	stocks     map[repository.StockKey]*entity.Stock
	movements  []*entity.StockMovement
}

func newStore() *store {
	return &store{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		users:      map[string]*entity.User{},
		stocks:     map[repository.StockKey]*entity.Stock{},
	}
}

// Run serializa las transacciones con el mutex del store; sin rollback, los tests no lo necesitan.
func (s *store) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(stockRepo{s}, movementRepo{s})
}

type stockRepo struct{ s *store }

func (r stockRepo) Lock(context.Context, string, string) error { return nil }

func (r stockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	st, ok := r.s.stocks[repository.StockKey{ProductID: productID, WarehouseID: warehouseID}]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	cp := *st
	r.s.stocks[repository.StockKey{ProductID: st.ProductID, WarehouseID: st.WarehouseID}] = &cp
	return nil
}

func (r stockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, st := range r.s.stocks {
		if k.ProductID == productID {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (r stockRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.s.stocks {
		if st.OrgID == orgID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

type movementRepo struct{ s *store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r movementRepo) List(_ context.Context, orgID string, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var all []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.OrgID == orgID && (f.ProductID == "" || m.ProductID == f.ProductID) {
			all = append(all, m)
		}
	}
	total := len(all)
	if f.Offset >= total {
		return []*entity.StockMovement{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r movementRepo) SumByKey(_ context.Context, orgID string) (map[repository.StockKey]decimal.Decimal, error) {
	out := map[repository.StockKey]decimal.Decimal{}
	for _, m := range r.s.movements {
		if m.OrgID != orgID {
			continue
		}
		k := repository.StockKey{ProductID: m.ProductID, WarehouseID: m.WarehouseID}
		out[k] = out[k].Add(m.QtyChange)
	}
	return out, nil
}

type productRepo struct{ s *store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

func (r productRepo) GetByOrgAndCode(_ context.Context, orgID, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.OrgID == orgID && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r productRepo) ListByOrg(_ context.Context, orgID, productType string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.OrgID == orgID && (productType == "" || p.Type == productType) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

type warehouseRepo struct{ s *store }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.warehouses[id], nil
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = w
	return nil
}

func (r warehouseRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.OrgID == orgID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r warehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.warehouses, id)
	return nil
}

type userRepo struct{ s *store }

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
