package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/textnorm"
)

// Tamaños de página por defecto de los listados.
const (
	defaultStockPageLimit    = 10
	defaultMovementPageLimit = 20
)

// StockListQuery filtros del listado de stock. Query busca en código y nombre sin distinguir tildes.
type StockListQuery struct {
	Query       string
	WarehouseID string
	ProductType string
	LowStock    bool
	dto.PageRequest
}

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	dto.PageRequest
}

// StockReport datos del PDF de conteo de inventario.
type StockReport struct {
	OrgID       string
	GeneratedAt time.Time
	Warehouses  []*entity.Warehouse
	Rows        []StockReportRow
}

// StockReportRow una fila por producto.
type StockReportRow struct {
	Code          string
	Name          string
	Unit          string
	ByWarehouse   map[string]decimal.Decimal
	TotalQuantity decimal.Decimal
	MinStock      decimal.Decimal
	Status        invdomain.Status
	Value         decimal.Decimal
}

// StockOverviewUseCase consultas de lectura sobre stock y movimientos.
type StockOverviewUseCase struct {
	ledger        *Ledger
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	report        StockReportGenerator
	log           zerolog.Logger
	now           func() time.Time
}

// NewStockOverviewUseCase construye el caso de uso. report puede ser nil si no se exponen PDFs.
func NewStockOverviewUseCase(
	ledger *Ledger,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	report StockReportGenerator,
	log zerolog.Logger,
) *StockOverviewUseCase {
	return &StockOverviewUseCase{
		ledger:        ledger,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		report:        report,
		log:           log,
		now:           time.Now,
	}
}

// snapshot productos, bodegas y stock de la organización leídos en paralelo.
type snapshot struct {
	products   []*entity.Product
	warehouses []*entity.Warehouse
	stocks     map[string][]*entity.Stock // por producto
}

func (uc *StockOverviewUseCase) load(ctx context.Context, orgID, productType string) (*snapshot, error) {
	var (
		products   []*entity.Product
		warehouses []*entity.Warehouse
		stocks     []*entity.Stock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.productRepo.ListByOrg(gctx, orgID, productType)
		return err
	})
	g.Go(func() error {
		var err error
		warehouses, err = uc.warehouseRepo.ListByOrg(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		stocks, err = uc.stockRepo.ListByOrg(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	snap := &snapshot{products: products, warehouses: warehouses, stocks: make(map[string][]*entity.Stock)}
	for _, s := range stocks {
		snap.stocks[s.ProductID] = append(snap.stocks[s.ProductID], s)
	}
	return snap, nil
}

func (s *snapshot) warehouseNames() map[string]string {
	names := make(map[string]string, len(s.warehouses))
	for _, w := range s.warehouses {
		names[w.ID] = w.Name
	}
	return names
}

// rows arma las filas filtradas. El total siempre considera todas las bodegas;
// el filtro de bodega solo recorta el detalle mostrado.
func (s *snapshot) rows(q StockListQuery) []dto.ProductStockDTO {
	names := s.warehouseNames()
	needle := textnorm.Normalize(q.Query)
	out := make([]dto.ProductStockDTO, 0, len(s.products))
	for _, p := range s.products {
		if needle != "" && !textnorm.Contains(p.Code, needle) && !textnorm.Contains(p.Name, needle) {
			continue
		}
		row := productStockRow(p, s.stocks[p.ID], names, q.WarehouseID)
		if q.LowStock && !row.IsLowStock {
			continue
		}
		out = append(out, row)
	}
	return out
}

func productStockRow(p *entity.Product, stocks []*entity.Stock, names map[string]string, warehouseID string) dto.ProductStockDTO {
	total := decimal.Zero
	detail := make([]dto.WarehouseStockDTO, 0, len(stocks))
	for _, s := range stocks {
		total = total.Add(s.Quantity)
		if warehouseID != "" && s.WarehouseID != warehouseID {
			continue
		}
		detail = append(detail, dto.WarehouseStockDTO{
			WarehouseID:   s.WarehouseID,
			WarehouseName: names[s.WarehouseID],
			Quantity:      s.Quantity,
		})
	}
	return dto.ProductStockDTO{
		ProductID:     p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Type:          p.Type,
		Unit:          p.Unit,
		MinStock:      p.MinStock,
		Stocks:        detail,
		TotalQuantity: total,
		IsLowStock:    invdomain.IsLowStock(total, p.MinStock),
		Status:        string(invdomain.StockStatus(total, p.MinStock)),
	}
}

// List devuelve el stock por producto filtrado y paginado.
func (uc *StockOverviewUseCase) List(ctx context.Context, orgID string, q StockListQuery) (*dto.StockListResponse, error) {
	q.Normalize(defaultStockPageLimit)
	snap, err := uc.load(ctx, orgID, q.ProductType)
	if err != nil {
		return nil, err
	}
	rows := snap.rows(q)

	start := q.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + q.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return &dto.StockListResponse{
		Items:      rows[start:end],
		Pagination: dto.NewPagination(q.PageRequest, len(rows)),
	}, nil
}

// LowStockProducts productos con stock total en o bajo su mínimo, incluidos los agotados.
func (uc *StockOverviewUseCase) LowStockProducts(ctx context.Context, orgID string) ([]dto.ProductStockDTO, error) {
	snap, err := uc.load(ctx, orgID, "")
	if err != nil {
		return nil, err
	}
	return snap.rows(StockListQuery{LowStock: true}), nil
}

// ProductStock detalle de stock de un producto de la organización.
func (uc *StockOverviewUseCase) ProductStock(ctx context.Context, orgID, productID string) (*dto.ProductStockDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OrgID != orgID {
		return nil, domain.ErrForbidden
	}
	levels, err := uc.ledger.ListStockForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	stocks := make([]*entity.Stock, 0, len(levels))
	for _, lv := range levels {
		stocks = append(stocks, &entity.Stock{ProductID: productID, WarehouseID: lv.WarehouseID, Quantity: lv.Quantity})
	}
	row := productStockRow(product, stocks, nil, "")
	return &row, nil
}

// ListMovements historial de movimientos, más recientes primero.
func (uc *StockOverviewUseCase) ListMovements(ctx context.Context, orgID string, f MovementFilter) (*dto.MovementListResponse, error) {
	f.Normalize(defaultMovementPageLimit)
	movs, total, err := uc.movementRepo.List(ctx, orgID, repository.MovementFilter{
		ProductID:   f.ProductID,
		WarehouseID: f.WarehouseID,
		Limit:       f.Limit,
		Offset:      f.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Pagination: dto.NewPagination(f.PageRequest, total)}, nil
}

// StockReportPDF genera la hoja de conteo con el stock actual de todas las bodegas.
func (uc *StockOverviewUseCase) StockReportPDF(ctx context.Context, orgID string) ([]byte, error) {
	if uc.report == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.load(ctx, orgID, "")
	if err != nil {
		return nil, err
	}
	report := StockReport{OrgID: orgID, GeneratedAt: uc.now(), Warehouses: snap.warehouses}
	for _, p := range snap.products {
		row := StockReportRow{
			Code:        p.Code,
			Name:        p.Name,
			Unit:        p.Unit,
			ByWarehouse: make(map[string]decimal.Decimal),
			MinStock:    p.MinStock,
		}
		total := decimal.Zero
		for _, s := range snap.stocks[p.ID] {
			row.ByWarehouse[s.WarehouseID] = s.Quantity
			total = total.Add(s.Quantity)
		}
		row.TotalQuantity = total
		row.Status = invdomain.StockStatus(total, p.MinStock)
		row.Value = invdomain.StockValue(total, p.KgPrice)
		report.Rows = append(report.Rows, row)
	}
	return uc.report.GenerateStockReport(ctx, report)
}

// Reconcile compara cada registro de stock con la suma de sus movimientos y devuelve las diferencias.
func (uc *StockOverviewUseCase) Reconcile(ctx context.Context, orgID string) ([]dto.ReconcileMismatchDTO, error) {
	var (
		stocks []*entity.Stock
		sums   map[repository.StockKey]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stocks, err = uc.stockRepo.ListByOrg(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		sums, err = uc.movementRepo.SumByKey(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var mismatches []dto.ReconcileMismatchDTO
	seen := make(map[repository.StockKey]bool, len(stocks))
	for _, s := range stocks {
		key := repository.StockKey{ProductID: s.ProductID, WarehouseID: s.WarehouseID}
		seen[key] = true
		if sum := sums[key]; !sum.Equal(s.Quantity) {
			mismatches = append(mismatches, mismatch(key, s.Quantity, sum))
		}
	}
	for key, sum := range sums {
		if !seen[key] && !sum.IsZero() {
			mismatches = append(mismatches, mismatch(key, decimal.Zero, sum))
		}
	}
	sort.Slice(mismatches, func(i, j int) bool {
		if mismatches[i].ProductID != mismatches[j].ProductID {
			return mismatches[i].ProductID < mismatches[j].ProductID
		}
		return mismatches[i].WarehouseID < mismatches[j].WarehouseID
	})

	if len(mismatches) > 0 {
		uc.log.Warn().Str("org_id", orgID).Int("mismatches", len(mismatches)).Msg("stock no coincide con movimientos")
	}
	return mismatches, nil
}

func mismatch(key repository.StockKey, qty, sum decimal.Decimal) dto.ReconcileMismatchDTO {
	return dto.ReconcileMismatchDTO{
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		Quantity:    qty,
		MovementSum: sum,
		Difference:  qty.Sub(sum),
	}
}
