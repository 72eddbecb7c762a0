package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) GetByOrgAndCode(ctx context.Context, orgID, code string) (*entity.Product, error) {
	args := m.Called(ctx, orgID, code)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) ListByOrg(ctx context.Context, orgID, productType string) ([]*entity.Product, error) {
	args := m.Called(ctx, orgID, productType)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type warehouseRepoMock struct{ mock.Mock }

func (m *warehouseRepoMock) Create(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *warehouseRepoMock) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*entity.Warehouse)
	return w, args.Error(1)
}

func (m *warehouseRepoMock) Update(ctx context.Context, w *entity.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *warehouseRepoMock) ListByOrg(ctx context.Context, orgID string) ([]*entity.Warehouse, error) {
	args := m.Called(ctx, orgID)
	list, _ := args.Get(0).([]*entity.Warehouse)
	return list, args.Error(1)
}

func (m *warehouseRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type reportMock struct{ mock.Mock }

func (m *reportMock) GenerateStockReport(ctx context.Context, r StockReport) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
