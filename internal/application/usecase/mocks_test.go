package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stockflow-api/internal/domain/access"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error { return m.Called(ctx, u).Error(0) }
func (m *userRepoMock) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
func (m *userRepoMock) UpdateRole(ctx context.Context, id string, role access.Role) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *userRepoMock) ListByOrg(ctx context.Context, orgID string) ([]*entity.User, error) {
	args := m.Called(ctx, orgID)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}
func (m *userRepoMock) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }

type orgRepoMock struct{ mock.Mock }

func (m *orgRepoMock) Create(ctx context.Context, o *entity.Organization) error {
	return m.Called(ctx, o).Error(0)
}
func (m *orgRepoMock) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*entity.Organization)
	return o, args.Error(1)
}
func (m *orgRepoMock) UpdateName(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

type auditRepoMock struct{ mock.Mock }

func (m *auditRepoMock) Create(ctx context.Context, l *entity.AuditLog) error {
	return m.Called(ctx, l).Error(0)
}
func (m *auditRepoMock) ListByOrg(ctx context.Context, orgID string, limit, offset int) ([]*entity.AuditLog, error) {
	args := m.Called(ctx, orgID, limit, offset)
	l, _ := args.Get(0).([]*entity.AuditLog)
	return l, args.Error(1)
}

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
	l, _ := args.Get(0).([]*entity.Product)
	return l, args.Error(1)
}
func (m *productRepoMock) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }

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
	l, _ := args.Get(0).([]*entity.Warehouse)
	return l, args.Error(1)
}
func (m *warehouseRepoMock) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }

// memberTx reutiliza los mismos mocks dentro y fuera de la transacción.
type memberTx struct {
	org   *orgRepoMock
	users *userRepoMock
	audit *auditRepoMock
}

func (t *memberTx) RunMembers(_ context.Context, fn func(repository.OrganizationRepository, repository.UserRepository, repository.AuditLogRepository) error) error {
	return fn(t.org, t.users, t.audit)
}
