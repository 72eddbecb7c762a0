package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestWarehouseCRUD(t *testing.T) {
	repo := &warehouseRepoMock{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.Warehouse) bool {
		return w.OrgID == orgID && !w.IsDefault
	})).Return(nil)
	repo.On("GetByID", mock.Anything, "def").Return(&entity.Warehouse{ID: "def", OrgID: orgID, IsDefault: true}, nil)
	repo.On("GetByID", mock.Anything, "w2").Return(&entity.Warehouse{ID: "w2", OrgID: orgID, Name: "Norte"}, nil)
	repo.On("GetByID", mock.Anything, "ajena").Return(&entity.Warehouse{ID: "ajena", OrgID: "org-2"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, "w2").Return(nil)
	uc := NewWarehouseUseCase(repo)
	ctx := context.Background()

	res, err := uc.Create(ctx, orgID, dto.CreateWarehouseRequest{Name: " Sur ", Location: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "Sur", res.Name)

	_, err = uc.Create(ctx, orgID, dto.CreateWarehouseRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	loc := "Bodega 7"
	up, err := uc.Update(ctx, orgID, "w2", dto.UpdateWarehouseRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Bodega 7", up.Location)

	assert.ErrorIs(t, uc.Delete(ctx, orgID, "def"), domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, orgID, "ajena"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, orgID, "w2"))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}
