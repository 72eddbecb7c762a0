package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// RegisterMovementUseCase adapta las peticiones de la API al libro de stock.
// Verifica que producto y bodega(s) existan y pertenezcan a la organización antes de mutar.
type RegisterMovementUseCase struct {
	ledger        *Ledger
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	ledger *Ledger,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		ledger:        ledger,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RegisterMovement aplica una entrada, salida o ajuste con signo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, orgID, userID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: product_id y warehouse_id son obligatorios", domain.ErrInvalidInput)
	}
	if err := uc.checkProduct(ctx, orgID, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, orgID, in.WarehouseID); err != nil {
		return nil, err
	}
	mov, err := uc.ledger.ApplyMovement(ctx, MovementInput{
		OrgID:       orgID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		QtyChange:   in.QtyChange,
		Reason:      in.Reason,
		Note:        in.Note,
		ActorID:     userID,
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// Transfer traslada cantidad entre dos bodegas de la organización.
func (uc *RegisterMovementUseCase) Transfer(ctx context.Context, orgID, userID string, in dto.StockTransferRequest) error {
	if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return fmt.Errorf("%w: product_id, from_warehouse_id y to_warehouse_id son obligatorios", domain.ErrInvalidInput)
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return domain.ErrInvalidTransfer
	}
	if err := uc.checkProduct(ctx, orgID, in.ProductID); err != nil {
		return err
	}
	for _, wh := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		if err := uc.checkWarehouse(ctx, orgID, wh); err != nil {
			return err
		}
	}
	return uc.ledger.Transfer(ctx, TransferInput{
		OrgID:           orgID,
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            in.Note,
		ActorID:         userID,
	})
}

// SetQuantity corrige la cantidad por conteo físico. Devuelve nil si no hubo diferencia.
func (uc *RegisterMovementUseCase) SetQuantity(ctx context.Context, orgID, userID string, in dto.SetQuantityRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: product_id y warehouse_id son obligatorios", domain.ErrInvalidInput)
	}
	if err := uc.checkProduct(ctx, orgID, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, orgID, in.WarehouseID); err != nil {
		return nil, err
	}
	mov, err := uc.ledger.SetAbsoluteQuantity(ctx, AdjustInput{
		OrgID:       orgID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		NewQuantity: in.NewQuantity,
		ActorID:     userID,
	})
	if err != nil || mov == nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

func (uc *RegisterMovementUseCase) checkProduct(ctx context.Context, orgID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.OrgID != orgID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *RegisterMovementUseCase) checkWarehouse(ctx context.Context, orgID, warehouseID string) error {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.OrgID != orgID {
		return domain.ErrForbidden
	}
	return nil
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		QtyChange:   m.QtyChange,
		Reason:      m.Reason,
		Note:        m.Note,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
