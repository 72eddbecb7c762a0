package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
)

// Operation petición genérica de mutación de stock; solo el campo que corresponde a Kind se usa.
type Operation struct {
	Kind     string // dto.OperationMovement, dto.OperationTransfer, dto.OperationSet
	Movement dto.StockMovementRequest
	Transfer dto.StockTransferRequest
	Set      dto.SetQuantityRequest
}

// RegisterMovementFromRequest despacha la operación según su tipo.
// Transfer no devuelve movimiento; SetQuantity devuelve nil cuando no hubo diferencia.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, orgID, userID string, op Operation) (*dto.StockMovementResponse, error) {
	switch op.Kind {
	case dto.OperationMovement:
		return uc.RegisterMovement(ctx, orgID, userID, op.Movement)
	case dto.OperationTransfer:
		return nil, uc.Transfer(ctx, orgID, userID, op.Transfer)
	case dto.OperationSet:
		return uc.SetQuantity(ctx, orgID, userID, op.Set)
	}
	return nil, fmt.Errorf("%w: operación %q desconocida", domain.ErrInvalidInput, op.Kind)
}
