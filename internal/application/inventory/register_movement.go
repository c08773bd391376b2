package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// ApplyMovementFromRequest adapta el request HTTP al motor. El tenant y el actor salen de la identidad verificada.
func (e *MovementEngine) ApplyMovementFromRequest(ctx context.Context, tenant entity.Tenant, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	res, err := e.ApplyMovement(ctx, MovementInput{
		TenantID:  tenant.ID,
		ProductID: strings.TrimSpace(in.ProductID),
		Direction: strings.ToUpper(strings.TrimSpace(in.Type)),
		Quantity:  in.Quantity,
		Actor:     tenant.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementResponse{
		MovementID:  res.MovementID,
		ProductID:   res.ProductID,
		ProductName: res.ProductName,
		Type:        res.Type,
		Quantity:    res.Quantity,
		NewQuantity: res.NewQuantity,
		CreatedAt:   res.CreatedAt,
	}, nil
}
