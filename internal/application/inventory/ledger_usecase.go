package inventory

import (
	"context"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// LedgerUseCase consulta el historial de movimientos de un tenant (solo lectura, sin locks).
type LedgerUseCase struct {
	movRepo repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo}
}

// List devuelve los movimientos del tenant, más recientes primero.
func (uc *LedgerUseCase) List(ctx context.Context, tenantID string, q dto.LedgerQuery) (*dto.LedgerListResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, domain.ErrInvalidInput
	}
	q.DefaultPage()
	list, err := uc.movRepo.ListByOwner(ctx, tenantID, repository.LedgerFilter{
		ProductID: q.ProductID,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMovementResponse(m))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}
