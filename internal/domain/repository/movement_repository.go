package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// LedgerFilter criterios de consulta del ledger.
type LedgerFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// MovementRepository puerto del ledger: solo inserción y consulta, sin update ni delete.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	// ListByOwner devuelve los movimientos del tenant ordenados por fecha descendente.
	ListByOwner(ctx context.Context, ownerID string, filter LedgerFilter) ([]*entity.Movement, error)
}
