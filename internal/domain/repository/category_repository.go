package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Category, error)
	Delete(ctx context.Context, ownerID, id string) error
}
