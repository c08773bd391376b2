package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search string // coincidencia parcial (sin distinguir mayúsculas) en nombre, categoría o SKU
	Limit  int    // 0 = sin límite
	Offset int
}

// ProductRepository define el puerto de persistencia para Product.
// Todas las operaciones reciben ownerID: un producto de otro tenant es indistinguible de uno inexistente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, ownerID, sku string) (*entity.Product, error)
	UpdateQuantity(ctx context.Context, ownerID, id string, quantity int64) error
	List(ctx context.Context, ownerID string, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, ownerID string, search string) (int, error)
	// Delete devuelve domain.ErrNotFound si el producto no existe para ownerID.
	Delete(ctx context.Context, ownerID, id string) error
}
