package inventory

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ni el producto ni el ledger quedan modificados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// Locker exclusión mutua por clave. Serializa los movimientos de un mismo producto;
// claves distintas nunca se bloquean entre sí.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
