package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/pkg/logger"
)

// MovementEngine aplica entradas y salidas de stock de forma atómica: actualiza la cantidad
// del producto y agrega la entrada del ledger en la misma transacción, bajo un lock por producto.
type MovementEngine struct {
	txRunner TxRunner
	locker   Locker
	log      *logger.Logger
	now      func() time.Time
}

// NewMovementEngine construye el motor de movimientos.
func NewMovementEngine(txRunner TxRunner, locker Locker, log *logger.Logger) *MovementEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementEngine{
		txRunner: txRunner,
		locker:   locker,
		log:      log.Named("movement_engine"),
		now:      time.Now,
	}
}

// MovementInput entrada para aplicar un movimiento.
// TenantID y Actor provienen del Identity Gate, nunca del body de la petición.
type MovementInput struct {
	TenantID  string
	ProductID string
	Direction string // IN | OUT
	Quantity  int64
	Actor     string
}

// MovementResult resultado de un movimiento aceptado.
type MovementResult struct {
	MovementID  string
	ProductID   string
	ProductName string
	Type        string
	Quantity    int64
	NewQuantity int64
	CreatedAt   time.Time
}

// LockKey clave del lock por producto.
func LockKey(tenantID, productID string) string {
	return fmt.Sprintf("lock:inventory:%s:%s", tenantID, productID)
}

// ApplyMovement valida la entrada sin tocar almacenamiento, toma el lock del producto y, dentro
// de una transacción, bloquea la fila, calcula la nueva cantidad, la persiste y agrega el movimiento.
//
// Errores:
//   - domain.ErrUnauthorized, ErrInvalidInput, ErrInvalidDirection, ErrInvalidMagnitude: entrada rechazada.
//   - domain.ErrNotFound: el producto no existe para el tenant (incluye productos de otro tenant).
//   - domain.ErrInsufficientStock: la salida dejaría la cantidad negativa.
//   - domain.ErrInvalidMagnitude: también cuando una entrada desbordaría la cantidad.
//   - domain.ErrTransient: fallo de almacenamiento o del lock; la transacción se revierte.
func (e *MovementEngine) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}

	unlock, err := e.locker.Lock(ctx, LockKey(in.TenantID, in.ProductID))
	if err != nil {
		e.log.Error().Err(err).Str("tenant_id", in.TenantID).Str("product_id", in.ProductID).Msg("no se pudo tomar el lock del producto")
		return nil, fmt.Errorf("%w: lock: %v", domain.ErrTransient, err)
	}
	defer unlock()

	var result *MovementResult
	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.TenantID, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		var newQty int64
		switch in.Direction {
		case entity.MovementTypeIN:
			if in.Quantity > math.MaxInt64-product.Quantity {
				return fmt.Errorf("%w: la entrada excede la cantidad máxima representable", domain.ErrInvalidMagnitude)
			}
			newQty = product.Quantity + in.Quantity
		default:
			newQty = product.Quantity - in.Quantity
			if newQty < 0 {
				return domain.ErrInsufficientStock
			}
		}

		if err := productRepo.UpdateQuantity(ctx, in.TenantID, product.ID, newQty); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			OwnerID:     in.TenantID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        in.Direction,
			Quantity:    in.Quantity,
			Actor:       in.Actor,
			CreatedAt:   e.now().UTC(),
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		result = &MovementResult{
			MovementID:  mov.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        mov.Type,
			Quantity:    mov.Quantity,
			NewQuantity: newQty,
			CreatedAt:   mov.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, e.classify(in, err)
	}

	e.log.Info().
		Str("tenant_id", in.TenantID).
		Str("product_id", result.ProductID).
		Str("movement_id", result.MovementID).
		Str("type", result.Type).
		Int64("quantity", result.Quantity).
		Int64("new_quantity", result.NewQuantity).
		Msg("movimiento aplicado")
	return result, nil
}

// classify separa rechazos de negocio de fallos de almacenamiento (que se marcan como transitorios).
func (e *MovementEngine) classify(in MovementInput, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidMagnitude):
		e.log.Warn().Err(err).Str("tenant_id", in.TenantID).Str("product_id", in.ProductID).
			Str("type", in.Direction).Int64("quantity", in.Quantity).Msg("movimiento rechazado")
		return err
	case errors.Is(err, domain.ErrTransient):
		return err
	}
	e.log.Error().Err(err).Str("tenant_id", in.TenantID).Str("product_id", in.ProductID).Msg("fallo al aplicar movimiento")
	return fmt.Errorf("%w: %v", domain.ErrTransient, err)
}

func validateMovement(in MovementInput) error {
	if in.TenantID == "" {
		return domain.ErrUnauthorized
	}
	if in.ProductID == "" || in.Actor == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(in.Direction) {
		return domain.ErrInvalidDirection
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidMagnitude
	}
	return nil
}
