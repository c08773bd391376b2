package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

type movementRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	ProductID   string    `db:"product_id"`
	ProductName string    `db:"product_name"`
	Type        string    `db:"type"`
	Quantity    int64     `db:"quantity"`
	Actor       string    `db:"actor"`
	CreatedAt   time.Time `db:"created_at"`
}

// MovementRepo ledger sobre SQLite. Los triggers del esquema rechazan UPDATE y DELETE.
type MovementRepo struct {
	q sqlx.ExtContext
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q sqlx.ExtContext) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO stock_movements (id, owner_id, product_id, product_name, type, quantity, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OwnerID, m.ProductID, m.ProductName, m.Type, m.Quantity, m.Actor, m.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// ListByOwner lista movimientos del tenant, más recientes primero.
func (r *MovementRepo) ListByOwner(ctx context.Context, ownerID string, f repository.LedgerFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, owner_id, product_id, product_name, type, quantity, actor, created_at
		FROM stock_movements WHERE owner_id = ?`
	args := []any{ownerID}
	if f.ProductID != "" {
		query += " AND product_id = ?"
		args = append(args, f.ProductID)
	}
	if f.From != nil {
		query += " AND created_at >= ?"
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		query += " AND created_at <= ?"
		args = append(args, f.To.UTC())
	}
	query += " ORDER BY created_at DESC, seq DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		list = append(list, &entity.Movement{
			ID: row.ID, OwnerID: row.OwnerID, ProductID: row.ProductID, ProductName: row.ProductName,
			Type: row.Type, Quantity: row.Quantity, Actor: row.Actor, CreatedAt: row.CreatedAt,
		})
	}
	return list, nil
}
