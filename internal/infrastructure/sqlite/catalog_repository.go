package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

type categoryRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r categoryRow) toEntity() *entity.Category {
	return &entity.Category{ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, CreatedAt: r.CreatedAt}
}

// CategoryRepo categorías sobre SQLite.
type CategoryRepo struct {
	q sqlx.ExtContext
}

func NewCategoryRepository(q sqlx.ExtContext) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Name, c.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT id, owner_id, name, created_at FROM categories WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return row.toEntity(), nil
}

func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	var rows []categoryRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT id, owner_id, name, created_at FROM categories WHERE owner_id = ? ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}

type supplierRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	Contact   string    `db:"contact"`
	CreatedAt time.Time `db:"created_at"`
}

func (r supplierRow) toEntity() *entity.Supplier {
	return &entity.Supplier{ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, Contact: r.Contact, CreatedAt: r.CreatedAt}
}

// SupplierRepo proveedores sobre SQLite.
type SupplierRepo struct {
	q sqlx.ExtContext
}

func NewSupplierRepository(q sqlx.ExtContext) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO suppliers (id, owner_id, name, contact, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.OwnerID, s.Name, s.Contact, s.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Supplier, error) {
	var row supplierRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT id, owner_id, name, contact, created_at FROM suppliers WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SupplierRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Supplier, error) {
	var rows []supplierRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT id, owner_id, name, contact, created_at FROM suppliers WHERE owner_id = ? ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	list := make([]*entity.Supplier, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM suppliers WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return requireAffected(res)
}
