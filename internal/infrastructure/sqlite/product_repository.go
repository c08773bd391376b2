package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, name, sku, category, supplier, price, quantity, min_stock, image, created_at, updated_at`

const productSearch = ` AND (name LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\' OR sku LIKE ? ESCAPE '\')`

type productRow struct {
	ID        string          `db:"id"`
	OwnerID   string          `db:"owner_id"`
	Name      string          `db:"name"`
	SKU       string          `db:"sku"`
	Category  string          `db:"category"`
	Supplier  string          `db:"supplier"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int64           `db:"quantity"`
	MinStock  int64           `db:"min_stock"`
	Image     string          `db:"image"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, SKU: r.SKU,
		Category: r.Category, Supplier: r.Supplier, Price: r.Price,
		Quantity: r.Quantity, MinStock: r.MinStock, Image: r.Image,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// ProductRepo implementación de ProductRepository sobre SQLite. Acepta *sqlx.DB o *sqlx.Tx.
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		p.ID, p.OwnerID, p.Name, p.SKU, p.Category, p.Supplier,
		p.Price.String(), p.Quantity, p.MinStock, p.Image, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del tenant. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE owner_id = ? AND id = ?`, ownerID, id)
}

// GetForUpdate en SQLite equivale a GetByID: la transacción IMMEDIATE ya reservó la escritura.
func (r *ProductRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, ownerID, id)
}

// GetBySKU obtiene un producto del tenant por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, ownerID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE owner_id = ? AND sku = ?`, ownerID, sku)
}

// UpdateQuantity fija la cantidad.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, ownerID, id string, quantity int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE owner_id = ? AND id = ?`,
		quantity, time.Now().UTC(), ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return requireAffected(res)
}

// List lista productos del tenant (más recientes primero) con búsqueda opcional.
func (r *ProductRepo) List(ctx context.Context, ownerID string, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = ?`
	args := []any{ownerID}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		query += productSearch
		args = append(args, pattern, pattern, pattern)
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// Count cuenta los productos del tenant que coinciden con la búsqueda.
func (r *ProductRepo) Count(ctx context.Context, ownerID string, search string) (int, error) {
	query := `SELECT count(*) FROM products WHERE owner_id = ?`
	args := []any{ownerID}
	if search != "" {
		pattern := likePattern(search)
		query += productSearch
		args = append(args, pattern, pattern, pattern)
	}
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto del tenant.
func (r *ProductRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}
