package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

var (
	alice = entity.Tenant{ID: "tenant-a", DisplayName: "Alice"}
	bob   = entity.Tenant{ID: "tenant-b", DisplayName: "Bob"}
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newProductUC(t *testing.T, opts usecase.ProductOptions) (*usecase.ProductUseCase, repository.MovementRepository) {
	db := openDB(t)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewTxRunner(db), opts, nil)
	return uc, sqlite.NewMovementRepository(db)
}

func int64Ptr(v int64) *int64 { return &v }

func TestProductUseCase_CreateStampsOwnerAndDefaults(t *testing.T) {
	uc, movements := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()

	out, err := uc.Create(ctx, alice, dto.CreateProductRequest{
		Name: "  Café  ", SKU: "CAF-1", Category: "Bebidas", Price: decimal.RequireFromString("4.20"), Quantity: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, alice.ID, out.OwnerID)
	assert.Equal(t, "Café", out.Name)
	assert.Equal(t, entity.DefaultMinStock, out.MinStock)
	assert.Equal(t, int64(10), out.Quantity)
	assert.False(t, out.LowStock)

	list, err := movements.ListByOwner(ctx, alice.ID, repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "sin la opción no se registra stock inicial")
}

func TestProductUseCase_CreateValidation(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()

	cases := []dto.CreateProductRequest{
		{Name: "   "},
		{Name: "A", Quantity: -1},
		{Name: "A", MinStock: int64Ptr(-2)},
		{Name: "A", Price: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, alice, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.Create(ctx, entity.Tenant{}, dto.CreateProductRequest{Name: "A"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductUseCase_DuplicateSKU(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()

	_, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "A", SKU: "X-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, alice, dto.CreateProductRequest{Name: "B", SKU: "X-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, bob, dto.CreateProductRequest{Name: "B", SKU: "X-1"})
	assert.NoError(t, err)
}

func TestProductUseCase_MinStockCeroSeRespeta(t *testing.T) {
	db := openDB(t)
	products := sqlite.NewProductRepository(db)
	uc := usecase.NewProductUseCase(products, sqlite.NewTxRunner(db), usecase.ProductOptions{}, nil)
	ctx := context.Background()

	out, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "Sin alerta", Quantity: 2, MinStock: int64Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.MinStock)
	assert.False(t, out.LowStock)

	low, err := inventory.NewReportUseCase(products).LowStock(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, low.Total)
}

func TestProductUseCase_CreateStorageFailureIsTransient(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewTxRunner(db), usecase.ProductOptions{}, nil)
	require.NoError(t, db.Close())

	_, err := uc.Create(context.Background(), alice, dto.CreateProductRequest{Name: "A", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_RecordInitialStock(t *testing.T) {
	uc, movements := newProductUC(t, usecase.ProductOptions{RecordInitialStock: true})
	ctx := context.Background()

	out, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "Widget", Quantity: 7})
	require.NoError(t, err)

	list, err := movements.ListByOwner(ctx, alice.ID, repository.LedgerFilter{ProductID: out.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementTypeIN, list[0].Type)
	assert.Equal(t, int64(7), list[0].Quantity)
	assert.Equal(t, "Alice", list[0].Actor)

	empty, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "Vacío"})
	require.NoError(t, err)
	list, err = movements.ListByOwner(ctx, alice.ID, repository.LedgerFilter{ProductID: empty.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUseCase_GetAndDeleteAreTenantScoped(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()
	out, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "A"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, bob.ID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, bob.ID, out.ID), domain.ErrNotFound)

	got, err := uc.GetByID(ctx, alice.ID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	require.NoError(t, uc.Delete(ctx, alice.ID, out.ID))
	_, err = uc.GetByID(ctx, alice.ID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListSearchAndPage(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()
	for _, name := range []string{"Café", "Té verde", "Chocolate"} {
		_, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: name, Category: "Bebidas"})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, bob, dto.CreateProductRequest{Name: "Café de Bob"})
	require.NoError(t, err)

	all, err := uc.List(ctx, alice.ID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 3, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	found, err := uc.List(ctx, alice.ID, "choco", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Chocolate", found.Items[0].Name)

	page, err := uc.List(ctx, alice.ID, "", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Page.Total)
}

func TestProductUseCase_ImportAllOrNothing(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()

	res, err := uc.Import(ctx, alice, dto.ImportProductsRequest{Products: []dto.CreateProductRequest{
		{Name: "A", SKU: "A-1", Quantity: 1},
		{Name: "", SKU: "B-1"},
		{Name: "C", SKU: "A-1"},
		{Name: "D", Quantity: -4},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NotNil(t, res)
	assert.Zero(t, res.Imported)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, "name", res.Errors[0].Field)
	assert.Equal(t, 2, res.Errors[1].Index)
	assert.Equal(t, "sku", res.Errors[1].Field)
	assert.Equal(t, 3, res.Errors[2].Index)

	list, err := uc.List(ctx, alice.ID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestProductUseCase_ImportRollsBackOnExistingSKU(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()
	_, err := uc.Create(ctx, alice, dto.CreateProductRequest{Name: "Existente", SKU: "DUP"})
	require.NoError(t, err)

	res, err := uc.Import(ctx, alice, dto.ImportProductsRequest{Products: []dto.CreateProductRequest{
		{Name: "Nuevo 1", SKU: "N-1"},
		{Name: "Nuevo 2", SKU: "DUP"},
	}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	require.NotNil(t, res)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)

	list, err := uc.List(ctx, alice.ID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestProductUseCase_ImportSuccess(t *testing.T) {
	uc, _ := newProductUC(t, usecase.ProductOptions{})
	ctx := context.Background()

	res, err := uc.Import(ctx, alice, dto.ImportProductsRequest{Products: []dto.CreateProductRequest{
		{Name: "A", Category: "Bebidas", Quantity: 3},
		{Name: "B", Category: "Bebidas", Quantity: 9, MinStock: int64Ptr(10)},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	for _, item := range res.Items {
		assert.Equal(t, alice.ID, item.OwnerID)
		assert.True(t, item.LowStock)
	}

	_, err = uc.Import(ctx, alice, dto.ImportProductsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
