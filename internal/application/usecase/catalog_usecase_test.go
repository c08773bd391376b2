package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
)

func TestCategoryUseCase(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db))
	ctx := context.Background()

	// "Café" en forma descompuesta (e + acento combinante) se guarda normalizado a NFC.
	created, err := uc.Create(ctx, alice.ID, dto.CreateCategoryRequest{Name: " Cafe\u0301 "})
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", created.Name)

	_, err = uc.Create(ctx, alice.ID, dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, uc.Delete(ctx, bob.ID, created.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, alice.ID, created.ID))

	list, err = uc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplierUseCase(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewSupplierUseCase(sqlite.NewSupplierRepository(db))
	ctx := context.Background()

	created, err := uc.Create(ctx, alice.ID, dto.CreateSupplierRequest{Name: "Acme", Contact: "ventas@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.OwnerID)

	list, err := uc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ventas@acme.test", list[0].Contact)

	_, err = uc.Create(ctx, "", dto.CreateSupplierRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.Delete(ctx, bob.ID, created.ID), domain.ErrNotFound)
}
