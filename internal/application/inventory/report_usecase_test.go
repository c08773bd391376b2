package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

func TestReportUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	for _, p := range []*entity.Product{
		{ID: "a", OwnerID: "t1", Name: "A", Category: "Bebidas", Quantity: 3, MinStock: 5},
		{ID: "b", OwnerID: "t1", Name: "B", Category: "Bebidas", Quantity: 8, MinStock: 5},
		{ID: "c", OwnerID: "t1", Name: "C", Category: "Aseo", Quantity: 1, MinStock: 3},
		{ID: "d", OwnerID: "t2", Name: "D", Category: "Bebidas", Quantity: 0, MinStock: 5},
	} {
		p.Price = decimal.Zero
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, f.products.Create(ctx, p))
	}
	uc := inventory.NewReportUseCase(f.products)

	low, err := uc.LowStock(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, low.Total)
	ids := []string{low.Items[0].ID, low.Items[1].ID}
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	totals, err := uc.CategoryTotals(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Aseo", totals[0].Category)
	assert.Equal(t, int64(1), totals[0].TotalQuantity)
	assert.Equal(t, "Bebidas", totals[1].Category)
	assert.Equal(t, int64(11), totals[1].TotalQuantity)
	assert.Equal(t, 2, totals[1].Products)

	sum, err := uc.Summary(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalProducts)
	assert.Equal(t, int64(12), sum.TotalUnits)
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, 1, sum.HealthyCount)

	_, err = uc.Summary(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReportUseCase_EmptyTenant(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewReportUseCase(f.products)

	low, err := uc.LowStock(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, low.Total)
	assert.NotNil(t, low.Items)

	totals, err := uc.CategoryTotals(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, totals)
}
