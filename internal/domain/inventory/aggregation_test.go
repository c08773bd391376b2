package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/inventory"
)

func product(name, category string, qty, minStock int64) *entity.Product {
	return &entity.Product{ID: name, Name: name, Category: category, Quantity: qty, MinStock: minStock}
}

func TestLowStock_SoloDevuelveProductosBajoElUmbral(t *testing.T) {
	low := product("a", "x", 3, 5)
	ok := product("b", "x", 8, 5)

	got := inventory.LowStock([]*entity.Product{low, ok})

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestLowStock_MinStockCeroNuncaEsBajo(t *testing.T) {
	got := inventory.LowStock([]*entity.Product{
		product("a", "", 2, 0),
		product("b", "", 0, 0),
		product("c", "", 4, entity.DefaultMinStock),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestLowStock_UsaElMinStockPropio(t *testing.T) {
	got := inventory.LowStock([]*entity.Product{
		product("a", "", 8, 10),
		product("b", "", 2, 1),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestLowStock_ListaVaciaNoEsNil(t *testing.T) {
	got := inventory.LowStock(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCategoryTotals_AgrupaYSuma(t *testing.T) {
	got := inventory.CategoryTotals([]*entity.Product{
		product("a", "Bebidas", 3, 5),
		product("b", "Aseo", 10, 5),
		product("c", "Bebidas", 7, 5),
		product("d", "", 1, 5),
	})

	require.Len(t, got, 3)
	assert.Equal(t, inventory.CategoryTotal{Category: "", TotalQuantity: 1, Products: 1}, got[0])
	assert.Equal(t, inventory.CategoryTotal{Category: "Aseo", TotalQuantity: 10, Products: 1}, got[1])
	assert.Equal(t, inventory.CategoryTotal{Category: "Bebidas", TotalQuantity: 10, Products: 2}, got[2])
}

func TestSummarize(t *testing.T) {
	s := inventory.Summarize([]*entity.Product{
		product("a", "x", 3, 5),
		product("b", "x", 8, 5),
		product("c", "y", 0, 1),
	})

	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, int64(11), s.TotalUnits)
	assert.Equal(t, 2, s.LowStock)
	assert.Equal(t, 1, s.Healthy)
}
