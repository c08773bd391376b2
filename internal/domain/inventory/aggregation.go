// Package inventory contiene los cálculos de dominio sobre el conjunto de productos de un tenant.
// Son funciones puras: sin estado, sin caché y sin acceso a persistencia.
package inventory

import (
	"sort"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// CategoryTotal suma de unidades en stock de una categoría.
type CategoryTotal struct {
	Category      string
	TotalQuantity int64
	Products      int
}

// Summary resumen del inventario de un tenant (tarjetas del dashboard).
type Summary struct {
	TotalProducts int
	TotalUnits    int64
	LowStock      int
	Healthy       int
}

// LowStock devuelve los productos cuya cantidad está por debajo de su MinStock,
// en el mismo orden de entrada.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p != nil && p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// CategoryTotals agrupa por nombre de categoría y suma cantidades. Resultado ordenado por nombre.
func CategoryTotals(products []*entity.Product) []CategoryTotal {
	idx := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, p := range products {
		if p == nil {
			continue
		}
		i, ok := idx[p.Category]
		if !ok {
			i = len(totals)
			idx[p.Category] = i
			totals = append(totals, CategoryTotal{Category: p.Category})
		}
		totals[i].TotalQuantity += p.Quantity
		totals[i].Products++
	}
	sort.Slice(totals, func(a, b int) bool { return totals[a].Category < totals[b].Category })
	return totals
}

// Summarize calcula totales de productos, unidades y stock bajo.
func Summarize(products []*entity.Product) Summary {
	var s Summary
	for _, p := range products {
		if p == nil {
			continue
		}
		s.TotalProducts++
		s.TotalUnits += p.Quantity
		if p.IsLowStock() {
			s.LowStock++
		}
	}
	s.Healthy = s.TotalProducts - s.LowStock
	return s
}
