package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock umbral de stock bajo cuando el producto no define uno propio.
const DefaultMinStock int64 = 5

// Product representa un producto del catálogo de un tenant.
// Quantity solo cambia vía movimientos de stock (nunca negativa); Category y Supplier
// guardan el nombre, no una referencia (renombrar una categoría no se propaga).
type Product struct {
	ID        string
	OwnerID   string
	Name      string
	SKU       string // código único por tenant (si no está vacío)
	Category  string
	Supplier  string
	Price     decimal.Decimal
	Quantity  int64
	MinStock  int64 // umbral informativo para reportes de stock bajo; DefaultMinStock si no se envía
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica si la cantidad está por debajo del umbral propio del producto.
// Un MinStock explícito de 0 desactiva la alerta; el valor por defecto se asigna al crear.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinStock
}
