package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement registro inmutable del ledger: una entrada o salida aplicada a un producto.
// ProductName es una copia del nombre al momento del movimiento.
type Movement struct {
	ID          string
	OwnerID     string
	ProductID   string
	ProductName string
	Type        string
	Quantity    int64 // siempre positivo; el signo lo da Type
	Actor       string
	CreatedAt   time.Time
}

// Delta devuelve la cantidad con signo (+ entrada, - salida).
func (m *Movement) Delta() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// IsValidMovementType indica si t es IN u OUT.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}
