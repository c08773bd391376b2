package entity

// Tenant identidad verificada por el Identity Gate: dueño de productos, categorías,
// proveedores y movimientos. El core nunca lo crea ni lo modifica.
type Tenant struct {
	ID          string
	DisplayName string
}
