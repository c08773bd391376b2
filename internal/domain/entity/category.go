package entity

import "time"

// Category categoría de productos de un tenant (dato de referencia, sin jerarquía).
type Category struct {
	ID        string
	OwnerID   string
	Name      string
	CreatedAt time.Time
}
