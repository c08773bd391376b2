package entity

import "time"

// Supplier proveedor de un tenant.
type Supplier struct {
	ID        string
	OwnerID   string
	Name      string
	Contact   string
	CreatedAt time.Time
}
