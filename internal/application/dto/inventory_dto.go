package dto

import "time"

// StockMovementRequest body para POST /api/stock/movements.
// El actor y el tenant no viajan en el body: se toman de la identidad verificada.
type StockMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT
	Quantity  int64  `json:"quantity"`
}

// StockMovementResponse resultado de un movimiento aceptado.
type StockMovementResponse struct {
	MovementID  string    `json:"movement_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"new_quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
}

// LedgerQuery filtros de GET /api/stock/movements.
type LedgerQuery struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	PageRequest
}

// LedgerListResponse lista paginada de movimientos (más recientes primero).
type LedgerListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LowStockResponse productos por debajo de su umbral.
type LowStockResponse struct {
	Total int               `json:"total"`
	Items []ProductResponse `json:"items"`
}

// CategoryTotalDTO unidades en stock por categoría.
type CategoryTotalDTO struct {
	Category      string `json:"category"`
	TotalQuantity int64  `json:"total_quantity"`
	Products      int    `json:"products"`
}

// InventorySummaryDTO resumen del inventario del tenant.
type InventorySummaryDTO struct {
	TotalProducts  int                `json:"total_products"`
	TotalUnits     int64              `json:"total_units"`
	LowStockCount  int                `json:"low_stock_count"`
	HealthyCount   int                `json:"healthy_count"`
	CategoryTotals []CategoryTotalDTO `json:"category_totals"`
}
