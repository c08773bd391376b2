package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (también cada fila de la importación masiva).
// Quantity es la cantidad inicial; no se acepta owner: el tenant sale del token.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	MinStock *int64          `json:"min_stock,omitempty"`
	Image    string          `json:"image,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	MinStock  int64           `json:"min_stock"`
	Image     string          `json:"image,omitempty"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ImportProductsRequest body de POST /api/products/import.
type ImportProductsRequest struct {
	Products []CreateProductRequest `json:"products"`
}

// ImportRowError error de validación de una fila de la importación.
type ImportRowError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult resultado de la importación (todo o nada).
type ImportResult struct {
	Imported int               `json:"imported"`
	Items    []ProductResponse `json:"items,omitempty"`
	Errors   []ImportRowError  `json:"errors,omitempty"`
}

// ImportErrorResponse cuerpo de error de la importación: código general más los errores por fila.
type ImportErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Errors  []ImportRowError `json:"errors"`
}
