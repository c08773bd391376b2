package dto

import "github.com/jhoicas/stockledger/internal/domain/entity"

// NewProductResponse convierte la entidad en su representación de salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Supplier:  p.Supplier,
		Price:     p.Price,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Image:     p.Image,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewMovementResponse convierte un movimiento del ledger.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Actor:       m.Actor,
		Timestamp:   m.CreatedAt,
	}
}
