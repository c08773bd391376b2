package inventory

import (
	"context"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	domaininv "github.com/jhoicas/stockledger/internal/domain/inventory"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// ReportUseCase vistas agregadas sobre el catálogo actual del tenant.
// Se recalculan en cada llamada; no hay estado ni caché propios.
type ReportUseCase struct {
	productRepo repository.ProductRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo}
}

// LowStock productos con cantidad menor a su MinStock.
func (uc *ReportUseCase) LowStock(ctx context.Context, tenantID string) (*dto.LowStockResponse, error) {
	products, err := uc.products(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	low := domaininv.LowStock(products)
	items := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.LowStockResponse{Total: len(items), Items: items}, nil
}

// CategoryTotals unidades en stock agrupadas por nombre de categoría.
func (uc *ReportUseCase) CategoryTotals(ctx context.Context, tenantID string) ([]dto.CategoryTotalDTO, error) {
	products, err := uc.products(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toCategoryTotals(domaininv.CategoryTotals(products)), nil
}

// Summary tarjetas del dashboard: totales, stock bajo/sano y totales por categoría.
func (uc *ReportUseCase) Summary(ctx context.Context, tenantID string) (*dto.InventorySummaryDTO, error) {
	products, err := uc.products(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s := domaininv.Summarize(products)
	return &dto.InventorySummaryDTO{
		TotalProducts:  s.TotalProducts,
		TotalUnits:     s.TotalUnits,
		LowStockCount:  s.LowStock,
		HealthyCount:   s.Healthy,
		CategoryTotals: toCategoryTotals(domaininv.CategoryTotals(products)),
	}, nil
}

func (uc *ReportUseCase) products(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.productRepo.List(ctx, tenantID, repository.ProductFilter{})
}

func toCategoryTotals(totals []domaininv.CategoryTotal) []dto.CategoryTotalDTO {
	out := make([]dto.CategoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalDTO{
			Category:      t.Category,
			TotalQuantity: t.TotalQuantity,
			Products:      t.Products,
		})
	}
	return out
}
