package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/pkg/logger"
)

// ProductOptions comportamiento opcional del catálogo.
type ProductOptions struct {
	// RecordInitialStock registra un movimiento IN con la cantidad inicial al crear el producto.
	RecordInitialStock bool
}

// ProductUseCase casos de uso del catálogo de productos. La cantidad solo cambia vía movimientos;
// la cantidad inicial se fija al crear.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	opts     ProductOptions
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, opts ProductOptions, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, opts: opts, log: log.Named("catalog")}
}

// Create crea un producto para el tenant. SKU duplicado en el tenant → domain.ErrDuplicate;
// cualquier otro fallo de almacenamiento → domain.ErrTransient.
func (uc *ProductUseCase) Create(ctx context.Context, tenant entity.Tenant, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if tenant.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if rowErr := validateProduct(in); rowErr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, rowErr.Message)
	}
	product := newProduct(tenant.ID, in, time.Now().UTC())

	var err error
	if uc.opts.RecordInitialStock && product.Quantity > 0 {
		err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			return movRepo.Append(ctx, initialMovement(product, tenant.DisplayName))
		})
	} else {
		err = uc.repo.Create(ctx, product)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("crear producto")
		return nil, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Str("product_id", product.ID).Int64("quantity", product.Quantity).Msg("producto creado")
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Import crea todos los productos o ninguno. Primero valida cada fila; si alguna falla no se
// inserta nada y se devuelven los errores por índice junto con domain.ErrInvalidInput.
// Un SKU que ya existe en el tenant revierte el lote completo (domain.ErrDuplicate).
func (uc *ProductUseCase) Import(ctx context.Context, tenant entity.Tenant, in dto.ImportProductsRequest) (*dto.ImportResult, error) {
	if tenant.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Products) == 0 {
		return &dto.ImportResult{Errors: []dto.ImportRowError{{Index: -1, Field: "products", Message: "lista vacía"}}}, domain.ErrInvalidInput
	}

	var rowErrs []dto.ImportRowError
	seenSKU := make(map[string]int)
	for i, row := range in.Products {
		if rowErr := validateProduct(row); rowErr != nil {
			rowErr.Index = i
			rowErrs = append(rowErrs, *rowErr)
			continue
		}
		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			continue
		}
		if first, dup := seenSKU[sku]; dup {
			rowErrs = append(rowErrs, dto.ImportRowError{Index: i, Field: "sku", Message: fmt.Sprintf("sku repetido (fila %d)", first)})
			continue
		}
		seenSKU[sku] = i
	}
	if len(rowErrs) > 0 {
		return &dto.ImportResult{Errors: rowErrs}, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	products := make([]*entity.Product, 0, len(in.Products))
	for _, row := range in.Products {
		products = append(products, newProduct(tenant.ID, row, now))
	}

	failedAt := -1
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		for i, p := range products {
			if err := productRepo.Create(ctx, p); err != nil {
				failedAt = i
				return err
			}
			if uc.opts.RecordInitialStock && p.Quantity > 0 {
				if err := movRepo.Append(ctx, initialMovement(p, tenant.DisplayName)); err != nil {
					failedAt = i
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenant.ID).Int("rows", len(products)).Int("failed_at", failedAt).Msg("importación revertida")
		if errors.Is(err, domain.ErrDuplicate) {
			return &dto.ImportResult{Errors: []dto.ImportRowError{{Index: failedAt, Field: "sku", Message: "sku ya existe en el catálogo"}}}, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Int("rows", len(products)).Msg("importación completada")
	return &dto.ImportResult{Imported: len(items), Items: items}, nil
}

// GetByID obtiene un producto del tenant. Productos de otro tenant → domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// List lista productos del tenant con búsqueda y paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	search = strings.TrimSpace(search)
	list, err := uc.repo.List(ctx, tenantID, repository.ProductFilter{Search: search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, tenantID, search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un producto del tenant. El historial del ledger se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return domain.ErrUnauthorized
	}
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("product_id", id).Msg("producto eliminado")
	return nil
}

func validateProduct(in dto.CreateProductRequest) *dto.ImportRowError {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &dto.ImportRowError{Field: "name", Message: "name es requerido"}
	case in.Quantity < 0:
		return &dto.ImportRowError{Field: "quantity", Message: "quantity no puede ser negativa"}
	case in.MinStock != nil && *in.MinStock < 0:
		return &dto.ImportRowError{Field: "min_stock", Message: "min_stock no puede ser negativo"}
	case in.Price.LessThan(decimal.Zero):
		return &dto.ImportRowError{Field: "price", Message: "price no puede ser negativo"}
	}
	return nil
}

func newProduct(ownerID string, in dto.CreateProductRequest, now time.Time) *entity.Product {
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	return &entity.Product{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      normalizeName(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Category:  normalizeName(in.Category),
		Supplier:  normalizeName(in.Supplier),
		Price:     in.Price,
		Quantity:  in.Quantity,
		MinStock:  minStock,
		Image:     strings.TrimSpace(in.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func initialMovement(p *entity.Product, actor string) *entity.Movement {
	return &entity.Movement{
		ID:          uuid.New().String(),
		OwnerID:     p.OwnerID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        entity.MovementTypeIN,
		Quantity:    p.Quantity,
		Actor:       actor,
		CreatedAt:   p.CreatedAt,
	}
}
