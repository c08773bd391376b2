package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// SupplierUseCase directorio de proveedores del tenant.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, tenantID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := normalizeName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		OwnerID:   tenantID,
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores del tenant.
func (uc *SupplierUseCase) List(ctx context.Context, tenantID string) ([]dto.SupplierResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByOwner(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Delete elimina un proveedor del tenant.
func (uc *SupplierUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return domain.ErrUnauthorized
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Contact:   s.Contact,
		CreatedAt: s.CreatedAt,
	}
}
