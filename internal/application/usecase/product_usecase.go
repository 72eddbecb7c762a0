package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var maxVatRate = decimal.NewFromInt(100)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el código ya existe en la organización.
func (uc *ProductUseCase) Create(ctx context.Context, orgID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	if err := validateProductFields(in.Type, in.Unit, in.VatRate, in.KgPrice, in.MinStock); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByOrgAndCode(ctx, orgID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		Unit:      in.Unit,
		VatRate:   in.VatRate,
		KgPrice:   in.KgPrice,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la organización.
func (uc *ProductUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		product.Type = *in.Type
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.VatRate != nil {
		product.VatRate = *in.VatRate
	}
	if in.KgPrice != nil {
		product.KgPrice = *in.KgPrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if product.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateProductFields(product.Type, product.Unit, product.VatRate, product.KgPrice, product.MinStock); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la organización; productType vacío no filtra.
func (uc *ProductUseCase) List(ctx context.Context, orgID, productType string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByOrg(ctx, orgID, productType)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Delete elimina un producto de la organización.
func (uc *ProductUseCase) Delete(ctx context.Context, orgID, id string) error {
	if _, err := uc.owned(ctx, orgID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// owned devuelve ErrNotFound también para productos de otra organización.
func (uc *ProductUseCase) owned(ctx context.Context, orgID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OrgID != orgID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func validateProductFields(productType, unit string, vat, kgPrice, minStock decimal.Decimal) error {
	switch {
	case !entity.ValidProductType(productType):
		return fmt.Errorf("%w: tipo %q no válido", domain.ErrInvalidInput, productType)
	case !entity.ValidUnit(unit):
		return fmt.Errorf("%w: unidad %q no válida", domain.ErrInvalidInput, unit)
	case vat.IsNegative() || vat.GreaterThan(maxVatRate):
		return fmt.Errorf("%w: vat_rate debe estar entre 0 y 100", domain.ErrInvalidInput)
	case kgPrice.IsNegative():
		return fmt.Errorf("%w: kg_price no puede ser negativo", domain.ErrInvalidInput)
	case minStock.IsNegative():
		return fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		OrgID:     p.OrgID,
		Code:      p.Code,
		Name:      p.Name,
		Type:      p.Type,
		Unit:      p.Unit,
		VatRate:   p.VatRate,
		KgPrice:   p.KgPrice,
		MinStock:  p.MinStock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
