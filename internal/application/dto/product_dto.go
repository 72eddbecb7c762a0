package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Type     string          `json:"type" validate:"required,oneof=Final SemiFinished Raw"`
	Unit     string          `json:"unit" validate:"required,oneof=kg L piece"`
	VatRate  decimal.Decimal `json:"vat_rate"`
	KgPrice  decimal.Decimal `json:"kg_price"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja vía movimientos).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Type     *string          `json:"type"`
	Unit     *string          `json:"unit"`
	VatRate  *decimal.Decimal `json:"vat_rate"`
	KgPrice  *decimal.Decimal `json:"kg_price"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	OrgID     string          `json:"org_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Unit      string          `json:"unit"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	KgPrice   decimal.Decimal `json:"kg_price"`
	MinStock  decimal.Decimal `json:"min_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
