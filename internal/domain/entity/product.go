package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeFinal        = "Final"
	ProductTypeSemiFinished = "SemiFinished"
	ProductTypeRaw          = "Raw"
)

// Unidades de medida admitidas.
const (
	UnitKg    = "kg"
	UnitLiter = "L"
	UnitPiece = "piece"
)

// Product representa un producto del catálogo de una organización.
// El stock se maneja por bodega en Stock; MinStock es el umbral de stock bajo sobre el total.
type Product struct {
	ID        string
	OrgID     string
	Code      string // único por organización
	Name      string
	Type      string // Final, SemiFinished, Raw
	Unit      string // kg, L, piece
	VatRate   decimal.Decimal // 0 a 100
	KgPrice   decimal.Decimal
	MinStock  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidProductType indica si t es un tipo de producto conocido.
func ValidProductType(t string) bool {
	switch t {
	case ProductTypeFinal, ProductTypeSemiFinished, ProductTypeRaw:
		return true
	}
	return false
}

// ValidUnit indica si u es una unidad conocida.
func ValidUnit(u string) bool {
	switch u {
	case UnitKg, UnitLiter, UnitPiece:
		return true
	}
	return false
}
