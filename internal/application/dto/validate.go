package dto

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

// ValidateID exige un UUID en forma canónica de 36 caracteres (la que acepta la columna uuid).
func ValidateID(field, id string) error {
	if len(id) != 36 {
		return fmt.Errorf("%w: %s debe ser un UUID", domain.ErrInvalidInput, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s debe ser un UUID", domain.ErrInvalidInput, field)
	}
	return nil
}

// validateOptionalIDs valida pares (campo, valor); los valores vacíos se dejan al caso de uso.
func validateOptionalIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if err := ValidateID(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIDs comprueba el formato de los identificadores del body.
func (r StockMovementRequest) ValidateIDs() error {
	return validateOptionalIDs("product_id", r.ProductID, "warehouse_id", r.WarehouseID)
}

// ValidateIDs comprueba el formato de los identificadores del body.
func (r StockTransferRequest) ValidateIDs() error {
	return validateOptionalIDs(
		"product_id", r.ProductID,
		"from_warehouse_id", r.FromWarehouseID,
		"to_warehouse_id", r.ToWarehouseID,
	)
}

// ValidateIDs comprueba el formato de los identificadores del body.
func (r SetQuantityRequest) ValidateIDs() error {
	return validateOptionalIDs("product_id", r.ProductID, "warehouse_id", r.WarehouseID)
}

// ValidateFilterIDs valida filtros opcionales de query string.
func ValidateFilterIDs(pairs ...string) error {
	return validateOptionalIDs(pairs...)
}
