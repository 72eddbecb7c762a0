package entity

import "time"

// DefaultWarehouseName nombre de la bodega creada junto con cada organización.
const DefaultWarehouseName = "Bodega principal"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	OrgID     string
	Name      string
	Location  string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
