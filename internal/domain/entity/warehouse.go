package entity

import "time"

// Tipos de almacén (del modelo AIS original).
const (
	WarehouseTypeWarehouse = "warehouse"
	WarehouseTypeStore     = "store"
	WarehouseTypeFridge    = "fridge"
	WarehouseTypeFreezer   = "freezer"
	WarehouseTypeExternal  = "external"
)

// Warehouse representa un almacén o punto de venta donde se guarda stock.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
