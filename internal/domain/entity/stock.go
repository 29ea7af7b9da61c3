package entity

import "time"

// Estados derivados de una posición de stock.
const (
	StockStatusInStock    = "in-stock"
	StockStatusLowStock   = "low-stock"
	StockStatusOutOfStock = "out-of-stock"
)

// StockItem representa la cantidad de un producto en un almacén.
// Par (ProductID, WarehouseID) único. Status es siempre función pura de
// (Quantity, MinimumQuantity); nunca se asigna a mano fuera de DeriveStockStatus.
// Una posición nunca se borra: cantidad cero es un estado terminal válido.
type StockItem struct {
	ID              string
	ProductID       string
	WarehouseID     string
	Quantity        int64
	MinimumQuantity int64
	ReorderLevel    int64
	Status          string
	LastCountDate   *time.Time
	LastCountedBy   string
}

// DeriveStockStatus deriva el estado de una posición a partir de la cantidad
// y el mínimo: <=0 agotado, < mínimo bajo, resto disponible.
func DeriveStockStatus(quantity, minimumQuantity int64) string {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity < minimumQuantity:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
