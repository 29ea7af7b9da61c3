package repository

import "github.com/katarymba/ais-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar posiciones de
// stock por producto+almacén. Usado dentro de transacciones para garantizar
// consistencia con el movimiento que acompaña cada cambio.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil si la posición no existe todavía.
	GetForUpdate(productID, warehouseID string) (*entity.StockItem, error)
	Upsert(item *entity.StockItem) error
	ListByWarehouse(warehouseID string) ([]*entity.StockItem, error)
	ListAll() ([]*entity.StockItem, error)
	CountByWarehouse(warehouseID string) (int64, error)
}
