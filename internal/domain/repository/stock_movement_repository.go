package repository

import (
	"time"

	"github.com/katarymba/ais-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el historial
// de movimientos. Append-only: no expone update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	List(limit, offset int) ([]*entity.StockMovement, error)
}
