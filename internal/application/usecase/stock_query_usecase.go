package usecase

import (
	"bytes"
	"time"

	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
	"github.com/katarymba/ais-api/internal/infrastructure/excel"
)

// StockQueryUseCase lecturas de stock y del historial de movimientos,
// más el reporte XLSX de existencias.
type StockQueryUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas de stock.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ListByWarehouse lista las posiciones de un almacén.
func (uc *StockQueryUseCase) ListByWarehouse(warehouseID string) ([]*dto.StockItemResponse, error) {
	items, err := uc.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

// ListAll lista las posiciones de todos los almacenes.
func (uc *StockQueryUseCase) ListAll() ([]*dto.StockItemResponse, error) {
	items, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

// Movements lista movimientos filtrados por almacén o producto (ambos
// opcionales), acotados por fecha y paginados.
func (uc *StockQueryUseCase) Movements(warehouseID, productID string, from, to *time.Time, limit, offset int) ([]*dto.StockMovementResponse, error) {
	var (
		movements []*entity.StockMovement
		err       error
	)
	switch {
	case warehouseID != "":
		movements, err = uc.movementRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
	case productID != "":
		movements, err = uc.movementRepo.ListByProduct(productID, from, to, limit, offset)
	default:
		movements, err = uc.movementRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.StockMovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			WarehouseID:      m.WarehouseID,
			Quantity:         m.Quantity,
			PreviousQuantity: m.PreviousQuantity,
			MovementType:     m.MovementType,
			PerformedBy:      m.PerformedBy,
			MovementDate:     m.MovementDate,
			Notes:            m.Notes,
		})
	}
	return out, nil
}

// ExportReport genera el reporte XLSX de existencias (todos los almacenes
// o uno solo si warehouseID no está vacío).
func (uc *StockQueryUseCase) ExportReport(warehouseID string) (*bytes.Buffer, error) {
	var (
		items []*entity.StockItem
		err   error
	)
	if warehouseID != "" {
		items, err = uc.stockRepo.ListByWarehouse(warehouseID)
	} else {
		items, err = uc.stockRepo.ListAll()
	}
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.warehouseRepo.List(1000, 0)
	if err != nil {
		return nil, err
	}
	return excel.StockReport(items, products, warehouses)
}

func toStockResponses(items []*entity.StockItem) []*dto.StockItemResponse {
	out := make([]*dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &dto.StockItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			WarehouseID:     item.WarehouseID,
			Quantity:        item.Quantity,
			MinimumQuantity: item.MinimumQuantity,
			ReorderLevel:    item.ReorderLevel,
			Status:          item.Status,
			LastCountDate:   item.LastCountDate,
			LastCountedBy:   item.LastCountedBy,
		})
	}
	return out
}
