package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

// StatsUseCase calcula las estadísticas agregadas del panel de almacén:
// valoración del stock a precios AIS y a precios Север-Рыба, posiciones
// bajas/agotadas y productos pendientes de sincronizar.
type StatsUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *StatsUseCase {
	return &StatsUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// WarehouseStats agrega las métricas sobre todos los almacenes.
func (uc *StatsUseCase) WarehouseStats() (*dto.WarehouseStats, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	stats := &dto.WarehouseStats{
		TotalProducts:  len(products),
		TotalItems:     len(stock),
		TotalValue:     decimal.Zero,
		TotalValueBySR: decimal.Zero,
	}
	for _, item := range stock {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(item.Quantity)
		value := qty.Mul(p.Price)
		stats.TotalValue = stats.TotalValue.Add(value)
		// La valoración a precios del proveedor solo cubre productos
		// reconciliados; el resto queda pendiente de sincronizar.
		if p.IsReconciled {
			stats.TotalValueBySR = stats.TotalValueBySR.Add(value)
		} else {
			stats.PendingSyncItems++
		}
		switch item.Status {
		case entity.StockStatusLowStock:
			stats.LowStockItems++
		case entity.StockStatusOutOfStock:
			stats.OutOfStockItems++
		}
	}
	stats.TotalValue = stats.TotalValue.Round(2)
	stats.TotalValueBySR = stats.TotalValueBySR.Round(2)
	return stats, nil
}
