package sync

import (
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain/entity"
)

// ComputeAdjustments calcula las intenciones de ajuste de stock a partir del
// catálogo unificado y las posiciones actuales del almacén por defecto.
// Función pura e idempotente: con snapshots sin cambios devuelve una lista
// vacía (cantidades iguales no generan movimiento ni escritura).
//
// Solo participan productos con hint de stock externo y reconciliados en
// esta pasada. Posición existente con cantidad distinta → adjustment;
// posición inexistente → receipt con previous 0.
func ComputeAdjustments(
	unified []*entity.Product,
	stock []*entity.StockItem,
	warehouseID, actor string,
) []ledger.Adjustment {
	byProduct := make(map[string]*entity.StockItem, len(stock))
	for _, item := range stock {
		if item.WarehouseID == warehouseID {
			byProduct[item.ProductID] = item
		}
	}

	var intents []ledger.Adjustment
	for _, p := range unified {
		if p.ExternalStockHint == nil || !p.IsReconciled {
			continue
		}
		hint := *p.ExternalStockHint

		existing, ok := byProduct[p.ID]
		if !ok {
			intents = append(intents, ledger.Adjustment{
				ProductID:        p.ID,
				WarehouseID:      warehouseID,
				PreviousQuantity: 0,
				NewQuantity:      hint,
				MovementType:     entity.MovementTypeReceipt,
				PerformedBy:      actor,
				Notes:            "Первоначальное добавление через синхронизацию с Север-Рыба",
			})
			continue
		}
		if existing.Quantity == hint {
			continue
		}
		intents = append(intents, ledger.Adjustment{
			ProductID:        p.ID,
			WarehouseID:      warehouseID,
			PreviousQuantity: existing.Quantity,
			NewQuantity:      hint,
			MovementType:     entity.MovementTypeAdjustment,
			PerformedBy:      actor,
			Notes:            "Автоматическая синхронизация с Север-Рыба",
		})
	}
	return intents
}
