package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

// Adjustment es la intención calculada (aún no aplicada) de cambiar la
// cantidad de una posición de stock. MovementType receipt crea la posición;
// adjustment la lleva a NewQuantity. PreviousQuantity es la cantidad que el
// cálculo observó: Apply la verifica contra la fila bloqueada antes de
// escribir (compare-and-swap) y devuelve ErrConflict si otro escritor se
// adelantó.
type Adjustment struct {
	ProductID        string
	WarehouseID      string
	PreviousQuantity int64
	NewQuantity      int64
	MovementType     string // receipt | adjustment
	PerformedBy      string
	Notes            string
}

// Defaults valores para posiciones creadas por primera vez (mínimo y punto
// de reorden cuando el producto nunca tuvo stock en el almacén).
type Defaults struct {
	MinimumQuantity int64
	ReorderLevel    int64
}

// Writer aplica ajustes de stock de forma transaccional produciendo el
// histórico auditable: cada operación muta la posición y agrega exactamente
// un movimiento (dos en traslados) dentro de la misma transacción.
type Writer struct {
	txRunner TxRunner
	defaults Defaults
}

// NewWriter construye el escritor del ledger.
func NewWriter(txRunner TxRunner, defaults Defaults) *Writer {
	if defaults.MinimumQuantity <= 0 {
		defaults.MinimumQuantity = 5
	}
	if defaults.ReorderLevel <= 0 {
		defaults.ReorderLevel = 10
	}
	return &Writer{txRunner: txRunner, defaults: defaults}
}

// Apply aplica una intención de ajuste. Para receipt crea la posición con
// los defaults; para adjustment bloquea la fila, verifica que la cantidad
// observada siga vigente y la lleva a NewQuantity. Siempre agrega el
// movimiento con PreviousQuantity + Quantity == cantidad resultante.
func (w *Writer) Apply(ctx context.Context, adj Adjustment) error {
	if adj.ProductID == "" || adj.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	switch adj.MovementType {
	case entity.MovementTypeReceipt, entity.MovementTypeAdjustment:
	default:
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		item, err := stockRepo.GetForUpdate(adj.ProductID, adj.WarehouseID)
		if err != nil {
			return err
		}
		if item == nil {
			if adj.MovementType != entity.MovementTypeReceipt || adj.PreviousQuantity != 0 {
				// Un adjustment presupone una posición existente
				return domain.ErrConflict
			}
			item = &entity.StockItem{
				ID:              uuid.New().String(),
				ProductID:       adj.ProductID,
				WarehouseID:     adj.WarehouseID,
				MinimumQuantity: w.defaults.MinimumQuantity,
				ReorderLevel:    w.defaults.ReorderLevel,
			}
		} else if item.Quantity != adj.PreviousQuantity {
			// Otro escritor cambió la cantidad desde que se calculó la intención
			return domain.ErrConflict
		}

		item.Quantity = adj.NewQuantity
		item.Status = entity.DeriveStockStatus(item.Quantity, item.MinimumQuantity)
		item.LastCountDate = &now
		item.LastCountedBy = adj.PerformedBy
		if err := stockRepo.Upsert(item); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        adj.ProductID,
			WarehouseID:      adj.WarehouseID,
			Quantity:         adj.NewQuantity - adj.PreviousQuantity,
			PreviousQuantity: adj.PreviousQuantity,
			MovementType:     adj.MovementType,
			PerformedBy:      adj.PerformedBy,
			MovementDate:     now,
			Notes:            adj.Notes,
		}
		return movRepo.Create(mov)
	})
}

// Receive suma quantity a la posición (creándola si no existe) y agrega un
// movimiento receipt. Usado al procesar entregas recibidas.
func (w *Writer) Receive(ctx context.Context, productID, warehouseID string, quantity int64, actor, notes string) error {
	if productID == "" || warehouseID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		item, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if item == nil {
			item = &entity.StockItem{
				ID:              uuid.New().String(),
				ProductID:       productID,
				WarehouseID:     warehouseID,
				MinimumQuantity: w.defaults.MinimumQuantity,
				ReorderLevel:    w.defaults.ReorderLevel,
			}
		}
		previous := item.Quantity
		item.Quantity = previous + quantity
		item.Status = entity.DeriveStockStatus(item.Quantity, item.MinimumQuantity)
		if err := stockRepo.Upsert(item); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			WarehouseID:      warehouseID,
			Quantity:         quantity,
			PreviousQuantity: previous,
			MovementType:     entity.MovementTypeReceipt,
			PerformedBy:      actor,
			MovementDate:     now,
			Notes:            notes,
		}
		return movRepo.Create(mov)
	})
}

// Issue resta quantity de la posición y agrega un movimiento issue.
// Devuelve ErrInsufficientStock si la posición no cubre la salida.
func (w *Writer) Issue(ctx context.Context, productID, warehouseID string, quantity int64, actor, notes string) error {
	if productID == "" || warehouseID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		item, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if item == nil || item.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		previous := item.Quantity
		item.Quantity = previous - quantity
		item.Status = entity.DeriveStockStatus(item.Quantity, item.MinimumQuantity)
		if err := stockRepo.Upsert(item); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			WarehouseID:      warehouseID,
			Quantity:         -quantity,
			PreviousQuantity: previous,
			MovementType:     entity.MovementTypeIssue,
			PerformedBy:      actor,
			MovementDate:     now,
			Notes:            notes,
		}
		return movRepo.Create(mov)
	})
}

// Transfer traslada quantity entre dos almacenes en una sola transacción:
// resta en origen, suma en destino y agrega dos movimientos transfer.
func (w *Writer) Transfer(ctx context.Context, productID, fromWarehouseID, toWarehouseID string, quantity int64, actor, notes string) error {
	if productID == "" || fromWarehouseID == "" || toWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if fromWarehouseID == toWarehouseID || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		origin, err := stockRepo.GetForUpdate(productID, fromWarehouseID)
		if err != nil {
			return err
		}
		if origin == nil || origin.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		dest, err := stockRepo.GetForUpdate(productID, toWarehouseID)
		if err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.StockItem{
				ID:              uuid.New().String(),
				ProductID:       productID,
				WarehouseID:     toWarehouseID,
				MinimumQuantity: w.defaults.MinimumQuantity,
				ReorderLevel:    w.defaults.ReorderLevel,
			}
		}
		prevOrigin := origin.Quantity
		prevDest := dest.Quantity
		origin.Quantity = prevOrigin - quantity
		dest.Quantity = prevDest + quantity
		origin.Status = entity.DeriveStockStatus(origin.Quantity, origin.MinimumQuantity)
		dest.Status = entity.DeriveStockStatus(dest.Quantity, dest.MinimumQuantity)
		if err := stockRepo.Upsert(origin); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}

		outMov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			WarehouseID:      fromWarehouseID,
			Quantity:         -quantity,
			PreviousQuantity: prevOrigin,
			MovementType:     entity.MovementTypeTransfer,
			PerformedBy:      actor,
			MovementDate:     now,
			Notes:            notes,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			WarehouseID:      toWarehouseID,
			Quantity:         quantity,
			PreviousQuantity: prevDest,
			MovementType:     entity.MovementTypeTransfer,
			PerformedBy:      actor,
			MovementDate:     now,
			Notes:            notes,
		}
		return movRepo.Create(inMov)
	})
}
