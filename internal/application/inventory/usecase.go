package inventory

import (
	"context"

	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

// UseCase operaciones manuales de stock del panel AIS: recuento de
// inventario, salidas y traslados. Todas pasan por el ledger para dejar
// el movimiento de auditoría junto al cambio de cantidad.
type UseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	writer      *ledger.Writer
}

// NewUseCase construye el caso de uso de operaciones de stock.
func NewUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	writer *ledger.Writer,
) *UseCase {
	return &UseCase{stockRepo: stockRepo, productRepo: productRepo, writer: writer}
}

// RegisterCount fija la cantidad observada en un recuento manual.
// Si la posición no existe se crea como receipt; si existe se ajusta.
// La verificación previous/actual la hace el ledger dentro de la tx.
func (uc *UseCase) RegisterCount(ctx context.Context, actor string, in dto.CountStockRequest) error {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	item, err := uc.stockRepo.Get(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	adj := ledger.Adjustment{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		NewQuantity:  in.Quantity,
		MovementType: entity.MovementTypeReceipt,
		PerformedBy:  actor,
		Notes:        in.Notes,
	}
	if item != nil {
		adj.PreviousQuantity = item.Quantity
		adj.MovementType = entity.MovementTypeAdjustment
	}
	return uc.writer.Apply(ctx, adj)
}

// Issue registra una salida de almacén.
func (uc *UseCase) Issue(ctx context.Context, actor string, in dto.IssueStockRequest) error {
	return uc.writer.Issue(ctx, in.ProductID, in.WarehouseID, in.Quantity, actor, in.Notes)
}

// Transfer traslada stock entre dos almacenes.
func (uc *UseCase) Transfer(ctx context.Context, actor string, in dto.TransferStockRequest) error {
	return uc.writer.Transfer(ctx, in.ProductID, in.FromWarehouseID, in.ToWarehouseID, in.Quantity, actor, in.Notes)
}
