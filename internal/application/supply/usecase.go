package supply

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
	"github.com/katarymba/ais-api/pkg/logger"
)

// UseCase gestiona el ciclo de vida de las entregas (поставки):
// alta con líneas, recepción por línea y procesamiento final que convierte
// cada línea recibida en un movimiento de entrada vía el ledger.
type UseCase struct {
	supplyRepo  repository.SupplyRepository
	productRepo repository.ProductRepository
	writer      *ledger.Writer
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de entregas.
func NewUseCase(
	supplyRepo repository.SupplyRepository,
	productRepo repository.ProductRepository,
	writer *ledger.Writer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{supplyRepo: supplyRepo, productRepo: productRepo, writer: writer, log: log}
}

// Create da de alta una entrega con sus líneas en estado planned.
// Si una línea no trae nombre de producto se resuelve desde el catálogo.
func (uc *UseCase) Create(ctx context.Context, createdBy string, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if in.Supplier == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supply{
		ID:                  uuid.New().String(),
		Supplier:            in.Supplier,
		WarehouseID:         in.WarehouseID,
		Status:              entity.SupplyStatusPlanned,
		ShipmentDate:        in.ShipmentDate,
		ExpectedArrivalDate: in.ExpectedArrivalDate,
		ReferenceNumber:     in.ReferenceNumber,
		Notes:               in.Notes,
		CreatedBy:           createdBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.QuantityOrdered <= 0 {
			return nil, domain.ErrInvalidInput
		}
		name := item.ProductName
		if name == "" {
			if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
				name = p.Name
			} else {
				name = "Продукт " + item.ProductID
			}
		}
		warehouseID := item.WarehouseID
		if warehouseID == "" {
			warehouseID = in.WarehouseID
		}
		s.Items = append(s.Items, &entity.SupplyItem{
			ID:              uuid.New().String(),
			SupplyID:        s.ID,
			ProductID:       item.ProductID,
			ProductName:     name,
			QuantityOrdered: item.QuantityOrdered,
			UnitPrice:       item.UnitPrice,
			WarehouseID:     warehouseID,
		})
	}
	if err := uc.supplyRepo.Create(s); err != nil {
		return nil, err
	}
	return toSupplyResponse(s), nil
}

// GetByID obtiene una entrega con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.SupplyResponse, error) {
	s, err := uc.supplyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSupplyResponse(s), nil
}

// List lista entregas con filtros opcionales.
func (uc *UseCase) List(filter repository.SupplyFilter, limit, offset int) ([]*dto.SupplyResponse, error) {
	supplies, err := uc.supplyRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplyResponse, 0, len(supplies))
	for _, s := range supplies {
		out = append(out, toSupplyResponse(s))
	}
	return out, nil
}

// Update actualiza estado, fecha de llegada y notas de una entrega.
func (uc *UseCase) Update(id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	s, err := uc.supplyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.SupplyStatusPlanned, entity.SupplyStatusInTransit,
			entity.SupplyStatusReceived, entity.SupplyStatusCancelled:
			s.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.ActualArrivalDate != nil {
		s.ActualArrivalDate = in.ActualArrivalDate
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplyRepo.Update(s); err != nil {
		return nil, err
	}
	return toSupplyResponse(s), nil
}

// ReceiveItem marca una línea como recibida con la cantidad efectiva.
// No toca stock: eso ocurre al procesar la entrega completa.
func (uc *UseCase) ReceiveItem(supplyID string, in dto.ReceiveSupplyItemRequest) error {
	if in.ItemID == "" || in.QuantityReceived <= 0 {
		return domain.ErrInvalidInput
	}
	item, err := uc.supplyRepo.GetItem(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil || item.SupplyID != supplyID {
		return domain.ErrNotFound
	}
	now := time.Now()
	item.QuantityReceived = in.QuantityReceived
	item.IsReceived = true
	if item.ReceivedDate == nil {
		item.ReceivedDate = &now
	}
	if in.Notes != "" {
		item.Notes = in.Notes
	}
	return uc.supplyRepo.UpdateItem(item)
}

// ProcessReceived convierte cada línea recibida de una entrega en estado
// received en un movimiento de entrada y deja la entrega en processed.
// El fallo de una línea no aborta el resto (se contabiliza en el resultado).
func (uc *UseCase) ProcessReceived(ctx context.Context, supplyID, actor string) (*dto.ProcessSupplyResult, error) {
	s, err := uc.supplyRepo.GetByID(supplyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Status != entity.SupplyStatusReceived {
		return nil, domain.ErrSupplyNotReceived
	}

	result := &dto.ProcessSupplyResult{SupplyID: supplyID}
	for _, item := range s.Items {
		if !item.IsReceived || item.QuantityReceived <= 0 {
			continue
		}
		notes := fmt.Sprintf("Поставка #%s получена: %s", s.ID, item.ProductName)
		if err := uc.writer.Receive(ctx, item.ProductID, item.WarehouseID, item.QuantityReceived, actor, notes); err != nil {
			uc.log.Error().Err(err).
				Str("supply_id", s.ID).
				Str("product_id", item.ProductID).
				Msg("entrada de línea de entrega fallida")
			result.ItemsFailed++
			continue
		}
		result.ItemsProcessed++
	}

	s.Status = entity.SupplyStatusProcessed
	s.UpdatedAt = time.Now()
	if err := uc.supplyRepo.Update(s); err != nil {
		return nil, err
	}
	return result, nil
}

func toSupplyResponse(s *entity.Supply) *dto.SupplyResponse {
	out := &dto.SupplyResponse{
		ID:                  s.ID,
		Supplier:            s.Supplier,
		WarehouseID:         s.WarehouseID,
		Status:              s.Status,
		ShipmentDate:        s.ShipmentDate,
		ExpectedArrivalDate: s.ExpectedArrivalDate,
		ActualArrivalDate:   s.ActualArrivalDate,
		ReferenceNumber:     s.ReferenceNumber,
		Notes:               s.Notes,
		CreatedBy:           s.CreatedBy,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Items:               make([]dto.SupplyItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, dto.SupplyItemResponse{
			ID:               item.ID,
			SupplyID:         item.SupplyID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitPrice:        item.UnitPrice,
			WarehouseID:      item.WarehouseID,
			IsReceived:       item.IsReceived,
			ReceivedDate:     item.ReceivedDate,
			Notes:            item.Notes,
		})
	}
	return out
}
