package repository

import "github.com/katarymba/ais-api/internal/domain/entity"

// SupplyFilter filtros opcionales para listar entregas.
type SupplyFilter struct {
	Supplier    string
	WarehouseID string
	Status      string
}

// SupplyRepository define el puerto de persistencia para Supply y sus líneas.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	GetByID(id string) (*entity.Supply, error)
	Update(supply *entity.Supply) error
	List(filter SupplyFilter, limit, offset int) ([]*entity.Supply, error)
	UpdateItem(item *entity.SupplyItem) error
	GetItem(itemID string) (*entity.SupplyItem, error)
}
