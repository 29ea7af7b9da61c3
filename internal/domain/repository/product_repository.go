package repository

import "github.com/katarymba/ais-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateFromSync actualiza los campos que aporta la sincronización
	// (precio, hint de stock, flag de reconciliación, updated_at).
	UpdateFromSync(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	SetActive(id string, active bool) error
}
