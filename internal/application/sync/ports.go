package sync

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExternalProduct es el registro tal como lo reporta el catálogo Север-Рыба.
// Solo SKU y Name son obligatorios; el resto son punteros porque la API
// externa puede omitir campos (ausente != cero). El decodificador nunca debe
// rellenar ausencias con valores vacíos.
type ExternalProduct struct {
	ID          int64            `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Category    *string          `json:"category,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int64           `json:"quantity,omitempty"`
	ImageURL    *string          `json:"image,omitempty"`
	Created     *time.Time       `json:"created,omitempty"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
}

// ExternalCatalog es el puerto hacia el catálogo externo. El fetch puede
// fallar por completo (catálogo caído); la pasada de sincronización lo tolera
// degradándose a datos locales.
type ExternalCatalog interface {
	FetchInventory(ctx context.Context) ([]ExternalProduct, error)
}
