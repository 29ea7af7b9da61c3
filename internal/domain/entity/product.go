package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes posibles de un producto.
const (
	SourceAIS       = "ais"        // alta manual en el panel AIS
	SourceSeverRyba = "sever-ryba" // sintetizado desde el catálogo externo Север-Рыба
)

// SyntheticIDPrefix prefijo reservado para IDs de productos sintetizados
// desde el catálogo externo (ej. "SR-42"). Distingue el namespace local.
const SyntheticIDPrefix = "SR-"

// Product representa un producto del catálogo AIS. El SKU es la clave natural
// que une los registros locales con los del catálogo externo Север-Рыба.
// ExternalStockHint es la cantidad reportada por el catálogo externo en la
// última pasada de sincronización (solo informativa; el stock autoritativo
// vive en StockItem). IsReconciled indica si el externo aportó datos a este
// registro; una pasada sin datos externos NO lo resetea.
type Product struct {
	ID                string
	SKU               string
	Name              string
	Description       string
	CategoryID        string
	Unit              string // unidad de venta, ej. "шт", "кг"
	Price             decimal.Decimal
	ImageURL          string
	Supplier          string
	IsActive          bool
	Source            string
	ExternalStockHint *int64 // nil si el externo nunca reportó cantidad
	IsReconciled      bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
