package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una entrega (поставка).
const (
	SupplyStatusPlanned   = "planned"
	SupplyStatusInTransit = "in-transit"
	SupplyStatusReceived  = "received"
	SupplyStatusProcessed = "processed"
	SupplyStatusCancelled = "cancelled"
)

// Supply representa una entrega de proveedor con sus líneas.
// Al procesarla (estado received → processed) cada línea recibida genera un
// movimiento de entrada vía el ledger de stock.
type Supply struct {
	ID                  string
	Supplier            string
	WarehouseID         string
	Status              string
	ShipmentDate        *time.Time
	ExpectedArrivalDate *time.Time
	ActualArrivalDate   *time.Time
	ReferenceNumber     string
	Notes               string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []*SupplyItem
}

// SupplyItem línea de una entrega. WarehouseID puede diferir del de la
// entrega si la línea se recibe en otro almacén.
type SupplyItem struct {
	ID               string
	SupplyID         string
	ProductID        string
	ProductName      string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitPrice        decimal.Decimal
	WarehouseID      string
	IsReceived       bool
	ReceivedDate     *time.Time
	Notes            string
}
