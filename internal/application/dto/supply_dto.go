package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest body para POST /api/supplies.
type CreateSupplyRequest struct {
	Supplier            string                     `json:"supplier"`
	WarehouseID         string                     `json:"warehouse_id"`
	ShipmentDate        *time.Time                 `json:"shipment_date,omitempty"`
	ExpectedArrivalDate *time.Time                 `json:"expected_arrival_date,omitempty"`
	ReferenceNumber     string                     `json:"reference_number,omitempty"`
	Notes               string                     `json:"notes,omitempty"`
	Items               []CreateSupplyItemRequest  `json:"items"`
}

// CreateSupplyItemRequest línea de una entrega nueva.
type CreateSupplyItemRequest struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	QuantityOrdered int64           `json:"quantity_ordered"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	WarehouseID     string          `json:"warehouse_id,omitempty"`
}

// UpdateSupplyRequest body para PUT /api/supplies/:id.
type UpdateSupplyRequest struct {
	Status            *string    `json:"status,omitempty"`
	ActualArrivalDate *time.Time `json:"actual_arrival_date,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// ReceiveSupplyItemRequest marca una línea como recibida.
type ReceiveSupplyItemRequest struct {
	ItemID           string `json:"item_id"`
	QuantityReceived int64  `json:"quantity_received"`
	Notes            string `json:"notes,omitempty"`
}

// SupplyResponse representación HTTP de una entrega.
type SupplyResponse struct {
	ID                  string               `json:"id"`
	Supplier            string               `json:"supplier"`
	WarehouseID         string               `json:"warehouse_id"`
	Status              string               `json:"status"`
	ShipmentDate        *time.Time           `json:"shipment_date,omitempty"`
	ExpectedArrivalDate *time.Time           `json:"expected_arrival_date,omitempty"`
	ActualArrivalDate   *time.Time           `json:"actual_arrival_date,omitempty"`
	ReferenceNumber     string               `json:"reference_number,omitempty"`
	Notes               string               `json:"notes,omitempty"`
	CreatedBy           string               `json:"created_by"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
	Items               []SupplyItemResponse `json:"items"`
}

// SupplyItemResponse línea de una entrega.
type SupplyItemResponse struct {
	ID               string          `json:"id"`
	SupplyID         string          `json:"supply_id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	WarehouseID      string          `json:"warehouse_id"`
	IsReceived       bool            `json:"is_received"`
	ReceivedDate     *time.Time      `json:"received_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// ProcessSupplyResult resumen de procesar una entrega recibida.
type ProcessSupplyResult struct {
	SupplyID       string `json:"supply_id"`
	ItemsProcessed int    `json:"items_processed"`
	ItemsFailed    int    `json:"items_failed"`
}
