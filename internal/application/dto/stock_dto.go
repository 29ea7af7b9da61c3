package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItemResponse representación HTTP de una posición de stock.
type StockItemResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	WarehouseID     string     `json:"warehouse_id"`
	Quantity        int64      `json:"quantity"`
	MinimumQuantity int64      `json:"minimum_quantity"`
	ReorderLevel    int64      `json:"reorder_level"`
	Status          string     `json:"status"`
	LastCountDate   *time.Time `json:"last_count_date,omitempty"`
	LastCountedBy   string     `json:"last_counted_by,omitempty"`
}

// CountStockRequest body para POST /api/stocks/count (inventario manual:
// fija la cantidad observada y deja un movimiento adjustment).
type CountStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// IssueStockRequest body para POST /api/stocks/issue (salida de almacén).
type IssueStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// TransferStockRequest body para POST /api/stocks/transfer.
type TransferStockRequest struct {
	ProductID       string `json:"product_id"`
	FromWarehouseID string `json:"from_warehouse_id"`
	ToWarehouseID   string `json:"to_warehouse_id"`
	Quantity        int64  `json:"quantity"`
	Notes           string `json:"notes,omitempty"`
}

// StockMovementResponse representación HTTP de un movimiento.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	WarehouseID      string    `json:"warehouse_id"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	MovementType     string    `json:"movement_type"`
	PerformedBy      string    `json:"performed_by"`
	MovementDate     time.Time `json:"movement_date"`
	Notes            string    `json:"notes,omitempty"`
}

// WarehouseStats estadísticas agregadas del panel de almacén.
// TotalValue valora el stock a precios AIS; TotalValueBySR a precios del
// catálogo Север-Рыба cuando el producto está reconciliado.
type WarehouseStats struct {
	TotalProducts    int             `json:"total_products"`
	TotalItems       int             `json:"total_items"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalValueBySR   decimal.Decimal `json:"total_value_by_sr"`
	LowStockItems    int             `json:"low_stock_items"`
	OutOfStockItems  int             `json:"out_of_stock_items"`
	PendingSyncItems int             `json:"pending_sync_items"`
}
