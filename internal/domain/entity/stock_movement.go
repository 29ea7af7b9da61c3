package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeReceipt    = "receipt"    // entrada (поставка o alta inicial)
	MovementTypeAdjustment = "adjustment" // ajuste de inventario / sincronización
	MovementTypeIssue      = "issue"      // salida
	MovementTypeTransfer   = "transfer"   // traslado entre almacenes
)

// StockMovement es el registro inmutable de auditoría de un cambio de
// cantidad. Append-only: nunca se edita ni se borra. Invariante:
// PreviousQuantity + Quantity == cantidad del StockItem inmediatamente
// después de la escritura que lo produjo.
type StockMovement struct {
	ID               string
	ProductID        string
	WarehouseID      string
	Quantity         int64 // delta con signo
	PreviousQuantity int64
	MovementType     string
	PerformedBy      string
	MovementDate     time.Time
	Notes            string
}
