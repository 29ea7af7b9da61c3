package dto

import "time"

// Modos del resultado de una pasada de sincronización.
const (
	SyncModeOnline   = "online"   // ambas fuentes respondieron
	SyncModeDegraded = "degraded" // solo datos locales (externo caído)
)

// SyncRequest body para POST /api/sync/sever-ryba.
type SyncRequest struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// SyncResult resumen de una pasada de sincronización. Se devuelve siempre
// como valor de la llamada, nunca como estado global del proceso.
type SyncResult struct {
	Mode                 string    `json:"mode"`
	WarehouseID          string    `json:"warehouse_id"`
	MergedCount          int       `json:"merged_count"`
	NewProducts          int       `json:"new_products"`
	AdjustmentsApplied   int       `json:"adjustments_applied"`
	AdjustmentsFailed    int       `json:"adjustments_failed"`
	SkippedRecords       int       `json:"skipped_records"`
	UnresolvedCategories int       `json:"unresolved_categories"`
	ProductWriteErrors   int       `json:"product_write_errors"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}
