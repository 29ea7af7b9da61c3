package sync

import (
	"context"
	gosync "sync"
	"time"

	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain/repository"
	"github.com/katarymba/ais-api/pkg/logger"
)

// Options políticas de la pasada de sincronización.
type Options struct {
	DefaultWarehouseID string
	DefaultCategoryID  string
	Actor              string // performed_by por defecto de los movimientos
}

// Orchestrator ejecuta la pasada completa de sincronización con Север-Рыба:
// snapshot local → snapshot externo → fusión → cálculo de ajustes →
// aplicación vía ledger. Sin estado persistente propio: cada pasada es
// independiente y re-derivable de las dos fuentes.
//
// Las pasadas concurrentes sobre el mismo almacén se serializan con un mutex
// por warehouse id: sin esa serialización dos pasadas podrían perderse
// actualizaciones de cantidad entre el cálculo y la escritura.
type Orchestrator struct {
	external      ExternalCatalog
	productRepo   repository.ProductRepository
	stockRepo     repository.StockRepository
	categoryRepo  repository.CategoryRepository
	writer        *ledger.Writer
	opts          Options
	log           *logger.Logger

	mu    gosync.Mutex
	locks map[string]*gosync.Mutex
}

// NewOrchestrator construye el orquestador de sincronización.
func NewOrchestrator(
	external ExternalCatalog,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	categoryRepo repository.CategoryRepository,
	writer *ledger.Writer,
	opts Options,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		external:     external,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		categoryRepo: categoryRepo,
		writer:       writer,
		opts:         opts,
		log:          log,
		locks:        make(map[string]*gosync.Mutex),
	}
}

// warehouseLock devuelve el mutex de un almacén, creándolo la primera vez.
func (o *Orchestrator) warehouseLock(warehouseID string) *gosync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	l, ok := o.locks[warehouseID]
	if !ok {
		l = &gosync.Mutex{}
		o.locks[warehouseID] = l
	}
	return l
}

// Run ejecuta una pasada de sincronización para un almacén. warehouseID y
// actor vacíos caen a los valores configurados.
//
// Si el catálogo externo no responde la pasada se degrada: la vista unificada
// es el snapshot local intacto, no se calcula ningún ajuste y el resultado
// vuelve con Mode "degraded" (nunca un flag global mutable; el caller decide
// sobre el valor devuelto). Los fallos por ajuste individual no abortan el
// lote: se contabilizan y la pasada continúa.
func (o *Orchestrator) Run(ctx context.Context, warehouseID, actor string) (*dto.SyncResult, error) {
	if warehouseID == "" {
		warehouseID = o.opts.DefaultWarehouseID
	}
	if actor == "" {
		actor = o.opts.Actor
	}

	lock := o.warehouseLock(warehouseID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	result := &dto.SyncResult{
		WarehouseID: warehouseID,
		StartedAt:   started,
		Mode:        dto.SyncModeOnline,
	}

	// Snapshot local: su fallo sí aborta la pasada (sin datos locales no hay
	// nada que fusionar ni contra qué calcular deltas).
	local, err := o.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	categories, err := o.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	stock, err := o.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}

	// Snapshot externo: su fallo degrada la pasada en vez de abortarla.
	external, err := o.external.FetchInventory(ctx)
	if err != nil {
		o.log.Warn().Err(err).Str("warehouse_id", warehouseID).
			Msg("catálogo Север-Рыба no disponible, pasada degradada a datos locales")
		result.Mode = dto.SyncModeDegraded
		result.MergedCount = len(local)
		result.FinishedAt = time.Now()
		passesTotal.WithLabelValues(result.Mode).Inc()
		return result, nil
	}

	merged := MergeCatalogs(local, external, categories, MergeOptions{
		DefaultCategoryID: o.opts.DefaultCategoryID,
	}, started)
	result.MergedCount = len(merged.Products)
	result.NewProducts = len(merged.NewProducts)
	result.SkippedRecords = merged.SkippedRecords
	result.UnresolvedCategories = merged.UnresolvedCategories

	if merged.DuplicateLocalSKUs > 0 {
		o.log.Warn().Int("duplicates", merged.DuplicateLocalSKUs).
			Msg("SKUs locales duplicados: gana el último registro")
	}

	// Persistir la vista fusionada: productos sintetizados y locales tocados.
	for _, p := range merged.NewProducts {
		if err := o.productRepo.Create(p); err != nil {
			o.log.Error().Err(err).Str("sku", p.SKU).Msg("alta de producto sintetizado")
			result.ProductWriteErrors++
		}
	}
	for _, p := range merged.UpdatedProducts {
		if err := o.productRepo.UpdateFromSync(p); err != nil {
			o.log.Error().Err(err).Str("sku", p.SKU).Msg("actualización de producto reconciliado")
			result.ProductWriteErrors++
		}
	}

	intents := ComputeAdjustments(merged.Products, stock, warehouseID, actor)
	for _, intent := range intents {
		if err := o.writer.Apply(ctx, intent); err != nil {
			o.log.Error().Err(err).
				Str("product_id", intent.ProductID).
				Str("warehouse_id", intent.WarehouseID).
				Msg("ajuste de stock fallido")
			result.AdjustmentsFailed++
			adjustmentsFailed.Inc()
			continue
		}
		result.AdjustmentsApplied++
		adjustmentsApplied.Inc()
	}

	result.FinishedAt = time.Now()
	passesTotal.WithLabelValues(result.Mode).Inc()
	o.log.Info().
		Str("mode", result.Mode).
		Int("merged", result.MergedCount).
		Int("applied", result.AdjustmentsApplied).
		Int("failed", result.AdjustmentsFailed).
		Dur("elapsed", result.FinishedAt.Sub(started)).
		Msg("pasada de sincronización completada")
	return result, nil
}
