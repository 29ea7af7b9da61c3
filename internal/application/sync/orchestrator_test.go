package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
	"github.com/katarymba/ais-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	products []ExternalProduct
	err      error
	calls    int
}

func (f *fakeCatalog) FetchInventory(context.Context) ([]ExternalProduct, error) {
	f.calls++
	return f.products, f.err
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	created  int
	updated  int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.created++
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) UpdateFromSync(p *entity.Product) error {
	r.updated++
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return r.ListAll() }

func (r *fakeProductRepo) ListAll() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) SetActive(string, bool) error { return nil }

type fakeStockRepo struct {
	items map[string]*entity.StockItem // productID|warehouseID
	// failUpsertFor fuerza un error de escritura para un producto concreto
	failUpsertFor string
}

func newFakeStockRepo(items ...*entity.StockItem) *fakeStockRepo {
	r := &fakeStockRepo{items: make(map[string]*entity.StockItem)}
	for _, it := range items {
		r.items[it.ProductID+"|"+it.WarehouseID] = it
	}
	return r
}

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockItem, error) {
	return r.items[productID+"|"+warehouseID], nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockItem, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeStockRepo) Upsert(item *entity.StockItem) error {
	if r.failUpsertFor != "" && item.ProductID == r.failUpsertFor {
		return errors.New("write error")
	}
	r.items[item.ProductID+"|"+item.WarehouseID] = item
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		if it.WarehouseID == warehouseID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListAll() ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeStockRepo) CountByWarehouse(string) (int64, error) { return int64(len(r.items)), nil }

type fakeCategoryRepo struct{ categories []*entity.Category }

func (r *fakeCategoryRepo) Create(*entity.Category) error              { return nil }
func (r *fakeCategoryRepo) GetByID(string) (*entity.Category, error)   { return nil, nil }
func (r *fakeCategoryRepo) ListAll() ([]*entity.Category, error)       { return r.categories, nil }

type fakeMovementRepo struct{ movements []*entity.StockMovement }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByWarehouse(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}
func (r *fakeMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}
func (r *fakeMovementRepo) List(int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

type fakeTxRunner struct {
	stock *fakeStockRepo
	mov   *fakeMovementRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	return fn(tr.stock, tr.mov)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newTestOrchestrator(catalog ExternalCatalog, products *fakeProductRepo, stock *fakeStockRepo) (*Orchestrator, *fakeMovementRepo) {
	mov := &fakeMovementRepo{}
	writer := ledger.NewWriter(&fakeTxRunner{stock: stock, mov: mov}, ledger.Defaults{MinimumQuantity: 5, ReorderLevel: 10})
	o := NewOrchestrator(catalog, products, stock, &fakeCategoryRepo{}, writer, Options{
		DefaultWarehouseID: "w1",
		DefaultCategoryID:  "cat-def",
		Actor:              "sever-ryba-sync",
	}, testLogger())
	return o, mov
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasada completa
// ──────────────────────────────────────────────────────────────────────────────

// Pasada online: sintetiza el producto nuevo, ajusta el existente y registra
// los movimientos correspondientes.
func TestOrchestratorRun_PasadaOnline(t *testing.T) {
	local := &entity.Product{ID: "p1", SKU: "FISH-001", Name: "Треска", Source: entity.SourceAIS}
	products := newFakeProductRepo(local)
	stock := newFakeStockRepo(&entity.StockItem{
		ID: "s1", ProductID: "p1", WarehouseID: "w1", Quantity: 30, MinimumQuantity: 5,
	})
	catalog := &fakeCatalog{products: []ExternalProduct{
		{ID: 1, SKU: "FISH-001", Name: "Треска", Quantity: int64Ptr(50)},
		{ID: 2, SKU: "FISH-002", Name: "Минтай", Quantity: int64Ptr(20)},
	}}

	o, mov := newTestOrchestrator(catalog, products, stock)
	res, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, dto.SyncModeOnline, res.Mode)
	assert.Equal(t, "w1", res.WarehouseID)
	assert.Equal(t, 2, res.MergedCount)
	assert.Equal(t, 1, res.NewProducts)
	assert.Equal(t, 2, res.AdjustmentsApplied, "un adjustment y un receipt")
	assert.Zero(t, res.AdjustmentsFailed)
	assert.Equal(t, 1, products.created)
	assert.Equal(t, 1, products.updated)
	assert.Len(t, mov.movements, 2)

	// La posición existente quedó en el valor del hint
	item, _ := stock.Get("p1", "w1")
	assert.Equal(t, int64(50), item.Quantity)
	// La posición nueva se creó para el producto sintetizado
	synth, _ := stock.Get("SR-2", "w1")
	require.NotNil(t, synth)
	assert.Equal(t, int64(20), synth.Quantity)
}

// Catálogo externo caído: la pasada se degrada en vez de fallar. Mode
// "degraded", cero ajustes, cero escrituras, y el resultado se devuelve como
// valor con error nil.
func TestOrchestratorRun_ExternoCaidoDegrada(t *testing.T) {
	local := &entity.Product{ID: "p1", SKU: "FISH-001", Name: "Треска"}
	products := newFakeProductRepo(local)
	stock := newFakeStockRepo(&entity.StockItem{
		ID: "s1", ProductID: "p1", WarehouseID: "w1", Quantity: 30, MinimumQuantity: 5,
	})
	catalog := &fakeCatalog{err: domain.ErrSourceUnavailable}

	o, mov := newTestOrchestrator(catalog, products, stock)
	res, err := o.Run(context.Background(), "", "")
	require.NoError(t, err, "la degradación no es un error de la pasada")

	assert.Equal(t, dto.SyncModeDegraded, res.Mode)
	assert.Equal(t, 1, res.MergedCount, "la vista unificada es el snapshot local")
	assert.Zero(t, res.AdjustmentsApplied)
	assert.Zero(t, res.NewProducts)
	assert.Zero(t, products.created)
	assert.Zero(t, products.updated)
	assert.Empty(t, mov.movements, "en modo degradado no se escribe nada")

	item, _ := stock.Get("p1", "w1")
	assert.Equal(t, int64(30), item.Quantity, "el stock local queda intacto")
}

// Una pasada degradada no afecta a la siguiente: si el externo vuelve, la
// siguiente pasada es online (el modo es un valor del resultado, no estado).
func TestOrchestratorRun_RecuperacionTrasDegradada(t *testing.T) {
	products := newFakeProductRepo(&entity.Product{ID: "p1", SKU: "A", Name: "Uno"})
	stock := newFakeStockRepo()
	catalog := &fakeCatalog{err: errors.New("timeout")}

	o, _ := newTestOrchestrator(catalog, products, stock)

	res1, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, dto.SyncModeDegraded, res1.Mode)

	catalog.err = nil
	catalog.products = []ExternalProduct{{ID: 1, SKU: "A", Name: "Uno", Quantity: int64Ptr(5)}}

	res2, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, dto.SyncModeOnline, res2.Mode)
	assert.Equal(t, 1, res2.AdjustmentsApplied)
}

// Idempotencia de la pasada completa: repetirla sin cambios en las fuentes
// no genera nuevos movimientos.
func TestOrchestratorRun_PasadaRepetidaEsIdempotente(t *testing.T) {
	products := newFakeProductRepo()
	stock := newFakeStockRepo()
	catalog := &fakeCatalog{products: []ExternalProduct{
		{ID: 1, SKU: "A", Name: "Uno", Quantity: int64Ptr(10)},
	}}

	o, mov := newTestOrchestrator(catalog, products, stock)

	res1, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res1.AdjustmentsApplied)
	require.Len(t, mov.movements, 1)

	res2, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Zero(t, res2.AdjustmentsApplied, "sin cambios no hay ajustes")
	assert.Len(t, mov.movements, 1, "no se agregan movimientos en una pasada sin cambios")
}

// El fallo de un ajuste individual se contabiliza pero no aborta el lote:
// los demás ajustes de la pasada se aplican igual.
func TestOrchestratorRun_FalloIndividualNoAbortaElLote(t *testing.T) {
	products := newFakeProductRepo()
	stock := newFakeStockRepo()
	stock.failUpsertFor = "SR-1"
	catalog := &fakeCatalog{products: []ExternalProduct{
		{ID: 1, SKU: "A", Name: "Uno", Quantity: int64Ptr(5)},
		{ID: 2, SKU: "B", Name: "Dos", Quantity: int64Ptr(7)},
	}}

	o, _ := newTestOrchestrator(catalog, products, stock)
	res, err := o.Run(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.AdjustmentsFailed)
	assert.Equal(t, 1, res.AdjustmentsApplied)

	synth, _ := stock.Get("SR-2", "w1")
	require.NotNil(t, synth)
	assert.Equal(t, int64(7), synth.Quantity)
}
