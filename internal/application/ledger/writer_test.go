package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	items map[string]*entity.StockItem // key: productID|warehouseID
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: make(map[string]*entity.StockItem)}
}

func key(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.StockItem, error) {
	item, ok := r.items[key(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockItem, error) {
	return r.Get(productID, warehouseID)
}

func (r *memStockRepo) Upsert(item *entity.StockItem) error {
	cp := *item
	r.items[key(item.ProductID, item.WarehouseID)] = &cp
	return nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range r.items {
		if item.WarehouseID == warehouseID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListAll() ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStockRepo) CountByWarehouse(warehouseID string) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *memMovementRepo) ListByWarehouse(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) List(int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

// memTxRunner ejecuta el callback directamente sobre los fakes (sin tx real).
type memTxRunner struct {
	stock *memStockRepo
	mov   *memMovementRepo
}

func (tr *memTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	return fn(tr.stock, tr.mov)
}

func newTestWriter() (*ledger.Writer, *memStockRepo, *memMovementRepo) {
	stock := newMemStockRepo()
	mov := &memMovementRepo{}
	w := ledger.NewWriter(&memTxRunner{stock: stock, mov: mov}, ledger.Defaults{MinimumQuantity: 5, ReorderLevel: 10})
	return w, stock, mov
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

// Un receipt sobre una posición inexistente la crea con los defaults y deja
// el movimiento con previous 0.
func TestApply_ReceiptCreaPosicion(t *testing.T) {
	w, stock, mov := newTestWriter()

	err := w.Apply(context.Background(), ledger.Adjustment{
		ProductID:    "p1",
		WarehouseID:  "w1",
		NewQuantity:  40,
		MovementType: entity.MovementTypeReceipt,
		PerformedBy:  "sever-ryba-sync",
	})
	require.NoError(t, err)

	item, err := stock.Get("p1", "w1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, int64(40), item.Quantity)
	assert.Equal(t, int64(5), item.MinimumQuantity)
	assert.Equal(t, entity.StockStatusInStock, item.Status)

	require.Len(t, mov.movements, 1)
	m := mov.movements[0]
	assert.Equal(t, int64(0), m.PreviousQuantity)
	assert.Equal(t, int64(40), m.Quantity)
	assert.Equal(t, entity.MovementTypeReceipt, m.MovementType)
}

// El movimiento conserva la invariante previous + delta == cantidad final.
func TestApply_InvarianteDeConservacion(t *testing.T) {
	w, stock, mov := newTestWriter()

	require.NoError(t, w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1", NewQuantity: 30,
		MovementType: entity.MovementTypeReceipt,
	}))
	require.NoError(t, w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1",
		PreviousQuantity: 30, NewQuantity: 12,
		MovementType: entity.MovementTypeAdjustment,
	}))

	item, _ := stock.Get("p1", "w1")
	require.Len(t, mov.movements, 2)

	first, second := mov.movements[0], mov.movements[1]
	assert.Equal(t, first.PreviousQuantity+first.Quantity, second.PreviousQuantity,
		"el previous de cada movimiento debe encadenar con el resultado del anterior")
	assert.Equal(t, second.PreviousQuantity+second.Quantity, item.Quantity,
		"previous + delta del último movimiento debe igualar la cantidad final")
	assert.Equal(t, int64(-18), second.Quantity)
}

// Si otro escritor cambió la cantidad entre el cálculo y la aplicación, el
// compare-and-swap falla con ErrConflict y no se escribe nada.
func TestApply_ConflictoPorCantidadObsoleta(t *testing.T) {
	w, stock, mov := newTestWriter()

	require.NoError(t, w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1", NewQuantity: 30,
		MovementType: entity.MovementTypeReceipt,
	}))

	err := w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1",
		PreviousQuantity: 25, // la intención observó 25, pero hay 30
		NewQuantity:      10,
		MovementType:     entity.MovementTypeAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	item, _ := stock.Get("p1", "w1")
	assert.Equal(t, int64(30), item.Quantity, "la cantidad no debe cambiar tras un conflicto")
	assert.Len(t, mov.movements, 1, "no debe registrarse movimiento en un conflicto")
}

// Un adjustment sobre una posición inexistente es un conflicto, no un alta.
func TestApply_AdjustmentSinPosicionEsConflicto(t *testing.T) {
	w, _, _ := newTestWriter()

	err := w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1",
		PreviousQuantity: 5, NewQuantity: 10,
		MovementType: entity.MovementTypeAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Cantidad cero es un estado terminal válido: la posición queda agotada,
// nunca se borra.
func TestApply_CantidadCeroEsEstadoValido(t *testing.T) {
	w, stock, _ := newTestWriter()

	require.NoError(t, w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1", NewQuantity: 8,
		MovementType: entity.MovementTypeReceipt,
	}))
	require.NoError(t, w.Apply(context.Background(), ledger.Adjustment{
		ProductID: "p1", WarehouseID: "w1",
		PreviousQuantity: 8, NewQuantity: 0,
		MovementType: entity.MovementTypeAdjustment,
	}))

	item, _ := stock.Get("p1", "w1")
	require.NotNil(t, item)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Equal(t, entity.StockStatusOutOfStock, item.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive / Issue / Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_SumaSobrePosicionExistente(t *testing.T) {
	w, stock, mov := newTestWriter()

	require.NoError(t, w.Receive(context.Background(), "p1", "w1", 10, "operador", ""))
	require.NoError(t, w.Receive(context.Background(), "p1", "w1", 15, "operador", ""))

	item, _ := stock.Get("p1", "w1")
	assert.Equal(t, int64(25), item.Quantity)
	require.Len(t, mov.movements, 2)
	assert.Equal(t, int64(10), mov.movements[1].PreviousQuantity)
	assert.Equal(t, int64(15), mov.movements[1].Quantity)
}

func TestIssue_StockInsuficiente(t *testing.T) {
	w, stock, mov := newTestWriter()

	require.NoError(t, w.Receive(context.Background(), "p1", "w1", 5, "operador", ""))

	err := w.Issue(context.Background(), "p1", "w1", 8, "operador", "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, _ := stock.Get("p1", "w1")
	assert.Equal(t, int64(5), item.Quantity)
	assert.Len(t, mov.movements, 1)
}

func TestTransfer_MueveEntreAlmacenes(t *testing.T) {
	w, stock, mov := newTestWriter()

	require.NoError(t, w.Receive(context.Background(), "p1", "w1", 20, "operador", ""))
	require.NoError(t, w.Transfer(context.Background(), "p1", "w1", "w2", 7, "operador", ""))

	origin, _ := stock.Get("p1", "w1")
	dest, _ := stock.Get("p1", "w2")
	assert.Equal(t, int64(13), origin.Quantity)
	assert.Equal(t, int64(7), dest.Quantity)

	// Un receive + dos movimientos transfer (salida y entrada)
	require.Len(t, mov.movements, 3)
	assert.Equal(t, int64(-7), mov.movements[1].Quantity)
	assert.Equal(t, int64(7), mov.movements[2].Quantity)
	assert.Equal(t, entity.MovementTypeTransfer, mov.movements[1].MovementType)
	assert.Equal(t, entity.MovementTypeTransfer, mov.movements[2].MovementType)
}

func TestTransfer_MismoAlmacenEsInvalido(t *testing.T) {
	w, _, _ := newTestWriter()
	err := w.Transfer(context.Background(), "p1", "w1", "w1", 5, "operador", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
