package sync

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katarymba/ais-api/internal/domain/entity"
)

var mergeNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string          { return &s }
func int64Ptr(n int64) *int64          { return &n }
func decPtr(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }

func localProduct(id, sku, name, price string) *entity.Product {
	return &entity.Product{
		ID:         id,
		SKU:        sku,
		Name:       name,
		CategoryID: "cat-local",
		Unit:       "шт",
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
		Source:     entity.SourceAIS,
		CreatedAt:  mergeNow.Add(-48 * time.Hour),
		UpdatedAt:  mergeNow.Add(-24 * time.Hour),
	}
}

// SKU conocido en ambos lados: gana el precio externo no nulo, se anota el
// hint de stock y el producto queda reconciliado; id, created_at y categoría
// locales se preservan.
func TestMergeCatalogs_SKUConocidoFusionaCampos(t *testing.T) {
	local := []*entity.Product{localProduct("p1", "FISH-001", "Треска", "100.00")}
	external := []ExternalProduct{{
		ID:       42,
		SKU:      "FISH-001",
		Name:     "Треска атлантическая",
		Price:    decPtr("119.90"),
		Quantity: int64Ptr(35),
	}}

	res := MergeCatalogs(local, external, nil, MergeOptions{DefaultCategoryID: "cat-def"}, mergeNow)

	require.Len(t, res.Products, 1)
	p := res.Products[0]
	assert.Equal(t, "p1", p.ID, "el id local se preserva")
	assert.Equal(t, "cat-local", p.CategoryID, "la categoría local se preserva")
	assert.True(t, p.Price.Equal(decimal.RequireFromString("119.90")), "el precio externo gana")
	require.NotNil(t, p.ExternalStockHint)
	assert.Equal(t, int64(35), *p.ExternalStockHint)
	assert.True(t, p.IsReconciled)
	require.Len(t, res.UpdatedProducts, 1)
	assert.Empty(t, res.NewProducts)
}

// Precio externo cero o ausente: el precio local se mantiene.
func TestMergeCatalogs_PrecioExternoCeroNoGana(t *testing.T) {
	zero := decimal.Zero
	local := []*entity.Product{localProduct("p1", "FISH-001", "Треска", "100.00")}
	external := []ExternalProduct{
		{ID: 1, SKU: "FISH-001", Name: "Треска", Price: &zero, Quantity: int64Ptr(5)},
	}

	res := MergeCatalogs(local, external, nil, MergeOptions{}, mergeNow)

	assert.True(t, res.Products[0].Price.Equal(decimal.RequireFromString("100.00")))
}

// SKU nuevo: se sintetiza un producto en el namespace SR- con origen
// sever-ryba y los campos ausentes degradados a los defaults.
func TestMergeCatalogs_SKUNuevoSintetizaProducto(t *testing.T) {
	external := []ExternalProduct{{
		ID:       77,
		SKU:      "FISH-777",
		Name:     "Сёмга слабосолёная",
		Price:    decPtr("450.00"),
		Quantity: int64Ptr(12),
	}}

	res := MergeCatalogs(nil, external, nil, MergeOptions{DefaultCategoryID: "cat-def"}, mergeNow)

	require.Len(t, res.NewProducts, 1)
	p := res.NewProducts[0]
	assert.Equal(t, "SR-77", p.ID)
	assert.Equal(t, entity.SourceSeverRyba, p.Source)
	assert.Equal(t, "cat-def", p.CategoryID)
	assert.Equal(t, "шт", p.Unit, "unidad por defecto cuando el externo no la aporta")
	assert.True(t, p.IsActive)
	assert.True(t, p.IsReconciled)
	assert.Equal(t, 1, res.UnresolvedCategories, "sin categoría externa cuenta como no resuelta")
}

// El nombre de categoría externo resuelve por comparación normalizada
// (mayúsculas y formas Unicode del cirílico no importan).
func TestMergeCatalogs_CategoriaResuelvePorNombreNormalizado(t *testing.T) {
	categories := []*entity.Category{{ID: "cat-9", Name: "Рыба свежая"}}
	external := []ExternalProduct{{
		ID: 1, SKU: "FISH-001", Name: "Треска",
		Category: strPtr("  РЫБА СВЕЖАЯ "),
	}}

	res := MergeCatalogs(nil, external, categories, MergeOptions{DefaultCategoryID: "cat-def"}, mergeNow)

	require.Len(t, res.NewProducts, 1)
	assert.Equal(t, "cat-9", res.NewProducts[0].CategoryID)
	assert.Zero(t, res.UnresolvedCategories)
}

// Un registro externo sin last_updated (o con uno más antiguo) no toca el
// updated_at local: los campos que el externo no aporta quedan intactos.
func TestMergeCatalogs_SinLastUpdatedPreservaUpdatedAtLocal(t *testing.T) {
	local := []*entity.Product{localProduct("p1", "FISH-001", "Треска", "100.00")}
	localUpdatedAt := local[0].UpdatedAt
	external := []ExternalProduct{
		{ID: 1, SKU: "FISH-001", Name: "Треска", Quantity: int64Ptr(10)},
	}

	res := MergeCatalogs(local, external, nil, MergeOptions{}, mergeNow)

	require.Len(t, res.Products, 1)
	assert.True(t, res.Products[0].UpdatedAt.Equal(localUpdatedAt),
		"sin last_updated externo el updated_at local no cambia")
	assert.True(t, res.Products[0].IsReconciled)

	older := localUpdatedAt.Add(-time.Hour)
	local2 := []*entity.Product{localProduct("p1", "FISH-001", "Треска", "100.00")}
	external2 := []ExternalProduct{
		{ID: 1, SKU: "FISH-001", Name: "Треска", LastUpdated: &older},
	}

	res2 := MergeCatalogs(local2, external2, nil, MergeOptions{}, mergeNow)

	assert.True(t, res2.Products[0].UpdatedAt.Equal(localUpdatedAt),
		"un last_updated externo más antiguo tampoco gana")
}

// Registro externo sin SKU: se omite y se cuenta, la pasada no aborta.
func TestMergeCatalogs_RegistroSinSKUSeOmite(t *testing.T) {
	local := []*entity.Product{localProduct("p1", "FISH-001", "Треска", "100.00")}
	external := []ExternalProduct{
		{ID: 1, SKU: "  ", Name: "Sin SKU"},
		{ID: 2, SKU: "FISH-002", Name: "Минтай"},
	}

	res := MergeCatalogs(local, external, nil, MergeOptions{}, mergeNow)

	assert.Equal(t, 1, res.SkippedRecords)
	assert.Len(t, res.Products, 2, "el local más el sintetizado")
}

// Snapshot externo vacío: la vista unificada es el catálogo local intacto
// y nada queda marcado para persistir.
func TestMergeCatalogs_ExternoVacioDevuelveLocalIntacto(t *testing.T) {
	local := []*entity.Product{
		localProduct("p1", "FISH-001", "Треска", "100.00"),
		localProduct("p2", "FISH-002", "Минтай", "80.00"),
	}

	res := MergeCatalogs(local, nil, nil, MergeOptions{}, mergeNow)

	assert.Len(t, res.Products, 2)
	assert.Empty(t, res.NewProducts)
	assert.Empty(t, res.UpdatedProducts)
	assert.False(t, res.Products[0].IsReconciled, "una pasada sin datos externos no marca reconciliación")
}

// La fusión es completa: todo SKU de cualquiera de las dos fuentes aparece
// exactamente una vez en la vista unificada.
func TestMergeCatalogs_UnionCompletaSinPerdidas(t *testing.T) {
	local := []*entity.Product{
		localProduct("p1", "A", "Solo local", "10.00"),
		localProduct("p2", "B", "En ambos", "20.00"),
	}
	external := []ExternalProduct{
		{ID: 1, SKU: "B", Name: "En ambos", Quantity: int64Ptr(3)},
		{ID: 2, SKU: "C", Name: "Solo externo", Quantity: int64Ptr(4)},
	}

	res := MergeCatalogs(local, external, nil, MergeOptions{}, mergeNow)

	skus := make(map[string]int)
	for _, p := range res.Products {
		skus[p.SKU]++
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, skus)
}

// SKUs locales duplicados: gana el último registro y se contabiliza.
func TestMergeCatalogs_SKULocalDuplicadoGanaElUltimo(t *testing.T) {
	local := []*entity.Product{
		localProduct("p1", "DUP", "Primero", "10.00"),
		localProduct("p2", "DUP", "Segundo", "20.00"),
	}
	external := []ExternalProduct{{ID: 1, SKU: "DUP", Name: "Dup", Quantity: int64Ptr(9)}}

	res := MergeCatalogs(local, external, nil, MergeOptions{}, mergeNow)

	assert.Equal(t, 1, res.DuplicateLocalSKUs)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "p2", res.Products[0].ID)
}

// La fusión es determinista e idempotente respecto a snapshots iguales:
// fusionar dos veces las mismas entradas da vistas equivalentes.
func TestMergeCatalogs_Determinista(t *testing.T) {
	build := func() ([]*entity.Product, []ExternalProduct) {
		return []*entity.Product{localProduct("p1", "A", "Uno", "10.00")},
			[]ExternalProduct{{ID: 2, SKU: "B", Name: "Dos", Quantity: int64Ptr(4), Price: decPtr("15.00")}}
	}
	l1, e1 := build()
	l2, e2 := build()

	r1 := MergeCatalogs(l1, e1, nil, MergeOptions{DefaultCategoryID: "cat"}, mergeNow)
	r2 := MergeCatalogs(l2, e2, nil, MergeOptions{DefaultCategoryID: "cat"}, mergeNow)

	require.Equal(t, len(r1.Products), len(r2.Products))
	for i := range r1.Products {
		assert.Equal(t, r1.Products[i].SKU, r2.Products[i].SKU)
		assert.Equal(t, r1.Products[i].ID, r2.Products[i].ID)
	}
}
