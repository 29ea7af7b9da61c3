package sync

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/katarymba/ais-api/internal/domain/entity"
)

// MergeOptions políticas de la fusión de catálogos.
type MergeOptions struct {
	// DefaultCategoryID se asigna cuando el nombre de categoría externo no
	// resuelve contra el catálogo local.
	DefaultCategoryID string
	// DefaultUnit unidad asignada a productos sintetizados sin unidad ("шт").
	DefaultUnit string
}

// MergeResult resultado de una fusión de catálogos.
// Products es el conjunto unificado completo (orden no significativo).
// NewProducts y UpdatedProducts son los subconjuntos que la pasada debe
// persistir (sintetizados y locales tocados por el externo, respectivamente).
type MergeResult struct {
	Products             []*entity.Product
	NewProducts          []*entity.Product
	UpdatedProducts      []*entity.Product
	SkippedRecords       int // registros externos sin SKU
	UnresolvedCategories int // categorías externas que cayeron al default
	DuplicateLocalSKUs   int // SKUs locales duplicados (gana el último)
}

// MergeCatalogs fusiona el snapshot local con el externo usando el SKU como
// clave de unión. Función pura: no toca repositorios ni estado compartido.
//
// Reglas por registro externo:
//   - sin SKU: se omite (contado en SkippedRecords), nunca aborta la pasada;
//   - SKU conocido: el precio externo gana si viene y no es cero, updated_at
//     externo gana si es más reciente; id, created_at y category_id locales
//     se preservan; se anota el hint de stock y se marca IsReconciled;
//   - SKU nuevo: se sintetiza un Product con id en el namespace SR-,
//     degradando campo a campo lo que el externo no aporte.
//
// Un snapshot externo vacío devuelve los productos locales sin cambios.
func MergeCatalogs(
	local []*entity.Product,
	external []ExternalProduct,
	categories []*entity.Category,
	opts MergeOptions,
	now time.Time,
) MergeResult {
	res := MergeResult{}
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = "шт"
	}

	// Índice local por SKU; si hay duplicados gana el último y se
	// contabiliza para diagnóstico.
	index := make(map[string]*entity.Product, len(local))
	order := make([]string, 0, len(local))
	for _, p := range local {
		if _, ok := index[p.SKU]; ok {
			res.DuplicateLocalSKUs++
		} else {
			order = append(order, p.SKU)
		}
		index[p.SKU] = p
	}

	if len(external) == 0 {
		res.Products = append(res.Products, local...)
		return res
	}

	catIndex := buildCategoryIndex(categories)

	for i := range external {
		ext := &external[i]
		if strings.TrimSpace(ext.SKU) == "" {
			res.SkippedRecords++
			continue
		}

		if existing, ok := index[ext.SKU]; ok {
			mergeInto(existing, ext)
			res.UpdatedProducts = append(res.UpdatedProducts, existing)
			continue
		}

		p := synthesize(ext, catIndex, opts, now, &res)
		index[ext.SKU] = p
		order = append(order, ext.SKU)
		res.NewProducts = append(res.NewProducts, p)
	}

	res.Products = make([]*entity.Product, 0, len(order))
	for _, sku := range order {
		res.Products = append(res.Products, index[sku])
	}
	return res
}

// mergeInto aplica los campos externos sobre un producto local existente.
// Los campos que el externo no aporta quedan intactos.
func mergeInto(p *entity.Product, ext *ExternalProduct) {
	if ext.Price != nil && !ext.Price.IsZero() {
		p.Price = *ext.Price
	}
	if ext.LastUpdated != nil && ext.LastUpdated.After(p.UpdatedAt) {
		p.UpdatedAt = *ext.LastUpdated
	}
	if ext.Quantity != nil {
		q := *ext.Quantity
		p.ExternalStockHint = &q
	}
	p.IsReconciled = true
}

// synthesize crea un producto nuevo a partir de un registro externo cuyo SKU
// no existe localmente.
func synthesize(ext *ExternalProduct, catIndex map[string]string, opts MergeOptions, now time.Time, res *MergeResult) *entity.Product {
	id := entity.SyntheticIDPrefix
	if ext.ID > 0 {
		id += fmt.Sprintf("%d", ext.ID)
	} else {
		id += ext.SKU
	}

	categoryID := opts.DefaultCategoryID
	if ext.Category != nil {
		if resolved, ok := catIndex[categoryKey(*ext.Category)]; ok {
			categoryID = resolved
		} else {
			res.UnresolvedCategories++
		}
	} else {
		res.UnresolvedCategories++
	}

	p := &entity.Product{
		ID:           id,
		SKU:          ext.SKU,
		Name:         ext.Name,
		CategoryID:   categoryID,
		Unit:         opts.DefaultUnit,
		Supplier:     "Север-Рыба",
		IsActive:     true,
		Source:       entity.SourceSeverRyba,
		IsReconciled: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ext.Unit != nil && *ext.Unit != "" {
		p.Unit = *ext.Unit
	}
	if ext.Price != nil {
		p.Price = *ext.Price
	}
	if ext.ImageURL != nil {
		p.ImageURL = *ext.ImageURL
	}
	if ext.Created != nil {
		p.CreatedAt = *ext.Created
	}
	if ext.LastUpdated != nil {
		p.UpdatedAt = *ext.LastUpdated
	}
	if ext.Quantity != nil {
		q := *ext.Quantity
		p.ExternalStockHint = &q
	}
	return p
}

// buildCategoryIndex indexa categorías por nombre normalizado.
func buildCategoryIndex(categories []*entity.Category) map[string]string {
	idx := make(map[string]string, len(categories))
	for _, c := range categories {
		idx[categoryKey(c.Name)] = c.ID
	}
	return idx
}

// categoryKey normaliza un nombre de categoría para comparación exacta
// insensible a mayúsculas. NFC primero: los nombres cirílicos pueden llegar
// en formas Unicode distintas según el origen.
func categoryKey(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}
