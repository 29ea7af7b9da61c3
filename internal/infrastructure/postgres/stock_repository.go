package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, warehouse_id, quantity, minimum_quantity, reorder_level, status, last_count_date, last_counted_by`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	var lastCountedBy *string
	err := row.Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.MinimumQuantity,
		&s.ReorderLevel, &s.Status, &s.LastCountDate, &lastCountedBy,
	)
	if err != nil {
		return nil, err
	}
	if lastCountedBy != nil {
		s.LastCountedBy = *lastCountedBy
	}
	return &s, nil
}

// Get obtiene la posición de un producto en un almacén. nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items WHERE product_id = $1 AND warehouse_id = $2`
	s, err := scanStockItem(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE).
// nil si no existe todavía.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	s, err := scanStockItem(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la posición (por producto y almacén).
func (r *StockRepo) Upsert(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, product_id, warehouse_id, quantity, minimum_quantity, reorder_level, status, last_count_date, last_counted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			minimum_quantity = EXCLUDED.minimum_quantity,
			reorder_level = EXCLUDED.reorder_level,
			status = EXCLUDED.status,
			last_count_date = EXCLUDED.last_count_date,
			last_counted_by = EXCLUDED.last_counted_by`
	var lastCountedBy *string
	if item.LastCountedBy != "" {
		lastCountedBy = &item.LastCountedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.WarehouseID, item.Quantity, item.MinimumQuantity,
		item.ReorderLevel, item.Status, item.LastCountDate, lastCountedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert stock item: %w", err)
	}
	return nil
}

// ListByWarehouse lista todas las posiciones de un almacén.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items WHERE warehouse_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListAll lista todas las posiciones de todos los almacenes.
func (r *StockRepo) ListAll() ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_items ORDER BY warehouse_id, product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// CountByWarehouse cuenta las posiciones de un almacén.
func (r *StockRepo) CountByWarehouse(warehouseID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_items WHERE warehouse_id = $1`, warehouseID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock by warehouse: %w", err)
	}
	return count, nil
}

func collectStockItems(rows pgx.Rows) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
