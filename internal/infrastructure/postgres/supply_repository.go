package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/katarymba/ais-api/internal/domain"
	"github.com/katarymba/ais-api/internal/domain/entity"
	"github.com/katarymba/ais-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL.
// Las líneas se cargan siempre junto con la cabecera.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de entregas.
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, supplier, warehouse_id, status, shipment_date, expected_arrival_date, actual_arrival_date, reference_number, notes, created_by, created_at, updated_at`

const supplyItemColumns = `id, supply_id, product_id, product_name, quantity_ordered, quantity_received, unit_price, warehouse_id, is_received, received_date, notes`

// Create inserta la entrega y sus líneas.
func (r *SupplyRepo) Create(s *entity.Supply) error {
	ctx := context.Background()
	query := `
		INSERT INTO supplies (` + supplyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Supplier, s.WarehouseID, s.Status, s.ShipmentDate,
		s.ExpectedArrivalDate, s.ActualArrivalDate, s.ReferenceNumber,
		s.Notes, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create supply: %w", err)
	}
	for _, it := range s.Items {
		if err := r.insertItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *SupplyRepo) insertItem(ctx context.Context, it *entity.SupplyItem) error {
	query := `
		INSERT INTO supply_items (` + supplyItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SupplyID, it.ProductID, it.ProductName, it.QuantityOrdered,
		it.QuantityReceived, it.UnitPrice, it.WarehouseID, it.IsReceived,
		it.ReceivedDate, it.Notes,
	)
	if err != nil {
		return fmt.Errorf("create supply item: %w", err)
	}
	return nil
}

// GetByID obtiene la entrega con sus líneas. nil si no existe.
func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	ctx := context.Background()
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1`
	s, err := scanSupply(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

// Update actualiza la cabecera de la entrega (las líneas vía UpdateItem).
func (r *SupplyRepo) Update(s *entity.Supply) error {
	query := `
		UPDATE supplies
		SET supplier = $2, warehouse_id = $3, status = $4, shipment_date = $5,
			expected_arrival_date = $6, actual_arrival_date = $7,
			reference_number = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Supplier, s.WarehouseID, s.Status, s.ShipmentDate,
		s.ExpectedArrivalDate, s.ActualArrivalDate, s.ReferenceNumber,
		s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista entregas según filtro, paginadas, más recientes primero.
func (r *SupplyRepo) List(filter repository.SupplyFilter, limit, offset int) ([]*entity.Supply, error) {
	ctx := context.Background()

	var conds []string
	var args []any
	if filter.Supplier != "" {
		args = append(args, filter.Supplier)
		conds = append(conds, "supplier = $"+strconv.Itoa(len(args)))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		conds = append(conds, "warehouse_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query := `SELECT ` + supplyColumns + ` FROM supplies` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.listItems(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

// UpdateItem actualiza una línea (cantidad recibida, flags de recepción).
func (r *SupplyRepo) UpdateItem(it *entity.SupplyItem) error {
	query := `
		UPDATE supply_items
		SET quantity_received = $2, warehouse_id = $3, is_received = $4,
			received_date = $5, notes = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		it.ID, it.QuantityReceived, it.WarehouseID, it.IsReceived,
		it.ReceivedDate, it.Notes,
	)
	if err != nil {
		return fmt.Errorf("update supply item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetItem obtiene una línea por ID. nil si no existe.
func (r *SupplyRepo) GetItem(itemID string) (*entity.SupplyItem, error) {
	query := `SELECT ` + supplyItemColumns + ` FROM supply_items WHERE id = $1`
	it, err := scanSupplyItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply item: %w", err)
	}
	return it, nil
}

func (r *SupplyRepo) listItems(ctx context.Context, supplyID string) ([]*entity.SupplyItem, error) {
	query := `SELECT ` + supplyItemColumns + ` FROM supply_items WHERE supply_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list supply items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SupplyItem
	for rows.Next() {
		it, err := scanSupplyItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	err := row.Scan(
		&s.ID, &s.Supplier, &s.WarehouseID, &s.Status, &s.ShipmentDate,
		&s.ExpectedArrivalDate, &s.ActualArrivalDate, &s.ReferenceNumber,
		&s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSupplyItem(row pgx.Row) (*entity.SupplyItem, error) {
	var it entity.SupplyItem
	err := row.Scan(
		&it.ID, &it.SupplyID, &it.ProductID, &it.ProductName, &it.QuantityOrdered,
		&it.QuantityReceived, &it.UnitPrice, &it.WarehouseID, &it.IsReceived,
		&it.ReceivedDate, &it.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
