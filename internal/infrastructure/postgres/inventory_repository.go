package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository     = (*InventoryItemRepo)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
)

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, name, stock_qty, initial_qty, unit, cost_cents, price_cents, low_stock_threshold, active, created_at`

func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventory_items (name, stock_qty, initial_qty, unit, cost_cents, price_cents, low_stock_threshold, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
		it.Name, it.StockQty, it.InitialQty, it.Unit, it.CostCents, it.PriceCents, it.LowStockThreshold, it.Active,
	).Scan(&it.ID, &it.CreatedAt)
	return mapError("insert inventory item", err)
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET name = $1, unit = $2, cost_cents = $3, price_cents = $4, low_stock_threshold = $5, active = $6
		 WHERE id = $7`,
		it.Name, it.Unit, it.CostCents, it.PriceCents, it.LowStockThreshold, it.Active, it.ID)
	return mapError("update inventory item", err)
}

func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id int64, qty decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE inventory_items SET stock_qty = $1 WHERE id = $2`, qty, id)
	return mapError("update stock", err)
}

func (r *InventoryItemRepo) List(ctx context.Context, lowStockOnly bool) ([]*entity.InventoryItem, error) {
	q := `SELECT ` + itemColumns + ` FROM inventory_items`
	if lowStockOnly {
		q += ` WHERE stock_qty <= low_stock_threshold`
	}
	q += ` ORDER BY active DESC, name ASC`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query string, id int64) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ID, &it.Name, &it.StockQty, &it.InitialQty, &it.Unit, &it.CostCents, &it.PriceCents,
		&it.LowStockThreshold, &it.Active, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventory_movements (item_id, change_qty, reason) VALUES ($1, $2, $3) RETURNING id, created_at`,
		m.ItemID, m.ChangeQty, m.Reason,
	).Scan(&m.ID, &m.CreatedAt)
	return mapError("create inventory movement", err)
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	err := r.q.QueryRow(ctx,
		`SELECT id, item_id, change_qty, reason, created_at FROM inventory_movements WHERE id = $1`, id,
	).Scan(&m.ID, &m.ItemID, &m.ChangeQty, &m.Reason, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory movement: %w", err)
	}
	return &m, nil
}

func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID int64, limit int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, item_id, change_qty, reason, created_at FROM inventory_movements
		 WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ChangeQty, &m.Reason, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *InventoryMovementRepo) SumByItem(ctx context.Context, itemID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(change_qty), 0) FROM inventory_movements WHERE item_id = $1`, itemID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory movements: %w", err)
	}
	return total, nil
}
