package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var (
	_ repository.InventoryItemRepository     = (*InventoryItemRepository)(nil)
	_ repository.InventoryMovementRepository = (*InventoryMovementRepository)(nil)
)

// InventoryItemRepository implementación SQLite de repository.InventoryItemRepository.
type InventoryItemRepository struct {
	db querier
}

// NewInventoryItemRepository construye el repositorio.
func NewInventoryItemRepository(db querier) *InventoryItemRepository {
	return &InventoryItemRepository{db: db}
}

const itemColumns = `id, name, stock_qty, initial_qty, unit, cost_cents, price_cents, low_stock_threshold, active, created_at`

func (r *InventoryItemRepository) Create(ctx context.Context, it *entity.InventoryItem) error {
	it.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory_items (name, stock_qty, initial_qty, unit, cost_cents, price_cents, low_stock_threshold, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		it.Name, it.StockQty.String(), it.InitialQty.String(), it.Unit, it.CostCents, it.PriceCents,
		it.LowStockThreshold.String(), it.Active, formatTime(it.CreatedAt),
	).Scan(&it.ID)
	return mapError(err)
}

func (r *InventoryItemRepository) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return it, err
}

// GetForUpdate en SQLite equivale a GetByID: la transacción IMMEDIATE ya tiene el lock de escritura.
func (r *InventoryItemRepository) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepository) Update(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE inventory_items SET name = ?, unit = ?, cost_cents = ?, price_cents = ?, low_stock_threshold = ?, active = ?
		 WHERE id = ?`,
		it.Name, it.Unit, it.CostCents, it.PriceCents, it.LowStockThreshold.String(), it.Active, it.ID,
	)
	return mapError(err)
}

func (r *InventoryItemRepository) UpdateStock(ctx context.Context, id int64, qty decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `UPDATE inventory_items SET stock_qty = ? WHERE id = ?`, qty.String(), id)
	return err
}

// List filtra bajo stock en Go: las cantidades son TEXT y no se comparan bien en SQL.
func (r *InventoryItemRepository) List(ctx context.Context, lowStockOnly bool) ([]*entity.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY active DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		if lowStockOnly && !it.IsLowStock() {
			continue
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanItem(s rowScanner) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var stock, initial, threshold, created string
	if err := s.Scan(&it.ID, &it.Name, &stock, &initial, &it.Unit, &it.CostCents, &it.PriceCents, &threshold, &it.Active, &created); err != nil {
		return nil, err
	}
	var err error
	if it.StockQty, err = parseDecimal(stock); err != nil {
		return nil, err
	}
	if it.InitialQty, err = parseDecimal(initial); err != nil {
		return nil, err
	}
	if it.LowStockThreshold, err = parseDecimal(threshold); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &it, nil
}

// InventoryMovementRepository implementación SQLite de repository.InventoryMovementRepository.
type InventoryMovementRepository struct {
	db querier
}

// NewInventoryMovementRepository construye el repositorio.
func NewInventoryMovementRepository(db querier) *InventoryMovementRepository {
	return &InventoryMovementRepository{db: db}
}

func (r *InventoryMovementRepository) Create(ctx context.Context, m *entity.InventoryMovement) error {
	m.CreatedAt = now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory_movements (item_id, change_qty, reason, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		m.ItemID, m.ChangeQty.String(), m.Reason, formatTime(m.CreatedAt),
	).Scan(&m.ID)
	return mapError(err)
}

func (r *InventoryMovementRepository) GetByID(ctx context.Context, id int64) (*entity.InventoryMovement, error) {
	m, err := scanMovement(r.db.QueryRowContext(ctx,
		`SELECT id, item_id, change_qty, reason, created_at FROM inventory_movements WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *InventoryMovementRepository) ListByItem(ctx context.Context, itemID int64, limit int) ([]*entity.InventoryMovement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_id, change_qty, reason, created_at FROM inventory_movements
		 WHERE item_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SumByItem suma en Go con aritmética decimal exacta.
func (r *InventoryMovementRepository) SumByItem(ctx context.Context, itemID int64) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT change_qty FROM inventory_movements WHERE item_id = ?`, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()
	total := decimal.Zero
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return decimal.Zero, err
		}
		d, err := parseDecimal(s)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d)
	}
	return total, rows.Err()
}

func scanMovement(s rowScanner) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var qty, created string
	var reason sql.NullString
	if err := s.Scan(&m.ID, &m.ItemID, &qty, &reason, &created); err != nil {
		return nil, err
	}
	var err error
	if m.ChangeQty, err = parseDecimal(qty); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	m.Reason = nullString(reason)
	return &m, nil
}
