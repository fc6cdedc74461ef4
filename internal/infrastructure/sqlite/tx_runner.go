package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ appointment.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
// Con _txlock=immediate cada BEGIN toma el lock de escritura de la base,
// lo que serializa verificación y escritura entre transacciones.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	movements repository.InventoryMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewInventoryMovementRepository(tx))
	})
}

// RunForBarbers ejecuta fn con el repo de citas atado a la tx. El lock de escritura
// de SQLite cubre a todos los barberos, así que barberIDs no se usa.
func (r *TxRunner) RunForBarbers(ctx context.Context, _ []int64, fn func(appts repository.AppointmentRepository) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewAppointmentRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
