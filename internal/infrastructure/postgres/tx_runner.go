package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ appointment.TxRunner = (*TxRunner)(nil)
)

// scheduleLockNamespace ocupa los 16 bits altos de la clave de pg_advisory_xact_lock(bigint);
// los 48 bajos son el ID del barbero.
const (
	scheduleLockNamespace int64 = 0x4241 // "BA"
	scheduleLockIDBits          = 48
)

func scheduleLockKey(barberID int64) int64 {
	return scheduleLockNamespace<<scheduleLockIDBits | barberID&(1<<scheduleLockIDBits-1)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	movements repository.InventoryMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewInventoryMovementRepository(tx))
	})
}

// RunForBarbers toma un advisory lock transaccional por barbero (en orden ascendente para
// evitar deadlocks) antes de ejecutar fn. Verificación y escritura de una cita quedan
// serializadas por barbero; la restricción de exclusión cubre cualquier escritura fuera de este camino.
func (r *TxRunner) RunForBarbers(ctx context.Context, barberIDs []int64, fn func(appts repository.AppointmentRepository) error) error {
	ids := slices.Clone(barberIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		for _, id := range ids {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, scheduleLockKey(id)); err != nil {
				return fmt.Errorf("lock agenda barbero %d: %w", id, err)
			}
		}
		return fn(NewAppointmentRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}
