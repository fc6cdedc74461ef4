package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
	"github.com/jhoicas/barberia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/barberia-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/barberia-api/pkg/config"
)

// Store agrupa los repositorios y runners de transacción de un backend.
type Store struct {
	Users         repository.UserRepository
	Clients       repository.ClientRepository
	Barbers       repository.BarberRepository
	Services      repository.ServiceRepository
	Appointments  repository.AppointmentRepository
	Cash          repository.CashMovementRepository
	Items         repository.InventoryItemRepository
	Movements     repository.InventoryMovementRepository
	AppointmentTx appointment.TxRunner
	InventoryTx   inventory.TxRunner
}

// PostgresStore arma el Store sobre un pool pgx.
func PostgresStore(pool *pgxpool.Pool) *Store {
	tx := postgres.NewTxRunner(pool)
	return &Store{
		Users:         postgres.NewUserRepository(pool),
		Clients:       postgres.NewClientRepository(pool),
		Barbers:       postgres.NewBarberRepository(pool),
		Services:      postgres.NewServiceRepository(pool),
		Appointments:  postgres.NewAppointmentRepository(pool),
		Cash:          postgres.NewCashMovementRepository(pool),
		Items:         postgres.NewInventoryItemRepository(pool),
		Movements:     postgres.NewInventoryMovementRepository(pool),
		AppointmentTx: tx,
		InventoryTx:   tx,
	}
}

// SQLiteStore arma el Store sobre una base SQLite abierta con sqlite.Open.
func SQLiteStore(db *sql.DB) *Store {
	tx := sqlite.NewTxRunner(db)
	return &Store{
		Users:         sqlite.NewUserRepository(db),
		Clients:       sqlite.NewClientRepository(db),
		Barbers:       sqlite.NewBarberRepository(db),
		Services:      sqlite.NewServiceRepository(db),
		Appointments:  sqlite.NewAppointmentRepository(db),
		Cash:          sqlite.NewCashMovementRepository(db),
		Items:         sqlite.NewInventoryItemRepository(db),
		Movements:     sqlite.NewInventoryMovementRepository(db),
		AppointmentTx: tx,
		InventoryTx:   tx,
	}
}

// OpenStore abre el backend configurado en DB_DRIVER y aplica el esquema.
// El cierre devuelto libera la conexión o el pool.
func OpenStore(ctx context.Context, cfg config.DBConfig) (*Store, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return SQLiteStore(db), func() { _ = db.Close() }, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return PostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("driver de base de datos desconocido %q", cfg.Driver)
	}
}
