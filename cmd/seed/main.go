// seed aplica el esquema y carga los datos iniciales (admin, servicios y barberos)
// sin levantar el servidor HTTP. Es idempotente: solo siembra tablas vacías.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DB_DRIVER, DATABASE_URL, SQLITE_PATH, SEED_ADMIN_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/barberia-api/internal/app"
	"github.com/jhoicas/barberia-api/pkg/config"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	// El comando siembra aunque SEED_ENABLED esté apagado para el servidor.
	cfg.Seed.Enabled = true

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir base de datos: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := app.Seed(ctx, cfg, store, log); err != nil {
		closeStore()
		fmt.Fprintf(os.Stderr, "Sembrar datos: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Datos iniciales listos (%s)\n", cfg.DB.Driver)
}
