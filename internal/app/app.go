package app

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/auth"
	"github.com/jhoicas/barberia-api/internal/application/cash"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/application/setup"
	"github.com/jhoicas/barberia-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/barberia-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/barberia-api/internal/interfaces/http"
	"github.com/jhoicas/barberia-api/pkg/config"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// SwaggerFile ruta del documento OpenAPI servido en /docs.
const SwaggerFile = "./docs/swagger.json"

// New arma la aplicación Fiber: casos de uso, middlewares y rutas.
func New(cfg *config.Config, store *Store, log *logger.Logger) *fiber.App {
	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	appointmentUC := appointment.NewUseCase(store.AppointmentTx, store.Appointments, store.Clients, store.Barbers, store.Services)
	cashUC := cash.NewUseCase(store.Cash, store.Appointments, infrapdf.NewCashStatementGenerator(cfg.App.Name))
	itemUC := inventory.NewItemUseCase(store.Items, store.Movements)
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.InventoryTx, cfg.Inventory.AllowNegativeStock)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ClientUC:         usecase.NewClientUseCase(store.Clients),
		BarberUC:         usecase.NewBarberUseCase(store.Barbers),
		ServiceUC:        usecase.NewServiceUseCase(store.Services),
		AppointmentUC:    appointmentUC,
		CashUC:           cashUC,
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		JWTSecret:        cfg.JWT.Secret,
		RatePerMinute:    cfg.RateLimit.PerMinute,
		Logger:           log,
	})
	return app
}

// Seed ejecuta el seeder si está habilitado en la configuración.
func Seed(ctx context.Context, cfg *config.Config, store *Store, log *logger.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}
	return setup.NewSeeder(store.Users, store.Services, store.Barbers, setup.Config{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}, log.Named("seed")).Run(ctx)
}
