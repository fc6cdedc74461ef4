package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barberia-api/internal/application/appointment"
	"github.com/jhoicas/barberia-api/internal/application/auth"
	"github.com/jhoicas/barberia-api/internal/application/cash"
	"github.com/jhoicas/barberia-api/internal/application/inventory"
	"github.com/jhoicas/barberia-api/internal/application/usecase"
	"github.com/jhoicas/barberia-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ClientUC         *usecase.ClientUseCase
	BarberUC         *usecase.BarberUseCase
	ServiceUC        *usecase.ServiceUseCase
	AppointmentUC    *appointment.UseCase
	CashUC           *cash.UseCase
	ItemUC           *inventory.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	JWTSecret        string
	RatePerMinute    int
	Logger           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	limiter := RateLimiter(deps.RatePerMinute)
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	authGroup := app.Group("/auth", limiter)
	authGroup.Post("/login", authHandler.Login)
	app.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", limiter, requireAuth)

	catalog := NewCatalogHandler(deps.ClientUC, deps.BarberUC, deps.ServiceUC, deps.Logger)
	clients := api.Group("/clients")
	clients.Get("/", catalog.ListClients)
	clients.Post("/", catalog.CreateClient)
	clients.Get("/:id", catalog.GetClient)
	clients.Put("/:id", catalog.UpdateClient)
	clients.Delete("/:id", catalog.DeleteClient)

	barbers := api.Group("/barbers")
	barbers.Get("/", catalog.ListBarbers)
	barbers.Post("/", catalog.CreateBarber)
	barbers.Put("/:id", catalog.UpdateBarber)

	services := api.Group("/services")
	services.Get("/", catalog.ListServices)
	services.Post("/", catalog.CreateService)
	services.Put("/:id", catalog.UpdateService)

	// Agenda
	apptHandler := NewAppointmentHandler(deps.AppointmentUC, deps.Logger)
	appts := api.Group("/appointments")
	appts.Get("/", apptHandler.List)
	appts.Post("/", apptHandler.Create)
	appts.Get("/:id", apptHandler.Get)
	appts.Put("/:id", apptHandler.Update)
	appts.Delete("/:id", apptHandler.Delete)

	// Caja
	cashHandler := NewCashHandler(deps.CashUC, deps.Logger)
	cashGroup := api.Group("/cash")
	cashGroup.Get("/", cashHandler.List)
	cashGroup.Post("/", cashHandler.Create)
	cashGroup.Get("/summary", cashHandler.Summary)
	cashGroup.Get("/report.pdf", cashHandler.Report)

	// Inventario
	invHandler := NewInventoryHandler(deps.ItemUC, deps.RegisterMovement, deps.Logger)
	inv := api.Group("/inventory")
	inv.Get("/items", invHandler.ListItems)
	inv.Post("/items", invHandler.CreateItem)
	inv.Put("/items/:id", invHandler.UpdateItem)
	inv.Get("/items/:id/movements", invHandler.ListMovements)
	inv.Post("/items/:id/movements", invHandler.RegisterMovement)
	inv.Get("/items/:id/reconcile", invHandler.Reconcile)
}
