package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/auth"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/business"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/catalog"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/day"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/ledger"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/shift"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	BusinessUC *business.UseCase
	ShiftUC    *shift.UseCase
	LedgerUC   *ledger.UseCase
	DayUC      *day.UseCase
	CatalogUC  *catalog.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (públicos el login y la liberación de handle)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/release-handle", authHandler.ReleaseHandle)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)

	// Negocios del usuario
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	protected.Get("/businesses", businessHandler.ListMine)

	// Turnos
	shifts := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts.Post("/initialize", shiftHandler.Initialize)
	shifts.Get("/current", shiftHandler.Current)
	shifts.Get("/history", shiftHandler.History)
	shifts.Get("/:id", shiftHandler.GetByID)
	shifts.Post("/:id/close", shiftHandler.Close)
	shifts.Post("/:id/audit", RequireAuditRole(), shiftHandler.ConfirmAudit)

	// Eventos de caja
	eventHandler := NewEventHandler(deps.LedgerUC)
	events := protected.Group("/events")
	events.Post("/", eventHandler.Record)
	events.Delete("/:id", eventHandler.Remove)
	events.Post("/:id/audit", RequireAuditRole(), eventHandler.ConfirmAudit)
	shifts.Get("/:id/events", eventHandler.ListByShift)
	shifts.Get("/:id/events/summary", eventHandler.SummarizeByShift)

	// Día contable
	days := protected.Group("/days")
	dayHandler := NewDayHandler(deps.DayUC)
	days.Get("/current", dayHandler.Current)
	days.Post("/seal", RequireAuditRole(), dayHandler.Seal)
	days.Get("/:id/shifts", shiftHandler.ListByDay)
	days.Get("/:id/events/summary", eventHandler.DaySummary)

	// Catálogos de subtipos
	catalogs := protected.Group("/catalogs/:kind")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Post("/", catalogHandler.Create)
	catalogs.Put("/:id", catalogHandler.Rename)
	catalogs.Delete("/:id", catalogHandler.Deactivate)
}
