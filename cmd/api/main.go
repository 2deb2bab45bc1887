package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AmadeusReus/gestorpyme-api/internal/application/auth"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/business"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/catalog"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/day"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/ledger"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/session"
	"github.com/AmadeusReus/gestorpyme-api/internal/application/shift"
	"github.com/AmadeusReus/gestorpyme-api/internal/infrastructure/postgres"
	"github.com/AmadeusReus/gestorpyme-api/internal/infrastructure/security"
	httpRouter "github.com/AmadeusReus/gestorpyme-api/internal/interfaces/http"
	"github.com/AmadeusReus/gestorpyme-api/pkg/clock"
	"github.com/AmadeusReus/gestorpyme-api/pkg/config"
	"github.com/AmadeusReus/gestorpyme-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	businessClock, err := clock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	dayRepo := postgres.NewAccountingDayRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	eventRepo := postgres.NewCashEventRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool, time.Duration(cfg.DB.TimeoutSeconds)*time.Second)

	sessionGuard := session.NewGuard()
	authUC := auth.NewUseCase(userRepo, businessRepo, security.NewBcryptVerifier(), sessionGuard, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	businessUC := business.NewUseCase(businessRepo, log)
	shiftUC := shift.NewUseCase(txRunner, userRepo, shiftRepo, businessClock, log)
	ledgerUC := ledger.NewUseCase(eventRepo, shiftRepo, userRepo, log)
	dayUC := day.NewUseCase(txRunner, dayRepo, shiftRepo, eventRepo, userRepo, businessClock, log)
	catalogUC := catalog.NewUseCase(catalogRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: businessUC,
		ShiftUC:    shiftUC,
		LedgerUC:   ledgerUC,
		DayUC:      dayUC,
		CatalogUC:  catalogUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
