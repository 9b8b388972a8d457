package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/commerce"
	apprepl "github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/infrastructure/linnworks"
	infrapdf "github.com/Demmoman6666/SBP-CRM-sub004/internal/infrastructure/pdf"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/infrastructure/postgres"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/infrastructure/shopify"
	httpRouter "github.com/Demmoman6666/SBP-CRM-sub004/internal/interfaces/http"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/config"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	attemptRepo := postgres.NewOrderAttemptRepository(pool)

	// Plataforma externa de inventario/órdenes: sesión cacheada compartida por
	// todas las peticiones concurrentes.
	sessions := linnworks.NewSessionCache(cfg.Linnworks)
	platform := linnworks.NewClient(sessions)

	calc := replenishment.NewCalculator(cfg.Forecast.FallbackSafetyFactor)
	forecastUC := apprepl.NewForecastUseCase(platform, calc)
	orderUC := apprepl.NewOrderUseCase(platform, attemptRepo, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := apprepl.NewPDFUseCase(attemptRepo, pdfGenerator)

	storefront := shopify.NewClient(cfg.Shopify)
	commerceUC := commerce.NewUseCase(storefront, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SBP CRM — Replenishment API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ForecastUC: forecastUC,
		OrderUC:    orderUC,
		OrderPDF:   orderPDFUC,
		CommerceUC: commerceUC,
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
