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

	_ "github.com/jhoicas/awb-weight-dashboard/docs"
	"github.com/jhoicas/awb-weight-dashboard/internal/application/dashboard"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/repository"
	"github.com/jhoicas/awb-weight-dashboard/internal/infrastructure/csvsource"
	infrapdf "github.com/jhoicas/awb-weight-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/awb-weight-dashboard/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/awb-weight-dashboard/internal/interfaces/http"
	"github.com/jhoicas/awb-weight-dashboard/pkg/config"
	"github.com/jhoicas/awb-weight-dashboard/pkg/logger"
)

const reportTitle = "UZUM Crossborder Weight Reconciliation Dashboard"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Historial de KPIs: opcional, solo con DB_ENABLED=true.
	var history repository.SnapshotRepository
	cacheOpts := []func(*csvsource.CacheOptions){csvsource.WithLogger(log)}
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		snapshotRepo := postgres.NewSnapshotRepository(pool)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear tabla de historial")
		}
		history = snapshotRepo
		recorder := dashboard.NewHistoryRecorder(snapshotRepo, log)
		cacheOpts = append(cacheOpts, csvsource.WithRefreshHook(recorder.Record))
	}

	loader := csvsource.NewLoader(cfg.Data.URL, cfg.Data.FetchTimeout, log)
	cache := csvsource.NewCache(loader, cfg.Data.CacheTTL, cacheOpts...)
	if cache.TTL() != cfg.Data.CacheTTL {
		log.Warn().
			Dur("configured", cfg.Data.CacheTTL).
			Dur("effective", cache.TTL()).
			Msg("TTL de caché fuera de rango, ajustado")
	}

	dashboardUC := dashboard.NewDashboardUseCase(cache, cache.TTL(), history)
	reportUC := dashboard.NewReportUseCase(dashboardUC, infrapdf.NewMarotoReportGenerator(reportTitle))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Data.FetchTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AWB Weight Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Precarga: la primera visita no espera la descarga.
	go func() {
		snap := cache.GetOrRefresh(ctx)
		if snap.Failed() {
			log.Warn().Str("message", snap.Message).Msg("precarga del CSV fallida")
		}
	}()

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
	// Escrituras del historial pendientes antes de cerrar el pool.
	cache.Wait()

	log.Info().Msg("aplicación detenida")
}
