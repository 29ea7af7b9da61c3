package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katarymba/ais-api/internal/application/auth"
	"github.com/katarymba/ais-api/internal/application/inventory"
	"github.com/katarymba/ais-api/internal/application/ledger"
	"github.com/katarymba/ais-api/internal/application/supply"
	appsync "github.com/katarymba/ais-api/internal/application/sync"
	"github.com/katarymba/ais-api/internal/application/usecase"
	"github.com/katarymba/ais-api/internal/infrastructure/postgres"
	"github.com/katarymba/ais-api/internal/infrastructure/severryba"
	httpRouter "github.com/katarymba/ais-api/internal/interfaces/http"
	"github.com/katarymba/ais-api/pkg/config"
	"github.com/katarymba/ais-api/pkg/logger"
)

// runMigrations aplica las migraciones SQL pendientes con goose (driver pgx).
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

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

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	writer := ledger.NewWriter(txRunner, ledger.Defaults{
		MinimumQuantity: cfg.Sync.DefaultMinimumQuantity,
		ReorderLevel:    cfg.Sync.DefaultReorderLevel,
	})

	severRybaClient := severryba.NewClient(cfg.SeverRyba, log)
	orchestrator := appsync.NewOrchestrator(
		severRybaClient, productRepo, stockRepo, categoryRepo, writer,
		appsync.Options{
			DefaultWarehouseID: cfg.Sync.DefaultWarehouseID,
			DefaultCategoryID:  cfg.Sync.DefaultCategoryID,
			Actor:              cfg.Sync.Actor,
		},
		log,
	)

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, stockRepo)
	statsUC := usecase.NewStatsUseCase(productRepo, stockRepo)
	stockQueryUC := usecase.NewStockQueryUseCase(stockRepo, movementRepo, productRepo, warehouseRepo)
	stockOpsUC := inventory.NewUseCase(stockRepo, productRepo, writer)
	supplyUC := supply.NewUseCase(supplyRepo, productRepo, writer, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "AIS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		WarehouseUC:  warehouseUC,
		StatsUC:      statsUC,
		StockQueryUC: stockQueryUC,
		StockOpsUC:   stockOpsUC,
		SupplyUC:     supplyUC,
		SyncUC:       orchestrator,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
