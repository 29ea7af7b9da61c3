package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/katarymba/ais-api/internal/application/auth"
	"github.com/katarymba/ais-api/internal/application/inventory"
	"github.com/katarymba/ais-api/internal/application/supply"
	appsync "github.com/katarymba/ais-api/internal/application/sync"
	"github.com/katarymba/ais-api/internal/application/usecase"
	"github.com/katarymba/ais-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	StatsUC      *usecase.StatsUseCase
	StockQueryUC *usecase.StockQueryUseCase
	StockOpsUC   *inventory.UseCase
	SupplyUC     *supply.UseCase
	SyncUC       *appsync.Orchestrator
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.StatsUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/statistics", warehouseHandler.Statistics)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Stocks (protegido)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockQueryUC, deps.StockOpsUC)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/movements", stockHandler.Movements)
	stocks.Get("/export", stockHandler.Export)
	stocks.Post("/count", stockHandler.Count)
	stocks.Post("/issue", stockHandler.Issue)
	stocks.Post("/transfer", stockHandler.Transfer)

	// Supplies (protegido)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Put("/:id", supplyHandler.Update)
	supplies.Post("/:id/receive", supplyHandler.ReceiveItem)
	supplies.Post("/:id/process", supplyHandler.Process)

	// Sincronización con Север-Рыба (protegido)
	syncGroup := protected.Group("/sync")
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup.Post("/sever-ryba", syncHandler.Run)
}
