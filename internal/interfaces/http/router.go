package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	OrgUC            *usecase.OrgUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockOverview    *inventory.StockOverviewUseCase
	Users            UserLookup
	RateLimiter      *OrgRateLimiter // nil = sin límite
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	read := RequirePermission(access.ActionRead)
	write := RequirePermission(access.ActionWrite)
	del := RequirePermission(access.ActionDelete)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ResolveActor(deps.Users))
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter.Middleware())
	}

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", write, productHandler.Create)
	products.Get("/", read, productHandler.List)
	products.Get("/:id", read, productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", del, productHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", write, warehouseHandler.Create)
	warehouses.Get("/", read, warehouseHandler.List)
	warehouses.Get("/:id", read, warehouseHandler.GetByID)
	warehouses.Put("/:id", write, warehouseHandler.Update)
	warehouses.Delete("/:id", del, warehouseHandler.Delete)

	// Stock
	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockOverview)
	stock.Get("/", read, inventoryHandler.ListStock)
	stock.Get("/low", read, inventoryHandler.LowStock)
	stock.Get("/report.pdf", read, inventoryHandler.StockReport)
	stock.Get("/products/:id", read, inventoryHandler.ProductStock)
	stock.Get("/movements", read, inventoryHandler.ListMovements)
	stock.Post("/movements", write, inventoryHandler.RegisterMovement)
	stock.Post("/transfers", write, inventoryHandler.Transfer)
	stock.Put("/quantity", write, inventoryHandler.SetQuantity)

	// Organización y miembros; el caso de uso vuelve a validar rol y jerarquía.
	orgs := protected.Group("/orgs/:orgId")
	orgHandler := NewOrgHandler(deps.OrgUC)
	orgs.Get("/", read, orgHandler.Get)
	orgs.Put("/", RequirePermission(access.ActionManage), orgHandler.Rename)
	orgs.Get("/members", read, orgHandler.ListMembers)
	orgs.Post("/members", RequirePermission(access.ActionManage), orgHandler.AddMember)
	orgs.Put("/members/:userId", RequirePermission(access.ActionManage), orgHandler.UpdateMemberRole)
	orgs.Delete("/members/:userId", del, orgHandler.RemoveMember)
	orgs.Get("/audit-log", RequirePermission(access.ActionManage), orgHandler.AuditLog)
}
