// Package router assembles the HTTP application: repositories, services,
// handlers and the route table.
package router

import (
	"errors"
	"log/slog"
	"time"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Hub receives stock events and serves /ws. Nil disables both.
	Hub *ws.Hub
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// errorHandler renders errors that escape handlers (unknown routes,
// panics, rejected upgrades) with the same body shape as service errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

func New(opts Options) *fiber.App {
	cfg := opts.Config
	db := opts.DB

	// Repositories
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	stockRepo := repository.NewStockRepo(db)
	clientRepo := repository.NewClientRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	var events service.EventPublisher
	if opts.Hub != nil {
		events = opts.Hub
	}

	// Services
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(db, userRepo, tokens)
	invService := service.NewInventoryService(db, categoryRepo, productRepo, supplierRepo)
	stockService := service.NewStockService(db, stockRepo, productRepo, supplierRepo, userRepo, events)
	clientService := service.NewClientService(db, clientRepo, saleRepo)
	saleService := service.NewSaleService(db, saleRepo, clientRepo)
	dashService := service.NewDashboardService(dashboardRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookie, cfg.SessionTTL)
	invHandler := handler.NewInventoryHandler(invService)
	stockHandler := handler.NewStockHandler(stockService)
	saleHandler := handler.NewSaleHandler(clientService, saleService)
	dashHandler := handler.NewDashboardHandler(dashService)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler,
	})

	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")
	requireAuth := middleware.RequireAuth(authService, cfg.SessionCookie)

	// Session routes
	authLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimitMax > 0 {
		authLimit = limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many requests, try again later"})
			},
		})
	}
	api.Post("/register", authLimit, authHandler.Register)
	api.Post("/login", authLimit, authHandler.Login)
	api.Post("/logout", requireAuth, authHandler.Logout)
	api.Get("/me", requireAuth, authHandler.Me)

	// Catalog
	api.Get("/categories", invHandler.ListCategories)
	api.Post("/categories", invHandler.CreateCategory)
	api.Get("/categories/:id<int>", invHandler.GetCategory)
	api.Put("/categories/:id<int>", invHandler.UpdateCategory)
	api.Delete("/categories/:id<int>", invHandler.DeleteCategory)

	api.Get("/products", invHandler.ListProducts)
	api.Post("/products", invHandler.CreateProduct)
	api.Get("/products/:id<int>", invHandler.GetProduct)
	api.Put("/products/:id<int>", invHandler.UpdateProduct)
	api.Delete("/products/:id<int>", invHandler.DeleteProduct)

	api.Get("/suppliers", invHandler.ListSuppliers)
	api.Post("/suppliers", invHandler.CreateSupplier)
	api.Get("/suppliers/:id<int>", invHandler.GetSupplier)
	api.Put("/suppliers/:id<int>", invHandler.UpdateSupplier)
	api.Delete("/suppliers/:id<int>", invHandler.DeleteSupplier)

	// Stock ledger
	api.Get("/stocks", stockHandler.List)
	api.Post("/stocks", stockHandler.Create)
	api.Get("/stocks/:id<int>", stockHandler.Get)
	api.Put("/stocks/:id<int>", stockHandler.Update)
	api.Delete("/stocks/:id<int>", stockHandler.Delete)

	// Clients
	api.Get("/clients", saleHandler.ListClients)
	api.Post("/clients", saleHandler.CreateClient)
	api.Get("/clients/:id<int>", saleHandler.GetClient)
	api.Put("/clients/:id<int>", saleHandler.UpdateClient)
	api.Delete("/clients/:id<int>", saleHandler.DeleteClient)
	api.Get("/clients/:id<int>/sales", requireAuth, saleHandler.ListClientSales)

	// Sales
	api.Get("/sales", requireAuth, saleHandler.ListSales)
	api.Get("/sales/:id<int>", requireAuth, saleHandler.GetSale)
	api.Delete("/sales/:id<int>", requireAuth, middleware.RequirePermission(model.PermissionManager), saleHandler.DeleteSale)

	// Dashboard
	api.Get("/dashboard", requireAuth, dashHandler.GetDashboardStats)
	api.Get("/dashboard/summary", requireAuth, dashHandler.GetSummary)

	if opts.Hub != nil {
		app.Use("/ws", ws.Upgrade)
		app.Get("/ws", opts.Hub.Handler())
	}

	return app
}
