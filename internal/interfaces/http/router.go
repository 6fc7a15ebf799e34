package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/punto-venta/internal/application/analytics"
	"github.com/tu-usuario/punto-venta/internal/application/auth"
	"github.com/tu-usuario/punto-venta/internal/application/catalog"
	"github.com/tu-usuario/punto-venta/internal/application/customers"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/application/users"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	CustomerUC  *customers.CustomerUseCase
	CreateSale  *sales.CreateSaleUseCase
	SaleQueries *sales.SaleQueryUseCase
	ReceiptUC   *sales.ReceiptUseCase
	DashboardUC *analytics.DashboardUseCase
	UserAdminUC *users.UserAdminUseCase
	UserRepo    repository.UserRepository
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público el login; /me requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; baja lógica solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)

	// Customers (protegido; baja lógica solo admin)
	custGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	custGroup.Post("/", customerHandler.Create)
	custGroup.Get("/", customerHandler.List)
	custGroup.Get("/dni/:dni", customerHandler.GetByDNI)
	custGroup.Get("/:id/sales", customerHandler.Sales)
	custGroup.Get("/:id", customerHandler.GetByID)
	custGroup.Put("/:id", customerHandler.Update)
	custGroup.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Deactivate)

	// Sales (protegido)
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQueries, deps.ReceiptUC, deps.UserRepo, deps.Log)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/stats", saleHandler.Stats)
	saleGroup.Get("/:id", saleHandler.Get)
	saleGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Users (solo admin)
	usersGroup := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserAdminUC)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Get("/:id", userHandler.GetByID)
	usersGroup.Patch("/:id/role", userHandler.UpdateRole)
	usersGroup.Patch("/:id/status", userHandler.UpdateStatus)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	dashboard.Get("/stats", dashboardHandler.Stats)
}
