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
	appanalytics "github.com/tu-usuario/punto-venta/internal/application/analytics"
	"github.com/tu-usuario/punto-venta/internal/application/auth"
	"github.com/tu-usuario/punto-venta/internal/application/catalog"
	"github.com/tu-usuario/punto-venta/internal/application/customers"
	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/application/users"
	infrafirebase "github.com/tu-usuario/punto-venta/internal/infrastructure/firebase"
	infrapdf "github.com/tu-usuario/punto-venta/internal/infrastructure/pdf"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/punto-venta/internal/interfaces/http"
	"github.com/tu-usuario/punto-venta/pkg/config"
	"github.com/tu-usuario/punto-venta/pkg/logger"
)

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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	verifier, err := infrafirebase.NewVerifier(ctx, cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar Firebase Auth")
	}

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := identity.NewResolver()
	ledger := inventory.NewStockLedger()

	authUC := auth.NewAuthUseCase(verifier, resolver, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo)
	customerUC := customers.NewCustomerUseCase(customerRepo, saleRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, ledger, resolver)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, customerRepo, userRepo, analyticsRepo)
	receiptUC := sales.NewReceiptUseCase(saleQueryUC, infrapdf.NewReceiptGenerator(cfg.App.Name))
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	userAdminUC := users.NewUserAdminUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		CreateSale:  createSaleUC,
		SaleQueries: saleQueryUC,
		ReceiptUC:   receiptUC,
		DashboardUC: dashboardUC,
		UserAdminUC: userAdminUC,
		UserRepo:    userRepo,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Zerolog(),
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
