package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dailyfarm/market-api/internal/application/auth"
	"github.com/dailyfarm/market-api/internal/application/catalog"
	"github.com/dailyfarm/market-api/internal/application/orders"
	"github.com/dailyfarm/market-api/internal/application/profile"
	"github.com/dailyfarm/market-api/internal/infrastructure/postgres"
	httpRouter "github.com/dailyfarm/market-api/internal/interfaces/http"
	"github.com/dailyfarm/market-api/pkg/config"
	"github.com/dailyfarm/market-api/pkg/logger"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accountRepo := postgres.NewAccountRepository(pool)
	farmerRepo := postgres.NewFarmerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(accountRepo, farmerRepo, customerRepo,
		auth.JWTConfig{
			Secret:      cfg.JWT.Secret,
			ExpHours:    cfg.JWT.ExpHours,
			RefreshDays: cfg.JWT.RefreshDays,
			Issuer:      cfg.JWT.Issuer,
		},
		auth.Policy{
			MinLength: cfg.Accounts.PasswordMinLength,
			History:   cfg.Accounts.PasswordHistory,
		})
	catalogUC := catalog.NewCatalogUseCase(productRepo, farmerRepo, txRunner)
	orderUC := orders.NewOrderUseCase(customerRepo, farmerRepo, productRepo, orderRepo, txRunner)
	farmerUC := profile.NewFarmerUseCase(accountRepo, farmerRepo, productRepo)
	customerUC := profile.NewCustomerUseCase(accountRepo, customerRepo)

	sweeper := catalog.NewSweeper(catalogUC, cfg.Sweep.Interval, log)
	go sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		OrderUC:    orderUC,
		FarmerUC:   farmerUC,
		CustomerUC: customerUC,
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
