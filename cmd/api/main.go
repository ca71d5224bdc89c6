package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/karigarverse/karigarverse-api/internal/application/artisan"
	"github.com/karigarverse/karigarverse-api/internal/application/auth"
	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/application/usecase"
	"github.com/karigarverse/karigarverse-api/internal/infrastructure/cache"
	infrapdf "github.com/karigarverse/karigarverse-api/internal/infrastructure/pdf"
	"github.com/karigarverse/karigarverse-api/internal/infrastructure/postgres"
	httpRouter "github.com/karigarverse/karigarverse-api/internal/interfaces/http"
	"github.com/karigarverse/karigarverse-api/pkg/config"
	"github.com/karigarverse/karigarverse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	artisanRepo := postgres.NewArtisanProfileRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Product cache is optional: no REDIS_ADDR, no cache.
	var productCache usecase.ProductCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, product cache disabled")
		} else {
			productCache = cache.NewRedisCache(rdb)
			defer rdb.Close()
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, profileRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	profileUC := usecase.NewProfileUseCase(profileRepo)
	artisanUC := artisan.NewReconcileUseCase(artisanRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, artisanRepo, productCache, cfg.Redis.TTL)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, productRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	checkoutUC := checkout.NewUseCase(txRunner, orderRepo, artisanRepo, profileRepo, notifRepo, receiptGenerator, log)

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
		AuthUC:         authUC,
		ProfileUC:      profileUC,
		ArtisanUC:      artisanUC,
		CategoryUC:     categoryUC,
		ProductUC:      productUC,
		ReviewUC:       reviewUC,
		CartUC:         cartUC,
		CheckoutUC:     checkoutUC,
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
