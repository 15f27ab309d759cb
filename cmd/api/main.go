package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/http"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/http/handlers"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/auth"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/config"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/events"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/observability"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/persistence"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := pg.Migrate(ctx, cfg.Postgres.MigrationsDir); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	sessionRepo := repository.NewSessionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	subCategoryRepo := repository.NewSubCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	navbarRepo := repository.NewNavbarRepository(pool)
	enquiryRepo := repository.NewEnquiryRepository(pool)

	catalogCache := cache.NewCatalogCache(redis.Client, cfg.Cache.PublicTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		SessionRepo: sessionRepo,
		Logger:      logger,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CategoryRepo:    categoryRepo,
		SubCategoryRepo: subCategoryRepo,
		ProductRepo:     productRepo,
		NavbarRepo:      navbarRepo,
		Cache:           catalogCache,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	enquiryService := service.NewEnquiryService(service.EnquiryDependencies{
		EnquiryRepo: enquiryRepo,
		ProductRepo: productRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	assetService := service.NewAssetService(cfg.Assets, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionMiddleware := auth.NewMiddleware(authService)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Categories:    handlers.NewCategoriesHandler(catalogService, catalogCache),
		SubCategories: handlers.NewSubCategoriesHandler(catalogService, catalogCache),
		Products:      handlers.NewProductsHandler(catalogService, catalogCache),
		Navbar:        handlers.NewNavbarHandler(catalogService, catalogCache),
		Enquiries:     handlers.NewEnquiriesHandler(enquiryService),
		Uploads:       handlers.NewUploadsHandler(assetService),
		Sitemap:       handlers.NewSitemapHandler(catalogService, cfg.Site.BaseURL),
		Session:       sessionMiddleware,
		Metrics:       metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
