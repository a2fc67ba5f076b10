package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bookhive/bookhive-api/api/swagger"
	"github.com/bookhive/bookhive-api/internal/handler"
	"github.com/bookhive/bookhive-api/internal/middleware"
	"github.com/bookhive/bookhive-api/internal/models"
	"github.com/bookhive/bookhive-api/internal/repository"
	"github.com/bookhive/bookhive-api/internal/service"
	"github.com/bookhive/bookhive-api/pkg/cache"
	"github.com/bookhive/bookhive-api/pkg/config"
	"github.com/bookhive/bookhive-api/pkg/database"
	"github.com/bookhive/bookhive-api/pkg/logger"
	corsmiddleware "github.com/bookhive/bookhive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bookhive/bookhive-api/pkg/middleware/requestid"
	"github.com/bookhive/bookhive-api/pkg/storage"
)

// @title BookHive API
// @version 1.0.0
// @description Library and bookstore management: borrow, purchase, and return lifecycle
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}
	if cfg.Seed.Enabled {
		if err := database.Seed(db, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed default data", "error", err)
		}
	}

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	borrowRepo := repository.NewBorrowRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, logr)
	catalogSvc := service.NewCatalogService(bookRepo, cacheSvc, validate, logr)
	acquisitionSvc := service.NewAcquisitionService(bookRepo, borrowRepo, orderRepo, cacheSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	bookHandler := handler.NewBookHandler(catalogSvc)
	acquisitionHandler := handler.NewAcquisitionHandler(acquisitionSvc)
	userHandler := handler.NewUserHandler(userSvc)

	archive, err := storage.NewReportArchive(cfg.Report.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare report archive", "error", err)
	}
	if deleted, err := archive.CleanupOlderThan(cfg.Report.Retention); err != nil {
		logr.Sugar().Warnw("report archive cleanup failed", "error", err)
	} else if len(deleted) > 0 {
		logr.Sugar().Infow("expired reports removed", "count", len(deleted))
	}
	reportHandler := handler.NewReportHandler(catalogSvc, archive)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/books", bookHandler.ListBorrowCatalog)
	api.GET("/books/for-sale", bookHandler.ListSaleCatalog)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/dashboard", acquisitionHandler.Dashboard)
		authed.POST("/books/donate", bookHandler.Donate)
		authed.POST("/books/:id/borrow", acquisitionHandler.Borrow)
		authed.POST("/books/:id/purchase", acquisitionHandler.Purchase)
		authed.POST("/borrowed/:id/return", acquisitionHandler.Return)
	}

	staff := api.Group("/admin")
	staff.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleLibrarian))
	{
		staff.GET("/books", bookHandler.ListInventory)
		staff.GET("/books/:id", bookHandler.Get)
		staff.POST("/books", bookHandler.Create)
		staff.PUT("/books/:id", bookHandler.Update)
		staff.DELETE("/books/:id", bookHandler.Delete)
		staff.GET("/borrow-requests", acquisitionHandler.ListPendingRequests)
		staff.POST("/borrow-requests/:id/approve", acquisitionHandler.Approve)
		staff.POST("/borrow-requests/:id/reject", acquisitionHandler.Reject)
		staff.GET("/reports/inventory", reportHandler.Inventory)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.List)
		admin.POST("/users/:id/approve", userHandler.Approve)
		admin.DELETE("/users/:id", userHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
