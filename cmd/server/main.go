package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	menuapp "github.com/ldipasquale/terzo-posto-server/internal/application/menu"
	orderingapp "github.com/ldipasquale/terzo-posto-server/internal/application/ordering"
	supplyapp "github.com/ldipasquale/terzo-posto-server/internal/application/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/cache"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/config"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/logger"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/persistence"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/handler"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/middleware"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Terzo Posto server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	supplyRepo := persistence.NewGormSupplyRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	openAccountRepo := persistence.NewGormOpenAccountRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)
	supplyScope := persistence.NewGormSupplyTransactionScope(db.DB)

	// Cost cache (redis, memory or none per config)
	cacheFactory := cache.NewCostCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	costCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create cost cache", zap.Error(err))
	}
	log.Info("Cost cache initialized", zap.String("backend", cfg.Cache.Backend))

	// Application services
	supplyService := supplyapp.NewSupplyService(supplyScope, supplyRepo, menuItemRepo, costCache, log)
	menuService := menuapp.NewMenuItemService(menuItemRepo, supplyRepo, log)
	orderService := orderingapp.NewOrderService(txScope, orderRepo, openAccountRepo, menuItemRepo, log)
	openAccountService := orderingapp.NewOpenAccountService(txScope, openAccountRepo, orderRepo, log)

	// Handlers
	supplyHandler := handler.NewSupplyHandler(supplyService)
	menuItemHandler := handler.NewMenuItemHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	openAccountHandler := handler.NewOpenAccountHandler(openAccountService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	supplyRoutes := router.NewResourceGroup("/supplies")
	supplyRoutes.POST("", supplyHandler.Create)
	supplyRoutes.GET("", supplyHandler.List)
	supplyRoutes.GET("/costs", supplyHandler.GetAllCosts)
	supplyRoutes.GET("/:id", supplyHandler.GetByID)
	supplyRoutes.GET("/:id/cost", supplyHandler.GetCost)
	supplyRoutes.PUT("/:id", supplyHandler.Update)
	supplyRoutes.DELETE("/:id", supplyHandler.Delete)
	r.Register(supplyRoutes)

	menuItemRoutes := router.NewResourceGroup("/menu-items")
	menuItemRoutes.POST("", menuItemHandler.Create)
	menuItemRoutes.GET("", menuItemHandler.List)
	menuItemRoutes.GET("/:id", menuItemHandler.GetByID)
	menuItemRoutes.GET("/:id/cost", menuItemHandler.GetCost)
	menuItemRoutes.PUT("/:id", menuItemHandler.Update)
	menuItemRoutes.DELETE("/:id", menuItemHandler.Delete)
	r.Register(menuItemRoutes)

	orderRoutes := router.NewResourceGroup("/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	r.Register(orderRoutes)

	openAccountRoutes := router.NewResourceGroup("/open-accounts")
	openAccountRoutes.POST("", openAccountHandler.Create)
	openAccountRoutes.GET("", openAccountHandler.List)
	openAccountRoutes.GET("/:id", openAccountHandler.GetByID)
	openAccountRoutes.POST("/:id/orders", openAccountHandler.AttachOrder)
	openAccountRoutes.POST("/:id/close", openAccountHandler.Close)
	r.Register(openAccountRoutes)

	systemRoutes := router.NewResourceGroup("/system")
	systemRoutes.GET("/health", healthHandler(db))
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
