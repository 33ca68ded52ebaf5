package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appstock "github.com/erp/stockops/internal/application/stock"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/erp/stockops/internal/infrastructure/auth"
	"github.com/erp/stockops/internal/infrastructure/config"
	"github.com/erp/stockops/internal/infrastructure/event"
	"github.com/erp/stockops/internal/infrastructure/logger"
	"github.com/erp/stockops/internal/infrastructure/persistence"
	"github.com/erp/stockops/internal/interfaces/http/dto"
	"github.com/erp/stockops/internal/interfaces/http/handler"
	"github.com/erp/stockops/internal/interfaces/http/middleware"
	"github.com/erp/stockops/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting stockops server",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Wiring: transaction scope, host engine, services, event bus
	scope := persistence.NewGormTransactionScope(db.DB)
	engine := stock.NewInventoryEngine()
	bus := event.NewInMemoryEventBus(log)

	workflowSvc := appstock.NewPickingWorkflowService(scope, log)
	workflowSvc.SetEventPublisher(bus)
	changeSvc := appstock.NewChangeWarehouseService(scope, engine, log)
	changeSvc.SetEventPublisher(bus)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engineHTTP := gin.New()
	engineHTTP.Use(middleware.RequestID())
	engineHTTP.Use(logger.GinMiddleware(log))
	engineHTTP.Use(logger.Recovery(log))
	engineHTTP.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	engineHTTP.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/ready"},
		Logger:     log,
	}))

	systemHandler := handler.NewSystemHandler(db)
	engineHTTP.GET("/health", systemHandler.Health)
	engineHTTP.GET("/ready", systemHandler.Ready)

	dto.RegisterCustomValidators()

	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	pickingRepo := persistence.NewGormPickingRepository(db.DB)
	operationTypeRepo := persistence.NewGormOperationTypeRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	r := router.NewRouter(engineHTTP)
	r.Register(handler.NewStockPickingHandler(workflowSvc, changeSvc, log))
	r.Register(handler.NewWarehouseHandler(warehouseRepo, pickingRepo, operationTypeRepo, locationRepo))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engineHTTP,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
