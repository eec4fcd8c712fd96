package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/infrastructure/config"
	"github.com/sltrack/backend/internal/infrastructure/database"
	"github.com/sltrack/backend/internal/infrastructure/logger"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
	"github.com/sltrack/backend/internal/infrastructure/storage"
	"github.com/sltrack/backend/internal/interfaces/http/handler"
	"github.com/sltrack/backend/internal/interfaces/http/middleware"
	"github.com/sltrack/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SLTrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Type),
	)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	files, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize attachment storage", zap.Error(err))
	}

	userRepo := persistence.NewUserRepository(db)

	handlers := router.Handlers{
		System:          handler.NewSystemHandler(db, version),
		Dashboard:       handler.NewDashboardHandler(persistence.NewDashboardRepository(db)),
		Title:           handler.NewTitleHandler(persistence.NewTitleRepository(db)),
		License:         handler.NewLicenseHandler(persistence.NewLicenseRepository(db), files, log),
		SupportContract: handler.NewSupportContractHandler(persistence.NewSupportContractRepository(db)),
		Manufacturer:    handler.NewManufacturerHandler(persistence.NewManufacturerRepository(db)),
		Reseller:        handler.NewResellerHandler(persistence.NewResellerRepository(db)),
		Attachment:      handler.NewAttachmentHandler(persistence.NewAttachmentRepository(db), files, &cfg.Storage, log),
		User:            handler.NewUserHandler(userRepo),
		Setting:         handler.NewSettingHandler(persistence.NewSettingRepository(db)),
		Lookup:          handler.NewLookupHandler(persistence.NewLookupRepository(db)),
		Report:          handler.NewReportHandler(persistence.NewReportRepository(db)),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy list", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
	)

	identityMW := middleware.Identity(userRepo, cfg.Auth, cfg.App.IsProduction(), log)
	router.Setup(engine, handlers, identityMW)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
