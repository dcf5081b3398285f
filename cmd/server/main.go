package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/tinci/internal/api/rest"
	"github.com/palemoky/tinci/internal/app"
	"github.com/palemoky/tinci/internal/config"
	"github.com/palemoky/tinci/internal/logger"
)

func main() {
	// Load configuration
	cfg, cfgErr := config.Load("config.yaml")
	if cfgErr != nil {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			logger.Init(os.Getenv("GIN_MODE") != "release")
			logger.Fatal("Invalid configuration", zap.Error(err))
		}
	}

	// Initialize logger
	if err := logger.Configure(cfg.Logging("tinci-server")); err != nil {
		logger.Init(cfg.Server.Mode == "debug")
		logger.Warn("Invalid log settings, using defaults", zap.Error(err))
	}
	defer logger.Sync()
	if cfgErr != nil {
		logger.Warn("Failed to load config file, using defaults", zap.Error(cfgErr))
	}

	logger.Info("Starting tinci server",
		zap.String("corpus_source", cfg.Corpus.Source),
		zap.String("corpus_path", cfg.Corpus.Path),
		zap.String("default_system", cfg.Rhyme.DefaultSystem),
		zap.Int("port", cfg.Server.Port),
	)

	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	defer a.Close()

	// Setup Gin router
	router := rest.SetupRouter(cfg, a.Service, a.DB, a.Repository())

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("rest_api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
