// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/app"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/interfaces/http"
	"github.com/your-org/cart-service/internal/interfaces/http/handlers"
	"github.com/your-org/cart-service/internal/interfaces/scheduler"
	"github.com/your-org/cart-service/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on configuration, so fall back to a default one
		logger.New(&config.Config{}).WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"store":       cfg.Database.Store,
	}).Info("Starting cart service")

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise application")
	}
	defer application.Close()

	checks := map[string]http.HealthChecker{"redis": application.Redis}
	if application.Database != nil {
		checks["database"] = application.Database
	}

	cartHandler := handlers.NewCartHandler(application.UseCases, log)
	server := http.NewServer(cfg, log, application.RedisClient(), cartHandler, checks)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go scheduler.NewSweeper(application.UseCases.Expire, cfg.Cart.ExpireInterval, log).Run(ctx)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")
	stop()

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
