// cmd/expire-carts/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/your-org/cart-service/internal/app"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/pkg/auth"
	"github.com/your-org/cart-service/internal/pkg/logger"
)

// Runs one expiry pass against the configured store, or prints a scheduler
// token for calling POST /api/v1/carts/expire remotely.
func main() {
	printToken := flag.Bool("print-token", false, "print a scheduler token for the expire endpoint and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed token")
	subject := flag.String("subject", "expire-carts", "subject recorded in the printed token")
	timeout := flag.Duration("timeout", 5*time.Minute, "maximum duration of the expiry pass")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(&config.Config{}).WithError(err).Fatal("Failed to load configuration")
	}
	log := logger.New(cfg)

	if *printToken {
		token, err := auth.NewJWTManager(cfg).GenerateServiceToken(*subject, auth.RoleScheduler, *tokenTTL)
		if err != nil {
			log.WithError(err).Fatal("Failed to sign scheduler token")
		}
		fmt.Fprintln(os.Stdout, token)
		return
	}

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise application")
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	removed, err := application.UseCases.Expire.Execute(ctx)
	if err != nil {
		log.WithError(err).WithField("removed", removed).Error("Cart expiry failed")
		application.Close()
		os.Exit(1)
	}

	log.WithField("removed", removed).Info("Cart expiry completed")
}
