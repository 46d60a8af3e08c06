// internal/app/app.go
package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/application/usecase"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/infrastructure/database/postgres"
	"github.com/your-org/cart-service/internal/infrastructure/database/redis"
	"github.com/your-org/cart-service/internal/infrastructure/invoke"
	"github.com/your-org/cart-service/internal/interfaces/http/handlers"
)

// App holds the connections and use cases shared by the binaries
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	Redis    *redis.Client
	Database *postgres.Database
	Repo     cart.Repository
	Invoker  *invoke.Client
	UseCases handlers.CartUseCases
}

// New connects to the configured stores and builds the use cases.
// Redis is always required; Postgres only when it is the cart store.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Log:    log,
		Redis:  redisClient,
	}

	if cfg.UsesPostgres() {
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Database = db

		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			a.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}

		a.Repo = postgres.NewCartRepository(db.GetDB())
	} else {
		a.Repo = redis.NewCartRepository(redisClient.GetClient(), cfg.Redis.KeyPrefix)
	}

	a.Invoker = invoke.NewClient(redisClient.GetClient(), cfg.Invoke.EventStreamPrefix, cfg.Invoke.BaseURL, cfg.Invoke.Timeout)
	a.UseCases = BuildUseCases(cfg, a.Repo, a.Invoker)

	return a, nil
}

// BuildUseCases wires the cart use cases against a repository and invoker
func BuildUseCases(cfg *config.Config, repo cart.Repository, invoker usecase.Invoker) handlers.CartUseCases {
	lifecycle := usecase.Lifecycle{TTL: cfg.Cart.TTL}

	var customers usecase.CustomerResolver
	if cfg.CustomerDirectoryEnabled() {
		customers = usecase.NewCustomerDirectory(invoker, cfg.Invoke.CustomerLookupTarget, cfg.Invoke.CustomerCreateTarget)
	}

	return handlers.CartUseCases{
		Open:     usecase.NewOpenCartUseCase(repo, customers, lifecycle),
		Get:      usecase.NewGetCartUseCase(repo),
		Add:      usecase.NewAddProductsToCartUseCase(repo, lifecycle),
		Remove:   usecase.NewRemoveProductsFromCartUseCase(repo, lifecycle),
		Checkout: usecase.NewCheckoutCartUseCase(repo, invoker, cfg.Invoke.OrderProcessorTarget, lifecycle),
		Expire:   usecase.NewExpireCartsUseCase(repo, lifecycle),
	}
}

// RedisClient returns the raw client for middleware that talks to Redis directly
func (a *App) RedisClient() *goredis.Client {
	return a.Redis.GetClient()
}

// Close releases every open connection
func (a *App) Close() {
	if a.Database != nil {
		if err := a.Database.Close(); err != nil {
			a.Log.WithError(err).Warn("Failed to close database")
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.WithError(err).Warn("Failed to close Redis")
		}
	}
}
