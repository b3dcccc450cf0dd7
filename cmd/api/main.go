package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/littlelemon/restaurant-api/internal/api"
	"github.com/littlelemon/restaurant-api/internal/core/service"
	"github.com/littlelemon/restaurant-api/internal/infrastructure/db/mongo"
	"github.com/littlelemon/restaurant-api/internal/infrastructure/db/redis"
	"github.com/littlelemon/restaurant-api/internal/infrastructure/db/sqldb"
	"github.com/littlelemon/restaurant-api/internal/infrastructure/queue"
	"github.com/littlelemon/restaurant-api/internal/pkg/config"
	"github.com/littlelemon/restaurant-api/pkg/logger"
)

// @title        Little Lemon API
// @version      1.0
// @description  Restaurant ordering backend: menu, carts and role-scoped order lifecycle.
// @BasePath     /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "restaurant-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	db, err := sqldb.Connect(ctx, sqldb.Config{
		DSN:      cfg.Database.URL,
		LogLevel: cfg.Database.LogLevel,
	}, logger.Component("gorm"))
	if err != nil {
		return err
	}
	defer func() { _ = sqldb.Close(db) }()

	if err := sqldb.Migrate(db); err != nil {
		return err
	}
	if err := sqldb.Seed(ctx, db, sqldb.Admin{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
	}, log); err != nil {
		return err
	}

	healthChecks := map[string]func(context.Context) error{
		"database": func(ctx context.Context) error { return sqldb.Ping(ctx, db) },
	}

	// --- Audit trail (optional) ---
	var events service.EventPublisher
	var dispatcher *queue.Dispatcher
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer disconnectMongo(client, log)

		auditRepo := mongo.NewOrderEventRepository(mdb)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not ensured")
		}

		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
		dispatcher.Start(workerCtx)
		events = dispatcher
		healthChecks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("order audit trail enabled")
	}

	// --- Role cache (optional) ---
	var roleCache service.RoleCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)

		roleCache = redis.NewRoleCache(rdb, cfg.Redis.RoleTTL)
		healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Dur("ttl", cfg.Redis.RoleTTL).Msg("role cache enabled")
	}

	// --- Repositories and services ---
	users := sqldb.NewUserRepository(db)
	catalogRepo := sqldb.NewCatalogRepository(db)

	router := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Identity:     service.NewIdentityService(users, roleCache, logger.Component("identity")),
		Groups:       service.NewGroupService(users, roleCache, logger.Component("groups")),
		Catalog:      service.NewCatalogService(catalogRepo, logger.Component("catalog")),
		Carts:        service.NewCartService(sqldb.NewCartRepository(db), catalogRepo, logger.Component("cart")),
		Orders:       service.NewOrderService(sqldb.NewStore(db), sqldb.NewOrderRepository(db), users, events, logger.Component("orders")),
		HealthChecks: healthChecks,
		JWTSecret:    cfg.JWTSecret,
		Log:          logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Requests are drained; flush queued audit events before closing Mongo.
	if dispatcher != nil {
		stopWorkers()
		dispatcher.Wait()
	}

	log.Info().Msg("shutdown complete")
	return nil
}

func disconnectMongo(client *mongodriver.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
