// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/leverblum/boardsctrl/internal/api"
	"github.com/leverblum/boardsctrl/internal/api/handler"
	"github.com/leverblum/boardsctrl/internal/api/metrics"
	"github.com/leverblum/boardsctrl/internal/core/service"
	"github.com/leverblum/boardsctrl/internal/infrastructure/db/mongo"
	"github.com/leverblum/boardsctrl/internal/infrastructure/db/redis"
	"github.com/leverblum/boardsctrl/internal/infrastructure/identity"
	"github.com/leverblum/boardsctrl/internal/pkg/config"
	"github.com/leverblum/boardsctrl/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server  *http.Server
	log     zerolog.Logger
	cleanup []func(context.Context)
}

// New connects to MongoDB and Redis, ensures indexes and seed roles, and
// builds the HTTP server.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Component("app")
	a := &App{log: log}

	trusted, err := cfg.TrustedProxyNets()
	if err != nil {
		return nil, err
	}

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return nil, err
	}
	a.cleanup = append(a.cleanup, func(ctx context.Context) { _ = mongoClient.Disconnect(ctx) })

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.cleanup = append(a.cleanup, func(context.Context) { _ = rdb.Close() })

	users := mongo.NewUserRepository(db)
	roles := mongo.NewRoleRepository(db)
	categories := mongo.NewCategoryRepository(db)
	boards := mongo.NewBoardRepository(db)
	slides := mongo.NewSlideRepository(db)

	if err := prepareStorage(ctx, db, users, roles); err != nil {
		a.close(ctx)
		return nil, err
	}

	issuer, err := service.NewJWTIssuer(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	verifier, err := identity.NewLegacyVerifier(identity.Config{
		BaseURL:   cfg.ExternalAuth.BaseURL,
		AppID:     cfg.ExternalAuth.AppID,
		Signature: cfg.ExternalAuth.Signature,
		Timeout:   cfg.ExternalAuth.Timeout,
	}, identity.WithObserver(func(result string, elapsed time.Duration) {
		metrics.ExternalAuthDuration.WithLabelValues(result).Observe(elapsed.Seconds())
	}))
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	e := api.NewRouter(api.Deps{
		Log:             logger.Component("http"),
		AuthService:     service.NewAuthService(users, roles, verifier, issuer, logger.Component("auth")),
		TokenVerifier:   issuer,
		CategoryService: service.NewCategoryService(categories, logger.Component("categories")),
		BoardService:    service.NewBoardService(boards, categories, logger.Component("boards")),
		SlideService:    service.NewSlideService(slides, boards, logger.Component("slides")),
		RoleService:     service.NewRoleService(roles, logger.Component("roles")),
		UserService:     service.NewUserService(users, roles, logger.Component("users")),
		LoginLimiter:    redis.NewFixedWindowLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window),
		LoginWindow:     cfg.RateLimit.Window,
		TrustedProxies:  trusted,
		AllowedOrigins:  cfg.CORSOrigins,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.PingerFunc(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
			"redis":   handler.PingerFunc(func(ctx context.Context) error { return pingRedis(ctx, rdb) }),
		},
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func prepareStorage(ctx context.Context, db *mongodriver.Database, users *mongo.UserRepository, roles *mongo.RoleRepository) error {
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := roles.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("roles indexes: %w", err)
	}
	if err := mongo.EnsureCatalogIndexes(ctx, db); err != nil {
		return err
	}
	if err := roles.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}

func pingRedis(ctx context.Context, rdb *goredis.Client) error {
	return rdb.Ping(ctx).Err()
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("server starting")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.close(ctx)

	a.log.Info().Msg("server stopped")
	return nil
}

func (a *App) close(ctx context.Context) {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i](ctx)
	}
}
