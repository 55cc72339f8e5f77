// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/config"
	"github.com/R3gret/ITPM-Backend/internal/server/httpapi"
	"github.com/R3gret/ITPM-Backend/internal/server/ratelimit"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/repomanager"
	"github.com/R3gret/ITPM-Backend/internal/server/services"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

// Seams for tests.
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	limits  httpapi.Limits
	cleanup []*ratelimit.MemoryLimiter
	server  *httpapi.Server
}

// NewApp validates c and builds every component. A missing signing secret
// or any other invalid setting is returned as an error before anything is
// opened.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	trusted, err := c.TrustedPrefixes()
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenCodec(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger.With("module", "app")}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if err := app.initLimiters(ctx, trusted); err != nil {
		app.close()
		return nil, err
	}

	hasher := auth.NewBcryptHasher(c.HashWorkers)

	app.server = httpapi.NewServer(httpapi.Options{
		Address:     c.EndpointAddrHTTP,
		Environment: c.Environment,
		Development: c.IsDevelopment(),
		Users:       services.NewUserService(db, rm, hasher, tokens, logger),
		Resorts:     services.NewResortService(db, rm, logger),
		Locations:   services.NewLocationService(db, rm),
		Tokens:      tokens,
		Limits:      app.limits,
		Logger:      logger,
	})

	return app, nil
}

// initLimiters keeps counters in Redis when an address is configured and in
// process memory otherwise.
func (app *App) initLimiters(ctx context.Context, trusted []netip.Prefix) error {
	c := app.config
	general := ratelimit.Config{Max: c.RateLimitMax, Window: c.RateLimitWindow}
	authCfg := ratelimit.Config{Max: c.AuthRateLimitMax, Window: c.RateLimitWindow}

	app.limits = httpapi.Limits{Window: c.RateLimitWindow, Key: ratelimit.ClientIP(trusted)}

	if c.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		app.limits.General = ratelimit.NewRedisLimiter(client, general, "ratelimit:general")
		app.limits.Auth = ratelimit.NewRedisLimiter(client, authCfg, "ratelimit:auth")
		app.logger.Info(ctx, "Rate limits kept in Redis", "address", c.RedisAddr)
		return nil
	}

	g := ratelimit.NewMemoryLimiter(general)
	a := ratelimit.NewMemoryLimiter(authCfg)
	app.limits.General, app.limits.Auth = g, a
	app.cleanup = []*ratelimit.MemoryLimiter{g, a}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)
	app.initSignalHandler(cancelFunc)

	for _, l := range app.cleanup {
		l.StartCleanup(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
