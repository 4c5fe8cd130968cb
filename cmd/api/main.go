// Package main runs the articles GraphQL API server.
// Usage: sports-api [--config FILE]
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sports-articles/internal/common/pagination"
	"sports-articles/internal/config"
	hgraphql "sports-articles/internal/handler/graphql"
	hhttp "sports-articles/internal/handler/http"
	"sports-articles/internal/handler/http/middleware"
	"sports-articles/internal/handler/http/requestid"
	"sports-articles/internal/infra/adapter/persistence"
	infradb "sports-articles/internal/infra/db"
	"sports-articles/internal/observability/logging"
	"sports-articles/internal/observability/metrics"
	"sports-articles/internal/observability/tracing"
	"sports-articles/internal/repository"
	"sports-articles/internal/resilience/circuitbreaker"
	artUC "sports-articles/internal/usecase/article"
)

const (
	statsInterval = 30 * time.Second
	sweepInterval = time.Minute
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "Path to YAML configuration file")
	flag.Parse()

	cfg, logger := initConfig(configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := initTracing(ctx, cfg, logger)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	database := initDatabase(ctx, cfg, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
		logger.Info("database connection closed")
	}()

	components, err := setupServer(cfg, database, logger)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(ctx, cfg, components, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initConfig loads .env, the optional YAML file and the environment, and
// builds the process logger from the result.
func initConfig(path string) (*config.Config, *slog.Logger) {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, warnings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Options())
	slog.SetDefault(logger)
	for _, w := range warnings {
		logger.Warn("configuration warning", slog.String("warning", w))
	}
	return cfg, logger
}

// initTracing installs the tracer provider. Spans stay in process; their
// ids still correlate log lines of one request.
func initTracing(ctx context.Context, cfg *config.Config, logger *slog.Logger) tracing.ShutdownFunc {
	noop := func(context.Context) error { return nil }
	if !cfg.Tracing.Enabled {
		return noop
	}
	shutdown, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.Version,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Warn("tracing disabled", slog.Any("error", err))
		return noop
	}
	logger.Info("tracing enabled", slog.Float64("sample_ratio", cfg.Tracing.SampleRatio))
	return shutdown
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *sql.DB {
	database, err := infradb.Open(ctx, cfg.DBConfig())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := infradb.MigrateUp(ctx, database, infradb.Dialect(cfg.Database.Driver)); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	Repo        repository.ArticleRepository
	DB          *sql.DB
	RateLimiter *middleware.IPRateLimiter
}

// setupServer wires the store, service, GraphQL schema and probes.
func setupServer(cfg *config.Config, database *sql.DB, logger *slog.Logger) (*ServerComponents, error) {
	store, err := persistence.NewArticleRepo(infradb.Dialect(cfg.Database.Driver), database)
	if err != nil {
		return nil, err
	}

	breakerCfg := circuitbreaker.StoreConfig()
	breakerCfg.Timeout = cfg.Breaker.Timeout
	breakerCfg.MinRequests = cfg.Breaker.MinRequests
	repo := circuitbreaker.NewGuardedArticleRepo(store, breakerCfg)

	svc := &artUC.Service{
		Repo: repo,
		Pagination: pagination.Config{
			DefaultPage:  1,
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
		Logger: logger,
	}

	gql, err := hgraphql.NewHandler(svc, logger)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", gql)
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Breaker: repo.Breaker(), Version: cfg.Version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	limiter, err := newRateLimiter(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ServerComponents{
		Handler:     applyMiddleware(cfg, logger, mux, limiter),
		Repo:        repo,
		DB:          database,
		RateLimiter: limiter,
	}, nil
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(cfg *config.Config, logger *slog.Logger) (*middleware.IPRateLimiter, error) {
	if !cfg.RateLimit.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return nil, nil
	}

	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.HTTP.TrustedProxies) > 0 {
		prefixes, err := middleware.ParseTrustedProxies(cfg.HTTP.TrustedProxies)
		if err != nil {
			return nil, err
		}
		extractor = middleware.NewTrustedProxyExtractor(prefixes)
		logger.Info("rate limiting: trusted proxy mode enabled", slog.Int("trusted_proxies_count", len(prefixes)))
	}

	limiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		IdleTTL:           cfg.RateLimit.IdleTTL,
	}, extractor)
	logger.Info("rate limiting initialized",
		slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
		slog.Int("burst", cfg.RateLimit.Burst))
	return limiter, nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Rate Limit → Recovery → Logging → Body Limit →
// Timeout → Tracing → Metrics
func applyMiddleware(cfg *config.Config, logger *slog.Logger, handler http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.CORS.AllowedOrigins), slog.Int("max_age", cfg.CORS.MaxAge))

	mws := []hhttp.Middleware{
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:         cfg.CORS.MaxAge,
			Logger:         logger,
		}),
		requestid.Middleware,
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	}
	mws = append(mws,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(handler, mws...)
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
// Background loops share the server's lifetime.
func runServer(ctx context.Context, cfg *config.Config, c *ServerComponents, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           c.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	if c.RateLimiter != nil {
		eg.Go(func() error {
			c.RateLimiter.Run(egCtx, sweepInterval)
			return nil
		})
	}

	eg.Go(func() error {
		refreshStats(egCtx, c, logger)
		return nil
	})

	return eg.Wait()
}

// refreshStats keeps the row-count and pool gauges current.
func refreshStats(ctx context.Context, c *ServerComponents, logger *slog.Logger) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		countCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if n, err := c.Repo.CountAll(countCtx); err == nil {
			metrics.UpdateArticlesTotal(n)
		} else if ctx.Err() == nil {
			logger.Warn("failed to count articles", slog.Any("error", err))
		}
		cancel()

		stats := c.DB.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
