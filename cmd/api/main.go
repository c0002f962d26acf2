// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/leadtrack/internal/admin"
	"github.com/carterperez-dev/leadtrack/internal/analytics"
	"github.com/carterperez-dev/leadtrack/internal/auth"
	"github.com/carterperez-dev/leadtrack/internal/config"
	"github.com/carterperez-dev/leadtrack/internal/core"
	"github.com/carterperez-dev/leadtrack/internal/health"
	"github.com/carterperez-dev/leadtrack/internal/ingest"
	"github.com/carterperez-dev/leadtrack/internal/middleware"
	"github.com/carterperez-dev/leadtrack/internal/server"
	"github.com/carterperez-dev/leadtrack/internal/submission"
	"github.com/carterperez-dev/leadtrack/internal/user"
	"github.com/carterperez-dev/leadtrack/migrations"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	genKeys := flag.Bool("generate-keys", false,
		"generate a new JWT signing key pair and exit")
	flag.Parse()

	if err := run(*configPath, *genKeys); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, genKeys bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	if genKeys {
		return auth.GenerateKeyPair(
			cfg.JWT.PrivateKeyPath,
			cfg.JWT.PublicKeyPath,
		)
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := core.Migrate(ctx, db, migrations.FS); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "ES256")

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, jwtManager, logger)
	authHandler := auth.NewHandler(authSvc)

	submissionRepo := submission.NewRepository(db.DB)
	submissionSvc := submission.NewService(submissionRepo)
	submissionHandler := submission.NewHandler(submissionSvc)

	var offline ingest.Resolver
	if cfg.Geo.MMDBPath != "" {
		resolver, geoErr := ingest.NewOfflineResolver(cfg.Geo.MMDBPath)
		if geoErr != nil {
			logger.Warn("offline geo database unavailable", "error", geoErr)
		} else {
			offline = resolver
			defer resolver.Close()
		}
	}

	var geoAPI ingest.Resolver
	if cfg.Geo.IPStackKey != "" {
		geoAPI = ingest.NewIPStackClient(cfg.Geo)
	}

	enricher := ingest.NewEnricher(offline, geoAPI, logger)
	ingestSvc := ingest.NewService(submissionRepo, enricher, cfg.Ingest, logger)
	ingestHandler := ingest.NewHandler(ingestSvc, cfg.Ingest, logger)

	analyticsRepo := analytics.NewRepository(db.DB)
	analyticsSvc := analytics.NewService(analyticsRepo)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	router.Route("/api-proxy", func(r chi.Router) {
		ingestHandler.RegisterRoutes(r)
	})

	authenticator := middleware.Authenticator(authSvc)

	// authenticated traffic is limited per account, not per IP, so a
	// shared office address never starves its users
	userLimiter := middleware.NewRateLimiter(redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			KeyFunc:  middleware.KeyByUser,
			FailOpen: true,
		})

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(userLimiter.Handler)

			authHandler.RegisterProtectedRoutes(r)
			userHandler.RegisterRoutes(r)
			submissionHandler.RegisterRoutes(r)
			analyticsHandler.RegisterRoutes(r)
			adminHandler.RegisterRoutes(r, middleware.RequireAdmin)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
