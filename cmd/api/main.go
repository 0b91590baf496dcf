// Package main is the entrypoint for the Toolkeep API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/toolkeep/toolkeep/internal/auth"
	"github.com/toolkeep/toolkeep/internal/cache"
	"github.com/toolkeep/toolkeep/internal/config"
	"github.com/toolkeep/toolkeep/internal/handler"
	"github.com/toolkeep/toolkeep/internal/metrics"
	"github.com/toolkeep/toolkeep/internal/middleware"
	"github.com/toolkeep/toolkeep/internal/repository"
	"github.com/toolkeep/toolkeep/internal/server"
	"github.com/toolkeep/toolkeep/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, issuer, metricsRecorder)
	toolService := service.NewToolService(repo, metricsRecorder)
	assignmentService := service.NewAssignmentService(repo, metricsRecorder)
	reportService := service.NewReportService(repo, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(userService, logger)
	toolHandler := handler.NewToolHandler(toolService, assignmentService, reportService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:    h,
		health:  healthHandler,
		auth:    authHandler,
		tools:   toolHandler,
		reports: reportHandler,
		issuer:  issuer,
		repo:    repo,
		cache:   cacheClient,
		cfg:     cfg,
		logger:  logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	tools   *handler.ToolHandler
	reports *handler.ReportHandler
	issuer  *auth.TokenIssuer
	repo    *repository.Repository
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	if deps.cfg.CORSAllowedOrigins != "" {
		corsCfg.AllowedOrigins = strings.Split(deps.cfg.CORSAllowedOrigins, ",")
	}
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	authCfg := middleware.AuthConfig{
		Logger:     deps.logger,
		Issuer:     deps.issuer,
		Repository: deps.repo,
		Cache:      deps.cache,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		APIEnabled:  deps.cfg.RateLimitAPIEnabled,
		APIRPM:      deps.cfg.RateLimitAPIRPM,
		APIBurst:    deps.cfg.RateLimitAPIBurst,
		AuthEnabled: deps.cfg.RateLimitAuthEnabled,
		AuthRPS:     deps.cfg.RateLimitAuthRPS,
		AuthBurst:   deps.cfg.RateLimitAuthBurst,
	}

	// Account endpoints
	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/register", deps.auth.Register)
		r.With(middleware.RateLimitAuth(rateLimitCfg)).Post("/login", deps.auth.Login)
		r.With(middleware.Auth(authCfg)).Get("/me", deps.auth.Me)
	})

	// API v1 routes (require authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimitAPI(rateLimitCfg))

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", deps.tools.List)
			r.Post("/", deps.tools.Create)
			r.Patch("/{id}", deps.tools.Update)
			r.Delete("/{id}", deps.tools.Delete)

			r.Post("/{id}/assignments", deps.tools.Assign)
			r.Get("/{id}/users", deps.tools.ListUsers)
			r.Post("/{id}/usage", deps.tools.RecordUsage)
			r.Get("/{id}/usage", deps.tools.UsageReport)
		})

		r.Get("/borrowers/inactive", deps.reports.InactiveBorrowers)
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
