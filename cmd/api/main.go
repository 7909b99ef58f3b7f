// Package main is the entrypoint for the ReviewQR server.
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

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/cache"
	"github.com/reviewqr/reviewqr/internal/config"
	"github.com/reviewqr/reviewqr/internal/handler"
	"github.com/reviewqr/reviewqr/internal/metrics"
	"github.com/reviewqr/reviewqr/internal/middleware"
	"github.com/reviewqr/reviewqr/internal/qr"
	"github.com/reviewqr/reviewqr/internal/repository"
	"github.com/reviewqr/reviewqr/internal/server"
	"github.com/reviewqr/reviewqr/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	recorder := metrics.NewInMemory()
	tokens := auth.NewTokens(cfg.JWTSecret)
	qrGenerator := qr.NewGenerator(cfg.BaseURL, recorder)

	accountService := service.NewAccountService(repo, recorder)
	businessService := service.NewBusinessService(repo, cacheClient, recorder)
	feedbackService := service.NewFeedbackService(repo, repo, recorder)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(accountService, tokens, cfg.IsProduction(), logger)
	businessHandler := handler.NewBusinessHandler(businessService, qrGenerator, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	qrHandler := handler.NewQRHandler(businessService, qrGenerator, logger)
	pageHandler := handler.NewPageHandler(businessService, logger)

	router := setupRouter(routerDeps{
		health:   healthHandler,
		auth:     authHandler,
		business: businessHandler,
		feedback: feedbackHandler,
		qrCodes:  qrHandler,
		pages:    pageHandler,
		tokens:   tokens,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(
		router,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Connections close inside the shutdown-timeout window, after the
	// HTTP server has drained in-flight requests.
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"addr", srv.Addr(),
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
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
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	business *handler.BusinessHandler
	feedback *handler.FeedbackHandler
	qrCodes  *handler.QRHandler
	pages    *handler.PageHandler
	tokens   *auth.Tokens
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	cfg := deps.cfg

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	apiSecurity := middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})
	pageSecurity := middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		ServesHTML:         true,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	sessionAuth := middleware.SessionAuth(middleware.SessionAuthConfig{
		Logger: deps.logger,
		Tokens: deps.tokens,
	})
	rateLimitIP := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: cfg.RateLimitPublicEnabled,
		RPS:     cfg.RateLimitPublicRPS,
		Burst:   cfg.RateLimitPublicBurst,
	})

	// Health endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Server-rendered pages with the presence-only session gate
	r.Group(func(r chi.Router) {
		r.Use(pageSecurity)
		r.With(middleware.RedirectIfSession("/dashboard")).Get("/", deps.pages.Landing)
		r.With(middleware.RequireSessionCookie("/")).Get("/dashboard", deps.pages.Dashboard)
		r.With(rateLimitIP).Get("/r/{qrId}", deps.pages.FeedbackPage)
	})

	// Account endpoints
	r.Group(func(r chi.Router) {
		r.Use(apiSecurity)
		r.Use(middleware.CORS(corsCfg))

		r.Post("/auth/signup", deps.auth.Signup)
		r.Post("/auth/login", deps.auth.Login)
		r.Post("/auth/logout", deps.auth.Logout)

		r.Route("/api", func(r chi.Router) {
			// Public endpoints behind the IP rate limiter
			r.With(rateLimitIP).Get("/business/{qrId}", deps.business.GetPublic)
			r.With(rateLimitIP).Post("/feedback", deps.feedback.Submit)

			// Owner endpoints behind the session cookie
			r.Group(func(r chi.Router) {
				r.Use(sessionAuth)
				r.Post("/business", deps.business.Create)
				r.Get("/business", deps.business.List)
				r.Get("/feedback", deps.feedback.List)
				r.Get("/qr", deps.qrCodes.Get)
			})
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

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
