package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventdesk/config"
	_ "eventdesk/docs"
	"eventdesk/internal/adapters/auth"
	"eventdesk/internal/adapters/notify"
	delivery "eventdesk/internal/delivery/http"
	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
	"eventdesk/internal/repository/memory"
	"eventdesk/internal/repository/postgres"
	"eventdesk/internal/services"
	"eventdesk/migrations"
)

// defaultDevAPIKey is accepted when API_KEY_HASH is unset outside production.
const defaultDevAPIKey = "dev-api-key"

// @title EventDesk API
// @version 1.0
// @description Event and guest management service. Supports in-person, virtual, and hybrid events with capacity enforcement and guest notifications.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT obtained from /auth/token.
//
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtSecret, apiKeyHash, err := resolveSecrets(cfg, logger)
	if err != nil {
		return err
	}

	var (
		eventRepo domain.EventRepository
		ping      func(context.Context) error
	)
	switch cfg.StorageDriver {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if err := migrations.Apply(ctx, db); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		eventRepo = postgres.NewEventRepository(db)
		ping = db.PingContext
		logger.Info("using postgres storage")
	case "memory":
		eventRepo = memory.NewEventRepository()
		logger.Info("using in-memory storage, data is lost on restart")
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	notifier, err := notify.NewNotifier(notify.NotifierConfig{
		Provider:    cfg.NotifierProvider,
		FromAddress: cfg.NotifyFromAddress,
		FromName:    cfg.NotifyFromName,
		SES: notify.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.AWSInsecureSkipVerify,
		},
	})
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}
	notifications := services.NewNotificationService(notifier, notify.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, notifications, cfg.ServiceTimeout)
	authService := services.NewAuthService(auth.NewBcryptKeyVerifier(), auth.NewJWTIssuer(jwtSecret), apiKeyHash, cfg.TokenTTL)

	router := delivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewGuestController(logger, eventService),
		controllers.NewAuthController(logger, authService),
		auth.NewJWTVerifier(jwtSecret),
		logger,
		ping,
	)
	var handler http.Handler = middleware.CORS(splitOrigins(cfg.CORSOrigins), router)
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// resolveSecrets fails closed in production and falls back to development
// values elsewhere so a bare `go run ./cmd/api` works out of the box.
func resolveSecrets(cfg *config.Config, logger *slog.Logger) (jwtSecret, apiKeyHash string, err error) {
	jwtSecret = cfg.JWTSecret
	apiKeyHash = cfg.APIKeyHash
	if cfg.IsProduction() {
		if jwtSecret == "" || apiKeyHash == "" {
			return "", "", errors.New("JWT_SECRET and API_KEY_HASH must be set in production")
		}
		return jwtSecret, apiKeyHash, nil
	}
	if jwtSecret == "" {
		jwtSecret = "dev-jwt-secret"
		logger.Warn("JWT_SECRET not set, using an insecure development secret")
	}
	if apiKeyHash == "" {
		hash, hashErr := auth.GenerateKeyHash(defaultDevAPIKey, bcrypt.DefaultCost)
		if hashErr != nil {
			return "", "", fmt.Errorf("hash development api key: %w", hashErr)
		}
		apiKeyHash = hash
		logger.Warn("API_KEY_HASH not set, accepting the development api key", "api_key", defaultDevAPIKey)
	}
	return jwtSecret, apiKeyHash, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
