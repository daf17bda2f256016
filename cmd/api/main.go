// @title           Back Office API
// @version         1.0
// @description     Admin and agent back office for property listings, enquiries and notifications.
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in              cookie
// @name            access_token
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/api"
	"github.com/mateluxy/backoffice-api/internal/api/handler"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
	"github.com/mateluxy/backoffice-api/internal/core/service"
	"github.com/mateluxy/backoffice-api/internal/infrastructure/db/mongo"
	"github.com/mateluxy/backoffice-api/internal/infrastructure/db/redis"
	"github.com/mateluxy/backoffice-api/internal/infrastructure/mail"
	"github.com/mateluxy/backoffice-api/internal/infrastructure/security"
	"github.com/mateluxy/backoffice-api/internal/pkg/config"
	"github.com/mateluxy/backoffice-api/pkg/logger"
)

const (
	serverTimeout   = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Config and logger
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "backoffice-api",
	})
	log.Info().Str("env", cfg.Env).Msg("starting back office api")

	// 2. Storage
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// 3. Repositories and collaborators
	adminRepo := mongo.NewAdminRepository(db)
	agentRepo := mongo.NewAgentRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)
	contactRepo := mongo.NewContactRepository(db)
	requestRepo := mongo.NewPropertyRequestRepository(db)
	propertyRepo := mongo.NewPropertyRepository(db)

	hasher := security.NewBcryptHasher(0)
	var mailer ports.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, password reset mail goes to the log")
	}

	if err := seedSuperAdmin(ctx, adminRepo, hasher, cfg.Seed, log); err != nil {
		return err
	}

	// 4. Services
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	notifications := service.NewNotificationService(notificationRepo, log)
	notifier := service.NewAdminNotifier(adminRepo, notifications, log)

	services := api.Services{
		Tokens: tokens,
		Auth: service.NewAuthService(adminRepo, agentRepo, tokens, hasher, service.PasswordRecovery{
			Store:       redis.NewResetTokenStore(redisClient),
			Mailer:      mailer,
			FrontendURL: cfg.FrontendURL,
		}, log),
		Admins:           service.NewAdminService(adminRepo, hasher, notifier, log),
		Agents:           service.NewAgentService(agentRepo, hasher, notifier, log),
		Notifications:    notifications,
		Contacts:         service.NewContactService(contactRepo, log),
		PropertyRequests: service.NewPropertyRequestService(requestRepo, log),
		Properties:       service.NewPropertyService(propertyRepo, notifier, log),
	}

	// 5. Router
	router := api.NewRouter(services, api.Options{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		CookieSecure:   cfg.CookieSecure,
		ExposeInternal: cfg.IsDevelopment(),
		HealthChecks: []handler.DependencyCheck{
			{Name: "mongo", Check: func(ctx context.Context) error { return mongo.Ping(ctx, mongoClient) }},
			{Name: "redis", Check: func(ctx context.Context) error { return redis.Ping(ctx, redisClient) }},
		},
	})

	// 6. HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  serverTimeout,
		WriteTimeout: serverTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 7. Wait for a signal or a server failure
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
	return nil
}

// seedSuperAdmin creates the first Super Admin when the store is empty and
// seed credentials are configured.
func seedSuperAdmin(ctx context.Context, repo ports.AdminRepository, hasher ports.PasswordHasher, seed config.SeedConfig, log zerolog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return nil
	}
	if seed.Email == "" || seed.Password == "" {
		log.Warn().Msg("no admins exist and SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD are not set")
		return nil
	}

	digest, err := hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	now := time.Now().UTC()
	admin, err := repo.Create(ctx, &domain.Admin{
		Username:     seed.Username,
		FullName:     "Super Admin",
		Email:        seed.Email,
		PasswordHash: digest,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Info().Str("admin_id", admin.ID).Msg("seeded super admin")
	return nil
}
