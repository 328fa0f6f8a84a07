package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead_dashboard_backend/internal/adapters/storage"
	"lead_dashboard_backend/internal/email"
	"lead_dashboard_backend/internal/events"
	"lead_dashboard_backend/internal/exports"
	apphttp "lead_dashboard_backend/internal/http"
	"lead_dashboard_backend/internal/http/router"
	"lead_dashboard_backend/internal/leads"
	"lead_dashboard_backend/internal/leads/repository"
	"lead_dashboard_backend/internal/notification"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/db"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules. The audit
	// trail subscribes to every domain event and logs it off the request path.
	eventBus := events.NewInMemoryBus(log)
	events.NewAuditLogger(log).RegisterHandlers(eventBus)

	sender := email.NewSender(cfg)
	if !cfg.GetEmailEnabled() {
		log.Warn("EMAIL_ENABLED not set; hot lead alerts and report emails are disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for report uploads (MinIO); optional
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		svc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure reports bucket", 5, 2*time.Second, func() error {
			return svc.EnsureBucketExists(ctx, cfg.GetMinioBucketReports())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketReports())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		storageSvc = svc
		log.Info("storage service initialized", "reportsBucket", cfg.GetMinioBucketReports())
	} else {
		log.Warn("MinIO not configured; report uploads are disabled")
	}

	// Notified set backing: Redis when configured, in-process otherwise
	notifiedStore := newNotifiedStore(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	repo := repository.New(pool)
	alerter := notification.NewAlerter(sender, notifiedStore, cfg, eventBus, log)

	leadsModule := leads.NewModule(repo, alerter, cfg, eventBus, val, log)
	exportsModule := exports.NewModule(leadsModule.Service, sender, storageSvc, cfg, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: repo,
		Modules: []apphttp.Module{
			leadsModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// newNotifiedStore picks the alert dedup backing. Redis keeps the set
// across restarts; the in-memory store may re-alert after a restart.
func newNotifiedStore(ctx context.Context, cfg *config.Config, log *logger.Logger) notification.NotifiedStore {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_ADDR not configured; notified set resets on restart")
		return notification.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("redis unreachable, falling back to in-memory notified set", "error", err)
		return notification.NewMemoryStore()
	}

	log.Info("redis notified set initialized", "addr", cfg.GetRedisAddr())
	return notification.NewRedisStore(client)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
