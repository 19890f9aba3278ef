package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corpintel_backend/internal/adapters"
	"corpintel_backend/internal/analysis"
	"corpintel_backend/internal/discovery"
	"corpintel_backend/internal/discovery/repository"
	"corpintel_backend/internal/enrichment"
	apphttp "corpintel_backend/internal/http"
	"corpintel_backend/internal/http/router"
	"corpintel_backend/internal/infrastructure"
	"corpintel_backend/internal/reveal"
	"corpintel_backend/internal/scheduler"
	"corpintel_backend/internal/scraper"
	"corpintel_backend/internal/search"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/db"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"
	"corpintel_backend/platform/validator"

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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	store, health, cleanup := initPatternStore(ctx, cfg, log)
	if cleanup != nil {
		defer cleanup()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	searchModule := search.NewModule(cfg, log)
	scraperSvc := scraper.NewService(cfg, log)
	infraSvc := infrastructure.NewService(log)
	analysisSvc := analysis.NewService(cfg, log)

	discoveryModule := discovery.NewModule(cfg, store, eventBus, val, log)

	enrichmentModule := enrichment.NewModule(enrichment.Deps{
		Domains:   searchModule.Service(),
		Socials:   searchModule.Service(),
		Employees: searchModule.Service(),
		Scraper:   scraperSvc,
		Infra:     infraSvc,
		Analyzer:  analysisSvc,
		Discovery: adapters.NewDiscoveryAdapter(discoveryModule.Service()),
	}, eventBus, val, log)

	revealModule := reveal.NewModule(cfg, val)

	// CRM push runs through the background queue when configured.
	if cfg.IsCRMPushEnabled() {
		pushClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize crm push client", "error", err)
			panic("failed to initialize crm push client: " + err.Error())
		}
		defer pushClient.Close()

		adapters.NewCRMPushSubscriber(pushClient, log).Register(eventBus)
		log.Info("crm push enabled", "queue", cfg.GetAsynqQueueName())
	} else {
		log.Info("crm push disabled; reports stay local")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			discoveryModule,
			enrichmentModule,
			revealModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initPatternStore builds the configured pattern store backing and, when a
// networked backing is used, the matching health checker and cleanup.
func initPatternStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.PatternStore, apphttp.HealthChecker, func()) {
	switch cfg.GetPatternStoreBackend() {
	case config.PatternStoreRedis:
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid redis url", "error", err)
			panic("invalid redis url: " + err.Error())
		}
		if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
			opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
		client := redis.NewClient(opt)
		log.Info("pattern store backend", "backend", "redis")
		return repository.NewRedisStore(client), redisHealth{client}, func() { _ = client.Close() }

	case config.PatternStorePostgres:
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
		log.Info("pattern store backend", "backend", "postgres")
		return repository.NewPostgresStore(pool), db.NewPoolAdapter(pool), pool.Close

	default:
		log.Info("pattern store backend", "backend", "memory")
		return repository.NewMemoryStore(), nil, nil
	}
}

type redisHealth struct {
	client *redis.Client
}

func (r redisHealth) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
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
		}

		delay := baseDelay * time.Duration(attempt)
		log.Warn("retrying after failure", "operation", name, "attempt", attempt, "delay", delay.String(), "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
