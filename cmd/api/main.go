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

	"landlord_portal_backend/internal/adapters/storage"
	"landlord_portal_backend/internal/email"
	"landlord_portal_backend/internal/events"
	apphttp "landlord_portal_backend/internal/http"
	"landlord_portal_backend/internal/http/router"
	"landlord_portal_backend/internal/leases"
	"landlord_portal_backend/internal/maps"
	"landlord_portal_backend/internal/properties"
	"landlord_portal_backend/internal/scheduler"
	"landlord_portal_backend/internal/vendors"
	"landlord_portal_backend/migrations"
	"landlord_portal_backend/platform/cache"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/db"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

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
		return db.RunMigrations(ctx, cfg, migrations.FS)
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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	redisClient := initRedis(ctx, cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	var geocodeCache maps.Cache
	if redisClient != nil {
		geocodeCache = cache.NewStore(redisClient, "geocode:", cfg.GetGeocoderCacheTTL())
	}
	mapsService := maps.NewService(cfg, geocodeCache, log)

	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage", "error", err)
			panic("failed to initialize storage: " + err.Error())
		}
		ensureBucket(ctx, log, minioSvc, "lease templates", cfg.GetMinioBucketLeaseTemplates())
		ensureBucket(ctx, log, minioSvc, "lease exports", cfg.GetMinioBucketLeaseExports())
		storageSvc = minioSvc
	} else {
		log.Warn("MINIO_ENDPOINT not configured; lease exports are not archived")
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if sender == nil {
		log.Warn("SMTP not configured; sending leases to tenants is disabled")
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	mapsModule := maps.NewModule(mapsService)

	propertiesModule := properties.NewModule(pool, eventBus, mapsService, val, log)
	propertiesModule.RegisterHandlers(eventBus)
	if geocodeQueue, closeQueue := initGeocodeScheduler(cfg, log); geocodeQueue != nil {
		defer closeQueue()
		propertiesModule.SetGeocodeScheduler(geocodeQueue)
	}

	vendorsModule := vendors.NewModule(pool, mapsService, val, log)

	leasesModule, err := leases.NewModule(ctx, pool, storageSvc, sender, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize leases module", "error", err)
		panic("failed to initialize leases module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			mapsModule,
			propertiesModule,
			vendorsModule,
			leasesModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
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
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; geocode cache disabled")
		return nil
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis; geocode cache disabled", "error", err)
		return nil
	}
	return client
}

func initGeocodeScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.GeocodeScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; properties are geocoded in-process")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize geocode scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
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

	return fmt.Errorf("%s: %w", name, lastErr)
}
