package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"landlord_portal_backend/internal/maps"
	propertiesrepo "landlord_portal_backend/internal/properties/repository"
	propertiesservice "landlord_portal_backend/internal/properties/service"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/db"
	"landlord_portal_backend/platform/logger"
)

func main() {
	limit := flag.Int("limit", 500, "maximum number of properties to geocode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting property geocode backfill", "limit", *limit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	// No cache: a backfill sees each address once. The geocoder's rate
	// limiter paces the provider calls.
	mapsService := maps.NewService(cfg, nil, log)
	svc := propertiesservice.New(propertiesrepo.New(pool), nil, mapsService, log)

	processed, failed, err := svc.BackfillCoordinates(ctx, *limit)
	if err != nil {
		log.Error("property geocode backfill stopped", "processed", processed, "failed", failed, "error", err)
		return
	}

	log.Info("property geocode backfill finished", "processed", processed, "failed", failed)
}
