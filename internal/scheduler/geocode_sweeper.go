package scheduler

import (
	"context"
	"time"

	"landlord_portal_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	defaultGeocodeSweepInterval = 15 * time.Minute
	defaultGeocodeSweepBatch    = 50
)

// PendingGeocodeLister returns properties that still lack coordinates.
type PendingGeocodeLister interface {
	PendingGeocode(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// GeocodeSweeper periodically queues geocode tasks for properties whose
// address-changed event was lost (API restart, Redis outage).
type GeocodeSweeper struct {
	lister   PendingGeocodeLister
	queue    GeocodeScheduler
	log      *logger.Logger
	interval time.Duration
	batch    int
}

func NewGeocodeSweeper(lister PendingGeocodeLister, queue GeocodeScheduler, log *logger.Logger, interval time.Duration, batch int) *GeocodeSweeper {
	if interval <= 0 {
		interval = defaultGeocodeSweepInterval
	}
	if batch <= 0 {
		batch = defaultGeocodeSweepBatch
	}

	return &GeocodeSweeper{
		lister:   lister,
		queue:    queue,
		log:      log,
		interval: interval,
		batch:    batch,
	}
}

func (s *GeocodeSweeper) Run(ctx context.Context) {
	if s == nil || s.lister == nil || s.queue == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *GeocodeSweeper) sweep(ctx context.Context) int {
	ids, err := s.lister.PendingGeocode(ctx, s.batch)
	if err != nil {
		s.log.Warn("geocode sweep failed", "error", err)
		return 0
	}

	queued := 0
	for _, id := range ids {
		if err := s.queue.EnqueuePropertyGeocode(ctx, id); err != nil {
			s.log.Warn("geocode sweep enqueue failed", "property_id", id, "error", err)
			continue
		}
		queued++
	}

	if queued > 0 {
		s.log.Info("geocode sweep queued properties", "queued", queued)
	}
	return queued
}
