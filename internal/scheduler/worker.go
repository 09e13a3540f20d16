package scheduler

import (
	"context"
	"fmt"

	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/config"
	"landlord_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// PropertyGeocoder geocodes a stored property.
type PropertyGeocoder interface {
	GeocodeProperty(ctx context.Context, id uuid.UUID) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	geocoder PropertyGeocoder
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, geocoder PropertyGeocoder, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(geocoder, log)
	w.server = server
	return w, nil
}

func newWorker(geocoder PropertyGeocoder, log *logger.Logger) *Worker {
	w := &Worker{
		mux:      asynq.NewServeMux(),
		geocoder: geocoder,
		log:      log,
	}
	w.mux.HandleFunc(TaskGeocodeProperty, w.handleGeocodeProperty)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleGeocodeProperty(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseGeocodePropertyPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	propertyID, err := uuid.Parse(payload.PropertyID)
	if err != nil {
		return fmt.Errorf("invalid property id %q: %w", payload.PropertyID, asynq.SkipRetry)
	}

	err = w.geocoder.GeocodeProperty(ctx, propertyID)
	switch {
	case err == nil:
		return nil
	case apperr.Is(err, apperr.KindNotFound):
		// Deleted before the task ran.
		w.log.Info("skipping geocode for missing property", "property_id", propertyID)
		return fmt.Errorf("property %s: %w", propertyID, asynq.SkipRetry)
	default:
		w.log.Warn("property geocode failed", "property_id", propertyID, "error", err)
		return err
	}
}
