package scheduler

import (
	"context"
	"errors"
	"testing"

	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type stubGeocoder struct {
	err   error
	calls []uuid.UUID
}

func (s *stubGeocoder) GeocodeProperty(_ context.Context, id uuid.UUID) error {
	s.calls = append(s.calls, id)
	return s.err
}

func geocodeTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	task, err := NewGeocodePropertyTask(GeocodePropertyPayload{PropertyID: id})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestHandleGeocodePropertyCallsGeocoder(t *testing.T) {
	geocoder := &stubGeocoder{}
	w := newWorker(geocoder, logger.Discard())
	id := uuid.New()

	if err := w.handleGeocodeProperty(context.Background(), geocodeTask(t, id.String())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(geocoder.calls) != 1 || geocoder.calls[0] != id {
		t.Fatalf("expected one call for %s, got %v", id, geocoder.calls)
	}
}

func TestHandleGeocodePropertySkipsRetry(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
	}{
		{name: "invalid id", id: "not-a-uuid"},
		{name: "deleted property", id: uuid.NewString(), err: apperr.NotFound("property not found")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorker(&stubGeocoder{err: tt.err}, logger.Discard())
			err := w.handleGeocodeProperty(context.Background(), geocodeTask(t, tt.id))
			if !errors.Is(err, asynq.SkipRetry) {
				t.Fatalf("expected SkipRetry, got %v", err)
			}
		})
	}
}

func TestHandleGeocodePropertyRetriesUpstreamErrors(t *testing.T) {
	upstream := apperr.Unavailable("geocoder unavailable", errors.New("503"))
	w := newWorker(&stubGeocoder{err: upstream}, logger.Discard())

	err := w.handleGeocodeProperty(context.Background(), geocodeTask(t, uuid.NewString()))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestHandleGeocodePropertyMalformedPayload(t *testing.T) {
	w := newWorker(&stubGeocoder{}, logger.Discard())
	task := asynq.NewTask(TaskGeocodeProperty, []byte("{"))

	if err := w.handleGeocodeProperty(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
