package scheduler

import (
	"context"
	"errors"
	"testing"

	"landlord_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type stubLister struct {
	ids   []uuid.UUID
	err   error
	limit int
}

func (s *stubLister) PendingGeocode(_ context.Context, limit int) ([]uuid.UUID, error) {
	s.limit = limit
	return s.ids, s.err
}

type recordingQueue struct {
	queued []uuid.UUID
	failOn uuid.UUID
}

func (q *recordingQueue) EnqueuePropertyGeocode(_ context.Context, id uuid.UUID) error {
	if id == q.failOn {
		return errors.New("redis down")
	}
	q.queued = append(q.queued, id)
	return nil
}

func TestGeocodeSweeperQueuesPending(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	lister := &stubLister{ids: ids}
	queue := &recordingQueue{failOn: ids[1]}
	s := NewGeocodeSweeper(lister, queue, logger.Discard(), 0, 0)

	if got := s.sweep(context.Background()); got != 2 {
		t.Fatalf("expected 2 queued, got %d", got)
	}
	if lister.limit != defaultGeocodeSweepBatch {
		t.Fatalf("expected default batch %d, got %d", defaultGeocodeSweepBatch, lister.limit)
	}
	if queue.queued[0] != ids[0] || queue.queued[1] != ids[2] {
		t.Fatalf("unexpected queue order: %v", queue.queued)
	}
}

func TestGeocodeSweeperListError(t *testing.T) {
	s := NewGeocodeSweeper(&stubLister{err: errors.New("db down")}, &recordingQueue{}, logger.Discard(), 0, 5)

	if got := s.sweep(context.Background()); got != 0 {
		t.Fatalf("expected nothing queued, got %d", got)
	}
}
