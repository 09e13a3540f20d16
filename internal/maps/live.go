package maps

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce collapses keystroke bursts into one provider call.
const DefaultDebounce = 200 * time.Millisecond

type addressSearcher interface {
	SearchAddresses(ctx context.Context, query string, opts SearchOptions) (SearchResult, error)
}

type liveCall struct {
	cancel context.CancelFunc
}

// LiveSearcher serializes keystroke-driven lookups per input field. A new
// call for a key cancels the one in flight; only the newest call for a key
// ever returns results.
type LiveSearcher struct {
	searcher addressSearcher
	debounce time.Duration

	mu       sync.Mutex
	inflight map[string]*liveCall
}

// NewLiveSearcher wraps searcher. debounce <= 0 uses DefaultDebounce.
func NewLiveSearcher(searcher addressSearcher, debounce time.Duration) *LiveSearcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &LiveSearcher{
		searcher: searcher,
		debounce: debounce,
		inflight: make(map[string]*liveCall),
	}
}

// Search waits out the debounce window and runs the lookup for key. If a
// newer Search for the same key starts first, this call returns
// SearchResult{Superseded: true} and whatever it had in flight is dropped.
func (l *LiveSearcher) Search(ctx context.Context, key, query string, opts SearchOptions) (SearchResult, error) {
	callCtx, cancel := context.WithCancel(ctx)
	call := &liveCall{cancel: cancel}

	l.mu.Lock()
	if prev, ok := l.inflight[key]; ok {
		prev.cancel()
	}
	l.inflight[key] = call
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		if l.inflight[key] == call {
			delete(l.inflight, key)
		}
		l.mu.Unlock()
		cancel()
	}()

	timer := time.NewTimer(l.debounce)
	defer timer.Stop()

	select {
	case <-callCtx.Done():
		return l.abandoned(ctx, key, call), nil
	case <-timer.C:
	}

	result, err := l.searcher.SearchAddresses(callCtx, query, opts)
	if !l.isCurrent(key, call) || callCtx.Err() != nil {
		return l.abandoned(ctx, key, call), nil
	}
	return result, err
}

func (l *LiveSearcher) abandoned(ctx context.Context, key string, call *liveCall) SearchResult {
	if ctx.Err() == nil && !l.isCurrent(key, call) {
		return SearchResult{Results: []GeocodingResult{}, Superseded: true}
	}
	return SearchResult{Results: []GeocodingResult{}}
}

func (l *LiveSearcher) isCurrent(key string, call *liveCall) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight[key] == call
}
