package maps

import (
	"context"
	"sync"
	"testing"
	"time"
)

// blockingSearcher answers each query only once released, or ends when the
// call's context is cancelled.
type blockingSearcher struct {
	mu       sync.Mutex
	started  chan string
	release  map[string]chan struct{}
	observed []string
}

func newBlockingSearcher() *blockingSearcher {
	return &blockingSearcher{
		started: make(chan string, 8),
		release: make(map[string]chan struct{}),
	}
}

func (b *blockingSearcher) gate(query string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.release[query]
	if !ok {
		ch = make(chan struct{})
		b.release[query] = ch
	}
	return ch
}

func (b *blockingSearcher) SearchAddresses(ctx context.Context, query string, _ SearchOptions) (SearchResult, error) {
	b.started <- query
	select {
	case <-ctx.Done():
		return SearchResult{Results: []GeocodingResult{}}, nil
	case <-b.gate(query):
	}
	b.mu.Lock()
	b.observed = append(b.observed, query)
	b.mu.Unlock()
	return SearchResult{Results: []GeocodingResult{{ID: query, DisplayName: query}}}, nil
}

func TestLiveSearcherSupersedesInFlightCall(t *testing.T) {
	searcher := newBlockingSearcher()
	live := NewLiveSearcher(searcher, time.Millisecond)

	type outcome struct {
		result SearchResult
		err    error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		res, err := live.Search(context.Background(), "user:address", "spring", SearchOptions{})
		firstDone <- outcome{res, err}
	}()

	if got := <-searcher.started; got != "spring" {
		t.Fatalf("expected first query in flight, got %q", got)
	}

	secondDone := make(chan outcome, 1)
	go func() {
		res, err := live.Search(context.Background(), "user:address", "springfield", SearchOptions{})
		secondDone <- outcome{res, err}
	}()

	first := <-firstDone
	if first.err != nil {
		t.Fatalf("superseded call must not error: %v", first.err)
	}
	if !first.result.Superseded || len(first.result.Results) != 0 {
		t.Fatalf("expected superseded empty result, got %+v", first.result)
	}

	if got := <-searcher.started; got != "springfield" {
		t.Fatalf("expected second query in flight, got %q", got)
	}
	// Releasing the stale query after the fact must not reach anyone.
	close(searcher.gate("spring"))
	close(searcher.gate("springfield"))

	second := <-secondDone
	if second.err != nil || second.result.Superseded {
		t.Fatalf("unexpected second outcome %+v", second)
	}
	if len(second.result.Results) != 1 || second.result.Results[0].ID != "springfield" {
		t.Fatalf("expected only the newer results, got %+v", second.result.Results)
	}
}

func TestLiveSearcherDebounceCollapsesBurst(t *testing.T) {
	searcher := newBlockingSearcher()
	close(searcher.gate("springfield"))
	live := NewLiveSearcher(searcher, 100*time.Millisecond)

	var wg sync.WaitGroup
	results := make([]SearchResult, 3)
	for i, q := range []string{"sp", "spr", "springfield"} {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			results[i], _ = live.Search(context.Background(), "user:city", q, SearchOptions{})
		}(i, q)
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		if !results[i].Superseded {
			t.Fatalf("expected keystroke %d to be superseded, got %+v", i, results[i])
		}
	}
	if results[2].Superseded || len(results[2].Results) != 1 {
		t.Fatalf("expected last keystroke to win, got %+v", results[2])
	}

	searcher.mu.Lock()
	defer searcher.mu.Unlock()
	if len(searcher.observed) != 1 || searcher.observed[0] != "springfield" {
		t.Fatalf("expected a single dispatched lookup, got %v", searcher.observed)
	}
}

func TestLiveSearcherKeysAreIndependent(t *testing.T) {
	searcher := newBlockingSearcher()
	close(searcher.gate("oak"))
	close(searcher.gate("elm"))
	live := NewLiveSearcher(searcher, time.Millisecond)

	var wg sync.WaitGroup
	var a, b SearchResult
	wg.Add(2)
	go func() { defer wg.Done(); a, _ = live.Search(context.Background(), "u:street", "oak", SearchOptions{}) }()
	go func() { defer wg.Done(); b, _ = live.Search(context.Background(), "u:city", "elm", SearchOptions{}) }()
	wg.Wait()

	if a.Superseded || b.Superseded || len(a.Results) != 1 || len(b.Results) != 1 {
		t.Fatalf("different fields must not cancel each other: %+v %+v", a, b)
	}
}
