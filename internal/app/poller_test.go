package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	result func(call int) content.Result
}

func (f *fakeFetcher) FetchAll(context.Context) content.Result {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.result(call)
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSaver struct {
	saved []content.Result
	err   error
}

func (s *fakeSaver) SaveResult(_ context.Context, res content.Result) error {
	s.saved = append(s.saved, res)
	return s.err
}

type fakePollObserver struct {
	failures []int
}

func (o *fakePollObserver) ObservePoll(failures int, _ time.Time) {
	o.failures = append(o.failures, failures)
}

func allFailed(err error) content.Result {
	errs := make(map[content.Section]error)
	for _, s := range content.Sections() {
		errs[s] = err
	}
	return content.Result{Errs: errs, FetchedAt: time.Now()}
}

func TestPollerRefresh_SavesSuccessfulRounds(t *testing.T) {
	fetcher := &fakeFetcher{result: func(int) content.Result {
		return content.Result{
			Bundle: content.Bundle{
				Papers: []content.Paper{{ID: 1, Title: "A"}},
			},
			Errs:      map[content.Section]error{content.SectionAwards: errors.New("boom")},
			FetchedAt: time.Now(),
		}
	}}
	saver := &fakeSaver{}
	obs := &fakePollObserver{}
	store := &state.Store{}
	p := &Poller{
		Store:    store,
		Fetcher:  fetcher,
		Cache:    saver,
		Metrics:  obs,
		Logger:   zerolog.Nop(),
		Interval: time.Minute,
	}

	snap := p.refresh(context.Background())
	if !snap.HasData(content.SectionPapers) {
		t.Fatalf("papers not loaded after refresh")
	}
	if snap.HasData(content.SectionAwards) {
		t.Fatalf("awards loaded despite fetch error")
	}
	if len(saver.saved) != 1 {
		t.Fatalf("SaveResult calls = %d, want 1", len(saver.saved))
	}
	if len(obs.failures) != 1 || obs.failures[0] != 0 {
		t.Fatalf("observed failures = %v, want [0]", obs.failures)
	}
}

func TestPollerRefresh_AllFailedSkipsCacheAndCounts(t *testing.T) {
	fetcher := &fakeFetcher{result: func(int) content.Result {
		return allFailed(content.ErrTimeout)
	}}
	saver := &fakeSaver{}
	obs := &fakePollObserver{}
	p := &Poller{
		Store:    &state.Store{},
		Fetcher:  fetcher,
		Cache:    saver,
		Metrics:  obs,
		Logger:   zerolog.Nop(),
		Interval: time.Minute,
	}

	p.refresh(context.Background())
	snap := p.refresh(context.Background())

	if len(saver.saved) != 0 {
		t.Fatalf("SaveResult called %d times on failed rounds", len(saver.saved))
	}
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 2 and offline", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if !errors.Is(snap.LastError, content.ErrTimeout) {
		t.Fatalf("LastError = %v, want ErrTimeout", snap.LastError)
	}
	if len(obs.failures) != 2 || obs.failures[1] != 2 {
		t.Fatalf("observed failures = %v, want [1 2]", obs.failures)
	}
}

func TestPollerRefresh_CacheErrorIsNotFatal(t *testing.T) {
	fetcher := &fakeFetcher{result: func(int) content.Result {
		return content.Result{
			Bundle:    content.Bundle{Patents: []content.Patent{{ID: 7}}},
			FetchedAt: time.Now(),
		}
	}}
	p := &Poller{
		Store:   &state.Store{},
		Fetcher: fetcher,
		Cache:   &fakeSaver{err: errors.New("disk full")},
		Logger:  zerolog.Nop(),
	}
	snap := p.refresh(context.Background())
	if !snap.HasData(content.SectionPatents) {
		t.Fatalf("patents not loaded when cache save failed")
	}
}

func TestPollerStart_RefreshesImmediatelyAndStops(t *testing.T) {
	fetcher := &fakeFetcher{result: func(int) content.Result {
		return content.Result{FetchedAt: time.Now()}
	}}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		Store:    &state.Store{},
		Fetcher:  fetcher,
		Logger:   zerolog.Nop(),
		Interval: time.Hour,
	}
	p.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for fetcher.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("poller did not refresh on start")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	time.Sleep(20 * time.Millisecond)
	if got := fetcher.count(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1 with an hour interval", got)
	}
}
