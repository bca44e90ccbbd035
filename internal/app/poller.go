package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/state"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 30 * time.Second
)

// resultSaver persists the sections of a fetch round.
type resultSaver interface {
	SaveResult(ctx context.Context, res content.Result) error
}

// pollObserver receives the poller's health after every round.
type pollObserver interface {
	ObservePoll(failures int, lastSuccess time.Time)
}

// Poller refreshes the store from the content API.
type Poller struct {
	Store    *state.Store
	Fetcher  content.Fetcher
	Cache    resultSaver  // optional
	Metrics  pollObserver // optional
	Logger   zerolog.Logger
	Interval time.Duration
}

// Start launches a background goroutine that refreshes the store until ctx is
// cancelled. The first refresh happens immediately; later ones wait longer
// while every section keeps failing. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	if p.Interval <= 0 {
		p.Interval = defaultPollInterval
	}
	interval := p.Interval
	go func() {
		for {
			snap := p.refresh(ctx)
			wait := calculateBackoff(snap.ConsecutiveFailures, interval)

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh runs one fetch round and returns the resulting snapshot.
func (p *Poller) refresh(ctx context.Context) state.Snapshot {
	res := p.Fetcher.FetchAll(ctx)
	if ctx.Err() != nil {
		return p.Store.Snapshot()
	}

	changed := p.Store.Update(res)
	snap := p.Store.Snapshot()

	for section, err := range res.Errs {
		p.Logger.Warn().Err(err).Str("section", string(section)).Msg("content poll failed")
	}
	if len(changed) > 0 {
		arr := zerolog.Arr()
		for _, section := range changed {
			arr.Str(string(section))
		}
		p.Logger.Info().Array("sections", arr).Msg("content updated")
	}
	if snap.IsOffline() {
		p.Logger.Warn().
			Int("failures", snap.ConsecutiveFailures).
			Dur("retry_in", calculateBackoff(snap.ConsecutiveFailures, p.Interval)).
			Msg("content api unreachable")
	}

	if p.Cache != nil && !res.AllFailed() {
		if err := p.Cache.SaveResult(ctx, res); err != nil {
			p.Logger.Error().Err(err).Msg("save content cache")
		}
	}
	if p.Metrics != nil {
		p.Metrics.ObservePoll(snap.ConsecutiveFailures, snap.LastUpdated)
	}
	return snap
}

// calculateBackoff returns base for a healthy feed and doubles it per
// consecutive failure, never exceeding maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
