package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/lobby/internal/cache"
	"github.com/five82/lobby/internal/config"
	"github.com/five82/lobby/internal/content"
	"github.com/five82/lobby/internal/logging"
	"github.com/five82/lobby/internal/metrics"
	"github.com/five82/lobby/internal/prefs"
	"github.com/five82/lobby/internal/state"
	"github.com/five82/lobby/internal/ui"
)

// Options configure the kiosk.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lobby/prefs.toml
	EnvFile    string // optional dotenv file
	PollEvery  int    // seconds; zero keeps the configured value
}

// LoadConfig resolves the configuration the way Run does: dotenv, file,
// environment, then flags from opts.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadEnvFile(opts.EnvFile, opts.EnvFile != ""); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewClient builds the content client for cfg.
func NewClient(cfg config.Config) (*content.Client, error) {
	client, err := content.NewClient(cfg.APIBaseURL, cfg.HomeAPIBaseURL, cfg.RequestTimeout())
	if err != nil {
		return nil, fmt.Errorf("init content client: %w", err)
	}
	return client, nil
}

// Run boots the kiosk until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logCloser.Close() }()
	logger.Info().
		Str("api", cfg.APIBaseURL).
		Dur("poll", cfg.PollInterval()).
		Msg("lobby starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	userPrefs := prefs.Load(opts.PrefsPath)
	store := &state.Store{}
	m := metrics.New()

	client, err := NewClient(cfg)
	if err != nil {
		return err
	}
	client.SetObserver(m)

	poller := &Poller{
		Store:    store,
		Fetcher:  client,
		Metrics:  m,
		Logger:   logger.With().Str("component", "poller").Logger(),
		Interval: cfg.PollInterval(),
	}
	if c := openCache(ctx, cfg.CachePath, store, logger); c != nil {
		defer func() { _ = c.Close() }()
		poller.Cache = c
	}
	poller.Start(ctx)

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, m, store, logger)
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Client:    client,
		Config:    cfg,
		Metrics:   m,
		Logger:    logger.With().Str("component", "ui").Logger(),
		ThemeName: userPrefs.Theme,
		StartPage: userPrefs.StartPage,
		PrefsPath: opts.PrefsPath,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("ui exited")
		return err
	}
	logger.Info().Msg("lobby stopped")
	return nil
}

// openCache opens the offline cache and seeds store from it. Failures are
// logged and leave the kiosk running without a cache.
func openCache(ctx context.Context, path string, store *state.Store, log zerolog.Logger) *cache.Cache {
	openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := cache.Open(openCtx, path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("open content cache")
		return nil
	}
	contents, err := c.Load(openCtx)
	if err != nil {
		log.Error().Err(err).Msg("load content cache")
		return c
	}
	if !contents.Empty() {
		store.Seed(contents.Bundle, contents.Sections, contents.FetchedAt)
		log.Info().
			Int("sections", len(contents.Sections)).
			Time("cached_at", contents.FetchedAt).
			Msg("seeded content from cache")
	}
	return c
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, store *state.Store, log zerolog.Logger) {
	h := m.Handler(func() bool { return !store.Snapshot().IsOffline() })
	if err := metrics.Serve(ctx, addr, h, log); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("metrics server")
	}
}
