package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/five82/lobby/internal/content"
)

// Metrics holds the kiosk's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	reg *prometheus.Registry

	fetchesTotal        *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	transitionsTotal    *prometheus.CounterVec
	pageViewsTotal      *prometheus.CounterVec
	consecutiveFailures prometheus.Gauge
	lastSuccess         prometheus.Gauge
}

var _ content.Observer = (*Metrics)(nil)

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lobby",
				Subsystem: "content",
				Name:      "fetches_total",
				Help:      "Content section fetches by outcome",
			},
			[]string{"section", "result"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lobby",
				Subsystem: "content",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of content section fetches in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"section"},
		),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lobby",
				Subsystem: "carousel",
				Name:      "transitions_total",
				Help:      "Carousel slide transitions by page",
			},
			[]string{"page"},
		),
		pageViewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lobby",
				Subsystem: "ui",
				Name:      "page_views_total",
				Help:      "Times each page was shown",
			},
			[]string{"page"},
		),
		consecutiveFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lobby",
			Subsystem: "poller",
			Name:      "consecutive_failures",
			Help:      "Poll rounds in a row where every section failed",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lobby",
			Subsystem: "poller",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last poll round with fresh content",
		}),
	}
	m.reg.MustRegister(
		m.fetchesTotal,
		m.fetchDuration,
		m.transitionsTotal,
		m.pageViewsTotal,
		m.consecutiveFailures,
		m.lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for scraping in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveFetch records one section request.
func (m *Metrics) ObserveFetch(section content.Section, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(string(section), fetchResult(err)).Inc()
	m.fetchDuration.WithLabelValues(string(section)).Observe(elapsed.Seconds())
}

// ObservePoll records the poller's health after a round.
func (m *Metrics) ObservePoll(failures int, lastSuccess time.Time) {
	if m == nil {
		return
	}
	m.consecutiveFailures.Set(float64(failures))
	if !lastSuccess.IsZero() {
		m.lastSuccess.Set(float64(lastSuccess.Unix()))
	}
}

// AddTransitions counts n carousel moves on page.
func (m *Metrics) AddTransitions(page string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.transitionsTotal.WithLabelValues(page).Add(float64(n))
}

// PageView counts one visit to page.
func (m *Metrics) PageView(page string) {
	if m == nil {
		return
	}
	m.pageViewsTotal.WithLabelValues(page).Inc()
}

func fetchResult(err error) string {
	var se *content.StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, content.ErrTimeout):
		return "timeout"
	case errors.Is(err, content.ErrHTMLResponse):
		return "html"
	case errors.Is(err, content.ErrUnexpectedContentType):
		return "content_type"
	case errors.As(err, &se):
		return "status_" + strconv.Itoa(se.Code)
	default:
		return "error"
	}
}

// Handler serves /metrics and /healthz. healthy reports whether the kiosk
// currently has a working content feed.
func (m *Metrics) Handler(healthy func() bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if healthy != nil && !healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("offline"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	reg := prometheus.NewRegistry()
	if m != nil {
		reg = m.reg
	}
	r.Get("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP)
	return r
}

// Serve runs the metrics server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
