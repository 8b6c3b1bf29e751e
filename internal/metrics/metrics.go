// Package metrics exposes Prometheus metrics for the refresh loop.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tf2metrics"

// Refresh results.
const (
	ResultOK      = "ok"
	ResultNoMatch = "no_match"
	ResultError   = "error"
)

// Metrics holds the collectors for one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	events          *prometheus.CounterVec
	registrySize    prometheus.Gauge
	rosterFailures  prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &Metrics{
		registry: reg,
		refreshes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Refresh cycles by result.",
		}, []string{"result"}),
		refreshDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time spent in one refresh cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		events: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parsed_events_total",
			Help:      "Events parsed from the current match, by kind, summed over cycles.",
		}, []string{"kind"}),
		registrySize: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "known_players",
			Help:      "Player names in the name registry.",
		}),
		rosterFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_query_failures_total",
			Help:      "Failed live roster queries.",
		}),
	}
}

// ObserveRefresh records one finished cycle.
func (m *Metrics) ObserveRefresh(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
	m.refreshDuration.Observe(d.Seconds())
}

// AddEvents counts parsed events of one kind.
func (m *Metrics) AddEvents(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.events.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) SetKnownPlayers(n int) {
	if m == nil {
		return
	}
	m.registrySize.Set(float64(n))
}

func (m *Metrics) RosterFailed() {
	if m == nil {
		return
	}
	m.rosterFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
