package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := New()
	m.ObserveRefresh(ResultOK, 20*time.Millisecond)
	m.ObserveRefresh(ResultOK, 30*time.Millisecond)
	m.ObserveRefresh(ResultNoMatch, time.Millisecond)
	m.AddEvents("kill", 4)
	m.AddEvents("kill", 0)
	m.SetKnownPlayers(12)
	m.RosterFailed()

	require.Equal(t, 2.0, testutil.ToFloat64(m.refreshes.WithLabelValues(ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues(ResultNoMatch)))
	require.Equal(t, 4.0, testutil.ToFloat64(m.events.WithLabelValues("kill")))
	require.Equal(t, 12.0, testutil.ToFloat64(m.registrySize))
	require.Equal(t, 1.0, testutil.ToFloat64(m.rosterFailures))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRefresh(ResultError, time.Second)
	m.AddEvents("kill", 1)
	m.SetKnownPlayers(1)
	m.RosterFailed()
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetKnownPlayers(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "tf2metrics_known_players 3"))
}
