package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picktime/internal/structures"
)

func withRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok)

	m.IncRequestsTotal("/status", 200)
	m.ObserveRequestDuration("/status", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncToggles("open")
	m.IncCutovers("end_window")
	m.AddDowntime("P3", 10)
	m.SetActiveStation("P3")
	m.SetLedgerDays(3)
}

func TestMetricsProvider_Counters(t *testing.T) {
	withRegistry(t)
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncToggles("open")
	m.IncToggles("open")
	m.IncToggles("close")
	m.IncCutovers("shift_change")
	m.AddDowntime("P4", 90)
	m.AddDowntime("P4", 0)
	m.SetLedgerDays(2)
	m.IncRequestsTotal("/toggle", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(mp.togglesTotal.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.togglesTotal.WithLabelValues("close")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.cutoversTotal.WithLabelValues("shift_change")))
	assert.Equal(t, 90.0, testutil.ToFloat64(mp.downtimeSeconds.WithLabelValues("P4")))
	assert.Equal(t, 2.0, testutil.ToFloat64(mp.ledgerDays))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/toggle", "4xx")))
}

func TestMetricsProvider_ActiveStationMoves(t *testing.T) {
	withRegistry(t)
	mp := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}).(*MetricsProvider)

	mp.SetActiveStation("P3")
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.activeStation.WithLabelValues("P3")))

	mp.SetActiveStation("P5")
	assert.Equal(t, 0.0, testutil.ToFloat64(mp.activeStation.WithLabelValues("P3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.activeStation.WithLabelValues("P5")))

	mp.SetActiveStation("")
	assert.Equal(t, 0.0, testutil.ToFloat64(mp.activeStation.WithLabelValues("P5")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
