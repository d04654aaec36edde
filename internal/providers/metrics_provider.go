package providers

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"picktime/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncToggles(action string)
	IncCutovers(reason string)
	AddDowntime(stationID string, seconds uint)
	SetActiveStation(stationID string)
	SetLedgerDays(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	togglesTotal        *prometheus.CounterVec
	cutoversTotal       *prometheus.CounterVec
	downtimeSeconds     *prometheus.CounterVec
	activeStation       *prometheus.GaugeVec
	ledgerDays          prometheus.Gauge

	mu     sync.Mutex
	active string
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncToggles(action string) {
	m.togglesTotal.WithLabelValues(action).Inc()
}

func (m *MetricsProvider) IncCutovers(reason string) {
	m.cutoversTotal.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) AddDowntime(stationID string, seconds uint) {
	if seconds == 0 {
		return
	}
	m.downtimeSeconds.WithLabelValues(stationID).Add(float64(seconds))
}

// SetActiveStation moves the single 1-valued series to stationID; "" means idle.
func (m *MetricsProvider) SetActiveStation(stationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == stationID {
		return
	}
	if m.active != "" {
		m.activeStation.WithLabelValues(m.active).Set(0)
	}
	if stationID != "" {
		m.activeStation.WithLabelValues(stationID).Set(1)
	}
	m.active = stationID
}

func (m *MetricsProvider) SetLedgerDays(count int) {
	m.ledgerDays.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "picktime_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "picktime_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "picktime_report_cache_hits_total",
			Help: "Total number of report cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "picktime_report_cache_misses_total",
			Help: "Total number of report cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "picktime_persistence_duration_seconds",
			Help:    "Duration of ledger writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		togglesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "picktime_toggles_total",
			Help: "Station toggles by resulting action",
		}, []string{"action"}),

		cutoversTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "picktime_cutovers_total",
			Help: "Forced session cutovers by trigger",
		}, []string{"reason"}),

		downtimeSeconds: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "picktime_downtime_seconds_total",
			Help: "Downtime seconds committed to the ledger per station",
		}, []string{"station"}),

		activeStation: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "picktime_active_station",
			Help: "1 for the station whose session is open",
		}, []string{"station"}),

		ledgerDays: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "picktime_ledger_days",
			Help: "Number of readable days held in the ledger",
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncToggles(_ string)                              {}
func (n *noopMetrics) IncCutovers(_ string)                             {}
func (n *noopMetrics) AddDowntime(_ string, _ uint)                     {}
func (n *noopMetrics) SetActiveStation(_ string)                        {}
func (n *noopMetrics) SetLedgerDays(_ int)                              {}
