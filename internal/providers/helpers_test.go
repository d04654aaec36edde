package providers

import "time"

// Local doubles; testutil imports providers.
type nopLogger struct {
	warnings int
}

func (m *nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  { m.warnings++ }
func (m *nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Close()                                        {}

type countingMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *countingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *countingMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *countingMetrics) IncCacheHits()                                    { m.hits++ }
func (m *countingMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *countingMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *countingMetrics) IncToggles(_ string)                              {}
func (m *countingMetrics) IncCutovers(_ string)                             {}
func (m *countingMetrics) AddDowntime(_ string, _ uint)                     {}
func (m *countingMetrics) SetActiveStation(_ string)                        {}
func (m *countingMetrics) SetLedgerDays(_ int)                              {}
