package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/services"
	"picktime/internal/shift"
	"picktime/internal/structures"
	"picktime/internal/testutil"
)

type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.sets++; m.data[key] = value }

type env struct {
	kv      *testutil.MockKV
	clock   *testutil.FakeClock
	cache   *mockCache
	ledger  services.LedgerServiceInterface
	session services.SessionServiceInterface
	api     *ApiController
	health  *HealthController
}

func newEnv(t *testing.T, load bool) *env {
	t.Helper()
	conf := &structures.Config{
		Shift:  structures.ShiftConfig{CutoverBucket: services.BucketCutover},
		Report: structures.ReportConfig{Order: services.OrderDesc},
	}
	catalog, err := models.NewCatalog(models.DefaultStations())
	require.NoError(t, err)

	e := &env{
		kv:    testutil.NewMockKV(),
		clock: testutil.NewFakeClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)),
		cache: newMockCache(),
	}
	logger := &testutil.MockLogger{}
	policy := shift.NewPolicy(e.clock)
	metrics := providers.NewMetricsProvider(conf)

	e.ledger = services.NewLedgerService(e.kv, policy, logger, metrics)
	e.session = services.NewSessionService(conf, e.ledger, catalog, policy, logger, metrics)
	report := services.NewReportService(conf, e.ledger, catalog)
	e.api = NewApiController(logger, e.session, report, e.ledger, catalog, e.cache)
	e.health = NewHealthController(e.ledger, e.session)

	if load {
		require.NoError(t, e.ledger.Load())
		require.NoError(t, e.session.Restore())
	}
	return e
}
