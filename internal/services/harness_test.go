package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/shift"
	"picktime/internal/structures"
	"picktime/internal/testutil"
)

type harness struct {
	kv      *testutil.MockKV
	clock   *testutil.FakeClock
	logger  *testutil.MockLogger
	ledger  *LedgerService
	session *SessionService
	monitor *ShiftMonitor
	report  *ReportService
}

func at(hhmmss string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", "2025-03-14 "+hhmmss, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func newHarness(t *testing.T, now time.Time, bucket string) *harness {
	t.Helper()
	conf := &structures.Config{
		Shift:  structures.ShiftConfig{CutoverBucket: bucket},
		Report: structures.ReportConfig{Order: OrderDesc},
	}
	catalog, err := models.NewCatalog(models.DefaultStations())
	require.NoError(t, err)

	h := &harness{
		kv:     testutil.NewMockKV(),
		clock:  testutil.NewFakeClock(now),
		logger: &testutil.MockLogger{},
	}
	policy := shift.NewPolicy(h.clock)
	metrics := providers.NewMetricsProvider(conf)

	h.ledger = NewLedgerService(h.kv, policy, h.logger, metrics).(*LedgerService)
	h.session = NewSessionService(conf, h.ledger, catalog, policy, h.logger, metrics).(*SessionService)
	h.monitor = NewShiftMonitor(h.ledger, h.session, policy, h.logger, metrics).(*ShiftMonitor)
	h.report = NewReportService(conf, h.ledger, catalog).(*ReportService)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ledger.Load())
	require.NoError(t, h.session.Restore())
}

func (h *harness) record(t *testing.T, day, label, station string) *models.StationRecord {
	t.Helper()
	rec, ok := h.ledger.Snapshot().Find(day, label, station)
	require.True(t, ok, "no record %s/%s/%s", day, label, station)
	return rec
}

func (h *harness) activeCount() int {
	return len(h.ledger.Snapshot().ActiveRecords())
}
