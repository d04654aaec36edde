package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picktime/internal/models"
	"picktime/internal/structures"
)

const reportBlob = `{
	"2025-03-12": {"08h-16h": {"P4": {"cliques": 1, "tempoTotal": 30}}},
	"2025-03-14": {
		"00h-08h": {"P3": {"cliques": 1, "tempoTotal": 61}},
		"16h-00h": {"P10": {"cliques": 2, "tempoTotal": 600}, "P9": {"cliques": 1, "tempoTotal": 119}},
		"08h-16h": {"P11": {"cliques": 1, "tempoTotal": 60}, "P3": {"cliques": 4, "tempoTotal": 240}}
	}
}`

func loadedReportHarness(t *testing.T) *harness {
	h := newHarness(t, at("12:00:00"), BucketCutover)
	h.kv.Data[KeyLedger] = []byte(reportBlob)
	require.NoError(t, h.ledger.Load())
	return h
}

func TestReport_GroupingAndOrder(t *testing.T) {
	h := loadedReportHarness(t)

	out, err := h.report.Report("")
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "2025-03-14", out[0].Day)
	assert.Equal(t, "2025-03-12", out[1].Day)

	shifts := out[0].Shifts
	require.Len(t, shifts, 3)
	assert.Equal(t, "08h-16h", shifts[0].Shift)
	assert.Equal(t, "16h-00h", shifts[1].Shift)
	assert.Equal(t, "00h-08h", shifts[2].Shift)

	assert.Equal(t, []models.ReportRow{
		{StationID: "P3", StationName: "Borracha", ClickCount: 4, TotalSeconds: 240, Total: "4 min"},
		{StationID: "P11", StationName: "Câmara Etiqueta", ClickCount: 1, TotalSeconds: 60, Total: "1 min"},
	}, shifts[0].Rows)

	assert.Equal(t, "P9", shifts[1].Rows[0].StationID)
	assert.Equal(t, "1 min", shifts[1].Rows[0].Total)
	assert.Equal(t, "P10", shifts[1].Rows[1].StationID)
}

func TestReport_AscendingOrder(t *testing.T) {
	h := loadedReportHarness(t)
	h.report.order = OrderAsc

	out, err := h.report.Report("")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-03-12", out[0].Day)
	assert.Equal(t, OrderAsc, h.report.Order())
}

func TestReport_DayFilter(t *testing.T) {
	h := loadedReportHarness(t)

	out, err := h.report.Report("2025-03-12")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-12", out[0].Day)

	out, err = h.report.Report("2025-01-01")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = h.report.Report("14/03/2025")
	assert.ErrorIs(t, err, models.ErrInvalidDayKey)
}

func TestReport_DoesNotMutate(t *testing.T) {
	h := loadedReportHarness(t)
	before := h.ledger.Snapshot()
	rev := h.ledger.Revision()

	h.report.Project(before, "")
	_, err := h.report.Report("")
	require.NoError(t, err)

	assert.Equal(t, before.Days, h.ledger.Snapshot().Days)
	assert.Equal(t, rev, h.ledger.Revision())
}

func TestReport_UnknownStationKeepsId(t *testing.T) {
	h := newHarness(t, at("12:00:00"), BucketCutover)
	l := models.NewLedger()
	l.Record("2025-03-14", "08h-16h", "P42").ClickCount = 1

	out := h.report.Project(l, "")
	require.Len(t, out, 1)
	assert.Equal(t, "P42", out[0].Shifts[0].Rows[0].StationID)
	assert.Equal(t, "", out[0].Shifts[0].Rows[0].StationName)
}

func TestProject_SkipsNonCanonicalShifts(t *testing.T) {
	h := newHarness(t, at("12:00:00"), BucketCutover)
	l := models.NewLedger()
	l.Days["2025-03-13"] = models.DayBucket{"extra": models.ShiftBucket{"P5": &models.StationRecord{ClickCount: 1}}}
	l.Record("2025-03-14", "16h-00h", "P5").ClickCount = 1

	out := h.report.Project(l, "")
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-14", out[0].Day)
}

func TestNewReportService_DefaultsToDescending(t *testing.T) {
	rs := NewReportService(&structures.Config{}, nil, nil)
	assert.Equal(t, OrderDesc, rs.Order())
}
