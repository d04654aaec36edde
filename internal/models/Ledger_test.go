package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RecordCreatesTaggedEntry(t *testing.T) {
	l := NewLedger()
	rec := l.Record("2025-03-14", "08h-16h", "P3")
	require.NotNil(t, rec)
	assert.Equal(t, "08h-16h", rec.ShiftLabel)
	assert.Equal(t, "2025-03-14", rec.DayKey)

	rec.ClickCount = 2
	again := l.Record("2025-03-14", "08h-16h", "P3")
	assert.Same(t, rec, again)
	assert.Equal(t, uint(2), again.ClickCount)
}

func TestLedger_Find(t *testing.T) {
	l := NewLedger()
	_, ok := l.Find("2025-03-14", "08h-16h", "P3")
	assert.False(t, ok)

	l.Record("2025-03-14", "08h-16h", "P3")
	_, ok = l.Find("2025-03-14", "08h-16h", "P3")
	assert.True(t, ok)
	_, ok = l.Find("2025-03-14", "16h-00h", "P3")
	assert.False(t, ok)
}

func TestLedger_ClearActive(t *testing.T) {
	l := NewLedger()
	l.Record("2025-03-13", "16h-00h", "P3").Active = true
	l.Record("2025-03-14", "08h-16h", "P3").Active = true
	l.Record("2025-03-14", "08h-16h", "P4").Active = true

	assert.Equal(t, 2, l.ClearActive("P3"))
	refs := l.ActiveRecords()
	require.Len(t, refs, 1)
	assert.Equal(t, "P4", refs[0].StationID)
}

func TestLedger_ClearAllActiveKeepsOne(t *testing.T) {
	l := NewLedger()
	l.Record("2025-03-14", "08h-16h", "P3").Active = true
	l.Record("2025-03-14", "08h-16h", "P4").Active = true
	keep := RecordRef{Day: "2025-03-14", Shift: "08h-16h", StationID: "P4"}

	assert.Equal(t, 1, l.ClearAllActive(&keep))
	assert.Equal(t, []RecordRef{keep}, l.ActiveRecords())

	assert.Equal(t, 1, l.ClearAllActive(nil))
	assert.Empty(t, l.ActiveRecords())
}

func TestLedger_CloneIsDeep(t *testing.T) {
	l := NewLedger()
	l.Record("2025-03-14", "08h-16h", "P3").TotalSeconds = 10
	l.Preserve("2025-01-01", json.RawMessage(`[1]`))

	c := l.Clone()
	c.Record("2025-03-14", "08h-16h", "P3").TotalSeconds = 99
	c.Record("2025-03-15", "08h-16h", "P4")

	rec, _ := l.Find("2025-03-14", "08h-16h", "P3")
	assert.Equal(t, uint(10), rec.TotalSeconds)
	assert.Equal(t, []string{"2025-03-14"}, l.DayKeys())
	assert.Equal(t, []string{"2025-01-01"}, c.PreservedDays())
}

func TestLedger_MarshalJSON(t *testing.T) {
	l := NewLedger()
	rec := l.Record("2025-03-14", "08h-16h", "P3")
	rec.ClickCount = 1
	rec.TotalSeconds = 42

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2025-03-14":{"08h-16h":{"P3":{"cliques":1,"tempoTotal":42,"ativo":false,"turno":"08h-16h","dataRegistro":"2025-03-14"}}}}`, string(out))
}

func TestLedger_ReadableDayShadowsPreserved(t *testing.T) {
	l := NewLedger()
	l.Preserve("2025-03-14", json.RawMessage(`[1]`))
	l.Record("2025-03-14", "08h-16h", "P3")

	out, err := json.Marshal(l)
	require.NoError(t, err)
	var back map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, byte('{'), firstByte(back["2025-03-14"]))
}

func TestActiveSession_ElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	s := NewActiveSession("P3", start)

	assert.Equal(t, "P3", s.StationID)
	assert.True(t, start.Equal(s.Start()))
	assert.Equal(t, uint(0), s.ElapsedSeconds(start))
	assert.Equal(t, uint(0), s.ElapsedSeconds(start.Add(999*time.Millisecond)))
	assert.Equal(t, uint(42), s.ElapsedSeconds(start.Add(42*time.Second+500*time.Millisecond)))
	assert.Equal(t, uint(0), s.ElapsedSeconds(start.Add(-time.Minute)))

	var idle *ActiveSession
	assert.Equal(t, uint(0), idle.ElapsedSeconds(start))
}
