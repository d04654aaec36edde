package shift

import (
	"strings"
	"time"
)

const (
	Morning = "08h-16h"
	Evening = "16h-00h"
	Night   = "00h-08h"

	DayKeyLayout = "2006-01-02"

	// EndWindow is how long before a boundary a running session is cut over early.
	EndWindow = 5 * time.Minute
)

// Labels is the fixed display order of the three shifts.
var Labels = []string{Morning, Evening, Night}

var legacyLabels = map[string]string{
	"1º turno": Morning,
	"2º turno": Evening,
	"3º turno": Night,
	"08h - 16h": Morning,
	"16h - 00h": Evening,
	"00h - 08h": Night,
}

// Label maps the local hour of t to its shift.
func Label(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 8 && hour < 16:
		return Morning
	case hour >= 16:
		return Evening
	default:
		return Night
	}
}

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

func ParseDayKey(s string) (time.Time, error) {
	return time.Parse(DayKeyLayout, s)
}

// IsEndWindow reports whether t falls in the last minutes before 08:00, 16:00 or 00:00.
func IsEndWindow(t time.Time) bool {
	hour, minute := t.Hour(), t.Minute()
	if hour != 7 && hour != 15 && hour != 23 {
		return false
	}
	return minute >= 60-int(EndWindow/time.Minute)
}

// ShiftStart returns the instant the shift containing t began.
func ShiftStart(t time.Time) time.Time {
	var hour int
	switch Label(t) {
	case Morning:
		hour = 8
	case Evening:
		hour = 16
	default:
		hour = 0
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// PreviousDayKey is the day of the instant just before the shift containing t started.
// Right after midnight that is yesterday.
func PreviousDayKey(t time.Time) string {
	return DayKey(ShiftStart(t).Add(-time.Nanosecond))
}

func IsLabel(s string) bool {
	for _, l := range Labels {
		if l == s {
			return true
		}
	}
	return false
}

// NormalizeLabel accepts canonical labels and the older "1º Turno" style names.
func NormalizeLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if IsLabel(s) {
		return s, true
	}
	if l, ok := legacyLabels[strings.ToLower(s)]; ok {
		return l, true
	}
	return "", false
}

// Order returns the position of a label in Labels, or -1.
func Order(label string) int {
	for i, l := range Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Policy binds the pure shift functions to an injected clock.
type Policy struct {
	clock Clock
}

func NewPolicy(clock Clock) *Policy {
	return &Policy{clock: clock}
}

func (p *Policy) Now() time.Time {
	return p.clock.Now()
}

func (p *Policy) CurrentDayKey() string {
	return DayKey(p.clock.Now())
}

func (p *Policy) CurrentShift() string {
	return Label(p.clock.Now())
}

func (p *Policy) IsShiftEndWindow() bool {
	return IsEndWindow(p.clock.Now())
}
