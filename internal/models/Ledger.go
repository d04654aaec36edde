package models

import (
	"sort"

	json "github.com/goccy/go-json"
)

// StationRecord is the accumulated downtime of one station in one shift of one day.
// JSON names match the blob already stored on operator devices.
type StationRecord struct {
	ClickCount   uint   `json:"cliques"`
	TotalSeconds uint   `json:"tempoTotal"`
	Active       bool   `json:"ativo"`
	ShiftLabel   string `json:"turno"`
	DayKey       string `json:"dataRegistro"`
}

// ShiftBucket maps station id to record.
type ShiftBucket map[string]*StationRecord

// DayBucket maps shift label to its stations.
type DayBucket map[string]ShiftBucket

// RecordRef addresses one record in the ledger.
type RecordRef struct {
	Day       string
	Shift     string
	StationID string
}

// Ledger is day -> shift -> station -> record. Days that could not be read
// are kept verbatim in preserved and written back untouched.
type Ledger struct {
	Days      map[string]DayBucket
	preserved map[string]json.RawMessage
}

func NewLedger() *Ledger {
	return &Ledger{
		Days:      make(map[string]DayBucket),
		preserved: make(map[string]json.RawMessage),
	}
}

func (l *Ledger) Find(day, shiftLabel, stationID string) (*StationRecord, bool) {
	shifts, ok := l.Days[day]
	if !ok {
		return nil, false
	}
	stations, ok := shifts[shiftLabel]
	if !ok {
		return nil, false
	}
	rec, ok := stations[stationID]
	return rec, ok
}

// Record returns the record at the given address, creating an empty one tagged
// with its shift and day when absent.
func (l *Ledger) Record(day, shiftLabel, stationID string) *StationRecord {
	shifts, ok := l.Days[day]
	if !ok {
		shifts = make(DayBucket)
		l.Days[day] = shifts
	}
	stations, ok := shifts[shiftLabel]
	if !ok {
		stations = make(ShiftBucket)
		shifts[shiftLabel] = stations
	}
	rec, ok := stations[stationID]
	if !ok {
		rec = &StationRecord{ShiftLabel: shiftLabel, DayKey: day}
		stations[stationID] = rec
	}
	return rec
}

// ClearActive drops the active flag of stationID everywhere and returns how many records changed.
func (l *Ledger) ClearActive(stationID string) int {
	n := 0
	for _, shifts := range l.Days {
		for _, stations := range shifts {
			if rec, ok := stations[stationID]; ok && rec.Active {
				rec.Active = false
				n++
			}
		}
	}
	return n
}

// ClearAllActive drops every active flag except the one at keep (nil keeps none).
func (l *Ledger) ClearAllActive(keep *RecordRef) int {
	n := 0
	for day, shifts := range l.Days {
		for label, stations := range shifts {
			for id, rec := range stations {
				if !rec.Active {
					continue
				}
				if keep != nil && keep.Day == day && keep.Shift == label && keep.StationID == id {
					continue
				}
				rec.Active = false
				n++
			}
		}
	}
	return n
}

func (l *Ledger) ActiveRecords() []RecordRef {
	var refs []RecordRef
	for day, shifts := range l.Days {
		for label, stations := range shifts {
			for id, rec := range stations {
				if rec.Active {
					refs = append(refs, RecordRef{Day: day, Shift: label, StationID: id})
				}
			}
		}
	}
	return refs
}

// DayKeys returns the readable days in ascending order.
func (l *Ledger) DayKeys() []string {
	keys := make([]string, 0, len(l.Days))
	for k := range l.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (l *Ledger) Preserve(day string, raw json.RawMessage) {
	if l.preserved == nil {
		l.preserved = make(map[string]json.RawMessage)
	}
	l.preserved[day] = raw
}

func (l *Ledger) PreservedDays() []string {
	keys := make([]string, 0, len(l.preserved))
	for k := range l.preserved {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for day, shifts := range l.Days {
		cs := make(DayBucket, len(shifts))
		for label, stations := range shifts {
			cst := make(ShiftBucket, len(stations))
			for id, rec := range stations {
				r := *rec
				cst[id] = &r
			}
			cs[label] = cst
		}
		c.Days[day] = cs
	}
	for day, raw := range l.preserved {
		c.preserved[day] = append(json.RawMessage(nil), raw...)
	}
	return c
}

// MarshalJSON writes the ledger in the nested shape. A readable day shadows a
// preserved one with the same key.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Days)+len(l.preserved))
	for day, raw := range l.preserved {
		out[day] = raw
	}
	for day, shifts := range l.Days {
		out[day] = shifts
	}
	return json.Marshal(out)
}
