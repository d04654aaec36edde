package models

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"picktime/internal/shift"
)

// Shape identifies which historical layout a persisted ledger was written in.
type Shape int

const (
	ShapeEmpty Shape = iota
	// ShapeNested is day -> shift -> station -> record.
	ShapeNested
	// ShapeFlat is day -> station -> record with the shift inline as "turno".
	ShapeFlat
	// ShapeLegacyArray is day -> [records]; never migrated.
	ShapeLegacyArray
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeNested:
		return "nested"
	case ShapeFlat:
		return "flat"
	case ShapeLegacyArray:
		return "legacy-array"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// flatRecord is the per-station record of the day -> station layout.
type flatRecord struct {
	Cliques      uint   `json:"cliques"`
	TempoTotal   uint   `json:"tempoTotal"`
	StartTime    *int64 `json:"startTime,omitempty"`
	Turno        string `json:"turno,omitempty"`
	DataRegistro string `json:"dataRegistro"`
}

type DecodeResult struct {
	Ledger *Ledger
	Shape  Shape
	// Migrated is true when at least one record changed shape.
	Migrated bool
	// Relabelled lists flat records whose "turno" was missing or unknown and got fallbackShift.
	Relabelled []RecordRef
}

// DecodeLedger reads a persisted ledger in any known shape. Flat records are nested
// under their normalised "turno", or fallbackShift when it is missing, and are never active.
//
// A legacy array day anywhere in the blob disables migration: the result then holds
// only the days already in the nested shape, the rest are preserved verbatim, and the
// error wraps ErrUnmigratableLegacyShape. Unparseable input yields ErrMalformedPersistedData.
func DecodeLedger(data []byte, fallbackShift string) (*DecodeResult, error) {
	res := &DecodeResult{Ledger: NewLedger(), Shape: ShapeEmpty}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return res, nil
	}

	var days map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &days); err != nil {
		return res, fmt.Errorf("%w: %v", ErrMalformedPersistedData, err)
	}

	legacy := false
	for _, raw := range days {
		if firstByte(raw) == '[' {
			legacy = true
			break
		}
	}

	if legacy {
		res.Shape = ShapeLegacyArray
		for day, raw := range days {
			if firstByte(raw) != '{' {
				res.Ledger.Preserve(day, raw)
				continue
			}
			shifts, flat, err := decodeDay(raw)
			if err != nil || len(flat) > 0 {
				res.Ledger.Preserve(day, raw)
				continue
			}
			res.Ledger.Days[day] = fillTags(day, shifts)
		}
		return res, fmt.Errorf("%w: %d day(s) kept unreadable", ErrUnmigratableLegacyShape, len(res.Ledger.PreservedDays()))
	}

	res.Shape = ShapeNested
	for day, raw := range days {
		switch firstByte(raw) {
		case '{':
		case 'n':
			continue
		default:
			return &DecodeResult{Ledger: NewLedger(), Shape: ShapeEmpty},
				fmt.Errorf("%w: day %q is not an object", ErrMalformedPersistedData, day)
		}

		shifts, flat, err := decodeDay(raw)
		if err != nil {
			return &DecodeResult{Ledger: NewLedger(), Shape: ShapeEmpty},
				fmt.Errorf("%w: day %q: %v", ErrMalformedPersistedData, day, err)
		}
		bucket := fillTags(day, shifts)

		if len(flat) > 0 {
			res.Shape = ShapeFlat
			res.Migrated = true
			for stationID, fr := range flat {
				label, ok := shift.NormalizeLabel(fr.Turno)
				if !ok {
					label = fallbackShift
					res.Relabelled = append(res.Relabelled, RecordRef{Day: day, Shift: label, StationID: stationID})
				}
				dayKey := fr.DataRegistro
				if dayKey == "" {
					dayKey = day
				}
				mergeRecord(bucket, label, stationID, &StationRecord{
					ClickCount:   fr.Cliques,
					TotalSeconds: fr.TempoTotal,
					ShiftLabel:   label,
					DayKey:       dayKey,
				})
			}
		}
		res.Ledger.Days[day] = bucket
	}
	return res, nil
}

// decodeDay splits a day object into nested shift buckets and flat station records.
func decodeDay(raw json.RawMessage) (map[string]ShiftBucket, map[string]*flatRecord, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, err
	}
	shifts := make(map[string]ShiftBucket)
	flat := make(map[string]*flatRecord)
	for key, value := range entries {
		if shift.IsLabel(key) {
			var stations ShiftBucket
			if err := json.Unmarshal(value, &stations); err != nil {
				return nil, nil, fmt.Errorf("shift %q: %w", key, err)
			}
			if stations == nil {
				stations = make(ShiftBucket)
			}
			shifts[key] = stations
			continue
		}
		var fr flatRecord
		if err := json.Unmarshal(value, &fr); err != nil {
			return nil, nil, fmt.Errorf("station %q: %w", key, err)
		}
		flat[key] = &fr
	}
	return shifts, flat, nil
}

func fillTags(day string, shifts map[string]ShiftBucket) DayBucket {
	bucket := make(DayBucket, len(shifts))
	for label, stations := range shifts {
		for id, rec := range stations {
			if rec == nil {
				delete(stations, id)
				continue
			}
			if rec.ShiftLabel == "" {
				rec.ShiftLabel = label
			}
			if rec.DayKey == "" {
				rec.DayKey = day
			}
		}
		bucket[label] = stations
	}
	return bucket
}

func mergeRecord(bucket DayBucket, label, stationID string, rec *StationRecord) {
	stations, ok := bucket[label]
	if !ok {
		stations = make(ShiftBucket)
		bucket[label] = stations
	}
	if existing, ok := stations[stationID]; ok {
		existing.ClickCount += rec.ClickCount
		existing.TotalSeconds += rec.TotalSeconds
		return
	}
	stations[stationID] = rec
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
