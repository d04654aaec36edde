package models

import "time"

// ActiveSession is the open half of whichever StationRecord is accumulating.
// A nil *ActiveSession means Idle.
type ActiveSession struct {
	StationID    string `json:"stationId"`
	StartEpochMs int64  `json:"startEpochMs"`
}

func NewActiveSession(stationID string, start time.Time) *ActiveSession {
	return &ActiveSession{StationID: stationID, StartEpochMs: start.UnixMilli()}
}

func (s *ActiveSession) Start() time.Time {
	return time.UnixMilli(s.StartEpochMs)
}

// ElapsedSeconds is floor((now-start)/1s), clamped at zero for clocks that moved backwards.
func (s *ActiveSession) ElapsedSeconds(now time.Time) uint {
	if s == nil {
		return 0
	}
	ms := now.UnixMilli() - s.StartEpochMs
	if ms <= 0 {
		return 0
	}
	return uint(ms / 1000)
}
