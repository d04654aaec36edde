package models

// StationTotals is what the operator screen shows per station for today.
type StationTotals struct {
	StationID    string `json:"stationId"`
	Name         string `json:"name"`
	ClickCount   uint   `json:"clickCount"`
	TotalSeconds uint   `json:"totalSeconds"`
	Total        string `json:"total"`
	Active       bool   `json:"active"`
}

type Status struct {
	ActiveStation  string          `json:"activeStation,omitempty"`
	ActiveName     string          `json:"activeName,omitempty"`
	StartEpochMs   int64           `json:"startEpochMs,omitempty"`
	ElapsedSeconds uint            `json:"elapsedSeconds"`
	Elapsed        string          `json:"elapsed"`
	Day            string          `json:"day"`
	Shift          string          `json:"shift"`
	EndWindow      bool            `json:"endWindow"`
	Stations       []StationTotals `json:"stations"`
}
