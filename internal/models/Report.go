package models

type ReportRow struct {
	StationID    string `json:"stationId"`
	StationName  string `json:"stationName"`
	ClickCount   uint   `json:"clickCount"`
	TotalSeconds uint   `json:"totalSeconds"`
	Total        string `json:"total"`
}

type ShiftReport struct {
	Shift string      `json:"shift"`
	Rows  []ReportRow `json:"rows"`
}

type DayReport struct {
	Day    string        `json:"day"`
	Shifts []ShiftReport `json:"shifts"`
}
