package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"picktime/internal/services"
)

type HealthController struct {
	ledger    services.LedgerServiceInterface
	session   services.SessionServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	LedgerRevision uint64  `json:"ledger_revision"`
	ActiveStation  string  `json:"active_station,omitempty"`
}

// Health answers 503 until the ledger has been loaded.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		LedgerRevision: hc.ledger.Revision(),
	}
	if active := hc.session.Active(); active != nil {
		resp.ActiveStation = active.StationID
	}
	code := http.StatusOK
	if !hc.ledger.Loaded() {
		resp.Status = "loading"
		code = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(ledger services.LedgerServiceInterface, session services.SessionServiceInterface) *HealthController {
	return &HealthController{
		ledger:    ledger,
		session:   session,
		startTime: time.Now(),
	}
}
