package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"picktime/internal/models"
	"picktime/internal/providers"
	"picktime/internal/services"
	"picktime/internal/shift"
)

const maxRequestBodySize = 4 << 10

type toggleRequest struct {
	Station string `json:"posto"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type ApiController struct {
	logger  providers.Logger
	session services.SessionServiceInterface
	report  services.ReportServiceInterface
	ledger  services.LedgerServiceInterface
	catalog *models.Catalog
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, session services.SessionServiceInterface, report services.ReportServiceInterface, ledger services.LedgerServiceInterface, catalog *models.Catalog, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		session: session,
		report:  report,
		ledger:  ledger,
		catalog: catalog,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// stationFromRequest reads ?posto= first, then a {"posto": ...} body.
func stationFromRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("posto")); id != "" {
		return id, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.New("missing station")
		}
		return "", err
	}
	id := strings.TrimSpace(payload.Station)
	if id == "" {
		return "", errors.New("missing station")
	}
	return id, nil
}

func (ac *ApiController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := stationFromRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	err = ac.session.Toggle(id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ac.session.Status())
	case errors.Is(err, models.ErrUnknownStation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrLedgerNotLoaded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		ac.logger.Errorf(providers.TypePost, "Toggle %s: %s", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "toggle was applied but could not be saved"})
	}
}

func (ac *ApiController) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.session.Status())
}

func (ac *ApiController) Stations(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stations", func() (any, error) {
		return ac.catalog.All(), nil
	})
}

// Report is cached per ledger revision, so any mutation invalidates it.
func (ac *ApiController) Report(w http.ResponseWriter, r *http.Request) {
	day := strings.TrimSpace(r.URL.Query().Get("day"))
	if day != "" {
		if _, err := shift.ParseDayKey(day); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: models.ErrInvalidDayKey.Error() + ": " + day})
			return
		}
	}

	key := "report:" + strconv.FormatUint(ac.ledger.Revision(), 10) + ":" + day + ":" + ac.report.Order()
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.report.Report(day)
	})
}
