package services

import (
	"fmt"
	"sort"

	"picktime/internal/models"
	"picktime/internal/shift"
	"picktime/internal/structures"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type ReportServiceInterface interface {
	Report(dayFilter string) ([]models.DayReport, error)
	Project(l *models.Ledger, dayFilter string) []models.DayReport
	Order() string
}

// ReportService is the read-only view over ledger snapshots.
type ReportService struct {
	ledger  LedgerServiceInterface
	catalog *models.Catalog
	order   string
}

// Report projects the current ledger. dayFilter is "" or a YYYY-MM-DD key.
func (rs *ReportService) Report(dayFilter string) ([]models.DayReport, error) {
	if dayFilter != "" {
		if _, err := shift.ParseDayKey(dayFilter); err != nil {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidDayKey, dayFilter)
		}
	}
	return rs.Project(rs.ledger.Snapshot(), dayFilter), nil
}

// Project groups days in the configured order, shifts in shift.Labels order and
// stations by numeric id. Only canonical shift keys are projected and empty groups
// are left out.
func (rs *ReportService) Project(l *models.Ledger, dayFilter string) []models.DayReport {
	days := l.DayKeys()
	if rs.order != OrderAsc {
		sort.Sort(sort.Reverse(sort.StringSlice(days)))
	}

	out := make([]models.DayReport, 0, len(days))
	for _, day := range days {
		if dayFilter != "" && day != dayFilter {
			continue
		}
		report := models.DayReport{Day: day}
		for _, label := range shift.Labels {
			stations := l.Days[day][label]
			if len(stations) == 0 {
				continue
			}
			ids := make([]string, 0, len(stations))
			for id := range stations {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				ni, nj := models.StationNumber(ids[i]), models.StationNumber(ids[j])
				if ni != nj {
					return ni < nj
				}
				return ids[i] < ids[j]
			})

			sr := models.ShiftReport{Shift: label, Rows: make([]models.ReportRow, 0, len(ids))}
			for _, id := range ids {
				rec := stations[id]
				sr.Rows = append(sr.Rows, models.ReportRow{
					StationID:    id,
					StationName:  rs.catalog.Name(id),
					ClickCount:   rec.ClickCount,
					TotalSeconds: rec.TotalSeconds,
					Total:        shift.FormatMinutes(rec.TotalSeconds),
				})
			}
			report.Shifts = append(report.Shifts, sr)
		}
		if len(report.Shifts) > 0 {
			out = append(out, report)
		}
	}
	return out
}

func (rs *ReportService) Order() string {
	return rs.order
}

func NewReportService(conf *structures.Config, ledger LedgerServiceInterface, catalog *models.Catalog) ReportServiceInterface {
	order := conf.Report.Order
	if order != OrderAsc {
		order = OrderDesc
	}
	return &ReportService{ledger: ledger, catalog: catalog, order: order}
}
