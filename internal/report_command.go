package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"picktime/internal/models"
	"picktime/internal/persistence/interfaces"
	"picktime/internal/providers"
	"picktime/internal/services"
)

// ReportCommand prints the report of the stored ledger without starting the server.
type ReportCommand struct {
	ledger services.LedgerServiceInterface
	report services.ReportServiceInterface
	logger providers.Logger
	store  interfaces.KVStoreInterface
}

func (rc *ReportCommand) Run(w io.Writer, day string) error {
	defer rc.logger.Close()
	defer rc.store.Close()

	if err := rc.ledger.Load(); err != nil {
		return err
	}
	days, err := rc.report.Report(day)
	if err != nil {
		return err
	}
	return RenderReport(w, days)
}

var reportHeader = []string{"Posto", "Nome", "Paradas", "Tempo"}

// RenderReport writes one aligned table per day and shift. Widths are measured
// in terminal cells so accented station names line up.
func RenderReport(w io.Writer, days []models.DayReport) error {
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum registro.")
		return err
	}

	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(day.Day)
		b.WriteString("\n")
		for _, sr := range day.Shifts {
			rows := make([][]string, 0, len(sr.Rows))
			for _, r := range sr.Rows {
				rows = append(rows, []string{r.StationID, r.StationName, strconv.FormatUint(uint64(r.ClickCount), 10), r.Total})
			}
			b.WriteString("  Turno ")
			b.WriteString(sr.Shift)
			b.WriteString("\n")
			writeTable(&b, reportHeader, rows)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		b.WriteString("   ")
		for i, cell := range cells {
			b.WriteString(" ")
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	line(header)
	sep := make([]string, len(header))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

func NewReportCommand(ledger services.LedgerServiceInterface, report services.ReportServiceInterface, logger providers.Logger, store interfaces.KVStoreInterface) *ReportCommand {
	return &ReportCommand{ledger: ledger, report: report, logger: logger, store: store}
}
