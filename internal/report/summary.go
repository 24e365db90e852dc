package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/user/section-stats-go/internal/models"
)

// WriteSummary prints a table of revision totals and the top section names
// for every scope.
func WriteSummary(w io.Writer, data *models.StatsRecord, top int) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Section statistics")
	tbl.AppendHeader(table.Row{"Scope", "Revisions", "Section names", "Most common"})

	for _, scope := range models.Scopes {
		stats, err := data.Scope(scope)
		if err != nil {
			return err
		}

		common := stats.SectionNames.MostCommon(top)
		lines := make([]string, 0, len(common))
		for _, e := range common {
			lines = append(lines, fmt.Sprintf("%s (%d, %s)", e.Key, e.Count, frequency(e.Count, stats.Revisions)))
		}

		tbl.AppendRow(table.Row{
			string(scope),
			stats.Revisions,
			stats.SectionNames.Len(),
			strings.Join(lines, "\n"),
		})
		tbl.AppendSeparator()
	}

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func frequency(count, revisions int) string {
	if revisions <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", float64(count)/float64(revisions))
}
