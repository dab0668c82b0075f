package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// WriteTable prints single-rank comparison rows as a terminal table.
func WriteTable(w io.Writer, rows []report.ComparisonRow, oldYear, newYear string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Unit", "Level",
		"Total " + oldYear, "Total " + newYear,
		"Count " + oldYear, "Count " + newYear, "±",
		"Rate " + oldYear, "Rate " + newYear, "± rate"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range rows {
		label := r.Label
		if r.Level == report.LevelClass {
			label = "  " + label
		}
		m := r.Metrics
		table.Append([]string{
			label,
			r.Level.String(),
			fmt.Sprintf("%d", r.TotalStudentsOld),
			fmt.Sprintf("%d", r.TotalStudentsNew),
			fmt.Sprintf("%d", m.OldCount),
			fmt.Sprintf("%d", m.NewCount),
			SignedCount(m.DiffCount),
			FormatPercent(m.OldRate),
			FormatPercent(m.NewRate),
			SignedPercent(m.DiffRate),
		})
	}
	table.Render()
}

// WriteFullTable prints all-rank comparison rows as a terminal table.
func WriteFullTable(w io.Writer, rows []report.FullComparisonRow) {
	table := tablewriter.NewWriter(w)
	header := []string{"Unit", "Total old", "Total new"}
	for _, rk := range report.Ranks {
		header = append(header, rk.Label()+" old", rk.Label()+" new", "± "+rk.Label())
	}
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for _, f := range rows {
		line := []string{f.Label, fmt.Sprintf("%d", f.TotalOld), fmt.Sprintf("%d", f.TotalNew)}
		for _, rk := range report.Ranks {
			d := f.Result(rk)
			line = append(line,
				fmt.Sprintf("%d (%s)", d.OldCount, FormatPercent(d.OldRate)),
				fmt.Sprintf("%d (%s)", d.NewCount, FormatPercent(d.NewRate)),
				SignedPercent(d.DiffRate()))
		}
		table.Append(line)
	}
	table.Render()
}
