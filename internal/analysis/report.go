package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// Comparison bundles both comparison views with the labels renderers need.
type Comparison struct {
	Title    string                     `json:"title"`
	OldYear  string                     `json:"oldYear"`
	NewYear  string                     `json:"newYear"`
	Category report.Category            `json:"category"`
	Rank     report.Rank                `json:"rank"`
	Rows     []report.ComparisonRow     `json:"rows,omitempty"`
	Full     []report.FullComparisonRow `json:"full,omitempty"`
}

// DefaultTitle builds the heading used when no custom title is set. The
// full view covers every rank so it omits the rank clause.
func DefaultTitle(cat report.Category, rank report.Rank, oldYear, newYear string, full bool) string {
	head := "SO SÁNH KẾT QUẢ " + cat.Label()
	if !full {
		head += " XẾP LOẠI " + rank.Label()
	}
	return fmt.Sprintf("%s\nNĂM HỌC %s VÀ %s", head, oldYear, newYear)
}

// Markdown renders the comparison with bracketed sections and pipe tables.
// Values are rounded to two decimals here and nowhere earlier.
func (c *Comparison) Markdown() string {
	var b strings.Builder
	b.WriteString("[COMPARISON]\n")
	for _, line := range strings.Split(c.Title, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(fmt.Sprintf("Title: %s\n", line))
		}
	}
	b.WriteString(fmt.Sprintf("Years: %s → %s\n", c.OldYear, c.NewYear))
	b.WriteString(fmt.Sprintf("Category: %s\n", c.Category.Label()))
	if len(c.Rows) > 0 {
		b.WriteString(fmt.Sprintf("Rank: %s\n", c.Rank.Label()))
	}
	b.WriteString("\n")

	if len(c.Rows) > 0 {
		b.WriteString("[DETAIL]\n")
		b.WriteString("| Unit | Level | Total old | Total new | Count old | Count new | Δ count | Rate old | Rate new | Δ rate |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|---:|\n")
		for _, r := range c.Rows {
			m := r.Metrics
			b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %+d | %.2f%% | %.2f%% | %+.2f |\n",
				indentLabel(r), r.Level, r.TotalStudentsOld, r.TotalStudentsNew,
				m.OldCount, m.NewCount, m.DiffCount, m.OldRate, m.NewRate, m.DiffRate))
		}
		b.WriteString("\n")
	}

	if len(c.Full) > 0 {
		b.WriteString("[SUMMARY]\n")
		b.WriteString("| Unit | Total old | Total new |")
		for _, rk := range report.Ranks {
			b.WriteString(fmt.Sprintf(" %s old | %s new | Δ %s |", rk.Label(), rk.Label(), rk.Label()))
		}
		b.WriteString("\n|---|---:|---:|")
		b.WriteString(strings.Repeat("---:|---:|---:|", len(report.Ranks)))
		b.WriteString("\n")
		for _, f := range c.Full {
			b.WriteString(fmt.Sprintf("| %s | %d | %d |", safeCell(f.Label), f.TotalOld, f.TotalNew))
			for _, rk := range report.Ranks {
				d := f.Result(rk)
				b.WriteString(fmt.Sprintf(" %d (%.2f%%) | %d (%.2f%%) | %+.2f |",
					d.OldCount, d.OldRate, d.NewCount, d.NewRate, d.DiffRate()))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func indentLabel(r report.ComparisonRow) string {
	l := safeCell(r.Label)
	switch r.Level {
	case report.LevelSchool:
		return "**" + l + "**"
	case report.LevelClass:
		return "  " + l
	}
	return l
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
