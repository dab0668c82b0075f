// Package export renders comparisons as workbooks, PDF documents, charts and
// terminal tables.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatPercent renders a 0-100 rate with two decimals, e.g. "77.33%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", finite(v))
}

// SignedCount renders a count difference as "+ n" or "- n".
func SignedCount(d int) string {
	if d >= 0 {
		return fmt.Sprintf("+ %d", d)
	}
	return fmt.Sprintf("- %d", -d)
}

// SignedPercent renders a rate difference as "+ x.xx%" or "- x.xx%".
func SignedPercent(d float64) string {
	d = finite(d)
	if d >= 0 {
		return fmt.Sprintf("+ %.2f%%", d)
	}
	return fmt.Sprintf("- %.2f%%", -d)
}

// WorkbookTitle is the heading written above the summary blocks.
func WorkbookTitle(cat report.Category, oldYear, newYear string) string {
	return fmt.Sprintf("KẾT QUẢ %s - SO SÁNH NĂM HỌC %s VÀ %s", cat.Label(), oldYear, newYear)
}

// rankHeader is the column heading of a rank pair, e.g. "Tốt (%)".
func rankHeader(r report.Rank) string {
	switch r {
	case report.RankGood:
		return "Tốt (%)"
	case report.RankFair:
		return "Khá (%)"
	case report.RankPassed:
		return "Đạt (%)"
	}
	return "CĐ (%)"
}

// ChartLabel shortens a unit label for chart axes.
func ChartLabel(label string) string {
	l := strings.Replace(label, "TỔNG ", "", 1)
	return strings.Replace(l, "TOÀN TRƯỜNG", "Trường", 1)
}
