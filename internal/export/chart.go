package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

var (
	oldBarColor = drawing.ColorFromHex("94a3b8")
	newBarColor = drawing.ColorFromHex("2563eb")
)

// ChartBar is one plotted value.
type ChartBar struct {
	Label string
	Year  string
	Rate  float64
}

// ChartBars lists old and new rate bars for the school and grade rows of a
// single-rank comparison, paired per unit.
func ChartBars(c *analysis.Comparison) []ChartBar {
	var bars []ChartBar
	for _, r := range c.Rows {
		if r.Level == report.LevelClass {
			continue
		}
		name := ChartLabel(r.Label)
		bars = append(bars,
			ChartBar{Label: name, Year: c.OldYear, Rate: r.Metrics.OldRate},
			ChartBar{Label: name, Year: c.NewYear, Rate: r.Metrics.NewRate})
	}
	return bars
}

// ChartMax is the y-axis ceiling: 15 points of headroom above the highest
// bar, capped at 100.
func ChartMax(bars []ChartBar) float64 {
	hi := 0.0
	for _, b := range bars {
		hi = math.Max(hi, finite(b.Rate))
	}
	return math.Min(100, math.Ceil(hi+15))
}

// WriteChartPNG renders the school and grade rates of a single-rank
// comparison as a bar chart.
func WriteChartPNG(w io.Writer, c *analysis.Comparison) error {
	bars := ChartBars(c)
	if len(bars) == 0 {
		return errors.New("nothing to chart")
	}
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		fill := oldBarColor
		if i%2 == 1 {
			fill = newBarColor
		}
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %s", b.Label, shortYear(b.Year)),
			Value: finite(b.Rate),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	const barWidth, spacing = 40, 12
	width := max(640, len(values)*(barWidth+spacing)+120)
	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s - %s", c.Category.Label(), c.Rank.Label()),
		Width:      width,
		Height:     480,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: ChartMax(bars)},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f%%", v) },
		},
		Bars: values,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// shortYear turns "2023 - 2024" into "23-24"; other labels pass through.
func shortYear(y string) string {
	var a, b int
	if n, _ := fmt.Sscanf(y, "%d - %d", &a, &b); n == 2 {
		return fmt.Sprintf("%02d-%02d", a%100, b%100)
	}
	return y
}
