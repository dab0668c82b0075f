package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

var (
	headerBg   = &props.Color{Red: 221, Green: 235, Blue: 247}
	diffColor  = &props.Color{Red: 80, Green: 80, Blue: 80}
	upColor    = &props.Color{Red: 22, Green: 128, Blue: 61}
	downColor  = &props.Color{Red: 185, Green: 28, Blue: 28}
	cellText   = props.Text{Size: 8, Align: align.Center, Top: 1.5}
	headerText = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Top: 1.5}
)

// PDFOptions configures WritePDF.
type PDFOptions struct {
	// FontFile is a TrueType font covering Vietnamese. Empty picks the first
	// existing entry of FontCandidates.
	FontFile string
}

// FontCandidates are system fonts with full Vietnamese coverage.
var FontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

const pdfFontFamily = "rankdiff"

// resolveFont returns the font file to embed, or "" when none is available.
// A configured file that does not exist is an error.
func resolveFont(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("pdf font: %w", err)
		}
		return path, nil
	}
	for _, c := range FontCandidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", nil
}

// WritePDF renders the all-rank comparison as a landscape A4 document with
// one table block per unit.
func WritePDF(w io.Writer, c *analysis.Comparison, opt PDFOptions) error {
	font, err := resolveFont(opt.FontFile)
	if err != nil {
		return err
	}

	b := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		})
	if font != "" {
		fonts, err := repository.New().
			AddUTF8Font(pdfFontFamily, fontstyle.Normal, font).
			AddUTF8Font(pdfFontFamily, fontstyle.Bold, font).
			AddUTF8Font(pdfFontFamily, fontstyle.Italic, font).
			AddUTF8Font(pdfFontFamily, fontstyle.BoldItalic, font).
			Load()
		if err != nil {
			return fmt.Errorf("load pdf font %s: %w", font, err)
		}
		b = b.WithCustomFonts(fonts).WithDefaultFont(&props.Font{Family: pdfFontFamily})
		slog.Debug("pdf font", "file", font)
	} else {
		slog.Warn("no unicode font found for pdf, Vietnamese letters may not render; set pdf_font")
	}

	m := maroto.New(b.Build())
	addTitle(m, c)
	for _, fr := range c.Full {
		addBlock(m, fr, c.OldYear, c.NewYear)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func addTitle(m core.Maroto, c *analysis.Comparison) {
	for _, line := range strings.Split(c.Title, "\n") {
		m.AddRows(row.New(9).Add(
			col.New(12).Add(text.New(line, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		))
	}
	m.AddRows(row.New(6))
}

func addBlock(m core.Maroto, fr report.FullComparisonRow, oldYear, newYear string) {
	hdr := &props.Cell{BackgroundColor: headerBg}

	cols := []core.Col{col.New(4).Add(text.New(fr.Label, headerText)).WithStyle(hdr)}
	for _, rk := range report.Ranks {
		cols = append(cols, col.New(2).Add(text.New(rankHeader(rk), headerText)).WithStyle(hdr))
	}
	m.AddRows(row.New(7).Add(cols...))

	sub := []core.Col{col.New(4).WithStyle(hdr)}
	for range report.Ranks {
		sub = append(sub,
			col.New(1).Add(text.New("SL", headerText)).WithStyle(hdr),
			col.New(1).Add(text.New("TL", headerText)).WithStyle(hdr))
	}
	m.AddRows(row.New(7).Add(sub...))

	yearRow := func(label string, count func(report.RankDiff) int, rate func(report.RankDiff) float64) core.Row {
		cs := []core.Col{col.New(4).Add(text.New(label, cellText))}
		for _, rk := range report.Ranks {
			d := fr.Result(rk)
			cs = append(cs,
				col.New(1).Add(text.New(fmt.Sprintf("%d", count(d)), cellText)),
				col.New(1).Add(text.New(FormatPercent(rate(d)), cellText)))
		}
		return row.New(6).Add(cs...)
	}
	m.AddRows(
		yearRow(newYear, func(d report.RankDiff) int { return d.NewCount }, func(d report.RankDiff) float64 { return d.NewRate }),
		yearRow(oldYear, func(d report.RankDiff) int { return d.OldCount }, func(d report.RankDiff) float64 { return d.OldRate }),
	)

	diffLabel := cellText
	diffLabel.Style = fontstyle.Italic
	diffLabel.Color = diffColor
	ds := []core.Col{col.New(4).Add(text.New("Tăng/giảm", diffLabel))}
	for _, rk := range report.Ranks {
		d := fr.Result(rk)
		ds = append(ds,
			col.New(1).Add(text.New(SignedCount(d.DiffCount()), trendText(float64(d.DiffCount())))),
			col.New(1).Add(text.New(SignedPercent(d.DiffRate()), trendText(d.DiffRate()))))
	}
	m.AddRows(row.New(6).Add(ds...), row.New(5))
}

func trendText(d float64) props.Text {
	t := cellText
	t.Style = fontstyle.Bold
	switch {
	case d > 0:
		t.Color = upColor
	case d < 0:
		t.Color = downColor
	}
	return t
}
