package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// SummarySheet is the name of the sheet written by WriteWorkbook.
const SummarySheet = "Bao_Cao_So_Sanh"

// WriteWorkbook writes the all-rank comparison as one block per unit: a
// two-row header, the new and old year rows, and a signed difference row.
func WriteWorkbook(w io.Writer, c *analysis.Comparison) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	sh := SummarySheet

	if err := f.SetColWidth(sh, "A", "A", 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sh, "B", "I", 10); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("create body style: %w", err)
	}
	diffStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return fmt.Errorf("create diff style: %w", err)
	}

	if err := f.SetCellValue(sh, "A1", WorkbookTitle(c.Category, c.OldYear, c.NewYear)); err != nil {
		return err
	}
	if err := f.MergeCell(sh, "A1", "I1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellStyle(sh, "A1", "I1", titleStyle); err != nil {
		return err
	}

	r := 3 // row 2 is a spacer
	for _, fr := range c.Full {
		if err := writeBlock(f, sh, r, fr, c.OldYear, c.NewYear); err != nil {
			return err
		}
		styles := []struct {
			from, to int
			style    int
		}{
			{r, r + 1, headerStyle},
			{r + 2, r + 3, bodyStyle},
			{r + 4, r + 4, diffStyle},
		}
		for _, s := range styles {
			if err := f.SetCellStyle(sh, cell(1, s.from), cell(9, s.to), s.style); err != nil {
				return err
			}
		}
		r += 6
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func writeBlock(f *excelize.File, sh string, r int, fr report.FullComparisonRow, oldYear, newYear string) error {
	header := []any{fr.Label}
	sub := []any{nil}
	newRow := []any{newYear}
	oldRow := []any{oldYear}
	diff := []any{"Tăng/giảm"}
	for _, rk := range report.Ranks {
		d := fr.Result(rk)
		header = append(header, rankHeader(rk), nil)
		sub = append(sub, "SL", "TL")
		newRow = append(newRow, d.NewCount, FormatPercent(d.NewRate))
		oldRow = append(oldRow, d.OldCount, FormatPercent(d.OldRate))
		diff = append(diff, SignedCount(d.DiffCount()), SignedPercent(d.DiffRate()))
	}
	for i, vals := range [][]any{header, sub, newRow, oldRow, diff} {
		if err := f.SetSheetRow(sh, cell(1, r+i), &vals); err != nil {
			return fmt.Errorf("write row %d: %w", r+i, err)
		}
	}

	if err := f.MergeCell(sh, cell(1, r), cell(1, r+1)); err != nil {
		return fmt.Errorf("merge label: %w", err)
	}
	for i := range report.Ranks {
		c := 2 + 2*i
		if err := f.MergeCell(sh, cell(c, r), cell(c+1, r)); err != nil {
			return fmt.Errorf("merge rank header: %w", err)
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
