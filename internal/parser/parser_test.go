package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

func TestDetectLayoutFindsAnchors(t *testing.T) {
	l := detectLayout(templateGrid(), DefaultOptions())
	assert.Equal(t, 1, l.LabelCol)
	assert.Equal(t, 3, l.TotalCol)
	assert.Equal(t, 4, l.ConductCol)
	assert.Equal(t, 12, l.StudyCol)
	assert.Equal(t, 2, l.DataStart)
	assert.Empty(t, l.Fallbacks())
}

func TestDetectLayoutFallback(t *testing.T) {
	g := Grid{cells("nothing", "to", "see")}
	l := detectLayout(g, DefaultOptions())
	assert.Equal(t, 1, l.LabelCol)
	assert.Equal(t, 3, l.TotalCol)
	assert.Equal(t, 5, l.ConductCol)
	assert.Equal(t, 15, l.StudyCol)
	assert.Equal(t, 6, l.DataStart)
	assert.Equal(t, []Role{RoleLabel, RoleTotal, RoleConduct, RoleStudy}, l.Fallbacks())
}

func TestDetectLayoutFirstMatchWinsAndScanWindow(t *testing.T) {
	g := Grid{
		cells(nil, nil, "Đơn vị", "TS"),
		cells(nil, "Lớp", nil, "Sĩ số"),
	}
	l := detectLayout(g, DefaultOptions())
	assert.Equal(t, 2, l.LabelCol)
	assert.Equal(t, 1, l.DataStart)
	assert.Equal(t, 3, l.TotalCol)

	// anchors below the window are ignored
	opt := DefaultOptions()
	opt.ScanRows = 1
	g = Grid{cells("x"), cells(nil, "Lớp")}
	l = detectLayout(g, opt)
	assert.False(t, l.Detected[RoleLabel])
	assert.Equal(t, 1, l.LabelCol)
}

func TestDetectLayoutRankBlocksSplitAtColumn(t *testing.T) {
	row := make([]any, 20)
	row[6] = "Giỏi"
	row[9] = "Tốt"
	row[14] = "XUẤT SẮC"
	l := detectLayout(Grid{cells(row...)}, DefaultOptions())
	assert.Equal(t, 6, l.ConductCol)
	assert.Equal(t, 14, l.StudyCol)
	assert.True(t, l.Detected[RoleConduct])
	assert.True(t, l.Detected[RoleStudy])
}

func TestParseGridClassifiesRows(t *testing.T) {
	rows, _ := ParseGrid(templateGrid(), DefaultOptions())
	require.Len(t, rows, 7)

	type want struct {
		label string
		level report.Level
		grade string
	}
	expect := []want{
		{"TOÀN TRƯỜNG", report.LevelSchool, ""},
		{"KHỐI 6", report.LevelGrade, "KHỐI 6"},
		{"6A1", report.LevelClass, "KHỐI 6"},
		{"6A2", report.LevelClass, "KHỐI 6"},
		{"KHỐI 7", report.LevelGrade, "KHỐI 7"},
		{"7A1", report.LevelClass, "KHỐI 7"},
		{"Chuyên Anh", report.LevelClass, "KHỐI 7"},
	}
	for i, w := range expect {
		assert.Equal(t, w.label, rows[i].Label, "row %d", i)
		assert.Equal(t, w.level, rows[i].Level, "row %d", i)
		assert.Equal(t, w.grade, rows[i].GradeLabel(), "row %d", i)
		if rows[i].Level == report.LevelClass {
			assert.NotNil(t, rows[i].Grade)
		}
	}
	assert.Nil(t, rows[0].Grade)
}

func TestParseGridExtractsMetrics(t *testing.T) {
	rows, _ := ParseGrid(templateGrid(), DefaultOptions())
	c := rows[2]
	assert.Equal(t, 40, c.TotalStudents)
	assert.Equal(t, 30, c.Conduct.GoodCount)
	assert.InDelta(t, 75.0, c.Conduct.GoodRate, 1e-9)
	assert.Equal(t, 1, c.Conduct.FailedCount)
	assert.Equal(t, 20, c.Study.GoodCount)
	assert.Equal(t, 15, c.Study.FairCount)
	assert.Equal(t, "6A1", c.RawCells[1])
	assert.Equal(t, "40", c.RawCells[3])
}

func TestParseGridInfersGradeFromClassLabels(t *testing.T) {
	g := Grid{
		templateHeader(),
		dataRow("8A1", 30, metrics(20, 5, 5, 0, 30), metrics(10, 10, 10, 0, 30)),
		dataRow("Lớp ghép", 5, metrics(1, 1, 1, 2, 5), metrics(1, 1, 1, 2, 5)),
		dataRow("9A", 31, metrics(20, 5, 5, 1, 31), metrics(10, 10, 10, 1, 31)),
		dataRow("Tổng", 66, metrics(0, 0, 0, 0, 66), metrics(0, 0, 0, 0, 66)),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 3)
	assert.Equal(t, "KHỐI 8", rows[0].GradeLabel())
	// a label without digits inherits the grade inferred before it
	assert.Equal(t, "Lớp ghép", rows[1].Label)
	assert.Equal(t, report.LevelClass, rows[1].Level)
	assert.Equal(t, "KHỐI 8", rows[1].GradeLabel())
	// a later class infers its own grade instead of inheriting
	assert.Equal(t, "KHỐI 9", rows[2].GradeLabel())
	assert.Equal(t, "CLASS-8A1-KHỐI 8-1", rows[0].ID)
}

func TestParseGridGradeRowOverridesInference(t *testing.T) {
	g := Grid{
		templateHeader(),
		dataRow("KHỐI 6", 10, metrics(5, 5, 0, 0, 10), metrics(5, 5, 0, 0, 10)),
		dataRow("7A1", 10, metrics(5, 5, 0, 0, 10), metrics(5, 5, 0, 0, 10)),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 2)
	assert.Equal(t, "KHỐI 6", rows[1].GradeLabel())
}

func TestParseGridSkipsZeroLabel(t *testing.T) {
	g := Grid{
		templateHeader(),
		cells(nil, 0, nil, 12),
		dataRow("6A1", 30, metrics(20, 5, 5, 0, 30), metrics(10, 10, 10, 0, 30)),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 1)
	assert.Equal(t, "6A1", rows[0].Label)
}

func TestParseGridUniqueIDsForDuplicateLabels(t *testing.T) {
	g := Grid{
		templateHeader(),
		dataRow("KHỐI 6", 10, metrics(5, 5, 0, 0, 10), metrics(5, 5, 0, 0, 10)),
		dataRow("6A1", 5, metrics(3, 2, 0, 0, 5), metrics(3, 2, 0, 0, 5)),
		dataRow("6A1", 5, metrics(2, 3, 0, 0, 5), metrics(2, 3, 0, 0, 5)),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 3)
	assert.NotEqual(t, rows[1].ID, rows[2].ID)
	assert.Equal(t, "GRADE-KHỐI 6-KHỐI 6-1", rows[0].ID)
	assert.Equal(t, "CLASS-6A1-KHỐI 6-3", rows[2].ID)
}

func TestParseGridShiftedTotal(t *testing.T) {
	g := Grid{
		templateHeader(),
		cells(nil, "6A1", nil, nil, 38),
		cells(nil, "6A2", nil, "0", "x"),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 2)
	// E is the conduct good count here, which is what the shift picks up
	assert.Equal(t, 38, rows[0].TotalStudents)
	assert.Equal(t, 0, rows[1].TotalStudents)
}

func TestParseGridSkipsShortAndBlankRows(t *testing.T) {
	g := Grid{
		templateHeader(),
		cells("only"),
		cells(nil, "   "),
		{},
	}
	rows, l := ParseGrid(g, DefaultOptions())
	assert.Empty(t, rows)
	assert.Empty(t, l.Fallbacks())
}

func TestParseGridDecomposedText(t *testing.T) {
	g := Grid{
		templateHeader(),
		dataRow(norm.NFD.String("Toàn trường"), 10, metrics(5, 5, 0, 0, 10), metrics(5, 5, 0, 0, 10)),
	}
	rows, _ := ParseGrid(g, DefaultOptions())
	require.Len(t, rows, 1)
	assert.Equal(t, report.LevelSchool, rows[0].Level)
}

func TestParseNum(t *testing.T) {
	cases := []struct {
		in   Cell
		want float64
	}{
		{NumCell(77.33), 77.33},
		{Cell{}, 0},
		{TextCell("12,5"), 12.5},
		{TextCell("85.53%"), 85.53},
		{TextCell(" 40 hs"), 40},
		{TextCell("1.234.5"), 1.234},
		{TextCell("abc"), 0},
		{TextCell("."), 0},
		{TextCell("-3"), 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseNum(tc.in), "%q", tc.in.String())
	}
}

func TestParseCSV(t *testing.T) {
	src := strings.Join([]string{
		"STT,Lớp,,Sĩ số,Tốt,TL,Khá,TL,Đạt,TL,CĐ,TL,Tốt,TL,Khá,TL,Đạt,TL,CĐ,TL",
		`1,KHỐI 6,,40,30,"75,0",10,25,0,0,0,0,20,50,20,50,0,0,0,0`,
		`2,6A1,,40,30,"75,0",10,25,0,0,0,0,20,50,20,50,0,0,0,0`,
	}, "\n")
	res, err := Parse(strings.NewReader(src), "k6.csv", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "k6.csv", res.Name)
	assert.InDelta(t, 75.0, res.Rows[1].Conduct.GoodRate, 1e-9)
	assert.Equal(t, 20, res.Rows[1].Study.FairCount)
}

func TestParseFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	put := func(row int, vals ...any) {
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &vals))
	}
	put(1, "BÁO CÁO")
	put(2, "STT", "Tên lớp", "Sĩ số", "Tốt", "TL", "Khá", "TL", "Đạt", "TL", "CĐ", "TL")
	put(3, 1, "KHỐI 6", 75, 58, 77.33, 12, 16, 4, 5.33, 1, 1.33)
	put(4, 2, "6A1", 40, 30, 75, 7, 17.5, 2, 5, 1, 2.5)
	put(5, 3, "6A2", "35", 28, "80,00", 5, 14.29, 2, 5.71, 0, 0)
	// a second sheet is never consulted
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "B1", "Lớp"))

	path := filepath.Join(t.TempDir(), "old.xlsx")
	require.NoError(t, f.SaveAs(path))

	opt := DefaultOptions()
	res, err := ParseFile(path, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Layout.LabelCol)
	assert.Equal(t, 2, res.Layout.TotalCol)
	assert.Equal(t, 3, res.Layout.ConductCol)
	assert.Equal(t, []Role{RoleStudy}, res.Layout.Fallbacks())
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 35, res.Rows[2].TotalStudents)
	assert.InDelta(t, 80.0, res.Rows[2].Conduct.GoodRate, 1e-9)
	assert.InDelta(t, 77.33, res.Rows[0].Conduct.GoodRate, 1e-9)
}

func TestParseUnreadable(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("definitely not a zip")), "broken.xlsx", DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "broken.xlsx", re.Name)
	assert.Contains(t, err.Error(), "cannot read file")

	// unknown extensions are treated as workbooks
	_, err = Parse(bytes.NewReader([]byte("junk")), "report.bin", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
