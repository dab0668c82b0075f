package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

func class(id, label, grade string, total, good int) report.Row {
	r := report.Row{
		ID:            id,
		Label:         label,
		Level:         report.LevelClass,
		TotalStudents: total,
		Conduct: report.MetricSet{
			GoodCount:   good,
			FairCount:   total - good,
			PassedCount: 0,
		},
		Study: report.MetricSet{
			GoodCount: good / 2,
			FairCount: total - good/2,
		},
	}
	if grade != "" {
		r.Grade = report.GradeOf(grade)
	}
	return r
}

func gradeRow(id, label string) report.Row {
	return report.Row{ID: id, Label: label, Level: report.LevelGrade, Grade: report.GradeOf(label)}
}

func exampleYears() (old, new []report.Row) {
	old = []report.Row{
		{ID: "s", Label: "TOÀN TRƯỜNG", Level: report.LevelSchool, TotalStudents: 999},
		gradeRow("g6", "KHỐI 6"),
		class("o1", "6A1", "KHỐI 6", 40, 30),
		class("o2", "6A2", "KHỐI 6", 35, 28),
	}
	new = []report.Row{
		gradeRow("g6", "KHỐI 6"),
		class("n1", "6A1", "KHỐI 6", 42, 35),
		class("n2", "6A2", "KHỐI 6", 34, 30),
	}
	return old, new
}

func allSelected(rows []report.Row) report.Selection {
	return report.NewSelection(report.ClassIDs(rows)...)
}

func TestComputeComparisonRowsExample(t *testing.T) {
	old, new := exampleYears()
	rows := ComputeComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct, report.RankGood)
	require.Len(t, rows, 4)

	assert.Equal(t, SchoolLabel, rows[0].Label)
	assert.Equal(t, report.LevelSchool, rows[0].Level)
	assert.Nil(t, rows[0].Grade)

	g := rows[1]
	assert.Equal(t, "KHỐI 6", g.Label)
	assert.Equal(t, report.LevelGrade, g.Level)
	assert.Equal(t, 75, g.TotalStudentsOld)
	assert.Equal(t, 76, g.TotalStudentsNew)
	assert.Equal(t, 58, g.Metrics.OldCount)
	assert.Equal(t, 65, g.Metrics.NewCount)
	assert.InDelta(t, 77.33, g.Metrics.OldRate, 0.005)
	assert.InDelta(t, 85.53, g.Metrics.NewRate, 0.005)
	assert.InDelta(t, 8.20, g.Metrics.DiffRate, 0.01)

	assert.Equal(t, "6A1", rows[2].Label)
	assert.Equal(t, "KHỐI 6", *rows[2].Grade)
	assert.Equal(t, report.LevelClass, rows[2].Level)
	assert.Equal(t, 5, rows[2].Metrics.DiffCount)
}

func TestComputeComparisonRowsDiffExact(t *testing.T) {
	old, new := exampleYears()
	for _, cat := range []report.Category{report.CategoryConduct, report.CategoryStudy} {
		for _, rk := range report.Ranks {
			for _, r := range ComputeComparisonRows(old, new, allSelected(old), allSelected(new), cat, rk) {
				m := r.Metrics
				assert.Equal(t, m.NewCount-m.OldCount, m.DiffCount)
				assert.Equal(t, m.NewRate-m.OldRate, m.DiffRate)
				assert.False(t, math.IsNaN(m.OldRate) || math.IsNaN(m.NewRate))
			}
		}
	}
}

func TestComputeComparisonRowsNumericOrder(t *testing.T) {
	old := []report.Row{
		class("a", "10A1", "KHỐI 10", 30, 10),
		class("b", "6A10", "KHỐI 6", 30, 10),
		class("c", "6A2", "KHỐI 6", 30, 10),
		class("d", "9A1", "KHỐI 9", 30, 10),
	}
	new := []report.Row{
		class("e", "6A1", "KHỐI 6", 30, 10),
	}
	rows := ComputeComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct, report.RankGood)
	var labels []string
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{
		SchoolLabel,
		"KHỐI 6", "6A1", "6A2", "6A10",
		"KHỐI 9", "9A1",
		"KHỐI 10", "10A1",
	}, labels)
}

func TestAggregationConsistency(t *testing.T) {
	old := []report.Row{
		class("a", "6A1", "KHỐI 6", 40, 30),
		class("b", "6A2", "KHỐI 6", 35, 28),
		class("c", "7A1", "KHỐI 7", 38, 20),
		class("d", "7A2", "KHỐI 7", 37, 19),
		class("e", "8A1", "KHỐI 8", 41, 33),
	}
	new := []report.Row{
		class("a", "6A1", "KHỐI 6", 41, 31),
		class("c", "7A1", "KHỐI 7", 36, 30),
		class("x", "8A3", "KHỐI 8", 39, 25),
	}
	selOld := report.NewSelection("a", "c", "d", "e")
	selNew := report.NewSelection("a", "c", "x")

	rows := ComputeComparisonRows(old, new, selOld, selNew, report.CategoryConduct, report.RankFair)
	var school report.ComparisonRow
	var grade *report.ComparisonRow
	sumGrades := [4]int{}
	classSums := [4]int{}
	check := func() {
		if grade == nil {
			return
		}
		assert.Equal(t, grade.Metrics.OldCount, classSums[0], grade.Label)
		assert.Equal(t, grade.Metrics.NewCount, classSums[1], grade.Label)
		assert.Equal(t, grade.TotalStudentsOld, classSums[2], grade.Label)
		assert.Equal(t, grade.TotalStudentsNew, classSums[3], grade.Label)
	}
	for i := range rows {
		r := rows[i]
		switch r.Level {
		case report.LevelSchool:
			school = r
		case report.LevelGrade:
			check()
			grade = &rows[i]
			classSums = [4]int{}
			sumGrades[0] += r.Metrics.OldCount
			sumGrades[1] += r.Metrics.NewCount
			sumGrades[2] += r.TotalStudentsOld
			sumGrades[3] += r.TotalStudentsNew
		case report.LevelClass:
			classSums[0] += r.Metrics.OldCount
			classSums[1] += r.Metrics.NewCount
			classSums[2] += r.TotalStudentsOld
			classSums[3] += r.TotalStudentsNew
		}
	}
	check()
	assert.Equal(t, [4]int{school.Metrics.OldCount, school.Metrics.NewCount, school.TotalStudentsOld, school.TotalStudentsNew}, sumGrades)
	assert.Equal(t, 40+38+37+41, school.TotalStudentsOld)
}

func TestZeroTotalsGiveZeroRates(t *testing.T) {
	old := []report.Row{class("a", "6A1", "KHỐI 6", 0, 0)}
	new := []report.Row{class("b", "6A1", "KHỐI 6", 0, 0)}
	for _, rk := range report.Ranks {
		for _, r := range ComputeComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryStudy, rk) {
			assert.Zero(t, r.Metrics.OldRate)
			assert.Zero(t, r.Metrics.NewRate)
			assert.Zero(t, r.Metrics.DiffRate)
		}
	}
	for _, f := range ComputeFullComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryStudy) {
		for _, rk := range report.Ranks {
			assert.Zero(t, f.Result(rk).OldRate)
			assert.Zero(t, f.Result(rk).NewRate)
		}
	}
}

func TestSelectAllMatchesUnfilteredTotals(t *testing.T) {
	old, new := exampleYears()
	rows := ComputeComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct, report.RankGood)
	total, good := 0, 0
	for _, r := range old {
		if r.Level == report.LevelClass {
			total += r.TotalStudents
			good += r.Conduct.GoodCount
		}
	}
	assert.Equal(t, total, rows[0].TotalStudentsOld)
	assert.Equal(t, good, rows[0].Metrics.OldCount)
}

func TestEmptySelectionZeroesOneSide(t *testing.T) {
	old, new := exampleYears()
	withNew := ComputeFullComparisonRows(old, new, nil, allSelected(new), report.CategoryConduct)
	both := ComputeFullComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct)
	require.Len(t, withNew, 2)
	require.Len(t, both, 2)
	for i, f := range withNew {
		assert.Zero(t, f.TotalOld)
		assert.Equal(t, both[i].TotalNew, f.TotalNew)
		for _, rk := range report.Ranks {
			d := f.Result(rk)
			assert.Zero(t, d.OldCount)
			assert.Zero(t, d.OldRate)
			assert.Equal(t, both[i].Result(rk).NewCount, d.NewCount)
			assert.Equal(t, both[i].Result(rk).NewRate, d.NewRate)
		}
	}

	none := ComputeComparisonRows(old, new, report.Selection{}, report.Selection{}, report.CategoryConduct, report.RankGood)
	require.Len(t, none, 1)
	assert.Zero(t, none[0].TotalStudentsOld)
	assert.Zero(t, none[0].Metrics.NewRate)
}

func TestGradePresentInOneYearOnly(t *testing.T) {
	old := []report.Row{class("a", "6A1", "KHỐI 6", 30, 20)}
	new := []report.Row{class("b", "6A1", "KHỐI 6", 30, 25), class("c", "7A1", "KHỐI 7", 20, 10)}
	full := ComputeFullComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct)
	require.Len(t, full, 3)
	k7 := full[2]
	assert.Equal(t, "KHỐI 7", k7.Label)
	assert.Zero(t, k7.TotalOld)
	assert.Equal(t, 20, k7.TotalNew)
	assert.Equal(t, 10, k7.Result(report.RankGood).NewCount)
	assert.InDelta(t, 50.0, k7.Result(report.RankGood).NewRate, 1e-9)
	assert.Equal(t, 10, k7.Result(report.RankGood).DiffCount())
}

func TestMatchByLabelNotID(t *testing.T) {
	old := []report.Row{class("CLASS-6a1-x-4", " 6a1", "Khối 6", 30, 20)}
	new := []report.Row{class("CLASS-6A1-y-9", "6A1", "KHỐI  6", 31, 21)}
	rows := ComputeComparisonRows(old, new, allSelected(old), allSelected(new), report.CategoryConduct, report.RankGood)
	require.Len(t, rows, 3)
	assert.Equal(t, "KHỐI  6", rows[1].Label)
	assert.Equal(t, "6A1", rows[2].Label)
	assert.Equal(t, 20, rows[2].Metrics.OldCount)
	assert.Equal(t, 21, rows[2].Metrics.NewCount)
}

func TestUngradedClassesGroupUnderOther(t *testing.T) {
	old := []report.Row{class("a", "Lớp ghép", "", 10, 5)}
	rows := ComputeComparisonRows(old, nil, allSelected(old), nil, report.CategoryConduct, report.RankGood)
	require.Len(t, rows, 3)
	assert.Equal(t, OtherGrade, rows[1].Label)
	assert.Equal(t, OtherGrade, *rows[2].Grade)
}

func TestDuplicateClassLabelsAreSummed(t *testing.T) {
	old := []report.Row{
		class("a", "6A1", "KHỐI 6", 20, 10),
		class("b", "6A1", "KHỐI 6", 15, 5),
	}
	rows := ComputeComparisonRows(old, nil, allSelected(old), nil, report.CategoryConduct, report.RankGood)
	require.Len(t, rows, 3)
	assert.Equal(t, 35, rows[2].TotalStudentsOld)
	assert.Equal(t, 15, rows[2].Metrics.OldCount)
	assert.Equal(t, rows[1].Metrics.OldCount, rows[2].Metrics.OldCount)
}

func TestNonClassRowsIgnoredEvenIfSelected(t *testing.T) {
	old, _ := exampleYears()
	sel := report.NewSelection("s", "g6")
	rows := ComputeComparisonRows(old, nil, sel, nil, report.CategoryConduct, report.RankGood)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].TotalStudentsOld)
}
