// Package analysis rolls selected class rows of two school years up to grade
// and school level and computes year-over-year differences.
package analysis

import "github.com/KaramelBytes/rankdiff-cli/internal/report"

// tallyOfGrade and tallyOfUnit treat an absent side as all zero.
func tallyOfGrade(g *gradeGroup) tally {
	if g == nil {
		return tally{}
	}
	return g.tally
}

func tallyOfUnit(u *unit) tally {
	if u == nil {
		return tally{}
	}
	return u.tally
}

func comparisonRow(label string, grade *string, level report.Level, o, n tally, rank report.Rank) report.ComparisonRow {
	oc, nc := o.count(rank), n.count(rank)
	or, nr := rate(oc, o.Total), rate(nc, n.Total)
	return report.ComparisonRow{
		Label:            label,
		Grade:            grade,
		Level:            level,
		TotalStudentsOld: o.Total,
		TotalStudentsNew: n.Total,
		Metrics: report.ComparisonMetrics{
			OldCount:  oc,
			NewCount:  nc,
			DiffCount: nc - oc,
			OldRate:   or,
			NewRate:   nr,
			DiffRate:  nr - or,
		},
	}
}

// ComputeComparisonRows compares one (category, rank) metric across the
// selected classes of both years. Output is the school row, then each grade
// followed by its classes, grades and classes sorted by label.
func ComputeComparisonRows(oldRows, newRows []report.Row, selOld, selNew report.Selection, cat report.Category, rank report.Rank) []report.ComparisonRow {
	oa := aggregate(oldRows, selOld, cat)
	na := aggregate(newRows, selNew, cat)

	out := []report.ComparisonRow{
		comparisonRow(SchoolLabel, nil, report.LevelSchool, oa.school, na.school, rank),
	}
	for _, g := range joinByLabel(oa.grades, na.grades, gradeLabel) {
		grade := report.GradeOf(g.Label)
		out = append(out, comparisonRow(g.Label, grade, report.LevelGrade,
			tallyOfGrade(g.Old), tallyOfGrade(g.New), rank))

		var oc, nc []*unit
		if g.Old != nil {
			oc = g.Old.classes
		}
		if g.New != nil {
			nc = g.New.classes
		}
		for _, c := range joinByLabel(oc, nc, unitLabel) {
			out = append(out, comparisonRow(c.Label, grade, report.LevelClass,
				tallyOfUnit(c.Old), tallyOfUnit(c.New), rank))
		}
	}
	return out
}

func fullRow(label string, level report.Level, o, n tally) report.FullComparisonRow {
	res := make(map[report.Rank]report.RankDiff, len(report.Ranks))
	for _, rk := range report.Ranks {
		oc, nc := o.count(rk), n.count(rk)
		res[rk] = report.RankDiff{
			OldCount: oc,
			NewCount: nc,
			OldRate:  rate(oc, o.Total),
			NewRate:  rate(nc, n.Total),
		}
	}
	return report.FullComparisonRow{
		Label:    label,
		Level:    level,
		TotalOld: o.Total,
		TotalNew: n.Total,
		Results:  res,
	}
}

// ComputeFullComparisonRows compares all four ranks of cat at school and
// grade level. Output is the school row followed by grades sorted by label.
func ComputeFullComparisonRows(oldRows, newRows []report.Row, selOld, selNew report.Selection, cat report.Category) []report.FullComparisonRow {
	oa := aggregate(oldRows, selOld, cat)
	na := aggregate(newRows, selNew, cat)

	out := []report.FullComparisonRow{fullRow(SchoolLabel, report.LevelSchool, oa.school, na.school)}
	for _, g := range joinByLabel(oa.grades, na.grades, gradeLabel) {
		out = append(out, fullRow(g.Label, report.LevelGrade,
			tallyOfGrade(g.Old), tallyOfGrade(g.New)))
	}
	return out
}
