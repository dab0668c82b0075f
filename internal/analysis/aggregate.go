package analysis

import "github.com/KaramelBytes/rankdiff-cli/internal/report"

// OtherGrade groups selected class rows that carry no grade.
const OtherGrade = "OTHER"

// SchoolLabel is the label of the whole-school row.
const SchoolLabel = "TOÀN TRƯỜNG"

// tally sums students and the four rank counts of one axis.
type tally struct {
	Total  int
	Counts [4]int
}

func (t *tally) add(o tally) {
	t.Total += o.Total
	for i := range t.Counts {
		t.Counts[i] += o.Counts[i]
	}
}

func (t tally) count(r report.Rank) int {
	if i := r.Index(); i >= 0 {
		return t.Counts[i]
	}
	return 0
}

func rowTally(r report.Row, cat report.Category) tally {
	m := r.Metrics(cat)
	t := tally{Total: r.TotalStudents}
	for i, rk := range report.Ranks {
		t.Counts[i] = m.Count(rk)
	}
	return t
}

type unit struct {
	Label string
	tally
}

type gradeGroup struct {
	unit
	classes []*unit
	byKey   map[string]*unit
}

// datasetAgg is one side of a comparison rolled up from its selected classes.
type datasetAgg struct {
	school tally
	grades []*gradeGroup
	byKey  map[string]*gradeGroup
}

// aggregate filters rows to selected CLASS rows and sums them per grade and
// per class label. Classes repeating a label within a grade are merged.
func aggregate(rows []report.Row, sel report.Selection, cat report.Category) datasetAgg {
	agg := datasetAgg{byKey: map[string]*gradeGroup{}}
	for _, r := range rows {
		if r.Level != report.LevelClass || !sel.Has(r.ID) {
			continue
		}
		gl := r.GradeLabel()
		if gl == "" {
			gl = OtherGrade
		}
		gk := labelKey(gl)
		g, ok := agg.byKey[gk]
		if !ok {
			g = &gradeGroup{unit: unit{Label: gl}, byKey: map[string]*unit{}}
			agg.byKey[gk] = g
			agg.grades = append(agg.grades, g)
		}
		ck := labelKey(r.Label)
		c, ok := g.byKey[ck]
		if !ok {
			c = &unit{Label: r.Label}
			g.byKey[ck] = c
			g.classes = append(g.classes, c)
		}
		t := rowTally(r, cat)
		c.add(t)
		g.add(t)
	}
	for _, g := range agg.grades {
		agg.school.add(g.tally)
	}
	return agg
}

func gradeLabel(g *gradeGroup) string { return g.Label }
func unitLabel(u *unit) string        { return u.Label }

// rate is count as a percentage of total, 0 when total is 0.
func rate(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
