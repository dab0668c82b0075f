package report

import "sort"

// Row is one normalized row extracted from a sheet. Rows are created once per
// parse and treated as immutable afterwards.
type Row struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Level         Level     `json:"level"`
	Grade         *string   `json:"grade"`
	TotalStudents int       `json:"totalStudents"`
	Conduct       MetricSet `json:"conduct"`
	Study         MetricSet `json:"study"`
	RawCells      []string  `json:"rawCells,omitempty"`
}

// Metrics returns the metric set of the given axis.
func (r Row) Metrics(c Category) MetricSet {
	if c == CategoryStudy {
		return r.Study
	}
	return r.Conduct
}

// GradeLabel returns the enclosing grade or "" when the row has none.
func (r Row) GradeLabel() string {
	if r.Grade == nil {
		return ""
	}
	return *r.Grade
}

// ClassIDs returns the ids of every CLASS row in source order.
func ClassIDs(rows []Row) []string {
	var ids []string
	for _, r := range rows {
		if r.Level == LevelClass {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// ClassesOfGrade returns the CLASS rows whose grade equals grade.
func ClassesOfGrade(rows []Row, grade string) []Row {
	var out []Row
	for _, r := range rows {
		if r.Level == LevelClass && r.GradeLabel() == grade {
			out = append(out, r)
		}
	}
	return out
}

// Grades returns the distinct GRADE row labels, sorted.
func Grades(rows []Row) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range rows {
		if r.Level != LevelGrade {
			continue
		}
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	sort.Strings(out)
	return out
}

// GradeOf is a convenience constructor for the Grade field.
func GradeOf(s string) *string { return &s }
