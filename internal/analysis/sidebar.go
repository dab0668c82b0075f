package analysis

import "github.com/KaramelBytes/rankdiff-cli/internal/report"

// SidebarGrade is one grade with its class rows, as offered for selection.
type SidebarGrade struct {
	Grade   string       `json:"grade"`
	Classes []report.Row `json:"classes"`
}

// Sidebar groups the class rows of a dataset under their grades. Grades
// come from GRADE rows; classes whose grade has no GRADE row (an inferred
// grade, or none at all) get a group of their own so nothing is unreachable.
func Sidebar(rows []report.Row) []SidebarGrade {
	byGrade := map[string][]report.Row{}
	var labels []string
	seen := map[string]bool{}
	addGrade := func(g string) {
		if !seen[g] {
			seen[g] = true
			labels = append(labels, g)
		}
	}
	for _, r := range rows {
		switch r.Level {
		case report.LevelGrade:
			addGrade(r.Label)
		case report.LevelClass:
			g := r.GradeLabel()
			if g == "" {
				g = OtherGrade
			}
			addGrade(g)
			byGrade[g] = append(byGrade[g], r)
		}
	}
	SortLabels(labels)

	out := make([]SidebarGrade, 0, len(labels))
	for _, g := range labels {
		classes := byGrade[g]
		sortByLabel(classes, func(r report.Row) string { return r.Label })
		out = append(out, SidebarGrade{Grade: g, Classes: classes})
	}
	return out
}
