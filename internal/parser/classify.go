package parser

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// scanState is the carry-forward accumulator threaded through the row fold.
type scanState struct {
	grade    string // most recent grade, "" before the first one
	inferred bool   // grade came from a class label, not a GRADE row
}

var (
	leadingDigits = regexp.MustCompile(`^(\d+)`)
	gradeClass    = regexp.MustCompile(`^[6-9]\p{Lu}`)
)

// classify decides the level of a row from its trimmed label. It reports
// false when the row is not emitted.
//
// Outside any GRADE row a class with leading digits infers "KHỐI n" for
// itself; the inferred grade is carried only to following rows without
// digits of their own.
func classify(st scanState, label string) (report.Level, scanState, bool) {
	upper := normalize(label)
	switch {
	case strings.Contains(upper, "TOÀN TRƯỜNG"):
		return report.LevelSchool, st, true
	case strings.Contains(upper, "KHỐI") || strings.HasPrefix(upper, "TỔNG CỘNG KHỐI"):
		return report.LevelGrade, scanState{grade: label}, true
	case leadingDigits.MatchString(label) || gradeClass.MatchString(upper):
		if st.grade == "" || st.inferred {
			if m := leadingDigits.FindStringSubmatch(label); m != nil {
				return report.LevelClass, scanState{grade: "KHỐI " + m[1], inferred: true}, true
			}
		}
		return report.LevelClass, st, true
	case st.grade != "" && !strings.Contains(upper, "TỔNG") && !strings.Contains(upper, "CỘNG"):
		return report.LevelClass, st, true
	}
	return 0, st, false
}

// rowGrade resolves the grade field from the state after classification.
func rowGrade(level report.Level, st scanState, label string) *string {
	switch level {
	case report.LevelGrade:
		return report.GradeOf(label)
	case report.LevelClass:
		if st.grade != "" {
			return report.GradeOf(st.grade)
		}
	}
	return nil
}

// extractRow builds the normalized record for source row idx.
func extractRow(g Grid, idx int, l Layout, level report.Level, st scanState, label string) report.Row {
	grade := rowGrade(level, st, label)
	idGrade := "root"
	switch {
	case grade != nil:
		idGrade = *grade
	case st.grade != "":
		idGrade = st.grade
	}

	total := parseNum(g.At(idx, l.TotalCol))
	if total == 0 {
		// hidden or merged columns sometimes shift the count one to the right
		next := g.At(idx, l.TotalCol+1)
		if looksNumeric(next) {
			if v := parseNum(next); v > 0 {
				total = v
			}
		}
	}

	raw := make([]string, len(g[idx]))
	for i, c := range g[idx] {
		raw[i] = c.String()
	}

	return report.Row{
		ID:            fmt.Sprintf("%s-%s-%s-%d", level, label, idGrade, idx),
		Label:         label,
		Level:         level,
		Grade:         grade,
		TotalStudents: toCount(total),
		Conduct:       metricsAt(g, idx, l.ConductCol),
		Study:         metricsAt(g, idx, l.StudyCol),
		RawCells:      raw,
	}
}

// metricsAt reads eight consecutive (count, rate) cells in rank order.
func metricsAt(g Grid, row, start int) report.MetricSet {
	v := func(off int) float64 { return parseNum(g.At(row, start+off)) }
	return report.MetricSet{
		GoodCount:   toCount(v(0)),
		GoodRate:    v(1),
		FairCount:   toCount(v(2)),
		FairRate:    v(3),
		PassedCount: toCount(v(4)),
		PassedRate:  v(5),
		FailedCount: toCount(v(6)),
		FailedRate:  v(7),
	}
}

func toCount(v float64) int {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
