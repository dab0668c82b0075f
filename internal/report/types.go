// Package report defines the normalized rows extracted from ranking sheets and
// the comparison shapes handed to renderers.
package report

import (
	"fmt"
	"strings"
)

// Level is the hierarchy position of a row.
type Level int

const (
	LevelSchool Level = iota
	LevelGrade
	LevelClass
)

func (l Level) String() string {
	switch l {
	case LevelSchool:
		return "SCHOOL"
	case LevelGrade:
		return "GRADE"
	case LevelClass:
		return "CLASS"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case LevelSchool, LevelGrade, LevelClass:
		return []byte(l.String()), nil
	}
	return nil, fmt.Errorf("invalid level %d", int(l))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "SCHOOL":
		*l = LevelSchool
	case "GRADE":
		*l = LevelGrade
	case "CLASS":
		*l = LevelClass
	default:
		return fmt.Errorf("invalid level %q", string(b))
	}
	return nil
}

// Category is one of the two evaluated axes.
type Category string

const (
	CategoryConduct Category = "conduct"
	CategoryStudy   Category = "study"
)

// Label returns the heading used in Vietnamese reports.
func (c Category) Label() string {
	if c == CategoryStudy {
		return "HỌC TẬP"
	}
	return "RÈN LUYỆN"
}

// ParseCategory accepts the English names and the Vietnamese headings.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONDUCT", "RÈN LUYỆN", "REN LUYEN", "RL":
		return CategoryConduct, nil
	case "STUDY", "HỌC TẬP", "HOC TAP", "HT":
		return CategoryStudy, nil
	}
	return "", fmt.Errorf("unknown category %q (use conduct|study)", s)
}

// Rank is one of the four ordinal outcome buckets.
type Rank string

const (
	RankGood   Rank = "good"
	RankFair   Rank = "fair"
	RankPassed Rank = "passed"
	RankFailed Rank = "failed"
)

// Ranks lists the buckets in sheet column order.
var Ranks = [4]Rank{RankGood, RankFair, RankPassed, RankFailed}

// Index returns the zero-based position of r in Ranks, or -1.
func (r Rank) Index() int {
	for i, v := range Ranks {
		if v == r {
			return i
		}
	}
	return -1
}

// Label returns the short Vietnamese label.
func (r Rank) Label() string {
	switch r {
	case RankGood:
		return "TỐT"
	case RankFair:
		return "KHÁ"
	case RankPassed:
		return "ĐẠT"
	case RankFailed:
		return "CĐ"
	}
	return ""
}

// ParseRank accepts the English names and the Vietnamese labels.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GOOD", "TỐT", "TOT":
		return RankGood, nil
	case "FAIR", "KHÁ", "KHA":
		return RankFair, nil
	case "PASSED", "PASS", "ĐẠT", "DAT":
		return RankPassed, nil
	case "FAILED", "FAIL", "CĐ", "CD", "CHƯA ĐẠT":
		return RankFailed, nil
	}
	return "", fmt.Errorf("unknown rank %q (use good|fair|passed|failed)", s)
}
