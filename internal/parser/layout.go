package parser

import (
	"sort"
	"strings"
)

// Role names a column the parser has to locate.
type Role string

const (
	RoleLabel   Role = "label"
	RoleTotal   Role = "total"
	RoleConduct Role = "conduct"
	RoleStudy   Role = "study"
)

// Roles lists every column role in display order.
var Roles = []Role{RoleLabel, RoleTotal, RoleConduct, RoleStudy}

// Layout is the resolved column layout of one sheet. Column and row indices
// are zero-based.
type Layout struct {
	LabelCol   int           `json:"labelCol"`
	TotalCol   int           `json:"totalCol"`
	ConductCol int           `json:"conductCol"`
	StudyCol   int           `json:"studyCol"`
	DataStart  int           `json:"dataStart"`
	Detected   map[Role]bool `json:"detected"`
}

// Col returns the column index bound to role.
func (l Layout) Col(role Role) int {
	switch role {
	case RoleLabel:
		return l.LabelCol
	case RoleTotal:
		return l.TotalCol
	case RoleConduct:
		return l.ConductCol
	case RoleStudy:
		return l.StudyCol
	}
	return -1
}

// Fallbacks lists the roles that were not found and use default positions.
func (l Layout) Fallbacks() []Role {
	var out []Role
	for _, r := range Roles {
		if !l.Detected[r] {
			out = append(out, r)
		}
	}
	return out
}

// Options controls anchor detection.
type Options struct {
	// ScanRows bounds how many leading rows are searched for anchors.
	ScanRows int
	// StudyMinCol splits rank-block anchors: below it is conduct, at or
	// above it is study.
	StudyMinCol int
	// Fallback supplies positions for anchors that are not found.
	Fallback Layout
}

// DefaultOptions returns the layout of the standard district template.
func DefaultOptions() Options {
	return Options{
		ScanRows:    15,
		StudyMinCol: 12,
		Fallback: Layout{
			LabelCol:   1,
			TotalCol:   3,
			ConductCol: 5,
			StudyCol:   15,
			DataStart:  6,
		},
	}
}

type anchorRule struct {
	role  Role
	match func(v string) bool
	col   func(col int, opt Options) bool
}

func anyCol(int, Options) bool { return true }

func equalsAny(tokens ...string) func(string) bool {
	return func(v string) bool {
		for _, t := range tokens {
			if v == t {
				return true
			}
		}
		return false
	}
}

var rankBlockStart = equalsAny("TỐT", "GIỎI", "XUẤT SẮC")

// anchorRules is evaluated once per cell in row-major order over the scan
// window; the first cell matching a rule binds its role.
var anchorRules = []anchorRule{
	{
		role: RoleLabel,
		match: func(v string) bool {
			return v == "LỚP" || v == "TÊN LỚP" || strings.Contains(v, "ĐƠN VỊ")
		},
		col: anyCol,
	},
	{
		role: RoleTotal,
		match: func(v string) bool {
			return strings.Contains(v, "SĨ SỐ") || strings.Contains(v, "TỔNG SỐ HS") || v == "TS" || v == "SỐ HS"
		},
		col: anyCol,
	},
	{
		role:  RoleConduct,
		match: rankBlockStart,
		col:   func(c int, opt Options) bool { return c < opt.StudyMinCol },
	},
	{
		role:  RoleStudy,
		match: rankBlockStart,
		col:   func(c int, opt Options) bool { return c >= opt.StudyMinCol },
	},
}

// detectLayout scans the first opt.ScanRows rows for header anchors and fills
// unresolved roles from opt.Fallback.
func detectLayout(g Grid, opt Options) Layout {
	found := map[Role]int{}
	dataStart := -1
	limit := min(opt.ScanRows, len(g))
	for i := 0; i < limit; i++ {
		for j, c := range g[i] {
			if c.Kind == Empty {
				continue
			}
			v := normalize(c.String())
			for _, rule := range anchorRules {
				if _, ok := found[rule.role]; ok {
					continue
				}
				if rule.match(v) && rule.col(j, opt) {
					found[rule.role] = j
					if rule.role == RoleLabel {
						dataStart = i + 1
					}
				}
			}
		}
	}

	l := opt.Fallback
	l.Detected = make(map[Role]bool, len(Roles))
	for role, col := range found {
		l.Detected[role] = true
		switch role {
		case RoleLabel:
			l.LabelCol = col
		case RoleTotal:
			l.TotalCol = col
		case RoleConduct:
			l.ConductCol = col
		case RoleStudy:
			l.StudyCol = col
		}
	}
	if dataStart >= 0 {
		l.DataStart = dataStart
	}
	return l
}

// fallbackNames renders Fallbacks for log output.
func fallbackNames(l Layout) string {
	fb := l.Fallbacks()
	names := make([]string, len(fb))
	for i, r := range fb {
		names[i] = string(r)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
