package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/rankdiff-cli/internal/parser"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// Side names one of the two compared school years.
type Side string

const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// ParseSide accepts old|new.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old", "prev", "previous":
		return SideOld, nil
	case "new", "cur", "current":
		return SideNew, nil
	}
	return "", fmt.Errorf("unknown side %q (use old|new)", s)
}

// Dataset is one parsed spreadsheet together with its class selection.
type Dataset struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Name     string        `json:"name"`
	Rows     []report.Row  `json:"rows"`
	Layout   parser.Layout `json:"layout"`
	Selected []string      `json:"selected"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// Selection returns a fresh set built from the persisted ids.
func (d *Dataset) Selection() report.Selection {
	if d == nil {
		return nil
	}
	return report.NewSelection(d.Selected...)
}

func (d *Dataset) setSelection(s report.Selection) {
	d.Selected = s.IDs()
}

// ClassCount returns how many class rows the dataset holds.
func (d *Dataset) ClassCount() int {
	return len(report.ClassIDs(d.Rows))
}
