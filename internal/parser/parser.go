// Package parser extracts normalized ranking rows from loosely structured
// spreadsheet exports.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/rankdiff-cli/internal/report"
)

// Result is the outcome of parsing one sheet.
type Result struct {
	Name   string       `json:"name"`
	Rows   []report.Row `json:"rows"`
	Layout Layout       `json:"layout"`
}

// ParseGrid detects the layout of g and emits its rows in source order.
// It never fails; unmatched anchors fall back to opt.Fallback.
func ParseGrid(g Grid, opt Options) ([]report.Row, Layout) {
	l := detectLayout(g, opt)

	var rows []report.Row
	st := scanState{}
	for i := l.DataStart; i < len(g); i++ {
		if len(g[i]) <= l.LabelCol {
			continue
		}
		cell := g[i][l.LabelCol]
		// a numeric zero label counts as blank
		if cell.Kind == Number && cell.Num == 0 {
			continue
		}
		label := strings.TrimSpace(cell.String())
		if label == "" {
			continue
		}
		level, next, ok := classify(st, label)
		if !ok {
			continue
		}
		rows = append(rows, extractRow(g, i, l, level, next, label))
		st = next
	}
	return rows, l
}

// Parse reads a spreadsheet stream and parses its first sheet. name selects
// the grid reader by extension.
func Parse(r io.Reader, name string, opt Options) (*Result, error) {
	g, err := ReadGrid(r, name)
	if err != nil {
		return nil, err
	}
	rows, l := ParseGrid(g, opt)
	if fb := l.Fallbacks(); len(fb) > 0 {
		slog.Warn("layout anchors not found, using default columns",
			"file", name, "roles", fallbackNames(l))
	}
	slog.Debug("parsed sheet", "file", name, "rows", len(rows),
		"label_col", l.LabelCol, "total_col", l.TotalCol,
		"conduct_col", l.ConductCol, "study_col", l.StudyCol, "data_start", l.DataStart)
	return &Result{Name: filepath.Base(name), Rows: rows, Layout: l}, nil
}

// ParseFile reads and parses the spreadsheet at path.
func ParseFile(path string, opt Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(bytes.NewReader(data), path, opt)
}
