package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CellKind distinguishes the three value shapes a sheet cell can hold.
type CellKind int

const (
	Empty CellKind = iota
	Number
	Text
)

// Cell is one grid value.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// NumCell returns a numeric cell.
func NumCell(v float64) Cell { return Cell{Kind: Number, Num: v} }

// TextCell returns a text cell, or an empty cell when s is blank.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Text: s}
}

func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Text:
		return c.Text
	}
	return ""
}

// Grid is a sheet as rows of cells. Rows may be ragged.
type Grid [][]Cell

// At returns the cell at (row, col) or an empty cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Cell{}
	}
	return g[row][col]
}

// normalize composes, upper-cases and trims s. Sheets exported from
// different tools mix NFC and NFD Vietnamese, so composition comes first.
func normalize(s string) string {
	return strings.TrimSpace(cases.Upper(language.Vietnamese).String(norm.NFC.String(s)))
}

// parseNum converts a cell to a float. Numbers pass through; text has its
// first comma treated as the decimal separator and everything but digits and
// dots stripped. Anything unparsable is 0.
func parseNum(c Cell) float64 {
	switch c.Kind {
	case Number:
		return c.Num
	case Empty:
		return 0
	}
	s := strings.Replace(c.Text, ",", ".", 1)
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	// only the prefix up to a second dot is a number
	if i := strings.IndexByte(clean, '.'); i >= 0 {
		if j := strings.IndexByte(clean[i+1:], '.'); j >= 0 {
			clean = clean[:i+1+j]
		}
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// looksNumeric reports whether c starts with a number, ignoring leading space.
func looksNumeric(c Cell) bool {
	switch c.Kind {
	case Number:
		return true
	case Empty:
		return false
	}
	s := strings.TrimLeft(strings.TrimSpace(c.Text), "+-")
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.' && len(s) > 1 && s[1] >= '0' && s[1] <= '9')
}
