package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadable is returned (wrapped in a *ReadError) when input cannot be
// turned into a grid at all.
var ErrUnreadable = errors.New("cannot read file")

// ReadError reports which input failed and why.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Name, ErrUnreadable)
	}
	return fmt.Sprintf("%s: %v: %v", e.Name, ErrUnreadable, e.Err)
}

// Unwrap lets errors.Is match both ErrUnreadable and the cause.
func (e *ReadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnreadable}
	}
	return []error{ErrUnreadable, e.Err}
}

// GridReader turns a spreadsheet byte stream into a Grid.
type GridReader interface {
	CanRead(filename string) bool
	Read(r io.Reader) (Grid, error)
}

var registry []GridReader

// Register adds a reader implementation to the registry.
func Register(gr GridReader) {
	registry = append(registry, gr)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// readerFor picks a registered reader by file name, defaulting to xlsx.
func readerFor(name string) GridReader {
	for _, gr := range registry {
		if gr.CanRead(name) {
			return gr
		}
	}
	return xlsxReader{}
}

// ReadGrid reads the first sheet of r using the reader matching name.
func ReadGrid(r io.Reader, name string) (Grid, error) {
	g, err := readerFor(name).Read(r)
	if err != nil {
		return nil, &ReadError{Name: filepath.Base(name), Err: err}
	}
	return g, nil
}

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xlsm" || ext == ".xltx"
}

func (xlsxReader) Read(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	grid := make(Grid, len(rows))
	for ri, row := range rows {
		cells := make([]Cell, len(row))
		for ci, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(ci+1, ri+1)
			typ, _ := f.GetCellType(sheet, name)
			cells[ci] = xlsxCell(typ, v)
		}
		grid[ri] = cells
	}
	return grid, nil
}

func xlsxCell(typ excelize.CellType, v string) Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return TextCell(v)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return NumCell(f)
	}
	return TextCell(v)
}

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".csv" || ext == ".tsv"
}

func (csvReader) Read(r io.Reader) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if bytes.Count(firstLine(data), []byte("\t")) > bytes.Count(firstLine(data), []byte(",")) {
		cr.Comma = '\t'
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	grid := make(Grid, len(records))
	for i, rec := range records {
		cells := make([]Cell, len(rec))
		for j, v := range rec {
			cells[j] = TextCell(v)
		}
		grid[i] = cells
	}
	return grid, nil
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}
