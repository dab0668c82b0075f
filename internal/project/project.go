// Package project persists a two-year comparison workspace: the loaded
// datasets, their class selections and the presentation labels.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/parser"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
	"github.com/KaramelBytes/rankdiff-cli/internal/utils"
)

const (
	DefaultOldYear = "2023 - 2024"
	DefaultNewYear = "2024 - 2025"
)

var (
	// ErrNoDataset is returned when an operation needs a side that has not
	// been loaded.
	ErrNoDataset = errors.New("dataset not loaded")
	// ErrUnknownClass is returned when a class reference matches nothing.
	ErrUnknownClass = errors.New("unknown class")
	// ErrUnknownGrade is returned when a grade reference matches nothing.
	ErrUnknownGrade = errors.New("unknown grade")
)

// Project represents a comparison project persisted on disk.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OldYear     string          `json:"old_year"`
	NewYear     string          `json:"new_year"`
	Title       string          `json:"title,omitempty"`
	Category    report.Category `json:"category"`
	Rank        report.Rank     `json:"rank"`
	Old         *Dataset        `json:"old,omitempty"`
	New         *Dataset        `json:"new,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		OldYear:     DefaultOldYear,
		NewYear:     DefaultNewYear,
		Category:    report.CategoryConduct,
		Rank:        report.RankGood,
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, utils.ProjectFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	p.rootDir = dir
	return &p, nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, utils.ProjectFileName), data)
}

// Dataset returns the dataset loaded for side, or nil.
func (p *Project) Dataset(side Side) *Dataset {
	if side == SideNew {
		return p.New
	}
	return p.Old
}

func (p *Project) dataset(side Side) (*Dataset, error) {
	d := p.Dataset(side)
	if d == nil {
		return nil, fmt.Errorf("%s year: %w", side, ErrNoDataset)
	}
	return d, nil
}

// LoadDataset parses the spreadsheet at path into side, replacing whatever
// was there. Every class of a freshly loaded dataset starts selected.
func (p *Project) LoadDataset(side Side, path string, opt parser.Options) (*Dataset, error) {
	res, err := parser.ParseFile(path, opt)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d := &Dataset{
		ID:       uuid.NewString(),
		Path:     abs,
		Name:     res.Name,
		Rows:     res.Rows,
		Layout:   res.Layout,
		Selected: report.NewSelection(report.ClassIDs(res.Rows)...).IDs(),
		LoadedAt: time.Now(),
	}
	if side == SideNew {
		p.New = d
	} else {
		p.Old = d
	}
	p.UpdatedAt = time.Now()
	slog.Debug("dataset loaded", "project", p.Name, "side", side, "rows", len(d.Rows), "classes", len(d.Selected))
	return d, nil
}

// ResolveClass finds a class row by id, or by label when exactly one class
// carries it (case-insensitive).
func (p *Project) ResolveClass(side Side, ref string) (report.Row, error) {
	d, err := p.dataset(side)
	if err != nil {
		return report.Row{}, err
	}
	var byLabel []report.Row
	want := strings.TrimSpace(ref)
	for _, r := range d.Rows {
		if r.Level != report.LevelClass {
			continue
		}
		if r.ID == ref {
			return r, nil
		}
		if strings.EqualFold(strings.TrimSpace(r.Label), want) {
			byLabel = append(byLabel, r)
		}
	}
	switch len(byLabel) {
	case 1:
		return byLabel[0], nil
	case 0:
		return report.Row{}, fmt.Errorf("%q: %w", ref, ErrUnknownClass)
	}
	return report.Row{}, fmt.Errorf("%q matches %d classes, use the row id: %w", ref, len(byLabel), ErrUnknownClass)
}

// ToggleClass flips one class and reports whether it is now selected.
func (p *Project) ToggleClass(side Side, ref string) (bool, error) {
	r, err := p.ResolveClass(side, ref)
	if err != nil {
		return false, err
	}
	d := p.Dataset(side)
	sel := d.Selection()
	on := sel.Toggle(r.ID)
	d.setSelection(sel)
	p.UpdatedAt = time.Now()
	return on, nil
}

// ToggleGrade deselects every class of grade when all of them are selected
// and selects all of them otherwise. It reports the resulting state.
func (p *Project) ToggleGrade(side Side, grade string) (bool, error) {
	d, err := p.dataset(side)
	if err != nil {
		return false, err
	}
	name, found := "", false
	for _, g := range analysis.Sidebar(d.Rows) {
		if strings.EqualFold(strings.TrimSpace(g.Grade), strings.TrimSpace(grade)) {
			name, found = g.Grade, true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("%q: %w", grade, ErrUnknownGrade)
	}
	if name == analysis.OtherGrade {
		name = ""
	}
	classes := report.ClassesOfGrade(d.Rows, name)

	sel := d.Selection()
	all := len(classes) > 0
	for _, c := range classes {
		if !sel.Has(c.ID) {
			all = false
			break
		}
	}
	for _, c := range classes {
		if all {
			sel.Remove(c.ID)
		} else {
			sel.Add(c.ID)
		}
	}
	d.setSelection(sel)
	p.UpdatedAt = time.Now()
	return !all, nil
}

// SelectAll selects every class of side.
func (p *Project) SelectAll(side Side) error {
	d, err := p.dataset(side)
	if err != nil {
		return err
	}
	d.Selected = report.NewSelection(report.ClassIDs(d.Rows)...).IDs()
	p.UpdatedAt = time.Now()
	return nil
}

// ClearSelection deselects every class of side.
func (p *Project) ClearSelection(side Side) error {
	d, err := p.dataset(side)
	if err != nil {
		return err
	}
	d.Selected = []string{}
	p.UpdatedAt = time.Now()
	return nil
}

// Reset drops both datasets and their selections.
func (p *Project) Reset() {
	p.Old, p.New = nil, nil
	p.UpdatedAt = time.Now()
}

// SetYears updates the year labels; empty values keep the current label.
func (p *Project) SetYears(oldYear, newYear string) {
	if s := strings.TrimSpace(oldYear); s != "" {
		p.OldYear = s
	}
	if s := strings.TrimSpace(newYear); s != "" {
		p.NewYear = s
	}
	p.UpdatedAt = time.Now()
}

// SetTitle sets a custom title; an empty title restores the generated one.
func (p *Project) SetTitle(title string) {
	p.Title = strings.TrimSpace(title)
	p.UpdatedAt = time.Now()
}

// SetCategory sets the active category.
func (p *Project) SetCategory(c report.Category) {
	p.Category = c
	p.UpdatedAt = time.Now()
}

// SetRank sets the active rank.
func (p *Project) SetRank(r report.Rank) {
	p.Rank = r
	p.UpdatedAt = time.Now()
}

// DisplayTitle is the custom title, or the generated one for the view.
func (p *Project) DisplayTitle(full bool) string {
	if p.Title != "" {
		return p.Title
	}
	return analysis.DefaultTitle(p.ActiveCategory(), p.ActiveRank(), p.OldYear, p.NewYear, full)
}

// ActiveCategory is the stored category, conduct when unset.
func (p *Project) ActiveCategory() report.Category {
	if p.Category == "" {
		return report.CategoryConduct
	}
	return p.Category
}

// ActiveRank is the stored rank, good when unset.
func (p *Project) ActiveRank() report.Rank {
	if p.Rank == "" {
		return report.RankGood
	}
	return p.Rank
}

func (p *Project) both() (*Dataset, *Dataset, error) {
	o, err := p.dataset(SideOld)
	if err != nil {
		return nil, nil, err
	}
	n, err := p.dataset(SideNew)
	if err != nil {
		return nil, nil, err
	}
	return o, n, nil
}

func (p *Project) comparison(full bool) *analysis.Comparison {
	return &analysis.Comparison{
		Title:    p.DisplayTitle(full),
		OldYear:  p.OldYear,
		NewYear:  p.NewYear,
		Category: p.ActiveCategory(),
		Rank:     p.ActiveRank(),
	}
}

// Compare runs the single-rank comparison with the stored category and rank.
func (p *Project) Compare() (*analysis.Comparison, error) {
	o, n, err := p.both()
	if err != nil {
		return nil, err
	}
	c := p.comparison(false)
	c.Rows = analysis.ComputeComparisonRows(o.Rows, n.Rows, o.Selection(), n.Selection(), c.Category, c.Rank)
	return c, nil
}

// CompareFull runs the all-rank school and grade comparison.
func (p *Project) CompareFull() (*analysis.Comparison, error) {
	o, n, err := p.both()
	if err != nil {
		return nil, err
	}
	c := p.comparison(true)
	c.Full = analysis.ComputeFullComparisonRows(o.Rows, n.Rows, o.Selection(), n.Selection(), c.Category)
	return c, nil
}
