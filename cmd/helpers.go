package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/KaramelBytes/rankdiff-cli/internal/parser"
	"github.com/KaramelBytes/rankdiff-cli/internal/project"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
	"github.com/KaramelBytes/rankdiff-cli/internal/utils"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	upColor   = color.New(color.FgGreen)
	downColor = color.New(color.FgRed)
)

func success(w io.Writer, format string, a ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func warning(w io.Writer, format string, a ...any) {
	warnColor.Fprintf(w, "⚠ Warning: "+format+"\n", a...)
}

// loadProject resolves and loads a project by name. Without a name it uses
// the project enclosing the working directory.
func loadProject(name string) (*project.Project, error) {
	if name == "" {
		dir, err := utils.FindProjectRoot("")
		if err != nil {
			return nil, fmt.Errorf("--project is required outside a project directory")
		}
		return project.LoadProject(dir)
	}
	dir, err := resolveProjectDirByName(name)
	if err != nil {
		return nil, err
	}
	return project.LoadProject(dir)
}

// parserOptions applies configured overrides to the parser defaults.
func parserOptions() parser.Options {
	opt := parser.DefaultOptions()
	if cfg != nil && cfg.ScanRows > 0 {
		opt.ScanRows = cfg.ScanRows
	}
	return opt
}

// reportFallbacks warns when a sheet's layout was not fully detected.
func reportFallbacks(w io.Writer, name string, l parser.Layout) {
	fb := l.Fallbacks()
	if len(fb) == 0 {
		return
	}
	names := make([]string, len(fb))
	for i, r := range fb {
		names[i] = string(r)
	}
	warning(w, "%s: header not found for %s; default columns used, check the numbers", name, strings.Join(names, ", "))
}

// applyChoice parses optional category and rank flags onto p. It reports
// whether anything changed.
func applyChoice(p *project.Project, category, rank string) (bool, error) {
	changed := false
	if category != "" {
		c, err := report.ParseCategory(category)
		if err != nil {
			return false, err
		}
		p.SetCategory(c)
		changed = true
	}
	if rank != "" {
		r, err := report.ParseRank(rank)
		if err != nil {
			return false, err
		}
		p.SetRank(r)
		changed = true
	}
	return changed, nil
}

// trend colours a signed difference for terminal output.
func trend(s string, d float64) string {
	switch {
	case d > 0:
		return upColor.Sprint(s)
	case d < 0:
		return downColor.Sprint(s)
	}
	return s
}
