package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/project"
	"github.com/KaramelBytes/rankdiff-cli/internal/utils"
)

var (
	listProjects bool
	listClasses  bool
	listProjName string
	listSide     string
	listIDs      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects or the classes of a loaded year",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProjects == listClasses { // either both true or both false
			return fmt.Errorf("specify exactly one of --projects or --classes")
		}
		out := cmd.OutOrStdout()
		if listProjects {
			return listAllProjects(out)
		}
		p, err := loadProject(listProjName)
		if err != nil {
			return err
		}
		sides := []project.Side{project.SideOld, project.SideNew}
		if listSide != "" {
			s, err := project.ParseSide(listSide)
			if err != nil {
				return err
			}
			sides = []project.Side{s}
		}
		for _, s := range sides {
			listSideClasses(out, p, s)
		}
		return nil
	},
}

func listSideClasses(w io.Writer, p *project.Project, side project.Side) {
	year := p.OldYear
	if side == project.SideNew {
		year = p.NewYear
	}
	d := p.Dataset(side)
	if d == nil {
		fmt.Fprintf(w, "%s (%s): (not loaded)\n", side, year)
		return
	}
	sel := d.Selection()
	fmt.Fprintf(w, "%s (%s): %s, %d of %d classes selected\n", side, year, d.Name, sel.Len(), d.ClassCount())
	for _, g := range analysis.Sidebar(d.Rows) {
		n := 0
		for _, c := range g.Classes {
			if sel.Has(c.ID) {
				n++
			}
		}
		fmt.Fprintf(w, "  %s (%d/%d)\n", g.Grade, n, len(g.Classes))
		for _, c := range g.Classes {
			if listIDs {
				fmt.Fprintf(w, "    %s %s  [%s]\n", mark(sel.Has(c.ID)), c.Label, c.ID)
			} else {
				fmt.Fprintf(w, "    %s %s\n", mark(sel.Has(c.ID)), c.Label)
			}
		}
	}
}

func listAllProjects(w io.Writer) error {
	root, err := defaultProjectsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		pj := filepath.Join(root, e.Name(), utils.ProjectFileName)
		if _, err := os.Stat(pj); err == nil {
			fmt.Fprintf(w, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(w, "(no projects)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listProjects, "projects", false, "list projects")
	listCmd.Flags().BoolVar(&listClasses, "classes", false, "list grades and classes of a project")
	listCmd.Flags().StringVarP(&listProjName, "project", "p", "", "project name for --classes")
	listCmd.Flags().StringVar(&listSide, "side", "", "old|new (default both)")
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "show row ids next to class labels")
}
