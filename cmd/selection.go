package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/project"
)

var (
	selProject string
	selSide    string
	selClasses []string
	selGrades  []string
	selAll     bool
	selNone    bool
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Toggle which classes of a year are included in the comparison",
	Long: `Toggle classes (by label or row id) or whole grades of one side. Toggling a grade deselects
all its classes when every one is selected and selects all of them otherwise.
--all and --none are applied before any toggles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		side, err := project.ParseSide(selSide)
		if err != nil {
			return err
		}
		if selAll && selNone {
			return fmt.Errorf("--all and --none are mutually exclusive")
		}
		if !selAll && !selNone && len(selClasses) == 0 && len(selGrades) == 0 {
			return fmt.Errorf("nothing to do: pass --class, --grade, --all or --none")
		}
		p, err := loadProject(selProject)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case selAll:
			if err := p.SelectAll(side); err != nil {
				return err
			}
		case selNone:
			if err := p.ClearSelection(side); err != nil {
				return err
			}
		}
		for _, g := range selGrades {
			on, err := p.ToggleGrade(side, g)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", mark(on), g)
		}
		for _, c := range selClasses {
			on, err := p.ToggleClass(side, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", mark(on), c)
		}
		if err := p.Save(); err != nil {
			return err
		}
		d := p.Dataset(side)
		success(out, "%s year: %d of %d classes selected", side, len(d.Selected), d.ClassCount())
		return nil
	},
}

func mark(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringVarP(&selProject, "project", "p", "", "project name")
	selectCmd.Flags().StringVar(&selSide, "side", "", "old|new")
	selectCmd.Flags().StringSliceVar(&selClasses, "class", nil, "class label or row id to toggle (repeatable)")
	selectCmd.Flags().StringSliceVar(&selGrades, "grade", nil, "grade label to toggle (repeatable)")
	selectCmd.Flags().BoolVar(&selAll, "all", false, "select every class")
	selectCmd.Flags().BoolVar(&selNone, "none", false, "deselect every class")
}
