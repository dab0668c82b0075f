package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/project"
)

var loadProjectName string

var loadCmd = &cobra.Command{
	Use:   "load <old|new> <file>",
	Short: "Load a ranking spreadsheet as the old or new school year",
	Long: `Parse the first sheet of an .xlsx (or .csv) ranking report and store it as one side of the
comparison. Every class of the loaded sheet starts selected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, err := project.ParseSide(args[0])
		if err != nil {
			return err
		}
		p, err := loadProject(loadProjectName)
		if err != nil {
			return err
		}
		d, err := p.LoadDataset(side, args[1], parserOptions())
		if err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		reportFallbacks(out, d.Name, d.Layout)
		success(out, "Loaded %s year: %s (%d rows, %d classes selected)", side, d.Name, len(d.Rows), len(d.Selected))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVarP(&loadProjectName, "project", "p", "", "project name")
}
