package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/export"
)

var (
	cmpProject  string
	cmpCategory string
	cmpRank     string
	cmpFull     bool
	cmpFormat   string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the selected classes of the two years",
	Long: `Print the year-over-year comparison. By default one rank of one category is compared at
school, grade and class level; --full compares all four ranks at school and grade level.
--category and --rank also become the project's active choice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmpProject)
		if err != nil {
			return err
		}
		changed, err := applyChoice(p, cmpCategory, cmpRank)
		if err != nil {
			return err
		}
		if changed {
			if err := p.Save(); err != nil {
				return err
			}
		}

		var c *analysis.Comparison
		if cmpFull {
			c, err = p.CompareFull()
		} else {
			c, err = p.Compare()
		}
		if err != nil {
			return err
		}
		return printComparison(cmd.OutOrStdout(), c, cmpFormat)
	},
}

func printComparison(w io.Writer, c *analysis.Comparison, format string) error {
	switch format {
	case "", "table":
		fmt.Fprintln(w, c.Title)
		if len(c.Full) > 0 {
			export.WriteFullTable(w, c.Full)
			return nil
		}
		export.WriteTable(w, c.Rows, c.OldYear, c.NewYear)
		if len(c.Rows) > 0 {
			s := c.Rows[0].Metrics
			fmt.Fprintf(w, "%s %s: %s → %s (%s)\n", analysis.SchoolLabel, c.Rank.Label(),
				export.FormatPercent(s.OldRate), export.FormatPercent(s.NewRate),
				trend(export.SignedPercent(s.DiffRate), s.DiffRate))
		}
		return nil
	case "markdown", "md":
		_, err := io.WriteString(w, c.Markdown())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return fmt.Errorf("unsupported --format: %s (use table|markdown|json)", format)
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&cmpProject, "project", "p", "", "project name")
	compareCmd.Flags().StringVar(&cmpCategory, "category", "", "conduct|study (default: project setting)")
	compareCmd.Flags().StringVar(&cmpRank, "rank", "", "good|fair|passed|failed (default: project setting)")
	compareCmd.Flags().BoolVar(&cmpFull, "full", false, "compare all four ranks at school and grade level")
	compareCmd.Flags().StringVar(&cmpFormat, "format", "table", "output format: table|markdown|json")
}
