package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/parser"
	"github.com/KaramelBytes/rankdiff-cli/internal/report"
	"github.com/KaramelBytes/rankdiff-cli/internal/utils"
)

var (
	insRows bool
	insJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|glob>...",
	Short: "Show the detected layout and rows of ranking spreadsheets",
	Long: `Parse one or more spreadsheets without touching any project and report the detected
columns, any defaulted anchors and the number of school, grade and class rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		files, missing, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		for _, m := range missing {
			warning(out, "no files match %s", m)
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files")
		}

		opt := parserOptions()
		var results []*parser.Result
		for _, f := range files {
			res, err := parser.ParseFile(f, opt)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			results = append(results, res)
		}

		if insJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		for _, res := range results {
			printInspection(out, res)
		}
		return nil
	},
}

func printInspection(w io.Writer, res *parser.Result) {
	l := res.Layout
	fmt.Fprintf(w, "%s\n", res.Name)
	cols := make([]string, len(parser.Roles))
	for i, role := range parser.Roles {
		cols[i] = fmt.Sprintf("%s=%d", role, l.Col(role)+1)
	}
	fmt.Fprintf(w, "  columns: %s (first data row %d)\n", strings.Join(cols, " "), l.DataStart+1)
	reportFallbacks(w, res.Name, l)

	counts := map[report.Level]int{}
	for _, r := range res.Rows {
		counts[r.Level]++
	}
	fmt.Fprintf(w, "  rows: %d school, %d grade, %d class\n",
		counts[report.LevelSchool], counts[report.LevelGrade], counts[report.LevelClass])

	if !insRows || len(res.Rows) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Label", "Level", "Grade", "Total", "HK T/K/Đ/CĐ", "HL T/K/Đ/CĐ"})
	table.SetAutoWrapText(false)
	for _, r := range res.Rows {
		table.Append([]string{
			r.Label, r.Level.String(), r.GradeLabel(), fmt.Sprint(r.TotalStudents),
			countsCell(r.Conduct), countsCell(r.Study),
		})
	}
	table.Render()
}

func countsCell(m report.MetricSet) string {
	return fmt.Sprintf("%d/%d/%d/%d",
		m.Count(report.RankGood), m.Count(report.RankFair), m.Count(report.RankPassed), m.Count(report.RankFailed))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&insRows, "rows", false, "print every parsed row")
	inspectCmd.Flags().BoolVar(&insJSON, "json", false, "print the parse results as JSON")
}
