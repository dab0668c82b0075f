package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/analysis"
	"github.com/KaramelBytes/rankdiff-cli/internal/export"
	"github.com/KaramelBytes/rankdiff-cli/internal/project"
	"github.com/KaramelBytes/rankdiff-cli/internal/utils"
)

var (
	expProject  string
	expFormat   string
	expOutput   string
	expCategory string
	expRank     string
	expFont     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the comparison to xlsx, pdf, png, json or markdown",
	Long: `Write the comparison of the selected classes to a file.
  xlsx  summary workbook, one block per school/grade with the signed differences
  pdf   the same summary as a landscape A4 document
  png   bar chart of the school and grade rates for the active rank
  json  both comparison views
  md    both comparison views as markdown tables`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(expProject)
		if err != nil {
			return err
		}
		if _, err := applyChoice(p, expCategory, expRank); err != nil {
			return err
		}
		format := strings.ToLower(expFormat)

		var buf bytes.Buffer
		switch format {
		case "xlsx":
			c, err := p.CompareFull()
			if err != nil {
				return err
			}
			if err := export.WriteWorkbook(&buf, c); err != nil {
				return err
			}
		case "pdf":
			c, err := p.CompareFull()
			if err != nil {
				return err
			}
			if err := export.WritePDF(&buf, c, pdfOptions()); err != nil {
				return err
			}
		case "png":
			c, err := p.Compare()
			if err != nil {
				return err
			}
			if err := export.WriteChartPNG(&buf, c); err != nil {
				return err
			}
		case "json", "md", "markdown":
			c, err := bothViews(p)
			if err != nil {
				return err
			}
			if format == "json" {
				b, err := utils.PrettyJSON(c)
				if err != nil {
					return err
				}
				buf.Write(b)
			} else {
				buf.WriteString(c.Markdown())
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use xlsx|pdf|png|json|md)", expFormat)
		}

		out := expOutput
		if out == "" {
			out = defaultExportPath(p, format)
		}
		if err := utils.EnsureDir(filepath.Dir(out)); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Exported %s: %s", format, out)
		return nil
	},
}

// bothViews merges the single-rank and the full comparison into one value.
func bothViews(p *project.Project) (*analysis.Comparison, error) {
	c, err := p.Compare()
	if err != nil {
		return nil, err
	}
	full, err := p.CompareFull()
	if err != nil {
		return nil, err
	}
	c.Full = full.Full
	return c, nil
}

func pdfOptions() export.PDFOptions {
	opt := export.PDFOptions{FontFile: expFont}
	if opt.FontFile == "" && cfg != nil {
		opt.FontFile = cfg.PDFFont
	}
	return opt
}

func defaultExportPath(p *project.Project, format string) string {
	dir := "."
	if cfg != nil && cfg.ExportDir != "" {
		dir = cfg.ExportDir
	}
	var name string
	switch format {
	case "xlsx":
		name = fmt.Sprintf("Bao_Cao_Doi_Soat_%s.xlsx", p.ActiveCategory())
	case "pdf":
		name = fmt.Sprintf("Bao_Cao_Doi_Soat_%s.pdf", p.ActiveCategory())
	case "png":
		name = fmt.Sprintf("Bieu_Do_%s_%s.png", p.ActiveCategory(), p.ActiveRank())
	case "markdown":
		name = fmt.Sprintf("%s_%s.md", p.Name, p.ActiveCategory())
	default:
		name = fmt.Sprintf("%s_%s.%s", p.Name, p.ActiveCategory(), format)
	}
	return filepath.Join(dir, name)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expProject, "project", "p", "", "project name")
	exportCmd.Flags().StringVarP(&expFormat, "format", "f", "xlsx", "xlsx|pdf|png|json|md")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output file (default in export_dir or the current directory)")
	exportCmd.Flags().StringVar(&expCategory, "category", "", "conduct|study for this export (default: project setting)")
	exportCmd.Flags().StringVar(&expFont, "font", "", "TrueType font for pdf output (default: pdf_font config or a system font)")
	exportCmd.Flags().StringVar(&expRank, "rank", "", "good|fair|passed|failed for this export (default: project setting)")
}
