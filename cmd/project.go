package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rankdiff-cli/internal/project"
)

var (
	pmProject string
	pmClear   bool
	pmOldYear string
	pmNewYear string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage per-project settings",
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a project's years, title, active choice and loaded files",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name: %s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(out, "description: %s\n", p.Description)
		}
		fmt.Fprintf(out, "years: %s → %s\n", p.OldYear, p.NewYear)
		fmt.Fprintf(out, "title: %s\n", p.DisplayTitle(false))
		if p.Title == "" {
			fmt.Fprintf(out, "full title: %s\n", p.DisplayTitle(true))
		}
		fmt.Fprintf(out, "active: %s / %s\n", p.ActiveCategory().Label(), p.ActiveRank().Label())
		for _, s := range []project.Side{project.SideOld, project.SideNew} {
			d := p.Dataset(s)
			if d == nil {
				fmt.Fprintf(out, "%s: (not loaded)\n", s)
				continue
			}
			fmt.Fprintf(out, "%s: %s, %d rows, %d/%d classes selected\n",
				s, d.Name, len(d.Rows), len(d.Selected), d.ClassCount())
		}
		return nil
	},
}

var projectSetYearsCmd = &cobra.Command{
	Use:   "set-years",
	Short: "Set the school-year labels shown in reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(pmOldYear) == "" && strings.TrimSpace(pmNewYear) == "" {
			return fmt.Errorf("set --old and/or --new")
		}
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		p.SetYears(pmOldYear, pmNewYear)
		if err := p.Save(); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Years for %s: %s → %s", p.Name, p.OldYear, p.NewYear)
		return nil
	},
}

var projectSetTitleCmd = &cobra.Command{
	Use:   "set-title [title]",
	Short: "Set or clear a project's custom report title",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		if pmClear {
			p.SetTitle("")
		} else {
			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("title is required unless --clear is set")
			}
			p.SetTitle(args[0])
		}
		if err := p.Save(); err != nil {
			return err
		}
		if pmClear {
			success(cmd.OutOrStdout(), "Cleared custom title for %s", p.Name)
		} else {
			success(cmd.OutOrStdout(), "Set title for %s: %s", p.Name, p.Title)
		}
		return nil
	},
}

var projectResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Unload both years and their selections",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(pmProject)
		if err != nil {
			return err
		}
		p.Reset()
		if err := p.Save(); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Reset %s", p.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectShowCmd, projectSetYearsCmd, projectSetTitleCmd, projectResetCmd)

	for _, c := range []*cobra.Command{projectShowCmd, projectSetYearsCmd, projectSetTitleCmd, projectResetCmd} {
		c.Flags().StringVarP(&pmProject, "project", "p", "", "project name")
	}
	projectSetYearsCmd.Flags().StringVar(&pmOldYear, "old", "", "label of the earlier school year")
	projectSetYearsCmd.Flags().StringVar(&pmNewYear, "new", "", "label of the later school year")
	projectSetTitleCmd.Flags().BoolVar(&pmClear, "clear", false, "restore the generated title")
}
