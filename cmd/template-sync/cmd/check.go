package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/template-sync/internal/engine"
	"github.com/bianoble/template-sync/internal/vcs"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

var (
	checkSource string
	checkTarget string
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report drift between the template and a project",
	Long: `Plans a sync without touching anything and reports every path that would be
created or overwritten. Exit 0 if the project matches the template; exit
non-zero on drift. Suitable for CI pipelines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runner := &engine.Runner{
			VCS:       vcs.NewGitOpener(),
			Whitelist: cfg.Targets,
		}

		report, err := runner.Check(checkSource, checkTarget)
		if err != nil {
			return err
		}

		if checkJSON {
			if err := printJSON(newSyncView(report, nil)); err != nil {
				return err
			}
		} else {
			for _, a := range report.Actions {
				if a.Action == templatesync.ActionSkip {
					detail("%-9s  %s", a.Action, a.Path)
					continue
				}
				info("  %-9s  %s", a.Action, a.Path)
			}
			for _, w := range report.Warnings {
				info("warning: %s", w)
			}
		}

		touched := report.Touched()
		if len(touched) == 0 {
			info("Project matches the template.")
			return nil
		}
		return fmt.Errorf("check failed: %d path(s) out of sync", len(touched))
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkSource, "source", "", "path to the template source directory")
	checkCmd.Flags().StringVar(&checkTarget, "target", ".", "path to the target project")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit the report as JSON")
	_ = checkCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(checkCmd)
}
