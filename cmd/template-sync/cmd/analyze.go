package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/template-sync/internal/analyze"
	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

var (
	analyzeTarget string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Inspect a project against the infrastructure checklist",
	Long: `Checks the target project against the full infrastructure checklist — a
superset of the sync whitelist that also covers pre-commit config, CI
workflows, and Docker files — and prints a report with migration
recommendations for anything missing. Read-only: nothing is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		report := analyze.Run(analyzeTarget, cfg.Checks)

		if analyzeJSON {
			return printJSON(report)
		}
		renderAnalysisReport(report, cfg.Targets)
		return nil
	},
}

func renderAnalysisReport(report *templatesync.AnalysisReport, whitelist []config.SyncTarget) {
	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 70)

	info("%s", rule)
	info("PROJECT SYNC ANALYSIS")
	info("%s", rule)
	info("Target: %s", report.Target)
	info("")

	info("INFRASTRUCTURE STATUS")
	info("%s", thin)
	for _, c := range report.Checks {
		mark := "✗"
		if c.Present {
			mark = "✓"
		}
		info("  %s %s", mark, c.Description)
	}

	info("")
	info("MIGRATION RECOMMENDATIONS")
	info("%s", thin)
	if len(report.Recommendations) == 0 {
		info("  Project appears to be in sync with the template!")
	} else {
		for i, rec := range report.Recommendations {
			info("  %d. %s", i+1, rec)
		}
	}

	info("")
	info("FILES READY TO SYNC")
	info("%s", thin)
	for _, t := range whitelist {
		path := t.Path
		if t.Kind == config.KindDirectory {
			path += "/"
		}
		info("  %-20s %s", path, t.Description)
	}

	info("")
	info("%s", report.Summary())
	info("%s", rule)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", ".", "path to the target project")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the report as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
