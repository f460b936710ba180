package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/template-sync/internal/engine"
	"github.com/bianoble/template-sync/internal/vcs"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

var (
	syncSource string
	syncTarget string
	syncDryRun bool
	syncJSON   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync whitelisted files from the template into a project",
	Long: `Compares every whitelisted path between the template and the target project,
copies files that are missing or drifted, and records a single descriptive
commit enumerating everything it touched. Unchanged files are never rewritten
or re-staged. With --dry-run, reports the same actions without writing or
committing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runner := &engine.Runner{
			VCS:       vcs.NewGitOpener(),
			Whitelist: cfg.Targets,
		}

		report, runErr := runner.Run(engine.RunOptions{
			SourceRoot: syncSource,
			TargetRoot: syncTarget,
			DryRun:     syncDryRun,
		})

		if syncJSON && report != nil {
			if err := printJSON(newSyncView(report, runErr)); err != nil {
				return err
			}
			return runErr
		}

		if report != nil {
			renderSyncReport(report)
		}
		return runErr
	},
}

func renderSyncReport(report *templatesync.SyncReport) {
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

	c := report.Counts()
	if c.Created == 0 && c.Overwritten == 0 {
		info("No changes needed — project is already up to date.")
		return
	}

	info("")
	info("Sync complete: %d created, %d overwritten, %d unchanged, %d warning(s).",
		c.Created, c.Overwritten, c.Skipped, c.Warnings)

	switch {
	case report.DryRun:
		info("Dry run — no files written, no commit created.")
	case report.CommitHash != "":
		info("Changes committed (%.8s).", report.CommitHash)
	}
}

func init() {
	syncCmd.Flags().StringVar(&syncSource, "source", "", "path to the template source directory")
	syncCmd.Flags().StringVar(&syncTarget, "target", ".", "path to the target project")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "preview changes without writing or committing")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "emit the report as JSON")
	_ = syncCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(syncCmd)
}
