// Package engine applies sync plans to the filesystem and orchestrates a full
// run: plan, execute, commit. Library code here never prints; outcomes are
// returned as templatesync reports for the CLI to render.
package engine

import (
	"fmt"
	"os"

	"github.com/bianoble/template-sync/internal/plan"
	"github.com/bianoble/template-sync/internal/sandbox"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// Execute applies a plan to the target tree. With dryRun set, no filesystem
// mutation occurs and the report is computed purely from the plan's actions,
// so a dry run's report has the same structure as a real run's.
//
// Copies are applied in plan order and each copy is all-or-nothing. The first
// failure aborts the run with an IOError; copies that already succeeded are
// left in place and remain listed in the returned report.
func Execute(p *plan.Plan, dryRun bool) (*templatesync.SyncReport, error) {
	report := &templatesync.SyncReport{DryRun: dryRun}
	report.Warnings = append(report.Warnings, p.Warnings...)

	for _, s := range p.Steps {
		if !dryRun && s.Action != plan.Skip {
			if err := copyFile(p.TargetRoot, s); err != nil {
				return report, &templatesync.IOError{Path: s.RelPath, Err: err}
			}
		}
		report.Actions = append(report.Actions, templatesync.PathAction{
			Path:   s.RelPath,
			Action: s.Action.String(),
		})
	}
	return report, nil
}

// copyFile copies the step's source file to its place under targetRoot,
// preserving the source's permission bits.
func copyFile(targetRoot string, s plan.Step) error {
	info, err := os.Stat(s.Source)
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.Source, err)
	}
	content, err := os.ReadFile(s.Source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.Source, err)
	}
	return sandbox.SafeWrite(targetRoot, s.RelPath, content, info.Mode().Perm())
}
