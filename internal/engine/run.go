package engine

import (
	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/internal/plan"
	"github.com/bianoble/template-sync/internal/vcs"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// Runner wires one full sync run: plan, execute, commit.
type Runner struct {
	VCS       vcs.Opener
	Whitelist []config.SyncTarget
}

// RunOptions configures a sync run. Both roots are explicit — the engine
// never assumes the current working directory.
type RunOptions struct {
	SourceRoot string
	TargetRoot string
	DryRun     bool
}

// Run executes a full sync. The returned report is non-nil whenever planning
// succeeded, including on IOError and CommitError, so callers always see how
// far the run got. A run succeeds only if validation passed, every planned
// copy succeeded, and — when the plan touched anything and dry-run is off —
// the commit was created.
func (r *Runner) Run(opts RunOptions) (*templatesync.SyncReport, error) {
	p, err := plan.Build(opts.SourceRoot, opts.TargetRoot, r.Whitelist, r.VCS)
	if err != nil {
		return nil, err
	}

	report, err := Execute(p, opts.DryRun)
	if err != nil {
		return report, err
	}

	// An empty touched set means the project already matches the template:
	// no staging, no commit, and a second run right after a sync is a no-op.
	if opts.DryRun || p.IsClean() {
		return report, nil
	}

	if err := commitReport(r.VCS, p.TargetRoot, report); err != nil {
		return report, err
	}
	return report, nil
}

// Check plans a run without mutating anything. It reports the same
// validation failures a real run would hit.
func (r *Runner) Check(sourceRoot, targetRoot string) (*templatesync.SyncReport, error) {
	p, err := plan.Build(sourceRoot, targetRoot, r.Whitelist, r.VCS)
	if err != nil {
		return nil, err
	}
	return Execute(p, true)
}
