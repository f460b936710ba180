// Package templatesync defines the public result and error types of the
// template synchronization engine.
//
// template-sync keeps downstream projects aligned with a canonical project
// template by selectively copying a whitelisted set of files and directories,
// detecting drift via byte-for-byte comparison, and committing the result to
// the project's git working tree.
//
// The engine reports outcomes through these types rather than printing:
// a sync run produces a SyncReport, an analyze run produces an AnalysisReport,
// and fatal conditions surface as one of the typed errors (ValidationError,
// IOError, CommitError). Warnings are never errors — they are carried on the
// report and always surfaced to the caller.
package templatesync

import "fmt"

// Sync actions. Every whitelisted path resolves to exactly one of these.
const (
	ActionCreate    = "create"    // path missing in the target, copied fresh
	ActionOverwrite = "overwrite" // target content differs from the template
	ActionSkip      = "skip"      // identical, or no longer defined by the template
)

// PathAction records the action taken (or planned, in dry-run mode) for a
// single relative path.
type PathAction struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

// Counts summarizes a SyncReport for display and machine consumption.
type Counts struct {
	Created     int `json:"created"`
	Overwritten int `json:"overwritten"`
	Skipped     int `json:"skipped"`
	Warnings    int `json:"warnings"`
}

// SyncReport holds the outcome of a sync run. The same structure is produced
// by dry runs and real runs; only DryRun and CommitHash differ.
type SyncReport struct {
	// Actions lists every planned path with its action, in plan order.
	Actions []PathAction `json:"actions"`

	// Warnings carries non-fatal conditions (paths no longer defined by the
	// template, pre-existing uncommitted changes in the target tree).
	Warnings []string `json:"warnings,omitempty"`

	// DryRun is true when no filesystem mutation or commit was performed.
	DryRun bool `json:"dry_run"`

	// CommitHash is the created commit, empty when nothing was committed.
	CommitHash string `json:"commit,omitempty"`
}

// Touched returns the relative paths actually written (created or
// overwritten), in plan order. This is exactly the set the committer stages.
func (r *SyncReport) Touched() []string {
	var paths []string
	for _, a := range r.Actions {
		if a.Action == ActionCreate || a.Action == ActionOverwrite {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// Counts tallies the report's actions and warnings.
func (r *SyncReport) Counts() Counts {
	c := Counts{Warnings: len(r.Warnings)}
	for _, a := range r.Actions {
		switch a.Action {
		case ActionCreate:
			c.Created++
		case ActionOverwrite:
			c.Overwritten++
		case ActionSkip:
			c.Skipped++
		}
	}
	return c
}

// CheckStatus is the result of a single analyzer checklist item.
type CheckStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Present     bool   `json:"present"`
}

// AnalysisReport holds the read-only outcome of a project analysis.
type AnalysisReport struct {
	Target          string        `json:"target"`
	Checks          []CheckStatus `json:"checks"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// Summary returns a one-line presence summary, e.g.
// "9/11 infrastructure components present".
func (r *AnalysisReport) Summary() string {
	present := 0
	for _, c := range r.Checks {
		if c.Present {
			present++
		}
	}
	return fmt.Sprintf("%d/%d infrastructure components present", present, len(r.Checks))
}
