package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bianoble/template-sync/internal/vcs"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// commitReport stages exactly the report's touched paths and records one
// descriptive commit. Pre-existing uncommitted changes unrelated to the sync
// are surfaced as a warning; they are never staged and never block the
// commit. On success the commit hash is written onto the report.
func commitReport(opener vcs.Opener, targetRoot string, report *templatesync.SyncReport) error {
	touched := report.Touched()

	ws, err := opener.Open(targetRoot)
	if err != nil {
		return &templatesync.CommitError{Err: err}
	}

	// Advisory only: the original behavior treats a dirty tree as a
	// warning, not a hard block.
	dirty, err := ws.DirtyPaths()
	if err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("could not inspect working tree status: %v", err))
	} else if unrelated := subtract(dirty, touched); len(unrelated) > 0 {
		report.Warnings = append(report.Warnings,
			"working tree has uncommitted changes unrelated to the sync: "+strings.Join(unrelated, ", "))
	}

	if err := ws.Stage(touched); err != nil {
		return &templatesync.CommitError{Err: err}
	}

	hash, err := ws.Commit(commitMessage(report))
	if err != nil {
		return &templatesync.CommitError{Err: err}
	}
	report.CommitHash = hash
	return nil
}

// commitMessage builds a self-documenting message: every touched path
// enumerated, grouped by action.
func commitMessage(report *templatesync.SyncReport) string {
	var created, overwritten []string
	for _, a := range report.Actions {
		switch a.Action {
		case templatesync.ActionCreate:
			created = append(created, a.Path)
		case templatesync.ActionOverwrite:
			overwritten = append(overwritten, a.Path)
		}
	}

	var b strings.Builder
	b.WriteString("Sync with latest project template\n")
	if len(created) > 0 {
		b.WriteString("\nCreated:\n")
		for _, p := range created {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	if len(overwritten) > 0 {
		b.WriteString("\nOverwritten:\n")
		for _, p := range overwritten {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	b.WriteString("\nThis commit updates the project infrastructure to match the latest\n")
	b.WriteString("template version, including task definitions, configuration files,\n")
	b.WriteString("and development tools.\n")
	return b.String()
}

// subtract returns the dirty paths not covered by the touched set, with
// separators normalized so git status paths match plan paths.
func subtract(dirty, touched []string) []string {
	covered := make(map[string]bool, len(touched))
	for _, p := range touched {
		covered[filepath.ToSlash(p)] = true
	}

	var rest []string
	for _, p := range dirty {
		if !covered[filepath.ToSlash(p)] {
			rest = append(rest, p)
		}
	}
	return rest
}
