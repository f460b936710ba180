package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/internal/vcs"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// fakeWorkspace records staging and commit calls in memory.
type fakeWorkspace struct {
	dirty     []string
	staged    [][]string
	messages  []string
	commitErr error
	stageErr  error
}

func (w *fakeWorkspace) DirtyPaths() ([]string, error) {
	return w.dirty, nil
}

func (w *fakeWorkspace) Stage(paths []string) error {
	if w.stageErr != nil {
		return w.stageErr
	}
	w.staged = append(w.staged, append([]string(nil), paths...))
	return nil
}

func (w *fakeWorkspace) Commit(message string) (string, error) {
	if w.commitErr != nil {
		return "", w.commitErr
	}
	w.messages = append(w.messages, message)
	return fmt.Sprintf("%040d", len(w.messages)), nil
}

type fakeVCS struct {
	ws *fakeWorkspace
}

func (v *fakeVCS) IsWorkingTree(root string) bool {
	return true
}

func (v *fakeVCS) Open(root string) (vcs.Workspace, error) {
	return v.ws, nil
}

var _ vcs.Opener = (*fakeVCS)(nil)

func newTemplate(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeFile(t, src, "justfile", "default: build\n")
	writeFile(t, src, ".gitignore", "*.pyc\n")
	writeFile(t, src, ".python-version", "3.12\n")
	writeFile(t, src, "tasks/build.just", "build:\n")
	return src
}

func newRunner(ws *fakeWorkspace) *Runner {
	return &Runner{
		VCS:       &fakeVCS{ws: ws},
		Whitelist: config.Default().Targets,
	}
}

func TestRunFreshSync(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	ws := &fakeWorkspace{}

	report, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := readFile(t, dst, "justfile"); got != "default: build\n" {
		t.Errorf("justfile content: %q", got)
	}
	if len(ws.staged) != 1 {
		t.Fatalf("got %d stage calls, want 1", len(ws.staged))
	}
	wantStaged := []string{"tasks/build.just", "justfile", ".gitignore", ".python-version"}
	if fmt.Sprint(ws.staged[0]) != fmt.Sprint(wantStaged) {
		t.Errorf("staged %v, want exactly the touched paths %v", ws.staged[0], wantStaged)
	}
	if len(ws.messages) != 1 {
		t.Fatalf("got %d commits, want 1", len(ws.messages))
	}
	if report.CommitHash == "" {
		t.Error("report is missing the commit hash")
	}
}

func TestRunIdempotent(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	ws := &fakeWorkspace{}
	runner := newRunner(ws)

	if _, err := runner.Run(RunOptions{SourceRoot: src, TargetRoot: dst}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := runner.Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if got := second.Touched(); len(got) != 0 {
		t.Errorf("second run touched %v, want nothing", got)
	}
	if len(ws.messages) != 1 {
		t.Errorf("got %d commits after two runs, want 1", len(ws.messages))
	}
	if second.CommitHash != "" {
		t.Error("second run must not report a commit")
	}
}

func TestRunDryRunNeverCommits(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	ws := &fakeWorkspace{}

	report, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst, DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ws.staged) != 0 || len(ws.messages) != 0 {
		t.Error("dry run must not stage or commit")
	}
	if c := report.Counts(); c.Created != 4 {
		t.Errorf("dry-run counts: %+v", c)
	}
}

func TestRunCommitMessageGroupsActions(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	// Pre-seed a drifted .gitignore so the run both creates and overwrites.
	writeFile(t, dst, ".gitignore", "drift\n")
	ws := &fakeWorkspace{}

	if _, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst}); err != nil {
		t.Fatal(err)
	}
	if len(ws.messages) != 1 {
		t.Fatalf("got %d commits, want 1", len(ws.messages))
	}

	msg := ws.messages[0]
	if !strings.HasPrefix(msg, "Sync with latest project template\n") {
		t.Errorf("unexpected summary line:\n%s", msg)
	}
	createdIdx := strings.Index(msg, "Created:")
	overwrittenIdx := strings.Index(msg, "Overwritten:")
	if createdIdx == -1 || overwrittenIdx == -1 {
		t.Fatalf("message missing action groups:\n%s", msg)
	}
	created := msg[createdIdx:overwrittenIdx]
	if !strings.Contains(created, "justfile") {
		t.Errorf("created group missing justfile:\n%s", msg)
	}
	if !strings.Contains(msg[overwrittenIdx:], ".gitignore") {
		t.Errorf("overwritten group missing .gitignore:\n%s", msg)
	}
}

func TestRunDirtyTreeWarnsButProceeds(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	ws := &fakeWorkspace{dirty: []string{"untracked-notes.md"}}

	report, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "untracked-notes.md") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dirty-tree warning, got %v", report.Warnings)
	}
	// Unrelated dirty files are warned about, never staged.
	for _, staged := range ws.staged {
		for _, p := range staged {
			if p == "untracked-notes.md" {
				t.Error("unrelated dirty file was staged")
			}
		}
	}
	if len(ws.messages) != 1 {
		t.Errorf("dirty tree must not block the commit, got %d commits", len(ws.messages))
	}
}

func TestRunDirtyOnlyFromSyncNoWarning(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	// The workspace reports exactly the paths the sync itself wrote as dirty.
	ws := &fakeWorkspace{dirty: []string{".gitignore", ".python-version", "justfile", "tasks/build.just"}}

	report, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range report.Warnings {
		if strings.Contains(w, "uncommitted changes") {
			t.Errorf("touched paths must not trigger the dirty warning: %v", w)
		}
	}
}

func TestRunCommitErrorKeepsSyncResults(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	ws := &fakeWorkspace{commitErr: errors.New("empty author identity")}

	report, err := newRunner(ws).Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	var cerr *templatesync.CommitError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CommitError, got %T: %v", err, err)
	}

	// Files were still synced; the report documents the partial completion.
	if report == nil {
		t.Fatal("report must survive a commit failure")
	}
	if got := readFile(t, dst, "justfile"); got != "default: build\n" {
		t.Errorf("synced file lost after commit failure: %q", got)
	}
	if report.CommitHash != "" {
		t.Error("no commit hash must be reported on failure")
	}
}

func TestRunValidationFailureBeforeMutation(t *testing.T) {
	src := newTemplate(t)
	dst := t.TempDir()
	runner := &Runner{
		VCS:       &notAWorkingTree{},
		Whitelist: config.Default().Targets,
	}

	report, err := runner.Run(RunOptions{SourceRoot: src, TargetRoot: dst})
	var verr *templatesync.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if report != nil {
		t.Error("no report is produced when validation fails")
	}
}

type notAWorkingTree struct{}

func (notAWorkingTree) IsWorkingTree(root string) bool { return false }

func (notAWorkingTree) Open(root string) (vcs.Workspace, error) {
	return nil, errors.New("not a repository")
}
