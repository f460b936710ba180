package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bianoble/template-sync/internal/plan"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// handPlan builds a plan literal without going through validation.
func handPlan(src, dst string, steps ...plan.Step) *plan.Plan {
	return &plan.Plan{SourceRoot: src, TargetRoot: dst, Steps: steps}
}

func fileStep(src, dst, rel string, action plan.Action) plan.Step {
	return plan.Step{
		RelPath: rel,
		Action:  action,
		Source:  filepath.Join(src, filepath.FromSlash(rel)),
		Target:  filepath.Join(dst, filepath.FromSlash(rel)),
	}
}

func TestExecuteCreatesAndOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "justfile", "default: build\n")
	writeFile(t, src, "tasks/build.just", "build:\n")
	writeFile(t, dst, "justfile", "stale\n")

	p := handPlan(src, dst,
		fileStep(src, dst, "tasks/build.just", plan.Create),
		fileStep(src, dst, "justfile", plan.Overwrite),
	)

	report, err := Execute(p, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := readFile(t, dst, "justfile"); got != "default: build\n" {
		t.Errorf("justfile content: got %q", got)
	}
	if got := readFile(t, dst, "tasks/build.just"); got != "build:\n" {
		t.Errorf("tasks/build.just content: got %q", got)
	}

	c := report.Counts()
	if c.Created != 1 || c.Overwritten != 1 || c.Skipped != 0 {
		t.Errorf("counts: %+v", c)
	}
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "justfile", "default: build\n")
	writeFile(t, dst, ".gitignore", "keep\n")

	p := handPlan(src, dst,
		fileStep(src, dst, "justfile", plan.Create),
		fileStep(src, dst, ".gitignore", plan.Skip),
	)

	report, err := Execute(p, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !report.DryRun {
		t.Error("report must be flagged as dry run")
	}

	if _, err := os.Stat(filepath.Join(dst, "justfile")); !os.IsNotExist(err) {
		t.Error("dry run must not create files")
	}
	if got := readFile(t, dst, ".gitignore"); got != "keep\n" {
		t.Errorf("dry run modified target tree: %q", got)
	}
}

func TestExecuteDryRunEquivalence(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "justfile", "default: build\n")
	writeFile(t, src, ".gitignore", "*.pyc\n")
	writeFile(t, dst, ".gitignore", "drift\n")

	steps := []plan.Step{
		fileStep(src, dst, "justfile", plan.Create),
		fileStep(src, dst, ".gitignore", plan.Overwrite),
	}

	dry, err := Execute(handPlan(src, dst, steps...), true)
	if err != nil {
		t.Fatal(err)
	}
	applied, err := Execute(handPlan(src, dst, steps...), false)
	if err != nil {
		t.Fatal(err)
	}

	if dry.Counts() != applied.Counts() {
		t.Errorf("dry-run counts %+v differ from applied counts %+v", dry.Counts(), applied.Counts())
	}
	if len(dry.Actions) != len(applied.Actions) {
		t.Errorf("action lists differ in length")
	}
	for i := range dry.Actions {
		if dry.Actions[i] != applied.Actions[i] {
			t.Errorf("action %d: dry %+v, applied %+v", i, dry.Actions[i], applied.Actions[i])
		}
	}
}

func TestExecuteSkipNeverWrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "justfile", "same\n")
	writeFile(t, dst, "justfile", "same\n")

	before, err := os.Stat(filepath.Join(dst, "justfile"))
	if err != nil {
		t.Fatal(err)
	}

	p := handPlan(src, dst, fileStep(src, dst, "justfile", plan.Skip))
	report, err := Execute(p, false)
	if err != nil {
		t.Fatal(err)
	}

	after, err := os.Stat(filepath.Join(dst, "justfile"))
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("skip action rewrote an identical file")
	}
	if got := report.Touched(); len(got) != 0 {
		t.Errorf("skip actions leaked into the touched set: %v", got)
	}
}

func TestExecuteIOErrorKeepsPartialProgress(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "justfile", "default: build\n")
	// The second step's source does not exist, so its copy fails.

	p := handPlan(src, dst,
		fileStep(src, dst, "justfile", plan.Create),
		fileStep(src, dst, ".gitignore", plan.Create),
	)

	report, err := Execute(p, false)
	var ioErr *templatesync.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %T: %v", err, err)
	}
	if ioErr.Path != ".gitignore" {
		t.Errorf("IOError path: got %q", ioErr.Path)
	}

	// The first copy stays in place and stays reported.
	if got := readFile(t, dst, "justfile"); got != "default: build\n" {
		t.Errorf("earlier successful copy was lost: %q", got)
	}
	if got := report.Touched(); len(got) != 1 || got[0] != "justfile" {
		t.Errorf("report touched: got %v, want [justfile]", got)
	}
}

func TestExecutePreservesFileMode(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "tasks/run.sh", "#!/bin/sh\n")
	if err := os.Chmod(filepath.Join(src, "tasks", "run.sh"), 0755); err != nil {
		t.Fatal(err)
	}

	p := handPlan(src, dst, fileStep(src, dst, "tasks/run.sh", plan.Create))
	if _, err := Execute(p, false); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dst, "tasks", "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode: got %v, want 0755", info.Mode().Perm())
	}
}
