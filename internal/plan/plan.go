// Package plan turns the sync whitelist into an ordered, immutable plan of
// per-path actions. All input validation for a run happens here — a dry run
// hits exactly the same failures a real run would.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/template-sync/internal/compare"
	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// Action is the reconciliation decision for a single path.
type Action int

const (
	Skip Action = iota
	Create
	Overwrite
)

func (a Action) String() string {
	switch a {
	case Create:
		return templatesync.ActionCreate
	case Overwrite:
		return templatesync.ActionOverwrite
	default:
		return templatesync.ActionSkip
	}
}

// Step is one planned action. RelPath is slash-separated and relative to both
// roots; Source and Target are absolute. Source is empty for paths the
// template no longer defines.
type Step struct {
	RelPath string
	Action  Action
	Source  string
	Target  string
}

// Plan is the ordered outcome of planning one run. It is computed once,
// never mutated afterwards, and consumed once by the executor.
type Plan struct {
	SourceRoot string
	TargetRoot string
	Steps      []Step
	Warnings   []string
}

// Touched returns the relative paths the plan will write, in plan order.
func (p *Plan) Touched() []string {
	var paths []string
	for _, s := range p.Steps {
		if s.Action != Skip {
			paths = append(paths, s.RelPath)
		}
	}
	return paths
}

// IsClean reports whether the plan contains no Create or Overwrite actions.
func (p *Plan) IsClean() bool {
	return len(p.Touched()) == 0
}

// WorktreeProbe answers whether a directory is a version-controlled working
// tree. The probe is injected so planning never shells out and tests can
// substitute a fake.
type WorktreeProbe interface {
	IsWorkingTree(root string) bool
}

// Build validates both roots and produces the plan for the given whitelist.
// Whitelist entries are evaluated in declared order and directories expand
// depth-first with parents before children, so two runs over identical trees
// produce identical plans.
func Build(sourceRoot, targetRoot string, whitelist []config.SyncTarget, probe WorktreeProbe) (*Plan, error) {
	sourceRoot, err := filepath.Abs(sourceRoot)
	if err != nil {
		return nil, &templatesync.ValidationError{Path: sourceRoot, Reason: err.Error()}
	}
	targetRoot, err = filepath.Abs(targetRoot)
	if err != nil {
		return nil, &templatesync.ValidationError{Path: targetRoot, Reason: err.Error()}
	}

	if err := validateRoots(sourceRoot, targetRoot, whitelist, probe); err != nil {
		return nil, err
	}

	p := &Plan{SourceRoot: sourceRoot, TargetRoot: targetRoot}
	for _, entry := range whitelist {
		if err := planEntry(p, entry); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func validateRoots(sourceRoot, targetRoot string, whitelist []config.SyncTarget, probe WorktreeProbe) error {
	srcInfo, err := os.Stat(sourceRoot)
	if os.IsNotExist(err) {
		return &templatesync.ValidationError{Path: sourceRoot, Reason: "source path does not exist"}
	}
	if err != nil {
		return &templatesync.ValidationError{Path: sourceRoot, Reason: err.Error()}
	}
	if !srcInfo.IsDir() {
		return &templatesync.ValidationError{Path: sourceRoot, Reason: "source path is not a directory"}
	}
	if _, err := os.ReadDir(sourceRoot); err != nil {
		return &templatesync.ValidationError{Path: sourceRoot, Reason: "source path is not readable"}
	}

	// The source must look like the template: its first file-kind whitelist
	// entry has to exist, so pointing --source at an arbitrary directory
	// fails early instead of producing a plan full of missing-in-source skips.
	if marker := templateMarker(whitelist); marker != "" {
		if _, err := os.Stat(filepath.Join(sourceRoot, marker)); os.IsNotExist(err) {
			return &templatesync.ValidationError{
				Path:   sourceRoot,
				Reason: fmt.Sprintf("source doesn't appear to be a valid template (missing %s)", marker),
			}
		}
	}

	dstInfo, err := os.Stat(targetRoot)
	if os.IsNotExist(err) {
		return &templatesync.ValidationError{Path: targetRoot, Reason: "target path does not exist"}
	}
	if err != nil {
		return &templatesync.ValidationError{Path: targetRoot, Reason: err.Error()}
	}
	if !dstInfo.IsDir() {
		return &templatesync.ValidationError{Path: targetRoot, Reason: "target path is not a directory"}
	}
	if !probe.IsWorkingTree(targetRoot) {
		return &templatesync.ValidationError{Path: targetRoot, Reason: "target is not a version-controlled working tree"}
	}
	return nil
}

func templateMarker(whitelist []config.SyncTarget) string {
	for _, entry := range whitelist {
		if entry.Kind == config.KindFile {
			return entry.Path
		}
	}
	return ""
}

func planEntry(p *Plan, entry config.SyncTarget) error {
	srcPath := filepath.Join(p.SourceRoot, filepath.FromSlash(entry.Path))
	dstPath := filepath.Join(p.TargetRoot, filepath.FromSlash(entry.Path))

	srcInfo, srcErr := os.Stat(srcPath)
	dstInfo, dstErr := os.Stat(dstPath)
	srcExists := srcErr == nil
	dstExists := dstErr == nil
	if srcErr != nil && !os.IsNotExist(srcErr) {
		return &templatesync.IOError{Path: entry.Path, Err: srcErr}
	}
	if dstErr != nil && !os.IsNotExist(dstErr) {
		return &templatesync.IOError{Path: entry.Path, Err: dstErr}
	}

	// The template no longer defines this whitelist entry. The target is
	// left untouched; the condition is advisory, never fatal.
	if !srcExists {
		p.Steps = append(p.Steps, Step{RelPath: entry.Path, Action: Skip, Target: dstPath})
		p.Warnings = append(p.Warnings, fmt.Sprintf("source no longer defines %s — leaving target untouched", entry.Path))
		return nil
	}

	wantDir := entry.Kind == config.KindDirectory
	if srcInfo.IsDir() != wantDir {
		return &templatesync.ValidationError{
			Path:   entry.Path,
			Reason: fmt.Sprintf("whitelist declares kind '%s' but the source is a %s", entry.Kind, kindOf(srcInfo)),
		}
	}
	if dstExists && srcInfo.IsDir() != dstInfo.IsDir() {
		return &templatesync.ValidationError{
			Path:   entry.Path,
			Reason: fmt.Sprintf("source is a %s but target is a %s", kindOf(srcInfo), kindOf(dstInfo)),
		}
	}

	if !srcInfo.IsDir() {
		result, err := compare.File(srcPath, dstPath)
		if err != nil {
			return &templatesync.IOError{Path: entry.Path, Err: err}
		}
		p.Steps = append(p.Steps, step(entry.Path, result, srcPath, dstPath))
		return nil
	}

	entries, err := compare.Tree(srcPath, dstPath)
	if err != nil {
		return classifyTreeError(entry.Path, err)
	}
	for _, e := range entries {
		rel := entry.Path + "/" + e.RelPath
		s := step(rel,
			e.Result,
			filepath.Join(srcPath, filepath.FromSlash(e.RelPath)),
			filepath.Join(dstPath, filepath.FromSlash(e.RelPath)))
		if e.Result == compare.MissingInSource {
			s.Source = ""
			p.Warnings = append(p.Warnings, fmt.Sprintf("source no longer defines %s — leaving target untouched", rel))
		}
		p.Steps = append(p.Steps, s)
	}
	return nil
}

func step(relPath string, result compare.Result, srcPath, dstPath string) Step {
	s := Step{RelPath: relPath, Source: srcPath, Target: dstPath}
	switch result {
	case compare.MissingInTarget:
		s.Action = Create
	case compare.Differs:
		s.Action = Overwrite
	default:
		s.Action = Skip
	}
	return s
}

func kindOf(info os.FileInfo) string {
	if info.IsDir() {
		return "directory"
	}
	return "file"
}

// classifyTreeError keeps the taxonomy honest: a type mismatch inside a
// synced directory is bad input, anything else is an IO failure.
func classifyTreeError(relPath string, err error) error {
	var mismatch *compare.MismatchError
	if errors.As(err, &mismatch) {
		return &templatesync.ValidationError{Path: relPath, Reason: err.Error()}
	}
	return &templatesync.IOError{Path: relPath, Err: err}
}
