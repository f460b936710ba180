// Package compare classifies the relationship between corresponding paths in
// the template tree and the project tree. It performs reads only and never
// mutates either tree.
package compare

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Result classifies a single template/project path pair.
type Result int

const (
	// Identical means both files exist with byte-for-byte equal content.
	Identical Result = iota
	// Differs means both files exist but their content diverges.
	Differs
	// MissingInTarget means the template defines the path but the project lacks it.
	MissingInTarget
	// MissingInSource means the project has the path but the template no longer defines it.
	MissingInSource
)

func (r Result) String() string {
	switch r {
	case Identical:
		return "identical"
	case Differs:
		return "differs"
	case MissingInTarget:
		return "missing-in-target"
	case MissingInSource:
		return "missing-in-source"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// MismatchError reports a path that is a file on one side and a directory on
// the other. Type mismatches are never silently resolved.
type MismatchError struct {
	RelPath string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %s: file on one side, directory on the other", e.RelPath)
}

// Entry is a per-file comparison produced by a directory walk.
// RelPath is relative to the compared directory pair and uses slashes.
type Entry struct {
	RelPath string
	Result  Result
}

// File compares two regular files by content. Timestamps are never consulted,
// so unchanged files are never reported as drifted.
func File(sourcePath, targetPath string) (Result, error) {
	srcExists, err := exists(sourcePath)
	if err != nil {
		return 0, err
	}
	dstExists, err := exists(targetPath)
	if err != nil {
		return 0, err
	}

	switch {
	case !srcExists && !dstExists:
		return 0, fmt.Errorf("neither %s nor %s exists", sourcePath, targetPath)
	case !dstExists:
		return MissingInTarget, nil
	case !srcExists:
		return MissingInSource, nil
	}

	srcContent, err := os.ReadFile(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", sourcePath, err)
	}
	dstContent, err := os.ReadFile(targetPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", targetPath, err)
	}

	if bytes.Equal(srcContent, dstContent) {
		return Identical, nil
	}
	return Differs, nil
}

// Tree recursively compares two directories over the union of their entries.
// It returns one Entry per concrete file, depth-first with names sorted at
// each level, so parents always precede their children and the output is
// deterministic for identical inputs. A file present on only one side yields
// MissingInTarget/MissingInSource for that file alone — never a blanket
// verdict for the whole directory.
//
// A path that is a file on one side and a directory on the other is an error;
// type mismatches are never silently resolved.
func Tree(sourceDir, targetDir string) ([]Entry, error) {
	return walkUnion(sourceDir, targetDir, "")
}

func walkUnion(sourceDir, targetDir, prefix string) ([]Entry, error) {
	names, err := unionNames(sourceDir, targetDir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, name := range names {
		rel := name
		if prefix != "" {
			rel = prefix + "/" + name
		}
		srcPath := filepath.Join(sourceDir, name)
		dstPath := filepath.Join(targetDir, name)

		srcInfo, srcErr := os.Stat(srcPath)
		dstInfo, dstErr := os.Stat(dstPath)
		srcExists := srcErr == nil
		dstExists := dstErr == nil
		if srcErr != nil && !os.IsNotExist(srcErr) {
			return nil, fmt.Errorf("stat %s: %w", srcPath, srcErr)
		}
		if dstErr != nil && !os.IsNotExist(dstErr) {
			return nil, fmt.Errorf("stat %s: %w", dstPath, dstErr)
		}

		switch {
		case srcExists && dstExists && srcInfo.IsDir() != dstInfo.IsDir():
			return nil, &MismatchError{RelPath: rel}

		case srcExists && dstExists && srcInfo.IsDir():
			sub, err := walkUnion(srcPath, dstPath, rel)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)

		case srcExists && dstExists:
			result, err := File(srcPath, dstPath)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{RelPath: rel, Result: result})

		case srcExists && srcInfo.IsDir():
			sub, err := listFiles(srcPath, rel, MissingInTarget)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)

		case srcExists:
			entries = append(entries, Entry{RelPath: rel, Result: MissingInTarget})

		case dstInfo.IsDir():
			sub, err := listFiles(dstPath, rel, MissingInSource)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)

		default:
			entries = append(entries, Entry{RelPath: rel, Result: MissingInSource})
		}
	}
	return entries, nil
}

// listFiles enumerates every file under dir, depth-first and name-sorted,
// tagging each with the given result.
func listFiles(dir, prefix string, result Result) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var entries []Entry
	for _, d := range dirents {
		rel := prefix + "/" + d.Name()
		if d.IsDir() {
			sub, err := listFiles(filepath.Join(dir, d.Name()), rel, result)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
			continue
		}
		entries = append(entries, Entry{RelPath: rel, Result: result})
	}
	return entries, nil
}

// unionNames merges the immediate entry names of both directories, sorted.
// A missing directory on either side contributes nothing.
func unionNames(sourceDir, targetDir string) ([]string, error) {
	seen := make(map[string]bool)
	for _, dir := range []string{sourceDir, targetDir} {
		dirents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading directory %s: %w", dir, err)
		}
		for _, d := range dirents {
			seen[d.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
