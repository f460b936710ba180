package templatesync

import "fmt"

// ValidationError reports bad inputs: a missing or unreadable root, a target
// that is not a version-controlled working tree, or a whitelist entry whose
// source and target disagree about being a file or a directory.
// It is always raised before any filesystem mutation.
type ValidationError struct {
	Path   string // offending path, may be empty for config-level failures
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Path, e.Reason)
}

// IOError reports a read or copy failure for a specific path. It is fatal for
// the run, but copies that already succeeded are left in place and reported.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// CommitError reports a version-control failure after files were synced.
// The sync results remain valid; only the commit step failed.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
