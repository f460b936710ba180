// Package vcs is the narrow version-control surface the sync engine depends
// on: working-tree detection, per-path staging, and commit creation. The
// engine never inspects history or branches through this interface, and tests
// can substitute an in-memory fake for the go-git implementation.
package vcs

// Workspace operates on one opened working tree.
type Workspace interface {
	// DirtyPaths returns the relative paths with uncommitted changes,
	// sorted. Used for the advisory dirty-tree warning only.
	DirtyPaths() ([]string, error)

	// Stage adds exactly the given relative paths to the index —
	// never a broad "stage everything".
	Stage(paths []string) error

	// Commit records the staged changes and returns the commit hash.
	Commit(message string) (string, error)
}

// Opener detects and opens working trees.
type Opener interface {
	// IsWorkingTree reports whether root carries version-control metadata.
	IsWorkingTree(root string) bool

	// Open returns a Workspace for the working tree at root.
	Open(root string) (Workspace, error)
}
