package vcs

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature identifies the commit author.
type Signature struct {
	Name  string
	Email string
}

// DefaultSignature is used when the caller does not supply an identity, so
// sync commits succeed even in repositories without user.name configured.
var DefaultSignature = Signature{
	Name:  "template-sync",
	Email: "template-sync@localhost",
}

// GitOpener implements Opener on top of go-git. No git binary is invoked.
type GitOpener struct {
	Author Signature
}

// NewGitOpener returns a GitOpener committing as the default identity.
func NewGitOpener() *GitOpener {
	return &GitOpener{Author: DefaultSignature}
}

// IsWorkingTree reports whether root is a non-bare git repository.
func (o *GitOpener) IsWorkingTree(root string) bool {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return false
	}
	_, err = repo.Worktree()
	return err == nil
}

// Open opens the working tree at root.
func (o *GitOpener) Open(root string) (Workspace, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree at %s: %w", root, err)
	}

	author := o.Author
	if author.Name == "" || author.Email == "" {
		author = DefaultSignature
	}
	return &gitWorkspace{wt: wt, author: author}, nil
}

type gitWorkspace struct {
	wt     *git.Worktree
	author Signature
}

func (w *gitWorkspace) DirtyPaths() ([]string, error) {
	status, err := w.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var dirty []string
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		dirty = append(dirty, path)
	}
	sort.Strings(dirty)
	return dirty, nil
}

func (w *gitWorkspace) Stage(paths []string) error {
	for _, p := range paths {
		if _, err := w.wt.Add(filepath.ToSlash(p)); err != nil {
			return fmt.Errorf("staging %s: %w", p, err)
		}
	}
	return nil
}

func (w *gitWorkspace) Commit(message string) (string, error) {
	sig := &object.Signature{
		Name:  w.author.Name,
		Email: w.author.Email,
		When:  time.Now(),
	}
	hash, err := w.wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}
