// Package gitrepo wraps go-git/v5 with the single operation semrel's core
// needs from a repository: a lazy, first-parent, topological, newest-first
// stream of commits touching a given project subtree.
//
// This package owns all real git I/O. The value-model types further up the
// stack (conventional.ParsedCommit, the eventual CommitRecord) know nothing
// about go-git; gitrepo hands them a raw commit id, message, touched-path
// set, and timestamp, and the caller classifies from there.
package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func plumbingHash(id CommitID) plumbing.Hash {
	return plumbing.NewHash(string(id))
}

// CommitID is a git commit object id in its canonical hex form.
type CommitID string

// String returns the commit id as a plain string.
func (id CommitID) String() string { return string(id) }

// Short returns an abbreviated form of the commit id, 7 characters by
// convention, suitable for display and logging.
func (id CommitID) Short() string {
	s := string(id)
	if len(s) <= 7 {
		return s
	}
	return s[:7]
}

// RawCommit is one commit as read off the repository, before any
// Conventional Commits classification has been applied to its message.
type RawCommit struct {
	// ID is the commit's object id.
	ID CommitID
	// Message is the full, unparsed commit message, LF-normalized.
	Message string
	// TouchedPaths is the set of repository-relative paths changed by
	// this commit against its first parent, restricted by CommitIterator
	// to the paths under the walk's project subtree.
	TouchedPaths []string
	// Timestamp is the committer time, Unix seconds.
	Timestamp int64
}

// Repository is an opened git repository, rooted at a working directory.
type Repository struct {
	dir  string
	repo *git.Repository
}

// Open opens the git repository rooted at dir. dir MUST already be a
// repository root (see FindRoot); Open does not search parent directories.
func Open(dir string) (*Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("gitrepo: open %q: %w", dir, err)
	}
	return &Repository{dir: dir, repo: repo}, nil
}

// FindRoot walks upward from start looking for a ".git" entry, returning
// the directory that contains it. It returns an error if no repository
// root is found before reaching the filesystem root.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("gitrepo: resolve %q: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("gitrepo: no repository root found above %q", start)
		}
		dir = parent
	}
}

// Dir returns the repository's working directory.
func (r *Repository) Dir() string { return r.dir }

// ReadBlobAt returns the contents of the file at repoRelativePath as it
// existed in commit. It is used by the manifest collaborator to classify
// version boundaries: a commit that touches a manifest is resolved back
// to the version recorded in that manifest at that point in history.
func (r *Repository) ReadBlobAt(commit CommitID, repoRelativePath string) ([]byte, error) {
	obj, err := r.repo.CommitObject(plumbingHash(commit))
	if err != nil {
		return nil, fmt.Errorf("gitrepo: resolve commit %s: %w", commit, err)
	}

	tree, err := obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitrepo: read tree at %s: %w", commit, err)
	}

	file, err := tree.File(filepath.ToSlash(repoRelativePath))
	if err != nil {
		return nil, fmt.Errorf("gitrepo: %s not found at %s: %w", repoRelativePath, commit, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("gitrepo: read %s at %s: %w", repoRelativePath, commit, err)
	}
	return []byte(contents), nil
}

// relativeSubtree normalizes a project subtree path to the repository-
// relative, slash-separated form go-git's tree entries use.
func relativeSubtree(dir, projectSubtree string) (string, error) {
	if projectSubtree == "" || projectSubtree == "." {
		return "", nil
	}

	abs := projectSubtree
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(dir, projectSubtree)
	}

	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return "", fmt.Errorf("gitrepo: resolve project subtree %q: %w", projectSubtree, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("gitrepo: project subtree %q escapes repository root %q", projectSubtree, dir)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

func underSubtree(path, subtree string) bool {
	if subtree == "" {
		return true
	}
	return path == subtree || strings.HasPrefix(path, subtree+"/")
}

// normalizeMessage converts a raw commit message's line endings to LF, the
// form conventional.Parse expects.
func normalizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	return msg
}
