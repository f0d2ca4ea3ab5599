package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitIterator is a pull-based, lazy stream of RawCommits. Next advances
// the walk by exactly one commit; callers that lose interest partway
// through (because a consumer such as the changelog collector decided to
// stop at a version boundary) simply stop calling Next, and the remainder
// of the repository's history is never touched.
type CommitIterator struct {
	ctx     context.Context
	subtree string
	current *object.Commit
	done    bool
}

// WalkFirstParentTopological returns a CommitIterator over r's history,
// following only the first parent at each merge commit, in topological,
// newest-first order, starting at HEAD. projectSubtree restricts emitted
// commits to those touching at least one path under it; pass "" (or ".")
// to match the whole repository.
//
// The walk itself never materializes more than one commit's diff at a
// time: the underlying chain is followed one Parent(0) call per Next,
// rather than building the full history eagerly the way a plain
// object.Commit.Log() iterator would.
func (r *Repository) WalkFirstParentTopological(ctx context.Context, projectSubtree string) (*CommitIterator, error) {
	subtree, err := relativeSubtree(r.dir, projectSubtree)
	if err != nil {
		return nil, err
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// An unborn branch (no commits yet): an empty history, not an error.
		return &CommitIterator{ctx: ctx, subtree: subtree, done: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gitrepo: resolve HEAD: %w", err)
	}

	start, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("gitrepo: resolve HEAD commit: %w", err)
	}

	return &CommitIterator{ctx: ctx, subtree: subtree, current: start}, nil
}

// Next produces the next commit in the walk that touches the configured
// project subtree, skipping over any commits that do not. It returns
// (RawCommit{}, false, nil) once history is exhausted, and aborts with an
// error if resolving any commit along the way fails.
func (it *CommitIterator) Next() (RawCommit, bool, error) {
	for {
		if it.done || it.current == nil {
			return RawCommit{}, false, nil
		}
		if err := it.ctx.Err(); err != nil {
			return RawCommit{}, false, err
		}

		commit := it.current
		touched, err := touchedPaths(commit)
		if err != nil {
			return RawCommit{}, false, fmt.Errorf("gitrepo: diff commit %s: %w", commit.Hash.String(), err)
		}

		it.current, err = firstParent(commit)
		if err != nil {
			return RawCommit{}, false, fmt.Errorf("gitrepo: resolve parent of %s: %w", commit.Hash.String(), err)
		}
		if it.current == nil {
			it.done = true
		}

		matched := touched
		if it.subtree != "" {
			matched = nil
			for _, p := range touched {
				if underSubtree(p, it.subtree) {
					matched = append(matched, p)
				}
			}
		}
		if len(matched) == 0 {
			continue
		}

		return RawCommit{
			ID:           CommitID(commit.Hash.String()),
			Message:      normalizeMessage(commit.Message),
			TouchedPaths: matched,
			Timestamp:    commit.Committer.When.Unix(),
		}, true, nil
	}
}

// firstParent returns commit's first parent, or nil if commit is a root
// commit.
func firstParent(commit *object.Commit) (*object.Commit, error) {
	if commit.NumParents() == 0 {
		return nil, nil
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	return parent, nil
}

// touchedPaths returns the repository-relative paths changed by commit
// relative to its first parent, or every path in its tree if commit has no
// parents (the root commit: everything in it is "touched").
func touchedPaths(commit *object.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}

	if commit.NumParents() == 0 {
		var paths []string
		walker := object.NewTreeWalker(tree, true, nil)
		defer walker.Close()
		for {
			name, entry, err := walker.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("walk root tree: %w", err)
			}
			if !entry.Mode.IsFile() {
				continue
			}
			paths = append(paths, name)
		}
		return paths, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("read first parent: %w", err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("read parent tree: %w", err)
	}

	changes, err := parentTree.Diff(tree)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	seen := make(map[string]struct{}, len(changes))
	var paths []string
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for _, c := range changes {
		add(c.From.Name)
		add(c.To.Name)
	}
	return paths, nil
}
