package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func writeFile(t *testing.T, dir, relPath, content string) {
	t.Helper()
	abs := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func commitFile(t *testing.T, repoDir string, wt *git.Worktree, relPath, content, message string) {
	t.Helper()
	writeFile(t, repoDir, relPath, content)
	if _, err := wt.Add(relPath); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestWalkFirstParentTopological(t *testing.T) {
	repoDir := t.TempDir()
	raw, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := raw.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	commitFile(t, repoDir, wt, "moduleA/a.txt", "one", "feat: add a")
	commitFile(t, repoDir, wt, "moduleB/b.txt", "one", "feat: add b")
	commitFile(t, repoDir, wt, "moduleA/a.txt", "two", "fix: tweak a")

	repo, err := Open(repoDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	t.Run("unrestricted subtree sees every commit", func(t *testing.T) {
		it, err := repo.WalkFirstParentTopological(context.Background(), "")
		if err != nil {
			t.Fatalf("WalkFirstParentTopological: %v", err)
		}
		var messages []string
		for {
			c, ok, err := it.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if !ok {
				break
			}
			messages = append(messages, c.Message)
		}
		if len(messages) != 3 {
			t.Fatalf("got %d commits, want 3: %v", len(messages), messages)
		}
		if messages[0] != "fix: tweak a" {
			t.Errorf("newest-first: first message = %q, want %q", messages[0], "fix: tweak a")
		}
	})

	t.Run("subtree filter skips commits that do not touch it", func(t *testing.T) {
		it, err := repo.WalkFirstParentTopological(context.Background(), "moduleB")
		if err != nil {
			t.Fatalf("WalkFirstParentTopological: %v", err)
		}
		var ids []CommitID
		for {
			c, ok, err := it.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if !ok {
				break
			}
			ids = append(ids, c.ID)
		}
		if len(ids) != 1 {
			t.Fatalf("got %d commits under moduleB, want 1", len(ids))
		}
	})
}

func TestWalkFirstParentTopological_EmptyHistory(t *testing.T) {
	repoDir := t.TempDir()
	raw, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	_, err = raw.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	repo, err := Open(repoDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	it, err := repo.WalkFirstParentTopological(context.Background(), "")
	if err != nil {
		t.Fatalf("WalkFirstParentTopological on an empty history should not error: %v", err)
	}
	if _, ok, err := it.Next(); ok || err != nil {
		t.Fatalf("Next() on an empty history = (_, %v, %v), want (_, false, nil)", ok, err)
	}
}

func TestFindRoot(t *testing.T) {
	repoDir := t.TempDir()
	if _, err := git.PlainInit(repoDir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	nested := filepath.Join(repoDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	root, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	resolvedRepoDir, err := filepath.EvalSymlinks(repoDir)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	if resolvedRoot != resolvedRepoDir {
		t.Errorf("FindRoot(%q) = %q, want %q", nested, resolvedRoot, resolvedRepoDir)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindRoot(dir); err == nil {
		t.Errorf("expected an error for a directory with no repository root")
	}
}
