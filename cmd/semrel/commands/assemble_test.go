package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"semrel.dev/semrel/internal/semrellog"
)

var testLogger = semrellog.New("error", io.Discard)

func writeAndCommit(t *testing.T, dir, relPath, content, message string) {
	t.Helper()
	abs := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := gogit.PlainOpen(dir)
	if err != nil {
		raw, err = gogit.PlainInit(dir, false)
		if err != nil {
			t.Fatalf("PlainInit: %v", err)
		}
	}
	wt, err := raw.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add(relPath); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()}
	if _, err := wt.Commit(message, &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestAssemble_ComposesRulesAndReadsManifest(t *testing.T) {
	dir := t.TempDir()
	writeAndCommit(t, dir, "Cargo.toml", "[package]\nname = \"test\"\nversion = \"0.1.0\"\n", "chore: init")

	flags := cmdFlags{projectPath: dir, ruleStrings: []string{"chore=minor"}, logger: testLogger}
	p, err := assemble(flags)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if got := p.current.String(); got != "0.1.0" {
		t.Errorf("current = %q, want %q", got, "0.1.0")
	}
	if p.manifestPath == "" {
		t.Error("manifestPath is empty")
	}
	// The CLI rule must shadow the default (chore -> patch).
	found := false
	for _, r := range p.ruleMap {
		if r.Category.String() == "chore" {
			found = true
			if r.Bump.String() != "minor" {
				t.Errorf("chore rule = %s, want minor (CLI override)", r.Bump.String())
			}
			break
		}
	}
	if !found {
		t.Fatal("no chore rule found in composed RuleMap")
	}
}

func TestAssemble_MissingManifestIsError(t *testing.T) {
	dir := t.TempDir()
	writeAndCommit(t, dir, "README.md", "hello\n", "chore: init")

	_, err := assemble(cmdFlags{projectPath: dir, logger: testLogger})
	if err == nil {
		t.Fatal("assemble() error = nil, want an error for a project with no supported manifest")
	}
}

func TestResolveNextVersion_ForcedBumpBypassesHistory(t *testing.T) {
	dir := t.TempDir()
	writeAndCommit(t, dir, "Cargo.toml", "[package]\nname = \"test\"\nversion = \"1.2.3\"\n", "chore: init")

	flags := cmdFlags{projectPath: dir, forcedBump: "major", logger: testLogger}
	p, err := assemble(flags)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	rootCmd.SetArgs(nil)
	next, err := resolveNextVersion(rootCmd, p, flags)
	if err != nil {
		t.Fatalf("resolveNextVersion: %v", err)
	}
	if got := next.String(); got != "2.0.0" {
		t.Errorf("resolveNextVersion() = %q, want %q", got, "2.0.0")
	}
}

func TestReleaseCommitMessage(t *testing.T) {
	got := releaseCommitMessage("1.2.3")
	want := "semrel(release): 1.2.3"
	if got != want {
		t.Errorf("releaseCommitMessage() = %q, want %q", got, want)
	}
}

func TestConfigLocation_MissingIsNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, found := configLocation(cmdFlags{projectPath: dir, logger: testLogger}); found {
		t.Error("configLocation() found = true, want false for an empty directory")
	}
}
