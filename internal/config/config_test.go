package config

import (
	"os"
	"path/filepath"
	"testing"

	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/conventional"
)

func TestLoad_MissingFileIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()

	ruleMap, err := Load("", dir)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(ruleMap) != 0 {
		t.Errorf("Load() = %v, want empty RuleMap", ruleMap)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	contents := "[semrel.rules]\nfeat = \"major\"\nchore = \"none\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ruleMap, err := Load(path, dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ruleMap.Lookup(conventional.Feat); got != change.BumpMajor {
		t.Errorf("Lookup(Feat) = %v, want Major", got)
	}
	if got := ruleMap.Lookup(conventional.Chore); got != change.BumpNone {
		t.Errorf("Lookup(Chore) = %v, want None", got)
	}
}

func TestLoad_AscendingDotfile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	contents := "[semrel.rules]\ndocs = \"patch\"\n"
	if err := os.WriteFile(filepath.Join(root, ".semrel.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ruleMap, err := Load("", nested)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ruleMap.Lookup(conventional.Docs); got != change.BumpPatch {
		t.Errorf("Lookup(Docs) = %v, want Patch", got)
	}
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml [["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path, dir); err == nil {
		t.Error("Load() error = nil, want a parse error for malformed TOML")
	}
}
