package manifest

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/semver"
)

// tomlManifest reads and writes the version field of a Cargo.toml or
// pyproject.toml document. go-toml/v2 (unlike v1) exposes no mutable,
// comment-preserving document tree, so writes are done as a targeted
// line replacement of the version key rather than a full decode/re-encode
// round trip: this is what actually preserves comments, key order, and
// surrounding whitespace, the property spec's format-preservation
// requirement is about.
type tomlManifest struct{}

// versionLinePattern matches a top-level "version = "X.Y.Z"" assignment
// line, capturing the quoted version string and any trailing comment. It
// intentionally does not anchor to a specific table ([package] vs
// [project]) because Cargo.toml and pyproject.toml each have exactly one
// top-level version key.
var versionLinePattern = regexp.MustCompile(`(?m)^(\s*version\s*=\s*)"([^"]*)"([ \t]*(?:#.*)?)$`)

type tomlDocument struct {
	Package *struct {
		Version string `toml:"version"`
	} `toml:"package"`
	Project *struct {
		Version string `toml:"version"`
	} `toml:"project"`
}

func parseTOMLVersion(data []byte) (semver.Version, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return semver.Version{}, fmt.Errorf("manifest: parse TOML: %w", err)
	}

	var raw string
	switch {
	case doc.Package != nil && doc.Package.Version != "":
		raw = doc.Package.Version
	case doc.Project != nil && doc.Project.Version != "":
		raw = doc.Project.Version
	default:
		return semver.Version{}, fmt.Errorf("manifest: no version field in [package] or [project] table")
	}

	v, err := semver.ParseVersion(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("manifest: %w", err)
	}
	return v, nil
}

func (tomlManifest) ReadCurrent(projectPath string) (semver.Version, string, error) {
	_, path, err := Detect(projectPath)
	if err != nil {
		return semver.Version{}, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return semver.Version{}, "", fmt.Errorf("manifest: read %q: %w", path, err)
	}
	v, err := parseTOMLVersion(data)
	return v, path, err
}

func (tomlManifest) ReadAt(repo *gitrepo.Repository, commit gitrepo.CommitID, manifestRelativePath string) (semver.Version, error) {
	data, err := repo.ReadBlobAt(commit, manifestRelativePath)
	if err != nil {
		return semver.Version{}, err
	}
	return parseTOMLVersion(data)
}

func (tomlManifest) WriteVersion(path string, v semver.Version) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manifest: read %q: %w", path, err)
	}

	if !versionLinePattern.Match(data) {
		return fmt.Errorf("manifest: no version assignment found in %q", path)
	}
	replaced := versionLinePattern.ReplaceAll(data, []byte(`${1}"`+v.String()+`"${3}`))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("manifest: stat %q: %w", path, err)
	}
	if err := os.WriteFile(path, replaced, info.Mode()); err != nil {
		return fmt.Errorf("manifest: write %q: %w", path, err)
	}
	return nil
}
