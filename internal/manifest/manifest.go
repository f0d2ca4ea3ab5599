// Package manifest reads and writes the project version recorded in a
// package manifest: Cargo.toml and pyproject.toml (TOML) or package.json
// (JSON). semrel consults a manifest twice: once for the current version
// anchoring a changelog walk, and once per historical commit that touches
// the manifest, to classify version boundaries in history.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/semver"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Reader reads the version recorded in a manifest, either from the
// working tree or from a historical commit's blob.
type Reader interface {
	// ReadCurrent reads the version from the manifest on disk under
	// projectPath, returning the parsed version and the absolute path
	// of the manifest file that was read.
	ReadCurrent(projectPath string) (semver.Version, string, error)
	// ReadAt reads the version from the manifest as it existed at
	// commit, identified by its path relative to the repository root.
	ReadAt(repo *gitrepo.Repository, commit gitrepo.CommitID, manifestRelativePath string) (semver.Version, error)
}

// Writer writes a new version into a manifest file on disk, preserving
// everything about the file's formatting except the version field.
type Writer interface {
	WriteVersion(path string, v semver.Version) error
}

// ReaderWriter is a manifest implementation bundling both capabilities,
// which is what Detect returns.
type ReaderWriter interface {
	Reader
	Writer
}

// knownManifestFilenames maps a manifest's base filename to the
// implementation that handles it. Order is irrelevant; lookup is by exact
// filename.
var knownManifestFilenames = map[string]func() ReaderWriter{
	"Cargo.toml":     func() ReaderWriter { return tomlManifest{} },
	"pyproject.toml": func() ReaderWriter { return tomlManifest{} },
	"package.json":   func() ReaderWriter { return jsonManifest{} },
}

// Detect finds the manifest file directly under projectPath and returns
// the ReaderWriter implementation appropriate for it, along with the
// manifest's absolute path. It returns an error if none of the known
// manifest filenames exist under projectPath.
func Detect(projectPath string) (ReaderWriter, string, error) {
	dir, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, "", fmt.Errorf("manifest: resolve %q: %w", projectPath, err)
	}
	for name, ctor := range knownManifestFilenames {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return ctor(), candidate, nil
		}
	}
	return nil, "", fmt.Errorf("manifest: no supported manifest file found under %q", projectPath)
}
