package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/semver"
)

// jsonManifest reads and writes the version field of a package.json
// document. Like tomlManifest, writes are a targeted regex replacement of
// the "version" field rather than a decode/re-encode round trip, since a
// generic unmarshal into map[string]any loses key order and a struct-based
// remarshal would drop every field semrel doesn't know about.
type jsonManifest struct{}

var jsonVersionPattern = regexp.MustCompile(`("version"\s*:\s*)"([^"]*)"`)

type jsonDocument struct {
	Version string `json:"version"`
}

func parseJSONVersion(data []byte) (semver.Version, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return semver.Version{}, fmt.Errorf("manifest: parse JSON: %w", err)
	}
	if doc.Version == "" {
		return semver.Version{}, fmt.Errorf("manifest: no \"version\" field in package.json")
	}
	v, err := semver.ParseVersion(doc.Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("manifest: %w", err)
	}
	return v, nil
}

func (jsonManifest) ReadCurrent(projectPath string) (semver.Version, string, error) {
	_, path, err := Detect(projectPath)
	if err != nil {
		return semver.Version{}, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return semver.Version{}, "", fmt.Errorf("manifest: read %q: %w", path, err)
	}
	v, err := parseJSONVersion(data)
	return v, path, err
}

func (jsonManifest) ReadAt(repo *gitrepo.Repository, commit gitrepo.CommitID, manifestRelativePath string) (semver.Version, error) {
	data, err := repo.ReadBlobAt(commit, manifestRelativePath)
	if err != nil {
		return semver.Version{}, err
	}
	return parseJSONVersion(data)
}

func (jsonManifest) WriteVersion(path string, v semver.Version) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manifest: read %q: %w", path, err)
	}

	if !jsonVersionPattern.Match(data) {
		return fmt.Errorf("manifest: no \"version\" field found in %q", path)
	}
	replaced := jsonVersionPattern.ReplaceAll(data, []byte(`${1}"`+v.String()+`"`))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("manifest: stat %q: %w", path, err)
	}
	if err := os.WriteFile(path, replaced, info.Mode()); err != nil {
		return fmt.Errorf("manifest: write %q: %w", path, err)
	}
	return nil
}
