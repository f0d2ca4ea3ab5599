// Package config locates and loads the rules file consulted when
// composing the RuleMap that governs bump resolution (spec §6.1's
// "Configuration collaborator"): an explicit path, the nearest
// ".semrel.toml" found ascending from the project directory, the user's
// XDG config directory, or "/etc/semrel/config.toml" — in that order. A
// missing file at every candidate is not an error; a malformed file at
// whichever candidate is actually found is.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"semrel.dev/semrel/internal/rules"
)

// searchPath resolves the ordered list of candidate config file paths, per
// spec §6.1: explicit path (if given) first, then ".semrel.toml" ascending
// from dir toward the filesystem root, then the XDG config directory, then
// the system-wide fallback.
func searchPath(explicit, dir string) []string {
	var candidates []string
	if explicit != "" {
		candidates = append(candidates, explicit)
	}
	candidates = append(candidates, ascendingDotfiles(dir)...)
	if xdg, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(xdg, "semrel", "config.toml"))
	}
	candidates = append(candidates, "/etc/semrel/config.toml")
	return candidates
}

// ascendingDotfiles lists ".semrel.toml" at dir and every ancestor, nearest
// first, up to and including the filesystem root.
func ascendingDotfiles(dir string) []string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	var out []string
	for {
		out = append(out, filepath.Join(abs, ".semrel.toml"))
		parent := filepath.Dir(abs)
		if parent == abs {
			return out
		}
		abs = parent
	}
}

// Load resolves the rules file for a project rooted at dir, using
// explicitPath if non-empty as the first and only candidate tried before
// falling through to the ascent/XDG/system search. It returns an empty
// RuleMap, not an error, when no candidate file exists; it returns an
// error as soon as a candidate that does exist fails to parse as TOML or
// fails rule validation — the first file found on disk is the one that
// must be well-formed, later candidates are never consulted once one is
// found.
func Load(explicitPath, dir string) (rules.RuleMap, error) {
	path, found := Locate(explicitPath, dir)
	if !found {
		return rules.RuleMap{}, nil
	}
	return loadFile(path)
}

// Locate runs the same search spec §6.1 describes without reading the
// file, returning the first candidate path that exists on disk. It is
// used by the "show config"/"config edit" CLI surface to report or open
// the file Load would have consulted.
func Locate(explicitPath, dir string) (path string, found bool) {
	for _, candidate := range searchPath(explicitPath, dir) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// configDocument mirrors the TOML shape spec §6.2 defines: a single
// "[semrel.rules]" table mapping category name to bump name.
type configDocument struct {
	Semrel struct {
		Rules map[string]string `mapstructure:"rules"`
	} `mapstructure:"semrel"`
}

func loadFile(path string) (rules.RuleMap, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var doc configDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return ruleMapFromTable(doc.Semrel.Rules, path)
}

// ruleMapFromTable converts the "[semrel.rules]" table into a RuleMap,
// sorting by category name for a deterministic, reproducible result
// (Lookup's first-match-wins semantics make intra-source order otherwise
// irrelevant, since a TOML table cannot repeat a key, but a stable
// iteration order still makes config-sourced rule sets diffable and
// testable).
func ruleMapFromTable(table map[string]string, path string) (rules.RuleMap, error) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(rules.RuleMap, 0, len(names))
	for _, name := range names {
		entry, err := rules.ParseRuleStrings([]string{name + "=" + table[name]})
		if err != nil {
			return nil, fmt.Errorf("config: %q: %w", path, err)
		}
		out = append(out, entry...)
	}
	return out, nil
}
