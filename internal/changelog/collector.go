package changelog

import (
	"context"
	"fmt"

	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/manifest"
	"semrel.dev/semrel/internal/rules"
	"semrel.dev/semrel/internal/semver"
)

// Changelog is the result of a collection run: the version it is anchored
// to (the project's current, pre-release version) and the commits that
// belong to the pending release.
type Changelog struct {
	Anchor  semver.Version
	Commits []CommitRecord
}

// NextVersion folds every collected commit's bump through change.Max and
// applies the result to the anchor, per spec: "V.bump(fold(commits,
// NotSet, (acc, c) -> max(acc, per-commit-bump(c, R))))".
func (cl Changelog) NextVersion(ruleMap rules.RuleMap) semver.Version {
	bump := change.BumpNotSet
	for _, c := range cl.Commits {
		bump = change.Max(bump, PerCommitBump(c, ruleMap))
	}
	return cl.Anchor.Bump(bump)
}

// versionBoundary asks the manifest collaborator for the version recorded
// in manifestRelativePath as of c, if and only if c touched that path. It
// returns ok=false, with no error, for commits that never touch the
// manifest — those have no version boundary by definition.
func versionBoundary(repo *gitrepo.Repository, reader manifest.Reader, manifestRelativePath string, c CommitRecord) (semver.Version, bool, error) {
	if !c.touches(manifestRelativePath) {
		return semver.Version{}, false, nil
	}
	v, err := reader.ReadAt(repo, c.ID, manifestRelativePath)
	if err != nil {
		return semver.Version{}, false, fmt.Errorf("changelog: manifest unreadable at commit %s: %w", c.ID.Short(), err)
	}
	return v, true, nil
}

// isAppropriateStop decides whether boundary w is the right granularity
// to stop at, given the strongest bump collected so far. A Major bump
// requires a prior major anchor (w.Minor == 0 && w.Patch == 0); a Minor
// bump requires a prior minor anchor (w.Patch == 0); anything Patch or
// weaker stops at any boundary at all.
func isAppropriateStop(maxBump change.BumpKind, w semver.Version) bool {
	switch maxBump {
	case change.BumpMajor:
		return w.Minor == 0 && w.Patch == 0
	case change.BumpMinor:
		return w.Patch == 0
	default:
		return true
	}
}

// Collect runs the streaming collection algorithm (spec's "central
// algorithm"): it pulls commits one at a time from it, stopping as soon
// as an appropriate version boundary is found, so that it never
// materializes more of the walker's history than the resulting changelog
// actually needs.
func Collect(
	ctx context.Context,
	it *gitrepo.CommitIterator,
	repo *gitrepo.Repository,
	reader manifest.Reader,
	manifestRelativePath string,
	current semver.Version,
	ruleMap rules.RuleMap,
) (Changelog, error) {
	var collected []CommitRecord
	maxBump := change.BumpNotSet

	for {
		if err := ctx.Err(); err != nil {
			return Changelog{}, err
		}

		raw, ok, err := it.Next()
		if err != nil {
			return Changelog{}, fmt.Errorf("changelog: walk aborted: %w", err)
		}
		if !ok {
			break
		}

		record, err := FromRawCommit(raw)
		if err != nil {
			return Changelog{}, fmt.Errorf("changelog: classify commit %s: %w", raw.ID.Short(), err)
		}

		maxBump = change.Max(maxBump, PerCommitBump(record, ruleMap))

		boundary, hasBoundary, err := versionBoundary(repo, reader, manifestRelativePath, record)
		if err != nil {
			return Changelog{}, err
		}
		if !hasBoundary {
			collected = append(collected, record)
			continue
		}

		if !boundary.Less(current) {
			// At or newer than the current version: still part of the
			// release under assembly.
			collected = append(collected, record)
			continue
		}

		if isAppropriateStop(maxBump, boundary) {
			break
		}
		collected = append(collected, record)
	}

	return Changelog{Anchor: current, Commits: collected}, nil
}
