// Package changelog implements the central algorithm: walking a
// repository's first-parent history newest-first, resolving each commit's
// bump strength, watching for version boundaries recorded in the
// project's manifest, and deciding where the walk may stop.
package changelog

import (
	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/conventional"
	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/rules"
)

// CommitRecord is a commit that has been classified as a Conventional
// Commit, trimmed to exactly the attributes the changelog collector and
// release-note formatter need: an id, the paths it touched (restricted to
// the project subtree by the walker that produced it), its parsed
// message, and its commit timestamp. It intentionally omits the richer
// author/committer/full-diff attributes gitrepo.RawCommit could in
// principle carry — those live one layer down, in gitrepo, for callers
// that need them.
type CommitRecord struct {
	ID           gitrepo.CommitID
	TouchedPaths []string
	Parsed       conventional.ParsedCommit
	Timestamp    int64
}

// FromRawCommit classifies a gitrepo.RawCommit into a CommitRecord by
// parsing its message as a Conventional Commit. conventional.Parse falls
// back to NonCompliant/Custom categories, rather than failing, for a
// malformed header, an over-long subject or scope, or a self-referential
// scope — none of those abort the walk. The error return is only ever
// non-nil for conventional.EmptyMessageError, the one case Parse cannot
// paper over: a commit message with no content left after the git
// plumbing-header filter runs.
func FromRawCommit(raw gitrepo.RawCommit) (CommitRecord, error) {
	parsed, err := conventional.Parse(raw.Message)
	if err != nil {
		return CommitRecord{}, err
	}
	return CommitRecord{
		ID:           raw.ID,
		TouchedPaths: raw.TouchedPaths,
		Parsed:       parsed,
		Timestamp:    raw.Timestamp,
	}, nil
}

// touches reports whether the commit's touched-paths set includes path.
func (c CommitRecord) touches(path string) bool {
	for _, p := range c.TouchedPaths {
		if p == path {
			return true
		}
	}
	return false
}

// PerCommitBump resolves a single CommitRecord's bump strength: a
// breaking-change marker always forces Major, regardless of the rule
// map; otherwise the commit's category is looked up in ruleMap, with
// BumpNotSet as the fallback when nothing matches.
func PerCommitBump(c CommitRecord, ruleMap rules.RuleMap) change.BumpKind {
	if c.Parsed.Breaking {
		return change.BumpMajor
	}
	return ruleMap.Lookup(c.Parsed.Category)
}
