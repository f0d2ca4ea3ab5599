// Package rules implements the bump-rule map: the ordered (category,
// bump) table that per-commit resolution consults to turn a commit's
// category into a BumpKind, and the composition of CLI, config-file, and
// built-in rule sources into one map.
package rules

import (
	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/conventional"
)

// Rule pairs a Category with the BumpKind it resolves to.
type Rule struct {
	Category conventional.Category
	Bump     change.BumpKind
}

// RuleMap is an ordered sequence of Rules. Lookup scans front-to-back;
// the first Rule whose Category equals the query wins. An empty RuleMap
// (or one with no matching entry) resolves every query to BumpNotSet.
type RuleMap []Rule

// Lookup returns the BumpKind for category under m, or BumpNotSet if no
// rule matches.
func (m RuleMap) Lookup(category conventional.Category) change.BumpKind {
	for _, r := range m {
		if r.Category.Equal(category) {
			return r.Bump
		}
	}
	return change.BumpNotSet
}

// Compose concatenates rule sources in decreasing precedence: cli rules
// are tried first, then config-file rules, then defaults. Because
// Lookup is first-match-wins, an earlier source's entry for a category
// shadows a later source's entry for the same category without either
// source needing to know about the other.
func Compose(cli, config, defaults RuleMap) RuleMap {
	composed := make(RuleMap, 0, len(cli)+len(config)+len(defaults))
	composed = append(composed, cli...)
	composed = append(composed, config...)
	composed = append(composed, defaults...)
	return composed
}

// DefaultRules is the built-in RuleMap consulted when neither CLI flags
// nor a configuration file supply an override.
var DefaultRules = RuleMap{
	{conventional.Feat, change.BumpMinor},
	{conventional.Fix, change.BumpPatch},
	{conventional.Perf, change.BumpPatch},
	{conventional.Refactor, change.BumpPatch},
	{conventional.Revert, change.BumpPatch},
	{conventional.Style, change.BumpPatch},
	{conventional.Chore, change.BumpPatch},
	{conventional.Build, change.BumpNone},
	{conventional.Ci, change.BumpNone},
	{conventional.Cd, change.BumpNone},
	{conventional.Docs, change.BumpNone},
	{conventional.Test, change.BumpNone},
}
