// Package release formats a changelog.Changelog into the Markdown
// release-notes document described in spec §4.7: commits grouped by
// category release-label, then by scope as a subheading.
package release

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"semrel.dev/semrel/internal/changelog"
	"semrel.dev/semrel/internal/conventional"
	"semrel.dev/semrel/internal/rules"
)

// scopeGroup is every commit sharing one (category, scope) pair, in
// newest-first order (the order Changelog.Commits is already in).
type scopeGroup struct {
	scope   string
	commits []changelog.CommitRecord
}

// categoryGroup is every commit under one category, partitioned by scope.
type categoryGroup struct {
	category conventional.Category
	scopes   []scopeGroup
}

// groupByCategory partitions commits by category then by scope, dropping
// commits whose category carries the reserved "semrel" prefix (spec §4.7
// item 6), and sorts categories by declared order and scopes
// lexicographically, per spec §4.7 item 5.
func groupByCategory(commits []changelog.CommitRecord) []categoryGroup {
	byCategory := make(map[string]*categoryGroup)
	var order []string

	for _, c := range commits {
		cat := c.Parsed.Category
		if cat.HasReservedPrefix() {
			continue
		}
		key := cat.String()
		g, ok := byCategory[key]
		if !ok {
			g = &categoryGroup{category: cat}
			byCategory[key] = g
			order = append(order, key)
		}

		scope := c.Parsed.Scope.String()
		var sg *scopeGroup
		for i := range g.scopes {
			if g.scopes[i].scope == scope {
				sg = &g.scopes[i]
				break
			}
		}
		if sg == nil {
			g.scopes = append(g.scopes, scopeGroup{scope: scope})
			sg = &g.scopes[len(g.scopes)-1]
		}
		sg.commits = append(sg.commits, c)
	}

	groups := make([]categoryGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byCategory[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].category.Order() < groups[j].category.Order()
	})
	for i := range groups {
		sort.SliceStable(groups[i].scopes, func(a, b int) bool {
			return groups[i].scopes[a].scope < groups[i].scopes[b].scope
		})
	}
	return groups
}

// Render produces the Markdown release-notes document for cl, dated as,
// against ruleMap (used only to compute the next version heading).
func Render(cl changelog.Changelog, ruleMap rules.RuleMap, as time.Time) string {
	next := cl.NextVersion(ruleMap)

	var b strings.Builder
	fmt.Fprintf(&b, "# Release notes: %s (%s)\n", next.String(), as.Format("2006-01-02"))

	for _, g := range groupByCategory(cl.Commits) {
		fmt.Fprintf(&b, "\n## %s\n", g.category.ReleaseLabel())
		for _, sg := range g.scopes {
			if sg.scope != "" {
				fmt.Fprintf(&b, "\n### %s\n", sg.scope)
			} else {
				b.WriteString("\n")
			}
			for _, c := range sg.commits {
				fmt.Fprintf(&b, "- %s\n", c.Parsed.Subject.String())
			}
		}
	}

	return b.String()
}
