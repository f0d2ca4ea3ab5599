package rules

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/conventional"
	"semrel.dev/semrel/internal/semrelerr"
)

// ParseRuleStrings parses one or more comma-separated "category=bump"
// rule strings (as supplied via repeated CLI flags or a config-file
// list) into a RuleMap preserving the order the rules were written in,
// which is also their lookup precedence. A malformed entry anywhere in
// the input fails the whole parse; all malformed entries are collected
// and returned together via multierr rather than stopping at the first.
func ParseRuleStrings(args []string) (RuleMap, error) {
	var out RuleMap
	var errs error

	for _, arg := range args {
		for _, entry := range strings.Split(arg, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			rule, err := parseRule(entry)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			out = append(out, rule)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func parseRule(entry string) (Rule, error) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) != 2 {
		return Rule{}, &semrelerr.ParseError{Type: "Rule", Value: entry}
	}

	categoryToken := strings.TrimSpace(parts[0])
	bumpToken := strings.TrimSpace(parts[1])
	if categoryToken == "" || bumpToken == "" {
		return Rule{}, &semrelerr.ParseError{Type: "Rule", Value: entry}
	}

	bump, err := change.ParseBump(bumpToken)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid bump rule for %s: %w", categoryToken, err)
	}

	return Rule{Category: conventional.ParseCategory(categoryToken), Bump: bump}, nil
}
