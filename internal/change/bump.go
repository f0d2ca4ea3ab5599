// Package change defines BumpKind, the ordered category of semantic
// version increment strength that semrel derives from a commit's category
// and, ultimately, applies to a Version.
package change

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

// BumpKind is the ordered strength of a version increment.
//
// Unlike a plain "no change / patch / minor / major" enum, BumpKind
// distinguishes two flavors of "no numeric change": NotSet means no rule
// had an opinion about a commit's category, while NoBump means a rule
// explicitly said not to bump. Both fold to the same outcome under Max,
// but they are textually and programmatically distinct, which matters for
// diagnostics ("no rule matched 'docs'" versus "rule matched: none").
//
// The total order is NotSet < NoBump < Patch < Minor < Major. Ordering is
// load-bearing: the changelog collector combines per-commit bumps with
// Max, and the version-boundary classifier checks bump strength against
// boundary granularity. The order is written explicitly in bumpOrder, which
// Less and Max consult, rather than relied upon via declaration order, so that reordering the
// constants below cannot silently change comparison behavior elsewhere.
type BumpKind int

const (
	// BumpNotSet indicates that no rule expressed an opinion for a
	// commit's category. It is the lowest value in the total order.
	BumpNotSet BumpKind = iota

	// BumpNone indicates that a rule explicitly resolved to "no version
	// change" for a commit's category.
	BumpNone

	// BumpPatch indicates the Patch component should be incremented.
	BumpPatch

	// BumpMinor indicates the Minor component should be incremented and
	// Patch reset to zero.
	BumpMinor

	// BumpMajor indicates the Major component should be incremented and
	// Minor and Patch reset to zero.
	BumpMajor
)

// String constants for BumpKind, forming its stable external
// representation in configuration files, CLI flags, and JSON/YAML.
const (
	BumpNotSetStr = "notset"
	BumpNoneStr   = "none"
	BumpPatchStr  = "patch"
	BumpMinorStr  = "minor"
	BumpMajorStr  = "major"
)

// bumpOrder is the single source of truth for BumpKind's total order.
// Index position is rank; a higher index outranks a lower one.
var bumpOrder = []BumpKind{BumpNotSet, BumpNone, BumpPatch, BumpMinor, BumpMajor}

func rank(b BumpKind) int {
	for i, v := range bumpOrder {
		if v == b {
			return i
		}
	}
	return -1
}

// Less reports whether b has strictly lower precedence than other.
// Invalid values rank below every valid value.
func (b BumpKind) Less(other BumpKind) bool {
	return rank(b) < rank(other)
}

// Max returns whichever of a and b has the higher precedence. Max is
// associative and commutative, as required by spec: folding per-commit
// bumps with Max in any order and grouping yields the same result.
func Max(a, b BumpKind) BumpKind {
	if a.Less(b) {
		return b
	}
	return a
}

// ParseBump converts a textual representation into a BumpKind. Aliases
// beyond the canonical lowercase forms are accepted case-sensitively
// where they would otherwise conflict (M -> Major, m -> Minor).
func ParseBump(s string) (BumpKind, error) {
	switch s {
	case BumpNotSetStr, "NotSet", "NOTSET":
		return BumpNotSet, nil
	case BumpNoneStr, "None", "NONE", "-":
		return BumpNone, nil
	case BumpPatchStr, "Patch", "PATCH", "p", "+":
		return BumpPatch, nil
	case BumpMinorStr, "Minor", "MINOR", "m", "++":
		return BumpMinor, nil
	case BumpMajorStr, "Major", "MAJOR", "M", "+++":
		return BumpMajor, nil
	default:
		return BumpNotSet, &semrelerr.ParseError{Type: "BumpKind", Value: s}
	}
}

// String returns the canonical lowercase textual representation of b, or
// "unknown" if b is not one of the defined constants.
func (b BumpKind) String() string {
	switch b {
	case BumpNotSet:
		return BumpNotSetStr
	case BumpNone:
		return BumpNoneStr
	case BumpPatch:
		return BumpPatchStr
	case BumpMinor:
		return BumpMinorStr
	case BumpMajor:
		return BumpMajorStr
	default:
		return "unknown"
	}
}

// Valid reports whether b is one of the five defined constants.
func (b BumpKind) Valid() bool {
	return rank(b) >= 0
}

// TypeName returns "BumpKind".
func (b BumpKind) TypeName() string { return "BumpKind" }

// Redacted returns the same representation as String; bump kinds carry
// no sensitive information.
func (b BumpKind) Redacted() string { return b.String() }

// IsZero reports whether b is BumpNotSet, BumpKind's zero value.
func (b BumpKind) IsZero() bool { return b == BumpNotSet }

// Equal reports whether other is a BumpKind or *BumpKind equal to b.
func (b BumpKind) Equal(other any) bool {
	switch v := other.(type) {
	case BumpKind:
		return b == v
	case *BumpKind:
		return v != nil && b == *v
	default:
		return false
	}
}

// Validate reports an error if b is not one of the defined constants.
func (b BumpKind) Validate() error {
	if !b.Valid() {
		return &semrelerr.ValidationError{Type: "BumpKind", Reason: "invalid BumpKind value", Value: int(b)}
	}
	return nil
}

// MarshalJSON encodes b as its lowercase string form.
func (b BumpKind) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, &semrelerr.MarshalError{Type: "BumpKind", Value: int(b)}
	}
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON accepts either a string or a numeric JSON representation.
func (b *BumpKind) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &semrelerr.UnmarshalError{Type: "BumpKind", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &semrelerr.UnmarshalError{Type: "BumpKind", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseBump(s)
		if err != nil {
			return err
		}
		*b = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &semrelerr.UnmarshalError{Type: "BumpKind", Data: data, Reason: err.Error()}
	}
	*b = BumpKind(i)
	if !b.Valid() {
		return &semrelerr.UnmarshalError{Type: "BumpKind", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

// MarshalYAML encodes b as its lowercase string form.
func (b BumpKind) MarshalYAML() (any, error) {
	if !b.Valid() {
		return nil, &semrelerr.MarshalError{Type: "BumpKind", Value: int(b)}
	}
	return b.String(), nil
}

// UnmarshalYAML decodes a scalar string via ParseBump.
func (b *BumpKind) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &semrelerr.UnmarshalError{Type: "BumpKind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseBump(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for BumpKind.
func (b BumpKind) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, &semrelerr.MarshalError{Type: "BumpKind", Value: int(b)}
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for BumpKind.
func (b *BumpKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBump(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Compile-time check that BumpKind implements model.Model.
var _ model.Model = (*BumpKind)(nil)
