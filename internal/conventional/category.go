package conventional

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

// categoryKind is the closed tag of a Category. It is unexported: callers
// MUST construct Categories through the exported variables and the Custom
// constructor below, never by converting an arbitrary integer.
type categoryKind uint8

const (
	// categoryUnknown is deliberately the zero value, so that Category{}
	// is the Unknown sentinel.
	categoryUnknown categoryKind = iota
	categoryBuild
	categoryChore
	categoryCI
	categoryCd
	categoryDocs
	categoryFeat
	categoryFix
	categoryPerf
	categoryRefactor
	categoryRevert
	categoryStyle
	categoryTest
	categoryCustom
	categoryNonCompliant
)

// Category is a closed tagged sum describing the nature of a parsed
// commit. It extends the Conventional Commits type vocabulary with a
// Custom(text) arm for unrecognized-but-well-formed tokens, and with
// NonCompliant/Unknown sentinels used by the parser's fallback paths.
//
// Category is deliberately not an open enum: there is no way to construct
// a Category outside of the package's exported constructors, so switch
// statements over categoryKind inside this package can be exhaustive.
// Custom(x) is distinct from every standard category even when x matches
// one textually — "Feat" and Custom("Feat") are different categories,
// since Custom preserves the exact token the parser saw instead of
// normalizing it.
type Category struct {
	kind categoryKind
	text string // meaningful only when kind == categoryCustom
}

// Standard category values, in the declared order used for release-note
// grouping (spec: "ordering among categories is by declared category
// variant order (load-bearing)").
var (
	Build    = Category{kind: categoryBuild}
	Chore    = Category{kind: categoryChore}
	Ci       = Category{kind: categoryCI}
	Cd       = Category{kind: categoryCd}
	Docs     = Category{kind: categoryDocs}
	Feat     = Category{kind: categoryFeat}
	Fix      = Category{kind: categoryFix}
	Perf     = Category{kind: categoryPerf}
	Refactor = Category{kind: categoryRefactor}
	Revert   = Category{kind: categoryRevert}
	Style    = Category{kind: categoryStyle}
	Test     = Category{kind: categoryTest}

	// NonCompliant is the category assigned to a message whose header does
	// not match the grammar at all.
	NonCompliant = Category{kind: categoryNonCompliant}

	// Unknown is a sentinel category used only for zero-value detection;
	// it is never produced by Parse or ParseStrict.
	Unknown = Category{kind: categoryUnknown}
)

// standardOrder lists the standard categories in their declared order.
// This slice is the single source of truth for release-note grouping
// order (spec §4.7 item 5) and is never reordered by reflection or map
// iteration.
var standardOrder = []Category{Build, Chore, Ci, Cd, Docs, Feat, Fix, Perf, Refactor, Revert, Style, Test}

// Custom returns the Category for a well-formed but non-standard category
// token, preserving the verbatim text the parser read.
func Custom(text string) Category {
	return Category{kind: categoryCustom, text: text}
}

// standardByName maps a lowercased standard category name to its Category
// value and canonical string form.
var standardByName = map[string]Category{
	"build":    Build,
	"chore":    Chore,
	"ci":       Ci,
	"cd":       Cd,
	"docs":     Docs,
	"feat":     Feat,
	"fix":      Fix,
	"perf":     Perf,
	"refactor": Refactor,
	"revert":   Revert,
	"style":    Style,
	"test":     Test,
}

// ParseCategory converts a header category token into a Category. If the
// lowercased token matches a standard category name, that variant is
// returned; otherwise the verbatim token is wrapped in Custom. This
// function never fails — it is the non-strict, "default" behavior spec.md
// §4.1 describes for the streaming parser.
func ParseCategory(token string) Category {
	if c, ok := standardByName[strings.ToLower(token)]; ok {
		return c
	}
	return Custom(token)
}

// ParseCategoryStrict behaves like ParseCategory but returns
// UnknownCategoryError instead of falling back to Custom when the token
// does not match a standard category name. Only callers that explicitly
// request strict parsing (spec.md §4.1 "Errors") should use this.
func ParseCategoryStrict(token string) (Category, error) {
	if c, ok := standardByName[strings.ToLower(token)]; ok {
		return c, nil
	}
	return Category{}, &UnknownCategoryError{Text: token}
}

// IsStandard reports whether c is one of the twelve standard categories
// (as opposed to Custom, NonCompliant, or Unknown).
func (c Category) IsStandard() bool {
	switch c.kind {
	case categoryBuild, categoryChore, categoryCI, categoryCd, categoryDocs,
		categoryFeat, categoryFix, categoryPerf, categoryRefactor, categoryRevert,
		categoryStyle, categoryTest:
		return true
	default:
		return false
	}
}

// IsCustom reports whether c carries a Custom(text) payload.
func (c Category) IsCustom() bool { return c.kind == categoryCustom }

// String returns the canonical textual form: the lowercase standard name,
// the verbatim Custom text, "noncompliant", or "unknown".
func (c Category) String() string {
	switch c.kind {
	case categoryBuild:
		return "build"
	case categoryChore:
		return "chore"
	case categoryCI:
		return "ci"
	case categoryCd:
		return "cd"
	case categoryDocs:
		return "docs"
	case categoryFeat:
		return "feat"
	case categoryFix:
		return "fix"
	case categoryPerf:
		return "perf"
	case categoryRefactor:
		return "refactor"
	case categoryRevert:
		return "revert"
	case categoryStyle:
		return "style"
	case categoryTest:
		return "test"
	case categoryCustom:
		return c.text
	case categoryNonCompliant:
		return "noncompliant"
	default:
		return "unknown"
	}
}

// ReleaseLabel returns the human-readable release-note section heading for
// c, per spec.md §4.7 item 4. Custom(x) labels itself as x.
func (c Category) ReleaseLabel() string {
	switch c.kind {
	case categoryFeat:
		return "Features"
	case categoryFix:
		return "Fixes"
	case categoryPerf:
		return "Performance"
	case categoryRefactor:
		return "Refactoring"
	case categoryRevert:
		return "Reverts"
	case categoryStyle:
		return "Style"
	case categoryTest:
		return "Tests"
	case categoryBuild:
		return "Build"
	case categoryCI:
		return "Continuous Integration"
	case categoryCd:
		return "Deployment"
	case categoryDocs:
		return "Documentation"
	case categoryChore:
		return "Chores"
	case categoryCustom:
		return c.text
	case categoryNonCompliant:
		return "Other Changes"
	default:
		return "Unknown"
	}
}

// Order returns c's rank among the declared category order, used to sort
// release-note sections. Custom and NonCompliant sort after every standard
// category; Unknown sorts last of all.
func (c Category) Order() int {
	for i, s := range standardOrder {
		if s.kind == c.kind {
			return i
		}
	}
	if c.kind == categoryCustom {
		return len(standardOrder)
	}
	if c.kind == categoryNonCompliant {
		return len(standardOrder) + 1
	}
	return len(standardOrder) + 2
}

// HasReservedPrefix reports whether c's textual form begins with the
// reserved "semrel" prefix used by self-generated release commits, which
// the aggregator omits from release notes (spec.md §4.7 item 6).
func (c Category) HasReservedPrefix() bool {
	return strings.HasPrefix(c.String(), "semrel")
}

// TypeName returns "Category".
func (c Category) TypeName() string { return "Category" }

// Redacted returns the same representation as String; categories carry no
// sensitive data.
func (c Category) Redacted() string { return c.String() }

// IsZero reports whether c is the Unknown sentinel, Category's zero
// value.
func (c Category) IsZero() bool { return c.kind == categoryUnknown && c.text == "" }

// Equal reports whether other is a Category equal to c. Custom(a) equals
// Custom(b) iff a == b; any standard category is never equal to Custom
// even if the text matches, per spec.md §3.
func (c Category) Equal(other any) bool {
	switch v := other.(type) {
	case Category:
		if c.kind != v.kind {
			return false
		}
		if c.kind == categoryCustom {
			return c.text == v.text
		}
		return true
	case *Category:
		return v != nil && c.Equal(*v)
	default:
		return false
	}
}

// Validate reports an error if c is the Unknown sentinel or a Custom
// category with empty text.
func (c Category) Validate() error {
	if c.kind == categoryUnknown {
		return &semrelerr.ValidationError{Type: "Category", Reason: "category is unset"}
	}
	if c.kind == categoryCustom && c.text == "" {
		return &semrelerr.ValidationError{Type: "Category", Field: "text", Reason: "custom category text must not be empty"}
	}
	return nil
}

// MarshalJSON encodes c as its wire representation, the String form: a
// standard name, "noncompliant", or any other token (interpreted as Custom
// on decode).
func (c Category) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &semrelerr.UnmarshalError{Type: "Category", Data: data, Reason: err.Error()}
	}
	*c = categoryFromWire(s)
	return nil
}

func (c Category) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.String(), nil
}

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &semrelerr.UnmarshalError{Type: "Category", Data: []byte(node.Value), Reason: err.Error()}
	}
	*c = categoryFromWire(s)
	return nil
}

func categoryFromWire(s string) Category {
	switch strings.ToLower(s) {
	case "noncompliant":
		return NonCompliant
	case "unknown":
		return Unknown
	default:
		return ParseCategory(s)
	}
}

// Compile-time check that Category implements model.Model.
var _ model.Model = (*Category)(nil)
