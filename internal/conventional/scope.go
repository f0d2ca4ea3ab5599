package conventional

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

// scopeFmt is the canonical pattern for a Conventional Commits scope
// identifier: lowercase alphanumeric, optionally with dots, underscores,
// slashes, or hyphens in the interior, never leading or trailing
// punctuation. Input MUST already be trimmed and lowercased before being
// checked against this pattern.
const scopeFmt = `^[a-z0-9]([a-z0-9._/-]*[a-z0-9])?$`

const (
	// ScopeMinLen is the minimum length, in code points, of a non-empty
	// Scope.
	ScopeMinLen = 1

	// ScopeMaxLen is the maximum length, in code points, of a Scope. This
	// is not mandated by Conventional Commits; it keeps scopes readable in
	// changelog headings.
	ScopeMaxLen = 32
)

// ScopeRegexp is the compiled form of scopeFmt, safe for concurrent use.
var ScopeRegexp = regexp.MustCompile(scopeFmt)

// Scope is the optional parenthesized qualifier in a commit header, e.g.
// "api" in "fix(api): tidy". The zero value (empty string) is valid and
// means no scope was given.
//
// Scope alone cannot reject a scope that textually equals a standard
// category name (spec.md's ScopeIsCategory rule) because Scope has no
// knowledge of Category; that cross-check lives in ParsedCommit's parser,
// the one place both values are available together.
type Scope string

// String returns the scope identifier verbatim.
func (s Scope) String() string { return string(s) }

// Redacted returns the same representation as String; scopes are public
// commit metadata.
func (s Scope) Redacted() string { return s.String() }

// TypeName returns "Scope".
func (s Scope) TypeName() string { return "Scope" }

// IsZero reports whether s is the empty scope.
func (s Scope) IsZero() bool { return s == "" }

// Validate checks length, whitespace, and ScopeRegexp conformance. The
// empty scope always validates.
func (s Scope) Validate() error {
	if s.IsZero() {
		return nil
	}

	str := string(s)

	if len(str) < ScopeMinLen {
		return &semrelerr.ValidationError{Type: "Scope", Reason: "too short", Value: str}
	}
	if len(str) > ScopeMaxLen {
		return &semrelerr.ValidationError{Type: "Scope", Reason: "too long", Value: str}
	}
	if strings.ContainsAny(str, " \t\n\r") {
		return &semrelerr.ValidationError{Type: "Scope", Reason: "contains whitespace", Value: str}
	}
	if !ScopeRegexp.MatchString(str) {
		return &semrelerr.ValidationError{Type: "Scope", Reason: "does not match required format", Value: str}
	}

	return nil
}

func (s Scope) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(string(s))
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Scope", Data: data, Reason: err.Error()}
	}

	parsed, err := ParseScope(str)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

func (s Scope) MarshalYAML() (interface{}, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *Scope) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Scope", Data: []byte(node.Value), Reason: err.Error()}
	}

	parsed, err := ParseScope(str)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// ParseScope trims and lowercases s, then validates the result. The empty
// string parses successfully to the zero-value Scope.
func ParseScope(s string) (Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	scope := Scope(normalized)
	if err := scope.Validate(); err != nil {
		return "", err
	}

	return scope, nil
}

// Compile-time check that Scope implements model.Model.
var _ model.Model = (*Scope)(nil)
