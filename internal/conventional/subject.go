package conventional

import (
	"encoding/json"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

const (
	// SubjectMinLen is the minimum rune length of a non-empty Subject.
	SubjectMinLen = 1

	// SubjectMaxLen is the maximum rune length of a Subject, chosen so a
	// header line stays readable in an 80-column terminal alongside a
	// type/scope prefix and a short hash.
	SubjectMaxLen = 72
)

// Subject is the short, single-line summary following the header's
// "type(scope): " prefix. The zero value (empty string) is a valid Go
// value but means "no subject given" — a non-compliant header.
type Subject string

// ParseSubject trims s and validates the result. Case is preserved;
// unlike Scope, a subject is free-form human text.
func ParseSubject(s string) (Subject, error) {
	subj := Subject(strings.TrimSpace(s))
	if err := subj.Validate(); err != nil {
		return "", err
	}
	return subj, nil
}

func (s Subject) String() string   { return string(s) }
func (s Subject) Redacted() string { return s.String() }
func (s Subject) TypeName() string { return "Subject" }
func (s Subject) IsZero() bool     { return s == "" }
func (s Subject) Equal(other Subject) bool { return s == other }

// Validate rejects newlines, out-of-range length, and whitespace-only
// content. The empty subject always validates.
func (s Subject) Validate() error {
	if s.IsZero() {
		return nil
	}

	str := string(s)
	if strings.ContainsAny(str, "\n\r") {
		return &semrelerr.ValidationError{Type: "Subject", Reason: "contains newline characters", Value: str}
	}

	n := len([]rune(str))
	if n < SubjectMinLen {
		return &semrelerr.ValidationError{Type: "Subject", Reason: "too short", Value: str}
	}
	if n > SubjectMaxLen {
		return &semrelerr.ValidationError{Type: "Subject", Reason: "too long", Value: str}
	}

	hasText := false
	for _, r := range str {
		if !unicode.IsSpace(r) {
			hasText = true
			break
		}
	}
	if !hasText {
		return &semrelerr.ValidationError{Type: "Subject", Reason: "contains only whitespace", Value: str}
	}

	return nil
}

func (s Subject) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(string(s))
}

func (s *Subject) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Subject", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseSubject(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Subject) MarshalYAML() (interface{}, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *Subject) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Subject", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseSubject(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Compile-time check that Subject implements model.Model.
var _ model.Model = (*Subject)(nil)
