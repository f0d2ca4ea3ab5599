package conventional

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

const trailerKeyPattern = `^[A-Za-z][A-Za-z0-9-]*$`

const (
	TrailerKeyMinLen   = 1
	TrailerKeyMaxLen   = 64
	TrailerValueMaxLen = 256
)

// TrailerKeyRegexp matches a git interpret-trailers style key: an ASCII
// letter followed by letters, digits, or hyphens.
var TrailerKeyRegexp = regexp.MustCompile(trailerKeyPattern)

// Trailer is a single "Key: Value" footer line, used for attribution
// (Co-authored-by, Signed-off-by), issue references (Fixes, Closes,
// Refs), and the breaking-change markers BREAKING CHANGE / BREAKING-CHANGE.
type Trailer struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ParseTrailer splits s on its first colon into Key/Value and validates
// the result.
func ParseTrailer(s string) (Trailer, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return Trailer{}, &semrelerr.ParseError{Type: "Trailer", Value: s}
	}

	idx := strings.Index(normalized, ":")
	if idx == -1 {
		return Trailer{}, &semrelerr.ParseError{Type: "Trailer", Value: s}
	}

	key := strings.TrimSpace(normalized[:idx])
	value := ""
	if idx+1 < len(normalized) {
		value = strings.TrimSpace(normalized[idx+1:])
	}

	trailer := Trailer{Key: key, Value: value}
	if err := trailer.Validate(); err != nil {
		return Trailer{}, err
	}
	return trailer, nil
}

// String renders "Key: Value", or "Key:" when Value is empty.
func (t Trailer) String() string {
	if t.IsZero() {
		return ""
	}
	if t.Value == "" {
		return t.Key + ":"
	}
	return t.Key + ": " + t.Value
}

// Redacted returns only the key; trailer values often carry email
// addresses or other metadata not meant for verbatim log output.
func (t Trailer) Redacted() string { return t.Key }

func (t Trailer) TypeName() string { return "Trailer" }
func (t Trailer) IsZero() bool     { return t.Key == "" && t.Value == "" }
func (t Trailer) Equal(other Trailer) bool {
	return t.Key == other.Key && t.Value == other.Value
}

// IsBreakingChangeKey reports whether t's key (case-insensitively)
// signals a breaking change per Conventional Commits: "BREAKING CHANGE"
// or "BREAKING-CHANGE".
func (t Trailer) IsBreakingChangeKey() bool {
	key := strings.ToUpper(t.Key)
	return key == "BREAKING CHANGE" || key == "BREAKING-CHANGE"
}

// Validate rejects empty/over-long/malformed keys and over-long or
// multi-line values. The zero Trailer always validates.
func (t Trailer) Validate() error {
	if t.IsZero() {
		return nil
	}

	if t.Key == "" {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Key", Reason: "must not be empty"}
	}

	keyLen := len([]rune(t.Key))
	if keyLen < TrailerKeyMinLen || keyLen > TrailerKeyMaxLen {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Key", Reason: "out of range length", Value: t.Key}
	}
	if strings.Contains(t.Key, ":") {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Key", Reason: "must not contain a colon", Value: t.Key}
	}
	if !TrailerKeyRegexp.MatchString(t.Key) && !t.IsBreakingChangeKey() {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Key", Reason: "does not match required format", Value: t.Key}
	}

	if strings.ContainsAny(t.Value, "\n\r") {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Value", Reason: "must not contain newlines", Value: t.Value}
	}
	if n := len([]rune(t.Value)); n > TrailerValueMaxLen {
		return &semrelerr.ValidationError{Type: "Trailer", Field: "Value", Reason: "too long", Value: n}
	}

	return nil
}

func (t Trailer) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	type trailer Trailer
	return json.Marshal(trailer(t))
}

func (t *Trailer) UnmarshalJSON(data []byte) error {
	type trailer Trailer
	var raw trailer
	if err := json.Unmarshal(data, &raw); err != nil {
		return &semrelerr.UnmarshalError{Type: "Trailer", Data: data, Reason: err.Error()}
	}

	parsed := Trailer{Key: strings.TrimSpace(raw.Key), Value: strings.TrimSpace(raw.Value)}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Trailer) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	type trailer Trailer
	return trailer(t), nil
}

func (t *Trailer) UnmarshalYAML(node *yaml.Node) error {
	type trailer Trailer
	var raw trailer
	if err := node.Decode(&raw); err != nil {
		return &semrelerr.UnmarshalError{Type: "Trailer", Data: []byte(node.Value), Reason: err.Error()}
	}

	parsed := Trailer{Key: strings.TrimSpace(raw.Key), Value: strings.TrimSpace(raw.Value)}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Compile-time check that Trailer implements model.Model.
var _ model.Model = (*Trailer)(nil)
