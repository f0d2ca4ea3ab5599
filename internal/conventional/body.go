package conventional

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

const (
	// BodyMaxBytes bounds a body's UTF-8 encoded size.
	BodyMaxBytes = 8 * 1024

	// BodyMaxLines bounds a body's line count (LF-separated).
	BodyMaxLines = 100
)

// Body is the optional free-text block between the header and any
// trailers. The zero value (empty string) means "no body".
//
// A body may contain one or more paragraphs; spec.md's breaking-change
// detection treats ANY paragraph that begins with "BREAKING CHANGE" as a
// breaking-change marker, not only the first — Paragraphs splits the
// normalized body on blank lines to support that scan.
type Body string

// ParseBody normalizes line endings to LF, trims leading/trailing blank
// lines, and validates the result.
func ParseBody(s string) (Body, error) {
	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "")
	normalized = trimBlankLines(normalized)

	body := Body(normalized)
	if err := body.Validate(); err != nil {
		return "", err
	}
	return body, nil
}

func (b Body) String() string   { return string(b) }
func (b Body) Redacted() string { return b.String() }
func (b Body) TypeName() string { return "Body" }
func (b Body) IsZero() bool     { return b == "" }

// Paragraphs splits the body into blank-line-delimited paragraphs,
// skipping any that are entirely blank.
func (b Body) Paragraphs() []string {
	if b.IsZero() {
		return nil
	}

	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
			cur = nil
		}
	}

	for _, line := range strings.Split(string(b), "\n") {
		if isBlankLine(line) {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	return out
}

// Validate rejects raw CR characters and out-of-range size/line count.
func (b Body) Validate() error {
	if b.IsZero() {
		return nil
	}

	str := string(b)
	if strings.Contains(str, "\r") {
		return &semrelerr.ValidationError{Type: "Body", Reason: "contains raw CR characters"}
	}
	if len(str) > BodyMaxBytes {
		return &semrelerr.ValidationError{Type: "Body", Reason: "exceeds maximum byte size", Value: len(str)}
	}
	if n := len(strings.Split(str, "\n")); n > BodyMaxLines {
		return &semrelerr.ValidationError{Type: "Body", Reason: "exceeds maximum line count", Value: n}
	}

	return nil
}

func (b Body) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(string(b))
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Body", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseBody(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b Body) MarshalYAML() (interface{}, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return string(b), nil
}

func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &semrelerr.UnmarshalError{Type: "Body", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseBody(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func trimBlankLines(s string) string {
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")

	start := 0
	for start < len(lines) && isBlankLine(lines[start]) {
		start++
	}
	if start == len(lines) {
		return ""
	}

	end := len(lines) - 1
	for end >= 0 && isBlankLine(lines[end]) {
		end--
	}

	return strings.Join(lines[start:end+1], "\n")
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Compile-time check that Body implements model.Model.
var _ model.Model = (*Body)(nil)
