package conventional

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

// headerPattern matches "[!]category[(scope)][!]: subject". Leading and
// trailing bang groups are both accepted per the grammar; either (or
// both) marks the commit as breaking.
const headerPattern = `^(!*)([a-zA-Z0-9-]+)(?:\(([^)]*)\))?(!*):\s*(.*)$`

var headerRegexp = regexp.MustCompile(headerPattern)

const breakingChangePrefix = "BREAKING CHANGE"

// ParsedCommit is the structured result of parsing a single commit
// message: a category, optional scope, subject, optional body, optional
// footer, and a breaking-change flag. It round-trips through Format up
// to whitespace normalization.
type ParsedCommit struct {
	Category Category
	Scope    Scope
	Subject  Subject
	Body     Body
	Footer   string
	Breaking bool
}

// preambleMatchers recognizes git plumbing header lines that Parse
// strips before attempting to match the commit grammar: a prefix keyword
// plus either a hex token or an angle-bracketed email, so that subjects
// merely starting with the same word ("Commit to quality") survive.
var preambleMatchers = []*regexp.Regexp{
	regexp.MustCompile(`^author\s+.*(<[^>]+>|\b[0-9a-f]{7,40}\b)`),
	regexp.MustCompile(`^committer\s+.*(<[^>]+>|\b[0-9a-f]{7,40}\b)`),
	regexp.MustCompile(`^tree\s+[0-9a-f]{7,40}\s*$`),
	regexp.MustCompile(`^parent\s+[0-9a-f]{7,40}\s*$`),
	regexp.MustCompile(`^date\s+.*(<[^>]+>|\b[0-9a-f]{7,40}\b)`),
	regexp.MustCompile(`^(Co-authored-by|Change-Id|Reviewed-by):\s*.*(<[^>]+>|\bI?[0-9a-f]{7,40}\b)`),
}

var mergeCommitPrefixes = []string{"Merge branch ", "Merge pull request ", "Merge remote-tracking branch "}

// stripPreamble drops leading lines recognized as git plumbing headers,
// never touching a merge-commit subject even if it happens to match one
// of the patterns above.
func stripPreamble(lines []string) []string {
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isMergeCommitSubject(line) {
			break
		}
		matched := false
		for _, re := range preambleMatchers {
			if re.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		i++
	}
	return lines[i:]
}

func isMergeCommitSubject(line string) bool {
	for _, prefix := range mergeCommitPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Parse parses raw commit message text into a ParsedCommit. It never
// hard-fails on malformed or out-of-bounds input: a header that does not
// match the grammar, a scope that collides with a standard category name,
// or a scope/subject that fails its own length validation all fall back
// to Category NonCompliant with the header line as Subject (capped to
// SubjectMaxLen runes when necessary), rather than aborting the walker-
// driven pipeline that calls Parse per commit. The only error Parse ever
// returns is EmptyMessageError, when nothing is left after the preamble
// filter runs.
func Parse(raw string) (ParsedCommit, error) {
	return parse(raw, false)
}

// ParseStrict behaves like Parse but returns InvalidHeaderError instead
// of falling back to NonCompliant, and UnknownCategoryError instead of
// falling back to Custom.
func ParseStrict(raw string) (ParsedCommit, error) {
	return parse(raw, true)
}

func parse(raw string, strict bool) (ParsedCommit, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "")

	lines := stripPreamble(strings.Split(normalized, "\n"))
	lines = trimLeadingBlank(lines)

	if len(joinNonBlank(lines)) == 0 {
		return ParsedCommit{}, &EmptyMessageError{}
	}

	header := lines[0]
	rest := lines[1:]

	pc, err := parseHeader(header, strict)
	if err != nil {
		return ParsedCommit{}, err
	}

	body, footer := splitSections(rest)
	pc.Body = body

	if footer != "" {
		trimmedFooter := strings.TrimSpace(footer)
		if strings.HasPrefix(trimmedFooter, breakingChangePrefix) {
			pc.Breaking = true
			value := strings.TrimPrefix(trimmedFooter, breakingChangePrefix)
			value = strings.TrimPrefix(strings.TrimSpace(value), ":")
			pc.Footer = strings.TrimSpace(value)
		} else {
			pc.Footer = trimmedFooter
		}
	}

	for _, para := range pc.Body.Paragraphs() {
		if strings.HasPrefix(strings.TrimSpace(para), breakingChangePrefix) {
			pc.Breaking = true
			break
		}
	}

	return pc, nil
}

// parseHeader parses the first line. On a grammar mismatch it returns a
// NonCompliant ParsedCommit (non-strict) or InvalidHeaderError (strict).
func parseHeader(header string, strict bool) (ParsedCommit, error) {
	trimmed := strings.TrimSpace(header)

	matches := headerRegexp.FindStringSubmatch(trimmed)
	if matches == nil {
		if strict {
			return ParsedCommit{}, &InvalidHeaderError{Detail: trimmed}
		}
		return nonCompliantFallback(trimmed), nil
	}

	leadingBang, categoryToken, scopeToken, trailingBang, subjectStr := matches[1], matches[2], matches[3], matches[4], matches[5]

	var category Category
	var err error
	if strict {
		category, err = ParseCategoryStrict(categoryToken)
		if err != nil {
			return ParsedCommit{}, err
		}
	} else {
		category = ParseCategory(categoryToken)
	}

	var scope Scope
	if scopeToken != "" {
		scope, err = ParseScope(scopeToken)
		if err != nil {
			if strict {
				return ParsedCommit{}, err
			}
			return nonCompliantFallback(trimmed), nil
		}
		if categoryNameEquals(scope) {
			if strict {
				return ParsedCommit{}, &ScopeIsCategoryError{Text: scope.String()}
			}
			return nonCompliantFallback(trimmed), nil
		}
	}

	subject, err := ParseSubject(subjectStr)
	if err != nil {
		if strict {
			return ParsedCommit{}, err
		}
		return nonCompliantFallback(trimmed), nil
	}

	return ParsedCommit{
		Category: category,
		Scope:    scope,
		Subject:  subject,
		Breaking: leadingBang != "" || trailingBang != "",
	}, nil
}

func categoryNameEquals(scope Scope) bool {
	_, ok := standardByName[strings.ToLower(scope.String())]
	return ok
}

func nonCompliantFallback(text string) ParsedCommit {
	first := text
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			first = strings.TrimSpace(line)
			break
		}
	}
	return ParsedCommit{Category: NonCompliant, Subject: capSubject(first)}
}

// capSubject parses s as a Subject, truncating to SubjectMaxLen runes when
// the uncapped line would otherwise fail Subject's own length validation.
// A non-compliant fallback commit keeps as much of the original line as it
// safely can rather than silently discarding it.
func capSubject(s string) Subject {
	if subj, err := ParseSubject(s); err == nil {
		return subj
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > SubjectMaxLen {
		runes = runes[:SubjectMaxLen]
	}
	capped, err := ParseSubject(string(runes))
	if err != nil {
		return ""
	}
	return capped
}

// splitSections splits the post-header lines into body and footer per
// the grammar: paragraphs are separated by blank lines; if there is more
// than one paragraph, all but the last form the body and the last is the
// footer; if there is exactly one paragraph, it is the footer only when
// it starts with BREAKING CHANGE, otherwise it is treated as the body.
func splitSections(lines []string) (Body, string) {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return "", ""
	}

	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return "", ""
	}

	if len(paragraphs) == 1 {
		if strings.HasPrefix(strings.TrimSpace(paragraphs[0]), breakingChangePrefix) {
			return "", paragraphs[0]
		}
		body, _ := ParseBody(paragraphs[0])
		return body, ""
	}

	bodyText := strings.Join(paragraphs[:len(paragraphs)-1], "\n\n")
	body, _ := ParseBody(bodyText)
	return body, paragraphs[len(paragraphs)-1]
}

func splitParagraphs(text string) []string {
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if isBlankLine(line) {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

func trimLeadingBlank(lines []string) []string {
	i := 0
	for i < len(lines) && isBlankLine(lines[i]) {
		i++
	}
	return lines[i:]
}

func joinNonBlank(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.TrimSpace(l))
	}
	return b.String()
}

// Format renders p back into raw commit message text.
func (p ParsedCommit) Format() string {
	var header strings.Builder
	header.WriteString(p.Category.String())
	if !p.Scope.IsZero() {
		header.WriteString("(" + p.Scope.String() + ")")
	}
	if p.Breaking {
		header.WriteString("!")
	}
	header.WriteString(": " + p.Subject.String())

	parts := []string{header.String()}
	if !p.Body.IsZero() {
		parts = append(parts, "", p.Body.String())
	}
	if p.Footer != "" {
		parts = append(parts, "", p.Footer)
	}
	return strings.Join(parts, "\n")
}

// Trailers parses Footer's lines as "Key: Value" trailers, skipping any
// line that does not conform (a BREAKING CHANGE value that happens to
// contain its own colon, for instance). Lines are parsed independently,
// so a malformed trailer never prevents the well-formed ones around it
// from being recognized.
func (p ParsedCommit) Trailers() []Trailer {
	if p.Footer == "" {
		return nil
	}
	var out []Trailer
	for _, line := range strings.Split(p.Footer, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if t, err := ParseTrailer(line); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func (p ParsedCommit) String() string   { return p.Format() }
func (p ParsedCommit) Redacted() string { return p.Category.String() + ": " + p.Subject.String() }
func (p ParsedCommit) TypeName() string { return "ParsedCommit" }
func (p ParsedCommit) IsZero() bool     { return p.Category.IsZero() && p.Subject.IsZero() }

func (p ParsedCommit) Equal(other any) bool {
	o, ok := other.(ParsedCommit)
	if !ok {
		if op, ok := other.(*ParsedCommit); ok && op != nil {
			o = *op
		} else {
			return false
		}
	}
	return p.Category.Equal(o.Category) &&
		p.Scope == o.Scope &&
		p.Subject == o.Subject &&
		p.Body == o.Body &&
		p.Footer == o.Footer &&
		p.Breaking == o.Breaking
}

// Validate requires a non-empty Subject unless Category is the Unknown
// sentinel, and delegates to each component's own Validate.
func (p ParsedCommit) Validate() error {
	if p.Category.kind == categoryUnknown {
		return nil
	}
	if err := p.Category.Validate(); err != nil {
		return err
	}
	if p.Subject.IsZero() {
		return &semrelerr.ValidationError{Type: "ParsedCommit", Field: "Subject", Reason: "must not be empty"}
	}
	if err := p.Scope.Validate(); err != nil {
		return err
	}
	if err := p.Body.Validate(); err != nil {
		return err
	}
	return nil
}

type parsedCommitWire struct {
	Category string `json:"category" yaml:"category"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Subject  string `json:"subject" yaml:"subject"`
	Body     string `json:"body,omitempty" yaml:"body,omitempty"`
	Footer   string `json:"footer,omitempty" yaml:"footer,omitempty"`
	Breaking bool   `json:"breaking,omitempty" yaml:"breaking,omitempty"`
}

func (p ParsedCommit) toWire() parsedCommitWire {
	return parsedCommitWire{
		Category: p.Category.String(),
		Scope:    p.Scope.String(),
		Subject:  p.Subject.String(),
		Body:     p.Body.String(),
		Footer:   p.Footer,
		Breaking: p.Breaking,
	}
}

func (w parsedCommitWire) toParsedCommit() (ParsedCommit, error) {
	scope, err := ParseScope(w.Scope)
	if err != nil {
		return ParsedCommit{}, err
	}
	subject, err := ParseSubject(w.Subject)
	if err != nil {
		return ParsedCommit{}, err
	}
	body, err := ParseBody(w.Body)
	if err != nil {
		return ParsedCommit{}, err
	}
	return ParsedCommit{
		Category: categoryFromWire(w.Category),
		Scope:    scope,
		Subject:  subject,
		Body:     body,
		Footer:   w.Footer,
		Breaking: w.Breaking,
	}, nil
}

func (p ParsedCommit) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p.toWire())
}

func (p *ParsedCommit) UnmarshalJSON(data []byte) error {
	var w parsedCommitWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &semrelerr.UnmarshalError{Type: "ParsedCommit", Data: data, Reason: err.Error()}
	}
	parsed, err := w.toParsedCommit()
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p ParsedCommit) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.toWire(), nil
}

func (p *ParsedCommit) UnmarshalYAML(node *yaml.Node) error {
	var w parsedCommitWire
	if err := node.Decode(&w); err != nil {
		return &semrelerr.UnmarshalError{Type: "ParsedCommit", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := w.toParsedCommit()
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Compile-time check that ParsedCommit implements model.Model.
var _ model.Model = (*ParsedCommit)(nil)
