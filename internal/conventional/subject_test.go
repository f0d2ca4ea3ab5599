package conventional

import "testing"

func TestParseSubject_TrimsSurroundingWhitespace(t *testing.T) {
	got, err := ParseSubject("  tidy the thing  ")
	if err != nil {
		t.Fatalf("ParseSubject() error = %v", err)
	}
	if got.String() != "tidy the thing" {
		t.Errorf("ParseSubject() = %q, want %q", got.String(), "tidy the thing")
	}
}

func TestParseSubject_RejectsNewlines(t *testing.T) {
	if _, err := ParseSubject("line one\nline two"); err == nil {
		t.Error("ParseSubject() with an embedded newline error = nil, want an error")
	}
}

func TestParseSubject_RejectsWhitespaceOnly(t *testing.T) {
	if _, err := ParseSubject("   "); err == nil {
		t.Error("ParseSubject() on whitespace-only input error = nil, want an error")
	}
}

func TestParseSubject_RejectsOverLength(t *testing.T) {
	long := make([]rune, SubjectMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := ParseSubject(string(long)); err == nil {
		t.Error("ParseSubject() on an over-long subject error = nil, want an error")
	}
}

func TestParseSubject_EmptyIsValid(t *testing.T) {
	got, err := ParseSubject("")
	if err != nil {
		t.Fatalf("ParseSubject(\"\") error = %v", err)
	}
	if !got.IsZero() {
		t.Error("ParseSubject(\"\") is not zero")
	}
}
