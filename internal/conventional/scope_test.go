package conventional

import "testing"

func TestParseScope_NormalizesCaseAndWhitespace(t *testing.T) {
	got, err := ParseScope("  API  ")
	if err != nil {
		t.Fatalf("ParseScope() error = %v", err)
	}
	if got.String() != "api" {
		t.Errorf("ParseScope() = %q, want %q", got.String(), "api")
	}
}

func TestParseScope_EmptyIsValid(t *testing.T) {
	got, err := ParseScope("")
	if err != nil {
		t.Fatalf("ParseScope(\"\") error = %v", err)
	}
	if !got.IsZero() {
		t.Error("ParseScope(\"\") is not zero")
	}
}

func TestParseScope_RejectsInvalidFormat(t *testing.T) {
	tests := []string{"-leading-hyphen", "trailing-hyphen-", "has space", "emoji😀"}
	for _, in := range tests {
		if _, err := ParseScope(in); err == nil {
			t.Errorf("ParseScope(%q) error = nil, want an error", in)
		}
	}
}

func TestParseScope_AcceptsInteriorPunctuation(t *testing.T) {
	tests := []string{"api", "api.v2", "api_v2", "api/v2", "api-v2", "a1"}
	for _, in := range tests {
		if _, err := ParseScope(in); err != nil {
			t.Errorf("ParseScope(%q) error = %v, want nil", in, err)
		}
	}
}

func TestScope_TooLongIsRejected(t *testing.T) {
	long := make([]byte, ScopeMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := ParseScope(string(long)); err == nil {
		t.Error("ParseScope() on an over-long scope error = nil, want an error")
	}
}
