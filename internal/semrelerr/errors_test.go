package semrelerr

import "testing"

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Type: "BumpKind", Value: "bogus"}
	if got, want := err.Error(), "semrel: invalid BumpKind value: bogus"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMarshalError_Message(t *testing.T) {
	err := &MarshalError{Type: "BumpKind", Value: 99}
	if got, want := err.Error(), "semrel: cannot marshal invalid BumpKind value: 99"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnmarshalError_MessageOmitsData(t *testing.T) {
	err := &UnmarshalError{Type: "Category", Data: []byte(`"secret-token"`), Reason: "unexpected type"}
	got := err.Error()
	if got != "semrel: cannot unmarshal Category: unexpected type" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationError_MessageWithAndWithoutField(t *testing.T) {
	withField := &ValidationError{Type: "Scope", Field: "text", Reason: "too long"}
	if got, want := withField.Error(), "semrel: invalid Scope.text: too long"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutField := &ValidationError{Type: "Category", Reason: "category is unset"}
	if got, want := withoutField.Error(), "semrel: invalid Category: category is unset"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
