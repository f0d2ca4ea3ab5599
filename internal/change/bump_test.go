package change

import "testing"

func TestBumpKind_TotalOrder(t *testing.T) {
	order := []BumpKind{BumpNotSet, BumpNone, BumpPatch, BumpMinor, BumpMajor}
	for i := 0; i < len(order)-1; i++ {
		if !order[i].Less(order[i+1]) {
			t.Errorf("%s.Less(%s) = false, want true", order[i], order[i+1])
		}
		if order[i+1].Less(order[i]) {
			t.Errorf("%s.Less(%s) = true, want false", order[i+1], order[i])
		}
	}
}

func TestMax_ReturnsHigherPrecedence(t *testing.T) {
	tests := []struct {
		a, b, want BumpKind
	}{
		{BumpPatch, BumpMinor, BumpMinor},
		{BumpMajor, BumpNotSet, BumpMajor},
		{BumpNone, BumpNone, BumpNone},
		{BumpMinor, BumpMinor, BumpMinor},
	}
	for _, tt := range tests {
		if got := Max(tt.a, tt.b); got != tt.want {
			t.Errorf("Max(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
		if got := Max(tt.b, tt.a); got != tt.want {
			t.Errorf("Max(%s, %s) = %s, want %s (Max must be commutative)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestParseBump_CanonicalAndAliasForms(t *testing.T) {
	tests := []struct {
		in   string
		want BumpKind
	}{
		{"notset", BumpNotSet},
		{"none", BumpNone},
		{"-", BumpNone},
		{"patch", BumpPatch},
		{"+", BumpPatch},
		{"minor", BumpMinor},
		{"m", BumpMinor},
		{"++", BumpMinor},
		{"major", BumpMajor},
		{"M", BumpMajor},
		{"+++", BumpMajor},
	}
	for _, tt := range tests {
		got, err := ParseBump(tt.in)
		if err != nil {
			t.Errorf("ParseBump(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBump(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseBump_CaseSensitiveAliasesDoNotCollide(t *testing.T) {
	// "m" must mean Minor and "M" must mean Major — the alias set is
	// deliberately case-sensitive exactly where case distinguishes them.
	minor, err := ParseBump("m")
	if err != nil || minor != BumpMinor {
		t.Errorf("ParseBump(\"m\") = %v, %v, want BumpMinor, nil", minor, err)
	}
	major, err := ParseBump("M")
	if err != nil || major != BumpMajor {
		t.Errorf("ParseBump(\"M\") = %v, %v, want BumpMajor, nil", major, err)
	}
}

func TestParseBump_RejectsUnknown(t *testing.T) {
	if _, err := ParseBump("invalid"); err == nil {
		t.Error("ParseBump(\"invalid\") error = nil, want an error")
	}
}

func TestBumpKind_ValidateRejectsOutOfRange(t *testing.T) {
	if err := BumpKind(99).Validate(); err == nil {
		t.Error("BumpKind(99).Validate() = nil, want an error")
	}
	if err := BumpMajor.Validate(); err != nil {
		t.Errorf("BumpMajor.Validate() = %v, want nil", err)
	}
}

func TestBumpKind_JSONRoundTrip(t *testing.T) {
	for _, b := range []BumpKind{BumpNotSet, BumpNone, BumpPatch, BumpMinor, BumpMajor} {
		data, err := b.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%s) error = %v", b, err)
		}
		var got BumpKind
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error = %v", data, err)
		}
		if got != b {
			t.Errorf("round trip = %s, want %s", got, b)
		}
	}
}

func TestBumpKind_UnmarshalJSONAcceptsNumeric(t *testing.T) {
	var got BumpKind
	if err := got.UnmarshalJSON([]byte("2")); err != nil {
		t.Fatalf("UnmarshalJSON(\"2\") error = %v", err)
	}
	if got != BumpPatch {
		t.Errorf("UnmarshalJSON(\"2\") = %s, want %s", got, BumpPatch)
	}
}

func TestBumpKind_TextMarshalRoundTrip(t *testing.T) {
	text, err := BumpMinor.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	var got BumpKind
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%s) error = %v", text, err)
	}
	if got != BumpMinor {
		t.Errorf("UnmarshalText round trip = %s, want %s", got, BumpMinor)
	}
}
