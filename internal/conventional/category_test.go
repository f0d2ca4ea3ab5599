package conventional

import "testing"

func TestParseCategory_StandardNamesAreCaseInsensitive(t *testing.T) {
	tests := []struct {
		token string
		want  Category
	}{
		{"feat", Feat},
		{"FEAT", Feat},
		{"Fix", Fix},
		{"ci", Ci},
		{"cd", Cd},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.token); !got.Equal(tt.want) {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestParseCategory_UnrecognizedFallsBackToCustomPreservingText(t *testing.T) {
	got := ParseCategory("Security")
	if !got.IsCustom() {
		t.Fatalf("ParseCategory(%q) = %v, want Custom", "Security", got)
	}
	if got.String() != "Security" {
		t.Errorf("String() = %q, want verbatim %q", got.String(), "Security")
	}
}

func TestCategory_CustomNeverEqualsStandardEvenWithMatchingText(t *testing.T) {
	if Custom("feat").Equal(Feat) {
		t.Error("Custom(\"feat\").Equal(Feat) = true, want false")
	}
	if Feat.Equal(Custom("feat")) {
		t.Error("Feat.Equal(Custom(\"feat\")) = true, want false")
	}
}

func TestCategory_OrderMatchesDeclaredSequence(t *testing.T) {
	if Feat.Order() >= Fix.Order() {
		t.Errorf("Feat.Order() = %d, want < Fix.Order() = %d", Feat.Order(), Fix.Order())
	}
	if Build.Order() != 0 {
		t.Errorf("Build.Order() = %d, want 0 (first in declared order)", Build.Order())
	}
	if Custom("security").Order() <= Test.Order() {
		t.Error("a Custom category must sort after every standard category")
	}
	if NonCompliant.Order() <= Custom("security").Order() {
		t.Error("NonCompliant must sort after Custom")
	}
}

func TestCategory_ReleaseLabel(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Feat, "Features"},
		{Fix, "Fixes"},
		{Custom("security"), "security"},
		{NonCompliant, "Other Changes"},
	}
	for _, tt := range tests {
		if got := tt.category.ReleaseLabel(); got != tt.want {
			t.Errorf("%v.ReleaseLabel() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestCategory_HasReservedPrefix(t *testing.T) {
	if !Custom("semrel").HasReservedPrefix() {
		t.Error(`Custom("semrel").HasReservedPrefix() = false, want true`)
	}
	if !Custom("semrel-internal").HasReservedPrefix() {
		t.Error(`Custom("semrel-internal").HasReservedPrefix() = false, want true`)
	}
	if Feat.HasReservedPrefix() {
		t.Error("Feat.HasReservedPrefix() = true, want false")
	}
}

func TestCategory_ValidateRejectsUnknownAndEmptyCustom(t *testing.T) {
	if err := Unknown.Validate(); err == nil {
		t.Error("Unknown.Validate() = nil, want an error")
	}
	if err := Custom("").Validate(); err == nil {
		t.Error(`Custom("").Validate() = nil, want an error`)
	}
	if err := Feat.Validate(); err != nil {
		t.Errorf("Feat.Validate() = %v, want nil", err)
	}
}

func TestCategory_JSONRoundTrip(t *testing.T) {
	for _, c := range []Category{Feat, Custom("security"), NonCompliant} {
		data, err := c.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v) error = %v", c, err)
		}
		var got Category
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error = %v", data, err)
		}
		if !got.Equal(c) {
			t.Errorf("round trip = %v, want %v", got, c)
		}
	}
}
