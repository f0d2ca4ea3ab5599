package semver

import (
	"testing"

	"semrel.dev/semrel/internal/change"
)

func TestParseVersion_TolerantOfLeadingV(t *testing.T) {
	got, err := ParseVersion("v1.2.3")
	if err != nil {
		t.Fatalf("ParseVersion() error = %v", err)
	}
	want := Version{Major: 1, Minor: 2, Patch: 3}
	if got != want {
		t.Errorf("ParseVersion(\"v1.2.3\") = %+v, want %+v", got, want)
	}
}

func TestParseVersion_PrereleaseAndMetadata(t *testing.T) {
	got, err := ParseVersion("1.2.3-rc.1+build.5")
	if err != nil {
		t.Fatalf("ParseVersion() error = %v", err)
	}
	if got.Prerelease != "rc.1" {
		t.Errorf("Prerelease = %q, want %q", got.Prerelease, "rc.1")
	}
	if got.Metadata != "build.5" {
		t.Errorf("Metadata = %q, want %q", got.Metadata, "build.5")
	}
}

func TestParseVersion_RejectsMalformed(t *testing.T) {
	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Error("ParseVersion() error = nil, want an error")
	}
}

func TestVersion_String(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Metadata: "build.5"}
	if got, want := v.String(), "1.2.3-rc.1+build.5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestVersion_CompareIgnoresMetadata(t *testing.T) {
	a := Version{Major: 1, Minor: 0, Patch: 0, Metadata: "a"}
	b := Version{Major: 1, Minor: 0, Patch: 0, Metadata: "b"}
	if !a.Equal(b) {
		t.Error("versions differing only in build metadata must compare equal")
	}
}

func TestVersion_ComparePrereleaseOrdersBeforeRelease(t *testing.T) {
	pre := Version{Major: 1, Minor: 0, Patch: 0, Prerelease: "rc.1"}
	release := Version{Major: 1, Minor: 0, Patch: 0}
	if !pre.Less(release) {
		t.Error("a prerelease must sort before its release version")
	}
}

func TestVersion_CompareOrdersByComponent(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{Major: 1}, Version{Major: 2}, -1},
		{Version{Major: 1, Minor: 5}, Version{Major: 1, Minor: 2}, 1},
		{Version{Major: 1, Minor: 0, Patch: 0}, Version{Major: 1, Minor: 0, Patch: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVersion_Bump(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Metadata: "build.5"}
	tests := []struct {
		kind change.BumpKind
		want Version
	}{
		{change.BumpMajor, Version{Major: 2, Minor: 0, Patch: 0}},
		{change.BumpMinor, Version{Major: 1, Minor: 3, Patch: 0}},
		{change.BumpPatch, Version{Major: 1, Minor: 2, Patch: 4}},
	}
	for _, tt := range tests {
		if got := v.Bump(tt.kind); got != tt.want {
			t.Errorf("Bump(%s) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}

func TestVersion_BumpNoneAndNotSetAreIdentity(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}
	if got := v.Bump(change.BumpNone); got != v {
		t.Errorf("Bump(BumpNone) = %+v, want identity %+v", got, v)
	}
	if got := v.Bump(change.BumpNotSet); got != v {
		t.Errorf("Bump(BumpNotSet) = %+v, want identity %+v", got, v)
	}
}

func TestVersion_BumpClearsPrereleaseAndMetadata(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Metadata: "build.5"}
	got := v.Bump(change.BumpPatch)
	if got.Prerelease != "" || got.Metadata != "" {
		t.Errorf("Bump() = %+v, want Prerelease/Metadata cleared", got)
	}
}

func TestVersion_IsZero(t *testing.T) {
	if !(Version{}).IsZero() {
		t.Error("zero-value Version.IsZero() = false, want true")
	}
	if (Version{Major: 1}).IsZero() {
		t.Error("Version{Major: 1}.IsZero() = true, want false")
	}
}

func TestVersion_ValidateRejectsNegativeComponents(t *testing.T) {
	if err := (Version{Major: -1}).Validate(); err == nil {
		t.Error("Validate() on negative Major = nil, want an error")
	}
}

func TestVersion_JSONRoundTrip(t *testing.T) {
	want := Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1"}
	data, err := want.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	var got Version
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON(%s) error = %v", data, err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
