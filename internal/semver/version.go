// Package semver implements the immutable Version value used by semrel to
// represent, compare, and advance a project's semantic version.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/model"
	"semrel.dev/semrel/internal/semrelerr"
)

// Version represents a semantic version according to Semantic Versioning
// 2.0.0 (https://semver.org).
//
// This implementation wraps github.com/blang/semver/v4 for SemVer 2.0.0
// compliant parsing and comparison while exposing a bump(kind) operation
// tailored to semrel's BumpKind total order.
//
// The zero value (0.0.0, no prerelease, no metadata) is a legitimate
// "no prior release" sentinel that callers may use as the anchor version
// before any manifest has been read.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Metadata   string
}

// ParseVersion parses a SemVer 2.0.0 version string into a Version.
//
// An optional leading "v" is tolerated and stripped before delegating to
// blang/semver.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(s, "v")

	bv, err := bsemver.Parse(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version format %q: %w", s, err)
	}

	return fromBlangSemver(bv), nil
}

// String returns "Major.Minor.Patch[-Prerelease][+Metadata]".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// TypeName returns "Version".
func (v Version) TypeName() string { return "Version" }

// Redacted returns the same representation as String; versions carry no
// sensitive data.
func (v Version) Redacted() string { return v.String() }

func (v Version) toBlangSemver() (bsemver.Version, error) {
	bv, err := bsemver.Parse(v.String())
	if err != nil {
		return bsemver.Version{}, fmt.Errorf("failed to convert to blang/semver: %w", err)
	}
	return bv, nil
}

func fromBlangSemver(bv bsemver.Version) Version {
	var prerelease string
	if len(bv.Pre) > 0 {
		parts := make([]string, len(bv.Pre))
		for i, p := range bv.Pre {
			parts[i] = p.String()
		}
		prerelease = strings.Join(parts, ".")
	}

	var metadata string
	if len(bv.Build) > 0 {
		metadata = strings.Join(bv.Build, ".")
	}

	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: prerelease,
		Metadata:   metadata,
	}
}

// Validate checks that Major/Minor/Patch are non-negative and that
// Prerelease/Metadata (if present) are well-formed SemVer 2.0.0
// identifiers.
func (v Version) Validate() error {
	if v.Major < 0 {
		return &semrelerr.ValidationError{Type: "Version", Field: "Major", Reason: "must be non-negative", Value: v.Major}
	}
	if v.Minor < 0 {
		return &semrelerr.ValidationError{Type: "Version", Field: "Minor", Reason: "must be non-negative", Value: v.Minor}
	}
	if v.Patch < 0 {
		return &semrelerr.ValidationError{Type: "Version", Field: "Patch", Reason: "must be non-negative", Value: v.Patch}
	}
	if _, err := v.toBlangSemver(); err != nil {
		return &semrelerr.ValidationError{Type: "Version", Field: "", Reason: err.Error(), Value: v.String()}
	}
	return nil
}

// IsZero reports whether v is exactly 0.0.0 with no prerelease or
// metadata.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Prerelease == "" && v.Metadata == ""
}

// Compare reports the SemVer 2.0.0 ordering of v against other: -1, 0, or
// +1. Build metadata never affects ordering.
func (v Version) Compare(other Version) int {
	bv, errV := v.toBlangSemver()
	bo, errO := other.toBlangSemver()
	if errV != nil || errO != nil {
		return v.compareNumeric(other)
	}
	return bv.Compare(bo)
}

func (v Version) compareNumeric(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports v < other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports v == other (build metadata ignored, per SemVer 2.0.0).
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Greater reports v > other.
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

// Bump applies a BumpKind to v and returns the resulting Version,
// per spec: bump(Major) zeroes minor+patch, bump(Minor) zeroes patch,
// bump(Patch) increments patch, bump(NoBump) and bump(NotSet) are the
// identity. A Patch, Minor or Major bump clears Prerelease and Metadata, since a release
// bump produces a final, non-prerelease version.
func (v Version) Bump(kind change.BumpKind) Version {
	switch kind {
	case change.BumpMajor:
		return Version{Major: v.Major + 1, Minor: 0, Patch: 0}
	case change.BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0}
	case change.BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case change.BumpNone, change.BumpNotSet:
		return v
	default:
		return v
	}
}

// MarshalJSON encodes v as a JSON string in canonical form.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string via ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &semrelerr.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// MarshalYAML encodes v as a scalar string in canonical form.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a scalar string via ParseVersion.
func (v *Version) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return &semrelerr.UnmarshalError{Type: "Version", Data: nil, Reason: err.Error()}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// Compile-time check that Version implements model.Model.
var _ model.Model = (*Version)(nil)
