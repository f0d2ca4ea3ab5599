package model

import (
	"encoding/json"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered during the batch validation process, rather than stopping at
// the first failure.
//
// Each failure is wrapped with the model's position in the slice (zero
// indexed) and its TypeName, then combined with multierr.Append so that
// callers receive a single error that unwraps to every individual failure.
// Empty slices are considered valid and return nil.
func ValidateAll[T Model](models []T) error {
	var combined error

	for i, m := range models {
		if err := m.Validate(); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return combined
}

// FilterZero returns a new slice containing only the models for which
// IsZero returns false.
//
// The returned slice is always a new, non-nil allocation, even when every
// input model is zero or the input slice itself is empty.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails.
//
// Callers MUST only use MustValidate in contexts where panic is acceptable
// control flow, such as test setup or command-line tools where a fatal
// error should terminate execution. It MUST NOT be used in request-serving
// code paths.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns Redacted() by default, or String() when unsafe is
// true. Production logging call sites SHOULD always pass false.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and, if valid, marshals it to JSON.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and, if valid, marshals it to YAML.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON unmarshals data into m and validates the result. m MUST already
// be the pointer-typed Model (e.g. *ParsedCommit, never ParsedCommit):
// every model in this package implements Serializable's Unmarshal methods
// on a pointer receiver, so the pointer type is what actually satisfies
// Model.
func FromJSON[T Model](data []byte, m T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML unmarshals data into m and validates the result. See FromJSON
// for the pointer-typed-T requirement.
func FromYAML[T Model](data []byte, m T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// Clone deep-copies m via a JSON round trip.
func Clone[T Model](m T) (T, error) {
	var zero T

	data, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("clone marshal failed: %w", err)
	}

	var clone T
	if err := json.Unmarshal(data, &clone); err != nil {
		return zero, fmt.Errorf("clone unmarshal failed: %w", err)
	}

	return clone, nil
}

// Equal compares two models by JSON representation.
func Equal[T Model](a, b T) bool {
	dataA, errA := json.Marshal(a)
	dataB, errB := json.Marshal(b)

	if errA != nil || errB != nil {
		return false
	}

	return string(dataA) == string(dataB)
}
