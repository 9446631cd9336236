/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, not just the first one. The function iterates through each
// model and invokes its Validate method; when a model fails, the error is
// wrapped with the model's zero-indexed position in the slice and its type
// name from TypeName so callers can identify exactly which models failed
// and why.
//
// If one or more models fail validation, ValidateAll returns a single
// combined error aggregating all individual failures using rxmerr.Collector.
// If all models pass, it returns nil. The function never panics and always
// processes the entire slice even when early elements fail, ensuring
// complete error reporting. Empty slices are considered valid and return
// nil.
//
// Example usage for batch validation:
//
//	models := []Model{model1, model2, model3}
//	if err := ValidateAll(models); err != nil {
//	    log.Error("validation failed", "error", err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero returns a new slice containing only non-zero models, removing
// all instances where IsZero reports true. Use it to clean slices of empty
// or uninitialized values before processing or serialization.
//
// The returned slice is always a new allocation and never shares backing
// array storage with the input slice. If all models in the input are zero,
// or the input is empty or nil, the function returns an empty non-nil slice.
// FilterZero does not validate models; it only checks for zero values.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails. It is
// intended for contexts where an invalid model is a programming error rather
// than a recoverable runtime condition: test setup, package initialization,
// and command-line tools where a fatal error should terminate execution.
//
// If validation succeeds, MustValidate returns the model unchanged, allowing
// inline initialization patterns. If validation fails, it panics with a
// message that includes the model's type name and the validation error.
// Callers MUST NOT use MustValidate in production server code, request
// handlers, or background workers where a panic would disrupt availability.
//
// Example usage in test setup:
//
//	m := MustValidate(someModel)
//	// Use m knowing it's valid
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns a string representation of a model that is safe for
// logging by default but can optionally include full details when explicitly
// requested. When unsafe is false (the recommended value for production
// logging), it invokes the model's Redacted method; when unsafe is true, it
// invokes String, which MAY expose sensitive data.
//
// The function provides a single call site for logging decisions, making it
// easy to audit logging behavior and keeping the choice between safe and
// unsafe representations explicit and visible in the code. Callers MUST only
// pass unsafe=true in controlled debugging scenarios where the output
// destination is secured.
//
//	log.Info("processing", "model", SafeString(model, false))  // Uses Redacted()
//	log.Debug("details", "model", SafeString(model, true))     // Uses String() (UNSAFE)
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON converts a model to JSON bytes after validating that the model is
// in a consistent state. Validation runs first; if it fails, ToJSON returns
// an error wrapping the failure with the model's type name and no marshaling
// is attempted, ensuring that invalid data never reaches the encoder. If
// validation succeeds, the model's MarshalJSON method (when implemented)
// drives serialization.
//
// Callers SHOULD use ToJSON instead of calling json.Marshal directly when
// they need the guarantee that only valid models are serialized.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML converts a model to YAML bytes after validating that the model is
// in a consistent state. Validation runs first; if it fails, ToYAML returns
// an error wrapping the failure with the model's type name and no marshaling
// is attempted. If validation succeeds, the model's MarshalYAML method
// (when implemented) drives serialization.
//
// Callers SHOULD use ToYAML instead of calling yaml.Marshal directly when
// writing configuration files or other documents that must never contain an
// invalid object.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON parses JSON bytes into a model and validates the result, ensuring
// that deserialized data satisfies all invariants before it is returned to
// the caller. If unmarshaling fails due to malformed JSON or type
// mismatches, FromJSON returns the unmarshaling error without attempting
// validation. If unmarshaling succeeds but the result fails Validate,
// FromJSON returns an error indicating that the unmarshaled model is
// invalid, rejecting bad external input at the system boundary.
//
// Callers MUST provide a pointer to a model variable that will receive the
// result. If FromJSON returns an error, the variable's state is undefined
// and MUST NOT be used.
//
// Example usage:
//
//	var m SomeModel
//	if err := FromJSON(data, &m); err != nil {
//	    return err
//	}
//	// Use m knowing it's valid
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML parses YAML bytes into a model and validates the result, ensuring
// that deserialized data satisfies all invariants before it is returned to
// the caller. If unmarshaling fails due to malformed YAML syntax or type
// mismatches, FromYAML returns the unmarshaling error without attempting
// validation. If unmarshaling succeeds but the result fails Validate,
// FromYAML returns an error indicating that the unmarshaled model is
// invalid, rejecting bad configuration data when it is loaded rather than
// letting it corrupt system state later.
//
// Callers MUST provide a pointer to a model variable that will receive the
// result. If FromYAML returns an error, the variable's state is undefined
// and MUST NOT be used.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// Clone creates a deep copy of a model by serializing it to JSON and
// deserializing back into a new instance. The JSON round-trip guarantees a
// deep copy because serialization handles nested structures, slices, maps,
// and pointer indirection by value; the clone shares no references with the
// original.
//
// If marshaling or unmarshaling fails, Clone returns the error and a
// zero-value model that MUST NOT be used. For performance-critical paths
// that clone frequently, implementations SHOULD provide a custom Clone
// method via the Cloneable[T] interface with hand-written copy logic; for
// general-purpose code this generic version provides simplicity and
// correctness.
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

// Equal compares two models for equality by serializing both to JSON and
// comparing the representations byte-for-byte. Two models are equal if and
// only if their JSON forms are identical after marshaling; custom
// MarshalJSON implementations are respected. If either marshaling operation
// fails, Equal returns false, so comparison errors are never mistaken for
// equality.
//
// JSON-based comparison has semantic limits: unexported fields do not
// participate, and functionally equivalent values that serialize differently
// MAY compare unequal. For performance-critical paths, implementations
// SHOULD provide a custom Equal method via the Comparable[T] interface.
func Equal[T Model](a, b T) bool {
	dataA, errA := json.Marshal(a)
	dataB, errB := json.Marshal(b)

	if errA != nil || errB != nil {
		return false
	}

	return string(dataA) == string(dataB)
}
