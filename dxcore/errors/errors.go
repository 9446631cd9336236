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

// Package errors provides reusable error types for dxobj value types and
// model types.
//
// This package defines common error types used across the dxobj packages
// (constraint, model/value, model, schema) when parsing, validating,
// marshaling and unmarshaling strongly typed values. By centralizing these
// types, the package eliminates code duplication and provides a consistent
// error handling story across the entire dxobj surface.
//
// The errors in this package are intentionally simple value carriers with
// stable message formats. They are designed to be:
//
//   - easy to construct from parsing / validation / marshaling code,
//   - easy to recognize via type assertions or errors.As,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// # Error Types
//
//   - ParseError
//     Returned when parsing textual input into a value type fails: a
//     malformed identifier, invalid base64 text, or unparseable date-time
//     text. Use this in ParseXxx helpers that accept external text.
//
//   - MarshalError
//     Returned when marshaling an invalid value fails. Use this in
//     MarshalJSON / MarshalYAML implementations to reject values that do
//     not satisfy their type's constraints.
//
//   - UnmarshalError
//     Returned when unmarshaling data into a typed value fails due to
//     invalid input, parse errors or constraint violations.
//
//   - ValidationError
//     Returned when structural validation of a value or model field fails.
//     It carries the violated constraint kind (such as "min_length" or
//     "pattern") together with the offending value so that callers can
//     report precisely which rule was broken.
//
//   - FrozenFieldError
//     Returned when code attempts to assign to a frozen model field after
//     construction, such as an entity identifier or a creation timestamp.
//
//   - SchemaError
//     Returned when reconstructing a model definition from a schema
//     document fails: missing properties, an unresolvable $ref, or a
//     fixed-point resolution pass that makes no progress.
//
// # Usage
//
// Each package that defines value or model types can use these error types
// directly or create type aliases for better API clarity:
//
//	import "dirpx.dev/dxobj/dxcore/errors"
//
//	func ParseId(s string) (Id, error) {
//	    if len(s) != 26 {
//	        return Id{}, &errors.ParseError{Type: "Id", Value: s}
//	    }
//	    // ...
//	}
package errors

import "strings"

// ParseError is returned when parsing textual input into a strongly typed
// value fails.
//
// Type identifies the logical type being parsed (for example, "Id",
// "Timestamp", "Bytes"), and Value contains the exact string that could not
// be interpreted. This struct is intended for use in error messages and
// diagnostics; callers MAY pattern-match on Type to provide type-specific
// guidance to users or to translate errors into friendlier messages.
//
// # Example
//
//	func ParseTimestamp(s string) (Timestamp, error) {
//	    t, err := dateparse.ParseAny(s)
//	    if err != nil {
//	        // Returned error will format as:
//	        // "dxobj: invalid Timestamp value: <value>"
//	        return 0, &errors.ParseError{Type: "Timestamp", Value: s}
//	    }
//	    // ...
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Id").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxobj: invalid {Type} value: {Value}"
//
// For example:
//
//	"dxobj: invalid Id value: 01HRQ0BNKS4WMFVQPW810MP"
//
// The format is intentionally stable so that callers can rely on it for
// diagnostics, while still preferring type assertions where possible.
func (e *ParseError) Error() string {
	return "dxobj: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because the
// value does not satisfy its type's constraints.
//
// Type identifies the logical type being marshaled (for example, "Instance"),
// and Reason provides a human-readable description of why the value was
// rejected.
//
// This error is primarily used as a guardrail: it prevents invalid values
// from being silently emitted into JSON, YAML or other serialized forms. In
// most cases a MarshalError indicates a programming error (for example, a
// value that was mutated without revalidation).
//
// # Example
//
//	func (i *Instance) MarshalJSON() ([]byte, error) {
//	    if err := i.Validate(); err != nil {
//	        return nil, &errors.MarshalError{
//	            Type:   i.TypeName(),
//	            Reason: err.Error(),
//	        }
//	    }
//	    // ...
//	}
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxobj: cannot marshal invalid {Type}: {Reason}"
//
// For example:
//
//	"dxobj: cannot marshal invalid UserName: too short"
func (e *MarshalError) Error() string {
	return "dxobj: cannot marshal invalid " + e.Type + ": " + e.Reason
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated (for example, "Bytes"),
// Data contains the original raw payload (typically a JSON fragment), and
// Reason provides a human-readable description of what went wrong (for
// example, parse errors, a constraint violation or empty input).
//
// This struct is intended to be surfaced directly in diagnostics or logs so
// that users can understand why their payload could not be interpreted.
// Callers MAY wrap UnmarshalError with additional context when propagating
// it further up the stack.
//
// # Example
//
//	func (b *Bytes) UnmarshalJSON(data []byte) error {
//	    if len(data) == 0 {
//	        return &errors.UnmarshalError{
//	            Type:   "Bytes",
//	            Data:   data,
//	            Reason: "empty data",
//	        }
//	    }
//	    // ... decoding logic ...
//	}
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	//
	// Callers MAY choose to log or redact this field depending on privacy
	// and size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	//
	// Reason SHOULD describe what went wrong (for example, "empty data" or
	// "invalid base64 text") rather than repeating the type name; the type
	// name is already available in the Type field and reflected in Error().
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxobj: cannot unmarshal {Type}: {Reason}"
//
// For example:
//
//	"dxobj: cannot unmarshal Bytes: invalid base64 text"
//
// The Data field is intentionally not included in the formatted message to
// avoid excessively verbose or sensitive logs; callers can log it separately
// when appropriate.
func (e *UnmarshalError) Error() string {
	return "dxobj: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when structural validation of a value or model
// field fails.
//
// Type identifies the logical name of the type being validated (for example,
// "UserName", "Instance"), Field optionally identifies which model field
// failed validation, Kind names the violated constraint (for example,
// "min_length", "pattern", "minimum"), Reason provides a human-readable
// explanation of the validation failure, and Value optionally contains the
// rejected input.
//
// This error is raised at the boundary where untrusted input is accepted
// into a value type or model field. It is never raised for values
// constructed directly from already-known-valid internal data.
//
// # Example
//
//	func (c Chain) Check(typeName, s string) error {
//	    if runeCount < min {
//	        return &errors.ValidationError{
//	            Type:   typeName,
//	            Kind:   "min_length",
//	            Reason: "too short",
//	            Value:  s,
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the model field that failed validation.
	// May be empty if the error applies to a bare value.
	Field string

	// Kind names the violated constraint kind.
	// May be empty when the failure is not tied to a single constraint.
	Kind string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the rejected input.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxobj: invalid {Type}.{Field}: {Reason}"          (when Field is set)
//	"dxobj: invalid {Type}: {Reason}"                  (when Field is empty)
//	"dxobj: invalid {Type}: {Kind}: {Reason}"          (when Kind is set)
//
// For example:
//
//	"dxobj: invalid UserName: min_length: too short: 1 runes (minimum 3)"
//	"dxobj: invalid User.age: minimum: value -1 is below minimum 0"
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("dxobj: invalid ")
	b.WriteString(e.Type)
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	if e.Kind != "" {
		b.WriteString(e.Kind)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	return b.String()
}

// FrozenFieldError is returned when code attempts to assign to a frozen
// model field after construction.
//
// Type identifies the model definition and Field the frozen field that was
// targeted. Frozen fields, such as an entity identifier or a creation
// timestamp, may be set at construction but MUST never be reassigned
// afterwards; the attempt is rejected rather than silently ignored.
//
// # Example
//
//	if f.Frozen {
//	    return &errors.FrozenFieldError{Type: def.Name(), Field: f.Name}
//	}
type FrozenFieldError struct {
	// Type is the logical name of the model definition.
	Type string

	// Field is the name of the frozen field that was assigned to.
	Field string
}

// Error implements the error interface for FrozenFieldError.
//
// The error message format is:
//
//	"dxobj: cannot assign to frozen field {Type}.{Field}"
//
// For example:
//
//	"dxobj: cannot assign to frozen field User.id"
func (e *FrozenFieldError) Error() string {
	return "dxobj: cannot assign to frozen field " + e.Type + "." + e.Field
}

// SchemaError is returned when reconstructing a model definition from a
// schema document fails.
//
// Reason describes the failure (missing properties, an unsupported type
// descriptor, or a fixed-point resolution pass that resolves nothing), and
// Ref optionally names the reference or definition entry involved.
//
// SchemaError is raised once, synchronously, at reconstruction time; no
// partial model definition is ever returned alongside it.
//
// # Example
//
//	if !progressed {
//	    return nil, &errors.SchemaError{
//	        Reason: "no $defs entry could be resolved",
//	        Ref:    strings.Join(pending, ", "),
//	    }
//	}
type SchemaError struct {
	// Reason is a short, human-readable explanation of the failure.
	Reason string

	// Ref optionally names the $ref target or $defs entry involved.
	Ref string
}

// Error implements the error interface for SchemaError.
//
// The error message format is:
//
//	"dxobj: schema error: {Reason}"            (when Ref is empty)
//	"dxobj: schema error: {Reason} ({Ref})"    (when Ref is set)
//
// For example:
//
//	"dxobj: schema error: document has no properties"
//	"dxobj: schema error: unresolvable reference (#/$defs/Inner)"
func (e *SchemaError) Error() string {
	if e.Ref != "" {
		return "dxobj: schema error: " + e.Reason + " (" + e.Ref + ")"
	}
	return "dxobj: schema error: " + e.Reason
}
