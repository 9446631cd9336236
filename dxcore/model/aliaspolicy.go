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

	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/textutil"
)

// AliasPolicy controls how a definition derives each field's wire name from
// its snake_case code name.
//
// A definition's fields are declared with snake_case code names. On the
// wire, consumers may expect camelCase keys (the JSON convention), the code
// names unchanged, or PascalCase keys. AliasPolicy encapsulates this choice
// so that different definitions can serve different wire conventions while
// input always remains acceptable under both the code name and the derived
// wire name.
//
// An explicit Field.Wire value always wins over the policy.
type AliasPolicy int

const (
	// CamelWire derives wire names by camelCase conversion, mapping
	// "foo_bar" to "fooBar". This is the default policy and matches the
	// dominant JSON convention.
	CamelWire AliasPolicy = iota

	// IdentityWire keeps the snake_case code name as the wire name,
	// mapping "foo_bar" to "foo_bar".
	IdentityWire

	// PascalWire derives wire names by PascalCase conversion, mapping
	// "foo_bar" to "FooBar".
	PascalWire
)

// Compile-time check that AliasPolicy implements the Model interface.
var _ Model = (*AliasPolicy)(nil)

// String constants for AliasPolicy values used in serialization, parsing,
// and human-facing output.
//
// These constants define the canonical external representation of
// AliasPolicy and MAY be used in configuration files and JSON/YAML
// payloads. Changing any of these strings is a breaking change for
// consumers that rely on textual configuration.
const (
	CamelWireStr    = "camel"
	IdentityWireStr = "identity"
	PascalWireStr   = "pascal"
)

// String returns the canonical string representation of the AliasPolicy
// value: "camel", "identity", or "pascal". If the value is not one of the
// defined constants, String returns "unknown".
func (p AliasPolicy) String() string {
	switch p {
	case CamelWire:
		return CamelWireStr
	case IdentityWire:
		return IdentityWireStr
	case PascalWire:
		return PascalWireStr
	default:
		return "unknown"
	}
}

// ParseAliasPolicy converts a textual representation into an AliasPolicy
// value. A small set of stylistic variants is accepted to keep
// configuration forgiving while String() preserves a single canonical
// output form:
//
//	"camel", "camelCase", "CAMEL"          -> CamelWire
//	"identity", "snake", "snake_case"      -> IdentityWire
//	"pascal", "PascalCase", "PASCAL"       -> PascalWire
//
// If the input does not match any known policy, ParseAliasPolicy returns a
// non-nil *errors.ParseError; in that case the returned AliasPolicy MUST
// NOT be used.
func ParseAliasPolicy(str string) (AliasPolicy, error) {
	switch str {
	case CamelWireStr, "camelCase", "CAMEL":
		return CamelWire, nil
	case IdentityWireStr, "snake", "snake_case", "IDENTITY":
		return IdentityWire, nil
	case PascalWireStr, "PascalCase", "PASCAL":
		return PascalWire, nil
	default:
		return CamelWire, &errors.ParseError{Type: "AliasPolicy", Value: str}
	}
}

// Valid reports whether the AliasPolicy value is one of the defined
// constants. It is primarily useful when values may have been created via
// deserialization or numeric casts.
func (p AliasPolicy) Valid() bool {
	return p == CamelWire || p == IdentityWire || p == PascalWire
}

// Apply derives the wire name for the given snake_case code name under
// this policy. An invalid policy falls back to camelCase derivation.
func (p AliasPolicy) Apply(codeName string) string {
	switch p {
	case IdentityWire:
		return codeName
	case PascalWire:
		return textutil.ToPascal(codeName)
	default:
		return textutil.ToCamel(codeName)
	}
}

// MarshalJSON implements json.Marshaler for AliasPolicy.
//
// A valid policy is serialized as its canonical string representation. An
// invalid value yields a *errors.MarshalError instead of JSON output, so
// that broken values surface at encoding time rather than leaking into
// payloads.
func (p AliasPolicy) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "AliasPolicy", Reason: "value outside defined constants"}
	}
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for AliasPolicy.
//
// Both string and numeric JSON representations are accepted. String input
// is resolved via ParseAliasPolicy and is the preferred, stable form;
// numeric input maps declaration-order constants (0, 1, 2) and exists for
// compatibility with configurations that store enum-like values as
// integers.
func (p *AliasPolicy) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "AliasPolicy", Data: data, Reason: "empty data"}
	}

	// Try string format first.
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "AliasPolicy", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseAliasPolicy(str)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	// Fallback to numeric format.
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "AliasPolicy", Data: data, Reason: err.Error()}
	}
	*p = AliasPolicy(i)
	if !p.Valid() {
		return &errors.UnmarshalError{Type: "AliasPolicy", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler for AliasPolicy, returning
// the same canonical string as String(). An invalid value yields a
// *errors.MarshalError.
func (p AliasPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "AliasPolicy", Reason: "value outside defined constants"}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for AliasPolicy,
// accepting the same vocabulary as ParseAliasPolicy.
func (p *AliasPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseAliasPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TypeName returns "AliasPolicy", the name of the type for logging and
// debugging.
func (p AliasPolicy) TypeName() string {
	return "AliasPolicy"
}

// Redacted returns the same string representation as String(). AliasPolicy
// values contain no sensitive information.
func (p AliasPolicy) Redacted() string {
	return p.String()
}

// IsZero reports whether the AliasPolicy has its zero value.
//
// The zero value is CamelWire, which is a valid policy, so IsZero
// returning true does not indicate an error condition; it indicates the
// field was left at its default.
func (p AliasPolicy) IsZero() bool {
	return p == CamelWire
}

// Equal reports whether this AliasPolicy is equal to another value. The
// method accepts AliasPolicy or *AliasPolicy.
func (p AliasPolicy) Equal(other any) bool {
	switch v := other.(type) {
	case AliasPolicy:
		return p == v
	case *AliasPolicy:
		if v == nil {
			return false
		}
		return p == *v
	default:
		return false
	}
}

// Validate checks whether the AliasPolicy value is one of the defined
// constants. It is typically called after deserialization or numeric casts
// before the policy drives wire-name derivation.
func (p AliasPolicy) Validate() error {
	if !p.Valid() {
		return &errors.ValidationError{Type: "AliasPolicy", Reason: "value outside defined constants", Value: int(p)}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for AliasPolicy, serializing the
// canonical string form. An invalid value yields a *errors.MarshalError.
func (p AliasPolicy) MarshalYAML() (any, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "AliasPolicy", Reason: "value outside defined constants"}
	}
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for AliasPolicy, accepting the
// string forms resolved by ParseAliasPolicy.
func (p *AliasPolicy) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "AliasPolicy", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseAliasPolicy(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
