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

// Package value provides the dxobj value type family: validated wrappers
// over strings, bytes, integers, floats, identifiers and timestamps with
// predictable JSON and YAML wire representations.
//
// String values are described by a StringSpec assembled from constraint
// contributors; bytes serialize as standard base64 text; identifiers are
// 128-bit time-ordered values with a fixed 26-character Crockford base32
// encoding; timestamps are microsecond-resolution integers since the Unix
// epoch. Every type exposes its JSON-Schema wire fragment so that model
// definitions can emit complete schemas.
//
// Values are immutable after construction. Specs are assembled once at
// type-definition time and are read-only thereafter; both are safe to share
// across goroutines without locking.
package value

import (
	"dirpx.dev/dxobj/dxcore/constraint"
)

// StringSpec describes one bounded/pattern string value type: a type name
// plus the composed constraint chain that validates and transforms its
// values.
//
// A StringSpec plays the role the concrete string subtypes play in dynamic
// languages: it is defined once, attached to a model field or used
// standalone, and applied to every candidate value. Assemble specs at
// package init or type-definition time and treat them as read-only.
type StringSpec struct {
	name  string
	chain constraint.Chain
}

// NewStringSpec composes the given contributors into a string value type
// named name. The contributor order is significant; see the constraint
// package documentation for the composition rules.
func NewStringSpec(name string, contributors ...constraint.Contributor) StringSpec {
	return StringSpec{name: name, chain: constraint.NewChain(contributors...)}
}

// Name returns the logical type name used in validation errors and schema
// titles.
func (s StringSpec) Name() string {
	return s.name
}

// Chain returns the spec's composed constraint chain.
func (s StringSpec) Chain() constraint.Chain {
	return s.chain
}

// New accepts strict input: v MUST already satisfy the structural
// constraints as given; no transform is applied. Use Parse for input that
// still needs the transform pipeline.
func (s StringSpec) New(v string) (string, error) {
	if err := s.Validate(v); err != nil {
		return "", err
	}
	return v, nil
}

// Parse accepts relaxed input: the transform pipeline rewrites raw, then
// the structural constraints are checked. On success the transformed value
// is returned.
//
// Parse is the boundary for untrusted input. Values constructed from
// already-known-valid internal data can skip Parse and be verified with
// Validate when needed.
func (s StringSpec) Parse(raw string) (string, error) {
	return s.chain.Parse(s.name, raw)
}

// Validate checks that v satisfies the structural constraints without
// transforming it. It returns nil for a conforming value, or a
// *errors.ValidationError carrying the violated constraint kind.
func (s StringSpec) Validate(v string) error {
	return s.chain.Check(s.name, v)
}

// JSONSchema returns the wire schema fragment for values of this type:
// {"type":"string"} plus the assembled length and pattern constraints.
func (s StringSpec) JSONSchema() map[string]any {
	fragment := s.chain.Descriptor().JSONSchema()
	fragment["type"] = "string"
	return fragment
}

// NonEmptyString returns the stock spec for strings of at least one rune.
func NonEmptyString() StringSpec {
	return NewStringSpec("NonEmptyString", constraint.MinLength(1))
}

// TrimmedString returns the stock spec for strings with surrounding
// whitespace stripped on input.
func TrimmedString() StringSpec {
	return NewStringSpec("TrimmedString", constraint.Trimmed())
}

// NormalizedString returns the stock spec for strings normalized with
// textutil.Normalize on input.
func NormalizedString() StringSpec {
	return NewStringSpec("NormalizedString", constraint.Normalized())
}
