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

// Package constraint implements the composable validation pipeline used by
// the dxobj string value types.
//
// A constraint is contributed by a Contributor: an independently defined
// behavior that may add one entry to the structural Descriptor (a minimum
// length, a maximum length, a regex pattern) and may rewrite the input value
// before the structural check runs (substitution, Unicode normalization,
// case conversion, whitespace trimming).
//
// Contributors combine by linear composition into a Chain. The descriptor is
// the fold of every contributor's Contribute call in declaration order, so a
// later contributor's entry for the same kind overrides an earlier one
// (last-writer-wins). The transform pipeline is order-dependent and runs in
// the REVERSE of declaration order: for NewChain(A, B) an input value is
// transformed by B first, then by A, then the jointly assembled structural
// check runs. This mirrors cooperative delegate-then-wrap composition, where
// the outermost declared behavior runs last. The order is observable:
// NewChain(Trimmed(), Normalized()) normalizes full-width spaces to ASCII
// before trimming them, while the reverse declaration trims first and leaves
// full-width spaces behind for normalization to convert.
//
// Chains are assembled once at type-definition time and are immutable and
// read-only thereafter, so they are safe to share across goroutines without
// locking.
package constraint

import (
	"regexp"
)

// Kind names a constraint kind contributed to a Descriptor or a transform
// step in a Chain. Kind values appear in validation errors so that callers
// can report precisely which rule rejected a value.
type Kind string

const (
	// KindMinLength is the minimum-length structural constraint, measured
	// in Unicode code points (runes), inclusive.
	KindMinLength Kind = "min_length"

	// KindMaxLength is the maximum-length structural constraint, measured
	// in Unicode code points (runes), inclusive.
	KindMaxLength Kind = "max_length"

	// KindPattern is the regex-match structural constraint; values that do
	// not match the pattern are rejected.
	KindPattern Kind = "pattern"

	// KindSubstitute is the regex-substitution transform step.
	KindSubstitute Kind = "substitute"

	// KindTrim is the strip-leading/trailing-whitespace transform step.
	KindTrim Kind = "strip_whitespace"

	// KindNormalize is the Unicode text normalization transform step.
	KindNormalize Kind = "normalize"

	// KindSnakeCase is the snake_case conversion transform step.
	KindSnakeCase Kind = "snake_case"

	// KindCamelCase is the camelCase conversion transform step.
	KindCamelCase Kind = "camel_case"

	// KindMinimum is the inclusive lower-bound constraint on numeric value
	// types. It never appears in a string Descriptor; it is shared here so
	// that numeric and string validation errors draw kind names from one
	// vocabulary.
	KindMinimum Kind = "minimum"

	// KindMaximum is the inclusive upper-bound constraint on numeric value
	// types.
	KindMaximum Kind = "maximum"
)

// Descriptor is the structural validation descriptor assembled from the
// contributors of a Chain: a mapping from constraint kind to its configured
// value. Each kind appears at most once; when several contributors set the
// same kind the last contribution in declaration order wins.
//
// A nil pointer field means the corresponding constraint is absent. The
// zero Descriptor accepts every string.
type Descriptor struct {
	// MinLength is the inclusive minimum length in runes, or nil.
	MinLength *int

	// MaxLength is the inclusive maximum length in runes, or nil.
	MaxLength *int

	// Pattern is the regular expression a value must match, or nil.
	Pattern *regexp.Regexp
}

// JSONSchema returns the JSON-Schema fragment entries for the constraints
// present in the descriptor: "minLength", "maxLength" and "pattern". Absent
// constraints contribute no entry. The caller merges the result into a
// complete `{"type":"string", ...}` fragment.
func (d Descriptor) JSONSchema() map[string]any {
	fragment := map[string]any{}
	if d.MinLength != nil {
		fragment["minLength"] = *d.MinLength
	}
	if d.MaxLength != nil {
		fragment["maxLength"] = *d.MaxLength
	}
	if d.Pattern != nil {
		fragment["pattern"] = d.Pattern.String()
	}
	return fragment
}

// Contributor is one independently defined constraint behavior.
//
// Contribute merges the contributor's structural entry, if any, into the
// descriptor; contributors without a structural entry leave the descriptor
// untouched. Transform rewrites a value before the structural check;
// contributors without a transform step return the value unchanged.
//
// Implementations MUST be stateless after construction: Contribute and
// Transform are called on shared chains from any goroutine.
type Contributor interface {
	// Contribute merges this contributor's descriptor entry, if any,
	// into d. Called once per contributor, in declaration order, at
	// chain construction time.
	Contribute(d *Descriptor)

	// Transform rewrites the input value. Pure and deterministic; called
	// in reverse declaration order before the structural check.
	Transform(s string) string
}
