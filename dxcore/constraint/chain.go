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

package constraint

import (
	"fmt"

	"dirpx.dev/dxobj/dxcore/errors"
)

// Chain is the composed validation pipeline for one string value type: the
// fold of its contributors' descriptor entries plus their transform steps.
//
// A Chain is assembled once with NewChain at type-definition time and is
// immutable afterwards; it may be shared freely across goroutines.
type Chain struct {
	contributors []Contributor
	desc         Descriptor
}

// NewChain composes the given contributors, in declaration order, into a
// single validation pipeline.
//
// The structural descriptor is built by calling each contributor's
// Contribute in declaration order, so later contributors override earlier
// entries for the same kind. Transform steps run in the REVERSE of
// declaration order (see the package documentation for why, and for an
// observable example).
func NewChain(contributors ...Contributor) Chain {
	c := Chain{contributors: contributors}
	for _, contributor := range contributors {
		contributor.Contribute(&c.desc)
	}
	return c
}

// Descriptor returns the assembled structural descriptor.
func (c Chain) Descriptor() Descriptor {
	return c.desc
}

// Apply runs the transform pipeline over s: the last declared contributor's
// transform first, then each earlier one in turn, and returns the rewritten
// value. Apply performs no validation.
func (c Chain) Apply(s string) string {
	for i := len(c.contributors) - 1; i >= 0; i-- {
		s = c.contributors[i].Transform(s)
	}
	return s
}

// Check validates s against the structural descriptor without transforming
// it. typeName names the value type being validated and appears in the
// returned error.
//
// The first violated constraint is reported as a *errors.ValidationError
// carrying the violated kind and the rejected value. Lengths are measured
// in Unicode code points (runes), not bytes.
func (c Chain) Check(typeName, s string) error {
	runeCount := len([]rune(s))

	if c.desc.MinLength != nil && runeCount < *c.desc.MinLength {
		return &errors.ValidationError{
			Type:   typeName,
			Kind:   string(KindMinLength),
			Reason: fmt.Sprintf("too short: %d runes (minimum %d)", runeCount, *c.desc.MinLength),
			Value:  s,
		}
	}

	if c.desc.MaxLength != nil && runeCount > *c.desc.MaxLength {
		return &errors.ValidationError{
			Type:   typeName,
			Kind:   string(KindMaxLength),
			Reason: fmt.Sprintf("too long: %d runes (maximum %d)", runeCount, *c.desc.MaxLength),
			Value:  s,
		}
	}

	if c.desc.Pattern != nil && !c.desc.Pattern.MatchString(s) {
		return &errors.ValidationError{
			Type:   typeName,
			Kind:   string(KindPattern),
			Reason: fmt.Sprintf("%q does not match pattern %s", s, c.desc.Pattern.String()),
			Value:  s,
		}
	}

	return nil
}

// Parse accepts relaxed input: it runs the transform pipeline over s and
// then validates the result against the structural descriptor. On success
// the transformed value is returned; on failure the transformed (rejected)
// value is reported inside the error and the empty string is returned.
//
// This is the boundary where untrusted input is accepted into a value type;
// values already known to satisfy the constraints can skip Parse and be
// checked with Check directly.
func (c Chain) Parse(typeName, s string) (string, error) {
	transformed := c.Apply(s)
	if err := c.Check(typeName, transformed); err != nil {
		return "", err
	}
	return transformed, nil
}
