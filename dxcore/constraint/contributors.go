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
	"regexp"
	"strings"

	"dirpx.dev/dxobj/dxcore/textutil"
)

// MinLength returns a contributor that constrains values to at least n
// runes, inclusive. It has no transform step.
func MinLength(n int) Contributor {
	return minLength(n)
}

type minLength int

func (m minLength) Contribute(d *Descriptor) {
	n := int(m)
	d.MinLength = &n
}

func (m minLength) Transform(s string) string { return s }

// MaxLength returns a contributor that constrains values to at most n
// runes, inclusive. It has no transform step.
func MaxLength(n int) Contributor {
	return maxLength(n)
}

type maxLength int

func (m maxLength) Contribute(d *Descriptor) {
	n := int(m)
	d.MaxLength = &n
}

func (m maxLength) Transform(s string) string { return s }

// Pattern returns a contributor that rejects values not matching re. It has
// no transform step.
//
// The expression is compiled with regexp.MustCompile, so a malformed
// pattern panics at type-definition time rather than surfacing as a runtime
// validation error.
func Pattern(re string) Contributor {
	return pattern{regexp.MustCompile(re)}
}

type pattern struct {
	re *regexp.Regexp
}

func (p pattern) Contribute(d *Descriptor) { d.Pattern = p.re }

func (p pattern) Transform(s string) string { return s }

// Rule is one regex substitution applied by the Substitute contributor:
// every match of Pattern is replaced with Replacement. Replacement may use
// the expansion syntax of regexp.ReplaceAllString (for example "${1}").
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles a pattern and pairs it with a replacement. A malformed
// pattern panics at type-definition time.
func NewRule(re, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(re), Replacement: replacement}
}

// Substitute returns a contributor whose transform step applies the given
// substitution rules in order. It contributes no structural entry.
//
// Each rule replaces every match in the value produced by the previous
// rule, so rule order is significant.
func Substitute(rules ...Rule) Contributor {
	return substitute(rules)
}

type substitute []Rule

func (sub substitute) Contribute(d *Descriptor) {}

func (sub substitute) Transform(s string) string {
	for _, r := range sub {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return s
}

// Trimmed returns a contributor whose transform step strips leading and
// trailing Unicode whitespace. It contributes no structural entry.
func Trimmed() Contributor {
	return trimmed{}
}

type trimmed struct{}

func (trimmed) Contribute(d *Descriptor) {}

func (trimmed) Transform(s string) string { return strings.TrimSpace(s) }

// Normalized returns a contributor whose transform step applies
// textutil.Normalize: NFKC normalization, glyph folding and parenthesis
// spacing. It contributes no structural entry.
func Normalized() Contributor {
	return normalized{}
}

type normalized struct{}

func (normalized) Contribute(d *Descriptor) {}

func (normalized) Transform(s string) string { return textutil.Normalize(s) }

// SnakeCased returns a contributor whose transform step converts the value
// to snake_case. It contributes no structural entry.
func SnakeCased() Contributor {
	return snakeCased{}
}

type snakeCased struct{}

func (snakeCased) Contribute(d *Descriptor) {}

func (snakeCased) Transform(s string) string { return textutil.ToSnake(s) }

// CamelCased returns a contributor whose transform step converts the value
// to lower camelCase. It contributes no structural entry.
func CamelCased() Contributor {
	return camelCased{}
}

type camelCased struct{}

func (camelCased) Contribute(d *Descriptor) {}

func (camelCased) Transform(s string) string { return textutil.ToCamel(s) }
