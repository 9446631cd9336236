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

// Package textutil provides pure text utilities shared by the dxobj value
// types: Unicode text normalization and identifier case conversion.
//
// Normalization folds visually equivalent glyph variants (dash glyphs,
// exotic space characters, curly quotes) into their plain ASCII forms on top
// of Unicode NFKC normalization, and fixes up spacing around parentheses.
// It is used by the constraint package's Normalized contributor and can be
// called directly on any text.
//
// Case conversion maps between the snake_case code names used inside model
// definitions and the camelCase wire names used in JSON payloads. It wraps
// github.com/iancoleman/strcase rather than reimplementing the conversion
// rules.
//
// Every function in this package is pure, deterministic, performs no I/O,
// and is safe to call concurrently.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldTable maps visually equivalent glyph variants to their plain ASCII
// forms. It is applied rune-by-rune after NFKC normalization, collapsing
// the many Unicode dash glyphs to '-', exotic space characters (full-width
// space, zero-width space, BOM, tab) to a single ASCII space, and curly
// quotes to straight quotes.
//
// NFKC already folds most compatibility characters (full-width Latin,
// half-width katakana, superscript digits); this table covers only the
// variants NFKC leaves alone.
var foldTable = map[rune]rune{
	'˗': '-', // modifier letter minus sign
	'֊': '-', // armenian hyphen
	'‐': '-', // hyphen
	'‑': '-', // non-breaking hyphen
	'‒': '-', // figure dash
	'–': '-', // en dash
	'⁃': '-', // hyphen bullet
	'⁻': '-', // superscript minus
	'₋': '-', // subscript minus
	'−': '-', // minus sign
	'　': ' ', // ideographic space
	'\u200b': ' ', // zero width space
	'\ufeff': ' ', // byte order mark
	'\t':     ' ',
	'“': '"',  // left double quotation mark
	'”': '"',  // right double quotation mark
	'‘': '\'', // left single quotation mark
	'’': '\'', // right single quotation mark
}

var (
	// parenLeft matches a non-space, non-open-paren rune immediately
	// followed by an opening parenthesis. Used to insert a separating
	// space so that "word(note)" becomes "word (note)".
	parenLeft = regexp.MustCompile(`([^\s(])\(`)

	// parenRight matches a closing parenthesis immediately followed by a
	// non-space, non-close-paren rune. Used to insert a separating space
	// so that "(note)word" becomes "(note) word".
	parenRight = regexp.MustCompile(`\)([^\s)])`)

	newlineRun         = regexp.MustCompile(`[\n\r]`)
	multiSpaceRun      = regexp.MustCompile(` +`)
	variationSelectors = regexp.MustCompile(`[\x{E0100}-\x{E01EF}]`)
)

// NormalizeOptions controls the optional post-processing steps applied by
// NormalizeWith after the core normalization pipeline has run.
//
// The zero value applies no optional step, which is the behavior of
// Normalize.
type NormalizeOptions struct {
	// NewlineToSpace replaces LF and CR characters with a single space.
	NewlineToSpace bool

	// CollapseSpaces replaces every run of consecutive ASCII spaces with
	// a single space. Runs produced by earlier steps (such as tab folding)
	// are collapsed as well.
	CollapseSpaces bool

	// StripVariationSelectors removes the ideographic variation selector
	// code points U+E0100 through U+E01EF.
	StripVariationSelectors bool
}

// Normalize returns the canonical form of the given text.
//
// The steps are applied in this exact order:
//
//  1. Unicode NFKC normalization, which folds compatibility characters
//     such as full-width Latin letters, half-width katakana, full-width
//     punctuation and most exotic space characters.
//  2. Glyph folding via a substitution table: remaining dash variants
//     become '-', full-width/zero-width spaces, BOM and tab become an
//     ASCII space, and curly quotes become straight quotes.
//  3. A single space is inserted between a non-space, non-open-paren rune
//     and an immediately following '('.
//  4. A single space is inserted between a ')' and an immediately
//     following non-space, non-close-paren rune.
//
// Normalize is pure, total and deterministic; it has no failure mode.
// It is NOT guaranteed to be idempotent: the parenthesis-spacing steps are
// best-effort single-pass behavior, and callers MUST NOT assume repeated
// application is a no-op for every input.
//
// Example:
//
//	textutil.Normalize("Ｈａｌｆ　Ｗｉｄｔｈ") // "Half Width"
//	textutil.Normalize("word(note)")          // "word (note)"
func Normalize(s string) string {
	return NormalizeWith(s, NormalizeOptions{})
}

// NormalizeWith behaves like Normalize and then applies the optional steps
// selected by opts, in the order the fields are declared on
// NormalizeOptions: newline replacement, space collapsing, variation
// selector removal.
//
// Like Normalize, it is pure and total. Passing the zero NormalizeOptions
// makes NormalizeWith equivalent to Normalize.
func NormalizeWith(s string, opts NormalizeOptions) string {
	out := norm.NFKC.String(s)

	out = strings.Map(func(r rune) rune {
		if folded, ok := foldTable[r]; ok {
			return folded
		}
		return r
	}, out)

	out = parenLeft.ReplaceAllString(out, "${1} (")
	out = parenRight.ReplaceAllString(out, ") ${1}")

	if opts.NewlineToSpace {
		out = newlineRun.ReplaceAllString(out, " ")
	}
	if opts.CollapseSpaces {
		out = multiSpaceRun.ReplaceAllString(out, " ")
	}
	if opts.StripVariationSelectors {
		out = variationSelectors.ReplaceAllString(out, "")
	}

	return out
}
