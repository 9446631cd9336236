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

package value

import (
	"bytes"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
)

// Id is a 128-bit lexicographically sortable entity identifier. The
// canonical text form is the 26-character Crockford base32 ULID encoding;
// this is also the only text form that parsing accepts.
//
// The zero Id is all zero bytes and reports IsZero() == true.
type Id ulid.ULID

// GenerateId returns a fresh monotonic Id stamped with the current time.
func GenerateId() Id {
	return Id(ulid.Make())
}

// ParseId parses the 26-character Crockford base32 text form of an Id.
// Any other length or alphabet yields a *errors.ParseError.
func ParseId(s string) (Id, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return Id{}, &errors.ParseError{Type: "Id", Value: s}
	}
	return Id(u), nil
}

// IdFromBytes builds an Id from its 16-byte binary form.
func IdFromBytes(b []byte) (Id, error) {
	if len(b) != 16 {
		return Id{}, &errors.ParseError{Type: "Id", Value: string(b)}
	}
	var id Id
	copy(id[:], b)
	return id, nil
}

// String returns the canonical 26-character Crockford base32 form.
func (id Id) String() string {
	return ulid.ULID(id).String()
}

// Redacted returns the canonical text form. Identifiers carry no secret
// material, so the log form equals the wire form.
func (id Id) Redacted() string {
	return id.String()
}

// TypeName identifies the concrete value type for error reporting.
func (id Id) TypeName() string {
	return "Id"
}

// Bytes returns a copy of the 16-byte binary form.
func (id Id) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, id[:])
	return out
}

// IsZero reports whether id is the all-zero identifier.
func (id Id) IsZero() bool {
	return id == Id{}
}

// Equal reports whether id and other carry the same 16 bytes.
func (id Id) Equal(other Id) bool {
	return id == other
}

// Compare returns -1, 0, or 1 ordering id against other bytewise, which
// for time-ordered identifiers is creation order.
func (id Id) Compare(other Id) int {
	return bytes.Compare(id[:], other[:])
}

// Time returns the millisecond timestamp embedded in the identifier.
func (id Id) Time() uint64 {
	return ulid.ULID(id).Time()
}

// Validate checks structural validity. Every Id value representable in Go
// is valid, including the zero Id.
func (id Id) Validate() error {
	return nil
}

// JSONSchema returns the wire schema fragment for Id values.
func (id Id) JSONSchema() map[string]any {
	return IdSchema()
}

// IdSchema returns the wire schema fragment shared by every Id-typed field.
func IdSchema() map[string]any {
	return map[string]any{"type": "string", "format": "crockfordBase32"}
}

// MarshalJSON encodes the identifier as its canonical JSON string form.
func (id Id) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes a JSON string in canonical form.
func (id *Id) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Id", Data: data, Reason: "not a JSON string"}
	}
	parsed, err := ParseId(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "Id", Data: data, Reason: "invalid identifier text"}
	}
	*id = parsed
	return nil
}

// MarshalYAML encodes the identifier as its canonical string form.
func (id Id) MarshalYAML() (any, error) {
	return id.String(), nil
}

// UnmarshalYAML decodes a YAML scalar in canonical form.
func (id *Id) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Id", Data: []byte(node.Value), Reason: "not a YAML scalar"}
	}
	parsed, err := ParseId(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "Id", Data: []byte(node.Value), Reason: "invalid identifier text"}
	}
	*id = parsed
	return nil
}
