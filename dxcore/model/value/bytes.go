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
	"encoding/base64"
	"encoding/json"
	"strconv"

	"dirpx.dev/dxobj/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Bytes is an immutable byte buffer value type. It serializes to standard
// base64 text on the wire and round-trips arbitrary byte content, including
// sequences that are not valid UTF-8.
//
// The zero value (nil) is valid and represents an empty buffer. Construct
// from raw bytes with NewBytes, or from base64 wire text with ParseBase64.
// Callers MUST NOT mutate the underlying slice after construction; NewBytes
// copies its input so that later changes to the source slice do not leak
// into the value.
type Bytes []byte

// NewBytes returns a Bytes value holding a copy of b. The raw bytes are
// taken as-is; any byte content is valid.
func NewBytes(b []byte) Bytes {
	if len(b) == 0 {
		return nil
	}
	out := make(Bytes, len(b))
	copy(out, b)
	return out
}

// ParseBase64 decodes standard base64 text (the wire form) into a Bytes
// value. Malformed base64 input is rejected with a *errors.ParseError.
func ParseBase64(s string) (Bytes, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &errors.ParseError{Type: "Bytes", Value: s}
	}
	return Bytes(decoded), nil
}

// String returns the base64 text form of the buffer.
func (b Bytes) String() string {
	return base64.StdEncoding.EncodeToString(b)
}

// Redacted returns a length-only representation safe for logging; byte
// buffers frequently carry secrets or binary payloads that do not belong in
// logs.
func (b Bytes) Redacted() string {
	if len(b) == 0 {
		return "Bytes(empty)"
	}
	return "Bytes(" + strconv.Itoa(len(b)) + " bytes)"
}

// TypeName returns "Bytes".
func (b Bytes) TypeName() string {
	return "Bytes"
}

// IsZero reports whether the buffer is empty.
func (b Bytes) IsZero() bool {
	return len(b) == 0
}

// Equal reports whether both buffers hold identical byte content.
func (b Bytes) Equal(other Bytes) bool {
	return bytes.Equal(b, other)
}

// Validate always returns nil: every byte sequence is a valid Bytes value.
// The method exists so the type satisfies the model contracts.
func (b Bytes) Validate() error {
	return nil
}

// JSONSchema returns the wire schema fragment for byte buffers.
func (b Bytes) JSONSchema() map[string]any {
	return BytesSchema()
}

// BytesSchema returns the wire schema fragment for byte buffers:
// {"type":"string","format":"base64EncodedString"}.
func BytesSchema() map[string]any {
	return map[string]any{"type": "string", "format": "base64EncodedString"}
}

// MarshalJSON serializes the buffer as a base64 JSON string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON deserializes a base64 JSON string into the buffer.
// Malformed JSON or malformed base64 text is rejected with a
// *errors.UnmarshalError.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Bytes", Data: data, Reason: "not a JSON string"}
	}

	parsed, err := ParseBase64(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "Bytes", Data: data, Reason: "invalid base64 text"}
	}

	*b = parsed
	return nil
}

// MarshalYAML serializes the buffer as a base64 YAML scalar.
func (b Bytes) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// UnmarshalYAML deserializes a base64 YAML scalar into the buffer.
func (b *Bytes) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Bytes", Reason: "not a YAML scalar"}
	}

	parsed, err := ParseBase64(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "Bytes", Reason: "invalid base64 text"}
	}

	*b = parsed
	return nil
}
