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
	"encoding/json"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
)

// Timestamp is a point in time stored as microseconds since the Unix
// epoch, UTC. On the wire it is a bare integer, never a formatted string;
// parsing from text is available but serialization is always numeric.
//
// The zero Timestamp is the epoch itself and reports IsZero() == true.
type Timestamp int64

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return TimestampFromTime(time.Now())
}

// TimestampFromTime converts a time.Time, truncating to microseconds.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMicro())
}

// TimestampFromSeconds converts fractional epoch seconds, truncating
// toward zero at microsecond precision.
func TimestampFromSeconds(v float64) Timestamp {
	return Timestamp(int64(v * 1e6))
}

// ParseTimestamp parses a timestamp from text. Integer text is taken as
// microseconds since the epoch; any other text is parsed as a date in one
// of the common interchange formats (RFC 3339, RFC 1123, yyyy-mm-dd and
// friends). Unrecognizable text yields a *errors.ParseError.
func ParseTimestamp(s string) (Timestamp, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp(n), nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return 0, &errors.ParseError{Type: "Timestamp", Value: s}
	}
	return TimestampFromTime(t), nil
}

// Microseconds returns the raw microsecond count since the epoch.
func (ts Timestamp) Microseconds() int64 {
	return int64(ts)
}

// Milliseconds returns the timestamp truncated to millisecond precision.
func (ts Timestamp) Milliseconds() int64 {
	return int64(ts) / 1000
}

// Seconds returns the timestamp as fractional epoch seconds.
func (ts Timestamp) Seconds() float64 {
	return float64(ts) / 1e6
}

// Time returns the timestamp as a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.UnixMicro(int64(ts)).UTC()
}

// String returns the RFC 3339 rendering with microsecond precision. This
// is a display form only; serialization stays numeric.
func (ts Timestamp) String() string {
	return ts.Time().Format("2006-01-02T15:04:05.999999Z07:00")
}

// Redacted returns the display form. Timestamps carry no secret material.
func (ts Timestamp) Redacted() string {
	return ts.String()
}

// TypeName identifies the concrete value type for error reporting.
func (ts Timestamp) TypeName() string {
	return "Timestamp"
}

// IsZero reports whether ts is the epoch.
func (ts Timestamp) IsZero() bool {
	return ts == 0
}

// Equal reports whether ts and other denote the same microsecond.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts == other
}

// Validate checks structural validity. Every Timestamp value representable
// in Go is valid.
func (ts Timestamp) Validate() error {
	return nil
}

// JSONSchema returns the wire schema fragment for Timestamp values.
func (ts Timestamp) JSONSchema() map[string]any {
	return TimestampSchema()
}

// TimestampSchema returns the wire schema fragment shared by every
// Timestamp-typed field.
func TimestampSchema() map[string]any {
	return map[string]any{"type": "integer", "format": "timestamp"}
}

// MarshalJSON encodes the timestamp as a bare integer microsecond count.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(ts), 10)), nil
}

// UnmarshalJSON decodes a bare integer microsecond count. Fractional or
// string input is rejected; callers wanting lenient parsing should go
// through ParseTimestamp.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return &errors.UnmarshalError{Type: "Timestamp", Data: data, Reason: "not a JSON number"}
	}
	v, err := n.Int64()
	if err != nil {
		return &errors.UnmarshalError{Type: "Timestamp", Data: data, Reason: "not an integer microsecond count"}
	}
	*ts = Timestamp(v)
	return nil
}

// MarshalYAML encodes the timestamp as a bare integer microsecond count.
func (ts Timestamp) MarshalYAML() (any, error) {
	return int64(ts), nil
}

// UnmarshalYAML decodes a bare integer microsecond count.
func (ts *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	var v int64
	if err := node.Decode(&v); err != nil {
		return &errors.UnmarshalError{Type: "Timestamp", Data: []byte(node.Value), Reason: "not an integer microsecond count"}
	}
	*ts = Timestamp(v)
	return nil
}
