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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
)

// FilePath is a cleaned filesystem path expected to name a regular file.
// Validate is pure and only rejects the empty path; whether the file
// actually exists is a separate, explicitly I/O-bearing question answered
// by Check.
type FilePath string

// ParseFilePath cleans raw and returns it as a FilePath. The empty string
// is a *errors.ParseError.
func ParseFilePath(raw string) (FilePath, error) {
	if raw == "" {
		return "", &errors.ParseError{Type: "FilePath", Value: raw}
	}
	return FilePath(filepath.Clean(raw)), nil
}

// String returns the cleaned path text.
func (p FilePath) String() string {
	return string(p)
}

// Redacted returns the path text. Paths are not treated as secrets.
func (p FilePath) Redacted() string {
	return string(p)
}

// TypeName identifies the concrete value type for error reporting.
func (p FilePath) TypeName() string {
	return "FilePath"
}

// IsZero reports whether p is the empty path.
func (p FilePath) IsZero() bool {
	return p == ""
}

// Validate rejects the empty path. It performs no I/O.
func (p FilePath) Validate() error {
	if p == "" {
		return &errors.ValidationError{Type: "FilePath", Reason: "path is empty"}
	}
	return nil
}

// Check stats the path and reports an error unless it names an existing
// regular file.
func (p FilePath) Check() error {
	info, err := os.Stat(string(p))
	if err != nil {
		return &errors.ValidationError{Type: "FilePath", Reason: "path does not exist", Value: string(p)}
	}
	if info.IsDir() {
		return &errors.ValidationError{Type: "FilePath", Reason: "path is a directory, not a file", Value: string(p)}
	}
	return nil
}

// JSONSchema returns the wire schema fragment for FilePath values.
func (p FilePath) JSONSchema() map[string]any {
	return map[string]any{"type": "string", "format": "path"}
}

// MarshalJSON encodes the path as a JSON string.
func (p FilePath) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: "FilePath", Reason: err.Error()}
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON decodes and cleans a JSON string path.
func (p *FilePath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "FilePath", Data: data, Reason: "not a JSON string"}
	}
	parsed, err := ParseFilePath(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "FilePath", Data: data, Reason: "empty path"}
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the path as a YAML scalar.
func (p FilePath) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: "FilePath", Reason: err.Error()}
	}
	return string(p), nil
}

// UnmarshalYAML decodes and cleans a YAML scalar path.
func (p *FilePath) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "FilePath", Data: []byte(node.Value), Reason: "not a YAML scalar"}
	}
	parsed, err := ParseFilePath(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "FilePath", Data: []byte(node.Value), Reason: "empty path"}
	}
	*p = parsed
	return nil
}

// DirectoryPath is a cleaned filesystem path expected to name a directory.
// Validate is pure; existence is checked separately by Check.
type DirectoryPath string

// ParseDirectoryPath cleans raw and returns it as a DirectoryPath. The
// empty string is a *errors.ParseError.
func ParseDirectoryPath(raw string) (DirectoryPath, error) {
	if raw == "" {
		return "", &errors.ParseError{Type: "DirectoryPath", Value: raw}
	}
	return DirectoryPath(filepath.Clean(raw)), nil
}

// String returns the cleaned path text.
func (p DirectoryPath) String() string {
	return string(p)
}

// Redacted returns the path text. Paths are not treated as secrets.
func (p DirectoryPath) Redacted() string {
	return string(p)
}

// TypeName identifies the concrete value type for error reporting.
func (p DirectoryPath) TypeName() string {
	return "DirectoryPath"
}

// IsZero reports whether p is the empty path.
func (p DirectoryPath) IsZero() bool {
	return p == ""
}

// Validate rejects the empty path. It performs no I/O.
func (p DirectoryPath) Validate() error {
	if p == "" {
		return &errors.ValidationError{Type: "DirectoryPath", Reason: "path is empty"}
	}
	return nil
}

// Check stats the path and reports an error unless it names an existing
// directory.
func (p DirectoryPath) Check() error {
	info, err := os.Stat(string(p))
	if err != nil {
		return &errors.ValidationError{Type: "DirectoryPath", Reason: "path does not exist", Value: string(p)}
	}
	if !info.IsDir() {
		return &errors.ValidationError{Type: "DirectoryPath", Reason: "path is not a directory", Value: string(p)}
	}
	return nil
}

// JSONSchema returns the wire schema fragment for DirectoryPath values.
func (p DirectoryPath) JSONSchema() map[string]any {
	return map[string]any{"type": "string", "format": "path"}
}

// MarshalJSON encodes the path as a JSON string.
func (p DirectoryPath) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: "DirectoryPath", Reason: err.Error()}
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON decodes and cleans a JSON string path.
func (p *DirectoryPath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "DirectoryPath", Data: data, Reason: "not a JSON string"}
	}
	parsed, err := ParseDirectoryPath(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "DirectoryPath", Data: data, Reason: "empty path"}
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the path as a YAML scalar.
func (p DirectoryPath) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: "DirectoryPath", Reason: err.Error()}
	}
	return string(p), nil
}

// UnmarshalYAML decodes and cleans a YAML scalar path.
func (p *DirectoryPath) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "DirectoryPath", Data: []byte(node.Value), Reason: "not a YAML scalar"}
	}
	parsed, err := ParseDirectoryPath(s)
	if err != nil {
		return &errors.UnmarshalError{Type: "DirectoryPath", Data: []byte(node.Value), Reason: "empty path"}
	}
	*p = parsed
	return nil
}

// Join appends elements to the directory path, cleaning the result.
func (p DirectoryPath) Join(elem ...string) FilePath {
	parts := append([]string{string(p)}, elem...)
	return FilePath(filepath.Join(parts...))
}
