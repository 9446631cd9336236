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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model/value"
)

// Instance is one object constructed through a Definition: an ordered,
// typed field-value map carrying the definition's identity and timestamp
// semantics. Instances are created with Definition.New or
// Definition.FromJSON; the zero Instance is unbound and unusable except as
// an unmarshal error sentinel.
//
// Reads are safe concurrently; Set mutates the receiver and requires
// external synchronization.
type Instance struct {
	def    *Definition
	values map[string]any
}

var _ Model = (*Instance)(nil)

// Definition returns the definition this instance was constructed through.
func (m *Instance) Definition() *Definition {
	return m.def
}

// Get returns the value of the named field. The field is looked up by code
// name, wire name, or alias; an unknown key is a validation failure.
func (m *Instance) Get(key string) (any, error) {
	f, ok := m.def.Field(key)
	if !ok {
		return nil, &errors.ValidationError{Type: m.TypeName(), Field: key, Reason: "no such field"}
	}
	return m.values[f.Name], nil
}

// Set assigns a new value to the named field, enforcing the definition's
// mutation rules. Assigning to a frozen field is rejected with a
// *errors.FrozenFieldError. The value is coerced and validated before the
// assignment takes effect; a rejected value leaves the instance completely
// untouched, including the updated_at field.
//
// On a successful assignment to any field other than updated_at, an
// update-time-aware definition stamps updated_at to the current instant.
// Assigning updated_at itself applies the given value directly.
func (m *Instance) Set(key string, v any) error {
	f, ok := m.def.Field(key)
	if !ok {
		return &errors.ValidationError{Type: m.TypeName(), Field: key, Reason: "no such field"}
	}
	if f.Frozen {
		return &errors.FrozenFieldError{Type: m.TypeName(), Field: f.Name}
	}
	coerced, err := f.Type.Coerce(v)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", m.TypeName(), f.Name, err)
	}
	m.values[f.Name] = coerced
	if m.def.updateAware && f.Name != UpdatedAtField {
		m.values[UpdatedAtField] = value.Now()
	}
	return nil
}

// Id returns the entity identifier, or the zero Id when the definition is
// not entity-aware.
func (m *Instance) Id() value.Id {
	if id, ok := m.values[IdField].(value.Id); ok {
		return id
	}
	return value.Id{}
}

// CreatedAt returns the creation timestamp, or the zero Timestamp when the
// definition is not creation-time-aware.
func (m *Instance) CreatedAt() value.Timestamp {
	if ts, ok := m.values[CreatedAtField].(value.Timestamp); ok {
		return ts
	}
	return 0
}

// UpdatedAt returns the last-update timestamp, or the zero Timestamp when
// the definition is not update-time-aware.
func (m *Instance) UpdatedAt() value.Timestamp {
	if ts, ok := m.values[UpdatedAtField].(value.Timestamp); ok {
		return ts
	}
	return 0
}

// Validate checks every field value against its declared type, reporting
// all failures rather than stopping at the first.
func (m *Instance) Validate() error {
	if m.def == nil {
		return &errors.ValidationError{Type: "Instance", Reason: "no definition bound"}
	}
	c := rxmerr.NewCollector()
	for _, f := range m.def.fields {
		v, ok := m.values[f.Name]
		if !ok {
			c.Append(&errors.ValidationError{Type: m.def.name, Field: f.Name, Reason: "required field is missing"})
			continue
		}
		if err := f.Type.Validate(v); err != nil {
			c.Append(fmt.Errorf("%s.%s: %w", m.def.name, f.Name, err))
		}
	}
	return c.Err()
}

// TypeName returns the bound definition's name, or "Instance" when unbound.
func (m *Instance) TypeName() string {
	if m.def == nil {
		return "Instance"
	}
	return m.def.name
}

// IsZero reports whether the instance carries no field values.
func (m *Instance) IsZero() bool {
	return len(m.values) == 0
}

// String returns the full field listing in declaration order. It MAY
// include sensitive data; use Redacted for logging.
func (m *Instance) String() string {
	return m.render(false)
}

// Redacted returns the field listing with each value reduced to its own
// redacted form where the value provides one.
func (m *Instance) Redacted() string {
	return m.render(true)
}

func (m *Instance) render(redact bool) string {
	var sb strings.Builder
	sb.WriteString(m.TypeName())
	sb.WriteByte('{')
	if m.def != nil {
		for i, f := range m.def.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			v := m.values[f.Name]
			if redact {
				if lg, ok := v.(interface{ Redacted() string }); ok {
					sb.WriteString(lg.Redacted())
					continue
				}
			}
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports whether both instances share a definition name and
// serialize to identical JSON.
func (m *Instance) Equal(other *Instance) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.TypeName() != other.TypeName() {
		return false
	}
	a, errA := m.MarshalJSON()
	b, errB := other.MarshalJSON()
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// Clone creates an independent deep copy through a JSON round-trip.
func (m *Instance) Clone() (*Instance, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("clone marshal failed: %w", err)
	}
	return m.def.FromJSON(data)
}

// MarshalJSON emits the instance as a JSON object with one key per field,
// keyed by wire name, in field declaration order. The instance is validated
// first; an invalid instance is never serialized.
func (m *Instance) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: m.TypeName(), Reason: err.Error()}
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.def.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.WireName())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[f.Name])
		if err != nil {
			return nil, &errors.MarshalError{Type: m.TypeName(), Reason: fmt.Sprintf("field %s: %v", f.Name, err)}
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the receiver through its bound
// definition. The receiver MUST already be bound; decode into an unbound
// Instance with Definition.FromJSON instead.
func (m *Instance) UnmarshalJSON(data []byte) error {
	if m.def == nil {
		return &errors.UnmarshalError{Type: "Instance", Data: data, Reason: "no definition bound; use Definition.FromJSON"}
	}
	decoded, err := m.def.FromJSON(data)
	if err != nil {
		return err
	}
	m.values = decoded.values
	return nil
}

// MarshalYAML emits the instance as an ordered mapping keyed by wire name.
// The instance is validated first.
func (m *Instance) MarshalYAML() (any, error) {
	if err := m.Validate(); err != nil {
		return nil, &errors.MarshalError{Type: m.TypeName(), Reason: err.Error()}
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range m.def.fields {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: f.WireName()}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[f.Name]); err != nil {
			return nil, &errors.MarshalError{Type: m.TypeName(), Reason: fmt.Sprintf("field %s: %v", f.Name, err)}
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping into the receiver through its bound
// definition. The receiver MUST already be bound.
func (m *Instance) UnmarshalYAML(node *yaml.Node) error {
	if m.def == nil {
		return &errors.UnmarshalError{Type: "Instance", Reason: "no definition bound; use Definition.FromYAML"}
	}
	var values map[string]any
	if err := node.Decode(&values); err != nil {
		return &errors.UnmarshalError{Type: m.TypeName(), Reason: err.Error()}
	}
	decoded, err := m.def.New(values)
	if err != nil {
		return err
	}
	m.values = decoded.values
	return nil
}
