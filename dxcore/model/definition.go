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

	"gopkg.in/yaml.v3"

	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model/value"
)

// Reserved field names contributed by the definition options.
const (
	IdField        = "id"
	CreatedAtField = "created_at"
	UpdatedAtField = "updated_at"
)

// Definition is a named, ordered set of typed fields: the runtime type of
// every Instance constructed through it. A Definition is assembled once via
// NewDefinition and is immutable and safe for concurrent use afterwards.
type Definition struct {
	name        string
	fields      []Field
	index       map[string]int
	updateAware bool
}

// DefinitionOption augments a definition under construction.
type DefinitionOption func(*defBuilder)

type defBuilder struct {
	entity       bool
	creationTime bool
	updateTime   bool
	policy       AliasPolicy
}

// WithEntity prepends a frozen "id" field with a generated default,
// giving every constructed instance a stable identity.
func WithEntity() DefinitionOption {
	return func(b *defBuilder) { b.entity = true }
}

// WithCreationTime prepends a frozen "created_at" timestamp field defaulted
// to the construction instant.
func WithCreationTime() DefinitionOption {
	return func(b *defBuilder) { b.creationTime = true }
}

// WithUpdateTime prepends a mutable "updated_at" timestamp field defaulted
// to the construction instant and stamped to "now" whenever any other field
// is successfully mutated. WithUpdateTime implies WithCreationTime.
func WithUpdateTime() DefinitionOption {
	return func(b *defBuilder) {
		b.updateTime = true
		b.creationTime = true
	}
}

// WithAliasPolicy selects how wire names are derived from code names for
// fields that do not set an explicit Wire. The default is CamelWire.
func WithAliasPolicy(p AliasPolicy) DefinitionOption {
	return func(b *defBuilder) { b.policy = p }
}

// NewDefinition builds a definition named name from the given fields, with
// the options prepending identity and timestamp fields in the fixed order
// id, created_at, updated_at. Field order is the declaration order and is
// preserved through serialization.
//
// Every field's accepted keys (code name, wire name, aliases) MUST be
// unique across the whole definition; a collision is rejected with a
// *errors.ValidationError naming the duplicate key.
func NewDefinition(name string, fields []Field, opts ...DefinitionOption) (*Definition, error) {
	var b defBuilder
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.policy.Validate(); err != nil {
		return nil, err
	}

	var all []Field
	if b.entity {
		all = append(all, Field{
			Name:        IdField,
			Type:        IdType{},
			Frozen:      true,
			DefaultFunc: func() any { return value.GenerateId() },
		})
	}
	if b.creationTime {
		all = append(all, Field{
			Name:        CreatedAtField,
			Type:        TimestampType{},
			Frozen:      true,
			DefaultFunc: func() any { return value.Now() },
		})
	}
	if b.updateTime {
		all = append(all, Field{
			Name:        UpdatedAtField,
			Type:        TimestampType{},
			DefaultFunc: func() any { return value.Now() },
		})
	}
	all = append(all, fields...)

	// Resolve wire names up front so the rest of the engine never consults
	// the policy again.
	for i := range all {
		if all[i].Wire == "" {
			all[i].Wire = b.policy.Apply(all[i].Name)
		}
	}

	def := &Definition{
		name:        name,
		fields:      all,
		index:       make(map[string]int, len(all)*2),
		updateAware: b.updateTime,
	}
	for i, f := range all {
		if f.Name == "" {
			return nil, &errors.ValidationError{Type: name, Reason: "field with empty name"}
		}
		if f.Type == nil {
			return nil, &errors.ValidationError{Type: name, Field: f.Name, Reason: "field has no type"}
		}
		for _, key := range f.acceptedKeys() {
			if _, dup := def.index[key]; dup {
				return nil, &errors.ValidationError{Type: name, Field: f.Name, Reason: fmt.Sprintf("duplicate field key %q", key)}
			}
			def.index[key] = i
		}
	}
	return def, nil
}

// MustDefinition is NewDefinition that panics on error, for definitions
// assembled from constants at package initialization.
func MustDefinition(name string, fields []Field, opts ...DefinitionOption) *Definition {
	def, err := NewDefinition(name, fields, opts...)
	if err != nil {
		panic(fmt.Sprintf("invalid definition %s: %v", name, err))
	}
	return def
}

// Name returns the definition's type name.
func (d *Definition) Name() string {
	return d.name
}

// Fields returns a copy of the field table in declaration order.
func (d *Definition) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Field looks up a field by code name, wire name, or alias.
func (d *Definition) Field(key string) (Field, bool) {
	i, ok := d.index[key]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// UpdateAware reports whether the definition carries the auto-stamped
// updated_at field.
func (d *Definition) UpdateAware() bool {
	return d.updateAware
}

// New constructs an instance from the given values, all-or-nothing. Input
// keys are matched against each field's code name, wire name, and aliases;
// unrecognized keys are ignored. Missing fields take their declared default
// when one exists; a missing field without a default is a validation
// failure and no instance is returned.
func (d *Definition) New(values map[string]any) (*Instance, error) {
	inst := &Instance{def: d, values: make(map[string]any, len(d.fields))}

	defaulted := make(map[string]bool, 2)
	for _, f := range d.fields {
		raw, present := lookupField(values, f)
		if !present {
			if f.DefaultFunc == nil {
				return nil, &errors.ValidationError{Type: d.name, Field: f.Name, Reason: "required field is missing"}
			}
			raw = f.DefaultFunc()
			defaulted[f.Name] = true
		}
		coerced, err := f.Type.Coerce(raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.name, f.Name, err)
		}
		inst.values[f.Name] = coerced
	}

	// Both timestamps defaulted means one construction instant.
	if d.updateAware && defaulted[CreatedAtField] && defaulted[UpdatedAtField] {
		inst.values[UpdatedAtField] = inst.values[CreatedAtField]
	}
	return inst, nil
}

// FromJSON decodes a JSON object and constructs an instance from it,
// accepting each field under its code name, wire name, or alias. Numeric
// precision is preserved by decoding numbers as json.Number before
// coercion.
func (d *Definition) FromJSON(data []byte) (*Instance, error) {
	values, err := decodeJSONObject(data)
	if err != nil {
		return nil, &errors.UnmarshalError{Type: d.name, Data: data, Reason: err.Error()}
	}
	return d.New(values)
}

// FromYAML decodes a YAML mapping and constructs an instance from it,
// accepting each field under its code name, wire name, or alias.
func (d *Definition) FromYAML(data []byte) (*Instance, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, &errors.UnmarshalError{Type: d.name, Data: data, Reason: err.Error()}
	}
	if values == nil {
		return nil, &errors.UnmarshalError{Type: d.name, Data: data, Reason: "expected YAML mapping, got null"}
	}
	return d.New(values)
}

// JSONSchema returns the object schema for this definition: title, property
// map keyed by wire name, and the required list naming fields without
// defaults.
func (d *Definition) JSONSchema() map[string]any {
	properties := make(map[string]any, len(d.fields))
	required := make([]string, 0, len(d.fields))
	for _, f := range d.fields {
		properties[f.WireName()] = f.Type.JSONSchema()
		if f.DefaultFunc == nil {
			required = append(required, f.WireName())
		}
	}
	schema := map[string]any{
		"title":      d.name,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func lookupField(values map[string]any, f Field) (any, bool) {
	for _, key := range f.acceptedKeys() {
		if v, ok := values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func decodeJSONObject(data []byte) (map[string]any, error) {
	dec := newNumberDecoder(data)
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("expected JSON object, got null")
	}
	return values, nil
}

func newNumberDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}
