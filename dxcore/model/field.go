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
	"encoding/json"
	"fmt"
	"math"
	"time"

	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model/value"
	"dirpx.dev/dxobj/dxcore/textutil"
)

// FieldType describes the value domain of one object field: how raw input is
// coerced into the canonical in-memory form, how a canonical value is
// validated, and what wire schema fragment the field contributes.
//
// Coerce accepts loosely typed input (as produced by JSON or YAML decoding,
// or passed directly by callers) and returns the canonical value or an
// error. Validate checks an already-canonical value. Both MUST be pure.
type FieldType interface {
	// Coerce converts raw input into the canonical in-memory form for this
	// field type, applying any transform pipeline the type carries. It
	// returns an error when the input's shape or content is unacceptable.
	Coerce(v any) (any, error)

	// Validate checks a canonical value against the type's constraints.
	Validate(v any) error

	// JSONSchema returns the wire schema fragment for fields of this type.
	JSONSchema() map[string]any
}

// StringType is a FieldType backed by a string value spec. The spec's
// transform chain runs during coercion, so a field declared with a trimmed
// and normalized spec stores the transformed text.
type StringType struct {
	Spec value.StringSpec
}

// Coerce accepts string input and runs it through the spec's pipeline.
func (t StringType) Coerce(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &errors.ValidationError{Type: t.Spec.Name(), Reason: fmt.Sprintf("expected string, got %T", v), Value: v}
	}
	return t.Spec.Parse(s)
}

// Validate checks an already-transformed string against the spec.
func (t StringType) Validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return &errors.ValidationError{Type: t.Spec.Name(), Reason: fmt.Sprintf("expected string, got %T", v), Value: v}
	}
	return t.Spec.Validate(s)
}

// JSONSchema returns the spec's string schema fragment.
func (t StringType) JSONSchema() map[string]any {
	return t.Spec.JSONSchema()
}

// IntegerType is a FieldType backed by a bounded integer spec. Coercion
// accepts Go integer kinds, whole floats, and json.Number.
type IntegerType struct {
	Spec value.IntegerSpec
}

// Coerce converts integer-shaped input to int64 and checks the bounds.
func (t IntegerType) Coerce(v any) (any, error) {
	n, err := toInt64(t.Spec.Name(), v)
	if err != nil {
		return nil, err
	}
	if err := t.Spec.Check(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks a canonical int64 against the bounds.
func (t IntegerType) Validate(v any) error {
	n, ok := v.(int64)
	if !ok {
		return &errors.ValidationError{Type: t.Spec.Name(), Reason: fmt.Sprintf("expected int64, got %T", v), Value: v}
	}
	return t.Spec.Check(n)
}

// JSONSchema returns the spec's integer schema fragment.
func (t IntegerType) JSONSchema() map[string]any {
	return t.Spec.JSONSchema()
}

// FloatType is a FieldType backed by a bounded float spec. Coercion accepts
// Go numeric kinds and json.Number.
type FloatType struct {
	Spec value.FloatSpec
}

// Coerce converts numeric input to float64 and checks the bounds.
func (t FloatType) Coerce(v any) (any, error) {
	f, err := toFloat64(t.Spec.Name(), v)
	if err != nil {
		return nil, err
	}
	if err := t.Spec.Check(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks a canonical float64 against the bounds.
func (t FloatType) Validate(v any) error {
	f, ok := v.(float64)
	if !ok {
		return &errors.ValidationError{Type: t.Spec.Name(), Reason: fmt.Sprintf("expected float64, got %T", v), Value: v}
	}
	return t.Spec.Check(f)
}

// JSONSchema returns the spec's number schema fragment.
func (t FloatType) JSONSchema() map[string]any {
	return t.Spec.JSONSchema()
}

// BooleanType is the FieldType for plain booleans.
type BooleanType struct{}

// Coerce accepts bool input only.
func (BooleanType) Coerce(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, &errors.ValidationError{Type: "Boolean", Reason: fmt.Sprintf("expected bool, got %T", v), Value: v}
	}
	return b, nil
}

// Validate checks a canonical bool.
func (BooleanType) Validate(v any) error {
	if _, ok := v.(bool); !ok {
		return &errors.ValidationError{Type: "Boolean", Reason: fmt.Sprintf("expected bool, got %T", v), Value: v}
	}
	return nil
}

// JSONSchema returns the boolean schema fragment.
func (BooleanType) JSONSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

// BytesType is the FieldType for binary payloads. Coercion accepts
// value.Bytes, raw []byte, and base64 text.
type BytesType struct{}

// Coerce converts bytes-shaped input to the canonical value.Bytes form.
func (BytesType) Coerce(v any) (any, error) {
	switch b := v.(type) {
	case value.Bytes:
		return b, nil
	case []byte:
		return value.NewBytes(b), nil
	case string:
		return value.ParseBase64(b)
	default:
		return nil, &errors.ValidationError{Type: "Bytes", Reason: fmt.Sprintf("expected bytes or base64 string, got %T", v), Value: v}
	}
}

// Validate checks a canonical value.Bytes.
func (BytesType) Validate(v any) error {
	b, ok := v.(value.Bytes)
	if !ok {
		return &errors.ValidationError{Type: "Bytes", Reason: fmt.Sprintf("expected Bytes, got %T", v), Value: v}
	}
	return b.Validate()
}

// JSONSchema returns the base64 string schema fragment.
func (BytesType) JSONSchema() map[string]any {
	return value.BytesSchema()
}

// IdType is the FieldType for entity identifiers. Coercion accepts value.Id,
// canonical Crockford base32 text, and the 16-byte binary form.
type IdType struct{}

// Coerce converts identifier-shaped input to the canonical value.Id form.
func (IdType) Coerce(v any) (any, error) {
	switch id := v.(type) {
	case value.Id:
		return id, nil
	case string:
		return value.ParseId(id)
	case []byte:
		return value.IdFromBytes(id)
	default:
		return nil, &errors.ValidationError{Type: "Id", Reason: fmt.Sprintf("expected identifier, got %T", v), Value: v}
	}
}

// Validate checks a canonical value.Id.
func (IdType) Validate(v any) error {
	id, ok := v.(value.Id)
	if !ok {
		return &errors.ValidationError{Type: "Id", Reason: fmt.Sprintf("expected Id, got %T", v), Value: v}
	}
	return id.Validate()
}

// JSONSchema returns the identifier schema fragment.
func (IdType) JSONSchema() map[string]any {
	return value.IdSchema()
}

// TimestampType is the FieldType for microsecond timestamps. Coercion
// accepts value.Timestamp, time.Time, integer microseconds, fractional
// epoch seconds, and parseable date-time text.
type TimestampType struct{}

// Coerce converts time-shaped input to the canonical value.Timestamp form.
// Integer input is taken as microseconds; float input as epoch seconds.
func (TimestampType) Coerce(v any) (any, error) {
	switch ts := v.(type) {
	case value.Timestamp:
		return ts, nil
	case time.Time:
		return value.TimestampFromTime(ts), nil
	case int:
		return value.Timestamp(ts), nil
	case int64:
		return value.Timestamp(ts), nil
	case float64:
		return value.TimestampFromSeconds(ts), nil
	case json.Number:
		if n, err := ts.Int64(); err == nil {
			return value.Timestamp(n), nil
		}
		f, err := ts.Float64()
		if err != nil {
			return nil, &errors.ParseError{Type: "Timestamp", Value: ts.String()}
		}
		return value.TimestampFromSeconds(f), nil
	case string:
		return value.ParseTimestamp(ts)
	default:
		return nil, &errors.ValidationError{Type: "Timestamp", Reason: fmt.Sprintf("expected timestamp, got %T", v), Value: v}
	}
}

// Validate checks a canonical value.Timestamp.
func (TimestampType) Validate(v any) error {
	ts, ok := v.(value.Timestamp)
	if !ok {
		return &errors.ValidationError{Type: "Timestamp", Reason: fmt.Sprintf("expected Timestamp, got %T", v), Value: v}
	}
	return ts.Validate()
}

// JSONSchema returns the timestamp schema fragment.
func (TimestampType) JSONSchema() map[string]any {
	return value.TimestampSchema()
}

// ListType is the FieldType for homogeneous arrays. Every element is
// coerced and validated through Elem.
type ListType struct {
	Elem FieldType
}

// Coerce converts slice input to a canonical []any with every element
// coerced through the element type.
func (t ListType) Coerce(v any) (any, error) {
	in, ok := v.([]any)
	if !ok {
		return nil, &errors.ValidationError{Type: "List", Reason: fmt.Sprintf("expected array, got %T", v), Value: v}
	}
	out := make([]any, len(in))
	for i, el := range in {
		coerced, err := t.Elem.Coerce(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = coerced
	}
	return out, nil
}

// Validate checks every element of a canonical []any.
func (t ListType) Validate(v any) error {
	in, ok := v.([]any)
	if !ok {
		return &errors.ValidationError{Type: "List", Reason: fmt.Sprintf("expected array, got %T", v), Value: v}
	}
	for i, el := range in {
		if err := t.Elem.Validate(el); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// JSONSchema returns the array schema fragment with the element fragment
// under "items".
func (t ListType) JSONSchema() map[string]any {
	return map[string]any{"type": "array", "items": t.Elem.JSONSchema()}
}

// MapType is the FieldType for untyped string-keyed objects.
type MapType struct{}

// Coerce accepts map[string]any input only.
func (MapType) Coerce(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &errors.ValidationError{Type: "Map", Reason: fmt.Sprintf("expected object, got %T", v), Value: v}
	}
	return m, nil
}

// Validate checks a canonical map[string]any.
func (MapType) Validate(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return &errors.ValidationError{Type: "Map", Reason: fmt.Sprintf("expected object, got %T", v), Value: v}
	}
	return nil
}

// JSONSchema returns the untyped object schema fragment.
func (MapType) JSONSchema() map[string]any {
	return map[string]any{"type": "object"}
}

// AnyType is the FieldType that accepts every value unchanged.
type AnyType struct{}

// Coerce returns v unchanged.
func (AnyType) Coerce(v any) (any, error) { return v, nil }

// Validate accepts every value.
func (AnyType) Validate(any) error { return nil }

// JSONSchema returns the unconstrained schema fragment.
func (AnyType) JSONSchema() map[string]any { return map[string]any{} }

// ModelType is the FieldType for nested objects typed by another
// Definition. Coercion accepts an *Instance bound to that definition or a
// raw map which is constructed through it.
type ModelType struct {
	Def *Definition
}

// Coerce converts object-shaped input to an *Instance of the nested
// definition.
func (t ModelType) Coerce(v any) (any, error) {
	switch obj := v.(type) {
	case *Instance:
		if obj.def != t.Def {
			return nil, &errors.ValidationError{Type: t.Def.Name(), Reason: fmt.Sprintf("instance of %s where %s expected", obj.TypeName(), t.Def.Name()), Value: v}
		}
		return obj, nil
	case map[string]any:
		return t.Def.New(obj)
	default:
		return nil, &errors.ValidationError{Type: t.Def.Name(), Reason: fmt.Sprintf("expected object, got %T", v), Value: v}
	}
}

// Validate checks a canonical nested *Instance.
func (t ModelType) Validate(v any) error {
	obj, ok := v.(*Instance)
	if !ok {
		return &errors.ValidationError{Type: t.Def.Name(), Reason: fmt.Sprintf("expected %s instance, got %T", t.Def.Name(), v), Value: v}
	}
	return obj.Validate()
}

// JSONSchema returns the nested definition's object schema.
func (t ModelType) JSONSchema() map[string]any {
	return t.Def.JSONSchema()
}

// Field declares one object field: the snake_case code name, the wire name
// it serializes under, extra input aliases, the value domain, whether the
// field is frozen after construction, and an optional default applied when
// construction input omits the field.
//
// Wire is derived from Name via camelCase conversion when left empty.
// Input is accepted under Name, the wire name, or any declared alias.
type Field struct {
	Name        string
	Wire        string
	Aliases     []string
	Type        FieldType
	Frozen      bool
	DefaultFunc func() any
}

// WireName returns the JSON key this field serializes under: Wire when set,
// otherwise the camelCase form of Name.
func (f Field) WireName() string {
	if f.Wire != "" {
		return f.Wire
	}
	return textutil.ToCamel(f.Name)
}

// acceptedKeys returns every input key this field answers to.
func (f Field) acceptedKeys() []string {
	keys := []string{f.Name}
	if w := f.WireName(); w != f.Name {
		keys = append(keys, w)
	}
	keys = append(keys, f.Aliases...)
	return keys
}

func toInt64(typeName string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, &errors.ValidationError{Type: typeName, Reason: fmt.Sprintf("expected integer, got fractional %v", n), Value: v}
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &errors.ValidationError{Type: typeName, Reason: fmt.Sprintf("expected integer, got %s", n.String()), Value: v}
		}
		return i, nil
	default:
		return 0, &errors.ValidationError{Type: typeName, Reason: fmt.Sprintf("expected integer, got %T", v), Value: v}
	}
}

func toFloat64(typeName string, v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &errors.ValidationError{Type: typeName, Reason: fmt.Sprintf("expected number, got %s", n.String()), Value: v}
		}
		return f, nil
	default:
		return 0, &errors.ValidationError{Type: typeName, Reason: fmt.Sprintf("expected number, got %T", v), Value: v}
	}
}
