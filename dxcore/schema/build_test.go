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

package schema_test

import (
	"encoding/json"
	goerrors "errors"
	"testing"

	"dirpx.dev/dxobj/dxcore/constraint"
	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model"
	"dirpx.dev/dxobj/dxcore/model/value"
	"dirpx.dev/dxobj/dxcore/schema"
)

func TestBuildNameAgeEquivalence(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"title": "Person",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	fromSchema, err := def.FromJSON([]byte(`{"name":"foo","age":42}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	direct, err := model.NewDefinition("Person", []model.Field{
		{Name: "name", Type: model.StringType{Spec: value.NewStringSpec("Name")}},
		{Name: "age", Type: model.IntegerType{Spec: value.NewIntegerSpec("Age")}},
	})
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	fromDirect, err := direct.New(map[string]any{"name": "foo", "age": 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !fromSchema.Equal(fromDirect) {
		t.Errorf("schema-built %s != directly built %s", fromSchema, fromDirect)
	}
}

func TestBuildFieldOrderFollowsDeclaration(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"properties": {
			"zulu": {"type": "string"},
			"alpha": {"type": "string"},
			"mike": {"type": "string"}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if def.Name() != schema.DefaultModelName {
		t.Errorf("Name() = %q, want %q", def.Name(), schema.DefaultModelName)
	}

	inst, err := def.New(map[string]any{"zulu": "z", "alpha": "a", "mike": "m"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"zulu":"z","alpha":"a","mike":"m"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestBuildFormatsAndConstraints(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"title": "Record",
		"properties": {
			"id": {"type": "string", "format": "crockfordBase32"},
			"createdAt": {"type": "integer", "format": "timestamp"},
			"payload": {"type": "string", "format": "base64EncodedString"},
			"shortName": {"type": "string", "minLength": 1, "maxLength": 4},
			"score": {"type": "number", "minimum": 0, "maximum": 1},
			"tags": {"type": "array", "items": {"type": "string"}},
			"meta": {"type": "object"},
			"active": {"type": "boolean"}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	id := value.GenerateId()
	inst, err := def.FromJSON([]byte(`{
		"id": "` + id.String() + `",
		"createdAt": 1716897600123456,
		"payload": "aGVsbG8=",
		"shortName": "abcd",
		"score": 0.5,
		"tags": ["x", "y"],
		"meta": {"k": "v"},
		"active": true
	}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	got, err := inst.Get("id")
	if err != nil {
		t.Fatalf("Get(id): %v", err)
	}
	if gotId, ok := got.(value.Id); !ok || !gotId.Equal(id) {
		t.Errorf("id = %v (%T)", got, got)
	}
	ts, err := inst.Get("created_at")
	if err != nil {
		t.Fatalf("Get(created_at): %v", err)
	}
	if ts != value.Timestamp(1716897600123456) {
		t.Errorf("created_at = %v", ts)
	}
	payload, err := inst.Get("payload")
	if err != nil {
		t.Fatalf("Get(payload): %v", err)
	}
	if b, ok := payload.(value.Bytes); !ok || string(b) != "hello" {
		t.Errorf("payload = %v (%T)", payload, payload)
	}

	// Structural constraints carry into the generated field types.
	if _, err := def.FromJSON([]byte(`{
		"id": "` + id.String() + `",
		"createdAt": 1,
		"payload": "",
		"shortName": "abcde",
		"score": 0.5,
		"tags": [],
		"meta": {},
		"active": false
	}`)); err == nil {
		t.Error("FromJSON with five-rune shortName = nil, want max-length error")
	}
	if _, err := def.FromJSON([]byte(`{
		"id": "` + id.String() + `",
		"createdAt": 1,
		"payload": "",
		"shortName": "ab",
		"score": 1.5,
		"tags": [],
		"meta": {},
		"active": false
	}`)); err == nil {
		t.Error("FromJSON with score 1.5 = nil, want maximum error")
	}
}

func TestBuildOutOfOrderDefsResolve(t *testing.T) {
	// "outer" is declared before "inner" but references it.
	def, err := schema.Build([]byte(`{
		"title": "Root",
		"properties": {
			"wrapper": {"$ref": "#/$defs/outer"}
		},
		"$defs": {
			"outer": {
				"title": "Outer",
				"properties": {
					"child": {"$ref": "#/$defs/inner"}
				}
			},
			"inner": {
				"title": "Inner",
				"properties": {
					"label": {"type": "string"}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	inst, err := def.FromJSON([]byte(`{"wrapper": {"child": {"label": "deep"}}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	wrapper, err := inst.Get("wrapper")
	if err != nil {
		t.Fatalf("Get(wrapper): %v", err)
	}
	child, err := wrapper.(*model.Instance).Get("child")
	if err != nil {
		t.Fatalf("Get(child): %v", err)
	}
	label, err := child.(*model.Instance).Get("label")
	if err != nil || label != "deep" {
		t.Errorf("label = %v, %v", label, err)
	}
}

func TestBuildSelfReferenceFails(t *testing.T) {
	_, err := schema.Build([]byte(`{
		"properties": {
			"node": {"$ref": "#/$defs/loop"}
		},
		"$defs": {
			"loop": {
				"properties": {
					"next": {"$ref": "#/$defs/loop"}
				}
			}
		}
	}`))
	if err == nil {
		t.Fatal("Build(self-referencing $defs) = nil, want error")
	}
	var serr *errors.SchemaError
	if !goerrors.As(err, &serr) {
		t.Fatalf("error = %T, want *errors.SchemaError", err)
	}
	if serr.Ref == "" {
		t.Errorf("schema error does not name the stuck entry: %v", serr)
	}
}

func TestBuildMissingPropertiesFails(t *testing.T) {
	for _, doc := range []string{
		`{"title": "Empty"}`,
		`{"type": "object"}`,
	} {
		_, err := schema.Build([]byte(doc))
		if err == nil {
			t.Errorf("Build(%s) = nil, want error", doc)
			continue
		}
		var serr *errors.SchemaError
		if !goerrors.As(err, &serr) {
			t.Errorf("Build(%s) error = %T, want *errors.SchemaError", doc, err)
		}
	}
}

func TestBuildDanglingRefFails(t *testing.T) {
	_, err := schema.Build([]byte(`{
		"properties": {
			"x": {"$ref": "#/$defs/nowhere"}
		}
	}`))
	if err == nil {
		t.Fatal("Build(dangling ref) = nil, want error")
	}
	var serr *errors.SchemaError
	if !goerrors.As(err, &serr) {
		t.Fatalf("error = %T, want *errors.SchemaError", err)
	}
}

func TestBuildInlineNestedObject(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"title": "Doc",
		"properties": {
			"author": {
				"type": "object",
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst, err := def.FromJSON([]byte(`{"author": {"name": "alice"}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	author, err := inst.Get("author")
	if err != nil {
		t.Fatalf("Get(author): %v", err)
	}
	nested, ok := author.(*model.Instance)
	if !ok {
		t.Fatalf("author = %T, want *model.Instance", author)
	}
	if nested.TypeName() != "Author" {
		t.Errorf("nested TypeName = %q, want Author", nested.TypeName())
	}
}

func TestBuildArrayWithoutItems(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"properties": {
			"anything": {"type": "array"}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inst, err := def.New(map[string]any{"anything": []any{"a", 1.5, true}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := inst.Get("anything")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if list, ok := got.([]any); !ok || len(list) != 3 {
		t.Errorf("anything = %v (%T)", got, got)
	}
}

func TestBuildWithBaseOptions(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"title": "Note",
		"properties": {
			"text": {"type": "string"}
		}
	}`), schema.WithBaseOptions(model.WithEntity(), model.WithUpdateTime()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	inst, err := def.New(map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if inst.Id().IsZero() {
		t.Error("entity id not generated")
	}
	if inst.CreatedAt().IsZero() || !inst.UpdatedAt().Equal(inst.CreatedAt()) {
		t.Errorf("timestamps: created=%v updated=%v", inst.CreatedAt(), inst.UpdatedAt())
	}
	if err := inst.Set("id", value.GenerateId()); err == nil {
		t.Error("Set(id) = nil, want frozen field error")
	}
}

func TestBuildUnsupportedType(t *testing.T) {
	_, err := schema.Build([]byte(`{
		"properties": {
			"x": {"type": "null"}
		}
	}`))
	if err == nil {
		t.Fatal("Build(type null) = nil, want error")
	}
}

func TestBuildInvalidPatternFails(t *testing.T) {
	_, err := schema.Build([]byte(`{
		"properties": {
			"name": {"type": "string", "pattern": "(?=x)"}
		}
	}`))
	if err == nil {
		t.Fatal("Build(unsupported pattern syntax) = nil, want error")
	}
	var serr *errors.SchemaError
	if !goerrors.As(err, &serr) {
		t.Fatalf("error = %T, want *errors.SchemaError", err)
	}
}

func TestBuildNonIntegerBoundFails(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"fractional_minimum",
			`{"properties": {"n": {"type": "integer", "minimum": 1.5}}}`,
		},
		{
			"fractional_maximum",
			`{"properties": {"n": {"type": "integer", "maximum": 2.5}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Build([]byte(tt.doc))
			if err == nil {
				t.Fatal("Build() = nil, want error")
			}
			var serr *errors.SchemaError
			if !goerrors.As(err, &serr) {
				t.Fatalf("error = %T, want *errors.SchemaError", err)
			}
		})
	}
}

func TestBuildPatternConstraint(t *testing.T) {
	def, err := schema.Build([]byte(`{
		"properties": {
			"code": {"type": "string", "pattern": "^[A-Z]{3}$"}
		}
	}`))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := def.New(map[string]any{"code": "ABC"}); err != nil {
		t.Errorf("New(ABC): %v", err)
	}
	_, err = def.New(map[string]any{"code": "abc"})
	if err == nil {
		t.Fatal("New(abc) = nil, want pattern error")
	}
	var verr *errors.ValidationError
	if !goerrors.As(err, &verr) || verr.Kind != string(constraint.KindPattern) {
		t.Errorf("error = %v, want pattern validation error", err)
	}
}
