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

package model_test

import (
	"encoding/json"
	goerrors "errors"
	"strings"
	"testing"

	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model"
	"dirpx.dev/dxobj/dxcore/model/value"
)

func TestEntityIdentity(t *testing.T) {
	def := userDefinition(t, model.WithEntity())

	a, err := def.New(map[string]any{"user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := def.New(map[string]any{"user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if a.Id().IsZero() || b.Id().IsZero() {
		t.Fatal("generated id is zero")
	}
	if a.Id().Equal(b.Id()) {
		t.Error("two constructed entities share an id")
	}
	if a.Equal(b) {
		t.Error("entities with distinct ids compare equal")
	}
}

func TestEntityExplicitIdRoundTrip(t *testing.T) {
	def := userDefinition(t, model.WithEntity())
	id := value.GenerateId()

	original, err := def.New(map[string]any{"id": id.String(), "user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !original.Id().Equal(id) {
		t.Fatalf("Id() = %v, want %v", original.Id(), id)
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := def.FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip = %s, want %s", decoded, original)
	}
}

func TestFrozenIdAssignment(t *testing.T) {
	def := userDefinition(t, model.WithEntity())

	inst, err := def.New(map[string]any{"user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = inst.Set("id", value.GenerateId().String())
	if err == nil {
		t.Fatal("Set(id) = nil, want frozen field error")
	}
	var ferr *errors.FrozenFieldError
	if !goerrors.As(err, &ferr) {
		t.Fatalf("error = %T, want *errors.FrozenFieldError", err)
	}
	if ferr.Field != "id" {
		t.Errorf("frozen field = %q, want id", ferr.Field)
	}
}

func TestUpdateTimeStamping(t *testing.T) {
	def := userDefinition(t, model.WithUpdateTime())

	inst, err := def.New(map[string]any{"user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	created := inst.CreatedAt()
	if created.IsZero() {
		t.Fatal("created_at not defaulted")
	}
	if !inst.UpdatedAt().Equal(created) {
		t.Fatalf("construction: updated_at %v != created_at %v", inst.UpdatedAt(), created)
	}

	if err := inst.Set("age", 2); err != nil {
		t.Fatalf("Set(age): %v", err)
	}
	afterSet := inst.UpdatedAt()
	if afterSet < created {
		t.Errorf("updated_at %v went backwards from %v", afterSet, created)
	}
	if !inst.CreatedAt().Equal(created) {
		t.Errorf("created_at changed on mutation: %v", inst.CreatedAt())
	}

	// A rejected mutation must not advance the stamp.
	if err := inst.Set("age", -5); err == nil {
		t.Fatal("Set(age, -5) = nil, want error")
	}
	if !inst.UpdatedAt().Equal(afterSet) {
		t.Errorf("updated_at advanced on failed mutation: %v != %v", inst.UpdatedAt(), afterSet)
	}

	// Direct assignment to updated_at applies without re-stamping.
	if err := inst.Set("updated_at", int64(12345)); err != nil {
		t.Fatalf("Set(updated_at): %v", err)
	}
	if inst.UpdatedAt() != 12345 {
		t.Errorf("updated_at = %v, want 12345", inst.UpdatedAt())
	}
}

func TestUpdateTimeImpliesCreationTime(t *testing.T) {
	def := userDefinition(t, model.WithUpdateTime())

	if _, ok := def.Field("created_at"); !ok {
		t.Error("update-time definition lacks created_at")
	}
}

func TestSetRejectedValueLeavesInstanceUntouched(t *testing.T) {
	def := userDefinition(t)

	inst, err := def.New(map[string]any{"user_name": "a", "age": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := inst.Set("age", -1); err == nil {
		t.Fatal("Set(age, -1) = nil, want error")
	}
	got, err := inst.Get("age")
	if err != nil || got != int64(1) {
		t.Errorf("Get(age) after rejected Set = %v, %v, want 1, nil", got, err)
	}
}

func TestInstanceMarshalJSONWireNamesInOrder(t *testing.T) {
	def := userDefinition(t)

	inst, err := def.New(map[string]any{"user_name": "alice", "age": 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"userName":"alice","age":30}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestInstanceFromJSONAcceptsCodeAndWireNames(t *testing.T) {
	def := userDefinition(t)

	for _, payload := range []string{
		`{"userName":"alice","age":30}`,
		`{"user_name":"alice","age":30}`,
	} {
		inst, err := def.FromJSON([]byte(payload))
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", payload, err)
		}
		name, err := inst.Get("user_name")
		if err != nil || name != "alice" {
			t.Errorf("Get(user_name) = %v, %v", name, err)
		}
		age, err := inst.Get("age")
		if err != nil || age != int64(30) {
			t.Errorf("Get(age) = %v, %v", age, err)
		}
	}
}

func TestInstanceUnmarshalUnbound(t *testing.T) {
	var inst model.Instance
	if err := json.Unmarshal([]byte(`{"a":1}`), &inst); err == nil {
		t.Error("Unmarshal into unbound instance = nil, want error")
	}
}

func TestInstanceYAMLRoundTrip(t *testing.T) {
	def := userDefinition(t)

	original, err := def.New(map[string]any{"user_name": "alice", "age": 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := model.ToYAML(original)
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	if !strings.Contains(string(data), "userName: alice") {
		t.Errorf("YAML output missing wire name: %s", data)
	}
	decoded, err := def.FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip = %s, want %s", decoded, original)
	}
}

func TestInstanceNestedModel(t *testing.T) {
	inner := userDefinition(t)
	outer, err := model.NewDefinition("Team", []model.Field{
		{Name: "leader", Type: model.ModelType{Def: inner}},
		{Name: "members", Type: model.ListType{Elem: model.ModelType{Def: inner}}},
	})
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}

	inst, err := outer.FromJSON([]byte(`{
		"leader": {"userName":"alice","age":30},
		"members": [{"userName":"bob","age":25}]
	}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	leader, err := inst.Get("leader")
	if err != nil {
		t.Fatalf("Get(leader): %v", err)
	}
	name, err := leader.(*model.Instance).Get("user_name")
	if err != nil || name != "alice" {
		t.Errorf("leader name = %v, %v", name, err)
	}

	data, err := json.Marshal(inst)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := outer.FromJSON(data)
	if err != nil {
		t.Fatalf("round trip FromJSON: %v", err)
	}
	if !decoded.Equal(inst) {
		t.Errorf("round trip = %s, want %s", decoded, inst)
	}
}

func TestInstanceRedactedUsesValueRedaction(t *testing.T) {
	def, err := model.NewDefinition("Blob", []model.Field{
		{Name: "payload", Type: model.BytesType{}},
	})
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	inst, err := def.New(map[string]any{"payload": []byte("secret")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := inst.Redacted()
	if strings.Contains(got, "secret") {
		t.Errorf("Redacted() leaked payload: %s", got)
	}
	if !strings.Contains(got, "Bytes(6 bytes)") {
		t.Errorf("Redacted() = %s, want byte-count summary", got)
	}
}

func TestInstanceClone(t *testing.T) {
	def := userDefinition(t)

	original, err := def.New(map[string]any{"user_name": "alice", "age": 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clone, err := original.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if !clone.Equal(original) {
		t.Fatalf("clone differs: %s vs %s", clone, original)
	}
	if err := clone.Set("age", 31); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if age, _ := original.Get("age"); age != int64(30) {
		t.Errorf("mutating clone changed original: %v", age)
	}
}
