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

package errors

import "testing"

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			"Id type",
			&ParseError{Type: "Id", Value: "01HRQ0BNKS4WMFVQPW810MP"},
			"dxobj: invalid Id value: 01HRQ0BNKS4WMFVQPW810MP",
		},
		{
			"Timestamp type",
			&ParseError{Type: "Timestamp", Value: "not a date"},
			"dxobj: invalid Timestamp value: not a date",
		},
		{
			"Bytes type",
			&ParseError{Type: "Bytes", Value: "!!!"},
			"dxobj: invalid Bytes value: !!!",
		},
		{
			"empty value",
			&ParseError{Type: "Id", Value: ""},
			"dxobj: invalid Id value: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MarshalError
		want string
	}{
		{
			"string spec",
			&MarshalError{Type: "UserName", Reason: "too short"},
			"dxobj: cannot marshal invalid UserName: too short",
		},
		{
			"instance",
			&MarshalError{Type: "User", Reason: "field age out of range"},
			"dxobj: cannot marshal invalid User: field age out of range",
		},
		{
			"empty reason",
			&MarshalError{Type: "Instance", Reason: ""},
			"dxobj: cannot marshal invalid Instance: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("MarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UnmarshalError
		want string
	}{
		{
			"empty data",
			&UnmarshalError{Type: "Bytes", Data: nil, Reason: "empty data"},
			"dxobj: cannot unmarshal Bytes: empty data",
		},
		{
			"bad base64",
			&UnmarshalError{Type: "Bytes", Data: []byte(`"!!"`), Reason: "invalid base64 text"},
			"dxobj: cannot unmarshal Bytes: invalid base64 text",
		},
		{
			"data not included in message",
			&UnmarshalError{Type: "Id", Data: []byte("sensitive"), Reason: "wrong length"},
			"dxobj: cannot unmarshal Id: wrong length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UnmarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"type only",
			&ValidationError{Type: "UserName", Reason: "must not be empty"},
			"dxobj: invalid UserName: must not be empty",
		},
		{
			"with field",
			&ValidationError{Type: "User", Field: "age", Reason: "value -1 is below minimum 0"},
			"dxobj: invalid User.age: value -1 is below minimum 0",
		},
		{
			"with kind",
			&ValidationError{Type: "UserName", Kind: "min_length", Reason: "too short: 1 runes (minimum 3)"},
			"dxobj: invalid UserName: min_length: too short: 1 runes (minimum 3)",
		},
		{
			"with field and kind",
			&ValidationError{Type: "User", Field: "name", Kind: "pattern", Reason: "does not match pattern"},
			"dxobj: invalid User.name: pattern: does not match pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrozenFieldError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FrozenFieldError
		want string
	}{
		{
			"entity id",
			&FrozenFieldError{Type: "User", Field: "id"},
			"dxobj: cannot assign to frozen field User.id",
		},
		{
			"creation timestamp",
			&FrozenFieldError{Type: "Record", Field: "created_at"},
			"dxobj: cannot assign to frozen field Record.created_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("FrozenFieldError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SchemaError
		want string
	}{
		{
			"no ref",
			&SchemaError{Reason: "document has no properties"},
			"dxobj: schema error: document has no properties",
		},
		{
			"with ref",
			&SchemaError{Reason: "unresolvable reference", Ref: "#/$defs/Inner"},
			"dxobj: schema error: unresolvable reference (#/$defs/Inner)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("SchemaError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
