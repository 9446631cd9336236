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
	"fmt"

	"dirpx.dev/dxobj/dxcore/constraint"
	"dirpx.dev/dxobj/dxcore/errors"
)

// IntegerSpec describes one bounded integer value type: a type name plus
// optional inclusive lower and upper bounds. Values serialize as bare JSON
// integers.
//
// Like StringSpec, an IntegerSpec is assembled once at type-definition time
// and treated as read-only afterwards.
type IntegerSpec struct {
	name string
	min  *int64
	max  *int64
}

// IntegerBound configures a bound on an IntegerSpec.
type IntegerBound func(*IntegerSpec)

// IntegerMin sets the inclusive lower bound.
func IntegerMin(n int64) IntegerBound {
	return func(s *IntegerSpec) { s.min = &n }
}

// IntegerMax sets the inclusive upper bound.
func IntegerMax(n int64) IntegerBound {
	return func(s *IntegerSpec) { s.max = &n }
}

// NewIntegerSpec builds a bounded integer value type named name. Without
// bounds the spec accepts every int64.
func NewIntegerSpec(name string, bounds ...IntegerBound) IntegerSpec {
	s := IntegerSpec{name: name}
	for _, bound := range bounds {
		bound(&s)
	}
	return s
}

// Name returns the logical type name used in validation errors.
func (s IntegerSpec) Name() string {
	return s.name
}

// Check validates v against the configured bounds. Out-of-range values are
// rejected with a *errors.ValidationError carrying the violated bound kind.
func (s IntegerSpec) Check(v int64) error {
	if s.min != nil && v < *s.min {
		return &errors.ValidationError{
			Type:   s.name,
			Kind:   string(constraint.KindMinimum),
			Reason: fmt.Sprintf("value %d is below minimum %d", v, *s.min),
			Value:  v,
		}
	}
	if s.max != nil && v > *s.max {
		return &errors.ValidationError{
			Type:   s.name,
			Kind:   string(constraint.KindMaximum),
			Reason: fmt.Sprintf("value %d is above maximum %d", v, *s.max),
			Value:  v,
		}
	}
	return nil
}

// JSONSchema returns the wire schema fragment for values of this type:
// {"type":"integer"} plus the configured bounds.
func (s IntegerSpec) JSONSchema() map[string]any {
	fragment := map[string]any{"type": "integer"}
	if s.min != nil {
		fragment["minimum"] = *s.min
	}
	if s.max != nil {
		fragment["maximum"] = *s.max
	}
	return fragment
}

// FloatSpec describes one bounded float value type: a type name plus
// optional inclusive lower and upper bounds. Values serialize as bare JSON
// numbers.
type FloatSpec struct {
	name string
	min  *float64
	max  *float64
}

// FloatBound configures a bound on a FloatSpec.
type FloatBound func(*FloatSpec)

// FloatMin sets the inclusive lower bound.
func FloatMin(v float64) FloatBound {
	return func(s *FloatSpec) { s.min = &v }
}

// FloatMax sets the inclusive upper bound.
func FloatMax(v float64) FloatBound {
	return func(s *FloatSpec) { s.max = &v }
}

// NewFloatSpec builds a bounded float value type named name. Without bounds
// the spec accepts every float64.
func NewFloatSpec(name string, bounds ...FloatBound) FloatSpec {
	s := FloatSpec{name: name}
	for _, bound := range bounds {
		bound(&s)
	}
	return s
}

// Name returns the logical type name used in validation errors.
func (s FloatSpec) Name() string {
	return s.name
}

// Check validates v against the configured bounds. Out-of-range values are
// rejected with a *errors.ValidationError carrying the violated bound kind.
func (s FloatSpec) Check(v float64) error {
	if s.min != nil && v < *s.min {
		return &errors.ValidationError{
			Type:   s.name,
			Kind:   string(constraint.KindMinimum),
			Reason: fmt.Sprintf("value %v is below minimum %v", v, *s.min),
			Value:  v,
		}
	}
	if s.max != nil && v > *s.max {
		return &errors.ValidationError{
			Type:   s.name,
			Kind:   string(constraint.KindMaximum),
			Reason: fmt.Sprintf("value %v is above maximum %v", v, *s.max),
			Value:  v,
		}
	}
	return nil
}

// JSONSchema returns the wire schema fragment for values of this type:
// {"type":"number"} plus the configured bounds.
func (s FloatSpec) JSONSchema() map[string]any {
	fragment := map[string]any{"type": "number"}
	if s.min != nil {
		fragment["minimum"] = *s.min
	}
	if s.max != nil {
		fragment["maximum"] = *s.max
	}
	return fragment
}
