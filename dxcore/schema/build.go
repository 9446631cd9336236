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

package schema

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/dxobj/dxcore/constraint"
	"dirpx.dev/dxobj/dxcore/errors"
	"dirpx.dev/dxobj/dxcore/model"
	"dirpx.dev/dxobj/dxcore/model/value"
	"dirpx.dev/dxobj/dxcore/textutil"
)

// DefaultModelName titles definitions built from documents without a
// "title" key.
const DefaultModelName = "DynamicModel"

const refPrefix = "#/$defs/"

// BuildOption configures a reconstruction.
type BuildOption func(*builder)

// WithBaseOptions layers definition options (WithEntity, WithCreationTime,
// WithUpdateTime, WithAliasPolicy) onto the root definition, so a schema
// can be reconstructed as an entity or a time-aware record.
func WithBaseOptions(opts ...model.DefinitionOption) BuildOption {
	return func(b *builder) { b.baseOpts = opts }
}

// Build reconstructs a model definition from a JSON-Schema-like document.
//
// The document MUST carry a top-level "properties" object; its declaration
// order becomes the definition's field order. Each property key is the wire
// name; the code name is its snake_case form. "$defs" entries are resolved
// by repeated passes so they may reference each other in any order; a pass
// that resolves nothing while entries remain fails with a
// *errors.SchemaError, as does a dangling or self-referencing "$ref" and a
// document without properties. No partial definition is ever returned.
func Build(data []byte, opts ...BuildOption) (*model.Definition, error) {
	b := &builder{resolved: make(map[string]*model.Definition)}
	for _, opt := range opts {
		opt(b)
	}

	root := &node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, &errors.SchemaError{Reason: fmt.Sprintf("malformed document: %v", err)}
	}

	if err := b.resolveDefs(root.Defs); err != nil {
		return nil, err
	}

	name := root.Title
	if name == "" {
		name = DefaultModelName
	}
	def, err := b.buildDefinition(name, root, b.baseOpts)
	if err != nil {
		var unresolved *unresolvedRefError
		if goerrors.As(err, &unresolved) {
			return nil, &errors.SchemaError{Reason: "unresolvable reference", Ref: unresolved.ref}
		}
		return nil, err
	}
	return def, nil
}

type builder struct {
	baseOpts []model.DefinitionOption
	resolved map[string]*model.Definition
}

// resolveDefs runs the fixed-point worklist over the $defs entries. Each
// pass attempts every remaining entry; entries whose references all resolve
// are admitted, the rest are retried next pass. A pass with no progress
// means the remaining entries form a cycle or point at nothing.
func (b *builder) resolveDefs(defs []namedNode) error {
	pending := make([]namedNode, len(defs))
	copy(pending, defs)

	for len(pending) > 0 {
		var next []namedNode
		progress := false
		for _, d := range pending {
			name := d.Schema.Title
			if name == "" {
				name = textutil.ToPascal(d.Name)
			}
			def, err := b.buildDefinition(name, d.Schema, nil)
			if err != nil {
				var unresolved *unresolvedRefError
				if goerrors.As(err, &unresolved) {
					next = append(next, d)
					continue
				}
				return err
			}
			b.resolved[d.Name] = def
			progress = true
		}
		if !progress {
			refs := make([]string, 0, len(next))
			for _, d := range next {
				refs = append(refs, d.Name)
			}
			return &errors.SchemaError{
				Reason: "definitions never resolve (cycle, self-reference, or missing target)",
				Ref:    strings.Join(refs, ", "),
			}
		}
		pending = next
	}
	return nil
}

// buildDefinition synthesizes a definition from an object node.
func (b *builder) buildDefinition(name string, n *node, opts []model.DefinitionOption) (*model.Definition, error) {
	if n.Properties == nil {
		return nil, &errors.SchemaError{Reason: fmt.Sprintf("schema %q has no properties", name)}
	}
	fields := make([]model.Field, 0, len(n.Properties))
	for _, p := range n.Properties {
		ft, err := b.buildFieldType(p.Key, p.Schema)
		if err != nil {
			return nil, err
		}
		fields = append(fields, model.Field{
			Name: textutil.ToSnake(p.Key),
			Wire: p.Key,
			Type: ft,
		})
	}
	return model.NewDefinition(name, fields, opts...)
}

// buildFieldType maps one type descriptor to a FieldType per the wire
// vocabulary: string formats select identifier and bytes types, the
// timestamp format selects the timestamp type, arrays recurse on "items",
// objects become nested definitions or untyped maps, and "$ref" points at
// a $defs entry.
func (b *builder) buildFieldType(key string, n *node) (model.FieldType, error) {
	if n.Ref != "" {
		target, ok := strings.CutPrefix(n.Ref, refPrefix)
		if !ok {
			return nil, &errors.SchemaError{Reason: "unsupported reference form", Ref: n.Ref}
		}
		def, ok := b.resolved[target]
		if !ok {
			return nil, &unresolvedRefError{ref: n.Ref}
		}
		return model.ModelType{Def: def}, nil
	}

	switch n.Type {
	case "string":
		switch n.Format {
		case "crockfordBase32":
			return model.IdType{}, nil
		case "base64EncodedString":
			return model.BytesType{}, nil
		default:
			spec, err := b.stringSpec(key, n)
			if err != nil {
				return nil, err
			}
			return model.StringType{Spec: spec}, nil
		}
	case "integer":
		if n.Format == "timestamp" {
			return model.TimestampType{}, nil
		}
		spec, err := b.integerSpec(key, n)
		if err != nil {
			return nil, err
		}
		return model.IntegerType{Spec: spec}, nil
	case "number":
		spec, err := b.floatSpec(key, n)
		if err != nil {
			return nil, err
		}
		return model.FloatType{Spec: spec}, nil
	case "boolean":
		return model.BooleanType{}, nil
	case "array":
		if n.Items == nil {
			return model.ListType{Elem: model.AnyType{}}, nil
		}
		elem, err := b.buildFieldType(key+"Item", n.Items)
		if err != nil {
			return nil, err
		}
		return model.ListType{Elem: elem}, nil
	case "object":
		if n.Properties == nil {
			return model.MapType{}, nil
		}
		name := n.Title
		if name == "" {
			name = textutil.ToPascal(key)
		}
		def, err := b.buildDefinition(name, n, nil)
		if err != nil {
			return nil, err
		}
		return model.ModelType{Def: def}, nil
	case "":
		return nil, &errors.SchemaError{Reason: fmt.Sprintf("property %q has neither type nor $ref", key)}
	default:
		return nil, &errors.SchemaError{Reason: fmt.Sprintf("property %q has unsupported type %q", key, n.Type)}
	}
}

func (b *builder) stringSpec(key string, n *node) (value.StringSpec, error) {
	var contributors []constraint.Contributor
	if n.MinLength != nil {
		contributors = append(contributors, constraint.MinLength(*n.MinLength))
	}
	if n.MaxLength != nil {
		contributors = append(contributors, constraint.MaxLength(*n.MaxLength))
	}
	if n.Pattern != "" {
		// The document is untrusted input; a pattern that does not compile
		// is a reconstruction failure, not a panic.
		if _, err := regexp.Compile(n.Pattern); err != nil {
			return value.StringSpec{}, &errors.SchemaError{Reason: fmt.Sprintf("property %q has invalid pattern %q: %v", key, n.Pattern, err)}
		}
		contributors = append(contributors, constraint.Pattern(n.Pattern))
	}
	return value.NewStringSpec(textutil.ToPascal(key), contributors...), nil
}

func (b *builder) integerSpec(key string, n *node) (value.IntegerSpec, error) {
	var bounds []value.IntegerBound
	if n.Minimum != nil {
		v, err := n.Minimum.Int64()
		if err != nil {
			return value.IntegerSpec{}, &errors.SchemaError{Reason: fmt.Sprintf("property %q has non-integer minimum %s", key, n.Minimum.String())}
		}
		bounds = append(bounds, value.IntegerMin(v))
	}
	if n.Maximum != nil {
		v, err := n.Maximum.Int64()
		if err != nil {
			return value.IntegerSpec{}, &errors.SchemaError{Reason: fmt.Sprintf("property %q has non-integer maximum %s", key, n.Maximum.String())}
		}
		bounds = append(bounds, value.IntegerMax(v))
	}
	return value.NewIntegerSpec(textutil.ToPascal(key), bounds...), nil
}

func (b *builder) floatSpec(key string, n *node) (value.FloatSpec, error) {
	var bounds []value.FloatBound
	if n.Minimum != nil {
		v, err := n.Minimum.Float64()
		if err != nil {
			return value.FloatSpec{}, &errors.SchemaError{Reason: fmt.Sprintf("property %q has unusable minimum %s", key, n.Minimum.String())}
		}
		bounds = append(bounds, value.FloatMin(v))
	}
	if n.Maximum != nil {
		v, err := n.Maximum.Float64()
		if err != nil {
			return value.FloatSpec{}, &errors.SchemaError{Reason: fmt.Sprintf("property %q has unusable maximum %s", key, n.Maximum.String())}
		}
		bounds = append(bounds, value.FloatMax(v))
	}
	return value.NewFloatSpec(textutil.ToPascal(key), bounds...), nil
}

// unresolvedRefError marks a reference whose target has not been admitted
// yet; the worklist retries the carrying definition on the next pass.
type unresolvedRefError struct {
	ref string
}

func (e *unresolvedRefError) Error() string {
	return "unresolved reference " + e.ref
}
