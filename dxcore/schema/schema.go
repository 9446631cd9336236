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

// Package schema reconstructs model definitions from JSON-Schema-like
// documents: a top-level properties table, an optional $defs map of named
// sub-schemas, and $ref pointers of the form "#/$defs/<name>" reachable
// from anywhere in the document.
//
// Property declaration order is preserved through decoding so synthesized
// definitions serialize their fields deterministically in the order the
// schema declared them. Cross-references between $defs entries, including
// forward references, are resolved by repeated passes until a fixed point;
// an entry that can never resolve (self-reference, cycle, or a dangling
// ref) fails the whole reconstruction with a *errors.SchemaError.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// node is one schema object, decoded with its property and $defs entry
// order intact.
type node struct {
	Type       string
	Format     string
	Title      string
	Ref        string
	Pattern    string
	MinLength  *int
	MaxLength  *int
	Minimum    *json.Number
	Maximum    *json.Number
	Items      *node
	Properties []property
	Required   []string
	Defs       []namedNode
}

// property is one ordered entry of a "properties" object.
type property struct {
	Key    string
	Schema *node
}

// namedNode is one ordered entry of a "$defs" object.
type namedNode struct {
	Name   string
	Schema *node
}

// UnmarshalJSON decodes a schema object through the token stream so that
// the declaration order of "properties" and "$defs" keys survives, which
// map-based decoding would destroy.
func (n *node) UnmarshalJSON(data []byte) error {
	entries, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}
	for _, e := range entries {
		switch e.key {
		case "type":
			if err := json.Unmarshal(e.raw, &n.Type); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		case "format":
			if err := json.Unmarshal(e.raw, &n.Format); err != nil {
				return fmt.Errorf("format: %w", err)
			}
		case "title":
			if err := json.Unmarshal(e.raw, &n.Title); err != nil {
				return fmt.Errorf("title: %w", err)
			}
		case "$ref":
			if err := json.Unmarshal(e.raw, &n.Ref); err != nil {
				return fmt.Errorf("$ref: %w", err)
			}
		case "pattern":
			if err := json.Unmarshal(e.raw, &n.Pattern); err != nil {
				return fmt.Errorf("pattern: %w", err)
			}
		case "minLength":
			if err := json.Unmarshal(e.raw, &n.MinLength); err != nil {
				return fmt.Errorf("minLength: %w", err)
			}
		case "maxLength":
			if err := json.Unmarshal(e.raw, &n.MaxLength); err != nil {
				return fmt.Errorf("maxLength: %w", err)
			}
		case "minimum":
			if err := json.Unmarshal(e.raw, &n.Minimum); err != nil {
				return fmt.Errorf("minimum: %w", err)
			}
		case "maximum":
			if err := json.Unmarshal(e.raw, &n.Maximum); err != nil {
				return fmt.Errorf("maximum: %w", err)
			}
		case "items":
			n.Items = &node{}
			if err := json.Unmarshal(e.raw, n.Items); err != nil {
				return fmt.Errorf("items: %w", err)
			}
		case "required":
			if err := json.Unmarshal(e.raw, &n.Required); err != nil {
				return fmt.Errorf("required: %w", err)
			}
		case "properties":
			props, err := decodeOrderedObject(e.raw)
			if err != nil {
				return fmt.Errorf("properties: %w", err)
			}
			n.Properties = make([]property, 0, len(props))
			for _, p := range props {
				child := &node{}
				if err := json.Unmarshal(p.raw, child); err != nil {
					return fmt.Errorf("property %q: %w", p.key, err)
				}
				n.Properties = append(n.Properties, property{Key: p.key, Schema: child})
			}
		case "$defs":
			defs, err := decodeOrderedObject(e.raw)
			if err != nil {
				return fmt.Errorf("$defs: %w", err)
			}
			n.Defs = make([]namedNode, 0, len(defs))
			for _, d := range defs {
				child := &node{}
				if err := json.Unmarshal(d.raw, child); err != nil {
					return fmt.Errorf("$defs entry %q: %w", d.key, err)
				}
				n.Defs = append(n.Defs, namedNode{Name: d.key, Schema: child})
			}
		}
	}
	return nil
}

type orderedEntry struct {
	key string
	raw json.RawMessage
}

// decodeOrderedObject walks a JSON object token by token, returning its
// entries in declaration order.
func decodeOrderedObject(data []byte) ([]orderedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var entries []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, orderedEntry{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
