// File: encoding.go
// Title: Declaration JSON/YAML Encoding
// Description: Encodes declarations and values to JSON and YAML for
//              downstream tooling. Map entry order is preserved in both
//              encodings.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial encoders

package ast

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// declDoc is the wire shape shared by the JSON and YAML encodings
type declDoc struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Global *bool  `json:"global,omitempty" yaml:"global,omitempty"`
	Start  int64  `json:"start" yaml:"start"`
	End    int64  `json:"end" yaml:"end"`
	Value  Value  `json:"value,omitempty" yaml:"value,omitempty"`
	Raw    string `json:"raw,omitempty" yaml:"raw,omitempty"`
	Body   string `json:"body,omitempty" yaml:"body,omitempty"`
}

func (d *Declaration) doc() declDoc {
	doc := declDoc{
		Kind:  d.Kind.String(),
		Name:  d.Name,
		Start: d.Start,
		End:   d.End,
		Value: d.Value,
	}
	switch d.Kind {
	case KindCommand:
		doc.Raw = d.Raw
	case KindFunction:
		doc.Body = d.Raw
	}
	if d.Kind == KindCommand || d.Kind == KindVariable || d.Kind == KindFunction {
		global := d.Global
		doc.Global = &global
	}
	return doc
}

// MarshalJSON implements json.Marshaler
func (d *Declaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.doc())
}

// MarshalYAML implements yaml.Marshaler
func (d *Declaration) MarshalYAML() (interface{}, error) {
	return d.doc(), nil
}

// MarshalJSON encodes a raw expression as {"expr": "..."} so it stays
// distinguishable from string literals.
func (r RawExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"expr": string(r)})
}

// MarshalYAML encodes a raw expression as {expr: ...}
func (r RawExpression) MarshalYAML() (interface{}, error) {
	return map[string]string{"expr": string(r)}, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order. String
// keys are used as-is, other keys in their script rendering.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(jsonKey(e.Key))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m.Entries() {
		var key, val yaml.Node
		if err := key.Encode(jsonKey(e.Key)); err != nil {
			return nil, err
		}
		if err := val.Encode(e.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

func jsonKey(k Value) string {
	if s, ok := k.(String); ok {
		return string(s)
	}
	return k.String()
}
