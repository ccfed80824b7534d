// File: value.go
// Title: Script Literal Values
// Description: Defines the recursive literal value sum type produced by the
//              value grammar: integers, booleans, strings, lists, ordered
//              maps and raw bracket/paren expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial value model

package ast

import (
	"strconv"
	"strings"
)

// ValueType represents the variant of a Value
type ValueType int

const (
	ValueTypeInteger ValueType = iota
	ValueTypeBoolean
	ValueTypeString
	ValueTypeList
	ValueTypeMap
	ValueTypeRaw
)

// String returns string representation of ValueType
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeInteger:
		return "integer"
	case ValueTypeBoolean:
		return "boolean"
	case ValueTypeString:
		return "string"
	case ValueTypeList:
		return "list"
	case ValueTypeMap:
		return "map"
	case ValueTypeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is a literal value. The set of implementations is closed.
type Value interface {
	// Type returns the variant of the value
	Type() ValueType

	// String renders the value in script syntax
	String() string

	value()
}

// Integer is a decimal integer literal
type Integer int64

// Boolean is a true/false literal
type Boolean bool

// String is a quoted string literal, kept as the raw bytes between quotes
type String string

// List is an array literal whose entries are bare values
type List []Value

// RawExpression is verbatim [...] or (...) text, never evaluated
type RawExpression string

func (Integer) Type() ValueType       { return ValueTypeInteger }
func (Boolean) Type() ValueType       { return ValueTypeBoolean }
func (String) Type() ValueType        { return ValueTypeString }
func (List) Type() ValueType          { return ValueTypeList }
func (*Map) Type() ValueType          { return ValueTypeMap }
func (RawExpression) Type() ValueType { return ValueTypeRaw }

func (Integer) value()       {}
func (Boolean) value()       {}
func (String) value()        {}
func (List) value()          {}
func (*Map) value()          {}
func (RawExpression) value() {}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (s String) String() string {
	return `"` + string(s) + `"`
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ";") + "}"
}

func (r RawExpression) String() string {
	return string(r)
}

// MapEntry is a single key=value pair of a Map
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an array literal whose entries are key=value pairs. Entries keep
// insertion order; setting an existing key replaces its value in place.
type Map struct {
	entries []MapEntry
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{}
}

// Set stores value under key
func (m *Map) Set(key, value Value) {
	for i := range m.entries {
		if Equal(m.entries[i].Key, key) {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, MapEntry{Key: key, Value: value})
}

// Get returns the value stored under key
func (m *Map) Get(key Value) (Value, bool) {
	if m == nil {
		return nil, false
	}
	for _, e := range m.entries {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup returns the value stored under the string key name
func (m *Map) Lookup(name string) (Value, bool) {
	return m.Get(String(name))
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order
func (m *Map) Entries() []MapEntry {
	if m == nil {
		return nil
	}
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Map) String() string {
	parts := make([]string, 0, m.Len())
	for _, e := range m.entries {
		parts = append(parts, renderKey(e.Key)+"="+e.Value.String())
	}
	return "{" + strings.Join(parts, ";") + "}"
}

// renderKey writes string keys bare when the parser would read them back
// as a bare key.
func renderKey(k Value) string {
	if s, ok := k.(String); ok && IsBareKey(string(s)) {
		return string(s)
	}
	return k.String()
}

// IsIdentifierByte reports whether b may appear in a declared name. The
// class is the digits plus the ordinal range 'A'..'z', which also admits
// the punctuation [ \ ] ^ _ and backtick.
func IsIdentifierByte(b byte) bool {
	return ('0' <= b && b <= '9') || ('A' <= b && b <= 'z')
}

// IsBareKey reports whether s can be written as an unquoted map key
func IsBareKey(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsIdentifierByte(s[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two values are structurally equal. Maps compare
// entry by entry in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if av.Len() != bv.Len() {
			return false
		}
		if av.Len() == 0 {
			return true
		}
		for i := range av.entries {
			if !Equal(av.entries[i].Key, bv.entries[i].Key) ||
				!Equal(av.entries[i].Value, bv.entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
