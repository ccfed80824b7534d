// File: nodes.go
// Title: Script Declaration Nodes
// Description: Defines the Declaration tagged union for the top-level
//              statements of a script package together with constructors,
//              string representations and validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial declaration nodes

package ast

import (
	"fmt"
)

// Reserved lookup names
const (
	// ReturnName is the name every Return declaration is indexed under
	ReturnName = "return"

	// MetaInfoName is the variable holding package metadata
	MetaInfoName = "metaInfo"
)

// Kind identifies the statement variant of a Declaration
type Kind int

const (
	KindComment Kind = iota
	KindCommand
	KindVariable
	KindFunction
	KindReturn
)

// String returns string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindCommand:
		return "command"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Declaration is one parsed top-level statement. Which payload fields are
// meaningful depends on Kind:
//
//	Comment   Start, End
//	Command   Start, End, Global, Raw (full statement text)
//	Variable  Name, Global, Start, End, Value
//	Function  Name, Global, Start, End, Raw (body between the outer braces)
//	Return    Name ("return"), Start, End, Value
//
// Declarations are not modified after the parser appends them.
type Declaration struct {
	Kind   Kind
	Name   string
	Global bool
	Start  int64 // byte offset of the first statement byte
	End    int64 // byte offset just past the statement
	Value  Value
	Raw    string
}

// NewComment creates a comment declaration
func NewComment(start, end int64) *Declaration {
	return &Declaration{Kind: KindComment, Start: start, End: end}
}

// NewCommand creates a command declaration. Top-level commands are global.
func NewCommand(start, end int64, raw string) *Declaration {
	return &Declaration{Kind: KindCommand, Global: true, Start: start, End: end, Raw: raw}
}

// NewVariable creates a variable declaration
func NewVariable(name string, global bool, start, end int64, value Value) *Declaration {
	return &Declaration{Kind: KindVariable, Name: name, Global: global, Start: start, End: end, Value: value}
}

// NewFunction creates a function declaration with an opaque body
func NewFunction(name string, global bool, start, end int64, body string) *Declaration {
	return &Declaration{Kind: KindFunction, Name: name, Global: global, Start: start, End: end, Raw: body}
}

// NewReturn creates the return declaration
func NewReturn(start, end int64, value Value) *Declaration {
	return &Declaration{Kind: KindReturn, Name: ReturnName, Start: start, End: end, Value: value}
}

// Len returns the number of source bytes the declaration spans
func (d *Declaration) Len() int64 {
	return d.End - d.Start
}

// Text returns the source bytes of the declaration
func (d *Declaration) Text(src []byte) string {
	if d.Start < 0 || d.End > int64(len(src)) || d.Start > d.End {
		return ""
	}
	return string(src[d.Start:d.End])
}

func (d *Declaration) String() string {
	switch d.Kind {
	case KindComment:
		return fmt.Sprintf("<Comment [%d:%d]>", d.Start, d.End)
	case KindCommand:
		return fmt.Sprintf("<Command cmd=%s>", brief(fmt.Sprintf("%q", d.Raw)))
	case KindFunction:
		return fmt.Sprintf("<Function name=%s global=%t>", d.Name, d.Global)
	case KindVariable:
		return fmt.Sprintf("<Variable name=%s global=%t value=%s>", d.Name, d.Global, brief(valueString(d.Value)))
	case KindReturn:
		return fmt.Sprintf("<Return value=%s>", brief(valueString(d.Value)))
	default:
		return "<Unknown>"
	}
}

// Validate checks the payload shape of the declaration against its kind
func (d *Declaration) Validate() error {
	if d.Start < 0 || d.End < d.Start {
		return fmt.Errorf("invalid span [%d:%d]", d.Start, d.End)
	}
	switch d.Kind {
	case KindComment:
		return nil
	case KindCommand:
		if d.Raw == "" {
			return fmt.Errorf("command text is required")
		}
	case KindVariable:
		if d.Name == "" {
			return fmt.Errorf("variable name is required")
		}
		if d.Value == nil {
			return fmt.Errorf("variable %s: value is required", d.Name)
		}
	case KindFunction:
		if d.Name == "" {
			return fmt.Errorf("function name is required")
		}
	case KindReturn:
		if d.Value == nil {
			return fmt.Errorf("return value is required")
		}
	default:
		return fmt.Errorf("unknown declaration kind %d", d.Kind)
	}
	return nil
}

func valueString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}

func brief(s string) string {
	if len(s) > 30 {
		return s[:30] + "..."
	}
	return s
}
