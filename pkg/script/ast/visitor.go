// File: visitor.go
// Title: Declaration Visitor
// Description: Visitor pattern over declaration lists. Provides the base
//              visitor and the Walk dispatcher used by report renderers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial visitor implementation

package ast

import (
	"fmt"
)

// Visitor receives one call per declaration, keyed by kind
type Visitor interface {
	VisitComment(d *Declaration) error
	VisitCommand(d *Declaration) error
	VisitVariable(d *Declaration) error
	VisitFunction(d *Declaration) error
	VisitReturn(d *Declaration) error
}

// BaseVisitor ignores every declaration.
// Embed this in concrete visitors to only override needed methods
type BaseVisitor struct{}

func (BaseVisitor) VisitComment(*Declaration) error  { return nil }
func (BaseVisitor) VisitCommand(*Declaration) error  { return nil }
func (BaseVisitor) VisitVariable(*Declaration) error { return nil }
func (BaseVisitor) VisitFunction(*Declaration) error { return nil }
func (BaseVisitor) VisitReturn(*Declaration) error   { return nil }

// Accept dispatches the declaration to the matching visitor method
func (d *Declaration) Accept(v Visitor) error {
	switch d.Kind {
	case KindComment:
		return v.VisitComment(d)
	case KindCommand:
		return v.VisitCommand(d)
	case KindVariable:
		return v.VisitVariable(d)
	case KindFunction:
		return v.VisitFunction(d)
	case KindReturn:
		return v.VisitReturn(d)
	default:
		return fmt.Errorf("unknown declaration kind %d", d.Kind)
	}
}

// Walk visits the declarations in order and stops at the first error
func Walk(decls []*Declaration, v Visitor) error {
	for _, d := range decls {
		if err := d.Accept(v); err != nil {
			return err
		}
	}
	return nil
}
