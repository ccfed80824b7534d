// File: table.go
// Title: Declaration Lookup Table
// Description: Ordered declaration list plus the last-write-wins name index
//              used for reference resolution and the global-surface queries.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial lookup table

package parser

import (
	"github.com/msto63/rspm/pkg/script/ast"
)

// Table holds the declarations of one source in source order together with
// an index from name to the most recently appended declaration of that name.
// The index is derived from the node list and never reorders it.
type Table struct {
	nodes []*ast.Declaration
	index map[string]*ast.Declaration
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{index: make(map[string]*ast.Declaration)}
}

// MergeGlobals builds a table holding only the global variables and global
// functions of the given tables in order. Locals, commands, comments and
// return values stay private to the source that declared them.
func MergeGlobals(tables ...*Table) *Table {
	merged := NewTable()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, d := range t.nodes {
			if d.Global && (d.Kind == ast.KindVariable || d.Kind == ast.KindFunction) {
				merged.append(d)
			}
		}
	}
	return merged
}

func (t *Table) append(d *ast.Declaration) {
	t.nodes = append(t.nodes, d)
	if d.Name != "" {
		t.index[d.Name] = d
	}
}

// Lookup returns the most recent declaration with the given name
func (t *Table) Lookup(name string) (*ast.Declaration, bool) {
	if t == nil {
		return nil, false
	}
	d, ok := t.index[name]
	return d, ok
}

// Return returns the most recent return declaration, or nil
func (t *Table) Return() *ast.Declaration {
	d, _ := t.Lookup(ast.ReturnName)
	return d
}

// MetaInfo returns the metaInfo variable, or nil if the package has none.
// A function that happens to be named metaInfo does not count.
func (t *Table) MetaInfo() *ast.Declaration {
	d, ok := t.Lookup(ast.MetaInfoName)
	if !ok || d.Kind != ast.KindVariable {
		return nil
	}
	return d
}

// Nodes returns a copy of the declarations in source order
func (t *Table) Nodes() []*ast.Declaration {
	if t == nil {
		return nil
	}
	out := make([]*ast.Declaration, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Len returns the number of declarations
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// GlobalFunctions returns all global functions in source order
func (t *Table) GlobalFunctions() []*ast.Declaration {
	return t.globals(ast.KindFunction)
}

// GlobalVariables returns all global variables in source order
func (t *Table) GlobalVariables() []*ast.Declaration {
	return t.globals(ast.KindVariable)
}

// GlobalCommands returns all top-level commands in source order
func (t *Table) GlobalCommands() []*ast.Declaration {
	return t.globals(ast.KindCommand)
}

func (t *Table) globals(kind ast.Kind) []*ast.Declaration {
	if t == nil {
		return nil
	}
	var out []*ast.Declaration
	for _, d := range t.nodes {
		if d.Kind == kind && d.Global {
			out = append(out, d)
		}
	}
	return out
}
