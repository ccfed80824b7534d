// File: doc.go
// Title: Script Declaration Model Documentation
// Description: Documents the declaration and value model produced by the
//              script package parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial declaration model

/*
Package ast defines the declarations and literal values extracted from
router-style script packages.

A parsed package is an ordered list of Declaration nodes. Each node is one
top-level statement:

  • Comment   - a "#" line
  • Command   - a free-standing ":" command, kept as raw text
  • Variable  - ":local"/":global" name followed by a literal value
  • Function  - ":local"/":global" name followed by do={...}, body kept raw
  • Return    - the ":return" statement of the package

Values form a small recursive sum type (Integer, Boolean, String, List, Map
and RawExpression). Bracket and paren expressions are never evaluated, they
are carried as RawExpression text.

Declarations and values encode to JSON and YAML with map insertion order
preserved.
*/
package ast
