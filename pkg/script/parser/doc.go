// File: doc.go
// Title: Script Parser Package Documentation
// Description: Streaming lexer and recursive-descent parser for router-style
//              script packages.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial parser implementation

/*
Package parser extracts the top-level declarations of a router-style script
package in a single forward pass over the source.

The parser is built from four parts:

  • Stream      - buffered byte cursor with lookahead and position tracking
  • Dispatcher  - classifies each statement by its leading token
  • Statements  - comment, :local/:global variable or function, :return, command
  • Values      - integers, booleans, strings, arrays/maps, $references and
                  opaque [...] / (...) expressions

Parsing is fail-fast. The first error aborts the parse and is returned as a
*ParseError carrying a Code, the cursor position and a source snippet; it
unwraps to one of the Err* sentinels.

Basic usage:

	pkg, err := parser.ParseFile("lib_core.rsc", parser.Options{})
	if err != nil {
		return err
	}
	for _, fn := range pkg.GlobalFunctions() {
		fmt.Println(fn.Name)
	}

A variable reference resolves against the declarations seen so far in the
same source. Declarations from other packages are only visible through
Options.Globals, typically built with MergeGlobals, which keeps only the
global variables and functions of each source.
*/
package parser
