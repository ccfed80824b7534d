// File: errors.go
// Title: Parser Error Taxonomy
// Description: Defines the error codes, sentinel errors and the ParseError
//              type carrying position and source snippet for every parse
//              failure.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial error taxonomy

package parser

import (
	"errors"
	"fmt"
)

// Code represents a structured error code for categorizing parse failures
type Code string

// Parse error codes
const (
	CodeUnexpectedEnd      Code = "UNEXPECTED_END"
	CodeUnexpectedToken    Code = "UNEXPECTED_TOKEN"
	CodeInvalidIdentifier  Code = "INVALID_IDENTIFIER"
	CodeAmbiguousArray     Code = "AMBIGUOUS_ARRAY"
	CodeExpectedDelimiter  Code = "EXPECTED_DELIMITER"
	CodeUndefinedVariable  Code = "UNDEFINED_VARIABLE"
	CodeUnsupportedLiteral Code = "UNSUPPORTED_LITERAL"
	CodeReadFailed         Code = "READ_FAILED"
	CodeParserReused       Code = "PARSER_REUSED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Sentinel errors, one per code. A *ParseError unwraps to the sentinel of
// its code, so callers can use errors.Is.
var (
	ErrUnexpectedEnd      = errors.New("unexpected end of input")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrAmbiguousArray     = errors.New("ambiguous array: list and map entries mixed")
	ErrExpectedDelimiter  = errors.New("expected delimiter")
	ErrUndefinedVariable  = errors.New("undefined variable")
	ErrUnsupportedLiteral = errors.New("unsupported literal")
	ErrRead               = errors.New("read failed")
	ErrParserReused       = errors.New("parser already consumed a stream")
)

var sentinels = map[Code]error{
	CodeUnexpectedEnd:      ErrUnexpectedEnd,
	CodeUnexpectedToken:    ErrUnexpectedToken,
	CodeInvalidIdentifier:  ErrInvalidIdentifier,
	CodeAmbiguousArray:     ErrAmbiguousArray,
	CodeExpectedDelimiter:  ErrExpectedDelimiter,
	CodeUndefinedVariable:  ErrUndefinedVariable,
	CodeUnsupportedLiteral: ErrUnsupportedLiteral,
	CodeReadFailed:         ErrRead,
	CodeParserReused:       ErrParserReused,
}

// ParseError represents a parsing error with position information
type ParseError struct {
	Code    Code
	Source  string   // package name or path of the source
	Pos     Position // position of the cursor when the error was raised
	Message string
	Before  string // consumed bytes immediately before Pos
	Snippet string // unconsumed bytes starting at Pos

	cause error
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "<input>"
	}
	return fmt.Sprintf("%s: parse error at line %d, column %d (offset %d): %s (near %q)",
		src, e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message, e.Snippet)
}

// Unwrap returns the sentinel for the error code and, for read failures,
// the underlying reader error.
func (e *ParseError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// HasCode checks if an error is a ParseError with a specific code
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of a ParseError in err's chain, or "" if none
func GetCode(err error) Code {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
