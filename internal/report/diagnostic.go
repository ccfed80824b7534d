// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     report
// Description: Compiler style diagnostics for parse failures
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msto63/rspm/pkg/script/parser"
)

// Diagnostic is the machine readable form of a failure
type Diagnostic struct {
	Path    string `json:"path" yaml:"path"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Offset  int64  `json:"offset,omitempty" yaml:"offset,omitempty"`
	Message string `json:"message" yaml:"message"`
	Near    string `json:"near,omitempty" yaml:"near,omitempty"`
}

// NewDiagnostic describes err for path. Errors that are not parse errors,
// such as missing files, only carry a message.
func NewDiagnostic(path string, err error) Diagnostic {
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		return Diagnostic{Path: path, Message: err.Error()}
	}
	return Diagnostic{
		Path:    path,
		Code:    string(pe.Code),
		Line:    pe.Pos.Line,
		Column:  pe.Pos.Column,
		Offset:  pe.Pos.Offset,
		Message: pe.Message,
		Near:    pe.Snippet,
	}
}

// Diagnostic writes a failure in the form
//
//	path:line:col: error[CODE]: message
//	   | text of the line
//	   |      ^
func (r *Reporter) Diagnostic(path string, err error) error {
	if r.format != FormatText {
		return r.encode(NewDiagnostic(path, err))
	}
	_, werr := fmt.Fprint(r.w, r.renderDiagnostic(path, err))
	return werr
}

func (r *Reporter) renderDiagnostic(path string, err error) string {
	s := r.styles
	var b strings.Builder

	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(&b, "%s: %s %s\n", s.Location.Render(path), s.Error.Render("error:"), err.Error())
		return b.String()
	}

	loc := fmt.Sprintf("%s:%d:%d:", path, pe.Pos.Line, pe.Pos.Column)
	fmt.Fprintf(&b, "%s %s %s\n",
		s.Location.Render(loc),
		s.Error.Render("error")+s.Code.Render("["+string(pe.Code)+"]:"),
		pe.Message)

	before, after := excerpt(pe.Before, pe.Snippet)
	if before == "" && after == "" {
		return b.String()
	}
	gutter := s.Span.Render("   | ")
	fmt.Fprintf(&b, "%s%s\n", gutter, s.Snippet.Render(before+after))
	fmt.Fprintf(&b, "%s%s%s\n", gutter, strings.Repeat(" ", utf8.RuneCountInString(before)), s.Caret.Render("^"))
	return b.String()
}

// excerpt returns the part of the error line before and after the cursor.
// Tabs become spaces and other control bytes are dropped so that the caret
// lines up.
func excerpt(before, snippet string) (string, string) {
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		snippet = snippet[:i]
	}
	return printable(before), printable(snippet)
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < ' ' || r == 0x7f:
			return -1
		default:
			return r
		}
	}, s)
}
