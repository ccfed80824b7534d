// File: parser.go
// Title: Script Package Parser
// Description: Streaming recursive-descent parser for router-style script
//              packages. Drives the lookahead stream, dispatches top-level
//              statements to the declaration parsers and builds the
//              ordered declaration table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"io"

	"github.com/msto63/rspm/pkg/core/logging"
	"github.com/msto63/rspm/pkg/script/ast"
)

// Statement and literal tokens
const (
	tokenComment   = "#"
	tokenLocal     = ":local "
	tokenGlobal    = ":global "
	tokenReturn    = ":return "
	tokenCommand   = ":"
	tokenFunction  = "do={"
	tokenDelimiter = ';'
	tokenTrue      = "true"
	tokenFalse     = "false"
)

// Parser parses exactly one script source. Instances are not safe for
// concurrent use and share no state with each other.
type Parser struct {
	stream  *Stream
	table   *Table
	logger  *logging.Logger
	options Options
	used    bool
}

// Options configures parser behavior
type Options struct {
	// Name identifies the source in errors and log entries
	Name string

	Logger *logging.Logger

	// BufferSize is the lookahead window in bytes (default 512)
	BufferSize int

	// SnippetLength bounds the source context attached to errors (default 32)
	SnippetLength int

	// Globals is consulted for variable references the source itself does
	// not declare. It is never modified.
	Globals *Table
}

// New creates a new script parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}
	if opts.BufferSize < 0 {
		return nil, fmt.Errorf("invalid buffer size: %d", opts.BufferSize)
	}
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultWindowSize
	}
	if opts.SnippetLength < 0 {
		return nil, fmt.Errorf("invalid snippet length: %d", opts.SnippetLength)
	}
	if opts.SnippetLength == 0 {
		opts.SnippetLength = DefaultSnippetLength
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "script-parser"),
		options: opts,
	}, nil
}

// Parse consumes r to completion and returns the parsed package. On failure
// no partial result is returned.
func (p *Parser) Parse(r io.Reader) (*Package, error) {
	if p.used {
		return nil, &ParseError{
			Code:    CodeParserReused,
			Source:  p.options.Name,
			Message: "parser instances consume exactly one stream",
		}
	}
	p.used = true

	p.stream = NewStream(r, p.options.BufferSize)
	p.stream.SetTailSize(p.options.SnippetLength)
	p.table = NewTable()

	p.logger.Debug("Starting script parsing", "package", p.options.Name)
	timer := p.logger.StartTimer("parse").WithField("package", p.options.Name)

	if err := p.run(); err != nil {
		timer.WithField("code", GetCode(err))
		if pe, ok := err.(*ParseError); ok {
			timer.WithField("offset", pe.Pos.Offset).WithField("line", pe.Pos.Line)
		}
		timer.StopWithError(err)
		return nil, err
	}

	timer.WithField("nodes", p.table.Len()).Stop()
	p.logger.Debug("Script parsing completed successfully",
		"package", p.options.Name,
		"nodes", p.table.Len(),
		"bytes", p.stream.Offset(),
	)

	return &Package{Name: p.options.Name, Table: p.table}, nil
}

// run is the top-level dispatcher loop
func (p *Parser) run() error {
	for {
		b, ok := p.stream.PeekByte()
		if !ok {
			break
		}

		var err error
		switch {
		case isSpace(b):
			p.skipWhitespace()
		case p.stream.HasPrefix(tokenLocal):
			err = p.parseScoped(tokenLocal, false)
		case p.stream.HasPrefix(tokenGlobal):
			err = p.parseScoped(tokenGlobal, true)
		case p.stream.HasPrefix(tokenReturn):
			err = p.parseReturn()
		case p.stream.HasPrefix(tokenComment):
			err = p.parseComment()
		case p.stream.HasPrefix(tokenCommand):
			err = p.parseCommand()
		default:
			err = p.fail(CodeUnexpectedToken, "unexpected token %q", b)
		}
		if err != nil {
			return err
		}
	}

	if p.stream.Err() != nil {
		return p.fail(CodeReadFailed, "read failed")
	}
	return nil
}

// fail builds a ParseError at the current cursor. A pending read error
// takes precedence over the syntactic failure it caused.
func (p *Parser) fail(code Code, format string, args ...interface{}) error {
	snippet := p.stream.PeekAll()
	if len(snippet) > p.options.SnippetLength {
		snippet = snippet[:p.options.SnippetLength]
	}

	pe := &ParseError{
		Code:    code,
		Source:  p.options.Name,
		Pos:     p.stream.Position(),
		Message: fmt.Sprintf(format, args...),
		Before:  string(p.stream.Recent()),
		Snippet: string(snippet),
	}
	if err := p.stream.Err(); err != nil {
		pe.Code = CodeReadFailed
		pe.Message = fmt.Sprintf("read failed: %v", err)
		pe.cause = err
	}
	return pe
}

func (p *Parser) appendNode(d *ast.Declaration) {
	p.table.append(d)
	p.logger.Trace("Declaration parsed", "kind", d.Kind.String(), "name", d.Name, "start", d.Start, "end", d.End)
}

func isSpace(b byte) bool {
	return b == '\n' || b == '\r' || b == '\t' || b == ' '
}

func isInlineSpace(b byte) bool {
	return b == '\r' || b == '\t' || b == ' '
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func (p *Parser) skipWhitespace() {
	for {
		b, ok := p.stream.PeekByte()
		if !ok || !isSpace(b) {
			return
		}
		p.stream.Next()
	}
}

func (p *Parser) skipInlineWhitespace() {
	for {
		b, ok := p.stream.PeekByte()
		if !ok || !isInlineSpace(b) {
			return
		}
		p.stream.Next()
	}
}

// skipLineEnd consumes whitespace up to and including the first newline
func (p *Parser) skipLineEnd() {
	for {
		b, ok := p.stream.PeekByte()
		if !ok || !isSpace(b) {
			return
		}
		p.stream.Next()
		if b == '\n' {
			return
		}
	}
}

// finishStatement consumes one optional delimiter and the rest of the line
func (p *Parser) finishStatement() {
	if b, ok := p.stream.PeekByte(); ok && b == tokenDelimiter {
		p.stream.Next()
	}
	p.skipLineEnd()
}
