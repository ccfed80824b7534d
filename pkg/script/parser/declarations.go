// File: declarations.go
// Title: Declaration Parsers
// Description: One parser per top-level statement kind: comments,
//              local/global variables and functions, generic commands and
//              the return statement. Also holds the identifier scanner and
//              the balanced-brace skip used for function bodies.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial declaration parsers

package parser

import (
	"github.com/msto63/rspm/pkg/script/ast"
)

// parseComment consumes "#" through the end of the line
func (p *Parser) parseComment() error {
	start := p.stream.Offset()
	p.stream.Skip(tokenComment)
	for {
		b, ok := p.stream.Next()
		if !ok || b == '\n' {
			break
		}
	}
	p.appendNode(ast.NewComment(start, p.stream.Offset()))
	return nil
}

// parseScoped handles ":local " and ":global " statements, which declare
// either a function (do={...}) or a variable.
func (p *Parser) parseScoped(marker string, global bool) error {
	start := p.stream.Offset()
	p.stream.Skip(marker)

	name, err := p.parseIdentifier()
	if err != nil {
		return err
	}
	p.skipWhitespace()

	if p.stream.HasPrefix(tokenFunction) {
		return p.parseFunction(name, global, start)
	}
	return p.parseVariable(name, global, start)
}

func (p *Parser) parseFunction(name string, global bool, start int64) error {
	p.stream.Skip(tokenFunction)
	body, err := p.skipBraces()
	if err != nil {
		return err
	}
	p.finishStatement()
	p.appendNode(ast.NewFunction(name, global, start, p.stream.Offset(), body))
	return nil
}

func (p *Parser) parseVariable(name string, global bool, start int64) error {
	value, err := p.parseValue()
	if err != nil {
		return err
	}
	p.finishStatement()
	p.appendNode(ast.NewVariable(name, global, start, p.stream.Offset(), value))
	return nil
}

func (p *Parser) parseReturn() error {
	start := p.stream.Offset()
	p.stream.Skip(tokenReturn)
	p.skipInlineWhitespace()

	value, err := p.parseValue()
	if err != nil {
		return err
	}
	p.finishStatement()
	p.appendNode(ast.NewReturn(start, p.stream.Offset(), value))
	return nil
}

// parseCommand captures ":" through the first delimiter or newline,
// inclusive. End of input also ends the command.
func (p *Parser) parseCommand() error {
	start := p.stream.Offset()
	var raw []byte
	for {
		b, ok := p.stream.Next()
		if !ok {
			break
		}
		raw = append(raw, b)
		if b == tokenDelimiter || b == '\n' {
			break
		}
	}
	p.appendNode(ast.NewCommand(start, p.stream.Offset(), string(raw)))
	return nil
}

// parseIdentifier scans a declared or referenced name. Names end at
// whitespace, a delimiter or end of input; any other byte outside the
// identifier class is an error.
func (p *Parser) parseIdentifier() (string, error) {
	var name []byte
	for {
		b, ok := p.stream.PeekByte()
		if !ok {
			break
		}
		if ast.IsIdentifierByte(b) {
			p.stream.Next()
			name = append(name, b)
			continue
		}
		if isSpace(b) || b == tokenDelimiter {
			break
		}
		return "", p.fail(CodeInvalidIdentifier, "invalid character %q in identifier %q", b, name)
	}
	if len(name) == 0 {
		return "", p.fail(CodeInvalidIdentifier, "missing identifier")
	}
	return string(name), nil
}

// skipBraces consumes input up to the "}" closing an already consumed "{"
// and returns the text in between. Quoted strings inside are skipped with
// backslash escapes honored, so braces and quotes within them do not count.
func (p *Parser) skipBraces() (string, error) {
	var body []byte
	depth := 1
	for {
		b, ok := p.stream.Next()
		if !ok {
			return "", p.fail(CodeUnexpectedEnd, "unterminated block, %d brace(s) open", depth)
		}
		switch b {
		case '"':
			body = append(body, b)
			var err error
			if body, err = p.skipQuoted(body); err != nil {
				return "", err
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(body), nil
			}
		}
		body = append(body, b)
	}
}

// skipQuoted appends a quoted string to buf, starting after the opening
// quote and ending with the closing one.
func (p *Parser) skipQuoted(buf []byte) ([]byte, error) {
	for {
		b, ok := p.stream.Next()
		if !ok {
			return nil, p.fail(CodeUnexpectedEnd, "unterminated string")
		}
		buf = append(buf, b)
		switch b {
		case '\\':
			esc, ok := p.stream.Next()
			if !ok {
				return nil, p.fail(CodeUnexpectedEnd, "unterminated escape sequence")
			}
			buf = append(buf, esc)
		case '"':
			return buf, nil
		}
	}
}
