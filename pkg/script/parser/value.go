// File: value.go
// Title: Value Parser
// Description: Recursive literal grammar shared by variable and return
//              declarations: integers, booleans, strings, list/map arrays,
//              variable references and opaque bracket/paren expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial value parser

package parser

import (
	"errors"
	"strconv"

	"github.com/msto63/rspm/pkg/script/ast"
)

// arrayMode is fixed by the first element of an array literal
type arrayMode int

const (
	arrayUndecided arrayMode = iota
	arrayList
	arrayMap
)

// parseValue dispatches on the lookahead to the matching literal parser
func (p *Parser) parseValue() (ast.Value, error) {
	b, ok := p.stream.PeekByte()
	if !ok {
		return nil, p.fail(CodeUnexpectedEnd, "expected value")
	}

	switch {
	case isDigit(b):
		return p.parseInteger()
	case b == '{':
		return p.parseArray()
	case b == '"':
		return p.parseString()
	case p.stream.HasPrefix(tokenTrue):
		p.stream.Skip(tokenTrue)
		return ast.Boolean(true), nil
	case p.stream.HasPrefix(tokenFalse):
		p.stream.Skip(tokenFalse)
		return ast.Boolean(false), nil
	case b == '$':
		return p.parseReference()
	case b == '[':
		return p.parseEnclosed('[', ']')
	case b == '(':
		return p.parseEnclosed('(', ')')
	case b == tokenDelimiter:
		// an empty value; the delimiter belongs to the enclosing statement
		return ast.String(""), nil
	default:
		return nil, p.fail(CodeUnsupportedLiteral, "unsupported literal starting with %q", b)
	}
}

// parseInteger reads a run of digits. Only a delimiter, "}" or a line end
// may follow.
func (p *Parser) parseInteger() (ast.Value, error) {
	var digits []byte
	for {
		b, ok := p.stream.PeekByte()
		if !ok {
			return nil, p.fail(CodeUnexpectedEnd, "unterminated integer %q", digits)
		}
		if isDigit(b) {
			p.stream.Next()
			digits = append(digits, b)
			continue
		}
		if b != tokenDelimiter && b != '}' && b != '\n' && b != '\r' {
			return nil, p.fail(CodeUnsupportedLiteral, "unsupported character %q after integer %q", b, digits)
		}
		break
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, p.fail(CodeUnsupportedLiteral, "integer %s out of range", digits)
		}
		return nil, p.fail(CodeUnsupportedLiteral, "invalid integer %q", digits)
	}
	return ast.Integer(n), nil
}

// parseString copies bytes verbatim up to the next quote. Escapes are not
// interpreted.
func (p *Parser) parseString() (ast.Value, error) {
	p.stream.Next()
	var s []byte
	for {
		b, ok := p.stream.Next()
		if !ok {
			return nil, p.fail(CodeUnexpectedEnd, "unterminated string")
		}
		if b == '"' {
			return ast.String(s), nil
		}
		s = append(s, b)
	}
}

// parseReference substitutes the value of an earlier declaration
func (p *Parser) parseReference() (ast.Value, error) {
	p.stream.Next()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	d, ok := p.table.Lookup(name)
	if !ok {
		d, ok = p.options.Globals.Lookup(name)
	}
	if !ok {
		return nil, p.fail(CodeUndefinedVariable, "undefined variable %q", name)
	}

	if d.Kind == ast.KindFunction {
		return ast.RawExpression(tokenFunction + d.Raw + "}"), nil
	}
	return d.Value, nil
}

// parseEnclosed captures a balanced open/close region verbatim, delimiters
// included
func (p *Parser) parseEnclosed(open, close byte) (ast.Value, error) {
	p.stream.Next()
	expr := []byte{open}
	depth := 1
	for depth > 0 {
		b, ok := p.stream.Next()
		if !ok {
			return nil, p.fail(CodeUnexpectedEnd, "unterminated %q expression", open)
		}
		expr = append(expr, b)
		switch b {
		case open:
			depth++
		case close:
			depth--
		}
	}
	return ast.RawExpression(expr), nil
}

// parseArray parses "{...}" as a list or, when its first element is a
// key=value pair, as a map. Mixing both shapes is an error.
func (p *Parser) parseArray() (ast.Value, error) {
	p.stream.Next()

	mode := arrayUndecided
	list := ast.List{}
	m := ast.NewMap()

	for {
		p.skipWhitespace()
		b, ok := p.stream.PeekByte()
		if !ok {
			return nil, p.fail(CodeUnexpectedEnd, "unterminated array")
		}
		if b == '}' {
			p.stream.Next()
			break
		}

		key, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		if b, ok := p.stream.PeekByte(); ok && b == '=' {
			if mode == arrayList {
				return nil, p.fail(CodeAmbiguousArray, "key=value entry in list array")
			}
			mode = arrayMap
			p.stream.Next()
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		} else {
			if mode == arrayMap {
				return nil, p.fail(CodeAmbiguousArray, "bare entry in map array")
			}
			mode = arrayList
			list = append(list, key)
		}

		b, ok = p.stream.PeekByte()
		switch {
		case !ok:
			return nil, p.fail(CodeUnexpectedEnd, "unterminated array")
		case b == tokenDelimiter:
			p.stream.Next()
		case b == '}':
		default:
			return nil, p.fail(CodeExpectedDelimiter, "expected %q or %q in array, got %q", tokenDelimiter, '}', b)
		}
	}

	if mode == arrayMap {
		return m, nil
	}
	return list, nil
}

// parseElement reads one array element. A bare name directly followed by
// "=" is a map key and yields a String. The boolean literals keep their
// type as keys.
func (p *Parser) parseElement() (ast.Value, error) {
	if key, ok := p.bareKey(); ok {
		p.stream.Skip(key)
		return ast.String(key), nil
	}
	return p.parseValue()
}

func (p *Parser) bareKey() (string, bool) {
	buf := p.stream.PeekAll()
	i := 0
	for i < len(buf) && ast.IsIdentifierByte(buf[i]) {
		i++
	}
	if i == len(buf) || buf[i] != '=' {
		return "", false
	}
	key := string(buf[:i])
	if key == tokenTrue || key == tokenFalse {
		return "", false
	}
	return key, ast.IsBareKey(key)
}
