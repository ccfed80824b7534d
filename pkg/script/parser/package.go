// File: package.go
// Title: Parsed Script Package
// Description: Result type of a successful parse plus the file and string
//              entry points and package metadata accessors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial package entry points

package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msto63/rspm/pkg/script/ast"
)

// Package is the immutable result of parsing one script source
type Package struct {
	Name string
	Path string // empty for in-memory sources
	*Table
}

// Version returns the "version" entry of the package's metaInfo map
func (p *Package) Version() (string, bool) {
	meta := p.MetaInfo()
	if meta == nil {
		return "", false
	}
	m, ok := meta.Value.(*ast.Map)
	if !ok {
		return "", false
	}
	v, ok := m.Lookup("version")
	if !ok {
		return "", false
	}
	s, ok := v.(ast.String)
	return string(s), ok
}

// PackageName derives the package name from a file path: the base name
// without extension, with underscores replaced by dots.
func PackageName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", ".")
}

// ParseFile parses the file at path. If opts.Name is empty it is derived
// with PackageName.
func ParseFile(path string, opts Options) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ParseSource(path, f, opts)
}

// ParseSource parses r as the content of the file at path without touching
// the file system. Name defaults as for ParseFile.
func ParseSource(path string, r io.Reader, opts Options) (*Package, error) {
	if opts.Name == "" {
		opts.Name = PackageName(path)
	}

	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	pkg, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	pkg.Path = path
	return pkg, nil
}

// ParseString parses in-memory script text
func ParseString(text string, opts Options) (*Package, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(strings.NewReader(text))
}
