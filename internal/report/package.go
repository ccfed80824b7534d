// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     report
// Description: Declaration listings for a parsed package
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"fmt"
	"io"

	"github.com/msto63/rspm/pkg/script/ast"
	"github.com/msto63/rspm/pkg/script/parser"
)

// PackageDocument is the machine readable form of a parsed package
type PackageDocument struct {
	header  `yaml:",inline"`
	Package string             `json:"package" yaml:"package"`
	Path    string             `json:"path,omitempty" yaml:"path,omitempty"`
	Version string             `json:"version,omitempty" yaml:"version,omitempty"`
	Nodes   []*ast.Declaration `json:"declarations" yaml:"declarations"`
}

// Selection picks the declarations of a package to list
func Selection(pkg *parser.Package, globalsOnly bool) []*ast.Declaration {
	if !globalsOnly {
		return pkg.Nodes()
	}

	// Global surface in source order
	var out []*ast.Declaration
	for _, d := range pkg.Nodes() {
		switch d.Kind {
		case ast.KindVariable, ast.KindFunction, ast.KindCommand:
			if d.Global {
				out = append(out, d)
			}
		}
	}
	return out
}

// Package writes the declarations of pkg. With globalsOnly only global
// variables, functions and commands are listed.
func (r *Reporter) Package(pkg *parser.Package, globalsOnly bool) error {
	nodes := Selection(pkg, globalsOnly)
	ver, _ := pkg.Version()

	if r.format != FormatText {
		if nodes == nil {
			nodes = []*ast.Declaration{}
		}
		return r.encode(PackageDocument{
			header:  r.header(),
			Package: pkg.Name,
			Path:    pkg.Path,
			Version: ver,
			Nodes:   nodes,
		})
	}

	title := r.styles.Package.Render("package " + pkg.Name)
	if ver != "" {
		title += " " + r.styles.Version.Render("v"+ver)
	}
	if _, err := fmt.Fprintln(r.w, title); err != nil {
		return err
	}
	return ast.Walk(nodes, &textVisitor{w: r.w, s: r.styles})
}

// textVisitor writes one line per declaration
type textVisitor struct {
	w io.Writer
	s Styles
}

func (v *textVisitor) line(d *ast.Declaration, detail string) error {
	span := v.s.Span.Render(fmt.Sprintf("[%d:%d]", d.Start, d.End))
	kind := v.s.Kind.Render(fmt.Sprintf("%-8s", d.Kind))
	_, err := fmt.Fprintf(v.w, "  %s %s %s\n", span, kind, detail)
	return err
}

func (v *textVisitor) scope(d *ast.Declaration) string {
	if d.Global {
		return v.s.Global.Render("global")
	}
	return "local"
}

func (v *textVisitor) VisitComment(d *ast.Declaration) error {
	return v.line(d, "")
}

func (v *textVisitor) VisitCommand(d *ast.Declaration) error {
	return v.line(d, v.s.Value.Render(fmt.Sprintf("%q", brief(d.Raw))))
}

func (v *textVisitor) VisitVariable(d *ast.Declaration) error {
	return v.line(d, fmt.Sprintf("%s %s = %s",
		v.scope(d), v.s.Name.Render(d.Name), v.s.Value.Render(brief(d.Value.String()))))
}

func (v *textVisitor) VisitFunction(d *ast.Declaration) error {
	return v.line(d, fmt.Sprintf("%s %s (%d byte body)",
		v.scope(d), v.s.Name.Render(d.Name), len(d.Raw)))
}

func (v *textVisitor) VisitReturn(d *ast.Declaration) error {
	return v.line(d, v.s.Value.Render(brief(d.Value.String())))
}

const briefLength = 60

// brief shortens s to one line of at most briefLength bytes
func brief(s string) string {
	s = printable(s)
	if len(s) > briefLength {
		return s[:briefLength] + "..."
	}
	return s
}
