// File: parser_test.go
// Title: Script Parser Unit Tests
// Description: Tests for the top-level dispatcher, the declaration parsers
//              and the error reporting of the script parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial parser test suite

package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/msto63/rspm/pkg/core/logging"
	"github.com/msto63/rspm/pkg/script/ast"
)

func testOptions() Options {
	return Options{Name: "test", Logger: logging.Discard()}
}

func mustParse(t *testing.T, src string) *Package {
	t.Helper()
	pkg, err := ParseString(src, testOptions())
	if err != nil {
		t.Fatalf("ParseString(%q) error = %v", src, err)
	}
	return pkg
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	pkg, err := ParseString(src, testOptions())
	if err == nil {
		t.Fatalf("ParseString(%q) expected error, got %d nodes", src, pkg.Len())
	}
	if pkg != nil {
		t.Errorf("ParseString(%q) returned a partial package", src)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	return pe
}

func TestParser_Declarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, d *ast.Declaration)
	}{
		{
			name:  "Local integer",
			input: ":local a 5;",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Kind != ast.KindVariable || d.Name != "a" || d.Global {
					t.Errorf("got %v, want local variable a", d)
				}
				if !ast.Equal(d.Value, ast.Integer(5)) {
					t.Errorf("value = %v, want 5", d.Value)
				}
			},
		},
		{
			name:  "Global list",
			input: ":global b {1;2;3};",
			check: func(t *testing.T, d *ast.Declaration) {
				if !d.Global {
					t.Error("expected global variable")
				}
				want := ast.List{ast.Integer(1), ast.Integer(2), ast.Integer(3)}
				if !ast.Equal(d.Value, want) {
					t.Errorf("value = %v, want %v", d.Value, want)
				}
			},
		},
		{
			name:  "Global map",
			input: ":global m {x=1;y=2};",
			check: func(t *testing.T, d *ast.Declaration) {
				m, ok := d.Value.(*ast.Map)
				if !ok {
					t.Fatalf("value type = %T, want *ast.Map", d.Value)
				}
				entries := m.Entries()
				if len(entries) != 2 {
					t.Fatalf("map has %d entries, want 2", len(entries))
				}
				if entries[0].Key != ast.String("x") || entries[0].Value != ast.Integer(1) {
					t.Errorf("first entry = %v=%v, want x=1", entries[0].Key, entries[0].Value)
				}
				if entries[1].Key != ast.String("y") || entries[1].Value != ast.Integer(2) {
					t.Errorf("second entry = %v=%v, want y=2", entries[1].Key, entries[1].Value)
				}
			},
		},
		{
			name:  "Map with quoted keys",
			input: `:global metaInfo {"name"="core";"version"="1.0.2"};`,
			check: func(t *testing.T, d *ast.Declaration) {
				m, ok := d.Value.(*ast.Map)
				if !ok {
					t.Fatalf("value type = %T, want *ast.Map", d.Value)
				}
				if v, _ := m.Lookup("version"); v != ast.String("1.0.2") {
					t.Errorf("version = %v, want 1.0.2", v)
				}
			},
		},
		{
			name:  "Duplicate map key overwrites",
			input: ":local m {a=1;b=2;a=3};",
			check: func(t *testing.T, d *ast.Declaration) {
				m := d.Value.(*ast.Map)
				if m.Len() != 2 {
					t.Errorf("Len() = %d, want 2", m.Len())
				}
				if v, _ := m.Lookup("a"); v != ast.Integer(3) {
					t.Errorf("a = %v, want 3", v)
				}
				if got := m.Entries()[0].Key; got != ast.String("a") {
					t.Errorf("first key = %v, want a", got)
				}
			},
		},
		{
			name:  "Nested arrays",
			input: ":local n {{1;2};{a=true}};",
			check: func(t *testing.T, d *ast.Declaration) {
				inner := ast.NewMap()
				inner.Set(ast.String("a"), ast.Boolean(true))
				want := ast.List{ast.List{ast.Integer(1), ast.Integer(2)}, inner}
				if !ast.Equal(d.Value, want) {
					t.Errorf("value = %v, want %v", d.Value, want)
				}
			},
		},
		{
			name:  "Boolean map keys keep their type",
			input: ":local b {true=1;false=0};",
			check: func(t *testing.T, d *ast.Declaration) {
				m := d.Value.(*ast.Map)
				if v, ok := m.Get(ast.Boolean(true)); !ok || v != ast.Integer(1) {
					t.Errorf("true key = %v, %v, want 1", v, ok)
				}
				if v, ok := m.Get(ast.Boolean(false)); !ok || v != ast.Integer(0) {
					t.Errorf("false key = %v, %v, want 0", v, ok)
				}
				if _, ok := m.Lookup("true"); ok {
					t.Error("true key parsed as a string")
				}
			},
		},
		{
			name:  "Empty array is an empty list",
			input: ":local e {};",
			check: func(t *testing.T, d *ast.Declaration) {
				l, ok := d.Value.(ast.List)
				if !ok || len(l) != 0 {
					t.Errorf("value = %#v, want empty list", d.Value)
				}
			},
		},
		{
			name:  "Array with whitespace and trailing delimiter",
			input: ":local l {\n  \"a\";\n  \"b\";\n};",
			check: func(t *testing.T, d *ast.Declaration) {
				want := ast.List{ast.String("a"), ast.String("b")}
				if !ast.Equal(d.Value, want) {
					t.Errorf("value = %v, want %v", d.Value, want)
				}
			},
		},
		{
			name:  "String without escape handling",
			input: `:local s "a\b";`,
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Value != ast.String(`a\b`) {
					t.Errorf("value = %q, want %q", d.Value, `a\b`)
				}
			},
		},
		{
			name:  "Booleans",
			input: ":global t true;",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Value != ast.Boolean(true) {
					t.Errorf("value = %v, want true", d.Value)
				}
			},
		},
		{
			name:  "False",
			input: ":global f false\n",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Value != ast.Boolean(false) {
					t.Errorf("value = %v, want false", d.Value)
				}
			},
		},
		{
			name:  "Empty value",
			input: ":local e;",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Value != ast.String("") {
					t.Errorf("value = %q, want empty string", d.Value)
				}
			},
		},
		{
			name:  "Bracket expression",
			input: ":local id [/system identity get [find name=x]];",
			check: func(t *testing.T, d *ast.Declaration) {
				want := ast.RawExpression("[/system identity get [find name=x]]")
				if d.Value != want {
					t.Errorf("value = %v, want %v", d.Value, want)
				}
			},
		},
		{
			name:  "Paren expression",
			input: ":local p (1 + (2 * 3));",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Value != ast.RawExpression("(1 + (2 * 3))") {
					t.Errorf("value = %v", d.Value)
				}
			},
		},
		{
			name:  "Local function",
			input: `:local f do={ :put "hi"; };`,
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Kind != ast.KindFunction || d.Name != "f" || d.Global {
					t.Errorf("got %v, want local function f", d)
				}
				if d.Raw != ` :put "hi"; ` {
					t.Errorf("body = %q", d.Raw)
				}
				if d.Value != nil {
					t.Errorf("function body must not be parsed, got value %v", d.Value)
				}
			},
		},
		{
			name:  "Function body with quoted braces and escapes",
			input: ":global g do={ :if ($x = \"}\") do={ :put \"a\\\"}\" } };",
			check: func(t *testing.T, d *ast.Declaration) {
				want := " :if ($x = \"}\") do={ :put \"a\\\"}\" } "
				if d.Raw != want {
					t.Errorf("body = %q, want %q", d.Raw, want)
				}
			},
		},
		{
			name:  "Function marker on next line",
			input: ":global h\n  do={}\n",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Kind != ast.KindFunction || d.Raw != "" {
					t.Errorf("got %v body %q, want empty function", d, d.Raw)
				}
			},
		},
		{
			name:  "Command",
			input: ":log info \"loaded\";",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Kind != ast.KindCommand || !d.Global {
					t.Errorf("got %v, want global command", d)
				}
				if d.Raw != ":log info \"loaded\";" {
					t.Errorf("raw = %q", d.Raw)
				}
			},
		},
		{
			name:  "Command at end of input",
			input: ":put 1",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Raw != ":put 1" {
					t.Errorf("raw = %q", d.Raw)
				}
			},
		},
		{
			name:  "Comment at end of input",
			input: "# trailing",
			check: func(t *testing.T, d *ast.Declaration) {
				if d.Kind != ast.KindComment || d.Start != 0 || d.End != 10 {
					t.Errorf("got %v [%d:%d]", d, d.Start, d.End)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := mustParse(t, tt.input)
			nodes := pkg.Nodes()
			if len(nodes) != 1 {
				t.Fatalf("got %d nodes, want 1: %v", len(nodes), nodes)
			}
			tt.check(t, nodes[0])
			if got := nodes[0].Text([]byte(tt.input)); got != tt.input {
				t.Errorf("span text = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParser_RoundTripSpans(t *testing.T) {
	statements := []string{
		"# header comment\n",
		":local a 5;\n",
		":global f do={\n  :if ($x = \"}\") do={ :put \"a\\\"b\" }\n};\n",
		":put \"hello\";",
		":global list {1;2;3}\n",
		":return {name=\"core\";version=\"1.0\"}\n",
	}
	src := statements[0] + statements[1] + "\n\t\n" + statements[2] + statements[3] + "\n" + statements[4] + statements[5]

	pkg := mustParse(t, src)
	nodes := pkg.Nodes()
	if len(nodes) != len(statements) {
		t.Fatalf("got %d nodes, want %d: %v", len(nodes), len(statements), nodes)
	}

	wantKinds := []ast.Kind{ast.KindComment, ast.KindVariable, ast.KindFunction, ast.KindCommand, ast.KindVariable, ast.KindReturn}
	for i, d := range nodes {
		if d.Kind != wantKinds[i] {
			t.Errorf("node %d kind = %v, want %v", i, d.Kind, wantKinds[i])
		}
		if got := d.Text([]byte(src)); got != statements[i] {
			t.Errorf("node %d span [%d:%d] = %q, want %q", i, d.Start, d.End, got, statements[i])
		}
		if err := d.Validate(); err != nil {
			t.Errorf("node %d Validate() = %v", i, err)
		}
	}
}

func TestParser_References(t *testing.T) {
	t.Run("Resolves earlier declaration", func(t *testing.T) {
		pkg := mustParse(t, ":global n 5;\n:local m $n;\n")
		d, ok := pkg.Lookup("m")
		if !ok {
			t.Fatal("m not found")
		}
		if d.Value != ast.Integer(5) {
			t.Errorf("m = %v, want 5", d.Value)
		}
	})

	t.Run("Most recent declaration wins", func(t *testing.T) {
		pkg := mustParse(t, ":global a 1;\n:global a 2;\n:local b $a;\n")
		if pkg.Len() != 3 {
			t.Errorf("Len() = %d, want 3", pkg.Len())
		}
		b, _ := pkg.Lookup("b")
		if b.Value != ast.Integer(2) {
			t.Errorf("b = %v, want 2", b.Value)
		}
	})

	t.Run("Reference inside array", func(t *testing.T) {
		pkg := mustParse(t, ":local v \"1.0\";\n:global metaInfo {version=$v;name=\"x\"};\n")
		if v, ok := pkg.Version(); !ok || v != "1.0" {
			t.Errorf("Version() = %q, %v, want 1.0", v, ok)
		}
	})

	t.Run("Reference to function", func(t *testing.T) {
		pkg := mustParse(t, ":global f do={ :put 1 };\n:local g $f;\n")
		g, _ := pkg.Lookup("g")
		if g.Value != ast.RawExpression("do={ :put 1 }") {
			t.Errorf("g = %v", g.Value)
		}
	})

	t.Run("Return references package", func(t *testing.T) {
		pkg := mustParse(t, ":local pkg {a=1};\n:return $pkg")
		ret := pkg.Return()
		if ret == nil {
			t.Fatal("Return() = nil")
		}
		if _, ok := ret.Value.(*ast.Map); !ok {
			t.Errorf("return value type = %T, want *ast.Map", ret.Value)
		}
	})

	t.Run("Undefined variable", func(t *testing.T) {
		pe := parseErr(t, ":local m $missing;")
		if pe.Code != CodeUndefinedVariable {
			t.Errorf("Code = %v, want %v", pe.Code, CodeUndefinedVariable)
		}
		if !errors.Is(pe, ErrUndefinedVariable) {
			t.Error("error should match ErrUndefinedVariable")
		}
	})

	t.Run("Globals seed table", func(t *testing.T) {
		shared := mustParse(t, ":global shared 42;\n")
		opts := testOptions()
		opts.Globals = shared.Table

		pkg, err := ParseString(":local v $shared;\n:local shared 1;\n:local w $shared;\n", opts)
		if err != nil {
			t.Fatalf("ParseString() error = %v", err)
		}
		v, _ := pkg.Lookup("v")
		w, _ := pkg.Lookup("w")
		if v.Value != ast.Integer(42) {
			t.Errorf("v = %v, want 42 from globals", v.Value)
		}
		if w.Value != ast.Integer(1) {
			t.Errorf("w = %v, want 1 from own table", w.Value)
		}
		if shared.Len() != 1 {
			t.Errorf("globals table modified, Len() = %d", shared.Len())
		}
	})
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  Code
	}{
		{"Unterminated string", `:local s "abc`, CodeUnexpectedEnd},
		{"Unterminated function body", ":local f do={ :put 1;", CodeUnexpectedEnd},
		{"Unterminated quote in body", ":local f do={ :put \"}", CodeUnexpectedEnd},
		{"Unterminated bracket", ":local a [abc", CodeUnexpectedEnd},
		{"Unterminated paren", ":local a (1 + (2)", CodeUnexpectedEnd},
		{"Unterminated array", ":local a {1;2", CodeUnexpectedEnd},
		{"Missing value", ":local a ", CodeUnexpectedEnd},
		{"Integer at end of input", ":local a 5", CodeUnexpectedEnd},
		{"Unexpected token", "/ip address print", CodeUnexpectedToken},
		{"Invalid identifier", ":local a-b 1;", CodeInvalidIdentifier},
		{"Missing identifier", ":local  1;", CodeInvalidIdentifier},
		{"Reference closed by brace", ":local a 1;\n:local b {$a};", CodeInvalidIdentifier},
		{"Ambiguous map then list", ":global bad {x=1;2};", CodeAmbiguousArray},
		{"Ambiguous list then map", ":global bad {1;x=2};", CodeAmbiguousArray},
		{"Expected delimiter", `:local a {"x" "y"};`, CodeExpectedDelimiter},
		{"Integer followed by space", ":local a 5 ;", CodeUnsupportedLiteral},
		{"Integer overflow", ":local a 99999999999999999999;", CodeUnsupportedLiteral},
		{"Unknown literal", ":local a abc;", CodeUnsupportedLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.input)
			if pe.Code != tt.code {
				t.Errorf("Code = %v, want %v (%v)", pe.Code, tt.code, pe)
			}
			if !errors.Is(pe, sentinels[tt.code]) {
				t.Errorf("error does not unwrap to sentinel %v", sentinels[tt.code])
			}
		})
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	pkg, err := ParseString(":local a 1;\n:local b $missing;\n", Options{Name: "lib.core", Logger: logging.Discard()})
	if pkg != nil {
		t.Fatal("expected no package on failure")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	if pe.Pos.Line != 2 || pe.Pos.Column != 18 || pe.Pos.Offset != 29 {
		t.Errorf("Pos = %+v, want line 2 column 18 offset 29", pe.Pos)
	}
	if !strings.HasSuffix(pe.Before, "$missing") {
		t.Errorf("Before = %q", pe.Before)
	}
	if pe.Snippet != ";\n" {
		t.Errorf("Snippet = %q, want %q", pe.Snippet, ";\n")
	}
	if !strings.HasPrefix(err.Error(), "lib.core: ") {
		t.Errorf("Error() = %q, want source prefix", err.Error())
	}
}

func TestParser_UnexpectedTokenPosition(t *testing.T) {
	pe := parseErr(t, ":local a 1;\n/ip address print\n")
	if pe.Pos.Offset != 12 || pe.Pos.Line != 2 || pe.Pos.Column != 1 {
		t.Errorf("Pos = %+v, want offset 12 line 2 column 1", pe.Pos)
	}
	if !strings.HasPrefix(pe.Snippet, "/ip") {
		t.Errorf("Snippet = %q", pe.Snippet)
	}
}

// The identifier class is 0-9 plus the byte range 'A'..'z', which also
// admits [ \ ] ^ _ and the backtick. These tests pin that behavior.
func TestParser_IdentifierClass(t *testing.T) {
	accepted := []string{"a", "A1", "9lives", "snake_case", "a^b", "x[0]", "back`tick", `sl\ash`}
	for _, name := range accepted {
		t.Run("accept "+name, func(t *testing.T) {
			pkg := mustParse(t, fmt.Sprintf(":local %s 1;", name))
			if _, ok := pkg.Lookup(name); !ok {
				t.Errorf("identifier %q not indexed", name)
			}
		})
	}

	rejected := []string{"a-b", "a.b", "a{b", "a=b", "a\"b", "caf\xc3\xa9"}
	for _, name := range rejected {
		t.Run("reject "+name, func(t *testing.T) {
			pe := parseErr(t, fmt.Sprintf(":local %s 1;", name))
			if pe.Code != CodeInvalidIdentifier {
				t.Errorf("Code = %v, want %v", pe.Code, CodeInvalidIdentifier)
			}
		})
	}

	for b := 0; b < 256; b++ {
		want := ('0' <= b && b <= '9') || ('A' <= b && b <= 'z')
		if got := ast.IsIdentifierByte(byte(b)); got != want {
			t.Errorf("IsIdentifierByte(%d) = %v, want %v", b, got, want)
		}
	}
}

func TestParser_GlobalQueries(t *testing.T) {
	src := strings.Join([]string{
		":local lf do={}",
		":global gf1 do={ :return 1 }",
		":global gv1 1;",
		":local lv 2;",
		":log info \"start\";",
		":global gf2 do={}",
		":global gv2 {a=1};",
		":put done;",
		"",
	}, "\n")
	pkg := mustParse(t, src)

	names := func(decls []*ast.Declaration) []string {
		out := make([]string, 0, len(decls))
		for _, d := range decls {
			if d.Kind == ast.KindCommand {
				out = append(out, d.Raw)
				continue
			}
			out = append(out, d.Name)
		}
		return out
	}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"GlobalFunctions", names(pkg.GlobalFunctions()), []string{"gf1", "gf2"}},
		{"GlobalVariables", names(pkg.GlobalVariables()), []string{"gv1", "gv2"}},
		{"GlobalCommands", names(pkg.GlobalCommands()), []string{":log info \"start\";", ":put done;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if strings.Join(tt.got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestParser_ReturnShadowing(t *testing.T) {
	pkg := mustParse(t, ":return 1\n:return 2\n")
	if pkg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pkg.Len())
	}
	if ret := pkg.Return(); ret == nil || ret.Value != ast.Integer(2) {
		t.Errorf("Return() = %v, want value 2", ret)
	}
}

func TestParser_Deterministic(t *testing.T) {
	src := "# c\n:global a {1;2};\n:local m {k=\"v\";n=$a;};\n:global f do={ :put 1 }\n:put x;\n:return $m\n"

	first := mustParse(t, src).Nodes()
	second := mustParse(t, src).Nodes()
	if len(first) != len(second) {
		t.Fatalf("node counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Kind != b.Kind || a.Name != b.Name || a.Global != b.Global ||
			a.Start != b.Start || a.End != b.End || a.Raw != b.Raw {
			t.Errorf("node %d differs: %v vs %v", i, a, b)
		}
		if (a.Value == nil) != (b.Value == nil) || (a.Value != nil && !ast.Equal(a.Value, b.Value)) {
			t.Errorf("node %d value differs: %v vs %v", i, a.Value, b.Value)
		}
	}
}

func TestParser_SmallWindowLongInput(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, ":global v%d %d;\n", i, i)
	}
	body := strings.Repeat(":put \"{nested}\";\n", 100)
	sb.WriteString(":global f do={\n" + body + "}\n")
	src := sb.String()

	opts := testOptions()
	opts.BufferSize = MinWindowSize
	pkg, err := ParseString(src, opts)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if pkg.Len() != 301 {
		t.Fatalf("Len() = %d, want 301", pkg.Len())
	}
	v, _ := pkg.Lookup("v299")
	if v.Value != ast.Integer(299) {
		t.Errorf("v299 = %v", v.Value)
	}
	f, _ := pkg.Lookup("f")
	if f.Raw != "\n"+body {
		t.Errorf("function body length = %d, want %d", len(f.Raw), len(body)+1)
	}
	if f.End != int64(len(src)) {
		t.Errorf("function End = %d, want %d", f.End, len(src))
	}
}

func TestParser_Reuse(t *testing.T) {
	p, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := p.Parse(strings.NewReader(":local a 1;")); err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	_, err = p.Parse(strings.NewReader(":local a 1;"))
	if !errors.Is(err, ErrParserReused) {
		t.Errorf("second Parse() error = %v, want ErrParserReused", err)
	}
}

func TestParser_ReadError(t *testing.T) {
	diskErr := errors.New("disk failure")

	tests := []struct {
		name   string
		reader io.Reader
	}{
		{"Immediate", iotest.ErrReader(diskErr)},
		{"Mid-string", io.MultiReader(strings.NewReader(`:local a "abc`), iotest.ErrReader(diskErr))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := New(testOptions())
			_, err := p.Parse(tt.reader)
			if !HasCode(err, CodeReadFailed) {
				t.Errorf("code = %v, want %v (%v)", GetCode(err), CodeReadFailed, err)
			}
			if !errors.Is(err, ErrRead) || !errors.Is(err, diskErr) {
				t.Errorf("error %v should wrap ErrRead and the reader error", err)
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{BufferSize: -1}); err == nil {
		t.Error("expected error for negative buffer size")
	}
	if _, err := New(Options{SnippetLength: -1}); err == nil {
		t.Error("expected error for negative snippet length")
	}

	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.options.BufferSize != DefaultWindowSize || p.options.SnippetLength != DefaultSnippetLength {
		t.Errorf("defaults not applied: %+v", p.options)
	}
}

func TestParser_Logging(t *testing.T) {
	var buf strings.Builder
	logger, _ := logging.NewWithConfig(logging.Config{Level: "debug", Output: &buf})

	_, err := ParseString(":local a 1 2;", Options{Name: "lib.log", Logger: logger})
	if err == nil {
		t.Fatal("expected error")
	}
	out := buf.String()
	if !strings.Contains(out, "parse failed") || !strings.Contains(out, "code=UNSUPPORTED_LITERAL") {
		t.Errorf("missing failure entry: %q", out)
	}
	if n := strings.Count(out, "[WRN]"); n != 1 {
		t.Errorf("failure logged %d times at warn, want once: %q", n, out)
	}
	if !strings.Contains(out, "package=lib.log") {
		t.Errorf("missing package field: %q", out)
	}
}
