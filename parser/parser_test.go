package parser

import (
	"strings"
	"testing"

	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/lexer"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	toks, err := lexer.All("test.tspp", strings.NewReader(src))
	if err != nil {
		t.Fatalf("lexer.All() error = %v", err)
	}
	p := New("test.tspp", toks)
	f := p.Parse()
	if !p.Success() {
		for _, d := range p.Diagnostics() {
			t.Log(d.String())
		}
		t.Fatalf("parse failed with %d diagnostic(s)", len(p.Diagnostics()))
	}
	return f
}

func TestParseVarDecl(t *testing.T) {
	f := parse(t, `let x: int = 1 + 2;`)
	if len(f.Nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(f.Nodes))
	}
	decl, ok := f.Nodes[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("node is %T, want *ast.VarDecl", f.Nodes[0])
	}
	if decl.Name != "x" {
		t.Errorf("Name = %q, want %q", decl.Name, "x")
	}
	if _, ok := decl.Init.(*ast.BinaryExpr); !ok {
		t.Errorf("Init is %T, want *ast.BinaryExpr", decl.Init)
	}
}

func TestParseFuncDecl(t *testing.T) {
	f := parse(t, `function add(a: int, b: int): int { return a + b; }`)
	if len(f.Nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(f.Nodes))
	}
	fn, ok := f.Nodes[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("node is %T, want *ast.FuncDecl", f.Nodes[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("got name %q with %d params, want `add` with 2", fn.Name, len(fn.Params))
	}
	if fn.Body == nil || len(fn.Body.Nodes) != 1 {
		t.Fatalf("expected a single-statement body")
	}
	if _, ok := fn.Body.Nodes[0].(*ast.ReturnStmt); !ok {
		t.Errorf("body statement is %T, want *ast.ReturnStmt", fn.Body.Nodes[0])
	}
}

func TestParseClassDecl(t *testing.T) {
	src := `
class Point {
	x: int;
	y: int;

	constructor(x: int, y: int) {
		this.x = x;
		this.y = y;
	}

	function sum(): int {
		return this.x + this.y;
	}
}`
	f := parse(t, src)
	if len(f.Nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(f.Nodes))
	}
	cls, ok := f.Nodes[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("node is %T, want *ast.ClassDecl", f.Nodes[0])
	}
	if cls.Name != "Point" || len(cls.Fields) != 2 || len(cls.Methods) != 1 || cls.Constructor == nil {
		t.Errorf("unexpected class shape: fields=%d methods=%d ctor=%v",
			len(cls.Fields), len(cls.Methods), cls.Constructor != nil)
	}
}

func TestParseIfWhileFor(t *testing.T) {
	src := `
function loop(): void {
	if (true) {
		while (false) {}
	} else {
		for (let i: int = 0; i < 10; i++) {}
	}
}`
	f := parse(t, src)
	fn := f.Nodes[0].(*ast.FuncDecl)
	ifStmt, ok := fn.Body.Nodes[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("node is %T, want *ast.IfStmt", fn.Body.Nodes[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseErrorRecoveryContinues(t *testing.T) {
	toks, err := lexer.All("test.tspp", strings.NewReader(`let ; let y: int = 1;`))
	if err != nil {
		t.Fatalf("lexer.All() error = %v", err)
	}
	p := New("test.tspp", toks)
	p.Parse()
	if p.Success() {
		t.Fatal("expected the malformed first declaration to report an error")
	}
	if len(p.Diagnostics()) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}
