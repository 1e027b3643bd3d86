package lower

import (
	"strings"
	"testing"

	"github.com/theQuarky/tsppc/check"
	"github.com/theQuarky/tsppc/lexer"
	"github.com/theQuarky/tsppc/parser"
)

func lowerSrc(t *testing.T, src string) *Lowerer {
	t.Helper()
	toks, err := lexer.All("test.tspp", strings.NewReader(src))
	if err != nil {
		t.Fatalf("lexer.All() error = %v", err)
	}
	p := parser.New("test.tspp", toks)
	f := p.Parse()
	if !p.Success() {
		t.Fatalf("parse failed: %v", p.Diagnostics())
	}
	c := check.New()
	c.Check(f)
	if !c.Success() {
		t.Fatalf("check failed: %v", c.Diagnostics())
	}
	l := New(c.Registry())
	l.Lower(f)
	return l
}

func TestLowerFuncDeclEmitsDefine(t *testing.T) {
	l := lowerSrc(t, `
function add(a: int, b: int): int {
	return a + b;
}`)
	if !l.Success() {
		t.Fatalf("expected no diagnostics, got %v", l.Diagnostics())
	}
	ir := l.Module().String()
	if !strings.Contains(ir, "define") || !strings.Contains(ir, "@add") {
		t.Errorf("expected a `define ... @add` in the emitted module, got:\n%s", ir)
	}
}

func TestLowerClassEmitsStructType(t *testing.T) {
	l := lowerSrc(t, `
class Point {
	x: int;
	y: int;

	constructor(x: int, y: int) {
		this.x = x;
		this.y = y;
	}
}`)
	if !l.Success() {
		t.Fatalf("expected no diagnostics, got %v", l.Diagnostics())
	}
	ir := l.Module().String()
	if !strings.Contains(ir, "Point") {
		t.Errorf("expected the emitted module to reference `Point`, got:\n%s", ir)
	}
}

func TestLowerSynthesizesMainWhenAbsent(t *testing.T) {
	l := lowerSrc(t, `let x: int = 1;`)
	if !l.Success() {
		t.Fatalf("expected no diagnostics, got %v", l.Diagnostics())
	}
	ir := l.Module().String()
	if !strings.Contains(ir, "@main") {
		t.Errorf("expected a synthesized `@main` when the source declares none, got:\n%s", ir)
	}
}

func TestLowerDeclaresExternalStubs(t *testing.T) {
	l := lowerSrc(t, `function noop(): void {}`)
	ir := l.Module().String()
	for _, name := range []string{"@printf", "@malloc", "@puts", "@free"} {
		if !strings.Contains(ir, name) {
			t.Errorf("expected external stub %s to be declared, got:\n%s", name, ir)
		}
	}
}
