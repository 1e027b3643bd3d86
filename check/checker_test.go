package check

import (
	"strings"
	"testing"

	"github.com/theQuarky/tsppc/lexer"
	"github.com/theQuarky/tsppc/parser"
)

func checkSrc(t *testing.T, src string) *Checker {
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
	c := New()
	c.Check(f)
	return c
}

func TestCheckValidProgram(t *testing.T) {
	c := checkSrc(t, `
function add(a: int, b: int): int {
	return a + b;
}

class Box {
	value: int;

	constructor(value: int) {
		this.value = value;
	}

	function get(): int {
		return this.value;
	}
}`)
	if !c.Success() {
		t.Fatalf("expected no diagnostics, got %v", c.Diagnostics())
	}
}

func TestCheckRejectsMismatchedAssignment(t *testing.T) {
	c := checkSrc(t, `let x: int = "not a number";`)
	if c.Success() {
		t.Fatal("expected a type error assigning a string literal to an int variable")
	}
}

func TestCheckRejectsUnknownType(t *testing.T) {
	c := checkSrc(t, `let x: Nonexistent = 1;`)
	if c.Success() {
		t.Fatal("expected a type error referencing an undeclared type")
	}
}

func TestCheckRegistersClassFields(t *testing.T) {
	c := checkSrc(t, `
class Point {
	x: int;
	y: int;
}`)
	if !c.Success() {
		t.Fatalf("expected no diagnostics, got %v", c.Diagnostics())
	}
	info, ok := c.Registry().Classes["Point"]
	if !ok {
		t.Fatal("expected class `Point` to be registered")
	}
	if _, ok := info.Fields["x"]; !ok {
		t.Error("expected field `x` to be registered")
	}
	if _, ok := info.Fields["y"]; !ok {
		t.Error("expected field `y` to be registered")
	}
}

func TestCheckRejectsNullIntoScalarField(t *testing.T) {
	c := checkSrc(t, `let x: int = null;`)
	if c.Success() {
		t.Fatal("expected a type error assigning null to a non-nullable int variable")
	}
}

func TestCheckAcceptsNullIntoClassVariable(t *testing.T) {
	c := checkSrc(t, `
class Box {
	value: int;
}
let b: Box = null;`)
	if !c.Success() {
		t.Fatalf("expected null to be a valid Box value, got %v", c.Diagnostics())
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	c := checkSrc(t, `
function f(): int {
	return "nope";
}`)
	if c.Success() {
		t.Fatal("expected a type error returning a string from an int-returning function")
	}
}
