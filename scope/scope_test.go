package scope

import (
	"testing"

	"github.com/theQuarky/tsppc/typing"
)

func TestRootHasPrimitives(t *testing.T) {
	root := NewRoot()
	for _, name := range []string{"void", "int", "float", "bool", "string"} {
		if _, ok := root.LookupType(name); !ok {
			t.Errorf("expected primitive type %q in the root scope", name)
		}
	}
}

func TestChildSeesParentDeclarations(t *testing.T) {
	root := NewRoot()
	root.DeclareVariable("x", typing.NewInt())

	child := root.CreateChild()
	if _, ok := child.LookupVariable("x"); !ok {
		t.Fatal("expected a child scope to see a variable declared in its parent")
	}
}

func TestChildShadowsParent(t *testing.T) {
	root := NewRoot()
	root.DeclareVariable("x", typing.NewInt())

	child := root.CreateChild()
	child.DeclareVariable("x", typing.NewBool())

	got, ok := child.LookupVariable("x")
	if !ok || got.Kind() != typing.Bool {
		t.Fatalf("expected the child's shadowing declaration to win, got %v", got)
	}
	parentVal, _ := root.LookupVariable("x")
	if parentVal.Kind() != typing.Int {
		t.Fatal("shadowing in a child scope must not mutate the parent's declaration")
	}
}

func TestExitReturnsParent(t *testing.T) {
	root := NewRoot()
	child := root.CreateChild()
	if child.Exit() != root {
		t.Fatal("Exit() did not return the same parent scope it was created from")
	}
}

func TestLookupMissingNameFails(t *testing.T) {
	root := NewRoot()
	if _, ok := root.LookupVariable("nope"); ok {
		t.Fatal("expected lookup of an undeclared variable to fail")
	}
}
