// Package scope implements the parented scope chain the type checker walks:
// three separate namespaces (variables, functions, types) per scope, with
// lookup walking leaf toward root.
package scope

import "github.com/theQuarky/tsppc/typing"

// Scope is one node in the parented scope chain.
type Scope struct {
	parent    *Scope
	variables map[string]*typing.Type
	functions map[string]*typing.Type
	types     map[string]*typing.Type
}

// NewRoot creates the root scope, pre-populated with the primitive types.
func NewRoot() *Scope {
	s := newEmpty(nil)
	s.declare(s.types, "void", typing.NewVoid())
	s.declare(s.types, "int", typing.NewInt())
	s.declare(s.types, "float", typing.NewFloat())
	s.declare(s.types, "bool", typing.NewBool())
	s.declare(s.types, "string", typing.NewString())
	return s
}

func newEmpty(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		variables: make(map[string]*typing.Type),
		functions: make(map[string]*typing.Type),
		types:     make(map[string]*typing.Type),
	}
}

// CreateChild returns a new scope nested under s. The returned scope's
// parent pointer is fixed at construction, so a later Exit always restores
// exactly this scope, never a freshly created sibling.
func (s *Scope) CreateChild() *Scope {
	return newEmpty(s)
}

// Exit returns the parent scope. The checker assigns its "current scope"
// variable from this return value; Scope itself never mutates in place.
func (s *Scope) Exit() *Scope {
	return s.parent
}

func (s *Scope) declare(table map[string]*typing.Type, name string, t *typing.Type) {
	table[name] = t
}

func lookup(s *Scope, table func(*Scope) map[string]*typing.Type, name string) (*typing.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := table(cur)[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// DeclareVariable declares (or, within this scope, redeclares) a variable.
func (s *Scope) DeclareVariable(name string, t *typing.Type) {
	s.declare(s.variables, name, t)
}

// LookupVariable searches this scope and its ancestors for a variable.
func (s *Scope) LookupVariable(name string) (*typing.Type, bool) {
	return lookup(s, func(s *Scope) map[string]*typing.Type { return s.variables }, name)
}

// DeclareFunction declares (or redeclares) a function.
func (s *Scope) DeclareFunction(name string, t *typing.Type) {
	s.declare(s.functions, name, t)
}

// LookupFunction searches this scope and its ancestors for a function.
func (s *Scope) LookupFunction(name string) (*typing.Type, bool) {
	return lookup(s, func(s *Scope) map[string]*typing.Type { return s.functions }, name)
}

// DeclareType declares (or redeclares) a type.
func (s *Scope) DeclareType(name string, t *typing.Type) {
	s.declare(s.types, name, t)
}

// LookupType searches this scope and its ancestors for a type.
func (s *Scope) LookupType(name string) (*typing.Type, bool) {
	return lookup(s, func(s *Scope) map[string]*typing.Type { return s.types }, name)
}
