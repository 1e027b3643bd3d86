// Package members holds the per-class, per-interface, per-namespace, and
// per-enum metadata the type checker's Pass 1 attaches to a Named type's
// definition record, and that Pass 2's member resolution (and later the
// lowerer) consults.
package members

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/scope"
	"github.com/theQuarky/tsppc/typing"
)

// FieldInfo describes one class field.
type FieldInfo struct {
	Type   *typing.Type
	Access ast.Access
}

// PropertyInfo describes one class property's getter/setter pair.
type PropertyInfo struct {
	Type      *typing.Type
	HasGetter bool
	HasSetter bool
	Access    ast.Access
}

// MethodInfo describes one method or interface method signature.
type MethodInfo struct {
	Type    *typing.Type // Function type, params exclude the implicit `this`
	Access  ast.Access
	Virtual bool
}

// ClassInfo is the member table for one class or interface.
type ClassInfo struct {
	Name         string
	IsInterface  bool
	BaseName     string // "" if none
	Implements   []string
	Fields       map[string]*FieldInfo
	Properties   map[string]*PropertyInfo
	Methods      map[string]*MethodInfo
	Constructor  *MethodInfo // nil if absent
	HasAbstract  bool
}

func NewClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		Name:       name,
		Fields:     make(map[string]*FieldInfo),
		Properties: make(map[string]*PropertyInfo),
		Methods:    make(map[string]*MethodInfo),
	}
}

// EnumInfo is the member table for an enum: the ordered constant names and
// their assigned integer values.
type EnumInfo struct {
	Name    string
	Members []string
	Values  map[string]int64
}

// Registry collects every class/interface/namespace/enum definition record
// produced during Pass 1, keyed by Named-type name.
type Registry struct {
	Classes    map[string]*ClassInfo
	Namespaces map[string]*scope.Scope
	Enums      map[string]*EnumInfo
}

func NewRegistry() *Registry {
	return &Registry{
		Classes:    make(map[string]*ClassInfo),
		Namespaces: make(map[string]*scope.Scope),
		Enums:      make(map[string]*EnumInfo),
	}
}

// LookupMember resolves a member name on a class, walking the base-class
// chain so inherited members are visible. It returns the member's resolved
// type and true, or (nil, false) if no class in the chain declares it.
func (r *Registry) LookupMember(className, member string) (*typing.Type, bool) {
	for className != "" {
		ci, ok := r.Classes[className]
		if !ok {
			return nil, false
		}
		if f, ok := ci.Fields[member]; ok {
			return f.Type, true
		}
		if p, ok := ci.Properties[member]; ok {
			return p.Type, true
		}
		if m, ok := ci.Methods[member]; ok {
			return m.Type, true
		}
		className = ci.BaseName
	}
	return nil, false
}

// Satisfies checks whether the class named className structurally satisfies
// every method/property signature declared on the interface named
// ifaceName, per §4.6's `implements` rule.
func (r *Registry) Satisfies(className, ifaceName string) (ok bool, missing string) {
	iface, exists := r.Classes[ifaceName]
	if !exists || !iface.IsInterface {
		return false, ifaceName
	}

	for name, want := range iface.Methods {
		got, found := r.LookupMember(className, name)
		if !found || !got.IsAssignableTo(want.Type) {
			return false, name
		}
	}
	for name, want := range iface.Properties {
		got, found := r.LookupMember(className, name)
		if !found || !got.IsAssignableTo(want.Type) {
			return false, name
		}
	}
	return true, ""
}
