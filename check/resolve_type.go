package check

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/typing"
)

// resolveType translates a parsed type expression into a resolved type,
// consulting the current scope's type table for named references and the
// member registry for namespace-qualified lookups.
func (c *Checker) resolveType(t ast.Type) *typing.Type {
	if t == nil {
		return typing.NewVoid()
	}

	switch n := t.(type) {
	case *ast.PrimitiveType:
		switch n.Name {
		case "void":
			return typing.NewVoid()
		case "int":
			return typing.NewInt()
		case "float":
			return typing.NewFloat()
		case "boolean":
			return typing.NewBool()
		case "string":
			return typing.NewString()
		}
		return typing.NewVoid()

	case *ast.NamedType:
		if rt, ok := c.cur.LookupType(n.Name); ok {
			return rt
		}
		c.errorf(n.Span().Start, report.TypeCategory, 1, "unknown type %q", n.Name)
		return typing.NewError()

	case *ast.QualifiedType:
		return c.resolveQualified(n)

	case *ast.ArrayType:
		return typing.NewArray(c.resolveType(n.Elem))

	case *ast.PointerType:
		return typing.NewPointer(c.resolveType(n.Pointee), n.Kind == ast.PointerUnsafe)

	case *ast.ReferenceType:
		return typing.NewReference(c.resolveType(n.Target))

	case *ast.FunctionType:
		params := make([]*typing.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = c.resolveType(p)
		}
		return typing.NewFunction(c.resolveType(n.Return), params)

	case *ast.SmartPointerType:
		sk := typing.Shared
		switch n.Kind {
		case ast.SmartUnique:
			sk = typing.Unique
		case ast.SmartWeak:
			sk = typing.Weak
		}
		return typing.NewSmart(c.resolveType(n.Pointee), sk)

	case *ast.UnionType:
		return typing.NewUnion(c.resolveType(n.Left), c.resolveType(n.Right))

	case *ast.TemplateType:
		args := make([]*typing.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.resolveType(a)
		}
		if rt, ok := c.cur.LookupType(n.BaseName); ok {
			return rt
		}
		c.errorf(n.Span().Start, report.TypeCategory, 2, "unknown generic type %q", n.BaseName)
		return typing.NewTemplate(n.BaseName, args)

	case *ast.GenericParamType:
		return typing.NewNamed(n.Name)
	}

	return typing.NewError()
}

// resolveQualified resolves a dotted type name, treating every part but the
// last as a namespace and the last as a type looked up in that namespace's
// internal scope.
func (c *Checker) resolveQualified(n *ast.QualifiedType) *typing.Type {
	if len(n.Parts) == 0 {
		return typing.NewError()
	}
	if len(n.Parts) == 1 {
		if rt, ok := c.cur.LookupType(n.Parts[0]); ok {
			return rt
		}
		c.errorf(n.Span().Start, report.TypeCategory, 1, "unknown type %q", n.Parts[0])
		return typing.NewError()
	}

	nsScope, ok := c.reg.Namespaces[n.Parts[0]]
	if !ok {
		c.errorf(n.Span().Start, report.TypeCategory, 3, "unknown namespace %q", n.Parts[0])
		return typing.NewError()
	}
	for _, part := range n.Parts[1 : len(n.Parts)-1] {
		inner, ok := c.reg.Namespaces[part]
		if !ok {
			c.errorf(n.Span().Start, report.TypeCategory, 3, "unknown namespace %q", part)
			return typing.NewError()
		}
		nsScope = inner
	}

	last := n.Parts[len(n.Parts)-1]
	if rt, ok := nsScope.LookupType(last); ok {
		return rt
	}
	c.errorf(n.Span().Start, report.TypeCategory, 1, "unknown type %q in namespace", last)
	return typing.NewError()
}
