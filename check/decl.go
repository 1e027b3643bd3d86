package check

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/members"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/scope"
	"github.com/theQuarky/tsppc/typing"
)

// collectTypeDecls is Pass 1: every class, interface, enum, namespace, and
// typedef at the given node list's level is resolved to a Named type and
// declared into s before any body is visited, so declarations later in the
// same list (or earlier ones referencing later ones) both resolve.
func (c *Checker) collectTypeDecls(nodes []ast.Node, s *scope.Scope) {
	saved := c.cur
	c.cur = s

	// Stub pass: every name gets a bare Named type first, so field/method
	// signatures referencing a sibling class resolve regardless of order.
	for _, n := range nodes {
		switch d := n.(type) {
		case *ast.ClassDecl:
			s.DeclareType(d.Name, typing.NewNamed(d.Name))
			ci := members.NewClassInfo(d.Name)
			ci.BaseName = d.Extends
			ci.Implements = d.Implements
			ci.HasAbstract = d.Abstract
			c.reg.Classes[d.Name] = ci
		case *ast.InterfaceDecl:
			s.DeclareType(d.Name, typing.NewNamed(d.Name))
			ci := members.NewClassInfo(d.Name)
			ci.IsInterface = true
			c.reg.Classes[d.Name] = ci
		case *ast.EnumDecl:
			s.DeclareType(d.Name, typing.NewNamed(d.Name))
		case *ast.NamespaceDecl:
			s.DeclareType(d.Name, typing.NewNamed(d.Name))
			c.reg.Namespaces[d.Name] = scope.NewRoot()
		}
	}

	// Detail pass: fill in member tables, enum values, typedef aliases, and
	// recurse into namespace bodies, now that every sibling name exists.
	for _, n := range nodes {
		switch d := n.(type) {
		case *ast.ClassDecl:
			c.fillClassInfo(d)
		case *ast.InterfaceDecl:
			c.fillInterfaceInfo(d)
		case *ast.EnumDecl:
			c.fillEnumInfo(d)
		case *ast.TypedefDecl:
			s.DeclareType(d.Name, c.resolveType(d.Type))
		case *ast.NamespaceDecl:
			c.collectTypeDecls(d.Nodes, c.reg.Namespaces[d.Name])
		}
	}

	c.cur = saved
}

func (c *Checker) fillClassInfo(d *ast.ClassDecl) {
	ci := c.reg.Classes[d.Name]
	for _, gp := range d.Generics {
		c.genericConstraints[gp.Name] = gp.Constraints
	}

	for _, f := range d.Fields {
		ci.Fields[f.Name] = &members.FieldInfo{Type: c.resolveType(f.Type), Access: f.Access}
	}
	for _, p := range d.Properties {
		ci.Properties[p.Name] = &members.PropertyInfo{
			Type:      c.resolveType(p.Type),
			HasGetter: p.Getter != nil,
			HasSetter: p.Setter != nil,
			Access:    p.Access,
		}
	}
	for _, m := range d.Methods {
		params := make([]*typing.Type, len(m.Params))
		for i, p := range m.Params {
			pt := c.resolveType(p.Type)
			if p.ByRef {
				pt = typing.NewReference(pt)
			}
			params[i] = pt
		}
		ci.Methods[m.Name] = &members.MethodInfo{
			Type:    typing.NewFunction(c.resolveType(m.ReturnType), params),
			Access:  m.Access,
			Virtual: m.Virtual,
		}
	}
	if d.Constructor != nil {
		params := make([]*typing.Type, len(d.Constructor.Params))
		for i, p := range d.Constructor.Params {
			params[i] = c.resolveType(p.Type)
		}
		ci.Constructor = &members.MethodInfo{
			Type:   typing.NewFunction(typing.NewVoid(), params),
			Access: d.Constructor.Access,
		}
	}
}

func (c *Checker) fillInterfaceInfo(d *ast.InterfaceDecl) {
	ci := c.reg.Classes[d.Name]
	if len(d.Extends) > 0 {
		ci.BaseName = d.Extends[0]
	}
	for _, m := range d.Methods {
		params := make([]*typing.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = c.resolveType(p.Type)
		}
		ci.Methods[m.Name] = &members.MethodInfo{Type: typing.NewFunction(c.resolveType(m.ReturnType), params)}
	}
	for _, p := range d.Properties {
		ci.Properties[p.Name] = &members.PropertyInfo{Type: c.resolveType(p.Type), HasGetter: p.HasGetter, HasSetter: p.HasSetter}
	}
}

func (c *Checker) fillEnumInfo(d *ast.EnumDecl) {
	ei := &members.EnumInfo{Name: d.Name, Values: make(map[string]int64)}
	next := int64(0)
	for _, m := range d.Members {
		if m.Value != nil {
			if lit, ok := m.Value.(*ast.Literal); ok && lit.Kind == ast.LitNumber {
				next = parseIntLiteral(lit.Text)
			}
		}
		ei.Members = append(ei.Members, m.Name)
		ei.Values[m.Name] = next
		next++
	}
	c.reg.Enums[d.Name] = ei
}

// visitTopLevel is Pass 2's dispatch for a single top-level node: type
// declarations get their bodies checked (Pass 1 already resolved their
// signatures); anything else is an ordinary statement, buffered by the
// lowerer into a synthetic main if the source declares no `main`.
func (c *Checker) visitTopLevel(n ast.Node) {
	switch d := n.(type) {
	case *ast.VarDecl:
		c.visitVarDecl(d)
	case *ast.FuncDecl:
		c.visitFuncDecl(d)
	case *ast.ClassDecl:
		c.visitClassDecl(d)
	case *ast.InterfaceDecl:
		// signatures only; nothing further to check.
	case *ast.EnumDecl:
		// values already computed in Pass 1.
	case *ast.NamespaceDecl:
		saved := c.cur
		c.cur = c.reg.Namespaces[d.Name]
		for _, inner := range d.Nodes {
			c.visitTopLevel(inner)
		}
		c.cur = saved
	case *ast.TypedefDecl:
		// alias already declared in Pass 1.
	case *ast.AttributeDecl:
		// attaches to the following declaration; carries no checker semantics.
	default:
		c.visitStmt(n)
	}
}

func (c *Checker) visitVarDecl(d *ast.VarDecl) {
	var declared *typing.Type
	if d.Type != nil {
		declared = c.resolveType(d.Type)
	}

	var initType *typing.Type
	if d.Init != nil {
		initType = c.visitExpr(d.Init)
	}

	switch {
	case declared != nil && initType != nil:
		if !c.isAssignable(initType, declared) {
			c.errorf(d.Span().Start, report.TypeCategory, 7,
				"cannot initialize %q of type %s with value of type %s", d.Name, declared, initType)
		}
	case declared == nil && initType != nil:
		declared = initType
	case declared == nil && initType == nil:
		c.errorf(d.Span().Start, report.Variable, 2, "%q has no type and no initializer", d.Name)
		declared = typing.NewError()
	case d.IsConst && initType == nil:
		c.errorf(d.Span().Start, report.Variable, 3, "const %q requires an initializer", d.Name)
	}

	c.cur.DeclareVariable(d.Name, declared)
}

func (c *Checker) visitFuncDecl(d *ast.FuncDecl) {
	params := make([]*typing.Type, len(d.Params))
	for i, p := range d.Params {
		pt := c.resolveType(p.Type)
		if p.ByRef {
			pt = typing.NewReference(pt)
		}
		params[i] = pt
	}
	ret := c.resolveType(d.ReturnType)
	c.cur.DeclareFunction(d.Name, typing.NewFunction(ret, params))

	if d.Body == nil {
		return
	}

	for _, gp := range d.Generics {
		c.genericConstraints[gp.Name] = gp.Constraints
	}

	c.pushScope()
	for i, p := range d.Params {
		c.cur.DeclareVariable(p.Name, params[i])
	}
	c.funcReturnStack = append(c.funcReturnStack, ret)
	c.visitBlockNodes(d.Body.Nodes)
	c.funcReturnStack = c.funcReturnStack[:len(c.funcReturnStack)-1]
	c.popScope()
}

func (c *Checker) visitClassDecl(d *ast.ClassDecl) {
	selfType := typing.NewNamed(d.Name)

	for _, f := range d.Fields {
		if f.Init == nil {
			continue
		}
		ft := c.reg.Classes[d.Name].Fields[f.Name].Type
		it := c.visitExpr(f.Init)
		if !c.isAssignable(it, ft) {
			c.errorf(f.Span().Start, report.Variable, 4,
				"cannot initialize field %q of type %s with value of type %s", f.Name, ft, it)
		}
	}

	for _, m := range d.Methods {
		c.visitMethodLike(m.Params, m.ReturnType, m.Body, selfType, m.Generics)
	}
	for _, p := range d.Properties {
		if p.Getter != nil {
			c.visitMethodLike(nil, p.Type, p.Getter, selfType, nil)
		}
		if p.Setter != nil {
			valueParam := []ast.Param{{Name: "value", Type: p.Type}}
			c.visitMethodLike(valueParam, nil, p.Setter, selfType, nil)
		}
	}
	if d.Constructor != nil {
		c.visitMethodLike(d.Constructor.Params, nil, d.Constructor.Body, selfType, nil)
	}

	for _, iface := range d.Implements {
		if ok, missing := c.reg.Satisfies(d.Name, iface); !ok {
			c.errorf(d.Span().Start, report.TypeCategory, 4,
				"class %q does not satisfy interface %q: missing member %q", d.Name, iface, missing)
		}
	}
}

func (c *Checker) visitMethodLike(params []ast.Param, retType ast.Type, body *ast.Block, self *typing.Type, generics []ast.GenericParam) {
	if body == nil {
		return
	}
	for _, gp := range generics {
		c.genericConstraints[gp.Name] = gp.Constraints
	}

	ret := c.resolveType(retType)
	c.pushScope()
	c.cur.DeclareVariable("this", typing.NewPointer(self, false))
	for _, p := range params {
		pt := c.resolveType(p.Type)
		if p.ByRef {
			pt = typing.NewReference(pt)
		}
		c.cur.DeclareVariable(p.Name, pt)
	}
	c.funcReturnStack = append(c.funcReturnStack, ret)
	c.visitBlockNodes(body.Nodes)
	c.funcReturnStack = c.funcReturnStack[:len(c.funcReturnStack)-1]
	c.popScope()
}

func parseIntLiteral(text string) int64 {
	var n int64
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
	}
	return n
}
