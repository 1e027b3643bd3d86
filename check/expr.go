package check

import (
	"strings"

	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/common"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/token"
	"github.com/theQuarky/tsppc/typing"
)

// visitExpr computes and returns an expression's resolved type, reporting
// diagnostics for anything the lattice rejects. It never returns nil: a
// rejected expression resolves to typing.Error, which the caller's own
// assignability checks then treat as zero-propagating.
func (c *Checker) visitExpr(e ast.Expr) *typing.Type {
	switch n := e.(type) {
	case *ast.Literal:
		return c.visitLiteral(n)

	case *ast.Identifier:
		if t, ok := c.cur.LookupVariable(n.Name); ok {
			return t
		}
		if t, ok := c.cur.LookupFunction(n.Name); ok {
			return t
		}
		c.errorf(n.Span().Start, report.Variable, 6, "undefined identifier %q", n.Name)
		return typing.NewError()

	case *ast.This:
		if t, ok := c.cur.LookupVariable("this"); ok {
			return t
		}
		c.errorf(n.Span().Start, report.Variable, 7, "this used outside of a method")
		return typing.NewError()

	case *ast.BinaryExpr:
		return c.visitBinary(n)

	case *ast.UnaryExpr:
		return c.visitUnary(n)

	case *ast.ArrayLiteral:
		if len(n.Elements) == 0 {
			return typing.NewArray(typing.NewError())
		}
		elem := c.visitExpr(n.Elements[0])
		for _, el := range n.Elements[1:] {
			t := c.visitExpr(el)
			if !c.isAssignable(t, elem) {
				c.errorf(el.Span().Start, report.Expression, 4,
					"array element of type %s does not match inferred element type %s", t, elem)
			}
		}
		return typing.NewArray(elem)

	case *ast.ConditionalExpr:
		cond := c.visitExpr(n.Cond)
		c.requireBoolConvertible(cond, n.Span().Start, "ternary condition")
		thenT := c.visitExpr(n.Then)
		elseT := c.visitExpr(n.Else)
		if c.isAssignable(thenT, elseT) {
			return elseT
		}
		if c.isAssignable(elseT, thenT) {
			return thenT
		}
		c.errorf(n.Span().Start, report.Expression, 5,
			"ternary branches have incompatible types %s and %s", thenT, elseT)
		return typing.NewError()

	case *ast.AssignExpr:
		return c.visitAssign(n)

	case *ast.CallExpr:
		return c.visitCall(n)

	case *ast.MemberExpr:
		return c.visitMember(n)

	case *ast.IndexExpr:
		arrT := c.visitExpr(n.Array)
		idxT := c.visitExpr(n.Index)
		if !idxT.IsImplicitlyConvertibleTo(typing.NewInt()) {
			c.errorf(n.Span().Start, report.Expression, 6, "array index must be int-convertible, got %s", idxT)
		}
		if arrT.Kind() != typing.Array {
			c.errorf(n.Span().Start, report.Expression, 7, "cannot index non-array type %s", arrT)
			return typing.NewError()
		}
		return arrT.Elem()

	case *ast.NewExpr:
		return c.visitNew(n)

	case *ast.CastExpr:
		srcT := c.visitExpr(n.Value)
		dstT := c.resolveType(n.Target)
		if !srcT.IsExplicitlyConvertibleTo(dstT) {
			c.errorf(n.Span().Start, report.Expression, 8, "cannot cast %s to %s", srcT, dstT)
		}
		return dstT

	case *ast.CompileTimeExpr:
		switch n.Kind {
		case ast.CompileSizeof, ast.CompileAlignof:
			c.resolveType(n.TypeArg)
			return typing.NewInt()
		case ast.CompileTypeof:
			t := c.visitExpr(n.ValueArg)
			_ = t
			return typing.NewString()
		case ast.CompileConst:
			return c.visitExpr(n.ValueArg)
		}
		return typing.NewError()

	case *ast.TemplateSpecExpr:
		for _, a := range n.Args {
			c.resolveType(a)
		}
		if t, ok := c.cur.LookupType(n.BaseName); ok {
			return t
		}
		c.errorf(n.Span().Start, report.TypeCategory, 5, "unknown generic reference %q", n.BaseName)
		return typing.NewError()

	case *ast.PointerOfExpr:
		t := c.visitExpr(n.Operand)
		return typing.NewPointer(t, false)

	case *ast.FuncExpr:
		return c.visitFuncExpr(n)
	}

	return typing.NewError()
}

// visitLiteral resolves a literal's text lazily, per §3's deferred-parsing
// note on Literal.Text.
func (c *Checker) visitLiteral(n *ast.Literal) *typing.Type {
	switch n.Kind {
	case ast.LitNumber:
		if strings.ContainsAny(n.Text, ".eE") {
			return typing.NewFloat()
		}
		if n.Text == "0" {
			return typing.NewIntLiteralZero()
		}
		return typing.NewInt()
	case ast.LitString:
		return typing.NewString()
	case ast.LitBool:
		return typing.NewBool()
	case ast.LitNull:
		return typing.NewNull()
	}
	return typing.NewError()
}

func (c *Checker) visitBinary(n *ast.BinaryExpr) *typing.Type {
	lt := c.visitExpr(n.Left)
	rt := c.visitExpr(n.Right)
	cat := common.CategoryOf(n.Op)

	switch cat {
	case common.OpArithmetic:
		if n.Op == token.PLUS && (lt.Kind() == typing.String || rt.Kind() == typing.String) {
			return typing.NewString()
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			c.errorf(n.Span().Start, report.Expression, 9, "arithmetic operands must be numeric, got %s and %s", lt, rt)
			return typing.NewError()
		}
		if lt.Kind() == typing.Float || rt.Kind() == typing.Float {
			return typing.NewFloat()
		}
		return typing.NewInt()

	case common.OpComparison, common.OpEquality:
		if !c.isAssignable(lt, rt) && !c.isAssignable(rt, lt) {
			c.errorf(n.Span().Start, report.Expression, 10, "comparison operands have incompatible types %s and %s", lt, rt)
		}
		return typing.NewBool()

	case common.OpLogical:
		if !lt.IsBoolConvertible() || !rt.IsBoolConvertible() {
			c.errorf(n.Span().Start, report.Expression, 11, "logical operands must be bool-convertible, got %s and %s", lt, rt)
		}
		return typing.NewBool()

	case common.OpBitwise:
		if lt.Kind() != typing.Int || rt.Kind() != typing.Int {
			c.errorf(n.Span().Start, report.Expression, 12, "bitwise operands must be int, got %s and %s", lt, rt)
		}
		return typing.NewInt()
	}

	return typing.NewError()
}

func (c *Checker) visitUnary(n *ast.UnaryExpr) *typing.Type {
	t := c.visitExpr(n.Operand)

	switch n.Op {
	case token.PLUS, token.MINUS:
		if !t.IsNumeric() {
			c.errorf(n.Span().Start, report.Expression, 13, "unary %s requires a numeric operand, got %s", n.Op, t)
			return typing.NewError()
		}
		return t
	case token.EXCLAIM:
		if !t.IsBoolConvertible() {
			c.errorf(n.Span().Start, report.Expression, 14, "! requires a bool-convertible operand, got %s", t)
		}
		return typing.NewBool()
	case token.TILDE:
		if t.Kind() != typing.Int {
			c.errorf(n.Span().Start, report.Expression, 15, "~ requires an int operand, got %s", t)
		}
		return typing.NewInt()
	case token.PLUS_PLUS, token.MINUS_MINUS:
		if !t.IsNumeric() {
			c.errorf(n.Span().Start, report.Expression, 16, "%s requires a numeric lvalue, got %s", n.Op, t)
		}
		return t
	case token.STAR:
		if t.Kind() != typing.Pointer {
			c.errorf(n.Span().Start, report.Expression, 17, "* requires a pointer operand, got %s", t)
			return typing.NewError()
		}
		return t.Pointee()
	case token.AT:
		return typing.NewPointer(t, false)
	}
	return typing.NewError()
}

func (c *Checker) visitAssign(n *ast.AssignExpr) *typing.Type {
	targetT := c.visitExpr(n.Target)
	valueT := c.visitExpr(n.Value)

	if n.Op == token.EQUALS {
		if !c.isAssignable(valueT, targetT) {
			c.errorf(n.Span().Start, report.Expression, 18, "cannot assign %s to %s", valueT, targetT)
		}
		return targetT
	}

	base, ok := common.CompoundBase(n.Op)
	if !ok {
		return typing.NewError()
	}
	var resultT *typing.Type
	switch common.CategoryOf(base) {
	case common.OpArithmetic:
		if base == token.PLUS && (targetT.Kind() == typing.String || valueT.Kind() == typing.String) {
			resultT = typing.NewString()
		} else if targetT.Kind() == typing.Float || valueT.Kind() == typing.Float {
			resultT = typing.NewFloat()
		} else {
			resultT = typing.NewInt()
		}
	default:
		resultT = typing.NewInt()
	}
	if !c.isAssignable(resultT, targetT) {
		c.errorf(n.Span().Start, report.Expression, 19, "cannot assign %s back into %s", resultT, targetT)
	}
	return targetT
}

func (c *Checker) visitCall(n *ast.CallExpr) *typing.Type {
	for _, ta := range n.TypeArgs {
		c.resolveType(ta)
	}
	calleeT := c.visitExpr(n.Callee)
	argTypes := make([]*typing.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.visitExpr(a)
	}

	if calleeT.Kind() != typing.Function {
		c.errorf(n.Span().Start, report.Function, 4, "cannot call non-function type %s", calleeT)
		return typing.NewError()
	}
	params := calleeT.Params()
	if len(params) != len(argTypes) {
		c.errorf(n.Span().Start, report.Function, 5, "expected %d argument(s), got %d", len(params), len(argTypes))
		return calleeT.Return()
	}
	for i, pt := range params {
		if !c.isAssignable(argTypes[i], pt) {
			c.errorf(n.Args[i].Span().Start, report.Function, 6,
				"argument %d of type %s is not assignable to parameter type %s", i+1, argTypes[i], pt)
		}
	}
	return calleeT.Return()
}

func (c *Checker) visitMember(n *ast.MemberExpr) *typing.Type {
	objT := c.visitExpr(n.Object)

	for objT.Kind() == typing.Pointer || objT.Kind() == typing.Reference || objT.Kind() == typing.Smart {
		objT = objT.Pointee()
	}

	switch objT.Kind() {
	case typing.Named:
		if ns, ok := c.reg.Namespaces[objT.Name()]; ok {
			if t, ok := ns.LookupVariable(n.Name); ok {
				return t
			}
			if t, ok := ns.LookupFunction(n.Name); ok {
				return t
			}
		}
		if ei, ok := c.reg.Enums[objT.Name()]; ok {
			if _, ok := ei.Values[n.Name]; ok {
				return objT
			}
		}
		if t, ok := c.reg.LookupMember(objT.Name(), n.Name); ok {
			return t
		}
	case typing.Error:
		return typing.NewError()
	}

	c.errorf(n.Span().Start, report.TypeCategory, 6, "type %s has no member %q", objT, n.Name)
	return typing.NewError()
}

func (c *Checker) visitNew(n *ast.NewExpr) *typing.Type {
	t := c.resolveType(n.Type)
	argTypes := make([]*typing.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.visitExpr(a)
	}
	if t.Kind() != typing.Named {
		return t
	}
	ci, ok := c.reg.Classes[t.Name()]
	if !ok || ci.Constructor == nil {
		return t
	}
	params := ci.Constructor.Type.Params()
	if len(params) != len(argTypes) {
		c.errorf(n.Span().Start, report.Function, 7,
			"constructor for %q expects %d argument(s), got %d", t.Name(), len(params), len(argTypes))
		return t
	}
	for i, pt := range params {
		if !c.isAssignable(argTypes[i], pt) {
			c.errorf(n.Args[i].Span().Start, report.Function, 8,
				"constructor argument %d of type %s is not assignable to parameter type %s", i+1, argTypes[i], pt)
		}
	}
	return t
}

func (c *Checker) visitFuncExpr(n *ast.FuncExpr) *typing.Type {
	params := make([]*typing.Type, len(n.Params))
	for i, p := range n.Params {
		pt := c.resolveType(p.Type)
		if p.ByRef {
			pt = typing.NewReference(pt)
		}
		params[i] = pt
	}
	ret := c.resolveType(n.ReturnType)

	c.pushScope()
	for i, p := range n.Params {
		c.cur.DeclareVariable(p.Name, params[i])
	}
	c.funcReturnStack = append(c.funcReturnStack, ret)
	c.visitBlockNodes(n.Body.Nodes)
	c.funcReturnStack = c.funcReturnStack[:len(c.funcReturnStack)-1]
	c.popScope()

	return typing.NewFunction(ret, params)
}
