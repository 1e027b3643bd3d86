package lower

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/token"
	"github.com/theQuarky/tsppc/typing"
)

// lowerExpr lowers an expression to its rvalue: identifiers, member access,
// and index expressions load through their address, matching the
// lvalue/rvalue discipline where an address is only ever returned by
// lvalueAddr.
func (l *Lowerer) lowerExpr(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(n)

	case *ast.Identifier:
		addr, ok := l.lookup(n.Name)
		if !ok {
			return nullPtr(types.I8Ptr)
		}
		return l.block.NewLoad(elemTypeOf(addr), addr)

	case *ast.This:
		addr, ok := l.lookup("this")
		if !ok {
			return nullPtr(types.I8Ptr)
		}
		return l.block.NewLoad(elemTypeOf(addr), addr)

	case *ast.BinaryExpr:
		return l.lowerBinary(n)

	case *ast.UnaryExpr:
		return l.lowerUnary(n)

	case *ast.ConditionalExpr:
		return l.lowerConditional(n)

	case *ast.AssignExpr:
		return l.lowerAssign(n)

	case *ast.CallExpr:
		return l.lowerCall(n)

	case *ast.MemberExpr:
		addr, _ := l.memberFieldAddr(n)
		if addr == nil {
			return nullPtr(types.I8Ptr)
		}
		return l.block.NewLoad(elemTypeOf(addr), addr)

	case *ast.IndexExpr:
		addr := l.indexAddr(n)
		return l.block.NewLoad(elemTypeOf(addr), addr)

	case *ast.NewExpr:
		return l.lowerNew(n)

	case *ast.CastExpr:
		return l.lowerCast(n)

	case *ast.CompileTimeExpr:
		return l.lowerCompileTime(n)

	case *ast.PointerOfExpr:
		return l.lvalueAddr(n.Operand)

	case *ast.ArrayLiteral:
		return l.lowerArrayLiteral(n)

	case *ast.FuncExpr:
		return l.lowerFuncExpr(n)

	case *ast.TemplateSpecExpr:
		// used only as a constructor reference; the callee resolution in
		// lowerCall handles the actual instantiation-free dispatch.
		return nullPtr(types.I8Ptr)
	}
	return nullPtr(types.I8Ptr)
}

func (l *Lowerer) lowerLiteral(n *ast.Literal) value.Value {
	switch n.Kind {
	case ast.LitBool:
		return boolConst(n.Text == "true")
	case ast.LitNumber:
		if isFloatLiteral(n.Text) {
			return floatConst(parseFloatLiteral(n.Text))
		}
		return intConst(parseIntLiteral(n.Text))
	case ast.LitString:
		return l.internString(unquote(n.Text))
	case ast.LitNull:
		return nullPtr(types.I8Ptr)
	}
	return nullPtr(types.I8Ptr)
}

// lvalueAddr resolves the address an assignment target, increment/decrement
// operand, or address-of operand refers to.
func (l *Lowerer) lvalueAddr(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.Identifier:
		addr, ok := l.lookup(n.Name)
		if !ok {
			return nullPtr(types.I8Ptr)
		}
		return addr
	case *ast.This:
		addr, _ := l.lookup("this")
		return addr
	case *ast.MemberExpr:
		addr, _ := l.memberFieldAddr(n)
		return addr
	case *ast.IndexExpr:
		return l.indexAddr(n)
	}
	return nullPtr(types.I8Ptr)
}

// classInstance lowers e to the pointer value backing a class instance,
// along with the class name that pointer refers to (empty if unknown), so
// member access and instance-method calls can resolve field indices and
// method owners without a live checker scope.
func (l *Lowerer) classInstance(e ast.Expr) (value.Value, string) {
	switch n := e.(type) {
	case *ast.Identifier:
		addr, ok := l.lookup(n.Name)
		if !ok {
			return nullPtr(types.I8Ptr), ""
		}
		cls, _ := l.lookupClass(n.Name)
		return l.block.NewLoad(elemTypeOf(addr), addr), cls
	case *ast.This:
		addr, _ := l.lookup("this")
		return l.block.NewLoad(elemTypeOf(addr), addr), l.currentClass
	case *ast.MemberExpr:
		addr, ownerClass := l.memberFieldAddr(n)
		if addr == nil {
			return nullPtr(types.I8Ptr), ""
		}
		fieldCls := l.fieldClassName(ownerClass, n.Name)
		return l.block.NewLoad(elemTypeOf(addr), addr), fieldCls
	case *ast.NewExpr:
		return l.lowerNew(n), classNameOfType(n.Type)
	case *ast.CastExpr:
		val := l.lowerExpr(n.Value)
		return val, classNameOfType(n.Target)
	default:
		return l.lowerExpr(e), ""
	}
}

// fieldClassName finds the class name backing a Named field, for chained
// member access (a.b.c) and method calls off a nested field.
func (l *Lowerer) fieldClassName(ownerClass, field string) string {
	if ownerClass == "" {
		return ""
	}
	t, ok := l.reg.LookupMember(ownerClass, field)
	if !ok {
		return ""
	}
	for t != nil {
		switch t.Kind() {
		case typing.Named:
			return t.Name()
		case typing.Pointer, typing.Reference, typing.Smart:
			t = t.Pointee()
			continue
		}
		return ""
	}
	return ""
}

// memberFieldAddr computes the address of a `.`/`@` member access, returning
// the owning class name too (the class actually declaring the field,
// walking the base chain) so callers can look up its declared type.
func (l *Lowerer) memberFieldAddr(n *ast.MemberExpr) (value.Value, string) {
	objPtr, className := l.classInstance(n.Object)
	if className == "" {
		return nil, ""
	}
	owner, idx, ok := l.fieldIndex(className, n.Name)
	if !ok {
		return nil, ""
	}
	addr := l.block.NewGetElementPtr(l.namedStructType(owner), objPtr,
		intConst(0), intConst(int64(idx)))
	return addr, owner
}

func (l *Lowerer) indexAddr(n *ast.IndexExpr) value.Value {
	arr := l.lowerExpr(n.Array)
	idx := l.lowerExpr(n.Index)
	return l.block.NewGetElementPtr(elemTypeOf(arr), arr, idx)
}

func (l *Lowerer) lowerBinary(n *ast.BinaryExpr) value.Value {
	if n.Op == token.AND_AND || n.Op == token.OR_OR {
		return l.lowerShortCircuit(n)
	}

	lhs := l.lowerExpr(n.Left)
	rhs := l.lowerExpr(n.Right)
	isFloat := isFloatValue(lhs) || isFloatValue(rhs)

	switch n.Op {
	case token.PLUS:
		if isFloat {
			return l.block.NewFAdd(lhs, rhs)
		}
		return l.block.NewAdd(lhs, rhs)
	case token.MINUS:
		if isFloat {
			return l.block.NewFSub(lhs, rhs)
		}
		return l.block.NewSub(lhs, rhs)
	case token.STAR:
		if isFloat {
			return l.block.NewFMul(lhs, rhs)
		}
		return l.block.NewMul(lhs, rhs)
	case token.SLASH:
		if isFloat {
			return l.block.NewFDiv(lhs, rhs)
		}
		return l.block.NewSDiv(lhs, rhs)
	case token.PERCENT:
		if isFloat {
			return l.block.NewFRem(lhs, rhs)
		}
		return l.block.NewSRem(lhs, rhs)
	case token.AMPERSAND:
		return l.block.NewAnd(lhs, rhs)
	case token.PIPE:
		return l.block.NewOr(lhs, rhs)
	case token.CARET:
		return l.block.NewXor(lhs, rhs)
	case token.LSHIFT:
		return l.block.NewShl(lhs, rhs)
	case token.RSHIFT:
		return l.block.NewAShr(lhs, rhs)
	case token.EQUALS_EQUALS:
		if isFloat {
			return l.block.NewFCmp(enum.FPredOEQ, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredEQ, lhs, rhs)
	case token.EXCLAIM_EQUALS:
		if isFloat {
			return l.block.NewFCmp(enum.FPredONE, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredNE, lhs, rhs)
	case token.LESS:
		if isFloat {
			return l.block.NewFCmp(enum.FPredOLT, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredSLT, lhs, rhs)
	case token.LESS_EQUALS:
		if isFloat {
			return l.block.NewFCmp(enum.FPredOLE, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredSLE, lhs, rhs)
	case token.GREATER:
		if isFloat {
			return l.block.NewFCmp(enum.FPredOGT, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredSGT, lhs, rhs)
	case token.GREATER_EQUALS:
		if isFloat {
			return l.block.NewFCmp(enum.FPredOGE, lhs, rhs)
		}
		return l.block.NewICmp(enum.IPredSGE, lhs, rhs)
	}
	return lhs
}

// lowerShortCircuit lowers && and || with proper lazy evaluation of the
// right-hand side via a diamond of blocks and a phi merge.
func (l *Lowerer) lowerShortCircuit(n *ast.BinaryExpr) value.Value {
	lhs := l.lowerExpr(n.Left)
	startBlock := l.block

	rhsBlock := l.appendBlock()
	mergeBlock := l.appendBlock()

	if n.Op == token.AND_AND {
		l.block.NewCondBr(lhs, rhsBlock, mergeBlock)
	} else {
		l.block.NewCondBr(lhs, mergeBlock, rhsBlock)
	}

	l.block = rhsBlock
	rhs := l.lowerExpr(n.Right)
	rhsEnd := l.block
	l.block.NewBr(mergeBlock)

	l.block = mergeBlock
	phi := l.block.NewPhi(
		newIncoming(boolConst(n.Op == token.OR_OR), startBlock),
		newIncoming(rhs, rhsEnd),
	)
	return phi
}

func (l *Lowerer) lowerUnary(n *ast.UnaryExpr) value.Value {
	switch n.Op {
	case token.MINUS:
		v := l.lowerExpr(n.Operand)
		if isFloatValue(v) {
			return l.block.NewFNeg(v)
		}
		return l.block.NewSub(intConst(0), v)
	case token.EXCLAIM:
		v := l.lowerExpr(n.Operand)
		return l.block.NewXor(v, boolConst(true))
	case token.TILDE:
		v := l.lowerExpr(n.Operand)
		return l.block.NewXor(v, intConst(-1))
	case token.PLUS_PLUS, token.MINUS_MINUS:
		addr := l.lvalueAddr(n.Operand)
		old := l.block.NewLoad(elemTypeOf(addr), addr)
		delta := int64(1)
		if n.Op == token.MINUS_MINUS {
			delta = -1
		}
		var updated value.Value
		if isFloatValue(old) {
			f := float64(delta)
			updated = l.block.NewFAdd(old, floatConst(f))
		} else {
			updated = l.block.NewAdd(old, intConst(delta))
		}
		l.block.NewStore(updated, addr)
		if n.Postfix {
			return old
		}
		return updated
	case token.AT:
		return l.lvalueAddr(n.Operand)
	}
	return l.lowerExpr(n.Operand)
}

func (l *Lowerer) lowerConditional(n *ast.ConditionalExpr) value.Value {
	cond := l.lowerExpr(n.Cond)

	thenBlock := l.appendBlock()
	elseBlock := l.appendBlock()
	mergeBlock := l.appendBlock()

	l.block.NewCondBr(cond, thenBlock, elseBlock)

	l.block = thenBlock
	thenVal := l.lowerExpr(n.Then)
	thenEnd := l.block
	l.block.NewBr(mergeBlock)

	l.block = elseBlock
	elseVal := l.lowerExpr(n.Else)
	elseEnd := l.block
	l.block.NewBr(mergeBlock)

	l.block = mergeBlock
	return l.block.NewPhi(newIncoming(thenVal, thenEnd), newIncoming(elseVal, elseEnd))
}

func (l *Lowerer) lowerAssign(n *ast.AssignExpr) value.Value {
	addr := l.lvalueAddr(n.Target)
	rhs := l.lowerExpr(n.Value)

	if n.Op == token.EQUALS {
		l.block.NewStore(rhs, addr)
		return rhs
	}

	old := l.block.NewLoad(elemTypeOf(addr), addr)
	isFloat := isFloatValue(old)
	var result value.Value
	switch n.Op {
	case token.PLUS_EQUALS:
		if isFloat {
			result = l.block.NewFAdd(old, rhs)
		} else {
			result = l.block.NewAdd(old, rhs)
		}
	case token.MINUS_EQUALS:
		if isFloat {
			result = l.block.NewFSub(old, rhs)
		} else {
			result = l.block.NewSub(old, rhs)
		}
	case token.STAR_EQUALS:
		if isFloat {
			result = l.block.NewFMul(old, rhs)
		} else {
			result = l.block.NewMul(old, rhs)
		}
	case token.SLASH_EQUALS:
		if isFloat {
			result = l.block.NewFDiv(old, rhs)
		} else {
			result = l.block.NewSDiv(old, rhs)
		}
	case token.PERCENT_EQUALS:
		if isFloat {
			result = l.block.NewFRem(old, rhs)
		} else {
			result = l.block.NewSRem(old, rhs)
		}
	default:
		result = rhs
	}
	l.block.NewStore(result, addr)
	return result
}

// lowerCall dispatches a plain function call or, when the callee is a
// member expression, an instance method call with `this` bound to the
// receiver's address.
func (l *Lowerer) lowerCall(n *ast.CallExpr) value.Value {
	if m, ok := n.Callee.(*ast.MemberExpr); ok {
		objPtr, className := l.classInstance(m.Object)
		owner := l.resolveMethodOwner(className, m.Name)
		if owner != "" {
			fnVal, ok := l.lookup(owner + "." + m.Name)
			if ok {
				args := make([]value.Value, 0, len(n.Args)+1)
				args = append(args, objPtr)
				for _, a := range n.Args {
					args = append(args, l.lowerExpr(a))
				}
				return l.block.NewCall(fnVal, args...)
			}
		}
	}

	callee := l.lowerExpr(n.Callee)
	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, l.lowerExpr(a))
	}
	return l.block.NewCall(callee, args...)
}

// lowerNew allocates storage for a class instance via the externally
// declared malloc and calls the nearest constructor in the class's base
// chain, if any, immediately after allocation. Field initializer
// expressions are not lowered; fields get values only from constructor code.
func (l *Lowerer) lowerNew(n *ast.NewExpr) value.Value {
	className := classNameOfType(n.Type)
	st := l.namedStructType(className)

	size := structSizeConst(st)
	raw := l.block.NewCall(l.mallocFn, size)
	ptr := l.block.NewBitCast(raw, types.NewPointer(st))

	if ctorOwner := l.resolveMethodOwner(className, "constructor"); ctorOwner != "" {
		if fnVal, ok := l.lookup(ctorOwner + ".constructor"); ok {
			args := make([]value.Value, 0, len(n.Args)+1)
			args = append(args, ptr)
			for _, a := range n.Args {
				args = append(args, l.lowerExpr(a))
			}
			l.block.NewCall(fnVal, args...)
		}
	}
	return ptr
}

// structSizeConst approximates a struct's allocation size as 8 bytes per
// field (8 bytes for a struct with no fields), with no header, since
// llir/llvm's constant folder does not
// expose sizeof directly at this layer.
func structSizeConst(st *types.StructType) value.Value {
	n := int64(len(st.Fields))
	if n == 0 {
		n = 1
	}
	return constant.NewInt(types.I64, n*8)
}

func (l *Lowerer) lowerCast(n *ast.CastExpr) value.Value {
	val := l.lowerExpr(n.Value)
	dst := l.typeFromAST(n.Target)

	switch d := dst.(type) {
	case *types.IntType:
		switch v := val.Type().(type) {
		case *types.FloatType:
			return l.block.NewFPToSI(val, d)
		case *types.IntType:
			if v.BitSize > d.BitSize {
				return l.block.NewTrunc(val, d)
			}
			if v.BitSize < d.BitSize {
				return l.block.NewSExt(val, d)
			}
			return val
		}
	case *types.FloatType:
		if _, ok := val.Type().(*types.IntType); ok {
			return l.block.NewSIToFP(val, d)
		}
	case *types.PointerType:
		return l.block.NewBitCast(val, d)
	}
	return val
}

func (l *Lowerer) lowerCompileTime(n *ast.CompileTimeExpr) value.Value {
	switch n.Kind {
	case ast.CompileSizeof:
		return structSizeConst(l.namedStructType(classNameOfType(n.TypeArg)))
	case ast.CompileAlignof:
		return intConst(8)
	case ast.CompileTypeof:
		name := ""
		if n.ValueArg != nil {
			name = exprTypeName(n.ValueArg)
		}
		return l.internString(name)
	case ast.CompileConst:
		return l.lowerExpr(n.ValueArg)
	}
	return intConst(0)
}

func exprTypeName(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	default:
		return ""
	}
}

func (l *Lowerer) lowerArrayLiteral(n *ast.ArrayLiteral) value.Value {
	if len(n.Elements) == 0 {
		return nullPtr(types.I8Ptr)
	}
	first := l.lowerExpr(n.Elements[0])
	elemType := first.Type()

	backing := l.block.NewAlloca(types.NewArray(uint64(len(n.Elements)), elemType))
	zero := intConst(0)
	firstPtr := l.block.NewGetElementPtr(backing.ElemType, backing, zero, zero)
	l.block.NewStore(first, firstPtr)

	for i := 1; i < len(n.Elements); i++ {
		v := l.lowerExpr(n.Elements[i])
		ptr := l.block.NewGetElementPtr(backing.ElemType, backing, zero, intConst(int64(i)))
		l.block.NewStore(v, ptr)
	}
	return l.block.NewGetElementPtr(backing.ElemType, backing, zero, zero)
}

// lowerFuncExpr emits an anonymous function as an internally-linked
// top-level function and returns a pointer to it as the expression's value;
// it captures no enclosing locals, matching the resource model's rule that
// closures are not part of this layer.
func (l *Lowerer) lowerFuncExpr(n *ast.FuncExpr) value.Value {
	name := l.tempName("$lambda.")
	retType := l.typeFromAST(n.ReturnType)

	params := make([]*ir.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = newParam(p.Name, l.typeFromAST(p.Type))
	}

	fn := l.mod.NewFunc(name, retType, params...)
	fn.Linkage = enum.LinkageInternal

	savedFunc, savedBlock := l.enclosingFunc, l.block
	savedScopes, savedClassScopes := l.scopes, l.classScopes
	l.scopes, l.classScopes = nil, nil
	l.lowerFuncBody(fn, n.Params, nil, n.Body, retType)
	l.enclosingFunc, l.block = savedFunc, savedBlock
	l.scopes, l.classScopes = savedScopes, savedClassScopes
	return fn
}
