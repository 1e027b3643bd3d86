package lower

import (
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/typing"
)

// constNull builds the null-pointer constant that defaultValueFor returns
// for pointer-typed values (default returns and uninitialized locals).
func constNull(pt *types.PointerType) value.Value { return nullPtr(pt) }

// declareStructTypes emits one IR global struct type per class, own fields
// sorted by name with base-class fields prepended when `extends` is
// present, before any function body is lowered. Interfaces get no struct
// (they carry no storage); enums lower to plain integer constants, also
// with no struct.
func (l *Lowerer) declareStructTypes(nodes []ast.Node) {
	for _, n := range nodes {
		switch d := n.(type) {
		case *ast.ClassDecl:
			l.buildClassLayout(d.Name)
		case *ast.NamespaceDecl:
			l.declareStructTypes(d.Nodes)
		}
	}
}

// buildClassLayout computes (and caches) the field order for a class,
// recursing into its base class first so inherited fields come first in
// memory, matching the teacher's dependency-graph visitDef pattern adapted
// to struct layout instead of definition ordering.
func (l *Lowerer) buildClassLayout(className string) []string {
	if order, ok := l.classOrder[className]; ok {
		return order
	}
	ci, ok := l.reg.Classes[className]
	if !ok || ci.IsInterface {
		return nil
	}

	var order []string
	if ci.BaseName != "" {
		order = append(order, l.buildClassLayout(ci.BaseName)...)
	}

	fieldTypes := make([]types.Type, 0, len(order)+len(ci.Fields))
	for _, baseField := range order {
		for owner := l.reg.Classes[ci.BaseName]; owner != nil; owner = l.reg.Classes[owner.BaseName] {
			if f, ok := owner.Fields[baseField]; ok {
				fieldTypes = append(fieldTypes, l.convType(f.Type))
				break
			}
		}
	}

	ownFields := make([]string, 0, len(ci.Fields))
	for name := range ci.Fields {
		ownFields = append(ownFields, name)
	}
	sort.Strings(ownFields)
	for _, name := range ownFields {
		order = append(order, name)
		fieldTypes = append(fieldTypes, l.convType(ci.Fields[name].Type))
	}

	st := l.namedStructType(className)
	st.Fields = fieldTypes

	l.classOrder[className] = order
	return order
}

func (l *Lowerer) lowerTopLevel(n ast.Node) {
	switch d := n.(type) {
	case *ast.VarDecl:
		l.lowerGlobalVar(d)
	case *ast.FuncDecl:
		l.lowerFuncDecl(d, "")
	case *ast.ClassDecl:
		l.lowerClassDecl(d)
	case *ast.InterfaceDecl:
		// no storage, no vtable; a compile-time-only property.
	case *ast.EnumDecl:
		// members fold directly to integer constants at use sites.
	case *ast.NamespaceDecl:
		for _, inner := range d.Nodes {
			l.lowerTopLevel(inner)
		}
	case *ast.TypedefDecl:
		// pure alias; the underlying resolved type already carries the IR
		// representation via convType.
	default:
		l.topLevelStmts = append(l.topLevelStmts, n)
	}
}

// lowerGlobalVar emits a zero-initialized global and, if initialized, lowers
// the initializer inside a throwaway function so the ordinary
// expression-lowering machinery can be reused. A result that is a constant
// of the global's IR type becomes the global's initial value; the
// throwaway function is then removed from the module, so an initializer
// that does not lower to such a constant leaves the global at its zero
// value.
func (l *Lowerer) lowerGlobalVar(d *ast.VarDecl) {
	t := l.resolvedVarType(d)
	irType := l.convType(t)
	glob := l.mod.NewGlobalDef(d.Name, nullOrZeroConst(irType))
	l.define(d.Name, glob)
	if d.Type != nil {
		l.defineClass(d.Name, classNameOfType(d.Type))
	}

	if d.Init == nil {
		return
	}

	initFn := l.mod.NewFunc("$ginit."+d.Name, types.Void)
	initFn.Linkage = enum.LinkageInternal
	entry := initFn.NewBlock("entry")

	savedFunc, savedBlock := l.enclosingFunc, l.block
	l.enclosingFunc, l.block = initFn, entry

	val := l.lowerExpr(d.Init)
	if c, ok := val.(constant.Constant); ok && c.Type().Equal(irType) {
		glob.Init = c
	}

	l.enclosingFunc, l.block = savedFunc, savedBlock
	for i, f := range l.mod.Funcs {
		if f == initFn {
			l.mod.Funcs = append(l.mod.Funcs[:i], l.mod.Funcs[i+1:]...)
			break
		}
	}
}

func (l *Lowerer) resolvedVarType(d *ast.VarDecl) *typing.Type {
	// The checker already resolved and attached types during Pass 2; the
	// lowerer re-derives the same primitive mapping here since AST nodes
	// carry only the parsed annotation, not the resolved type itself.
	return inferLiteralOrNamed(d)
}

func (l *Lowerer) lowerFuncDecl(d *ast.FuncDecl, qualifier string) *ir.Func {
	name := d.Name
	if qualifier != "" {
		name = qualifier + "." + d.Name
	}

	retType := l.typeFromAST(d.ReturnType)
	var params []*ir.Param
	for _, p := range d.Params {
		params = append(params, ir.NewParam(p.Name, l.typeFromAST(p.Type)))
	}

	fn := l.mod.NewFunc(name, retType, params...)
	if qualifier == "" {
		fn.Linkage = enum.LinkageExternal
	} else {
		fn.Linkage = enum.LinkageInternal
	}
	l.define(name, fn)

	if d.Body == nil {
		return fn
	}
	l.lowerFuncBody(fn, d.Params, nil, d.Body, retType)
	return fn
}

// lowerFuncBody creates the entry block, allocates parameter slots (an
// implicit `this` slot first when thisType is non-nil), visits the body,
// and synthesizes a default return if control falls off the end.
func (l *Lowerer) lowerFuncBody(fn *ir.Func, astParams []ast.Param, thisType types.Type, body *ast.Block, retType types.Type) {
	entry := fn.NewBlock("entry")
	l.enclosingFunc = fn
	l.block = entry
	l.pushScope()
	defer l.popScope()

	n := 0
	if thisType != nil {
		slot := entry.NewAlloca(thisType)
		entry.NewStore(fn.Params[0], slot)
		l.define("this", slot)
		l.defineClass("this", l.currentClass)
		n = 1
	}
	for _, p := range astParams {
		slot := entry.NewAlloca(fn.Params[n].Type())
		entry.NewStore(fn.Params[n], slot)
		l.define(p.Name, slot)
		l.defineClass(p.Name, classNameOfType(p.Type))
		n++
	}

	l.lowerBlockNodes(body.Nodes)

	if l.block.Term == nil {
		if retType == types.Void {
			l.block.NewRet(nil)
		} else {
			l.block.NewRet(l.defaultValueFor(retType))
		}
	}
}

func (l *Lowerer) defaultValueFor(t types.Type) value.Value {
	switch t {
	case types.I32:
		return intConst(0)
	case types.I1:
		return boolConst(false)
	case types.Float:
		return floatConst(0)
	}
	if pt, ok := t.(*types.PointerType); ok {
		return constNull(pt)
	}
	return constNull(types.NewPointer(t))
}

func (l *Lowerer) lowerClassDecl(d *ast.ClassDecl) {
	selfPtr := types.NewPointer(l.namedStructType(d.Name))

	for _, m := range d.Methods {
		if m.Body == nil {
			continue
		}
		l.lowerMethod(d.Name, m.Name, m.Params, m.ReturnType, m.Body, selfPtr)
	}
	for _, p := range d.Properties {
		if p.Getter != nil {
			l.lowerMethod(d.Name, "get_"+p.Name, nil, p.Type, p.Getter, selfPtr)
		}
		if p.Setter != nil {
			setterParams := []ast.Param{{Name: "value", Type: p.Type}}
			l.lowerMethod(d.Name, "set_"+p.Name, setterParams, nil, p.Setter, selfPtr)
		}
	}
	if d.Constructor != nil {
		l.lowerMethod(d.Name, "constructor", d.Constructor.Params, nil, d.Constructor.Body, selfPtr)
	}
}

// lowerMethod emits one IR function per method, name-qualified by class
// name to avoid collisions, with an implicit pointer-typed first parameter
// for `this`.
func (l *Lowerer) lowerMethod(className, methodName string, astParams []ast.Param, retTypeAST ast.Type, body *ast.Block, selfPtr types.Type) {
	retType := l.typeFromAST(retTypeAST)

	params := []*ir.Param{ir.NewParam("this", selfPtr)}
	for _, p := range astParams {
		params = append(params, ir.NewParam(p.Name, l.typeFromAST(p.Type)))
	}

	fn := l.mod.NewFunc(className+"."+methodName, retType, params...)
	fn.Linkage = enum.LinkageExternal
	l.define(className+"."+methodName, fn)

	savedClass := l.currentClass
	l.currentClass = className
	l.lowerFuncBody(fn, astParams, selfPtr, body, retType)
	l.currentClass = savedClass
}

// fieldIndex returns the struct-field index of field within className's IR
// layout, searching the base-class chain.
func (l *Lowerer) fieldIndex(className, field string) (ownerClass string, index int, ok bool) {
	for className != "" {
		order, known := l.classOrder[className]
		if !known {
			return "", 0, false
		}
		for i, f := range order {
			if f == field {
				return className, i, true
			}
		}
		ci := l.reg.Classes[className]
		if ci == nil {
			return "", 0, false
		}
		className = ci.BaseName
	}
	return "", 0, false
}

// resolveMethodOwner finds the nearest class in className's base chain that
// declares method, for name-qualified call-site resolution.
func (l *Lowerer) resolveMethodOwner(className, method string) string {
	for className != "" {
		ci, ok := l.reg.Classes[className]
		if !ok {
			return ""
		}
		if _, ok := ci.Methods[method]; ok {
			return className
		}
		className = ci.BaseName
	}
	return ""
}

// classNameOfType returns the class name a type annotation refers to, for
// the forms that can hold a class instance (direct, pointer, reference, or
// smart-pointer to a named type), or "" if it names no class.
func classNameOfType(t ast.Type) string {
	switch n := t.(type) {
	case *ast.NamedType:
		return n.Name
	case *ast.PointerType:
		return classNameOfType(n.Pointee)
	case *ast.ReferenceType:
		return classNameOfType(n.Target)
	case *ast.SmartPointerType:
		return classNameOfType(n.Pointee)
	}
	return ""
}

// typeFromAST resolves a parsed type annotation directly to its IR form,
// bypassing the typing.Type intermediate for the narrow set of forms the
// lowerer needs a type for without a live checker scope at hand (parameter
// and return-type annotations, whose resolved identity the checker already
// validated in Pass 2).
func (l *Lowerer) typeFromAST(t ast.Type) types.Type {
	if t == nil {
		return types.Void
	}
	switch n := t.(type) {
	case *ast.PrimitiveType:
		switch n.Name {
		case "int":
			return types.I32
		case "float":
			return types.Float
		case "boolean":
			return types.I1
		case "string":
			return types.I8Ptr
		default:
			return types.Void
		}
	case *ast.NamedType:
		return types.NewPointer(l.namedStructType(n.Name))
	case *ast.ArrayType:
		return types.NewPointer(l.typeFromAST(n.Elem))
	case *ast.PointerType:
		return types.NewPointer(l.typeFromAST(n.Pointee))
	case *ast.ReferenceType:
		return types.NewPointer(l.typeFromAST(n.Target))
	case *ast.SmartPointerType:
		return types.NewPointer(l.typeFromAST(n.Pointee))
	case *ast.FunctionType:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = l.typeFromAST(p)
		}
		return types.NewPointer(types.NewFunc(l.typeFromAST(n.Return), params...))
	case *ast.UnionType:
		return l.typeFromAST(n.Left)
	case *ast.TemplateType, *ast.GenericParamType:
		return types.I8Ptr
	case *ast.QualifiedType:
		if len(n.Parts) > 0 {
			return types.NewPointer(l.namedStructType(n.Parts[len(n.Parts)-1]))
		}
	}
	return types.Void
}

// synthesizeMain buffers the top-level statements collected during Lower
// into a generated `main`, run in source order, returning integer zero.
func (l *Lowerer) synthesizeMain() {
	fn := l.mod.NewFunc("main", types.I32)
	fn.Linkage = enum.LinkageExternal
	entry := fn.NewBlock("entry")
	l.enclosingFunc = fn
	l.block = entry
	l.pushScope()

	l.lowerBlockNodes(l.topLevelStmts)

	if l.block.Term == nil {
		l.block.NewRet(intConst(0))
	}
	l.popScope()
}

// inferLiteralOrNamed maps a global variable's primitive type annotation to
// its resolved type; any other annotation, or none, gives Error.
func inferLiteralOrNamed(d *ast.VarDecl) *typing.Type {
	if d.Type == nil {
		return typing.NewError()
	}
	switch n := d.Type.(type) {
	case *ast.PrimitiveType:
		switch n.Name {
		case "int":
			return typing.NewInt()
		case "float":
			return typing.NewFloat()
		case "boolean":
			return typing.NewBool()
		case "string":
			return typing.NewString()
		}
	}
	return typing.NewError()
}
