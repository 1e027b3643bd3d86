// Package lower walks a checked AST and emits LLVM IR through llir/llvm,
// grounded on the teacher's bootstrap/generate package: one module per
// source file, a current-block cursor threaded through every visit method,
// and a global/local scope split mirroring the checker's own scope chain.
package lower

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/members"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/typing"
)

// loopRecord tracks the continue/break targets of one enclosing loop.
type loopRecord struct {
	continueTarget *ir.Block
	breakTarget    *ir.Block
}

// Lowerer converts one checked file into one LLVM module.
type Lowerer struct {
	mod *ir.Module
	bag *report.Bag

	reg *members.Registry

	structTypes map[string]*types.StructType
	classOrder  map[string][]string // field names in IR-struct order, base first

	globalScope map[string]value.Value
	scopes      []map[string]value.Value

	// classScopes tracks the declared class name of each variable holding a
	// Named-type value, so member access and instance-method calls can
	// resolve which class's layout/method table to use without a live
	// checker scope at hand.
	globalClassScope map[string]string
	classScopes      []map[string]string
	currentClass     string

	enclosingFunc *ir.Func
	block         *ir.Block

	loops []loopRecord

	globalCounter int
	topLevelStmts []ast.Node

	printfFn, putsFn, mallocFn, freeFn *ir.Func
}

// New creates a lowerer with the external stubs already declared and the
// given member registry (populated by the checker) available for class
// layout and method name-qualification.
func New(reg *members.Registry) *Lowerer {
	l := &Lowerer{
		mod:              ir.NewModule(),
		bag:              report.NewBag(report.PhaseCodegen),
		reg:              reg,
		structTypes:      make(map[string]*types.StructType),
		classOrder:       make(map[string][]string),
		globalScope:      make(map[string]value.Value),
		globalClassScope: make(map[string]string),
	}
	l.declareExternals()
	return l
}

func (l *Lowerer) declareExternals() {
	l.printfFn = l.mod.NewFunc("printf", types.I32, ir.NewParam("fmt", types.I8Ptr))
	l.printfFn.Sig.Variadic = true
	l.printfFn.Linkage = enum.LinkageExternal

	l.putsFn = l.mod.NewFunc("puts", types.I32, ir.NewParam("s", types.I8Ptr))
	l.putsFn.Linkage = enum.LinkageExternal

	l.mallocFn = l.mod.NewFunc("malloc", types.I8Ptr, ir.NewParam("size", types.I64))
	l.mallocFn.Linkage = enum.LinkageExternal

	l.freeFn = l.mod.NewFunc("free", types.Void, ir.NewParam("ptr", types.I8Ptr))
	l.freeFn.Linkage = enum.LinkageExternal
}

// Lower walks every top-level node of f, emitting IR into the module. Type
// declarations (classes, enums, namespaces, typedefs) are pre-registered
// before any function body is lowered, so forward references between
// classes resolve. Buffered top-level statements are lowered into a
// synthesized main at the end of Lower when the source declares no main.
func (l *Lowerer) Lower(f *ast.File) {
	l.declareStructTypes(f.Nodes)

	for _, n := range f.Nodes {
		l.lowerTopLevel(n)
	}

	if _, hasMain := l.globalScope["main"]; !hasMain {
		l.synthesizeMain()
	}
}

// Module returns the completed LLVM module. Call after Lower.
func (l *Lowerer) Module() *ir.Module { return l.mod }

// Diagnostics returns every diagnostic recorded while lowering.
func (l *Lowerer) Diagnostics() []report.Diagnostic { return l.bag.Diagnostics() }

// Success reports whether lowering completed without reporting any error.
func (l *Lowerer) Success() bool { return !l.bag.HasErrors() }

func (l *Lowerer) pushScope() {
	l.scopes = append(l.scopes, make(map[string]value.Value))
	l.classScopes = append(l.classScopes, make(map[string]string))
}
func (l *Lowerer) popScope() {
	l.scopes = l.scopes[:len(l.scopes)-1]
	l.classScopes = l.classScopes[:len(l.classScopes)-1]
}

func (l *Lowerer) define(name string, v value.Value) {
	if len(l.scopes) == 0 {
		l.globalScope[name] = v
		return
	}
	l.scopes[len(l.scopes)-1][name] = v
}

// defineClass records the class name backing a Named-type variable, so
// later member access on it can resolve a field index or method without
// re-deriving the checker's resolved type.
func (l *Lowerer) defineClass(name, className string) {
	if className == "" {
		return
	}
	if len(l.classScopes) == 0 {
		l.globalClassScope[name] = className
		return
	}
	l.classScopes[len(l.classScopes)-1][name] = className
}

func (l *Lowerer) lookupClass(name string) (string, bool) {
	for i := len(l.classScopes) - 1; i >= 0; i-- {
		if c, ok := l.classScopes[i][name]; ok {
			return c, true
		}
	}
	c, ok := l.globalClassScope[name]
	return c, ok
}

// lookup resolves a source name to its lvalue (address), searching local
// scopes innermost-first before falling back to globals.
func (l *Lowerer) lookup(name string) (value.Value, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if v, ok := l.scopes[i][name]; ok {
			return v, true
		}
	}
	v, ok := l.globalScope[name]
	return v, ok
}

func (l *Lowerer) appendBlock() *ir.Block {
	b := l.enclosingFunc.NewBlock(l.tempName("bb"))
	return b
}

func (l *Lowerer) tempName(prefix string) string {
	l.globalCounter++
	return prefix + strconv.Itoa(l.globalCounter)
}

// zeroValue returns the default IR value for a resolved type. Nothing in the
// lowerer calls it: default returns and uninitialized locals use
// defaultValueFor, which works from the IR type.
func (l *Lowerer) zeroValue(t *typing.Type) value.Value {
	switch t.Kind() {
	case typing.Void:
		return nil
	case typing.Bool:
		return boolConst(false)
	case typing.Int:
		return intConst(0)
	case typing.Float:
		return floatConst(0)
	case typing.String:
		return nullPtr(types.I8Ptr)
	default:
		return nullPtr(l.convType(t))
	}
}
