package lower

import (
	"github.com/llir/llvm/ir/types"

	"github.com/theQuarky/tsppc/typing"
)

// convType maps a resolved type to its IR representation, per §4.5's type
// lowering table. A Named type interns an opaque struct the first time it
// is referenced, so a class used before its own declaration still lowers to
// the same IR type as the declaration itself produces.
func (l *Lowerer) convType(t *typing.Type) types.Type {
	switch t.Kind() {
	case typing.Void:
		return types.Void
	case typing.Int:
		return types.I32
	case typing.Float:
		return types.Float
	case typing.Bool:
		return types.I1
	case typing.String:
		return types.I8Ptr
	case typing.Pointer:
		return types.NewPointer(l.convType(t.Pointee()))
	case typing.Reference:
		return types.NewPointer(l.convType(t.Pointee()))
	case typing.Array:
		return types.NewPointer(l.convType(t.Elem()))
	case typing.Function:
		params := make([]types.Type, len(t.Params()))
		for i, p := range t.Params() {
			params[i] = l.convType(p)
		}
		return types.NewPointer(types.NewFunc(l.convType(t.Return()), params...))
	case typing.Smart:
		return types.NewPointer(l.convType(t.Pointee()))
	case typing.Named:
		return types.NewPointer(l.namedStructType(t.Name()))
	case typing.Union:
		// the left component is the representative storage choice; see
		// DESIGN.md for the Open Question disposition.
		return l.convType(t.Left())
	case typing.Template:
		// generic parameters lower as opaque pointer-sized placeholders.
		return types.I8Ptr
	case typing.Error:
		return types.I8Ptr
	case typing.Null:
		return types.I8Ptr
	}
	return types.Void
}

// namedStructType interns (or creates) the opaque IR struct type backing a
// class's Named resolved type. Interfaces and namespaces never reach here
// since neither carries field storage.
func (l *Lowerer) namedStructType(name string) *types.StructType {
	if st, ok := l.structTypes[name]; ok {
		return st
	}
	// Generic parameters and not-yet-declared names get an empty opaque
	// struct; real classes fill theirs in during declareStructTypes.
	st := types.NewStruct()
	st.TypeName = name
	l.structTypes[name] = st
	l.mod.NewTypeDef(name, st)
	return st
}
