package lower

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func boolConst(b bool) value.Value     { return constant.NewBool(b) }
func intConst(n int64) value.Value     { return constant.NewInt(types.I32, n) }
func floatConst(f float64) value.Value { return constant.NewFloat(types.Float, f) }

func i32() types.Type    { return types.I32 }
func ptrI8() types.Type  { return types.I8Ptr }

func charArrayConst(s string) constant.Constant { return constant.NewCharArrayFromString(s) }

// elemTypeOf recovers the pointee type of a pointer-typed value, used when
// indexing into an array (which lowers to a bare element pointer).
func elemTypeOf(v value.Value) types.Type {
	if pt, ok := v.Type().(*types.PointerType); ok {
		return pt.ElemType
	}
	return types.I8
}

func nullPtr(t types.Type) value.Value {
	pt, ok := t.(*types.PointerType)
	if !ok {
		pt = types.NewPointer(t)
	}
	return constant.NewNull(pt)
}

// nullOrZeroConst returns the zero-value constant used to initialize a
// global variable before any explicit initializer runs.
func nullOrZeroConst(t types.Type) constant.Constant {
	switch t {
	case types.I32:
		return constant.NewInt(types.I32, 0)
	case types.I1:
		return constant.NewBool(false)
	case types.Float:
		return constant.NewFloat(types.Float, 0)
	}
	if pt, ok := t.(*types.PointerType); ok {
		return constant.NewNull(pt)
	}
	return constant.NewNull(types.NewPointer(t))
}
