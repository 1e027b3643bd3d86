// Package typing implements the resolved-type lattice the type checker
// computes over: an algebraic value type with assignability,
// implicit-conversion, and explicit-conversion predicates, plus structural
// equality.
package typing

// Kind enumerates the resolved-type variants.
type Kind int

const (
	Void Kind = iota
	Int
	Float
	Bool
	String
	Named
	Array
	Pointer
	Reference
	Function
	Smart
	Union
	Template
	Error
	Null
)

// SmartKind distinguishes the three smart-pointer ownership flavors.
type SmartKind int

const (
	Shared SmartKind = iota
	Unique
	Weak
)

// Type is an immutable resolved type. Composite variants hold pointers to
// their component types; Types are shared freely (no owner), matching the
// spec's "resolved types are immutable values... ownership is shared"
// invariant.
type Type struct {
	kind Kind

	name string // Named, Template

	elem    *Type // Array
	pointee *Type // Pointer, Reference, Smart

	ret    *Type // Function
	params []*Type

	smartKind SmartKind // Smart

	left, right *Type // Union

	templateArgs []*Type // Template

	isUnsafe      bool // Pointer
	isLiteralZero bool // Int, set only by the literal-0 evaluation rule
}

func NewVoid() *Type   { return &Type{kind: Void} }
func NewInt() *Type    { return &Type{kind: Int} }
func NewFloat() *Type  { return &Type{kind: Float} }
func NewBool() *Type   { return &Type{kind: Bool} }
func NewString() *Type { return &Type{kind: String} }
func NewError() *Type  { return &Type{kind: Error} }

// NewNull returns the type of the `null` literal: assignable into any
// reference-like type (Pointer, Reference, Smart, Named) but, unlike Error,
// not assignable into a scalar type, so assigning null to a non-nullable
// field is a checker error rather than silently accepted.
func NewNull() *Type { return &Type{kind: Null} }

// NewIntLiteralZero returns the Int type produced specifically by evaluating
// the literal `0`; only this factory sets the flag that makes the type
// assignable to a Pointer.
func NewIntLiteralZero() *Type {
	return &Type{kind: Int, isLiteralZero: true}
}

func NewNamed(name string) *Type {
	return &Type{kind: Named, name: name}
}

func NewArray(elem *Type) *Type {
	return &Type{kind: Array, elem: elem}
}

func NewPointer(pointee *Type, unsafe bool) *Type {
	return &Type{kind: Pointer, pointee: pointee, isUnsafe: unsafe}
}

func NewReference(target *Type) *Type {
	return &Type{kind: Reference, pointee: target}
}

func NewFunction(ret *Type, params []*Type) *Type {
	return &Type{kind: Function, ret: ret, params: params}
}

func NewSmart(pointee *Type, sk SmartKind) *Type {
	return &Type{kind: Smart, pointee: pointee, smartKind: sk}
}

func NewUnion(left, right *Type) *Type {
	return &Type{kind: Union, left: left, right: right}
}

func NewTemplate(name string, args []*Type) *Type {
	return &Type{kind: Template, name: name, templateArgs: args}
}

// Accessors.

func (t *Type) Kind() Kind            { return t.kind }
func (t *Type) Name() string          { return t.name }
func (t *Type) Elem() *Type           { return t.elem }
func (t *Type) Pointee() *Type        { return t.pointee }
func (t *Type) Return() *Type         { return t.ret }
func (t *Type) Params() []*Type       { return t.params }
func (t *Type) SmartKind() SmartKind  { return t.smartKind }
func (t *Type) Left() *Type           { return t.left }
func (t *Type) Right() *Type          { return t.right }
func (t *Type) TemplateArgs() []*Type { return t.templateArgs }
func (t *Type) IsUnsafe() bool        { return t.isUnsafe }
func (t *Type) IsLiteralZero() bool   { return t.isLiteralZero }
