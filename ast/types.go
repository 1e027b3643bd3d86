package ast

// Type nodes are parsed, unresolved type annotations. The checker turns
// these into resolved types (see package typing); the AST form only records
// what the parser saw.

type PrimitiveType struct {
	Base
	Name string // "void", "int", "float", "boolean", "string"
}

func (*PrimitiveType) typeNode() {}

type NamedType struct {
	Base
	Name string
}

func (*NamedType) typeNode() {}

// QualifiedType is a dotted name: identifier (. identifier)+.
type QualifiedType struct {
	Base
	Parts []string
}

func (*QualifiedType) typeNode() {}

type ArrayType struct {
	Base
	Elem Type
	Size Expr // optional, nil if unsized
}

func (*ArrayType) typeNode() {}

type PointerKind int

const (
	PointerSafe PointerKind = iota
	PointerUnsafe
	PointerAligned
)

type PointerType struct {
	Base
	Pointee Type
	Kind    PointerKind
	Align   Expr // set only when Kind == PointerAligned
}

func (*PointerType) typeNode() {}

type ReferenceType struct {
	Base
	Target Type
}

func (*ReferenceType) typeNode() {}

type FunctionType struct {
	Base
	Params []Type
	Return Type
}

func (*FunctionType) typeNode() {}

type SmartKind int

const (
	SmartShared SmartKind = iota
	SmartUnique
	SmartWeak
)

type SmartPointerType struct {
	Base
	Pointee Type
	Kind    SmartKind
}

func (*SmartPointerType) typeNode() {}

type UnionType struct {
	Base
	Left  Type
	Right Type
}

func (*UnionType) typeNode() {}

type TemplateType struct {
	Base
	BaseName string
	Args     []Type
}

func (*TemplateType) typeNode() {}

// GenericParamType appears only within a generic declaration's parameter
// list, never as a use-site type.
type GenericParamType struct {
	Base
	Name        string
	Constraints []string
}

func (*GenericParamType) typeNode() {}

// BuiltinConstraint names a built-in generic constraint (e.g. Numeric,
// Comparable) used in a `where` clause or inline after a generic parameter.
type BuiltinConstraint struct {
	Base
	Name string
}

func (*BuiltinConstraint) typeNode() {}

// Type is an alias kept distinct from Expr/Stmt/Decl for readability at
// call sites throughout the parser and checker.
type Type = TypeExpr
