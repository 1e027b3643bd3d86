package ast

import "github.com/theQuarky/tsppc/token"

type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBool
	LitNull
)

type Literal struct {
	Base
	Kind LiteralKind
	Text string // raw lexeme, parsed lazily by the checker/lowerer
}

func (*Literal) exprNode() {}

type Identifier struct {
	Base
	Name string
}

func (*Identifier) exprNode() {}

type This struct {
	Base
}

func (*This) exprNode() {}

type BinaryExpr struct {
	Base
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

type UnaryExpr struct {
	Base
	Op      token.Kind
	Operand Expr
	Postfix bool // true for postfix ++/--
}

func (*UnaryExpr) exprNode() {}

type ArrayLiteral struct {
	Base
	Elements []Expr
}

func (*ArrayLiteral) exprNode() {}

// ConditionalExpr is the ternary `cond ? then : els` expression.
type ConditionalExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) exprNode() {}

// AssignExpr covers both plain `=` and compound assignment. Op is the
// compound operator's token kind (e.g. token.PLUS_EQUALS) or token.EQUALS
// for a plain assignment.
type AssignExpr struct {
	Base
	Op     token.Kind
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

type CallExpr struct {
	Base
	Callee   Expr
	TypeArgs []Type // optional, from f<T>(...)
	Args     []Expr
}

func (*CallExpr) exprNode() {}

// MemberExpr covers both `.` (value/reference) and `@` (pointer-dereferencing)
// member access.
type MemberExpr struct {
	Base
	Object Expr
	Name   string
	Arrow  bool // true for `@`, false for `.`
}

func (*MemberExpr) exprNode() {}

type IndexExpr struct {
	Base
	Array Expr
	Index Expr
}

func (*IndexExpr) exprNode() {}

type NewExpr struct {
	Base
	Type Type
	Args []Expr
}

func (*NewExpr) exprNode() {}

type CastExpr struct {
	Base
	Target Type
	Value  Expr
}

func (*CastExpr) exprNode() {}

type CompileTimeKind int

const (
	CompileSizeof CompileTimeKind = iota
	CompileAlignof
	CompileTypeof
	CompileConst
)

// CompileTimeExpr covers sizeof<T>, alignof<T>, typeof(expr), and
// const-evaluated expressions.
type CompileTimeExpr struct {
	Base
	Kind     CompileTimeKind
	TypeArg  Type // set for Sizeof/Alignof
	ValueArg Expr // set for Typeof/Const
}

func (*CompileTimeExpr) exprNode() {}

// TemplateSpecExpr is a template specialization reference used as a value,
// e.g. `Box<int>` appearing where an expression is expected (constructor
// reference).
type TemplateSpecExpr struct {
	Base
	BaseName string
	Args     []Type
}

func (*TemplateSpecExpr) exprNode() {}

// PointerOfExpr is the prefix `@expr` address-of operator.
type PointerOfExpr struct {
	Base
	Operand Expr
}

func (*PointerOfExpr) exprNode() {}

// FuncExpr is an anonymous function expression.
type FuncExpr struct {
	Base
	Params     []Param
	ReturnType Type
	Body       *Block
}

func (*FuncExpr) exprNode() {}
