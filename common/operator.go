package common

import "github.com/theQuarky/tsppc/token"

// OperatorCategory classifies a binary or unary operator token by the kind
// of resolved-type rule the checker applies to it.  Unlike a conventional
// compiler with overloadable operator methods, this language has no
// operator dispatch table: every operator's typing rule is fixed by its
// category.
type OperatorCategory int

const (
	OpUnknown OperatorCategory = iota
	OpArithmetic
	OpBitwise
	OpShift
	OpComparison
	OpEquality
	OpLogical
	OpAssignment
	OpCompoundAssignment
)

// CategoryOf returns the category a binary operator token belongs to.
func CategoryOf(k token.Kind) OperatorCategory {
	switch k {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return OpArithmetic
	case token.AMPERSAND, token.PIPE, token.CARET, token.TILDE:
		return OpBitwise
	case token.LSHIFT, token.RSHIFT:
		return OpShift
	case token.LESS, token.GREATER, token.LESS_EQUALS, token.GREATER_EQUALS:
		return OpComparison
	case token.EQUALS_EQUALS, token.EXCLAIM_EQUALS:
		return OpEquality
	case token.AND_AND, token.OR_OR, token.EXCLAIM:
		return OpLogical
	case token.EQUALS:
		return OpAssignment
	case token.PLUS_EQUALS, token.MINUS_EQUALS, token.STAR_EQUALS,
		token.SLASH_EQUALS, token.PERCENT_EQUALS:
		return OpCompoundAssignment
	}
	return OpUnknown
}

// IsArithmetic reports whether a token is a binary arithmetic operator.
func IsArithmetic(k token.Kind) bool { return CategoryOf(k) == OpArithmetic }

// IsComparison reports whether a token is a relational or equality operator.
func IsComparison(k token.Kind) bool {
	c := CategoryOf(k)
	return c == OpComparison || c == OpEquality
}

// IsLogical reports whether a token is a boolean logical operator.
func IsLogical(k token.Kind) bool { return CategoryOf(k) == OpLogical }

// IsBitwise reports whether a token is a bitwise or shift operator.
func IsBitwise(k token.Kind) bool {
	c := CategoryOf(k)
	return c == OpBitwise || c == OpShift
}

// CompoundBase returns the underlying arithmetic operator a compound
// assignment token desugars to, e.g. PLUS_EQUALS -> PLUS.
func CompoundBase(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.PLUS_EQUALS:
		return token.PLUS, true
	case token.MINUS_EQUALS:
		return token.MINUS, true
	case token.STAR_EQUALS:
		return token.STAR, true
	case token.SLASH_EQUALS:
		return token.SLASH, true
	case token.PERCENT_EQUALS:
		return token.PERCENT, true
	}
	return token.ERROR_TOKEN, false
}
