// Package token defines the closed enumeration of lexical token kinds
// produced by the lexer and consumed by the parser's token-stream view.
package token

import "fmt"

// Kind is the type of a single lexical token.
type Kind int

// Enumeration of all possible token kinds, grouped by category.  Order
// within a category carries no semantic meaning; the BEGIN/END markers are
// used by the classification helpers below.
const (
	// Declaration keywords
	declBegin Kind = iota
	LET
	CONST
	FUNCTION
	CLASS
	INTERFACE
	ENUM
	CONSTRUCTOR
	TYPEDEF
	NAMESPACE
	TEMPLATE
	NEW
	GET
	SET
	CAST
	declEnd

	// Generic-related contextual keywords
	genericBegin
	WHERE
	THROWS
	genericEnd

	// Access modifiers
	accessBegin
	PUBLIC
	PRIVATE
	PROTECTED
	accessEnd

	// Control flow keywords
	controlBegin
	IF
	ELSE
	SWITCH
	CASE
	DEFAULT
	WHILE
	DO
	FOR
	OF
	BREAK
	CONTINUE
	RETURN
	TRY
	CATCH
	FINALLY
	THROW
	controlEnd

	// Primitive type keywords
	typeBegin
	VOID
	INT
	FLOAT
	BOOLEAN
	STRING
	typeEnd

	// Storage / attribute keywords (spelled with a leading '#' in source)
	storageBegin
	STACK
	HEAP
	STATIC
	SHARED
	UNIQUE
	WEAK
	ATTRIBUTE
	storageEnd

	// Function/parameter modifiers
	funcModBegin
	INLINE
	VIRTUAL
	UNSAFE
	SIMD
	ALIGNED_ATTR
	REF
	funcModEnd

	// Class modifiers
	classModBegin
	PACKED
	ABSTRACT
	ZEROCAST
	EXTENDS
	IMPLEMENTS
	classModEnd

	// Compile-time keywords
	compileBegin
	SIZEOF
	ALIGNOF
	TYPEOF
	ASM
	compileEnd

	// Literals and values
	literalBegin
	IDENTIFIER
	NUMBER
	STRING_LITERAL
	TRUE
	FALSE
	NULL_VALUE
	THIS
	literalEnd

	// Operators
	operatorBegin
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	AMPERSAND
	PIPE
	CARET
	TILDE
	LSHIFT
	RSHIFT
	EXCLAIM
	AND_AND
	OR_OR
	EQUALS
	EQUALS_EQUALS
	EXCLAIM_EQUALS
	LESS
	GREATER
	LESS_EQUALS
	GREATER_EQUALS
	PLUS_EQUALS
	MINUS_EQUALS
	STAR_EQUALS
	SLASH_EQUALS
	PERCENT_EQUALS
	PLUS_PLUS
	MINUS_MINUS
	QUESTION
	COLON
	ARROW
	DOT
	AT
	operatorEnd

	// Delimiters
	delimiterBegin
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	SEMICOLON
	COMMA
	delimiterEnd

	ERROR_TOKEN
	EOF
)

var names = map[Kind]string{
	LET: "let", CONST: "const", FUNCTION: "function", CLASS: "class",
	INTERFACE: "interface", ENUM: "enum", CONSTRUCTOR: "constructor",
	TYPEDEF: "typedef", NAMESPACE: "namespace", TEMPLATE: "template",
	NEW: "new", GET: "get", SET: "set", CAST: "cast",
	WHERE: "where", THROWS: "throws",
	PUBLIC: "public", PRIVATE: "private", PROTECTED: "protected",
	IF: "if", ELSE: "else", SWITCH: "switch", CASE: "case", DEFAULT: "default",
	WHILE: "while", DO: "do", FOR: "for", OF: "of", BREAK: "break",
	CONTINUE: "continue", RETURN: "return", TRY: "try", CATCH: "catch",
	FINALLY: "finally", THROW: "throw",
	VOID: "void", INT: "int", FLOAT: "float", BOOLEAN: "boolean", STRING: "string",
	STACK: "#stack", HEAP: "#heap", STATIC: "#static", SHARED: "#shared",
	UNIQUE: "#unique", WEAK: "#weak", ATTRIBUTE: "#",
	INLINE: "#inline", VIRTUAL: "#virtual", UNSAFE: "#unsafe", SIMD: "#simd",
	ALIGNED_ATTR: "#aligned", REF: "ref",
	PACKED: "#packed", ABSTRACT: "#abstract", ZEROCAST: "#zerocast",
	EXTENDS: "extends", IMPLEMENTS: "implements",
	SIZEOF: "#sizeof", ALIGNOF: "#alignof", TYPEOF: "#typeof", ASM: "#asm",
	IDENTIFIER: "IDENTIFIER", NUMBER: "NUMBER", STRING_LITERAL: "STRING_LITERAL",
	TRUE: "true", FALSE: "false", NULL_VALUE: "null", THIS: "this",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	AMPERSAND: "&", PIPE: "|", CARET: "^", TILDE: "~",
	LSHIFT: "<<", RSHIFT: ">>",
	EXCLAIM: "!", AND_AND: "&&", OR_OR: "||",
	EQUALS: "=", EQUALS_EQUALS: "==", EXCLAIM_EQUALS: "!=",
	LESS: "<", GREATER: ">", LESS_EQUALS: "<=", GREATER_EQUALS: ">=",
	PLUS_EQUALS: "+=", MINUS_EQUALS: "-=", STAR_EQUALS: "*=",
	SLASH_EQUALS: "/=", PERCENT_EQUALS: "%=",
	PLUS_PLUS: "++", MINUS_MINUS: "--",
	QUESTION: "?", COLON: ":", ARROW: "->", DOT: ".", AT: "@",
	LEFT_PAREN: "(", RIGHT_PAREN: ")", LEFT_BRACE: "{", RIGHT_BRACE: "}",
	LEFT_BRACKET: "[", RIGHT_BRACKET: "]", SEMICOLON: ";", COMMA: ",",
	ERROR_TOKEN: "ERROR", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps every reserved word to its token kind.  Words not present
// here lex as IDENTIFIER.
var Keywords = map[string]Kind{
	"let": LET, "const": CONST, "function": FUNCTION, "class": CLASS,
	"interface": INTERFACE, "enum": ENUM, "constructor": CONSTRUCTOR,
	"typedef": TYPEDEF, "namespace": NAMESPACE, "template": TEMPLATE,
	"new": NEW, "get": GET, "set": SET, "cast": CAST,
	"where": WHERE, "throws": THROWS,
	"public": PUBLIC, "private": PRIVATE, "protected": PROTECTED,
	"if": IF, "else": ELSE, "switch": SWITCH, "case": CASE, "default": DEFAULT,
	"while": WHILE, "do": DO, "for": FOR, "of": OF, "break": BREAK,
	"continue": CONTINUE, "return": RETURN, "try": TRY, "catch": CATCH,
	"finally": FINALLY, "throw": THROW,
	"void": VOID, "int": INT, "float": FLOAT, "boolean": BOOLEAN, "string": STRING,
	"ref": REF, "extends": EXTENDS, "implements": IMPLEMENTS,
	"true": TRUE, "false": FALSE, "null": NULL_VALUE, "this": THIS,
}

// Attributes maps the `#name` spelling (without the leading '#') of every
// attribute keyword to its token kind.  These are only recognized when
// preceded by '#' in source text.
var Attributes = map[string]Kind{
	"stack": STACK, "heap": HEAP, "static": STATIC, "shared": SHARED,
	"unique": UNIQUE, "weak": WEAK,
	"inline": INLINE, "virtual": VIRTUAL, "unsafe": UNSAFE, "simd": SIMD,
	"aligned": ALIGNED_ATTR,
	"packed": PACKED, "abstract": ABSTRACT, "zerocast": ZEROCAST,
	"sizeof": SIZEOF, "alignof": ALIGNOF, "typeof": TYPEOF, "asm": ASM,
}

// IsDeclStart reports whether a token kind begins a top-level declaration,
// per the parser's fixed lead-token dispatch set.
func IsDeclStart(k Kind) bool {
	switch k {
	case LET, CONST, FUNCTION, CLASS, INTERFACE, ENUM, NAMESPACE, TYPEDEF,
		PUBLIC, PRIVATE, PROTECTED, ZEROCAST,
		INLINE, VIRTUAL, UNSAFE, SIMD, ABSTRACT, STATIC:
		return true
	}
	return false
}

// IsSyncPoint reports whether a token kind is one of the synchronization
// anchors the parser's error-recovery routine scans for.
func IsSyncPoint(k Kind) bool {
	switch k {
	case CLASS, FUNCTION, LET, CONST, IF, WHILE, RETURN, LEFT_BRACE, RIGHT_BRACE:
		return true
	}
	return false
}

// Position is the (file, line, column) triple carried by every token and,
// transitively, every AST node.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is a single lexical token: a kind, the exact source text it was
// lexed from, and its starting position.
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
