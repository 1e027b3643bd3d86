// Package lexer turns TSPP source text into a stream of tokens.  Lexing
// itself sits outside the parser/checker/lowerer pipeline this module
// exists to implement, but a concrete lexer is required to drive that
// pipeline end to end, so this package supplies one.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/theQuarky/tsppc/token"
)

// Lexer tokenizes a single source file on demand.
type Lexer struct {
	file     string
	r        *bufio.Reader
	buf      *strings.Builder
	line     int
	col      int
	startLn  int
	startCol int
}

// New creates a lexer reading from r, attributing all positions to file.
func New(file string, r io.Reader) *Lexer {
	return &Lexer{
		file: file,
		r:    bufio.NewReader(r),
		buf:  &strings.Builder{},
		line: 1,
		col:  1,
	}
}

// Error is a lexical error tied to a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Next returns the next token in the stream.  Once the input is exhausted
// it returns an EOF token forever.
func (l *Lexer) Next() (token.Token, error) {
	for {
		c, ok := l.peek()
		if !ok {
			return l.makeToken(token.EOF), nil
		}

		switch {
		case c == '\n' || c == '\t' || c == ' ' || c == '\r':
			l.skip()
		case c == '/':
			if tok, err, handled := l.lexCommentOrSlash(); handled {
				return tok, err
			}
		case c == '#':
			return l.lexAttribute()
		case c == '"':
			return l.lexString()
		case isDigit(c):
			return l.lexNumber()
		case isIdentStart(c):
			return l.lexIdentOrKeyword()
		default:
			return l.lexOperator()
		}
	}
}

// symbols lists operator/delimiter lexemes ordered longest-first so the
// greedy scanner in lexOperator always matches the longest valid symbol.
var symbols = []struct {
	text string
	kind token.Kind
}{
	{"<<", token.LSHIFT}, {">>", token.RSHIFT},
	{"&&", token.AND_AND}, {"||", token.OR_OR},
	{"==", token.EQUALS_EQUALS}, {"!=", token.EXCLAIM_EQUALS},
	{"<=", token.LESS_EQUALS}, {">=", token.GREATER_EQUALS},
	{"+=", token.PLUS_EQUALS}, {"-=", token.MINUS_EQUALS},
	{"*=", token.STAR_EQUALS}, {"/=", token.SLASH_EQUALS},
	{"%=", token.PERCENT_EQUALS},
	{"++", token.PLUS_PLUS}, {"--", token.MINUS_MINUS},
	{"->", token.ARROW},
	{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR}, {"/", token.SLASH},
	{"%", token.PERCENT}, {"&", token.AMPERSAND}, {"|", token.PIPE},
	{"^", token.CARET}, {"~", token.TILDE},
	{"!", token.EXCLAIM}, {"=", token.EQUALS},
	{"<", token.LESS}, {">", token.GREATER},
	{"?", token.QUESTION}, {":", token.COLON}, {".", token.DOT}, {"@", token.AT},
	{"(", token.LEFT_PAREN}, {")", token.RIGHT_PAREN},
	{"{", token.LEFT_BRACE}, {"}", token.RIGHT_BRACE},
	{"[", token.LEFT_BRACKET}, {"]", token.RIGHT_BRACKET},
	{";", token.SEMICOLON}, {",", token.COMMA},
}

func (l *Lexer) lexOperator() (token.Token, error) {
	l.mark()
	l.eat()

	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		if _, k := matchSymbol(l.buf.String() + string(c)); k != token.ERROR_TOKEN {
			l.eat()
		} else {
			break
		}
	}

	text, k := matchSymbol(l.buf.String())
	if k == token.ERROR_TOKEN {
		return token.Token{}, &Error{Pos: l.startPos(), Msg: fmt.Sprintf("unrecognized symbol %q", text)}
	}
	return l.makeToken(k), nil
}

func matchSymbol(s string) (string, token.Kind) {
	for _, sym := range symbols {
		if sym.text == s {
			return s, sym.kind
		}
	}
	return s, token.ERROR_TOKEN
}

// lexAttribute lexes a `#name` storage/modifier keyword.
func (l *Lexer) lexAttribute() (token.Token, error) {
	l.mark()
	l.eat() // consume '#'

	for {
		c, ok := l.peek()
		if !ok || !(isIdentPart(c)) {
			break
		}
		l.eat()
	}

	name := strings.TrimPrefix(l.buf.String(), "#")
	if k, ok := token.Attributes[name]; ok {
		return l.makeToken(k), nil
	}
	return l.makeToken(token.ATTRIBUTE), nil
}

func (l *Lexer) lexIdentOrKeyword() (token.Token, error) {
	l.mark()
	l.eat()

	for {
		c, ok := l.peek()
		if !ok || !(isIdentPart(c)) {
			break
		}
		l.eat()
	}

	text := l.buf.String()
	if k, ok := token.Keywords[text]; ok {
		return l.makeToken(k), nil
	}
	return l.makeToken(token.IDENTIFIER), nil
}

func (l *Lexer) lexNumber() (token.Token, error) {
	l.mark()
	l.eat()

	isFloat, hasExp := false, false
	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		switch {
		case isDigit(c):
			l.eat()
		case c == '.' && !isFloat:
			isFloat = true
			l.eat()
		case (c == 'e' || c == 'E') && !hasExp:
			isFloat, hasExp = true, true
			l.eat()
			if n, ok := l.peek(); ok && (n == '+' || n == '-') {
				l.eat()
			}
		default:
			return l.makeToken(token.NUMBER), nil
		}
	}
	return l.makeToken(token.NUMBER), nil
}

func (l *Lexer) lexString() (token.Token, error) {
	l.mark()
	l.eat() // opening quote

	for {
		c, ok := l.peek()
		if !ok {
			return token.Token{}, &Error{Pos: l.startPos(), Msg: "unterminated string literal"}
		}
		if c == '"' {
			l.eat()
			return l.makeToken(token.STRING_LITERAL), nil
		}
		if c == '\\' {
			l.eat()
			if _, ok := l.peek(); ok {
				l.eat()
			}
			continue
		}
		l.eat()
	}
}

// lexCommentOrSlash disambiguates `//`, `/* */`, `/=` and `/` at the current
// position.  handled is false when the caller should keep scanning (the
// comment was consumed and produced no token).
func (l *Lexer) lexCommentOrSlash() (token.Token, error, bool) {
	l.mark()
	l.eat() // first '/'

	c, ok := l.peek()
	if !ok {
		return l.makeToken(token.SLASH), nil, true
	}

	switch c {
	case '/':
		for {
			c, ok := l.peek()
			if !ok || c == '\n' {
				break
			}
			l.skip()
		}
		l.buf.Reset()
		return token.Token{}, nil, false
	case '*':
		l.eat()
		for {
			c, ok := l.peek()
			if !ok {
				return token.Token{}, &Error{Pos: l.startPos(), Msg: "unterminated block comment"}, true
			}
			l.eat()
			if c == '*' {
				if n, ok := l.peek(); ok && n == '/' {
					l.eat()
					break
				}
			}
		}
		l.buf.Reset()
		return token.Token{}, nil, false
	case '=':
		l.eat()
		return l.makeToken(token.SLASH_EQUALS), nil, true
	default:
		return l.makeToken(token.SLASH), nil, true
	}
}

func (l *Lexer) mark() {
	l.startLn = l.line
	l.startCol = l.col
}

func (l *Lexer) startPos() token.Position {
	return token.Position{File: l.file, Line: l.startLn, Column: l.startCol}
}

func (l *Lexer) makeToken(k token.Kind) token.Token {
	text := l.buf.String()
	l.buf.Reset()
	return token.Token{Kind: k, Lexeme: text, Position: l.startPos()}
}

func (l *Lexer) eat() {
	c, _, err := l.r.ReadRune()
	if err != nil {
		return
	}
	l.advance(c)
	l.buf.WriteRune(c)
}

func (l *Lexer) skip() {
	c, _, err := l.r.ReadRune()
	if err != nil {
		return
	}
	l.advance(c)
}

func (l *Lexer) peek() (rune, bool) {
	c, _, err := l.r.ReadRune()
	if err != nil {
		return 0, false
	}
	_ = l.r.UnreadRune()
	return c, true
}

func (l *Lexer) advance(c rune) {
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c rune) bool { return unicode.IsLetter(c) || c == '_' }
func isIdentPart(c rune) bool  { return isIdentStart(c) || isDigit(c) }

// All lexes every token in r up front, for callers (the token-stream view)
// that want random-access over the full token sequence rather than a pull
// interface.
func All(file string, r io.Reader) ([]token.Token, error) {
	l := New(file, r)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}
