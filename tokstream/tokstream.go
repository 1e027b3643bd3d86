// Package tokstream provides a random-access cursor over a fully lexed
// token sequence.  The parser uses it to look ahead arbitrarily and to
// save/restore a position in O(1), which it needs to disambiguate
// constructs like a generic call `f<T>(x)` from a pair of comparisons.
package tokstream

import "github.com/theQuarky/tsppc/token"

// View is a cursor over a fixed token slice.  It never mutates the
// underlying slice; all movement is through the cursor's own index.
type View struct {
	toks []token.Token
	pos  int
}

// New creates a view over toks, positioned at the first token.  toks must
// end with an EOF token; callers that lex via lexer.All already satisfy
// this.
func New(toks []token.Token) *View {
	return &View{toks: toks}
}

// Peek returns the token at the current position without consuming it.
func (v *View) Peek() token.Token {
	return v.at(v.pos)
}

// PeekAt returns the token offset tokens ahead of the current position
// without consuming anything.
func (v *View) PeekAt(offset int) token.Token {
	return v.at(v.pos + offset)
}

// PeekNext returns the token one past the current position.
func (v *View) PeekNext() token.Token {
	return v.PeekAt(1)
}

// Previous returns the token immediately before the current position.
func (v *View) Previous() token.Token {
	return v.at(v.pos - 1)
}

// Advance consumes and returns the current token.
func (v *View) Advance() token.Token {
	t := v.Peek()
	if !v.IsAtEnd() {
		v.pos++
	}
	return t
}

// Check reports whether the current token has the given kind, without
// consuming it.
func (v *View) Check(k token.Kind) bool {
	return v.Peek().Kind == k
}

// Match consumes and returns the current token if it has one of the given
// kinds, advancing the cursor; otherwise it leaves the cursor untouched and
// returns false.
func (v *View) Match(kinds ...token.Kind) (token.Token, bool) {
	cur := v.Peek()
	for _, k := range kinds {
		if cur.Kind == k {
			v.Advance()
			return cur, true
		}
	}
	return token.Token{}, false
}

// Consume requires the current token to have kind k, advances past it, and
// returns it.  If the current token does not match, ok is false and the
// cursor is left unmoved so the caller can report a diagnostic at the
// offending token.
func (v *View) Consume(k token.Kind) (token.Token, bool) {
	if v.Check(k) {
		return v.Advance(), true
	}
	return v.Peek(), false
}

// IsAtEnd reports whether the cursor has reached the terminal EOF token.
func (v *View) IsAtEnd() bool {
	return v.Peek().Kind == token.EOF
}

// Position is an opaque, O(1)-restorable cursor position. It is a plain
// integer index; callers should not assume anything else about its
// representation.
type Position int

// Save captures the current cursor position.
func (v *View) Save() Position {
	return Position(v.pos)
}

// Restore resets the cursor to a previously saved position.
func (v *View) Restore(p Position) {
	v.pos = int(p)
}

func (v *View) at(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(v.toks) {
		return v.toks[len(v.toks)-1]
	}
	return v.toks[i]
}
