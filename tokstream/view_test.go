package tokstream

import (
	"testing"

	"github.com/theQuarky/tsppc/token"
)

func toks(kinds ...token.Kind) []token.Token {
	out := make([]token.Token, len(kinds))
	for i, k := range kinds {
		out[i] = token.Token{Kind: k}
	}
	return out
}

func TestPeekAndAdvance(t *testing.T) {
	v := New(toks(token.LET, token.IDENTIFIER, token.EOF))

	if v.Peek().Kind != token.LET {
		t.Fatalf("Peek() = %v, want LET", v.Peek().Kind)
	}
	if v.PeekAt(1).Kind != token.IDENTIFIER {
		t.Fatalf("PeekAt(1) = %v, want IDENTIFIER", v.PeekAt(1).Kind)
	}

	v.Advance()
	if v.Peek().Kind != token.IDENTIFIER {
		t.Fatalf("after Advance(), Peek() = %v, want IDENTIFIER", v.Peek().Kind)
	}
	if v.Previous().Kind != token.LET {
		t.Fatalf("Previous() = %v, want LET", v.Previous().Kind)
	}
}

func TestAdvancePastEndStaysAtEOF(t *testing.T) {
	v := New(toks(token.EOF))
	v.Advance()
	v.Advance()
	if !v.IsAtEnd() {
		t.Fatal("expected IsAtEnd() to stay true once EOF is reached")
	}
}

func TestMatch(t *testing.T) {
	v := New(toks(token.PLUS, token.EOF))

	if _, ok := v.Match(token.MINUS); ok {
		t.Fatal("Match(MINUS) unexpectedly succeeded")
	}
	if v.Peek().Kind != token.PLUS {
		t.Fatal("failed Match() should not consume")
	}

	if _, ok := v.Match(token.MINUS, token.PLUS); !ok {
		t.Fatal("Match(MINUS, PLUS) should succeed on PLUS")
	}
	if v.Peek().Kind != token.EOF {
		t.Fatal("successful Match() should consume")
	}
}

func TestSaveRestore(t *testing.T) {
	v := New(toks(token.LET, token.IDENTIFIER, token.EOF))
	mark := v.Save()
	v.Advance()
	v.Advance()
	v.Restore(mark)
	if v.Peek().Kind != token.LET {
		t.Fatalf("after Restore(), Peek() = %v, want LET", v.Peek().Kind)
	}
}

func TestConsume(t *testing.T) {
	v := New(toks(token.LET, token.EOF))
	if _, ok := v.Consume(token.IDENTIFIER); ok {
		t.Fatal("Consume(IDENTIFIER) unexpectedly succeeded")
	}
	if v.Peek().Kind != token.LET {
		t.Fatal("failed Consume() should not advance the cursor")
	}
	if _, ok := v.Consume(token.LET); !ok {
		t.Fatal("Consume(LET) should succeed")
	}
}
