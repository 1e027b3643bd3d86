package lexer

import (
	"strings"
	"testing"

	"github.com/theQuarky/tsppc/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestAll(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"ident", "foo", []token.Kind{token.IDENTIFIER, token.EOF}},
		{"keyword_let", "let", []token.Kind{token.LET, token.EOF}},
		{"number_int", "123", []token.Kind{token.NUMBER, token.EOF}},
		{"number_float", "1.5e-3", []token.Kind{token.NUMBER, token.EOF}},
		{"string", `"hi"`, []token.Kind{token.STRING_LITERAL, token.EOF}},
		{"line_comment", "let x // trailing\n", []token.Kind{token.LET, token.IDENTIFIER, token.EOF}},
		{"block_comment", "let/* c */x", []token.Kind{token.LET, token.IDENTIFIER, token.EOF}},
		{
			"operators",
			"+ - == != <= && ||",
			[]token.Kind{
				token.PLUS, token.MINUS, token.EQUALS_EQUALS, token.EXCLAIM_EQUALS,
				token.LESS_EQUALS, token.AND_AND, token.OR_OR, token.EOF,
			},
		},
		{"attribute", "#inline", []token.Kind{token.INLINE, token.EOF}},
		{
			"compound_assign",
			"x += 1",
			[]token.Kind{token.IDENTIFIER, token.PLUS_EQUALS, token.NUMBER, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := All("test.tspp", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := All("test.tspp", strings.NewReader(`"unterminated`))
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestPositionTracking(t *testing.T) {
	toks, err := All("test.tspp", strings.NewReader("let\nx"))
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if toks[0].Position.Line != 1 {
		t.Errorf("`let` line = %d, want 1", toks[0].Position.Line)
	}
	if toks[1].Position.Line != 2 {
		t.Errorf("`x` line = %d, want 2", toks[1].Position.Line)
	}
}
