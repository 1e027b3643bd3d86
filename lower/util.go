package lower

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func isFloatValue(v value.Value) bool {
	_, ok := v.Type().(*types.FloatType)
	return ok
}

func isFloatLiteral(text string) bool {
	return strings.ContainsAny(text, ".eE")
}

func parseFloatLiteral(text string) float64 {
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

// parseIntLiteral parses a decimal integer lexeme, matching the checker's
// own literal scanner.
func parseIntLiteral(text string) int64 {
	var n int64
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

// unquote strips the surrounding quotes from a string-literal lexeme and
// resolves its backslash escapes.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return unescape(text)
}

func newIncoming(v value.Value, pred *ir.Block) *ir.Incoming {
	return ir.NewIncoming(v, pred)
}

func newParam(name string, t types.Type) *ir.Param {
	return ir.NewParam(name, t)
}
