package parser

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/token"
)

// parseExpr is the entry point for expression parsing: level 1, assignment.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// level 1: assignment, right-associative.
func (p *Parser) parseAssignment() ast.Expr {
	start := p.here()
	lhs := p.parseTernary()

	if tok, ok := p.match(token.EQUALS, token.PLUS_EQUALS, token.MINUS_EQUALS,
		token.STAR_EQUALS, token.SLASH_EQUALS, token.PERCENT_EQUALS); ok {
		rhs := p.parseAssignment()
		return &ast.AssignExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Op: tok.Kind, Target: lhs, Value: rhs}
	}
	return lhs
}

// level 2: ternary, right-associative.
func (p *Parser) parseTernary() ast.Expr {
	start := p.here()
	cond := p.parseLogicalOr()

	if _, ok := p.match(token.QUESTION); ok {
		then := p.parseAssignment()
		p.consume(token.COLON, "in conditional expression")
		els := p.parseAssignment()
		return &ast.ConditionalExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Cond: cond, Then: then, Else: els}
	}
	return cond
}

// levels 3-12: left-associative binary operators, climbing precedence.
func (p *Parser) parseLogicalOr() ast.Expr  { return p.parseBinaryLevel(3) }

var binLevels = map[int][]token.Kind{
	3:  {token.OR_OR},
	4:  {token.AND_AND},
	5:  {token.PIPE},
	6:  {token.CARET},
	7:  {token.AMPERSAND},
	8:  {token.EQUALS_EQUALS, token.EXCLAIM_EQUALS},
	9:  {token.LESS, token.LESS_EQUALS, token.GREATER, token.GREATER_EQUALS},
	10: {token.LSHIFT, token.RSHIFT},
	11: {token.PLUS, token.MINUS},
	12: {token.STAR, token.SLASH, token.PERCENT},
}

// parseBinaryLevel parses a left-associative binary expression at the given
// precedence level, recursing into the next-higher level for its operands.
func (p *Parser) parseBinaryLevel(level int) ast.Expr {
	if level > 12 {
		return p.parseUnary()
	}

	start := p.here()
	lhs := p.parseBinaryLevel(level + 1)

	for {
		tok, ok := p.match(binLevels[level]...)
		if !ok {
			return lhs
		}
		rhs := p.parseBinaryLevel(level + 1)
		lhs = &ast.BinaryExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Op: tok.Kind, Left: lhs, Right: rhs}
	}
}

// level 13: prefix unary.
func (p *Parser) parseUnary() ast.Expr {
	start := p.here()
	if tok, ok := p.match(token.MINUS, token.EXCLAIM, token.TILDE, token.PLUS_PLUS,
		token.MINUS_MINUS, token.STAR, token.PLUS); ok {
		operand := p.parseUnary()
		return &ast.UnaryExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Op: tok.Kind, Operand: operand}
	}
	if _, ok := p.match(token.AT); ok {
		operand := p.parseUnary()
		return &ast.PointerOfExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Operand: operand}
	}
	return p.parsePostfix()
}

// level 14: postfix call/index/member/increment.
func (p *Parser) parsePostfix() ast.Expr {
	start := p.here()
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(token.LEFT_PAREN):
			expr = p.parseCallTail(start, expr, nil)
		case p.check(token.LEFT_BRACKET):
			p.advance()
			idx := p.parseExpr()
			p.consume(token.RIGHT_BRACKET, "to close index expression")
			expr = &ast.IndexExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Array: expr, Index: idx}
		case p.check(token.DOT):
			p.advance()
			name, _ := p.consume(token.IDENTIFIER, "after '.'")
			expr = &ast.MemberExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Object: expr, Name: name.Lexeme, Arrow: false}
		case p.check(token.AT) && p.peekAt(1).Kind == token.IDENTIFIER:
			p.advance()
			name, _ := p.consume(token.IDENTIFIER, "after '@'")
			expr = &ast.MemberExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Object: expr, Name: name.Lexeme, Arrow: true}
		case p.check(token.LESS):
			if call, ok := p.tryGenericCall(start, expr); ok {
				expr = call
			} else {
				return expr
			}
		case p.check(token.PLUS_PLUS) || p.check(token.MINUS_MINUS):
			tok := p.advance()
			expr = &ast.UnaryExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Op: tok.Kind, Operand: expr, Postfix: true}
		default:
			return expr
		}
	}
}

// tryGenericCall disambiguates `f<T>(...)` from a less-than comparison by
// speculatively scanning a type-argument list; on failure it restores the
// cursor so the caller can fall back to treating `<` as an operator.
func (p *Parser) tryGenericCall(start token.Position, callee ast.Expr) (ast.Expr, bool) {
	mark := p.save()
	p.advance() // consume '<'

	var typeArgs []ast.Type
	for {
		if !p.check(token.IDENTIFIER) && !isPrimitiveTypeKeyword(p.peek().Kind) {
			p.restore(mark)
			return nil, false
		}
		typeArgs = append(typeArgs, p.parseType())
		if _, ok := p.match(token.COMMA); ok {
			continue
		}
		break
	}

	if _, ok := p.match(token.GREATER); !ok {
		p.restore(mark)
		return nil, false
	}
	if !p.check(token.LEFT_PAREN) {
		p.restore(mark)
		return nil, false
	}

	return p.parseCallTail(start, callee, typeArgs), true
}

func (p *Parser) parseCallTail(start token.Position, callee ast.Expr, typeArgs []ast.Type) ast.Expr {
	p.consume(token.LEFT_PAREN, "to begin call arguments")
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.parseExpr())
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "to close call arguments")
	return &ast.CallExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Callee: callee, TypeArgs: typeArgs, Args: args}
}

// level 15: primary.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.here()

	switch {
	case p.check(token.NUMBER):
		tok := p.advance()
		return &ast.Literal{Base: ast.NewBase(start), Kind: ast.LitNumber, Text: tok.Lexeme}
	case p.check(token.STRING_LITERAL):
		tok := p.advance()
		return &ast.Literal{Base: ast.NewBase(start), Kind: ast.LitString, Text: tok.Lexeme}
	case p.check(token.TRUE) || p.check(token.FALSE):
		tok := p.advance()
		return &ast.Literal{Base: ast.NewBase(start), Kind: ast.LitBool, Text: tok.Lexeme}
	case p.check(token.NULL_VALUE):
		p.advance()
		return &ast.Literal{Base: ast.NewBase(start), Kind: ast.LitNull}
	case p.check(token.THIS):
		p.advance()
		return &ast.This{Base: ast.NewBase(start)}
	case p.check(token.IDENTIFIER):
		tok := p.advance()
		return &ast.Identifier{Base: ast.NewBase(start), Name: tok.Lexeme}
	case p.check(token.LEFT_PAREN):
		p.advance()
		e := p.parseExpr()
		p.consume(token.RIGHT_PAREN, "to close parenthesized expression")
		return e
	case p.check(token.LEFT_BRACKET):
		p.advance()
		var elems []ast.Expr
		if !p.check(token.RIGHT_BRACKET) {
			for {
				elems = append(elems, p.parseExpr())
				if _, ok := p.match(token.COMMA); !ok {
					break
				}
			}
		}
		p.consume(token.RIGHT_BRACKET, "to close array literal")
		return &ast.ArrayLiteral{Base: ast.NewBaseOver(start, p.view.Previous().Position), Elements: elems}
	case p.check(token.NEW):
		p.advance()
		t := p.parseType()
		var args []ast.Expr
		if _, ok := p.match(token.LEFT_PAREN); ok {
			if !p.check(token.RIGHT_PAREN) {
				for {
					args = append(args, p.parseExpr())
					if _, ok := p.match(token.COMMA); !ok {
						break
					}
				}
			}
			p.consume(token.RIGHT_PAREN, "to close constructor arguments")
		}
		return &ast.NewExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Type: t, Args: args}
	case p.check(token.CAST):
		p.advance()
		p.consume(token.LESS, "to begin cast type argument")
		t := p.parseType()
		p.consume(token.GREATER, "to close cast type argument")
		p.consume(token.LEFT_PAREN, "to begin cast operand")
		v := p.parseExpr()
		p.consume(token.RIGHT_PAREN, "to close cast operand")
		return &ast.CastExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Target: t, Value: v}
	case p.check(token.SIZEOF) || p.check(token.ALIGNOF):
		kw := p.advance()
		p.consume(token.LESS, "to begin type argument")
		t := p.parseType()
		p.consume(token.GREATER, "to close type argument")
		kind := ast.CompileSizeof
		if kw.Kind == token.ALIGNOF {
			kind = ast.CompileAlignof
		}
		return &ast.CompileTimeExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Kind: kind, TypeArg: t}
	case p.check(token.TYPEOF):
		p.advance()
		p.consume(token.LEFT_PAREN, "to begin typeof operand")
		v := p.parseExpr()
		p.consume(token.RIGHT_PAREN, "to close typeof operand")
		return &ast.CompileTimeExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Kind: ast.CompileTypeof, ValueArg: v}
	case p.check(token.FUNCTION):
		return p.parseFuncExpr()
	}

	p.errorf(p.peek().Position, "unexpected token %s in expression", p.peek().Kind)
	p.advance()
	return &ast.Literal{Base: ast.NewBase(start), Kind: ast.LitNull}
}

func (p *Parser) parseFuncExpr() ast.Expr {
	start := p.here()
	p.advance() // 'function'
	params := p.parseParamList()
	var ret ast.Type
	if _, ok := p.match(token.COLON); ok {
		ret = p.parseType()
	}
	body := p.parseBlock()
	return &ast.FuncExpr{Base: ast.NewBaseOver(start, p.view.Previous().Position), Params: params, ReturnType: ret, Body: body}
}

func isPrimitiveTypeKeyword(k token.Kind) bool {
	switch k {
	case token.VOID, token.INT, token.FLOAT, token.BOOLEAN, token.STRING:
		return true
	}
	return false
}
