package parser

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/token"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.here()
	p.consume(token.LEFT_BRACE, "to begin block")

	var nodes []ast.Node
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		nodes = append(nodes, p.parseBlockItem())
	}
	p.consume(token.RIGHT_BRACE, "to close block")
	return &ast.Block{Base: ast.NewBaseOver(start, p.view.Previous().Position), Nodes: nodes}
}

// parseBlockItem parses one statement or local declaration inside a block.
func (p *Parser) parseBlockItem() ast.Node {
	if p.check(token.LET) || p.check(token.CONST) {
		return p.parseVarDeclStmt()
	}
	return p.parseStmt()
}

func (p *Parser) parseVarDeclStmt() ast.Node {
	start := p.here()
	v := p.parseVarDecl()
	p.consume(token.SEMICOLON, "after variable declaration")
	return &ast.DeclStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Decl: v}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	start := p.here()
	isConst := p.check(token.CONST)
	p.advance() // 'let' or 'const'

	name, _ := p.consume(token.IDENTIFIER, "in variable declaration")

	var t ast.Type
	if _, ok := p.match(token.COLON); ok {
		t = p.parseType()
	}

	var init ast.Expr
	if _, ok := p.match(token.EQUALS); ok {
		init = p.parseExpr()
	} else if isConst {
		p.errorf(name.Position, "const declaration %q requires an initializer", name.Lexeme)
	}

	return &ast.VarDecl{
		Base:    ast.NewBaseOver(start, p.view.Previous().Position),
		IsConst: isConst,
		Name:    name.Lexeme,
		Type:    t,
		Init:    init,
	}
}

func (p *Parser) parseStmt() ast.Node {
	switch {
	case p.check(token.LEFT_BRACE):
		return p.parseBlock()
	case p.check(token.IF):
		return p.parseIf()
	case p.check(token.WHILE):
		return p.parseWhile()
	case p.check(token.DO):
		return p.parseDoWhile()
	case p.check(token.FOR):
		return p.parseFor()
	case p.check(token.BREAK):
		return p.parseBreakContinue(true)
	case p.check(token.CONTINUE):
		return p.parseBreakContinue(false)
	case p.check(token.RETURN):
		return p.parseReturn()
	case p.check(token.TRY):
		return p.parseTry()
	case p.check(token.THROW):
		return p.parseThrow()
	case p.check(token.SWITCH):
		return p.parseSwitch()
	case p.check(token.ASM):
		return p.parseInlineAsm()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() ast.Node {
	start := p.here()
	e := p.parseExpr()
	p.consume(token.SEMICOLON, "after expression statement")
	return &ast.ExprStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), X: e}
}

func (p *Parser) parseIf() ast.Node {
	start := p.here()
	p.advance() // 'if'
	p.consume(token.LEFT_PAREN, "to begin if condition")
	cond := p.parseExpr()
	p.consume(token.RIGHT_PAREN, "to close if condition")
	then := p.parseBlock()

	var els ast.Node
	if _, ok := p.match(token.ELSE); ok {
		if p.check(token.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}

	return &ast.IfStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Node {
	start := p.here()
	p.advance()
	p.consume(token.LEFT_PAREN, "to begin while condition")
	cond := p.parseExpr()
	p.consume(token.RIGHT_PAREN, "to close while condition")
	body := p.parseBlock()
	return &ast.WhileStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Node {
	start := p.here()
	p.advance() // 'do'
	body := p.parseBlock()
	p.consume(token.WHILE, "after do-while body")
	p.consume(token.LEFT_PAREN, "to begin do-while condition")
	cond := p.parseExpr()
	p.consume(token.RIGHT_PAREN, "to close do-while condition")
	p.consume(token.SEMICOLON, "after do-while statement")
	return &ast.DoWhileStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Body: body, Cond: cond}
}

// parseFor disambiguates classical `for` from `for-of`: after `for (`, if
// the next token begins a `let`/`const` binding, it parses that binding's
// optional type then branches on `=` (classical) vs `of` (for-of).
func (p *Parser) parseFor() ast.Node {
	start := p.here()
	p.advance() // 'for'
	p.consume(token.LEFT_PAREN, "to begin for clauses")

	if p.check(token.LET) || p.check(token.CONST) {
		isConst := p.check(token.CONST)
		bindStart := p.here()
		p.advance()
		name, _ := p.consume(token.IDENTIFIER, "in for binding")

		var t ast.Type
		if _, ok := p.match(token.COLON); ok {
			t = p.parseType()
		}

		if _, ok := p.match(token.OF); ok {
			iterable := p.parseExpr()
			p.consume(token.RIGHT_PAREN, "to close for-of clause")
			body := p.parseBlock()
			return &ast.ForOfStmt{
				Base: ast.NewBaseOver(start, p.view.Previous().Position),
				IsConst: isConst, VarName: name.Lexeme, VarType: t,
				Iterable: iterable, Body: body,
			}
		}

		var init ast.Node
		var initExpr ast.Expr
		if _, ok := p.match(token.EQUALS); ok {
			initExpr = p.parseExpr()
		}
		init = &ast.DeclStmt{
			Base: ast.NewBaseOver(bindStart, p.view.Previous().Position),
			Decl: &ast.VarDecl{Base: ast.NewBaseOver(bindStart, p.view.Previous().Position), IsConst: isConst, Name: name.Lexeme, Type: t, Init: initExpr},
		}
		p.consume(token.SEMICOLON, "after for-loop initializer")

		var cond ast.Expr
		if !p.check(token.SEMICOLON) {
			cond = p.parseExpr()
		}
		p.consume(token.SEMICOLON, "after for-loop condition")

		var post ast.Expr
		if !p.check(token.RIGHT_PAREN) {
			post = p.parseExpr()
		}
		p.consume(token.RIGHT_PAREN, "to close for-loop clauses")

		body := p.parseBlock()
		return &ast.ForStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Init: init, Cond: cond, Post: post, Body: body}
	}

	var init ast.Node
	if !p.check(token.SEMICOLON) {
		e := p.parseExpr()
		init = &ast.ExprStmt{Base: ast.NewBaseOver(e.Span().Start, e.Span().End), X: e}
	}
	p.consume(token.SEMICOLON, "after for-loop initializer")

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpr()
	}
	p.consume(token.SEMICOLON, "after for-loop condition")

	var post ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		post = p.parseExpr()
	}
	p.consume(token.RIGHT_PAREN, "to close for-loop clauses")

	body := p.parseBlock()
	return &ast.ForStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseBreakContinue(isBreak bool) ast.Node {
	start := p.here()
	p.advance()
	var label string
	if tok, ok := p.match(token.IDENTIFIER); ok {
		label = tok.Lexeme
	}
	p.consume(token.SEMICOLON, "after break/continue statement")
	if isBreak {
		return &ast.BreakStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Label: label}
	}
	return &ast.ContinueStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Label: label}
}

func (p *Parser) parseReturn() ast.Node {
	start := p.here()
	p.advance()
	var val ast.Expr
	if !p.check(token.SEMICOLON) {
		val = p.parseExpr()
	}
	p.consume(token.SEMICOLON, "after return statement")
	return &ast.ReturnStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Value: val}
}

func (p *Parser) parseTry() ast.Node {
	start := p.here()
	p.advance() // 'try'
	tryBlock := p.parseBlock()

	var catchName string
	var catchType ast.Type
	var catchBlock *ast.Block
	if _, ok := p.match(token.CATCH); ok {
		if _, ok := p.match(token.LEFT_PAREN); ok {
			name, _ := p.consume(token.IDENTIFIER, "in catch clause")
			catchName = name.Lexeme
			if _, ok := p.match(token.COLON); ok {
				catchType = p.parseType()
			}
			p.consume(token.RIGHT_PAREN, "to close catch clause")
		}
		catchBlock = p.parseBlock()
	}

	var finallyBlock *ast.Block
	if _, ok := p.match(token.FINALLY); ok {
		finallyBlock = p.parseBlock()
	}

	return &ast.TryStmt{
		Base: ast.NewBaseOver(start, p.view.Previous().Position),
		Try:  tryBlock, CatchName: catchName, CatchType: catchType,
		Catch: catchBlock, Finally: finallyBlock,
	}
}

func (p *Parser) parseThrow() ast.Node {
	start := p.here()
	p.advance()
	val := p.parseExpr()
	p.consume(token.SEMICOLON, "after throw statement")
	return &ast.ThrowStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Value: val}
}

func (p *Parser) parseSwitch() ast.Node {
	start := p.here()
	p.advance()
	p.consume(token.LEFT_PAREN, "to begin switch scrutinee")
	scrutinee := p.parseExpr()
	p.consume(token.RIGHT_PAREN, "to close switch scrutinee")
	p.consume(token.LEFT_BRACE, "to begin switch body")

	var cases []ast.SwitchCase
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		if _, ok := p.match(token.CASE); ok {
			var values []ast.Expr
			values = append(values, p.parseExpr())
			p.consume(token.COLON, "after case value")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{Values: values, Body: body})
		} else if _, ok := p.match(token.DEFAULT); ok {
			p.consume(token.COLON, "after default")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{IsDefault: true, Body: body})
		} else {
			p.errorf(p.peek().Position, "expected 'case' or 'default' in switch body")
			p.advance()
		}
	}
	p.consume(token.RIGHT_BRACE, "to close switch body")
	return &ast.SwitchStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Scrutinee: scrutinee, Cases: cases}
}

func (p *Parser) parseCaseBody() []ast.Node {
	var body []ast.Node
	for !p.check(token.CASE) && !p.check(token.DEFAULT) && !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		body = append(body, p.parseBlockItem())
	}
	return body
}

// parseInlineAsm parses a `#asm("...")` statement, capturing the raw body
// text; printf-pattern recognition happens later, in the lowerer.
func (p *Parser) parseInlineAsm() ast.Node {
	start := p.here()
	p.advance() // '#asm'
	p.consume(token.LEFT_PAREN, "to begin inline assembly")
	body, _ := p.consume(token.STRING_LITERAL, "as inline assembly body")
	var args []ast.Expr
	for {
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
		args = append(args, p.parseExpr())
	}
	p.consume(token.RIGHT_PAREN, "to close inline assembly")
	p.consume(token.SEMICOLON, "after inline assembly statement")
	return &ast.InlineAsmStmt{Base: ast.NewBaseOver(start, p.view.Previous().Position), Body: body.Lexeme, Args: args}
}
