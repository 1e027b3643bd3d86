package parser

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/token"
)

// parseType parses a primary type, then applies suffix modifiers: `@`
// (pointer), `[...]` (array), `&` (reference), `|` (union), in the order
// the source text presents them.
func (p *Parser) parseType() ast.Type {
	t := p.parsePrimaryType()

	for {
		switch {
		case p.check(token.AT):
			start := t.Span().Start
			p.advance()
			kind := ast.PointerSafe
			var align ast.Expr
			if _, ok := p.match(token.UNSAFE); ok {
				kind = ast.PointerUnsafe
			} else if _, ok := p.match(token.ALIGNED_ATTR); ok {
				kind = ast.PointerAligned
				p.consume(token.LEFT_PAREN, "after 'aligned'")
				align = p.parseExpr()
				p.consume(token.RIGHT_PAREN, "to close alignment argument")
			}
			t = &ast.PointerType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Pointee: t, Kind: kind, Align: align}
		case p.check(token.LEFT_BRACKET):
			start := t.Span().Start
			p.advance()
			var size ast.Expr
			if !p.check(token.RIGHT_BRACKET) {
				size = p.parseExpr()
			}
			p.consume(token.RIGHT_BRACKET, "to close array type")
			t = &ast.ArrayType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Elem: t, Size: size}
		case p.check(token.AMPERSAND):
			start := t.Span().Start
			p.advance()
			t = &ast.ReferenceType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Target: t}
		case p.check(token.PIPE):
			start := t.Span().Start
			p.advance()
			right := p.parseType()
			t = &ast.UnionType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Left: t, Right: right}
		default:
			return t
		}
	}
}

func (p *Parser) parsePrimaryType() ast.Type {
	start := p.here()

	switch {
	case isPrimitiveTypeKeyword(p.peek().Kind):
		tok := p.advance()
		return &ast.PrimitiveType{Base: ast.NewBase(start), Name: tok.Lexeme}
	case p.check(token.FUNCTION):
		p.advance()
		p.consume(token.LEFT_PAREN, "to begin function type parameters")
		var params []ast.Type
		if !p.check(token.RIGHT_PAREN) {
			for {
				params = append(params, p.parseType())
				if _, ok := p.match(token.COMMA); !ok {
					break
				}
			}
		}
		p.consume(token.RIGHT_PAREN, "to close function type parameters")
		p.consume(token.COLON, "before function type return type")
		ret := p.parseType()
		return &ast.FunctionType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Params: params, Return: ret}
	case p.check(token.SHARED) || p.check(token.UNIQUE) || p.check(token.WEAK):
		kw := p.advance()
		p.consume(token.LESS, "to begin smart pointer type argument")
		pointee := p.parseType()
		p.consume(token.GREATER, "to close smart pointer type argument")
		kind := ast.SmartShared
		switch kw.Kind {
		case token.UNIQUE:
			kind = ast.SmartUnique
		case token.WEAK:
			kind = ast.SmartWeak
		}
		return &ast.SmartPointerType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Pointee: pointee, Kind: kind}
	case p.check(token.IDENTIFIER):
		name := p.advance()

		if p.check(token.DOT) {
			parts := []string{name.Lexeme}
			for {
				if _, ok := p.match(token.DOT); !ok {
					break
				}
				part, _ := p.consume(token.IDENTIFIER, "in qualified type name")
				parts = append(parts, part.Lexeme)
			}
			return &ast.QualifiedType{Base: ast.NewBaseOver(start, p.view.Previous().Position), Parts: parts}
		}

		if p.check(token.LESS) {
			if args, ok := p.tryTemplateTypeArgs(); ok {
				return &ast.TemplateType{Base: ast.NewBaseOver(start, p.view.Previous().Position), BaseName: name.Lexeme, Args: args}
			}
		}

		return &ast.NamedType{Base: ast.NewBase(start), Name: name.Lexeme}
	}

	p.errorf(p.peek().Position, "expected a type, got %s", p.peek().Kind)
	tok := p.advance()
	return &ast.NamedType{Base: ast.NewBase(start), Name: tok.Lexeme}
}

// tryTemplateTypeArgs speculatively parses `<T, U, ...>` after a name used
// as a type, restoring on failure so the caller can fall back to a plain
// named type (the `<` might be an unrelated use of the less-than token in
// contexts where a type ends a production early).
func (p *Parser) tryTemplateTypeArgs() ([]ast.Type, bool) {
	mark := p.save()
	p.advance() // '<'

	var args []ast.Type
	for {
		if !p.check(token.IDENTIFIER) && !isPrimitiveTypeKeyword(p.peek().Kind) {
			p.restore(mark)
			return nil, false
		}
		args = append(args, p.parseType())
		if _, ok := p.match(token.COMMA); ok {
			continue
		}
		break
	}

	if _, ok := p.match(token.GREATER); !ok {
		p.restore(mark)
		return nil, false
	}
	return args, true
}
