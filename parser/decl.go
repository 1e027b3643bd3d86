package parser

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/token"
)

// parseTopLevel dispatches on the fixed declaration-starting lead-token set;
// anything else is parsed as a top-level statement (buffered by the lowerer
// into a synthetic main when no user main exists).
func (p *Parser) parseTopLevel() ast.Node {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	access, inline, unsafe, static := p.parseModifiers()

	switch {
	case p.check(token.LET) || p.check(token.CONST):
		v := p.parseVarDecl()
		p.consume(token.SEMICOLON, "after variable declaration")
		return v
	case p.check(token.FUNCTION):
		return p.parseFuncDecl(access, inline, unsafe, static)
	case p.check(token.CLASS):
		return p.parseClassDecl(access)
	case p.check(token.INTERFACE):
		return p.parseInterfaceDecl(access)
	case p.check(token.ENUM):
		return p.parseEnumDecl(access)
	case p.check(token.NAMESPACE):
		return p.parseNamespaceDecl()
	case p.check(token.TYPEDEF):
		return p.parseTypedefDecl()
	default:
		return p.parseStmt()
	}
}

// parseModifiers consumes any leading access/storage modifiers, returning
// their accumulated effect. Unrecognized attribute tokens are left for the
// caller (they are not part of this fixed set).
func (p *Parser) parseModifiers() (access ast.Access, inline, unsafe, static bool) {
	access = ast.AccessPublic
	for {
		switch {
		case p.check(token.PUBLIC):
			p.advance()
			access = ast.AccessPublic
		case p.check(token.PRIVATE):
			p.advance()
			access = ast.AccessPrivate
		case p.check(token.PROTECTED):
			p.advance()
			access = ast.AccessProtected
		case p.check(token.INLINE):
			p.advance()
			inline = true
		case p.check(token.UNSAFE):
			p.advance()
			unsafe = true
		case p.check(token.STATIC):
			p.advance()
			static = true
		default:
			return
		}
	}
}

func (p *Parser) parseGenericParams() []ast.GenericParam {
	if _, ok := p.match(token.LESS); !ok {
		return nil
	}

	var params []ast.GenericParam
	for {
		name, _ := p.consume(token.IDENTIFIER, "as generic parameter name")
		gp := ast.GenericParam{Name: name.Lexeme}

		if _, ok := p.match(token.COLON); ok {
			for {
				c, _ := p.consume(token.IDENTIFIER, "as generic constraint name")
				gp.Constraints = append(gp.Constraints, c.Lexeme)
				if _, ok := p.match(token.AMPERSAND); !ok {
					break
				}
			}
		}

		params = append(params, gp)
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.consume(token.GREATER, "to close generic parameter list")
	return params
}

func (p *Parser) parseParamList() []ast.Param {
	p.consume(token.LEFT_PAREN, "to begin parameter list")
	var params []ast.Param
	if !p.check(token.RIGHT_PAREN) {
		for {
			params = append(params, p.parseParam())
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "to close parameter list")
	return params
}

func (p *Parser) parseParam() ast.Param {
	byRef := false
	if _, ok := p.match(token.REF); ok {
		byRef = true
	}
	name, _ := p.consume(token.IDENTIFIER, "as parameter name")
	p.consume(token.COLON, "before parameter type")
	t := p.parseType()
	return ast.Param{Name: name.Lexeme, Type: t, ByRef: byRef}
}

func (p *Parser) parseThrowsClause() []ast.Type {
	if _, ok := p.match(token.THROWS); !ok {
		return nil
	}
	var types []ast.Type
	for {
		types = append(types, p.parseType())
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	return types
}

func (p *Parser) parseFuncDecl(access ast.Access, inline, unsafe, static bool) ast.Node {
	start := p.here()
	p.advance() // 'function'
	name, _ := p.consume(token.IDENTIFIER, "as function name")
	generics := p.parseGenericParams()
	params := p.parseParamList()

	var ret ast.Type
	if _, ok := p.match(token.COLON); ok {
		ret = p.parseType()
	}
	throws := p.parseThrowsClause()

	var body *ast.Block
	if p.check(token.LEFT_BRACE) {
		body = p.parseBlock()
	} else {
		p.consume(token.SEMICOLON, "after function signature")
	}
	_ = static

	return &ast.FuncDecl{
		Base: ast.NewBaseOver(start, p.view.Previous().Position),
		Name: name.Lexeme, Generics: generics, Params: params,
		ReturnType: ret, Throws: throws, Body: body,
		Access: access, Inline: inline, Unsafe: unsafe,
	}
}

func (p *Parser) parseClassDecl(access ast.Access) ast.Node {
	start := p.here()
	p.advance() // 'class'

	abstract := false
	if _, ok := p.match(token.ABSTRACT); ok {
		abstract = true
	}
	packed := false
	if _, ok := p.match(token.PACKED); ok {
		packed = true
	}

	name, _ := p.consume(token.IDENTIFIER, "as class name")
	generics := p.parseGenericParams()

	var extends string
	if _, ok := p.match(token.EXTENDS); ok {
		base, _ := p.consume(token.IDENTIFIER, "as base class name")
		extends = base.Lexeme
	}

	var implements []string
	if _, ok := p.match(token.IMPLEMENTS); ok {
		for {
			iface, _ := p.consume(token.IDENTIFIER, "as implemented interface name")
			implements = append(implements, iface.Lexeme)
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
	}

	decl := &ast.ClassDecl{
		Name: name.Lexeme, Generics: generics, Extends: extends,
		Implements: implements, Abstract: abstract, Packed: packed, Access: access,
	}

	p.consume(token.LEFT_BRACE, "to begin class body")
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		p.parseClassMember(decl)
	}
	p.consume(token.RIGHT_BRACE, "to close class body")

	decl.Base = ast.NewBaseOver(start, p.view.Previous().Position)
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	memberAccess, _, virtual, _ := p.parseModifiers()

	switch {
	case p.check(token.CONSTRUCTOR):
		start := p.here()
		p.advance()
		params := p.parseParamList()
		body := p.parseBlock()
		decl.Constructor = &ast.ConstructorDecl{Base: ast.NewBaseOver(start, p.view.Previous().Position), Params: params, Body: body, Access: memberAccess}

	case p.check(token.GET) && p.peekAt(1).Kind == token.IDENTIFIER:
		start := p.here()
		p.advance()
		name, _ := p.consume(token.IDENTIFIER, "as property name")
		p.consume(token.COLON, "before property type")
		t := p.parseType()
		getter := p.parseBlock()
		decl.Properties = append(decl.Properties, &ast.PropertyDecl{
			Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Type: t, Getter: getter, Access: memberAccess,
		})

	case p.check(token.SET) && p.peekAt(1).Kind == token.IDENTIFIER:
		start := p.here()
		p.advance()
		name, _ := p.consume(token.IDENTIFIER, "as property name")
		p.consume(token.COLON, "before property type")
		t := p.parseType()
		setter := p.parseBlock()
		decl.Properties = append(decl.Properties, &ast.PropertyDecl{
			Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Type: t, Setter: setter, Access: memberAccess,
		})

	case p.check(token.FUNCTION):
		start := p.here()
		p.advance()
		var name token.Token
		if p.check(token.GET) || p.check(token.SET) {
			name = p.advance()
		} else {
			name, _ = p.consume(token.IDENTIFIER, "as method name")
		}
		generics := p.parseGenericParams()
		params := p.parseParamList()
		var ret ast.Type
		if _, ok := p.match(token.COLON); ok {
			ret = p.parseType()
		}
		var body *ast.Block
		if p.check(token.LEFT_BRACE) {
			body = p.parseBlock()
		} else {
			p.consume(token.SEMICOLON, "after method signature")
		}
		decl.Methods = append(decl.Methods, &ast.MethodDecl{
			Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme,
			Generics: generics, Params: params, ReturnType: ret, Body: body,
			Access: memberAccess, Virtual: virtual,
		})

	case p.check(token.IDENTIFIER):
		start := p.here()
		name := p.advance()
		p.consume(token.COLON, "before field type")
		t := p.parseType()
		var init ast.Expr
		if _, ok := p.match(token.EQUALS); ok {
			init = p.parseExpr()
		}
		p.consume(token.SEMICOLON, "after field declaration")
		decl.Fields = append(decl.Fields, &ast.FieldDecl{
			Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Type: t, Init: init, Access: memberAccess,
		})

	default:
		p.errorf(p.peek().Position, "expected a class member, got %s", p.peek().Kind)
		p.advance()
	}
}

func (p *Parser) parseInterfaceDecl(access ast.Access) ast.Node {
	start := p.here()
	p.advance() // 'interface'
	name, _ := p.consume(token.IDENTIFIER, "as interface name")
	generics := p.parseGenericParams()

	var extends []string
	if _, ok := p.match(token.EXTENDS); ok {
		for {
			base, _ := p.consume(token.IDENTIFIER, "as extended interface name")
			extends = append(extends, base.Lexeme)
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
	}

	decl := &ast.InterfaceDecl{Name: name.Lexeme, Generics: generics, Extends: extends, Access: access}

	p.consume(token.LEFT_BRACE, "to begin interface body")
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		switch {
		case p.check(token.GET) && p.peekAt(1).Kind == token.IDENTIFIER:
			p.advance()
			name, _ := p.consume(token.IDENTIFIER, "as property name")
			p.consume(token.COLON, "before property type")
			t := p.parseType()
			p.consume(token.SEMICOLON, "after property signature")
			decl.Properties = append(decl.Properties, ast.InterfacePropertySig{Name: name.Lexeme, Type: t, HasGetter: true})
		case p.check(token.SET) && p.peekAt(1).Kind == token.IDENTIFIER:
			p.advance()
			name, _ := p.consume(token.IDENTIFIER, "as property name")
			p.consume(token.COLON, "before property type")
			t := p.parseType()
			p.consume(token.SEMICOLON, "after property signature")
			decl.Properties = append(decl.Properties, ast.InterfacePropertySig{Name: name.Lexeme, Type: t, HasSetter: true})
		case p.check(token.FUNCTION):
			p.advance()
			name, _ := p.consume(token.IDENTIFIER, "as method name")
			params := p.parseParamList()
			var ret ast.Type
			if _, ok := p.match(token.COLON); ok {
				ret = p.parseType()
			}
			p.consume(token.SEMICOLON, "after method signature")
			decl.Methods = append(decl.Methods, ast.InterfaceMethodSig{Name: name.Lexeme, Params: params, ReturnType: ret})
		default:
			p.errorf(p.peek().Position, "expected a method or property signature in interface body")
			p.advance()
		}
	}
	p.consume(token.RIGHT_BRACE, "to close interface body")

	decl.Base = ast.NewBaseOver(start, p.view.Previous().Position)
	return decl
}

func (p *Parser) parseEnumDecl(access ast.Access) ast.Node {
	start := p.here()
	p.advance() // 'enum'
	name, _ := p.consume(token.IDENTIFIER, "as enum name")
	p.consume(token.LEFT_BRACE, "to begin enum body")

	var members []ast.EnumMember
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		memberName, _ := p.consume(token.IDENTIFIER, "as enum member name")
		var value ast.Expr
		if _, ok := p.match(token.EQUALS); ok {
			value = p.parseExpr()
		}
		members = append(members, ast.EnumMember{Name: memberName.Lexeme, Value: value})
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.consume(token.RIGHT_BRACE, "to close enum body")

	return &ast.EnumDecl{Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Members: members, Access: access}
}

func (p *Parser) parseNamespaceDecl() ast.Node {
	start := p.here()
	p.advance() // 'namespace'
	name, _ := p.consume(token.IDENTIFIER, "as namespace name")
	p.consume(token.LEFT_BRACE, "to begin namespace body")

	var nodes []ast.Node
	for !p.check(token.RIGHT_BRACE) && !p.view.IsAtEnd() {
		nodes = append(nodes, p.parseTopLevel())
	}
	p.consume(token.RIGHT_BRACE, "to close namespace body")

	return &ast.NamespaceDecl{Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Nodes: nodes}
}

func (p *Parser) parseTypedefDecl() ast.Node {
	start := p.here()
	p.advance() // 'typedef'
	name, _ := p.consume(token.IDENTIFIER, "as typedef name")
	p.consume(token.EQUALS, "after typedef name")
	t := p.parseType()
	p.consume(token.SEMICOLON, "after typedef")
	return &ast.TypedefDecl{Base: ast.NewBaseOver(start, p.view.Previous().Position), Name: name.Lexeme, Type: t}
}
