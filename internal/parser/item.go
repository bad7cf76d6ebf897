package parser

import (
	"sollint/internal/ast"
	"sollint/internal/token"
)

func (p *parser) parseTopLevel() ast.ItemID {
	switch p.cur().Kind {
	case token.KwPragma:
		return p.parsePragma()
	case token.KwImport:
		return p.parseImport()
	case token.KwAbstract, token.KwContract, token.KwInterface, token.KwLibrary:
		return p.parseContract()
	case token.KwFunction:
		return p.parseFunction()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	default:
		p.errorf(p.cur().Span, "unexpected token at top level")
		return ast.NoItemID
	}
}

func (p *parser) parsePragma() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // pragma
	for !p.at(token.Semicolon) && !p.at(token.EOF) {
		p.advance()
	}
	p.expect(token.Semicolon, "';' after pragma")
	sp := p.spanFrom(start)
	payload := ast.PayloadID(p.builder.Items.Pragmas.Allocate(ast.PragmaItem{
		Text: p.file.Text(sp),
	}))
	return p.builder.Items.New(ast.KindPragma, sp, payload)
}

func (p *parser) parseImport() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // import

	var item ast.ImportItem

	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			nameTok := p.expect(token.Ident, "imported symbol")
			sym := ast.ImportSymbol{
				Name: p.intern(nameTok.Text),
				Span: nameTok.Span,
			}
			if _, ok := p.accept(token.KwAs); ok {
				aliasTok := p.expect(token.Ident, "import alias")
				sym.Alias = p.intern(aliasTok.Text)
				sym.Span = sym.Span.Cover(aliasTok.Span)
			}
			item.Symbols = append(item.Symbols, sym)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RBrace, "'}' after import symbols")
		p.expect(token.KwFrom, "'from'")
		pathTok := p.expect(token.String, "import path")
		item.Path = p.intern(pathTok.Text)
		item.PathSpan = pathTok.Span
	} else {
		pathTok := p.expect(token.String, "import path")
		item.Path = p.intern(pathTok.Text)
		item.PathSpan = pathTok.Span
		if _, ok := p.accept(token.KwAs); ok {
			aliasTok := p.expect(token.Ident, "import alias")
			item.Alias = p.intern(aliasTok.Text)
		}
	}
	p.expect(token.Semicolon, "';' after import")

	payload := ast.PayloadID(p.builder.Items.Imports.Allocate(item))
	return p.builder.Items.New(ast.KindImport, p.spanFrom(start), payload)
}

func (p *parser) parseContract() ast.ItemID {
	start := p.cur().Span.Start

	ckind := ast.ContractPlain
	if _, ok := p.accept(token.KwAbstract); ok {
		ckind = ast.ContractAbstract
		p.expect(token.KwContract, "'contract' after 'abstract'")
	} else {
		switch p.advance().Kind {
		case token.KwInterface:
			ckind = ast.ContractInterface
		case token.KwLibrary:
			ckind = ast.ContractLibrary
		}
	}

	nameTok := p.expect(token.Ident, "contract name")
	item := ast.ContractItem{
		CKind:    ckind,
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}

	if _, ok := p.accept(token.KwIs); ok {
		for {
			item.Bases = append(item.Bases, p.parseTypeRef())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}

	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		member := p.parseContractMember()
		if member.IsValid() {
			item.Members = append(item.Members, member)
		}
	}
	p.expect(token.RBrace, "'}' closing contract body")

	payload := ast.PayloadID(p.builder.Items.Contracts.Allocate(item))
	return p.builder.Items.New(ast.KindContract, p.spanFrom(start), payload)
}

func (p *parser) parseContractMember() ast.ItemID {
	switch p.cur().Kind {
	case token.KwFunction, token.KwConstructor, token.KwFallback, token.KwReceive:
		return p.parseFunction()
	case token.KwModifier:
		return p.parseModifier()
	case token.KwEvent:
		return p.parseEvent()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwUsing:
		// using-for has no lintable surface here; consume through ';'
		for !p.at(token.Semicolon) && !p.at(token.EOF) {
			p.advance()
		}
		p.expect(token.Semicolon, "';' after using directive")
		return ast.NoItemID
	default:
		return p.parseStateVar()
	}
}

func (p *parser) parseFunction() ast.ItemID {
	start := p.cur().Span.Start

	item := ast.FunctionItem{FKind: ast.FnPlain}
	switch p.advance().Kind {
	case token.KwConstructor:
		item.FKind = ast.FnConstructor
	case token.KwFallback:
		item.FKind = ast.FnFallback
	case token.KwReceive:
		item.FKind = ast.FnReceive
	}

	if item.FKind == ast.FnPlain {
		nameTok := p.expect(token.Ident, "function name")
		item.Name = p.intern(nameTok.Text)
		item.NameSpan = nameTok.Span
	} else {
		item.NameSpan = p.spanFrom(start)
	}

	item.Params = p.parseParamList()

	// header modifiers in any order
loop:
	for {
		switch p.cur().Kind {
		case token.KwPublic:
			item.Visibility = ast.VisPublic
			p.advance()
		case token.KwPrivate:
			item.Visibility = ast.VisPrivate
			p.advance()
		case token.KwInternal:
			item.Visibility = ast.VisInternal
			p.advance()
		case token.KwExternal:
			item.Visibility = ast.VisExternal
			p.advance()
		case token.KwPure:
			item.Mutability = ast.MutPure
			p.advance()
		case token.KwView:
			item.Mutability = ast.MutView
			p.advance()
		case token.KwPayable:
			item.Mutability = ast.MutPayable
			p.advance()
		case token.KwVirtual:
			item.IsVirtual = true
			p.advance()
		case token.KwOverride:
			item.IsOverride = true
			p.advance()
			if p.at(token.LParen) {
				p.skipParens()
			}
		case token.Ident:
			item.Modifiers = append(item.Modifiers, p.parseModifierRef())
		case token.KwReturns:
			p.advance()
			item.Returns = p.parseParamList()
		default:
			break loop
		}
	}

	if p.at(token.LBrace) {
		item.Body = p.parseBlock()
	} else {
		p.expect(token.Semicolon, "function body or ';'")
	}

	payload := ast.PayloadID(p.builder.Items.Fns.Allocate(item))
	return p.builder.Items.New(ast.KindFunction, p.spanFrom(start), payload)
}

func (p *parser) parseModifierRef() ast.ModifierRef {
	nameTok := p.advance()
	ref := ast.ModifierRef{
		Name: p.intern(nameTok.Text),
		Span: nameTok.Span,
	}
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed {
			ref.Args = append(ref.Args, p.parseExpr())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen, "')' after modifier arguments")
	}
	return ref
}

func (p *parser) parseModifier() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // modifier

	nameTok := p.expect(token.Ident, "modifier name")
	item := ast.ModifierItem{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}
	if p.at(token.LParen) {
		item.Params = p.parseParamList()
	}
	for p.at(token.KwVirtual) || p.at(token.KwOverride) {
		p.advance()
	}
	if p.at(token.LBrace) {
		item.Body = p.parseBlock()
	} else {
		p.expect(token.Semicolon, "modifier body or ';'")
	}

	payload := ast.PayloadID(p.builder.Items.Modifiers.Allocate(item))
	return p.builder.Items.New(ast.KindModifier, p.spanFrom(start), payload)
}

func (p *parser) parseEvent() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // event

	nameTok := p.expect(token.Ident, "event name")
	item := ast.EventItem{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Params:   p.parseParamList(),
	}
	p.accept(token.Ident) // `anonymous`
	p.expect(token.Semicolon, "';' after event")

	payload := ast.PayloadID(p.builder.Items.Events.Allocate(item))
	return p.builder.Items.New(ast.KindEvent, p.spanFrom(start), payload)
}

func (p *parser) parseStruct() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // struct

	nameTok := p.expect(token.Ident, "struct name")
	item := ast.StructItem{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}

	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		typ := p.parseTypeRef()
		fieldTok := p.expect(token.Ident, "struct field name")
		item.Fields = append(item.Fields, ast.Param{
			Type: typ,
			Name: p.intern(fieldTok.Text),
			Span: fieldTok.Span,
		})
		p.expect(token.Semicolon, "';' after struct field")
	}
	p.expect(token.RBrace, "'}' closing struct")

	payload := ast.PayloadID(p.builder.Items.Structs.Allocate(item))
	return p.builder.Items.New(ast.KindStruct, p.spanFrom(start), payload)
}

func (p *parser) parseEnum() ast.ItemID {
	start := p.cur().Span.Start
	p.advance() // enum

	nameTok := p.expect(token.Ident, "enum name")
	item := ast.EnumItem{
		Name:     p.intern(nameTok.Text),
		NameSpan: nameTok.Span,
	}

	p.expect(token.LBrace, "'{'")
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		variantTok := p.expect(token.Ident, "enum variant")
		item.Variants = append(item.Variants, ast.EnumVariant{
			Name: p.intern(variantTok.Text),
			Span: variantTok.Span,
		})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace, "'}' closing enum")

	payload := ast.PayloadID(p.builder.Items.Enums.Allocate(item))
	return p.builder.Items.New(ast.KindEnum, p.spanFrom(start), payload)
}

func (p *parser) parseStateVar() ast.ItemID {
	start := p.cur().Span.Start

	item := ast.StateVarItem{Type: p.parseTypeRef()}

loop:
	for {
		switch p.cur().Kind {
		case token.KwPublic:
			item.Visibility = ast.VisPublic
			p.advance()
		case token.KwPrivate:
			item.Visibility = ast.VisPrivate
			p.advance()
		case token.KwInternal:
			item.Visibility = ast.VisInternal
			p.advance()
		case token.KwConstant:
			item.VarMut = ast.VarConstant
			p.advance()
		case token.KwImmutable:
			item.VarMut = ast.VarImmutable
			p.advance()
		default:
			break loop
		}
	}

	nameTok := p.expect(token.Ident, "state variable name")
	item.Name = p.intern(nameTok.Text)
	item.NameSpan = nameTok.Span

	if _, ok := p.accept(token.Assign); ok {
		item.Value = p.parseExpr()
	}
	p.expect(token.Semicolon, "';' after state variable")

	payload := ast.PayloadID(p.builder.Items.StateVars.Allocate(item))
	return p.builder.Items.New(ast.KindStateVar, p.spanFrom(start), payload)
}

func (p *parser) parseParamList() []ast.Param {
	p.expect(token.LParen, "'('")
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed {
		typ := p.parseTypeRef()
		// data location and `indexed` are recognized but not retained
		for p.at(token.KwMemory) || p.at(token.KwStorage) || p.at(token.KwCalldata) || p.at(token.KwIndexed) {
			p.advance()
		}
		param := ast.Param{Type: typ, Span: typ.Span}
		if p.at(token.Ident) {
			nameTok := p.advance()
			param.Name = p.intern(nameTok.Text)
			param.Span = nameTok.Span
		}
		params = append(params, param)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, "')'")
	return params
}

// parseTypeRef consumes a type and records it textually: elementary types,
// dotted paths, mapping(...) and array suffixes all collapse into the raw
// source text of their span.
func (p *parser) parseTypeRef() ast.TypeRef {
	start := p.cur().Span.Start

	switch p.cur().Kind {
	case token.KwMapping:
		p.advance()
		p.skipParens()
	case token.KwFunction:
		p.advance()
		p.skipParens()
	case token.Ident, token.KwPayable:
		p.advance()
		for p.at(token.Dot) {
			p.advance()
			p.expect(token.Ident, "name after '.'")
		}
	default:
		p.errorf(p.cur().Span, "expected type")
		return ast.TypeRef{}
	}

	for p.at(token.LBracket) {
		p.advance()
		if !p.at(token.RBracket) {
			p.parseExpr()
		}
		p.expect(token.RBracket, "']'")
	}

	sp := p.spanFrom(start)
	return ast.TypeRef{
		Name: p.intern(p.file.Text(sp)),
		Span: sp,
	}
}

// skipParens consumes a balanced parenthesized group.
func (p *parser) skipParens() {
	open := p.expect(token.LParen, "'('")
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		case token.EOF:
			p.errorf(open.Span, "unclosed '('")
			return
		}
		p.advance()
	}
}
