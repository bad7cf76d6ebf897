package parser

import (
	"sollint/internal/ast"
	"sollint/internal/token"
)

func (p *parser) parseBlock() ast.StmtID {
	open := p.expect(token.LBrace, "'{'")
	start := open.Span.Start

	var block ast.BlockStmt
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed {
		stmt := p.parseStmt()
		if stmt.IsValid() {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.expect(token.RBrace, "'}'")

	payload := ast.PayloadID(p.builder.Stmts.Blocks.Allocate(block))
	return p.builder.Stmts.New(ast.KindBlock, p.spanFrom(start), payload)
}

func (p *parser) parseStmt() ast.StmtID {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwEmit:
		return p.parseEmit()
	case token.KwAssembly:
		return p.parseAssembly()
	case token.KwUnchecked:
		p.advance()
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseReturn() ast.StmtID {
	start := p.cur().Span.Start
	p.advance() // return

	var ret ast.ReturnStmt
	if !p.at(token.Semicolon) {
		ret.Value = p.parseExpr()
	}
	p.expect(token.Semicolon, "';' after return")

	payload := ast.PayloadID(p.builder.Stmts.Returns.Allocate(ret))
	return p.builder.Stmts.New(ast.KindReturn, p.spanFrom(start), payload)
}

func (p *parser) parseIf() ast.StmtID {
	start := p.cur().Span.Start
	p.advance() // if

	p.expect(token.LParen, "'(' after if")
	cond := p.parseExpr()
	p.expect(token.RParen, "')' closing if condition")

	stmt := ast.IfStmt{Cond: cond, Then: p.parseStmt()}
	if _, ok := p.accept(token.KwElse); ok {
		stmt.Else = p.parseStmt()
	}

	payload := ast.PayloadID(p.builder.Stmts.Ifs.Allocate(stmt))
	return p.builder.Stmts.New(ast.KindIf, p.spanFrom(start), payload)
}

func (p *parser) parseFor() ast.StmtID {
	start := p.cur().Span.Start
	p.advance() // for
	p.expect(token.LParen, "'(' after for")

	var stmt ast.ForStmt
	if !p.at(token.Semicolon) {
		stmt.Init = p.parseSimpleStmtNoSemi()
	}
	p.expect(token.Semicolon, "';' in for header")
	if !p.at(token.Semicolon) {
		stmt.Cond = p.parseExpr()
	}
	p.expect(token.Semicolon, "';' in for header")
	if !p.at(token.RParen) {
		stmt.Post = p.parseExpr()
	}
	p.expect(token.RParen, "')' closing for header")
	stmt.Body = p.parseStmt()

	payload := ast.PayloadID(p.builder.Stmts.Fors.Allocate(stmt))
	return p.builder.Stmts.New(ast.KindFor, p.spanFrom(start), payload)
}

// while lowers to a for with only a condition
func (p *parser) parseWhile() ast.StmtID {
	start := p.cur().Span.Start
	p.advance() // while

	p.expect(token.LParen, "'(' after while")
	cond := p.parseExpr()
	p.expect(token.RParen, "')' closing while condition")
	stmt := ast.ForStmt{Cond: cond, Body: p.parseStmt()}

	payload := ast.PayloadID(p.builder.Stmts.Fors.Allocate(stmt))
	return p.builder.Stmts.New(ast.KindFor, p.spanFrom(start), payload)
}

func (p *parser) parseEmit() ast.StmtID {
	start := p.cur().Span.Start
	p.advance() // emit

	call := p.parseExpr()
	p.expect(token.Semicolon, "';' after emit")

	payload := ast.PayloadID(p.builder.Stmts.Emits.Allocate(ast.EmitStmt{Call: call}))
	return p.builder.Stmts.New(ast.KindEmit, p.spanFrom(start), payload)
}

// parseAssembly keeps the body opaque: balanced braces, raw span.
func (p *parser) parseAssembly() ast.StmtID {
	start := p.cur().Span.Start
	p.advance()             // assembly
	p.accept(token.String)  // optional dialect marker, e.g. "memory-safe"

	open := p.expect(token.LBrace, "'{' opening assembly block")
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		case token.EOF:
			p.errorf(open.Span, "unclosed assembly block")
			return ast.NoStmtID
		}
		p.advance()
	}

	sp := p.spanFrom(start)
	payload := ast.PayloadID(p.builder.Stmts.Assemblies.Allocate(ast.AssemblyStmt{BodySpan: sp}))
	return p.builder.Stmts.New(ast.KindAssembly, sp, payload)
}

func (p *parser) parseSimpleStmt() ast.StmtID {
	stmt := p.parseSimpleStmtNoSemi()
	p.expect(token.Semicolon, "';'")
	return stmt
}

// parseSimpleStmtNoSemi parses either a local variable declaration or an
// expression statement, without the trailing semicolon.
func (p *parser) parseSimpleStmtNoSemi() ast.StmtID {
	start := p.cur().Span.Start

	if p.startsVarDecl() {
		decl := ast.VarDeclStmt{Type: p.parseTypeRef()}
		for p.at(token.KwMemory) || p.at(token.KwStorage) || p.at(token.KwCalldata) {
			p.advance()
		}
		nameTok := p.expect(token.Ident, "variable name")
		decl.Name = p.intern(nameTok.Text)
		decl.NameSpan = nameTok.Span
		if _, ok := p.accept(token.Assign); ok {
			decl.Value = p.parseExpr()
		}
		payload := ast.PayloadID(p.builder.Stmts.VarDecls.Allocate(decl))
		return p.builder.Stmts.New(ast.KindVarDecl, p.spanFrom(start), payload)
	}

	expr := p.parseExpr()
	payload := ast.PayloadID(p.builder.Stmts.ExprStmts.Allocate(ast.ExprStmt{Expr: expr}))
	return p.builder.Stmts.New(ast.KindExprStmt, p.spanFrom(start), payload)
}

// startsVarDecl distinguishes `uint256 x = ...` from `x = ...` with a
// bounded lookahead. mapping/function types always mean a declaration;
// an identifier chain followed by another identifier does too.
func (p *parser) startsVarDecl() bool {
	switch p.cur().Kind {
	case token.KwMapping:
		return true
	case token.Ident:
	default:
		return false
	}

	i := 1
	for {
		switch p.peekKind(i) {
		case token.Dot:
			if p.peekKind(i+1) != token.Ident {
				return false
			}
			i += 2
		case token.LBracket:
			// skip to matching ']' at depth 1; give up on nesting
			j := i + 1
			for p.peekKind(j) != token.RBracket {
				if p.peekKind(j) == token.EOF || p.peekKind(j) == token.Semicolon {
					return false
				}
				j++
			}
			i = j + 1
		case token.Ident, token.KwMemory, token.KwStorage, token.KwCalldata:
			return true
		default:
			return false
		}
	}
}
