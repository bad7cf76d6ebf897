package parser

import (
	"sollint/internal/ast"
	"sollint/internal/source"
	"sollint/internal/token"
)

// binding powers, loosest first
const (
	precAssign = iota + 1
	precTernary
	precOr
	precAnd
	precEquality
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precPower
)

var binOps = map[token.Kind]struct {
	prec int
	op   ast.BinOp
}{
	token.OrOr:    {precOr, ast.OpOr},
	token.AndAnd:  {precAnd, ast.OpAnd},
	token.EqEq:    {precEquality, ast.OpEq},
	token.BangEq:  {precEquality, ast.OpNe},
	token.Lt:      {precCompare, ast.OpLt},
	token.Gt:      {precCompare, ast.OpGt},
	token.LtEq:    {precCompare, ast.OpLe},
	token.GtEq:    {precCompare, ast.OpGe},
	token.Pipe:    {precBitOr, ast.OpBitOr},
	token.Caret:   {precBitXor, ast.OpBitXor},
	token.Amp:     {precBitAnd, ast.OpBitAnd},
	token.Shl:     {precShift, ast.OpShl},
	token.Shr:     {precShift, ast.OpShr},
	token.Plus:    {precAdditive, ast.OpAdd},
	token.Minus:   {precAdditive, ast.OpSub},
	token.Star:    {precMultiplicative, ast.OpMul},
	token.Slash:   {precMultiplicative, ast.OpDiv},
	token.Percent: {precMultiplicative, ast.OpMod},
	token.StarStar: {precPower, ast.OpPow},
}

func (p *parser) parseExpr() ast.ExprID {
	return p.parseBinary(precAssign)
}

func (p *parser) parseBinary(minPrec int) ast.ExprID {
	lhs := p.parseUnary()

	for {
		tok := p.cur()

		if tok.Kind == token.Assign || tok.Kind == token.PlusAssign ||
			tok.Kind == token.MinusAssign || tok.Kind == token.StarAssign ||
			tok.Kind == token.SlashAssign {
			if minPrec > precAssign {
				return lhs
			}
			p.advance()
			rhs := p.parseBinary(precAssign) // right-associative
			lhs = p.newAssign(lhs, rhs)
			continue
		}

		if tok.Kind == token.Question {
			if minPrec > precTernary {
				return lhs
			}
			// a ? b : c folds into a tuple payload; lints only need spans
			p.advance()
			thenExpr := p.parseBinary(precTernary)
			p.expect(token.Colon, "':' in conditional")
			elseExpr := p.parseBinary(precTernary)
			lhs = p.newTuple([]ast.ExprID{lhs, thenExpr, elseExpr})
			continue
		}

		entry, ok := binOps[tok.Kind]
		if !ok || entry.prec < minPrec {
			return lhs
		}
		p.advance()
		rhs := p.parseBinary(entry.prec + 1)
		lhs = p.newBinary(entry.op, lhs, rhs)
	}
}

func (p *parser) parseUnary() ast.ExprID {
	start := p.cur().Span.Start
	var op ast.UnOp
	switch p.cur().Kind {
	case token.Minus:
		op = ast.OpNeg
	case token.Bang:
		op = ast.OpNot
	case token.Tilde:
		op = ast.OpBitNot
	case token.Inc:
		op = ast.OpInc
	case token.Dec:
		op = ast.OpDec
	case token.KwNew, token.KwDelete:
		p.advance()
		return p.parseUnary()
	default:
		return p.parsePostfix()
	}
	p.advance()
	operand := p.parseUnary()

	payload := ast.PayloadID(p.builder.Exprs.Unaries.Allocate(ast.UnaryExpr{Op: op, Operand: operand}))
	return p.builder.Exprs.New(ast.KindUnary, p.spanFrom(start), payload)
}

func (p *parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()

	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed {
				args = append(args, p.parseExpr())
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			p.expect(token.RParen, "')' closing call")
			expr = p.newCall(expr, args)

		case token.Dot:
			p.advance()
			memberTok := p.expect(token.Ident, "member name")
			payload := ast.PayloadID(p.builder.Exprs.Members.Allocate(ast.MemberExpr{
				Object:     expr,
				Member:     p.intern(memberTok.Text),
				MemberSpan: memberTok.Span,
			}))
			sp := p.exprSpan(expr).Cover(memberTok.Span)
			expr = p.builder.Exprs.New(ast.KindMember, sp, payload)

		case token.LBracket:
			p.advance()
			var index ast.ExprID
			if !p.at(token.RBracket) {
				index = p.parseExpr()
			}
			closeTok := p.expect(token.RBracket, "']' closing index")
			payload := ast.PayloadID(p.builder.Exprs.Indexes.Allocate(ast.IndexExpr{
				Object: expr,
				Index:  index,
			}))
			sp := p.exprSpan(expr).Cover(closeTok.Span)
			expr = p.builder.Exprs.New(ast.KindIndex, sp, payload)

		case token.Inc, token.Dec:
			tok := p.advance()
			op := ast.OpInc
			if tok.Kind == token.Dec {
				op = ast.OpDec
			}
			payload := ast.PayloadID(p.builder.Exprs.Unaries.Allocate(ast.UnaryExpr{Op: op, Operand: expr}))
			sp := p.exprSpan(expr).Cover(tok.Span)
			expr = p.builder.Exprs.New(ast.KindUnary, sp, payload)

		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() ast.ExprID {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident, token.KwPayable, token.KwFrom:
		// `payable(...)` casts and contextual keywords parse as identifiers
		p.advance()
		payload := ast.PayloadID(p.builder.Exprs.Idents.Allocate(ast.IdentExpr{
			Name: p.intern(tok.Text),
		}))
		return p.builder.Exprs.New(ast.KindIdent, tok.Span, payload)

	case token.Number:
		p.advance()
		payload := ast.PayloadID(p.builder.Exprs.Numbers.Allocate(ast.NumberExpr{Text: tok.Text}))
		return p.builder.Exprs.New(ast.KindNumberLit, tok.Span, payload)

	case token.String:
		p.advance()
		payload := ast.PayloadID(p.builder.Exprs.Strings.Allocate(ast.StringExpr{Text: tok.Text}))
		return p.builder.Exprs.New(ast.KindStringLit, tok.Span, payload)

	case token.KwTrue, token.KwFalse:
		p.advance()
		payload := ast.PayloadID(p.builder.Exprs.Bools.Allocate(ast.BoolExpr{
			Value: tok.Kind == token.KwTrue,
		}))
		return p.builder.Exprs.New(ast.KindBoolLit, tok.Span, payload)

	case token.LParen:
		start := tok.Span.Start
		p.advance()
		var elems []ast.ExprID
		for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed {
			elems = append(elems, p.parseExpr())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen, "')'")
		if len(elems) == 1 {
			return elems[0]
		}
		payload := ast.PayloadID(p.builder.Exprs.Tuples.Allocate(ast.TupleExpr{Elems: elems}))
		return p.builder.Exprs.New(ast.KindTuple, p.spanFrom(start), payload)

	default:
		p.errorf(tok.Span, "expected expression")
		return ast.NoExprID
	}
}

func (p *parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.builder.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{File: p.file.ID}
}

func (p *parser) newBinary(op ast.BinOp, lhs, rhs ast.ExprID) ast.ExprID {
	sp := p.exprSpan(lhs).Cover(p.exprSpan(rhs))
	payload := ast.PayloadID(p.builder.Exprs.Binaries.Allocate(ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}))
	return p.builder.Exprs.New(ast.KindBinary, sp, payload)
}

func (p *parser) newAssign(lhs, rhs ast.ExprID) ast.ExprID {
	sp := p.exprSpan(lhs).Cover(p.exprSpan(rhs))
	payload := ast.PayloadID(p.builder.Exprs.Assigns.Allocate(ast.AssignExpr{LHS: lhs, RHS: rhs}))
	return p.builder.Exprs.New(ast.KindAssign, sp, payload)
}

func (p *parser) newCall(callee ast.ExprID, args []ast.ExprID) ast.ExprID {
	sp := p.exprSpan(callee)
	if p.pos > 0 {
		sp = sp.Cover(p.toks[p.pos-1].Span)
	}
	payload := ast.PayloadID(p.builder.Exprs.Calls.Allocate(ast.CallExpr{Callee: callee, Args: args}))
	return p.builder.Exprs.New(ast.KindCall, sp, payload)
}

func (p *parser) newTuple(elems []ast.ExprID) ast.ExprID {
	sp := p.exprSpan(elems[0])
	if p.pos > 0 {
		sp = sp.Cover(p.toks[p.pos-1].Span)
	}
	payload := ast.PayloadID(p.builder.Exprs.Tuples.Allocate(ast.TupleExpr{Elems: elems}))
	return p.builder.Exprs.New(ast.KindTuple, sp, payload)
}
