package ast

import (
	"sollint/internal/source"
)

// BinOp enumerates binary operators.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpShl
	OpShr
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	}
	return "?"
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	OpNeg UnOp = iota
	OpNot
	OpBitNot
	OpInc
	OpDec
)

type Expr struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

type IdentExpr struct {
	Name source.StringID
}

// NumberExpr keeps the literal text verbatim; lints care about the
// spelling, not the value.
type NumberExpr struct {
	Text string
}

type StringExpr struct {
	Text string
}

type BoolExpr struct {
	Value bool
}

type BinaryExpr struct {
	Op  BinOp
	LHS ExprID
	RHS ExprID
}

type UnaryExpr struct {
	Op      UnOp
	Operand ExprID
}

type AssignExpr struct {
	LHS ExprID
	RHS ExprID
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

type MemberExpr struct {
	Object     ExprID
	Member     source.StringID
	MemberSpan source.Span
}

type IndexExpr struct {
	Object ExprID
	Index  ExprID
}

type TupleExpr struct {
	Elems []ExprID
}

type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[IdentExpr]
	Numbers  *Arena[NumberExpr]
	Strings  *Arena[StringExpr]
	Bools    *Arena[BoolExpr]
	Binaries *Arena[BinaryExpr]
	Unaries  *Arena[UnaryExpr]
	Assigns  *Arena[AssignExpr]
	Calls    *Arena[CallExpr]
	Members  *Arena[MemberExpr]
	Indexes  *Arena[IndexExpr]
	Tuples   *Arena[TupleExpr]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[IdentExpr](capHint / 2),
		Numbers:  NewArena[NumberExpr](capHint / 4),
		Strings:  NewArena[StringExpr](capHint / 8),
		Bools:    NewArena[BoolExpr](8),
		Binaries: NewArena[BinaryExpr](capHint / 4),
		Unaries:  NewArena[UnaryExpr](capHint / 8),
		Assigns:  NewArena[AssignExpr](capHint / 8),
		Calls:    NewArena[CallExpr](capHint / 4),
		Members:  NewArena[MemberExpr](capHint / 4),
		Indexes:  NewArena[IndexExpr](capHint / 8),
		Tuples:   NewArena[TupleExpr](8),
	}
}

func (e *Exprs) New(kind NodeKind, span source.Span, payloadID PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) Ident(ex *Expr) *IdentExpr   { return e.Idents.Get(uint32(ex.Payload)) }
func (e *Exprs) Number(ex *Expr) *NumberExpr { return e.Numbers.Get(uint32(ex.Payload)) }
func (e *Exprs) String(ex *Expr) *StringExpr { return e.Strings.Get(uint32(ex.Payload)) }
func (e *Exprs) Bool(ex *Expr) *BoolExpr     { return e.Bools.Get(uint32(ex.Payload)) }
func (e *Exprs) Binary(ex *Expr) *BinaryExpr { return e.Binaries.Get(uint32(ex.Payload)) }
func (e *Exprs) Unary(ex *Expr) *UnaryExpr   { return e.Unaries.Get(uint32(ex.Payload)) }
func (e *Exprs) Assign(ex *Expr) *AssignExpr { return e.Assigns.Get(uint32(ex.Payload)) }
func (e *Exprs) Call(ex *Expr) *CallExpr     { return e.Calls.Get(uint32(ex.Payload)) }
func (e *Exprs) Member(ex *Expr) *MemberExpr { return e.Members.Get(uint32(ex.Payload)) }
func (e *Exprs) Index(ex *Expr) *IndexExpr   { return e.Indexes.Get(uint32(ex.Payload)) }
func (e *Exprs) Tuple(ex *Expr) *TupleExpr   { return e.Tuples.Get(uint32(ex.Payload)) }
