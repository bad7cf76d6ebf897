package ast

import (
	"sollint/internal/source"
)

type Stmt struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type VarDeclStmt struct {
	Type     TypeRef
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID // NoExprID when declared without initializer
}

type ExprStmt struct {
	Expr ExprID
}

type ReturnStmt struct {
	Value ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID when absent
}

type ForStmt struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

type EmitStmt struct {
	Call ExprID
}

// AssemblyStmt keeps the inline-assembly body opaque; only its raw text
// span is retained.
type AssemblyStmt struct {
	BodySpan source.Span
}

type Stmts struct {
	Arena      *Arena[Stmt]
	Blocks     *Arena[BlockStmt]
	VarDecls   *Arena[VarDeclStmt]
	ExprStmts  *Arena[ExprStmt]
	Returns    *Arena[ReturnStmt]
	Ifs        *Arena[IfStmt]
	Fors       *Arena[ForStmt]
	Emits      *Arena[EmitStmt]
	Assemblies *Arena[AssemblyStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Blocks:     NewArena[BlockStmt](capHint / 4),
		VarDecls:   NewArena[VarDeclStmt](capHint / 4),
		ExprStmts:  NewArena[ExprStmt](capHint / 2),
		Returns:    NewArena[ReturnStmt](capHint / 8),
		Ifs:        NewArena[IfStmt](capHint / 8),
		Fors:       NewArena[ForStmt](capHint / 8),
		Emits:      NewArena[EmitStmt](8),
		Assemblies: NewArena[AssemblyStmt](4),
	}
}

func (s *Stmts) New(kind NodeKind, span source.Span, payloadID PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) Block(st *Stmt) *BlockStmt       { return s.Blocks.Get(uint32(st.Payload)) }
func (s *Stmts) VarDecl(st *Stmt) *VarDeclStmt   { return s.VarDecls.Get(uint32(st.Payload)) }
func (s *Stmts) ExprStmt(st *Stmt) *ExprStmt     { return s.ExprStmts.Get(uint32(st.Payload)) }
func (s *Stmts) Return(st *Stmt) *ReturnStmt     { return s.Returns.Get(uint32(st.Payload)) }
func (s *Stmts) If(st *Stmt) *IfStmt             { return s.Ifs.Get(uint32(st.Payload)) }
func (s *Stmts) For(st *Stmt) *ForStmt           { return s.Fors.Get(uint32(st.Payload)) }
func (s *Stmts) Emit(st *Stmt) *EmitStmt         { return s.Emits.Get(uint32(st.Payload)) }
func (s *Stmts) Assembly(st *Stmt) *AssemblyStmt { return s.Assemblies.Get(uint32(st.Payload)) }
