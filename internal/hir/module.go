package hir

import (
	"sollint/internal/ast"
	"sollint/internal/source"
)

// Type is the minimal resolved type the lint tier consumes: the canonical
// source spelling plus a resolution flag. Unresolved types are a valid
// observable state; late passes must degrade gracefully around them.
type Type struct {
	Name       string
	Unresolved bool
}

// SymbolKind classifies what a resolved reference points at.
type SymbolKind uint8

const (
	SymBuiltin SymbolKind = iota
	SymContract
	SymFunction
	SymStateVar
	SymLocal
	SymParam
	SymEvent
	SymStruct
	SymEnum
	SymModifier
)

// Symbol is one resolved declaration. Spans are value copies of the
// originating syntax spans; HIR never owns syntax nodes.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Type     Type
	DeclSpan source.Span
}

// Module is the lowered form of one source unit.
type Module struct {
	Source    source.FileID
	SourceAST ast.FileID
	Contracts []*Contract
	Functions []*Function // file-level functions

	// Unresolved counts references lowering could not bind. Non-zero is a
	// recoverable condition, not a failure.
	Unresolved int
}

// Contract is a lowered contract-like declaration.
type Contract struct {
	CKind    ast.ContractKind
	Name     string
	Span     source.Span
	NameSpan source.Span
	Syntax   ast.ItemID

	StateVars []*Variable
	Functions []*Function
}

// Function is a lowered function or modifier body.
type Function struct {
	FKind      ast.FnKind
	Name       string
	Span       source.Span
	NameSpan   source.Span
	Syntax     ast.ItemID
	Visibility ast.Visibility
	Mutability ast.Mutability

	Params  []*Variable
	Returns []*Variable
	Locals  []*Variable

	// Body collects the function's expressions in source order; statement
	// structure is flattened since lint passes subscribe to constructs,
	// not to control flow.
	Body []*Expr

	// Assemblies are the opaque inline-assembly blocks of the body.
	Assemblies []source.Span
}

// Variable is a lowered state variable, parameter or local.
type Variable struct {
	Sym      *Symbol
	IsState  bool
	VarMut   ast.VarMutability
	Visibility ast.Visibility
	Span     source.Span
	NameSpan source.Span

	// Value is the initializer, when present.
	Value *Expr
}
