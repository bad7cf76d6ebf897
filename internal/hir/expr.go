package hir

import (
	"sollint/internal/ast"
	"sollint/internal/source"
)

// ExprKind enumerates HIR expression kinds. These map closely to AST
// expression kinds; parentheses are already gone and ternaries are
// represented as tuples of their arms.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprVarRef
	ExprUnaryOp
	ExprBinaryOp
	ExprAssign
	ExprCall
	ExprFieldAccess
	ExprIndex
	ExprTuple
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprUnaryOp:
		return "UnaryOp"
	case ExprBinaryOp:
		return "BinaryOp"
	case ExprAssign:
		return "Assign"
	case ExprCall:
		return "Call"
	case ExprFieldAccess:
		return "FieldAccess"
	case ExprIndex:
		return "Index"
	case ExprTuple:
		return "Tuple"
	}
	return "Unknown"
}

// Expr is one lowered expression node. Span is a value copy of the
// originating syntax node's span.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Type Type

	// ExprVarRef / ExprFieldAccess
	Name string
	Sym  *Symbol // nil when unresolved

	// ExprUnaryOp / ExprBinaryOp
	Op   ast.BinOp
	UnOp ast.UnOp

	// children, meaning depends on Kind
	LHS     *Expr
	RHS     *Expr
	Operand *Expr
	Callee  *Expr
	Args    []*Expr
	Object  *Expr
	Elems   []*Expr

	// ExprCall extras
	Target *Symbol // resolved callee, nil when unresolved
	// Builtin holds the canonical name of a recognized builtin callee,
	// e.g. "keccak256" or "abi.encodePacked"; empty otherwise.
	Builtin string
	// ResultDiscarded marks calls whose value is dropped on the floor
	// (the call forms a whole expression statement).
	ResultDiscarded bool

	// Literal text for ExprLiteral
	Text string
}

// Walk visits e and every child in depth-first pre-order.
func (e *Expr) Walk(visit func(*Expr)) {
	if e == nil {
		return
	}
	visit(e)
	for _, child := range []*Expr{e.LHS, e.RHS, e.Operand, e.Callee, e.Object} {
		child.Walk(visit)
	}
	for _, arg := range e.Args {
		arg.Walk(visit)
	}
	for _, el := range e.Elems {
		el.Walk(visit)
	}
}

// ContainsOp reports whether the subtree has a binary node with op.
func (e *Expr) ContainsOp(op ast.BinOp) bool {
	found := false
	e.Walk(func(n *Expr) {
		if n.Kind == ExprBinaryOp && n.Op == op {
			found = true
		}
	})
	return found
}
