package rules

import (
	"fmt"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/lint"
)

var lintIncorrectShift = &lint.Lint{
	ID:          "incorrect-shift",
	Description: "shift operands look reversed",
	Severity:    diag.SevHigh,
	Tier:        lint.TierEarly,
}

// incorrectShiftPass flags shifts whose left operand is a literal while
// the right is not, e.g. `1 << offset` written as `offset << 1` in
// reverse. Shifting a constant by a variable amount is almost always a
// swapped-operand mistake in this codebase's domain.
type incorrectShiftPass struct{}

func (p *incorrectShiftPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintIncorrectShift}
}

func (p *incorrectShiftPass) Kinds() []ast.NodeKind {
	return []ast.NodeKind{ast.KindBinary}
}

func (p *incorrectShiftPass) Check(ctx *lint.Context, node lint.Node) {
	exprs := ctx.Builder.Exprs
	ex := exprs.Get(node.Expr)
	bin := exprs.Binary(ex)
	if bin.Op != ast.OpShl && bin.Op != ast.OpShr {
		return
	}
	lhs := exprs.Get(bin.LHS)
	rhs := exprs.Get(bin.RHS)
	if lhs == nil || rhs == nil {
		return
	}
	if lhs.Kind == ast.KindNumberLit && rhs.Kind != ast.KindNumberLit {
		ctx.Emit(lintIncorrectShift, node.Span,
			fmt.Sprintf("the operands of %q appear reversed: constant shifted by a variable amount", bin.Op))
	}
}
