package rules

import (
	"fmt"

	"sollint/internal/diag"
	"sollint/internal/hir"
	"sollint/internal/lint"
)

var lintUncheckedCall = &lint.Lint{
	ID:          "unchecked-call",
	Description: "low-level call result is not checked",
	Severity:    diag.SevMed,
	Tier:        lint.TierLate,
}

// lowLevelCalls are the members whose boolean result signals failure
// instead of reverting.
var lowLevelCalls = map[string]bool{
	"call":         true,
	"delegatecall": true,
	"staticcall":   true,
	"send":         true,
}

// uncheckedCallPass flags low-level calls whose result is discarded.
// Depends on the lowering marking result-discarded expression
// statements, hence the late tier.
type uncheckedCallPass struct{}

func (p *uncheckedCallPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintUncheckedCall}
}

func (p *uncheckedCallPass) Entities() []hir.EntityKind {
	return []hir.EntityKind{hir.EntityCall}
}

func (p *uncheckedCallPass) Check(ctx *lint.Context, entity lint.Entity) {
	call := entity.Expr
	if !call.ResultDiscarded {
		return
	}
	callee := call.Callee
	if callee == nil || callee.Kind != hir.ExprFieldAccess {
		return
	}
	if !lowLevelCalls[callee.Name] {
		return
	}
	ctx.Emit(lintUncheckedCall, call.Span,
		fmt.Sprintf("return value of %q is ignored; a failed low-level call does not revert", callee.Name))
}
