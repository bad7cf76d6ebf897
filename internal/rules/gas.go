package rules

import (
	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/hir"
	"sollint/internal/lint"
)

var lintAsmKeccak = &lint.Lint{
	ID:          "asm-keccak256",
	Description: "hashing in inline assembly saves the abi-encoding overhead",
	Severity:    diag.SevGas,
	Tier:        lint.TierLate,
}

// asmKeccakPass flags keccak256 builtin calls that could hash via
// inline assembly against scratch space instead of abi-encoding into
// fresh memory first. Needs resolved call targets, hence the late tier.
type asmKeccakPass struct{}

func (p *asmKeccakPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintAsmKeccak}
}

func (p *asmKeccakPass) Entities() []hir.EntityKind {
	return []hir.EntityKind{hir.EntityCall}
}

func (p *asmKeccakPass) Check(ctx *lint.Context, entity lint.Entity) {
	call := entity.Expr
	if call.Builtin != "keccak256" {
		return
	}
	fix := diag.ExampleFix(
		"hash in inline assembly",
		"assembly {\n    mstore(0x00, a)\n    mstore(0x20, b)\n    let hash := keccak256(0x00, 0x40)\n}",
	)
	ctx.EmitWithFix(lintAsmKeccak, call.Span,
		"consider hashing via inline assembly to avoid the abi-encoding allocation", fix)
}

var lintDivideBeforeMultiply = &lint.Lint{
	ID:          "divide-before-multiply",
	Description: "multiplying a division result loses precision",
	Severity:    diag.SevMed,
	Tier:        lint.TierLate,
}

// divideBeforeMultiplyPass flags `(a / b) * c` shapes. Integer division
// truncates, so multiplying afterwards compounds the rounding error;
// reordering to `a * c / b` keeps precision.
type divideBeforeMultiplyPass struct{}

func (p *divideBeforeMultiplyPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintDivideBeforeMultiply}
}

func (p *divideBeforeMultiplyPass) Entities() []hir.EntityKind {
	return []hir.EntityKind{hir.EntityBinary}
}

func (p *divideBeforeMultiplyPass) Check(ctx *lint.Context, entity lint.Entity) {
	e := entity.Expr
	if e.Op != ast.OpMul {
		return
	}
	if e.LHS != nil && e.LHS.ContainsOp(ast.OpDiv) {
		ctx.Emit(lintDivideBeforeMultiply, e.Span,
			"multiplication on the result of a division loses precision; multiply before dividing")
	}
}
