package lint

import (
	"fmt"

	"sollint/internal/diag"
	"sollint/internal/hir"
	"sollint/internal/source"
)

// RunLate drives every active late pass over one lowered module. The
// walk mirrors the module's shape: module, then each contract, its state
// variables and functions, then each function's calls, binary operations
// and assembly blocks in source order. Pass panics are confined per
// invocation, same as the early tier.
func (rs *RunSet) RunLate(ctx *Context) {
	if len(rs.latePasses) == 0 || ctx.Module == nil {
		return
	}
	v := &lateVisitor{
		rs:     rs,
		ctx:    ctx,
		passes: rs.newLate(),
	}
	mod := ctx.Module
	v.dispatch(Entity{Kind: hir.EntityModule, Module: mod}, spanOfModule(ctx))
	for _, fn := range mod.Functions {
		v.visitFunction(mod, nil, fn)
	}
	for _, c := range mod.Contracts {
		v.dispatch(Entity{Kind: hir.EntityContract, Module: mod, Contract: c}, c.Span)
		for _, sv := range c.StateVars {
			v.dispatch(Entity{Kind: hir.EntityVariable, Module: mod, Contract: c, Variable: sv}, sv.Span)
			v.visitExprs(mod, c, nil, sv.Value)
		}
		for _, fn := range c.Functions {
			v.visitFunction(mod, c, fn)
		}
	}
	for _, i := range rs.latePasses {
		if fin, ok := v.passes[i].(LateFinalizer); ok {
			v.safeFinalize(i, fin)
		}
	}
}

func spanOfModule(ctx *Context) source.Span {
	if f := ctx.Builder.Files.Get(ctx.AstFile); f != nil {
		return f.Span
	}
	return source.Span{}
}

type lateVisitor struct {
	rs     *RunSet
	ctx    *Context
	passes map[int]LatePass
}

func (v *lateVisitor) dispatch(entity Entity, span source.Span) {
	for _, i := range v.rs.lateByKind[entity.Kind] {
		v.safeCheck(i, v.passes[i], entity, span)
	}
}

func (v *lateVisitor) safeCheck(idx int, pass LatePass, entity Entity, span source.Span) {
	defer func() {
		if r := recover(); r != nil {
			v.ctx.reporter.Report(diag.CodePassFailure, diag.SevHigh, span,
				fmt.Sprintf("pass %s failed on %s entity: %v", passLabel(v.rs.registry.late[idx].lints), entity.Kind, r),
				nil, nil)
		}
	}()
	pass.Check(v.ctx, entity)
}

func (v *lateVisitor) safeFinalize(idx int, fin LateFinalizer) {
	defer func() {
		if r := recover(); r != nil {
			v.ctx.reporter.Report(diag.CodePassFailure, diag.SevHigh, spanOfModule(v.ctx),
				fmt.Sprintf("pass %s failed during finalize: %v", passLabel(v.rs.registry.late[idx].lints), r),
				nil, nil)
		}
	}()
	fin.Finalize(v.ctx)
}

func (v *lateVisitor) visitFunction(mod *hir.Module, c *hir.Contract, fn *hir.Function) {
	v.dispatch(Entity{Kind: hir.EntityFunction, Module: mod, Contract: c, Function: fn}, fn.Span)
	for _, local := range fn.Locals {
		v.dispatch(Entity{Kind: hir.EntityVariable, Module: mod, Contract: c, Function: fn, Variable: local}, local.Span)
	}
	for _, root := range fn.Body {
		v.visitExprs(mod, c, fn, root)
	}
	for _, asm := range fn.Assemblies {
		v.dispatch(Entity{Kind: hir.EntityAssembly, Module: mod, Contract: c, Function: fn, AsmSpan: asm}, asm)
	}
}

// visitExprs surfaces the call and binary entities inside one expression
// tree, pre-order.
func (v *lateVisitor) visitExprs(mod *hir.Module, c *hir.Contract, fn *hir.Function, root *hir.Expr) {
	if root == nil {
		return
	}
	root.Walk(func(e *hir.Expr) {
		switch e.Kind {
		case hir.ExprCall:
			v.dispatch(Entity{Kind: hir.EntityCall, Module: mod, Contract: c, Function: fn, Expr: e}, e.Span)
		case hir.ExprBinaryOp:
			v.dispatch(Entity{Kind: hir.EntityBinary, Module: mod, Contract: c, Function: fn, Expr: e}, e.Span)
		}
	})
}
