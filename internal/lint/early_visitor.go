package lint

import (
	"fmt"

	"sollint/internal/ast"
	"sollint/internal/diag"
)

// RunEarly drives every active early pass over one parsed source unit.
// Nodes are visited pre-order in source order, so passes observe
// declarations before their bodies and expressions outside-in. A panic
// inside a pass is confined to that invocation: the traversal keeps
// going and the failure surfaces as a pass-failure diagnostic.
func (rs *RunSet) RunEarly(ctx *Context) {
	if len(rs.earlyPasses) == 0 {
		return
	}
	v := &earlyVisitor{
		rs:     rs,
		ctx:    ctx,
		passes: rs.newEarly(),
	}
	file := ctx.Builder.Files.Get(ctx.AstFile)
	if file == nil {
		return
	}
	v.dispatch(Node{Kind: ast.KindSourceUnit, Span: file.Span})
	for _, id := range file.Items {
		v.visitItem(id)
	}
	for _, i := range rs.earlyPasses {
		if fin, ok := v.passes[i].(EarlyFinalizer); ok {
			v.safeFinalize(i, fin)
		}
	}
}

type earlyVisitor struct {
	rs     *RunSet
	ctx    *Context
	passes map[int]EarlyPass
}

func (v *earlyVisitor) dispatch(node Node) {
	for _, i := range v.rs.earlyByKind[node.Kind] {
		v.safeCheck(i, v.passes[i], node)
	}
}

func (v *earlyVisitor) safeCheck(idx int, pass EarlyPass, node Node) {
	defer func() {
		if r := recover(); r != nil {
			v.ctx.reporter.Report(diag.CodePassFailure, diag.SevHigh, node.Span,
				fmt.Sprintf("pass %s failed on %s node: %v", passLabel(v.rs.registry.early[idx].lints), node.Kind, r),
				nil, nil)
		}
	}()
	pass.Check(v.ctx, node)
}

func (v *earlyVisitor) safeFinalize(idx int, fin EarlyFinalizer) {
	file := v.ctx.Builder.Files.Get(v.ctx.AstFile)
	defer func() {
		if r := recover(); r != nil {
			v.ctx.reporter.Report(diag.CodePassFailure, diag.SevHigh, file.Span,
				fmt.Sprintf("pass %s failed during finalize: %v", passLabel(v.rs.registry.early[idx].lints), r),
				nil, nil)
		}
	}()
	fin.Finalize(v.ctx)
}

// passLabel names a pass by its lint ids for failure reporting.
func passLabel(lints []*Lint) string {
	if len(lints) == 0 {
		return "<unnamed>"
	}
	s := string(lints[0].ID)
	for _, l := range lints[1:] {
		s += "," + string(l.ID)
	}
	return s
}

func (v *earlyVisitor) visitItem(id ast.ItemID) {
	items := v.ctx.Builder.Items
	item := items.Get(id)
	if item == nil {
		return
	}
	v.dispatch(Node{Kind: item.Kind, Span: item.Span, Item: id})
	switch item.Kind {
	case ast.KindContract:
		for _, member := range items.Contract(item).Members {
			v.visitItem(member)
		}
	case ast.KindFunction:
		fn := items.Function(item)
		for _, mod := range fn.Modifiers {
			for _, arg := range mod.Args {
				v.visitExpr(arg)
			}
		}
		v.visitStmt(fn.Body)
	case ast.KindModifier:
		v.visitStmt(items.Modifier(item).Body)
	case ast.KindStateVar:
		v.visitExpr(items.StateVar(item).Value)
	}
}

func (v *earlyVisitor) visitStmt(id ast.StmtID) {
	if id == ast.NoStmtID {
		return
	}
	stmts := v.ctx.Builder.Stmts
	st := stmts.Get(id)
	if st == nil {
		return
	}
	v.dispatch(Node{Kind: st.Kind, Span: st.Span, Stmt: id})
	switch st.Kind {
	case ast.KindBlock:
		for _, child := range stmts.Block(st).Stmts {
			v.visitStmt(child)
		}
	case ast.KindVarDecl:
		v.visitExpr(stmts.VarDecl(st).Value)
	case ast.KindExprStmt:
		v.visitExpr(stmts.ExprStmt(st).Expr)
	case ast.KindReturn:
		v.visitExpr(stmts.Return(st).Value)
	case ast.KindIf:
		s := stmts.If(st)
		v.visitExpr(s.Cond)
		v.visitStmt(s.Then)
		v.visitStmt(s.Else)
	case ast.KindFor:
		s := stmts.For(st)
		v.visitStmt(s.Init)
		v.visitExpr(s.Cond)
		v.visitExpr(s.Post)
		v.visitStmt(s.Body)
	case ast.KindEmit:
		v.visitExpr(stmts.Emit(st).Call)
	}
}

func (v *earlyVisitor) visitExpr(id ast.ExprID) {
	if id == ast.NoExprID {
		return
	}
	exprs := v.ctx.Builder.Exprs
	ex := exprs.Get(id)
	if ex == nil {
		return
	}
	v.dispatch(Node{Kind: ex.Kind, Span: ex.Span, Expr: id})
	switch ex.Kind {
	case ast.KindBinary:
		e := exprs.Binary(ex)
		v.visitExpr(e.LHS)
		v.visitExpr(e.RHS)
	case ast.KindUnary:
		v.visitExpr(exprs.Unary(ex).Operand)
	case ast.KindAssign:
		e := exprs.Assign(ex)
		v.visitExpr(e.LHS)
		v.visitExpr(e.RHS)
	case ast.KindCall:
		e := exprs.Call(ex)
		v.visitExpr(e.Callee)
		for _, arg := range e.Args {
			v.visitExpr(arg)
		}
	case ast.KindMember:
		v.visitExpr(exprs.Member(ex).Object)
	case ast.KindIndex:
		e := exprs.Index(ex)
		v.visitExpr(e.Object)
		v.visitExpr(e.Index)
	case ast.KindTuple:
		for _, el := range exprs.Tuple(ex).Elems {
			v.visitExpr(el)
		}
	}
}
