package hir

import (
	"sollint/internal/ast"
)

type funcLowerer struct {
	*lowerer
	scope  *contractScope
	fn     *Function
	locals map[string]*Symbol
}

func (l *lowerer) lowerFunction(itemID ast.ItemID, item *ast.Item, scope *contractScope) *Function {
	decl := l.builder.Items.Function(item)

	fn := &Function{
		FKind:      decl.FKind,
		Name:       l.name(decl.Name),
		Span:       item.Span,
		NameSpan:   decl.NameSpan,
		Syntax:     itemID,
		Visibility: decl.Visibility,
		Mutability: decl.Mutability,
	}

	fl := &funcLowerer{
		lowerer: l,
		scope:   scope,
		fn:      fn,
		locals:  make(map[string]*Symbol),
	}

	fn.Params = fl.lowerParams(decl.Params, SymParam)
	fn.Returns = fl.lowerParams(decl.Returns, SymParam)

	if decl.Body.IsValid() {
		fl.lowerStmt(decl.Body)
	}
	return fn
}

func (l *lowerer) lowerModifier(itemID ast.ItemID, item *ast.Item, scope *contractScope) *Function {
	decl := l.builder.Items.Modifier(item)

	fn := &Function{
		Name:       l.name(decl.Name),
		Span:       item.Span,
		NameSpan:   decl.NameSpan,
		Syntax:     itemID,
		Visibility: ast.VisInternal,
	}

	fl := &funcLowerer{
		lowerer: l,
		scope:   scope,
		fn:      fn,
		locals:  make(map[string]*Symbol),
	}
	fn.Params = fl.lowerParams(decl.Params, SymParam)
	if decl.Body.IsValid() {
		fl.lowerStmt(decl.Body)
	}
	return fn
}

func (fl *funcLowerer) lowerParams(params []ast.Param, kind SymbolKind) []*Variable {
	out := make([]*Variable, 0, len(params))
	for _, p := range params {
		name := fl.name(p.Name)
		sym := &Symbol{
			Kind:     kind,
			Name:     name,
			Type:     fl.resolveType(p.Type, fl.scope),
			DeclSpan: p.Span,
		}
		if name != "" {
			fl.locals[name] = sym
		}
		out = append(out, &Variable{
			Sym:      sym,
			Span:     p.Span,
			NameSpan: p.Span,
		})
	}
	return out
}

func (fl *funcLowerer) lowerStmt(stmtID ast.StmtID) {
	stmts := fl.builder.Stmts
	stmt := stmts.Get(stmtID)
	if stmt == nil {
		return
	}

	switch stmt.Kind {
	case ast.KindBlock:
		for _, child := range stmts.Block(stmt).Stmts {
			fl.lowerStmt(child)
		}

	case ast.KindVarDecl:
		decl := stmts.VarDecl(stmt)
		name := fl.name(decl.Name)
		sym := &Symbol{
			Kind:     SymLocal,
			Name:     name,
			Type:     fl.resolveType(decl.Type, fl.scope),
			DeclSpan: decl.NameSpan,
		}
		if name != "" {
			fl.locals[name] = sym
		}
		v := &Variable{
			Sym:      sym,
			Span:     stmt.Span,
			NameSpan: decl.NameSpan,
		}
		if decl.Value.IsValid() {
			v.Value = fl.lowerExpr(decl.Value)
			fl.pushExpr(v.Value)
		}
		if fl.fn != nil {
			fl.fn.Locals = append(fl.fn.Locals, v)
		}

	case ast.KindExprStmt:
		expr := fl.lowerExpr(stmts.ExprStmt(stmt).Expr)
		if expr != nil && expr.Kind == ExprCall {
			expr.ResultDiscarded = true
		}
		fl.pushExpr(expr)

	case ast.KindReturn:
		ret := stmts.Return(stmt)
		if ret.Value.IsValid() {
			fl.pushExpr(fl.lowerExpr(ret.Value))
		}

	case ast.KindIf:
		ifStmt := stmts.If(stmt)
		fl.pushExpr(fl.lowerExpr(ifStmt.Cond))
		fl.lowerStmt(ifStmt.Then)
		fl.lowerStmt(ifStmt.Else)

	case ast.KindFor:
		forStmt := stmts.For(stmt)
		fl.lowerStmt(forStmt.Init)
		if forStmt.Cond.IsValid() {
			fl.pushExpr(fl.lowerExpr(forStmt.Cond))
		}
		if forStmt.Post.IsValid() {
			fl.pushExpr(fl.lowerExpr(forStmt.Post))
		}
		fl.lowerStmt(forStmt.Body)

	case ast.KindEmit:
		fl.pushExpr(fl.lowerExpr(stmts.Emit(stmt).Call))

	case ast.KindAssembly:
		if fl.fn != nil {
			fl.fn.Assemblies = append(fl.fn.Assemblies, stmts.Assembly(stmt).BodySpan)
		}
	}
}

func (fl *funcLowerer) pushExpr(e *Expr) {
	if e != nil && fl.fn != nil {
		fl.fn.Body = append(fl.fn.Body, e)
	}
}

// resolveIdent binds a name against locals, then contract members, then
// module scope, then builtins.
func (fl *funcLowerer) resolveIdent(name string) *Symbol {
	if sym, ok := fl.locals[name]; ok {
		return sym
	}
	if fl.scope != nil {
		if sym, ok := fl.scope.members[name]; ok {
			return sym
		}
	}
	if sym, ok := fl.moduleScope[name]; ok {
		return sym
	}
	if builtinNames[name] {
		return &Symbol{Kind: SymBuiltin, Name: name}
	}
	return nil
}

func (fl *funcLowerer) lowerExpr(exprID ast.ExprID) *Expr {
	exprs := fl.builder.Exprs
	e := exprs.Get(exprID)
	if e == nil {
		return nil
	}

	switch e.Kind {
	case ast.KindIdent:
		name := fl.name(exprs.Ident(e).Name)
		sym := fl.resolveIdent(name)
		out := &Expr{Kind: ExprVarRef, Span: e.Span, Name: name, Sym: sym}
		if sym != nil {
			out.Type = sym.Type
		} else if isElementaryType(name) {
			// elementary type used as a cast callee
			out.Type = Type{Name: name}
		} else {
			fl.module.Unresolved++
			out.Type = Type{Unresolved: true}
		}
		return out

	case ast.KindNumberLit:
		return &Expr{Kind: ExprLiteral, Span: e.Span, Type: Type{Name: "uint256"}, Text: exprs.Number(e).Text}
	case ast.KindStringLit:
		return &Expr{Kind: ExprLiteral, Span: e.Span, Type: Type{Name: "string"}, Text: exprs.String(e).Text}
	case ast.KindBoolLit:
		return &Expr{Kind: ExprLiteral, Span: e.Span, Type: Type{Name: "bool"}}

	case ast.KindBinary:
		bin := exprs.Binary(e)
		out := &Expr{
			Kind: ExprBinaryOp,
			Span: e.Span,
			Op:   bin.Op,
			LHS:  fl.lowerExpr(bin.LHS),
			RHS:  fl.lowerExpr(bin.RHS),
		}
		if out.LHS != nil {
			out.Type = out.LHS.Type
		}
		return out

	case ast.KindUnary:
		un := exprs.Unary(e)
		out := &Expr{
			Kind:    ExprUnaryOp,
			Span:    e.Span,
			UnOp:    un.Op,
			Operand: fl.lowerExpr(un.Operand),
		}
		if out.Operand != nil {
			out.Type = out.Operand.Type
		}
		return out

	case ast.KindAssign:
		as := exprs.Assign(e)
		return &Expr{
			Kind: ExprAssign,
			Span: e.Span,
			LHS:  fl.lowerExpr(as.LHS),
			RHS:  fl.lowerExpr(as.RHS),
		}

	case ast.KindCall:
		call := exprs.Call(e)
		out := &Expr{
			Kind:   ExprCall,
			Span:   e.Span,
			Callee: fl.lowerExpr(call.Callee),
		}
		for _, arg := range call.Args {
			out.Args = append(out.Args, fl.lowerExpr(arg))
		}
		fl.bindCallTarget(out)
		return out

	case ast.KindMember:
		member := exprs.Member(e)
		out := &Expr{
			Kind:   ExprFieldAccess,
			Span:   e.Span,
			Name:   fl.name(member.Member),
			Object: fl.lowerExpr(member.Object),
		}
		return out

	case ast.KindIndex:
		idx := exprs.Index(e)
		out := &Expr{
			Kind:   ExprIndex,
			Span:   e.Span,
			Object: fl.lowerExpr(idx.Object),
		}
		if idx.Index.IsValid() {
			out.Args = append(out.Args, fl.lowerExpr(idx.Index))
		}
		return out

	case ast.KindTuple:
		tup := exprs.Tuple(e)
		out := &Expr{Kind: ExprTuple, Span: e.Span}
		for _, el := range tup.Elems {
			out.Elems = append(out.Elems, fl.lowerExpr(el))
		}
		return out
	}
	return nil
}

// bindCallTarget resolves who a call lands on: a known builtin, a member
// builtin path like abi.encodePacked, a user function, or nothing.
func (fl *funcLowerer) bindCallTarget(call *Expr) {
	callee := call.Callee
	if callee == nil {
		return
	}
	switch callee.Kind {
	case ExprVarRef:
		if callee.Sym != nil {
			call.Target = callee.Sym
			if callee.Sym.Kind == SymBuiltin {
				call.Builtin = callee.Sym.Name
			}
		}
	case ExprFieldAccess:
		if path, ok := builtinPath(callee); ok {
			call.Builtin = path
			call.Target = &Symbol{Kind: SymBuiltin, Name: path}
		}
	}
}

// builtinPath flattens a field access into a dotted path when the root
// is a recognized builtin namespace.
func builtinPath(e *Expr) (string, bool) {
	if e.Kind != ExprFieldAccess || e.Object == nil {
		return "", false
	}
	root := e.Object
	if root.Kind != ExprVarRef || !builtinNamespaces[root.Name] {
		return "", false
	}
	return root.Name + "." + e.Name, true
}

var builtinNames = map[string]bool{
	"keccak256": true,
	"sha256":    true,
	"ripemd160": true,
	"ecrecover": true,
	"require":   true,
	"assert":    true,
	"revert":    true,
	"addmod":    true,
	"mulmod":    true,
	"selfdestruct": true,
	"payable":   true,
	"address":   true,
	"type":      true,
}

var builtinNamespaces = map[string]bool{
	"abi":   true,
	"msg":   true,
	"block": true,
	"tx":    true,
}
