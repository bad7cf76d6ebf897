package rules

import (
	"fmt"
	"strings"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/lint"
	"sollint/internal/source"
)

var lintUnusedImport = &lint.Lint{
	ID:          "unused-import",
	Description: "imported name is never referenced",
	Severity:    diag.SevInfo,
	Tier:        lint.TierEarly,
}

// unusedImportPass tracks every name an import binds and every name the
// rest of the unit references, then reports the difference after the
// traversal. Type references never appear as expression nodes, so the
// pass also harvests names from declaration signatures.
type unusedImportPass struct {
	imported []importedName
	used     map[string]bool
}

type importedName struct {
	name string
	span source.Span
}

func newUnusedImportPass() *unusedImportPass {
	return &unusedImportPass{used: make(map[string]bool)}
}

func (p *unusedImportPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintUnusedImport}
}

func (p *unusedImportPass) Kinds() []ast.NodeKind {
	return []ast.NodeKind{
		ast.KindImport, ast.KindIdent,
		ast.KindContract, ast.KindFunction, ast.KindModifier,
		ast.KindStateVar, ast.KindEvent, ast.KindStruct, ast.KindVarDecl,
	}
}

func (p *unusedImportPass) Check(ctx *lint.Context, node lint.Node) {
	items := ctx.Builder.Items
	switch node.Kind {
	case ast.KindImport:
		imp := items.Import(items.Get(node.Item))
		p.collectImport(ctx, imp)
	case ast.KindIdent:
		ex := ctx.Builder.Exprs.Get(node.Expr)
		p.use(ctx.Name(ctx.Builder.Exprs.Ident(ex).Name))
	case ast.KindContract:
		c := items.Contract(items.Get(node.Item))
		for _, base := range c.Bases {
			p.useType(ctx.Name(base.Name))
		}
	case ast.KindFunction:
		fn := items.Function(items.Get(node.Item))
		p.useParams(ctx, fn.Params)
		p.useParams(ctx, fn.Returns)
		for _, mod := range fn.Modifiers {
			p.use(ctx.Name(mod.Name))
		}
	case ast.KindModifier:
		p.useParams(ctx, items.Modifier(items.Get(node.Item)).Params)
	case ast.KindStateVar:
		p.useType(ctx.Name(items.StateVar(items.Get(node.Item)).Type.Name))
	case ast.KindEvent:
		p.useParams(ctx, items.Event(items.Get(node.Item)).Params)
	case ast.KindStruct:
		p.useParams(ctx, items.Struct(items.Get(node.Item)).Fields)
	case ast.KindVarDecl:
		st := ctx.Builder.Stmts.Get(node.Stmt)
		p.useType(ctx.Name(ctx.Builder.Stmts.VarDecl(st).Type.Name))
	}
}

func (p *unusedImportPass) collectImport(ctx *lint.Context, imp *ast.ImportItem) {
	for _, sym := range imp.Symbols {
		name := ctx.Name(sym.Alias)
		if name == "" {
			name = ctx.Name(sym.Name)
		}
		p.imported = append(p.imported, importedName{name: name, span: sym.Span})
	}
	// `import "x" as y` binds a single namespace name. Plain path
	// imports bind nothing checkable.
	if alias := ctx.Name(imp.Alias); alias != "" {
		p.imported = append(p.imported, importedName{name: alias, span: imp.PathSpan})
	}
}

func (p *unusedImportPass) use(name string) {
	if name != "" {
		p.used[name] = true
	}
}

// useType records a type reference; dotted and array spellings count as
// a use of their leading segment.
func (p *unusedImportPass) useType(name string) {
	if name == "" {
		return
	}
	if i := strings.IndexAny(name, ".[ "); i >= 0 {
		name = name[:i]
	}
	p.used[name] = true
}

func (p *unusedImportPass) useParams(ctx *lint.Context, params []ast.Param) {
	for _, param := range params {
		p.useType(ctx.Name(param.Type.Name))
	}
}

func (p *unusedImportPass) Finalize(ctx *lint.Context) {
	for _, imp := range p.imported {
		if p.used[imp.name] {
			continue
		}
		ctx.Emit(lintUnusedImport, imp.span,
			fmt.Sprintf("imported name %q is never used", imp.name))
	}
}
