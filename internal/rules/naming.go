package rules

import (
	"fmt"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/lint"
	"sollint/internal/source"
)

var (
	lintMixedCaseFunction = &lint.Lint{
		ID:          "mixed-case-function",
		Description: "function names should use mixedCase",
		Severity:    diag.SevInfo,
		HelpLink:    "https://docs.soliditylang.org/en/latest/style-guide.html#function-names",
		Tier:        lint.TierEarly,
	}
	lintMixedCaseVariable = &lint.Lint{
		ID:          "mixed-case-variable",
		Description: "mutable variable names should use mixedCase",
		Severity:    diag.SevInfo,
		HelpLink:    "https://docs.soliditylang.org/en/latest/style-guide.html#local-and-state-variable-names",
		Tier:        lint.TierEarly,
	}
	lintScreamingSnakeCase = &lint.Lint{
		ID:          "screaming-snake-case",
		Description: "constant and immutable names should use SCREAMING_SNAKE_CASE",
		Severity:    diag.SevInfo,
		HelpLink:    "https://docs.soliditylang.org/en/latest/style-guide.html#constants",
		Tier:        lint.TierEarly,
	}
	lintPascalCaseStruct = &lint.Lint{
		ID:          "pascal-case-struct",
		Description: "struct names should use PascalCase",
		Severity:    diag.SevInfo,
		HelpLink:    "https://docs.soliditylang.org/en/latest/style-guide.html#struct-names",
		Tier:        lint.TierEarly,
	}
)

// namingPass owns the two mixedCase lints; functions and mutable
// variables share the check, so one pass services both.
type namingPass struct{}

func newNamingPass() *namingPass { return &namingPass{} }

func (p *namingPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintMixedCaseFunction, lintMixedCaseVariable}
}

func (p *namingPass) Kinds() []ast.NodeKind {
	return []ast.NodeKind{ast.KindFunction, ast.KindStateVar, ast.KindVarDecl}
}

func (p *namingPass) Check(ctx *lint.Context, node lint.Node) {
	switch node.Kind {
	case ast.KindFunction:
		item := ctx.Builder.Items.Get(node.Item)
		fn := ctx.Builder.Items.Function(item)
		// Constructors, fallback and receive have no chosen name.
		if fn.FKind != ast.FnPlain {
			return
		}
		p.check(ctx, lintMixedCaseFunction, "function", ctx.Name(fn.Name), fn.NameSpan)
	case ast.KindStateVar:
		item := ctx.Builder.Items.Get(node.Item)
		sv := ctx.Builder.Items.StateVar(item)
		if sv.VarMut != ast.VarMutable {
			return
		}
		p.check(ctx, lintMixedCaseVariable, "state variable", ctx.Name(sv.Name), sv.NameSpan)
	case ast.KindVarDecl:
		st := ctx.Builder.Stmts.Get(node.Stmt)
		decl := ctx.Builder.Stmts.VarDecl(st)
		p.check(ctx, lintMixedCaseVariable, "variable", ctx.Name(decl.Name), decl.NameSpan)
	}
}

func (p *namingPass) check(ctx *lint.Context, l *lint.Lint, what, name string, span source.Span) {
	if name == "" || isMixedCase(name) {
		return
	}
	suggestion := toMixedCase(name)
	msg := fmt.Sprintf("%s name %q should use mixedCase", what, name)
	if suggestion == name {
		ctx.Emit(l, span, msg)
		return
	}
	ctx.EmitWithFix(l, span, msg,
		diag.ReplaceSpan(fmt.Sprintf("rename to %q", suggestion), span, suggestion, name, diag.ApplicabilityMaybeIncorrect))
}

// constNamingPass checks constant and immutable state variables.
type constNamingPass struct{}

func (p *constNamingPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintScreamingSnakeCase}
}

func (p *constNamingPass) Kinds() []ast.NodeKind {
	return []ast.NodeKind{ast.KindStateVar}
}

func (p *constNamingPass) Check(ctx *lint.Context, node lint.Node) {
	item := ctx.Builder.Items.Get(node.Item)
	sv := ctx.Builder.Items.StateVar(item)
	if sv.VarMut == ast.VarMutable {
		return
	}
	name := ctx.Name(sv.Name)
	if name == "" || isScreamingSnake(name) {
		return
	}
	what := "constant"
	if sv.VarMut == ast.VarImmutable {
		what = "immutable"
	}
	suggestion := toScreamingSnake(name)
	msg := fmt.Sprintf("%s name %q should use SCREAMING_SNAKE_CASE", what, name)
	if suggestion == name {
		ctx.Emit(lintScreamingSnakeCase, sv.NameSpan, msg)
		return
	}
	ctx.EmitWithFix(lintScreamingSnakeCase, sv.NameSpan, msg,
		diag.ReplaceSpan(fmt.Sprintf("rename to %q", suggestion), sv.NameSpan, suggestion, name, diag.ApplicabilityMaybeIncorrect))
}

// structNamingPass checks struct type names.
type structNamingPass struct{}

func (p *structNamingPass) Lints() []*lint.Lint {
	return []*lint.Lint{lintPascalCaseStruct}
}

func (p *structNamingPass) Kinds() []ast.NodeKind {
	return []ast.NodeKind{ast.KindStruct}
}

func (p *structNamingPass) Check(ctx *lint.Context, node lint.Node) {
	item := ctx.Builder.Items.Get(node.Item)
	st := ctx.Builder.Items.Struct(item)
	name := ctx.Name(st.Name)
	if name == "" || isPascalCase(name) {
		return
	}
	suggestion := toPascalCase(name)
	msg := fmt.Sprintf("struct name %q should use PascalCase", name)
	if suggestion == name {
		ctx.Emit(lintPascalCaseStruct, st.NameSpan, msg)
		return
	}
	ctx.EmitWithFix(lintPascalCaseStruct, st.NameSpan, msg,
		diag.ReplaceSpan(fmt.Sprintf("rename to %q", suggestion), st.NameSpan, suggestion, name, diag.ApplicabilityMaybeIncorrect))
}
