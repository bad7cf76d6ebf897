package lint

import (
	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/hir"
	"sollint/internal/source"
)

// Node is the handle an early pass receives: the kind plus whichever
// arena ID is populated for that kind.
type Node struct {
	Kind ast.NodeKind
	Span source.Span
	Item ast.ItemID
	Stmt ast.StmtID
	Expr ast.ExprID
}

// Entity is the handle a late pass receives. Exactly the fields implied
// by Kind are populated; Function is additionally set for call, binary
// and assembly entities when they occur inside one.
type Entity struct {
	Kind     hir.EntityKind
	Module   *hir.Module
	Contract *hir.Contract
	Function *hir.Function
	Variable *hir.Variable
	Expr     *hir.Expr
	AsmSpan  source.Span
}

// EarlyPass is a syntax-tier rule implementation. A single pass may own
// several lints of the same tier. Passes are instantiated fresh for every
// source unit unless documented otherwise, so per-file state in struct
// fields is safe by default.
type EarlyPass interface {
	// Lints returns the rules this pass can emit for.
	Lints() []*Lint
	// Kinds returns the node kinds the pass wants to see. Undeclared
	// kinds are never dispatched to it.
	Kinds() []ast.NodeKind
	// Check inspects one node. It must not mutate the tree.
	Check(ctx *Context, node Node)
}

// EarlyFinalizer is implemented by early passes that need a
// post-traversal step, e.g. concluding that an import was never used.
type EarlyFinalizer interface {
	Finalize(ctx *Context)
}

// LatePass is a semantic-tier rule implementation.
type LatePass interface {
	Lints() []*Lint
	// Entities returns the semantic construct kinds the pass wants.
	Entities() []hir.EntityKind
	Check(ctx *Context, entity Entity)
}

// LateFinalizer mirrors EarlyFinalizer for the late tier.
type LateFinalizer interface {
	Finalize(ctx *Context)
}

// Context is the capability handle passed into every pass invocation.
// It exposes emission and read access to the current unit's artifacts;
// it never exposes suppression state or other passes.
type Context struct {
	File    *source.File
	Builder *ast.Builder
	AstFile ast.FileID
	Module  *hir.Module // nil during the early run

	reporter diag.Reporter
	active   map[diag.Code]bool
}

// NewContext builds a pass context for one source unit. active may be
// nil, meaning every lint is active.
func NewContext(file *source.File, builder *ast.Builder, astFile ast.FileID, reporter diag.Reporter, active map[diag.Code]bool) *Context {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Context{
		File:     file,
		Builder:  builder,
		AstFile:  astFile,
		reporter: reporter,
		active:   active,
	}
}

// WithModule returns a copy of ctx carrying the lowered module for the
// late run.
func (ctx *Context) WithModule(module *hir.Module) *Context {
	out := *ctx
	out.Module = module
	return &out
}

// Enabled reports whether a lint survived configuration filtering.
// Passes may use it to skip expensive work early; emissions for disabled
// lints are dropped regardless.
func (ctx *Context) Enabled(lint *Lint) bool {
	return ctx.active == nil || ctx.active[lint.ID]
}

// Emit records one diagnostic for lint at span.
func (ctx *Context) Emit(lint *Lint, span source.Span, msg string) {
	if !ctx.Enabled(lint) {
		return
	}
	ctx.reporter.Report(lint.ID, lint.Severity, span, msg, nil, nil)
}

// EmitWithFix records one diagnostic carrying a suggestion.
func (ctx *Context) EmitWithFix(lint *Lint, span source.Span, msg string, fix diag.Fix) {
	if !ctx.Enabled(lint) {
		return
	}
	ctx.reporter.Report(lint.ID, lint.Severity, span, msg, nil, []diag.Fix{fix})
}

// Text returns the source text under span.
func (ctx *Context) Text(span source.Span) string {
	return ctx.File.Text(span)
}

// Name resolves an interned identifier.
func (ctx *Context) Name(id source.StringID) string {
	return ctx.Builder.Name(id)
}
