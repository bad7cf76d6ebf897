// Package parser turns Solidity source text into the internal/ast tree.
//
// The grammar implemented here is the subset the lint engine needs:
// pragma and import directives, contract-like declarations with their
// members, and a statement/expression core. Constructs outside the subset
// fail the parse; the engine then surfaces a single parse-error diagnostic
// for the file and runs no passes, which is the contract the driver
// depends on.
package parser

import (
	"errors"
	"fmt"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/lexer"
	"sollint/internal/source"
	"sollint/internal/token"
)

// ErrParse signals that no syntax tree could be produced. The diagnostic
// describing the failure has already been sent to the reporter.
var ErrParse = errors.New("parse failed")

// Result carries the artifacts of one successful file parse.
type Result struct {
	File     ast.FileID
	Comments []token.Comment
}

type parser struct {
	builder  *ast.Builder
	file     *source.File
	toks     []token.Token
	pos      int
	reporter diag.Reporter
	failed   bool
}

// syntaxErrorGate forwards only the first syntax failure to the wrapped
// reporter. The lexer and the parser share one gate so that a failed
// parse surfaces exactly one diagnostic, however many bad characters
// the tokenizer ran across.
type syntaxErrorGate struct {
	inner diag.Reporter
	fired bool
}

func (g *syntaxErrorGate) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if g.fired {
		return
	}
	g.fired = true
	g.inner.Report(code, sev, primary, msg, notes, fixes)
}

// ParseFile parses one source file into builder, reporting failures
// through reporter. On failure the partially built arenas must not be
// used by the caller.
func ParseFile(builder *ast.Builder, file *source.File, reporter diag.Reporter) (Result, error) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	gate := &syntaxErrorGate{inner: reporter}
	lx := lexer.New(file, gate)
	toks := lx.Tokenize()

	p := &parser{
		builder:  builder,
		file:     file,
		toks:     toks,
		reporter: gate,
		// a lexical error already surfaced through the gate; the file
		// has no usable token stream
		failed: gate.fired,
	}

	fileSpan := source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}
	fileID := builder.NewFile(fileSpan, file.ID)

	for !p.at(token.EOF) && !p.failed {
		item := p.parseTopLevel()
		if p.failed {
			break
		}
		if item.IsValid() {
			builder.PushItem(fileID, item)
		}
	}

	if p.failed {
		return Result{}, ErrParse
	}
	return Result{File: fileID, Comments: lx.Comments()}, nil
}

func (p *parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *parser) peekKind(n int) token.Kind {
	if p.pos+n >= len(p.toks) {
		return token.EOF
	}
	return p.toks[p.pos+n].Kind
}

func (p *parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *parser) expect(kind token.Kind, what string) token.Token {
	if p.at(kind) {
		return p.advance()
	}
	p.errorf(p.cur().Span, "expected %s", what)
	return token.Token{Kind: token.Invalid, Span: p.cur().Span}
}

// errorf reports a parse error and marks the parse as failed. Only the
// first failure is reported; the rest of the file is abandoned.
func (p *parser) errorf(sp source.Span, format string, args ...any) {
	if p.failed {
		return
	}
	p.failed = true
	p.reporter.Report(diag.CodeParseError, diag.SevHigh, sp, fmt.Sprintf(format, args...), nil, nil)
}

func (p *parser) intern(text string) source.StringID {
	return p.builder.Interner.Intern(text)
}

// spanFrom builds a span from a start offset to the end of the previously
// consumed token.
func (p *parser) spanFrom(start uint32) source.Span {
	end := start
	if p.pos > 0 {
		end = p.toks[p.pos-1].Span.End
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}
