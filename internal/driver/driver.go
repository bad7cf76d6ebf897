// Package driver orchestrates the lint pipeline: parse, lower, run the
// early and late passes, apply suppression, emit. Each source unit moves
// through the pipeline independently; the driver shares nothing mutable
// between units except the read-only rule registry.
package driver

import (
	"errors"
	"fmt"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/hir"
	"sollint/internal/lexer"
	"sollint/internal/lint"
	"sollint/internal/observ"
	"sollint/internal/parser"
	"sollint/internal/source"
	"sollint/internal/suppress"
	"sollint/internal/token"
)

// State tracks how far one source unit made it through the pipeline.
type State uint8

const (
	StateCreated State = iota
	StateParsed
	StateLowered
	StateEarlyRun
	StateLateRun
	StateFiltered
	StateDone
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateLowered:
		return "lowered"
	case StateEarlyRun:
		return "early-run"
	case StateLateRun:
		return "late-run"
	case StateFiltered:
		return "filtered"
	case StateDone:
		return "done"
	}
	return "created"
}

// Options configures one engine run.
type Options struct {
	Config         lint.Config
	MaxDiagnostics int
	Jobs           int
	EnableTimings  bool
	NoCache        bool
}

const defaultMaxDiagnostics = 1000

// FileResult is the outcome of linting one source unit.
type FileResult struct {
	Path    string
	FileID  source.FileID
	State   State
	Bag     *diag.Bag
	Builder *ast.Builder
	ASTFile ast.FileID
	Module  *hir.Module
	Timing  *observ.Report
	// ParseFailed marks units where the parser produced no tree; the
	// bag then holds exactly the syntax-error diagnostic and no rule
	// diagnostics.
	ParseFailed bool
	// FromCache marks results replayed from the disk cache.
	FromCache bool
}

// Engine drives the pipeline for a batch of source units. Construction
// validates the configuration against the registry, so unknown rule ids
// abort before any file is touched.
type Engine struct {
	registry *lint.Registry
	runset   *lint.RunSet
	opts     Options
	cache    *DiskCache
	cfgHash  [32]byte
}

func NewEngine(registry *lint.Registry, opts Options) (*Engine, error) {
	if registry == nil {
		return nil, errors.New("nil registry")
	}
	runset, err := registry.Finalize(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	e := &Engine{
		registry: registry,
		runset:   runset,
		opts:     opts,
		cfgHash:  configHash(opts.Config),
	}
	if !opts.NoCache {
		if cache, err := OpenDiskCache("sollint"); err == nil {
			e.cache = cache
		}
		// A cache that fails to open just disables caching.
	}
	return e, nil
}

// Registry exposes the rule metadata for rendering.
func (e *Engine) Registry() *lint.Registry { return e.registry }

// LintFile runs the full pipeline over one already-loaded file.
func (e *Engine) LintFile(fileSet *source.FileSet, fileID source.FileID) *FileResult {
	file := fileSet.Get(fileID)
	res := &FileResult{
		Path:   file.Path,
		FileID: fileID,
		State:  StateCreated,
		Bag:    diag.NewBag(e.opts.MaxDiagnostics),
	}

	if cached, ok := e.lookupCache(file); ok {
		replayCached(res, cached, fileID)
		res.State = StateDone
		res.FromCache = true
		return res
	}

	var timer *observ.Timer
	if e.opts.EnableTimings {
		timer = observ.NewTimer()
	}
	phase := func(name string) func(note string) {
		if timer == nil {
			return func(string) {}
		}
		return timer.Start(name)
	}

	// identical emissions from one pass invocation collapse before they
	// reach the bag
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	builder := ast.NewBuilder(ast.Hints{})
	res.Builder = builder

	stopParse := phase("parse")
	parsed, err := parser.ParseFile(builder, file, reporter)
	stopParse(fmt.Sprintf("diags=%d", res.Bag.Len()))
	if err != nil {
		// The parser already reported the single syntax-error
		// diagnostic; no passes run for this unit.
		res.ParseFailed = true
		res.State = StateDone
		res.Bag.Sort()
		return res
	}
	res.ASTFile = parsed.File
	res.State = StateParsed

	ctx := lint.NewContext(file, builder, parsed.File, reporter, e.runset.ActiveSet())

	stopEarly := phase("early-passes")
	e.runset.RunEarly(ctx)
	stopEarly(fmt.Sprintf("diags=%d", res.Bag.Len()))
	res.State = StateEarlyRun

	if e.runset.HasLatePasses() {
		stopLower := phase("lower")
		module, lowerErr := hir.Lower(builder, parsed.File)
		stopLower("")
		if lowerErr == nil {
			res.Module = module
			res.State = StateLowered
			stopLate := phase("late-passes")
			e.runset.RunLate(ctx.WithModule(module))
			stopLate(fmt.Sprintf("diags=%d", res.Bag.Len()))
			res.State = StateLateRun
		}
		// A fatal lowering keeps the early diagnostics; partial
		// results beat no results.
	}

	stopFilter := phase("suppression")
	idx := suppress.Build(file, parsed.Comments, suppress.NewItemFinder(builder, parsed.File))
	if !idx.Empty() {
		res.Bag.Filter(func(d *diag.Diagnostic) bool {
			return !idx.IsSuppressed(d.Code, d.Primary)
		})
	}
	stopFilter("")
	res.State = StateFiltered

	res.Bag.Sort()
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	res.State = StateDone
	e.storeCache(file, res)
	return res
}

// Tokenize exposes the lexer output for one loaded file, used by the
// debugging command and tests.
func Tokenize(file *source.File, bag *diag.Bag) ([]token.Token, []token.Comment) {
	lx := lexer.New(file, &diag.BagReporter{Bag: bag})
	toks := lx.Tokenize()
	return toks, lx.Comments()
}
