package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/driver"
	"sollint/internal/lint"
	"sollint/internal/rules"
	"sollint/internal/source"
)

func newEngine(t *testing.T, cfg lint.Config) *driver.Engine {
	t.Helper()
	engine, err := driver.NewEngine(rules.MustRegistry(), driver.Options{
		Config:  cfg,
		NoCache: true,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func lintVirtual(t *testing.T, engine *driver.Engine, src string) *driver.FileResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.sol", []byte(src))
	return engine.LintFile(fs, id)
}

func TestLintFileEmitsAtNameSpan(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	res := lintVirtual(t, engine, `contract Token {
    function Mint_to(address to) public {}
}
`)
	if res.ParseFailed {
		t.Fatal("unit should parse")
	}
	if res.State != driver.StateDone {
		t.Fatalf("state = %s, want done", res.State)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v, want exactly one", res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Code != "mixed-case-function" {
		t.Fatalf("code = %s", d.Code)
	}
	// The primary span must cover the name, not the whole function.
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.sol", []byte("contract Token {\n    function Mint_to(address to) public {}\n}\n"))
	if got := fs.Get(id).Text(source.Span{File: id, Start: d.Primary.Start, End: d.Primary.End}); got != "Mint_to" {
		t.Errorf("primary span covers %q, want Mint_to", got)
	}
}

func TestLintFileSuppression(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	res := lintVirtual(t, engine, `contract Token {
    // forge-lint: disable-next-line(mixed-case-function)
    function Mint_to(address to) public {}
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("suppressed diagnostic leaked: %v", res.Bag.Items())
	}
}

func TestLintFileSuppressionScopeDoesNotLeak(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	res := lintVirtual(t, engine, `contract Token {
    // forge-lint: disable-next-line(some-other-rule)
    function Mint_to(address to) public {}
}
`)
	if res.Bag.Len() != 1 {
		t.Fatalf("directive for another rule must not suppress, got %v", res.Bag.Items())
	}
}

func TestLintFileDisableNextItemCoversBody(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	res := lintVirtual(t, engine, `contract Token {
    // forge-lint: disable-next-item(mixed-case-variable)
    function f() public {
        uint256 Bad_name = 1;
        Bad_name += 1;
    }
    uint256 public Also_bad;
}
`)
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v, want only the state variable finding", res.Bag.Items())
	}
	if res.Bag.Items()[0].Code != "mixed-case-variable" {
		t.Fatalf("code = %s", res.Bag.Items()[0].Code)
	}
}

func TestParseFailureProducesSingleDiagnostic(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	res := lintVirtual(t, engine, `contract {`)
	if !res.ParseFailed {
		t.Fatal("unit should fail to parse")
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v, want exactly the syntax error", res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.CodeParseError {
		t.Errorf("code = %s, want %s", d.Code, diag.CodeParseError)
	}
	if d.Severity != diag.SevHigh {
		t.Errorf("severity = %s, want high", d.Severity)
	}
}

func TestBadCharactersProduceSingleDiagnostic(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	// Every byte here is a lex error; the unit must still surface
	// exactly one syntax diagnostic.
	res := lintVirtual(t, engine, "#@#@#@\n")
	if !res.ParseFailed {
		t.Fatal("unit should fail to parse")
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v, want exactly one", res.Bag.Items())
	}
	if res.Bag.Items()[0].Code != diag.CodeParseError {
		t.Fatalf("code = %s, want %s", res.Bag.Items()[0].Code, diag.CodeParseError)
	}
}

func TestTruncatedStringLiteralDoesNotCrash(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	// string literal whose final byte is a backslash
	res := lintVirtual(t, engine, "\"a\\")
	if !res.ParseFailed {
		t.Fatal("unit should fail to parse")
	}
	if res.State != driver.StateDone {
		t.Fatalf("state = %s, want done", res.State)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v, want exactly one", res.Bag.Items())
	}
}

func TestConfigExcludeDisablesRule(t *testing.T) {
	engine := newEngine(t, lint.Config{Exclude: []diag.Code{"mixed-case-function"}})
	res := lintVirtual(t, engine, `contract Token {
    function Mint_to(address to) public {}
}
`)
	if res.Bag.Len() != 0 {
		t.Fatalf("excluded rule still fired: %v", res.Bag.Items())
	}
}

func TestUnknownRuleIDFailsBeforeAnyFile(t *testing.T) {
	_, err := driver.NewEngine(rules.MustRegistry(), driver.Options{
		Config:  lint.Config{Include: []diag.Code{"no-such-rule"}},
		NoCache: true,
	})
	if err == nil {
		t.Fatal("unknown rule id should fail engine construction")
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	engine := newEngine(t, lint.Config{})
	src := `contract Math {
    uint256 constant fee = 1;
    function bad(uint256 a, uint256 b, uint256 c) public pure returns (uint256) {
        return a / b * c;
    }
}
`
	first := lintVirtual(t, engine, src)
	second := lintVirtual(t, engine, src)
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Primary != b[i].Primary {
			t.Fatalf("runs diverge at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLintDirOrdersResultsByPath(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.sol", "contract B {\n    function Bad_b() public {}\n}\n")
	write("a.sol", "contract A {\n    function Bad_a() public {}\n}\n")
	write("notes.txt", "ignored")

	engine := newEngine(t, lint.Config{})
	fs, results, err := engine.LintDir(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if fs == nil || len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a.sol" || filepath.Base(results[1].Path) != "b.sol" {
		t.Errorf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}

	merged := driver.MergeBags(results)
	if merged.Len() != 2 {
		t.Fatalf("merged diags = %d, want 2", merged.Len())
	}
}

func TestParseFailureDoesNotAffectBatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.sol"), []byte("contract {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.sol"), []byte("contract G {\n    function Bad_name() public {}\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, lint.Config{})
	_, results, err := engine.LintDir(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if !results[0].ParseFailed {
		t.Error("bad.sol should be a parse failure")
	}
	if results[1].ParseFailed || results[1].Bag.Len() != 1 {
		t.Errorf("good.sol should lint normally, got %v", results[1].Bag.Items())
	}
}

// panicPass blows up on every function node; the driver must isolate it.
type panicPass struct{}

var panicLint = &lint.Lint{ID: "panic-rule", Severity: diag.SevInfo, Tier: lint.TierEarly}

func (p *panicPass) Lints() []*lint.Lint        { return []*lint.Lint{panicLint} }
func (p *panicPass) Kinds() []ast.NodeKind      { return []ast.NodeKind{ast.KindFunction} }
func (p *panicPass) Check(*lint.Context, lint.Node) {
	panic("boom")
}

func TestPassPanicIsIsolated(t *testing.T) {
	registry := lint.NewRegistry()
	if err := registry.RegisterEarly(func() lint.EarlyPass { return &panicPass{} }); err != nil {
		t.Fatal(err)
	}
	// A healthy rule registered alongside must still report.
	healthy := &lint.Lint{ID: "healthy-rule", Severity: diag.SevInfo, Tier: lint.TierEarly}
	if err := registry.RegisterEarly(func() lint.EarlyPass {
		return &emitOnFunction{lint: healthy}
	}); err != nil {
		t.Fatal(err)
	}

	engine, err := driver.NewEngine(registry, driver.Options{NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	res := lintVirtual(t, engine, "contract C {\n    function f() public {}\n}\n")

	var sawFailure, sawHealthy bool
	for _, d := range res.Bag.Items() {
		switch d.Code {
		case diag.CodePassFailure:
			sawFailure = true
			if d.Severity != diag.SevHigh {
				t.Errorf("pass failure severity = %s, want high", d.Severity)
			}
		case "healthy-rule":
			sawHealthy = true
		}
	}
	if !sawFailure {
		t.Error("expected a pass-failure diagnostic")
	}
	if !sawHealthy {
		t.Error("healthy pass should still have run")
	}
}

type emitOnFunction struct {
	lint *lint.Lint
}

func (p *emitOnFunction) Lints() []*lint.Lint   { return []*lint.Lint{p.lint} }
func (p *emitOnFunction) Kinds() []ast.NodeKind { return []ast.NodeKind{ast.KindFunction} }
func (p *emitOnFunction) Check(ctx *lint.Context, node lint.Node) {
	ctx.Emit(p.lint, node.Span, "function seen")
}

// lateOnly verifies lowering is skipped entirely when no late lint is active.
func TestLoweringSkippedWithoutLatePasses(t *testing.T) {
	engine := newEngine(t, lint.Config{Include: []diag.Code{"mixed-case-function"}})
	res := lintVirtual(t, engine, `contract C {
    function ok(address target) public {
        target.call("");
    }
}
`)
	if res.Module != nil {
		t.Error("module should not be built when all late lints are inactive")
	}
	if res.Bag.Len() != 0 {
		t.Errorf("diags = %v, want none", res.Bag.Items())
	}
}
