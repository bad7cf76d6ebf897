package fix_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sollint/internal/diag"
	"sollint/internal/fix"
	"sollint/internal/source"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadFile(t *testing.T, fs *source.FileSet, path string) source.FileID {
	t.Helper()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return id
}

func spanOf(t *testing.T, fs *source.FileSet, id source.FileID, substr string) source.Span {
	t.Helper()
	content := string(fs.Get(id).Content)
	idx := strings.Index(content, substr)
	if idx < 0 {
		t.Fatalf("substring %q not found in file", substr)
	}
	return source.Span{File: id, Start: uint32(idx), End: uint32(idx + len(substr))}
}

func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestApplyMachineApplicable(t *testing.T) {
	path := writeTempFile(t, "a.sol", "function transfer_from() public {}\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	d := diag.New(diag.SevInfo, "mixed-case-function", spanOf(t, fs, id, "transfer_from"), "bad name").
		WithFix(diag.ReplaceSpan("rename function", spanOf(t, fs, id, "transfer_from"), "transferFrom", "transfer_from", diag.ApplicabilityMachineApplicable))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	applied := res.Applied[0]
	if applied.Title != "rename function" || applied.EditCount != 1 {
		t.Fatalf("applied = %+v", applied)
	}
	if got := fileContent(t, path); got != "function transferFrom() public {}\n" {
		t.Fatalf("rewritten content = %q", got)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 1 {
		t.Fatalf("file changes = %+v", res.FileChanges)
	}
}

func TestMaybeIncorrectNeedsUnsafe(t *testing.T) {
	original := "uint256 x = a / b * c;\n"
	path := writeTempFile(t, "a.sol", original)
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	d := diag.New(diag.SevMed, "divide-before-multiply", spanOf(t, fs, id, "a / b * c"), "rounding").
		WithFix(diag.ReplaceSpan("reorder operations", spanOf(t, fs, id, "a / b * c"), "a * c / b", "a / b * c", diag.ApplicabilityMaybeIncorrect))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "maybe-incorrect fixes need --unsafe" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := fileContent(t, path); got != original {
		t.Fatalf("file changed without --unsafe: %q", got)
	}

	res, err = fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{Unsafe: true})
	if err != nil {
		t.Fatalf("Apply unsafe: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	if got := fileContent(t, path); got != "uint256 x = a * c / b;\n" {
		t.Fatalf("rewritten content = %q", got)
	}
}

func TestPlaceholderFixIsNeverApplied(t *testing.T) {
	path := writeTempFile(t, "a.sol", "uint256 fee;\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	d := diag.New(diag.SevInfo, "screaming-snake-case-const", spanOf(t, fs, id, "fee"), "bad name").
		WithFix(diag.ReplaceSpan("rename", spanOf(t, fs, id, "fee"), "<NAME>", "fee", diag.ApplicabilityHasPlaceholders))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{Unsafe: true})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "applicability is has-placeholders" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestSnippetOnlyFixIsIgnored(t *testing.T) {
	path := writeTempFile(t, "a.sol", "bytes32 h = keccak256(abi.encode(a));\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	d := diag.New(diag.SevGas, "asm-keccak256", spanOf(t, fs, id, "keccak256"), "use assembly").
		WithFix(diag.ExampleFix("inline assembly hash", "assembly { h := keccak256(ptr, len) }"))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	// Snippet-only fixes are presentation material, not skipped work.
	if len(res.Skipped) != 0 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestOldTextGuardMismatchSkipsFix(t *testing.T) {
	path := writeTempFile(t, "a.sol", "uint256 value;\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	sp := spanOf(t, fs, id, "value")
	d := diag.New(diag.SevInfo, "mixed-case-variable", sp, "bad name").
		WithFix(diag.ReplaceSpan("rename", sp, "amount", "somethingElse", diag.ApplicabilityMachineApplicable))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "existing text does not match expected content" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := fileContent(t, path); got != "uint256 value;\n" {
		t.Fatalf("file changed despite guard mismatch: %q", got)
	}
}

func TestConflictingFixIsSkipped(t *testing.T) {
	path := writeTempFile(t, "a.sol", "uint256 token_count;\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	sp := spanOf(t, fs, id, "token_count")
	first := diag.New(diag.SevInfo, "mixed-case-variable", sp, "bad name").
		WithFix(diag.ReplaceSpan("rename to tokenCount", sp, "tokenCount", "token_count", diag.ApplicabilityMachineApplicable))
	second := diag.New(diag.SevInfo, "mixed-case-variable", sp, "bad name").
		WithFix(diag.ReplaceSpan("rename to count", sp, "count", "token_count", diag.ApplicabilityMachineApplicable))

	res, err := fix.Apply(fs, []diag.Diagnostic{first, second}, fix.ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "rename to tokenCount" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "conflicts with previously applied edits") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := fileContent(t, path); got != "uint256 tokenCount;\n" {
		t.Fatalf("rewritten content = %q", got)
	}
}

func TestNonOverlappingFixesBothApply(t *testing.T) {
	path := writeTempFile(t, "a.sol", "uint256 first_one;\nuint256 second_one;\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	first := diag.New(diag.SevInfo, "mixed-case-variable", spanOf(t, fs, id, "first_one"), "bad name").
		WithFix(diag.ReplaceSpan("rename first", spanOf(t, fs, id, "first_one"), "firstOne", "first_one", diag.ApplicabilityMachineApplicable))
	second := diag.New(diag.SevInfo, "mixed-case-variable", spanOf(t, fs, id, "second_one"), "bad name").
		WithFix(diag.ReplaceSpan("rename second", spanOf(t, fs, id, "second_one"), "secondOne", "second_one", diag.ApplicabilityMachineApplicable))

	// Reverse the input order: the engine sorts by span before applying.
	res, err := fix.Apply(fs, []diag.Diagnostic{second, first}, fix.ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if res.Applied[0].Title != "rename first" || res.Applied[1].Title != "rename second" {
		t.Fatalf("application order = %q, %q", res.Applied[0].Title, res.Applied[1].Title)
	}
	if got := fileContent(t, path); got != "uint256 firstOne;\nuint256 secondOne;\n" {
		t.Fatalf("rewritten content = %q", got)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Fatalf("file changes = %+v", res.FileChanges)
	}
}

func TestVirtualFileIsSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.sol", []byte("uint256 bad_name;\n"))

	sp := source.Span{File: id, Start: 8, End: 16}
	d := diag.New(diag.SevInfo, "mixed-case-variable", sp, "bad name").
		WithFix(diag.ReplaceSpan("rename", sp, "badName", "bad_name", diag.ApplicabilityMachineApplicable))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyWithoutFixes(t *testing.T) {
	fs := source.NewFileSet()
	_, err := fix.Apply(fs, nil, fix.ApplyOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
}

func TestDeleteSpanRemovesText(t *testing.T) {
	path := writeTempFile(t, "a.sol", "import \"./SafeMath.sol\";\nuint256 x;\n")
	fs := source.NewFileSet()
	id := loadFile(t, fs, path)

	sp := spanOf(t, fs, id, "import \"./SafeMath.sol\";\n")
	d := diag.New(diag.SevInfo, "unused-import", sp, "unused import").
		WithFix(diag.DeleteSpan("remove unused import", sp, "import \"./SafeMath.sol\";\n", diag.ApplicabilityMachineApplicable))

	res, err := fix.Apply(fs, []diag.Diagnostic{d}, fix.ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if got := fileContent(t, path); got != "uint256 x;\n" {
		t.Fatalf("rewritten content = %q", got)
	}
}
