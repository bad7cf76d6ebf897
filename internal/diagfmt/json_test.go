package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sollint/internal/diag"
	"sollint/internal/diagfmt"
	"sollint/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("token.sol", []byte("uint256 bad_name;\nuint256 other;\n"))

	bag := diag.NewBag(16)
	d := diag.New(diag.SevInfo, "mixed-case-variable", source.Span{File: id, Start: 8, End: 16}, "variable should be mixedCase").
		WithNote(source.Span{File: id, End: 0}, "style convention").
		WithFix(diag.ReplaceSpan("rename", source.Span{File: id, Start: 8, End: 16}, "badName", "bad_name", diag.ApplicabilityMachineApplicable))
	bag.Add(d)
	return bag, fs, id
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs, _ := testBag(t)

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "info" || d.Code != "mixed-case-variable" {
		t.Fatalf("severity/code = %q/%q", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "token.sol" || loc.StartByte != 8 || loc.EndByte != 16 {
		t.Fatalf("location = %+v", loc)
	}
	if loc.StartLine != 1 || loc.StartCol != 9 || loc.EndLine != 1 || loc.EndCol != 17 {
		t.Fatalf("positions = %+v", loc)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "style convention" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Applicability != "machine-applicable" {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	if len(d.Fixes[0].Edits) != 1 || d.Fixes[0].Edits[0].NewText != "badName" {
		t.Fatalf("edits = %+v", d.Fixes[0].Edits)
	}
}

func TestBuildOutputOmitsNotesAndFixesByDefault(t *testing.T) {
	bag, fs, _ := testBag(t)

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{})
	d := out.Diagnostics[0]
	if len(d.Notes) != 0 {
		t.Fatalf("notes should be omitted, got %+v", d.Notes)
	}
	if len(d.Fixes) != 0 {
		t.Fatalf("fixes should be omitted, got %+v", d.Fixes)
	}
	if d.Location.StartLine != 0 {
		t.Fatalf("positions should be omitted, got %+v", d.Location)
	}
}

func TestBuildOutputTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.sol", []byte("line\n"))

	bag := diag.NewBag(16)
	for i := 0; i < 5; i++ {
		bag.Add(diag.New(diag.SevLow, "divide-before-multiply", source.Span{File: id, Start: uint32(i)}, "x"))
	}

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	// The bag itself keeps everything; only the output is cut.
	if len(bag.Items()) != 5 {
		t.Fatalf("bag shrank to %d items", len(bag.Items()))
	}
}

func TestBuildOutputKeepsTimingNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.sol", []byte("line\n"))

	bag := diag.NewBag(16)
	bag.Add(diag.New(diag.SevInfo, diag.CodeTimings, source.Span{File: id}, "timings").
		WithNote(source.Span{File: id}, "parse=1ms lower=0ms"))

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{IncludeNotes: false})
	if len(out.Diagnostics) != 1 || len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("timing note dropped: %+v", out.Diagnostics)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	bag, fs, _ := testBag(t)

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Count != 1 || decoded.Diagnostics[0].Code != "mixed-case-variable" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestPrettyOutput(t *testing.T) {
	bag, fs, _ := testBag(t)

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{
		ShowNotes: true,
		ShowFixes: true,
	})
	out := buf.String()
	for _, want := range []string{"mixed-case-variable", "variable should be mixedCase", "token.sol:1:9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("pretty output contains ANSI escapes without color:\n%s", out)
	}
}

func TestSarifOutput(t *testing.T) {
	bag, fs, _ := testBag(t)

	var buf bytes.Buffer
	meta := diagfmt.SarifRunMeta{ToolName: "sollint", ToolVersion: "1.0.0"}
	rules := []diagfmt.RuleMeta{{ID: "mixed-case-variable", Description: "function names should be mixedCase"}}
	if err := diagfmt.Sarif(&buf, bag, fs, meta, rules); err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("unmarshal sarif: %v", err)
	}
	if log["version"] != "2.1.0" {
		t.Fatalf("sarif version = %v", log["version"])
	}
	runs, ok := log["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("runs = %v", log["runs"])
	}
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	res := results[0].(map[string]any)
	if res["ruleId"] != "mixed-case-variable" || res["level"] != "note" {
		t.Fatalf("result = %v", res)
	}
}
