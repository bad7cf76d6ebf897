package suppress_test

import (
	"testing"

	"sollint/internal/diag"
	"sollint/internal/lexer"
	"sollint/internal/source"
	"sollint/internal/suppress"
	"sollint/internal/token"
)

func TestParseComment(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		kind  token.TriviaKind
		ok    bool
		want  suppress.Kind
		rules []string
	}{
		{
			name: "disable line unscoped",
			text: "// forge-lint: disable-line",
			ok:   true,
			want: suppress.KindDisableLine,
		},
		{
			name:  "disable line scoped",
			text:  "// forge-lint: disable-line(mixed-case-function)",
			ok:    true,
			want:  suppress.KindDisableLine,
			rules: []string{"mixed-case-function"},
		},
		{
			name:  "disable next line multiple rules",
			text:  "// forge-lint: disable-next-line(a, b,c)",
			ok:    true,
			want:  suppress.KindDisableNextLine,
			rules: []string{"a", "b", "c"},
		},
		{
			name: "disable next item",
			text: "// forge-lint: disable-next-item",
			ok:   true,
			want: suppress.KindDisableNextItem,
		},
		{
			name:  "block comment start",
			text:  "/* forge-lint: disable-start(incorrect-shift) */",
			kind:  token.TriviaBlockComment,
			ok:    true,
			want:  suppress.KindDisableStart,
			rules: []string{"incorrect-shift"},
		},
		{
			name: "disable end",
			text: "// forge-lint: disable-end",
			ok:   true,
			want: suppress.KindDisableEnd,
		},
		{
			name: "no marker",
			text: "// plain comment",
			ok:   false,
		},
		{
			name: "bare disable is not a form",
			text: "// forge-lint: disable",
			ok:   false,
		},
		{
			name: "enable is not a form",
			text: "// forge-lint: enable-line",
			ok:   false,
		},
		{
			name: "garbage after keyword",
			text: "// forge-lint: disable-linex",
			ok:   false,
		},
		{
			name: "unterminated rule list",
			text: "// forge-lint: disable-line(a",
			ok:   false,
		},
		{
			name: "trailing prose after keyword",
			text: "// forge-lint: disable-line because reasons",
			ok:   true,
			want: suppress.KindDisableLine,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := suppress.ParseComment(token.Comment{Kind: tc.kind, Text: tc.text})
			if ok != tc.ok {
				t.Fatalf("ParseComment(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if !ok {
				return
			}
			if d.Kind != tc.want {
				t.Errorf("kind = %s, want %s", d.Kind, tc.want)
			}
			if len(d.Rules) != len(tc.rules) {
				t.Fatalf("rules = %v, want %v", d.Rules, tc.rules)
			}
			for i, r := range tc.rules {
				if d.Rules[i] != diag.Code(r) {
					t.Errorf("rule[%d] = %s, want %s", i, d.Rules[i], r)
				}
			}
		})
	}
}

// buildIndex lexes src so the directive scanner sees real comments.
func buildIndex(t *testing.T, src string, finder suppress.ItemFinder) (*source.File, *suppress.Index) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(src))
	file := fs.Get(id)
	lx := lexer.New(file, diag.NopReporter{})
	lx.Tokenize()
	return file, suppress.Build(file, lx.Comments(), finder)
}

func suppressedOnLine(file *source.File, idx *suppress.Index, rule string, line uint32) bool {
	return idx.IsSuppressed(diag.Code(rule), file.LineSpan(line))
}

func TestDisableLineCurrentLineOnly(t *testing.T) {
	src := "uint a;\nuint b; // forge-lint: disable-line(r1)\nuint c;\n"
	file, idx := buildIndex(t, src, nil)

	if suppressedOnLine(file, idx, "r1", 1) {
		t.Error("line 1 should not be suppressed")
	}
	if !suppressedOnLine(file, idx, "r1", 2) {
		t.Error("line 2 should be suppressed")
	}
	if suppressedOnLine(file, idx, "r1", 3) {
		t.Error("line 3 should not be suppressed")
	}
	if suppressedOnLine(file, idx, "other", 2) {
		t.Error("unrelated rule should not be suppressed")
	}
}

func TestDisableNextLineExactlyOne(t *testing.T) {
	src := "// forge-lint: disable-next-line(r1)\nuint a;\nuint b;\n"
	file, idx := buildIndex(t, src, nil)

	if suppressedOnLine(file, idx, "r1", 1) {
		t.Error("directive line itself should not be suppressed")
	}
	if !suppressedOnLine(file, idx, "r1", 2) {
		t.Error("next line should be suppressed")
	}
	if suppressedOnLine(file, idx, "r1", 3) {
		t.Error("line after next should not be suppressed")
	}
}

func TestUnscopedDirectiveSuppressesEveryRule(t *testing.T) {
	src := "uint a; // forge-lint: disable-line\n"
	file, idx := buildIndex(t, src, nil)

	for _, rule := range []string{"r1", "r2", "anything"} {
		if !suppressedOnLine(file, idx, rule, 1) {
			t.Errorf("rule %s should be suppressed by the unscoped directive", rule)
		}
	}
}

func TestDisableRange(t *testing.T) {
	src := "// forge-lint: disable-start(r1)\n" + // 1
		"uint a;\n" + // 2
		"uint b;\n" + // 3
		"// forge-lint: disable-end(r1)\n" + // 4
		"uint c;\n" // 5
	file, idx := buildIndex(t, src, nil)

	for line := uint32(1); line <= 4; line++ {
		if !suppressedOnLine(file, idx, "r1", line) {
			t.Errorf("line %d inside the range should be suppressed", line)
		}
	}
	if suppressedOnLine(file, idx, "r1", 5) {
		t.Error("line after disable-end should not be suppressed")
	}
	if suppressedOnLine(file, idx, "r2", 2) {
		t.Error("other rules should be unaffected by a scoped range")
	}
}

func TestNestedRangesComposePerLevel(t *testing.T) {
	src := "// forge-lint: disable-start(r1)\n" + // 1
		"// forge-lint: disable-start(r1)\n" + // 2
		"// forge-lint: disable-end(r1)\n" + // 3, closes inner only
		"uint a;\n" + // 4, outer still open
		"// forge-lint: disable-end(r1)\n" + // 5
		"uint b;\n" // 6
	file, idx := buildIndex(t, src, nil)

	if !suppressedOnLine(file, idx, "r1", 4) {
		t.Error("outer range should still cover line 4")
	}
	if suppressedOnLine(file, idx, "r1", 6) {
		t.Error("line 6 is past the outer disable-end")
	}
}

func TestUnmatchedDisableEndIsNoop(t *testing.T) {
	src := "uint a;\n// forge-lint: disable-end(r1)\nuint b;\n"
	file, idx := buildIndex(t, src, nil)

	for line := uint32(1); line <= 3; line++ {
		if suppressedOnLine(file, idx, "r1", line) {
			t.Errorf("line %d should not be suppressed by an unmatched end", line)
		}
	}
}

func TestOpenRangeExtendsToEndOfFile(t *testing.T) {
	src := "uint a;\n// forge-lint: disable-start(r1)\nuint b;\nuint c;\n"
	file, idx := buildIndex(t, src, nil)

	if suppressedOnLine(file, idx, "r1", 1) {
		t.Error("line before disable-start should not be suppressed")
	}
	for line := uint32(2); line <= file.LineCount(); line++ {
		if !suppressedOnLine(file, idx, "r1", line) {
			t.Errorf("line %d should be suppressed through end of file", line)
		}
	}
}

type fakeFinder struct {
	span source.Span
}

func (f fakeFinder) NextItem(after uint32) (source.Span, bool) {
	if f.span.Start < after {
		return source.Span{}, false
	}
	return f.span, true
}

func TestDisableNextItemCoversWholeItem(t *testing.T) {
	src := "// forge-lint: disable-next-item(r1)\n" + // 1
		"function f() {\n" + // 2
		"  uint a;\n" + // 3
		"}\n" + // 4
		"uint b;\n" // 5
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(src))
	file := fs.Get(id)
	lx := lexer.New(file, diag.NopReporter{})
	lx.Tokenize()

	itemStart := file.LineSpan(2).Start
	itemEnd := file.LineSpan(4).End
	finder := fakeFinder{span: source.Span{File: id, Start: itemStart, End: itemEnd}}
	idx := suppress.Build(file, lx.Comments(), finder)

	for line := uint32(2); line <= 4; line++ {
		if !suppressedOnLine(file, idx, "r1", line) {
			t.Errorf("line %d of the item should be suppressed", line)
		}
	}
	if suppressedOnLine(file, idx, "r1", 5) {
		t.Error("line after the item should not be suppressed")
	}
}

func TestDisableNextItemWithoutFinderIsNoop(t *testing.T) {
	src := "// forge-lint: disable-next-item\nuint a;\n"
	file, idx := buildIndex(t, src, nil)

	if suppressedOnLine(file, idx, "r1", 2) {
		t.Error("next-item without a finder should suppress nothing")
	}
	if !idx.Empty() {
		t.Error("index should be empty")
	}
}

func TestMultiLineSpanMatchedByStartingLine(t *testing.T) {
	src := "uint a;\n// forge-lint: disable-next-line(r1)\nuint b;\nuint c;\n"
	file, idx := buildIndex(t, src, nil)

	// Span starting on the suppressed line but extending past it.
	span := source.Span{
		File:  file.ID,
		Start: file.LineSpan(3).Start,
		End:   file.LineSpan(4).End,
	}
	if !idx.IsSuppressed(diag.Code("r1"), span) {
		t.Error("span starting on a suppressed line should match")
	}

	// Span starting after the suppressed line.
	after := source.Span{File: file.ID, Start: file.LineSpan(4).Start, End: file.LineSpan(4).End}
	if idx.IsSuppressed(diag.Code("r1"), after) {
		t.Error("span starting past the suppressed line should not match")
	}
}
