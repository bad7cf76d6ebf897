package lexer_test

import (
	"strings"
	"testing"

	"sollint/internal/diag"
	"sollint/internal/lexer"
	"sollint/internal/source"
	"sollint/internal/token"
)

func lexSource(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.sol", []byte(src))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(id), diag.NewBagReporter(bag))
	return lx.Tokenize(), bag
}

func kindsOf(toks []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		text string
	}{
		{"simple", `"ab" x`, "ab"},
		{"escaped quote", `"a\"b" x`, `a\"b`},
		{"escaped backslash", `"a\\" x`, `a\\`},
		{"single quotes", `'ab' x`, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexSource(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("diags = %v", bag.Items())
			}
			if toks[0].Kind != token.String || toks[0].Text != tt.text {
				t.Fatalf("token = %v %q, want string %q", toks[0].Kind, toks[0].Text, tt.text)
			}
			if toks[1].Kind != token.Ident {
				t.Fatalf("lexing did not continue past the literal: %v", kindsOf(toks))
			}
		})
	}
}

func TestStringEndingInBackslash(t *testing.T) {
	// The escape skip must not run the cursor past the end of the file.
	toks, bag := lexSource(t, `"a\`)
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("token stream did not terminate: %v", kindsOf(toks))
	}
	if bag.Len() != 1 {
		t.Fatalf("diags = %v, want the unterminated literal", bag.Items())
	}
	d := bag.Items()[0]
	if d.Code != diag.CodeParseError || !strings.Contains(d.Message, "unterminated string") {
		t.Fatalf("diagnostic = %s %q", d.Code, d.Message)
	}
}

func TestStringClosingQuoteAtEndOfFile(t *testing.T) {
	toks, bag := lexSource(t, `"ab"`)
	if bag.Len() != 0 {
		t.Fatalf("diags = %v", bag.Items())
	}
	if toks[0].Kind != token.String || toks[0].Text != "ab" {
		t.Fatalf("token = %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.EOF {
		t.Fatalf("kinds = %v, want string then eof", kindsOf(toks))
	}
}

func TestUnterminatedStringStopsAtNewline(t *testing.T) {
	toks, bag := lexSource(t, "\"abc\nx")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CodeParseError {
		t.Fatalf("diags = %v, want one unterminated literal", bag.Items())
	}
	// lexing resumes on the next line
	var sawIdent bool
	for _, tok := range toks {
		if tok.Kind == token.Ident && tok.Text == "x" {
			sawIdent = true
		}
	}
	if !sawIdent {
		t.Fatalf("lexing did not resume after the bad literal: %v", kindsOf(toks))
	}
}

func TestNulByteIsUnexpectedCharacter(t *testing.T) {
	toks, bag := lexSource(t, "uint256 x\x00;\n")
	if bag.Len() != 1 {
		t.Fatalf("diags = %v, want one unexpected character", bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, "unexpected character") {
		t.Fatalf("message = %q", bag.Items()[0].Message)
	}

	// The NUL byte is a bad token, not end of input: the semicolon after
	// it must still come through.
	kinds := kindsOf(toks)
	var sawInvalid, sawSemi bool
	for _, k := range kinds {
		if k == token.Invalid {
			sawInvalid = true
		}
		if k == token.Semicolon {
			sawSemi = true
		}
	}
	if !sawInvalid || !sawSemi {
		t.Fatalf("kinds = %v, want invalid and semicolon", kinds)
	}
	if kinds[len(kinds)-1] != token.EOF {
		t.Fatalf("kinds = %v, want eof last", kinds)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, bag := lexSource(t, "uint256 x; /* trailing")
	if bag.Len() != 1 || !strings.Contains(bag.Items()[0].Message, "unterminated block comment") {
		t.Fatalf("diags = %v", bag.Items())
	}
}

func TestLineCommentAtEndOfFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.sol", []byte("uint256 x; // note"))
	lx := lexer.New(fs.Get(id), diag.NopReporter{})
	toks := lx.Tokenize()
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("kinds = %v", kindsOf(toks))
	}
	comments := lx.Comments()
	if len(comments) != 1 || comments[0].Text != "// note" {
		t.Fatalf("comments = %+v", comments)
	}
}
