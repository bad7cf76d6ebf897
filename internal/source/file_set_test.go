package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLineIndexAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sol", []byte("one\ntwo\nthree\n"))
	file := fs.Get(id)

	if got := file.LineCount(); got != 4 {
		t.Errorf("LineCount = %d, want 4 (trailing newline opens a line)", got)
	}

	cases := []struct {
		off  uint32
		line uint32
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
		{13, 3},
	}
	for _, tc := range cases {
		if got := file.LineOf(tc.off); got != tc.line {
			t.Errorf("LineOf(%d) = %d, want %d", tc.off, got, tc.line)
		}
	}

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %d:%d, want 2:1", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Errorf("end = %d:%d, want 2:4", end.Line, end.Col)
	}
}

func TestLineSpanAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sol", []byte("alpha\nbeta\n"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "alpha" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := file.GetLine(2); got != "beta" {
		t.Errorf("GetLine(2) = %q", got)
	}

	sp := file.LineSpan(2)
	if got := file.Text(sp); got != "beta" {
		t.Errorf("LineSpan(2) text = %q", got)
	}

	// Out of range collapses to an empty span at end of file.
	if sp := file.LineSpan(99); !sp.Empty() {
		t.Errorf("out-of-range LineSpan = %v, want empty", sp)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.sol")
	raw := []byte("\xef\xbb\xbfline one\r\nline two\r\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)

	if string(file.Content) != "line one\nline two\n" {
		t.Errorf("content = %q, want normalized LF", file.Content)
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
}

func TestContentHashDiffers(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.AddVirtual("a.sol", []byte("contract A {}")))
	b := fs.Get(fs.AddVirtual("b.sol", []byte("contract B {}")))
	if a.Hash == b.Hash {
		t.Error("different contents must hash differently")
	}
	c := fs.Get(fs.AddVirtual("c.sol", []byte("contract A {}")))
	if a.Hash != c.Hash {
		t.Error("identical contents must hash identically")
	}
}

func TestFormatPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("/work/src/token.sol", nil)
	file := fs.Get(id)

	if got := file.FormatPath("basename", ""); got != "token.sol" {
		t.Errorf("basename = %q", got)
	}
	if got := file.FormatPath("relative", "/work"); got != "src/token.sol" {
		t.Errorf("relative = %q", got)
	}
}

func TestGetByPathReturnsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("same.sol", []byte("old"))
	newer := fs.AddVirtual("same.sol", []byte("new"))

	file, ok := fs.GetByPath("same.sol")
	if !ok {
		t.Fatal("path should resolve")
	}
	if file.ID != newer {
		t.Errorf("GetByPath returned id %d, want latest %d", file.ID, newer)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}
