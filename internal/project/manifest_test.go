package project

import (
	"os"
	"path/filepath"
	"testing"

	"sollint/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "contracts")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := writeManifest(t, root, "[lint]\n")

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestFindMissingManifest(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty directory")
	}
}

func TestLoadParsesLintSection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[lint]
severity = "med"
include = ["divide-before-multiply", "unchecked-call"]
exclude = ["unchecked-call"]
descriptions = true
cache = false
`)

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}

	opts, err := m.Config.LintOptions()
	if err != nil {
		t.Fatalf("LintOptions: %v", err)
	}
	if !opts.HasMinSeverity || opts.MinSeverity != diag.SevMed {
		t.Fatalf("severity = %+v", opts)
	}
	if len(opts.Include) != 2 || opts.Include[0] != "divide-before-multiply" {
		t.Fatalf("include = %v", opts.Include)
	}
	if len(opts.Exclude) != 1 || opts.Exclude[0] != "unchecked-call" {
		t.Fatalf("exclude = %v", opts.Exclude)
	}
	if !opts.EmitDescriptions {
		t.Fatal("descriptions not carried over")
	}
	if m.Config.CacheEnabled() {
		t.Fatal("cache = false not honored")
	}
}

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("Load = %v, %v", m, ok)
	}
}

func TestCacheDefaultsToEnabled(t *testing.T) {
	var cfg Config
	if !cfg.CacheEnabled() {
		t.Fatal("cache should default to enabled")
	}
}

func TestLintOptionsRejectsBadSeverity(t *testing.T) {
	cfg := Config{Lint: LintConfig{Severity: "urgent"}}
	if _, err := cfg.LintOptions(); err == nil {
		t.Fatal("expected error for unknown severity")
	}
}
