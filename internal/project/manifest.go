// Package project loads the sollint.toml manifest: the lint section of
// a project, discovered by walking up from the working directory.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sollint/internal/diag"
	"sollint/internal/lint"
)

// ManifestName is the file looked up from the start directory upwards.
const ManifestName = "sollint.toml"

// Manifest is a located and parsed configuration file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the recognized sections of sollint.toml.
type Config struct {
	Lint LintConfig `toml:"lint"`
}

// LintConfig is the [lint] table.
type LintConfig struct {
	// Severity is the minimum severity, one of info, gas, low, med, high.
	Severity string `toml:"severity"`
	// Include whitelists rule ids; empty means all rules.
	Include []string `toml:"include"`
	// Exclude blacklists rule ids; it wins over Include.
	Exclude []string `toml:"exclude"`
	// Descriptions asks the renderer to append rule descriptions.
	Descriptions bool `toml:"descriptions"`
	// Cache toggles the on-disk result cache. Defaults to on.
	Cache *bool `toml:"cache"`
}

// Find walks up from startDir looking for the manifest.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest. A missing manifest is not an
// error; ok=false and a zero Config come back instead.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LintOptions converts the manifest into the engine's configuration.
// Unknown severity spellings error here; unknown rule ids are left for
// the registry to validate.
func (c Config) LintOptions() (lint.Config, error) {
	out := lint.Config{
		EmitDescriptions: c.Lint.Descriptions,
	}
	if c.Lint.Severity != "" {
		sev, err := diag.ParseSeverity(c.Lint.Severity)
		if err != nil {
			return out, fmt.Errorf("[lint].severity: %w", err)
		}
		out.MinSeverity = sev
		out.HasMinSeverity = true
	}
	for _, id := range c.Lint.Include {
		out.Include = append(out.Include, diag.Code(id))
	}
	for _, id := range c.Lint.Exclude {
		out.Exclude = append(out.Exclude, diag.Code(id))
	}
	return out, nil
}

// CacheEnabled reports the [lint].cache setting, defaulting to true.
func (c Config) CacheEnabled() bool {
	if c.Lint.Cache == nil {
		return true
	}
	return *c.Lint.Cache
}
