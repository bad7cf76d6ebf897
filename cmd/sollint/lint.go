package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sollint/internal/diag"
	"sollint/internal/diagfmt"
	"sollint/internal/driver"
	"sollint/internal/lint"
	"sollint/internal/project"
	"sollint/internal/rules"
	"sollint/internal/source"
	"sollint/internal/ui"
	"sollint/internal/version"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file.sol|directory>",
	Short: "Run lint passes on a Solidity file or directory",
	Long:  `Run syntax and semantic lint passes over a single *.sol file or every *.sol file within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	lintCmd.Flags().String("severity", "", "minimum severity to report (info|gas|low|med|high)")
	lintCmd.Flags().StringSlice("only-lint", nil, "run only these rule ids")
	lintCmd.Flags().StringSlice("exclude-lint", nil, "skip these rule ids")
	lintCmd.Flags().Bool("descriptions", false, "append rule descriptions to output")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lintCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	lintCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
	lintCmd.Flags().Bool("progress", false, "show interactive progress for directory runs")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runLint(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cfg, noCache, err := resolveLintConfig(cmd, target, st.IsDir())
	if err != nil {
		return err
	}

	registry := rules.MustRegistry()
	engine, err := driver.NewEngine(registry, driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  showTimings,
		NoCache:        noCache,
	})
	if err != nil {
		return err
	}

	useColor, err := resolveColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		results []*driver.FileResult
	)
	if st.IsDir() {
		fileSet, results, err = runDir(cmd, engine, target, showProgress && format == "pretty" && isTerminal(os.Stdout))
	} else {
		fileSet, results, err = engine.LintPaths(cmd.Context(), []string{target}, nil)
	}
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	merged := driver.MergeBags(results)

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
			Color:            useColor,
			PathMode:         pathMode,
			ShowNotes:        withNotes,
			ShowFixes:        suggest,
			EmitDescriptions: cfg.EmitDescriptions,
			Describe: func(code diag.Code) string {
				if l := registry.Lint(code); l != nil {
					return l.Description
				}
				return ""
			},
		})
	case "short":
		output := diag.FormatGoldenDiagnostics(merged.Items(), fileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "sollint",
			ToolVersion:    version.Plain,
			InvocationArgs: os.Args,
		}
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, meta, sarifRules(registry)); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if hasFindings(merged) {
		os.Exit(1)
	}
	return nil
}

// resolveLintConfig layers command-line flags over the sollint.toml
// manifest, if one is found above the target path.
func resolveLintConfig(cmd *cobra.Command, target string, isDir bool) (lint.Config, bool, error) {
	startDir := target
	if !isDir {
		startDir = parentDir(target)
	}

	var cfg lint.Config
	cacheEnabled := true
	manifest, found, err := project.Load(startDir)
	if err != nil {
		return cfg, false, fmt.Errorf("failed to load %s: %w", project.ManifestName, err)
	}
	if found {
		cfg, err = manifest.Config.LintOptions()
		if err != nil {
			return cfg, false, fmt.Errorf("invalid %s: %w", manifest.Path, err)
		}
		cacheEnabled = manifest.Config.CacheEnabled()
	}

	if cmd.Flags().Changed("severity") {
		raw, err := cmd.Flags().GetString("severity")
		if err != nil {
			return cfg, false, fmt.Errorf("failed to get severity flag: %w", err)
		}
		sev, err := diag.ParseSeverity(raw)
		if err != nil {
			return cfg, false, err
		}
		cfg.MinSeverity = sev
		cfg.HasMinSeverity = true
	}
	if cmd.Flags().Changed("only-lint") {
		ids, err := cmd.Flags().GetStringSlice("only-lint")
		if err != nil {
			return cfg, false, fmt.Errorf("failed to get only-lint flag: %w", err)
		}
		cfg.Include = toCodes(ids)
	}
	if cmd.Flags().Changed("exclude-lint") {
		ids, err := cmd.Flags().GetStringSlice("exclude-lint")
		if err != nil {
			return cfg, false, fmt.Errorf("failed to get exclude-lint flag: %w", err)
		}
		cfg.Exclude = toCodes(ids)
	}
	if cmd.Flags().Changed("descriptions") {
		show, err := cmd.Flags().GetBool("descriptions")
		if err != nil {
			return cfg, false, fmt.Errorf("failed to get descriptions flag: %w", err)
		}
		cfg.EmitDescriptions = show
	}

	// The fix command reuses this resolution but has no cache flag of
	// its own; it always bypasses the cache.
	noCache := false
	if cmd.Flags().Lookup("no-cache") != nil {
		noCache, err = cmd.Flags().GetBool("no-cache")
		if err != nil {
			return cfg, false, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
	}
	return cfg, noCache || !cacheEnabled, nil
}

// runDir lints a directory, optionally behind the interactive progress
// display.
func runDir(cmd *cobra.Command, engine *driver.Engine, dir string, interactive bool) (*source.FileSet, []*driver.FileResult, error) {
	if !interactive {
		return engine.LintDir(cmd.Context(), dir, nil)
	}

	files, err := driver.SolFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return engine.LintDir(cmd.Context(), dir, nil)
	}

	events := make(chan driver.FileEvent, len(files))
	var (
		fileSet *source.FileSet
		results []*driver.FileResult
		runErr  error
	)
	go func() {
		defer close(events)
		fileSet, results, runErr = engine.LintDir(cmd.Context(), dir, func(ev driver.FileEvent) {
			events <- ev
		})
	}()

	model := ui.NewProgressModel(fmt.Sprintf("linting %s", dir), files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, nil, fmt.Errorf("progress display failed: %w", err)
	}
	return fileSet, results, runErr
}

// lintTarget lints a single file or a whole directory without the
// interactive display. Shared with the fix command.
func lintTarget(cmd *cobra.Command, engine *driver.Engine, target string, isDir bool) (*source.FileSet, []*driver.FileResult, error) {
	if isDir {
		return engine.LintDir(cmd.Context(), target, nil)
	}
	return engine.LintPaths(cmd.Context(), []string{target}, nil)
}

func sarifRules(registry *lint.Registry) []diagfmt.RuleMeta {
	lints := registry.Lints()
	metas := make([]diagfmt.RuleMeta, 0, len(lints))
	for _, l := range lints {
		metas = append(metas, diagfmt.RuleMeta{
			ID:          l.ID.String(),
			Description: l.Description,
			HelpLink:    l.HelpLink,
			Severity:    l.Severity.String(),
		})
	}
	return metas
}

// hasFindings reports whether the bag carries anything beyond timing
// entries, which decides the process exit code.
func hasFindings(bag *diag.Bag) bool {
	for _, d := range bag.Items() {
		if d.Code != diag.CodeTimings {
			return true
		}
	}
	return false
}

func toCodes(ids []string) []diag.Code {
	codes := make([]diag.Code, 0, len(ids))
	for _, id := range ids {
		codes = append(codes, diag.Code(id))
	}
	return codes
}

func parentDir(path string) string {
	if dir := filepath.Dir(path); dir != "" {
		return dir
	}
	return "."
}
