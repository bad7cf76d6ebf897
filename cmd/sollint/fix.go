package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sollint/internal/driver"
	"sollint/internal/fix"
	"sollint/internal/rules"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.sol|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run lint passes, surface suggested fixes, and apply the safe ones in place.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes marked maybe-incorrect")
	fixCmd.Flags().String("severity", "", "minimum severity to consider (info|gas|low|med|high)")
	fixCmd.Flags().StringSlice("only-lint", nil, "consider only these rule ids")
	fixCmd.Flags().StringSlice("exclude-lint", nil, "skip these rule ids")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	unsafeFixes, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return fmt.Errorf("failed to get unsafe flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	cfg, _, err := resolveLintConfig(cmd, target, st.IsDir())
	if err != nil {
		return err
	}

	// Fixes rewrite files, so the run bypasses the result cache: stale
	// spans must never reach the edit engine.
	engine, err := driver.NewEngine(rules.MustRegistry(), driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		NoCache:        true,
	})
	if err != nil {
		return err
	}

	fs, res, err := lintTarget(cmd, engine, target, st.IsDir())
	if err != nil {
		return fmt.Errorf("fix: lint run failed: %w", err)
	}

	diagnostics := driver.MergeBags(res).Items()
	applyRes, applyErr := fix.Apply(fs, diagnostics, fix.ApplyOptions{Unsafe: unsafeFixes})
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(os.Stdout, "no applicable fixes found")
		return nil
	}
	return printApplyResult(applyRes, applyErr)
}

func printApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.Code, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s: %s\n", skip.Title, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  %s\n", skip.Reason)
			}
		}
	}

	if len(res.Applied) == 0 && len(res.Skipped) == 0 {
		fmt.Fprintln(os.Stdout, "no applicable fixes found")
	}
	return applyErr
}
