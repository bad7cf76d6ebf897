package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sollint/internal/diag"
	"sollint/internal/diagfmt"
	"sollint/internal/driver"
	"sollint/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sol",
	Short: "Tokenize a Solidity source file",
	Long:  `Tokenize breaks down a Solidity source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("comments", false, "also list source comments")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	showComments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens, comments := driver.Tokenize(file, bag)

	if bag.Len() > 0 {
		useColor, err := resolveColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{Color: useColor})
	}

	for _, t := range tokens {
		start, _ := fileSet.Resolve(t.Span)
		if t.Text != "" {
			fmt.Fprintf(os.Stdout, "%4d:%-3d %-12s %q\n", start.Line, start.Col, t.Kind, t.Text)
		} else {
			fmt.Fprintf(os.Stdout, "%4d:%-3d %s\n", start.Line, start.Col, t.Kind)
		}
	}

	if showComments {
		for _, c := range comments {
			start, _ := fileSet.Resolve(c.Span)
			fmt.Fprintf(os.Stdout, "%4d:%-3d comment      %q\n", start.Line, start.Col, c.Text)
		}
	}
	return nil
}
