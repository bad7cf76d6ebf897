package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sollint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered lint rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type rulePayload struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Tier        string `json:"tier"`
	Description string `json:"description"`
	HelpLink    string `json:"help,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	registry := rules.MustRegistry()
	lints := registry.Lints()

	switch format {
	case "json":
		payload := make([]rulePayload, 0, len(lints))
		for _, l := range lints {
			payload = append(payload, rulePayload{
				ID:          string(l.ID),
				Severity:    l.Severity.String(),
				Tier:        l.Tier.String(),
				Description: l.Description,
				HelpLink:    l.HelpLink,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		if _, err := resolveColor(cmd, os.Stdout); err != nil {
			return err
		}
		idColor := color.New(color.FgCyan, color.Bold)
		for _, l := range lints {
			fmt.Fprintf(os.Stdout, "%s (%s, %s)\n    %s\n",
				idColor.Sprint(string(l.ID)), l.Severity, l.Tier, l.Description)
			if l.HelpLink != "" {
				fmt.Fprintf(os.Stdout, "    %s\n", l.HelpLink)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
