package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"sollint/internal/diag"
	"sollint/internal/source"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifToolDriver `json:"driver"`
}

type sarifToolDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string         `json:"id"`
	ShortDescription *sarifText     `json:"shortDescription,omitempty"`
	HelpURI          string         `json:"helpUri,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

// sarifLevel maps the severity scale onto SARIF's coarser one.
func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevHigh:
		return "error"
	case diag.SevMed, diag.SevLow:
		return "warning"
	}
	return "note"
}

// RuleMeta describes one rule for the SARIF rules table.
type RuleMeta struct {
	ID          string
	Description string
	HelpLink    string
	Severity    string
}

// Sarif serializes diagnostics as a SARIF v2.1.0 log. rules may be nil;
// the rules table is then derived from the result set with ids only.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta, rules []RuleMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifToolDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InfoURI,
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}
	if len(meta.InvocationArgs) > 0 {
		cmd := ""
		for i, arg := range meta.InvocationArgs {
			if i > 0 {
				cmd += " "
			}
			cmd += arg
		}
		run.Invocations = []sarifInvocation{{CommandLine: cmd, ExecutionSuccessful: true}}
	}

	if rules == nil {
		rules = rulesFromBag(bag)
	}
	for _, r := range rules {
		rule := sarifRule{ID: r.ID, HelpURI: r.HelpLink}
		if r.Description != "" {
			rule.ShortDescription = &sarifText{Text: r.Description}
		}
		if r.Severity != "" {
			rule.Properties = map[string]any{"severity": r.Severity}
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
	}

	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:  d.Code.String(),
			Level:   sarifLevel(d.Severity),
			Message: sarifText{Text: d.Message},
		}
		if file := fs.Get(d.Primary.File); file != nil {
			start, end := fs.Resolve(d.Primary)
			res.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{
						URI: file.FormatPath("relative", fs.BaseDir()),
					},
					Region: sarifRegion{
						StartLine:   start.Line,
						StartColumn: start.Col,
						EndLine:     end.Line,
						EndColumn:   end.Col,
					},
				},
			}}
		}
		run.Results = append(run.Results, res)
	}

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}

func rulesFromBag(bag *diag.Bag) []RuleMeta {
	seen := make(map[string]bool)
	var rules []RuleMeta
	for _, d := range bag.Items() {
		id := d.Code.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		rules = append(rules, RuleMeta{ID: id})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}
