// Package diagfmt renders diagnostics: a pretty human format with
// source context, a machine JSON format, and SARIF for code-scanning
// consumers.
package diagfmt

import "sollint/internal/diag"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color            bool
	PathMode         PathMode
	ShowNotes        bool
	ShowFixes        bool
	EmitDescriptions bool
	// Describe resolves a rule id to its one-line description, used
	// when EmitDescriptions is set.
	Describe func(code diag.Code) string
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // output truncation; the bag itself is untouched
	IncludeNotes     bool
	IncludeFixes     bool
}

// SarifRunMeta provides run metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InfoURI        string
	InvocationArgs []string
}
