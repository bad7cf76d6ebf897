package diag

import (
	"sollint/internal/source"
)

// Code is the stable string identifier of a rule, e.g. "mixed-case-function".
// A few reserved codes exist for failures produced by the engine itself.
type Code string

const (
	// CodeParseError is emitted when the parser could not produce a tree.
	CodeParseError Code = "parse-error"
	// CodePassFailure reports a rule implementation that panicked.
	CodePassFailure Code = "pass-failure"
	// CodeIOError is emitted when an input file could not be read.
	CodeIOError Code = "io-error"
	// CodeTimings carries the per-file timing payload in its first note.
	CodeTimings Code = "timings"
)

func (c Code) String() string { return string(c) }

// Note is a secondary span with extra context attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Applicability states how confidently a fix may be applied unattended.
type Applicability uint8

const (
	ApplicabilityUnspecified Applicability = iota
	// ApplicabilityMachineApplicable fixes are safe to apply without review.
	ApplicabilityMachineApplicable
	ApplicabilityMaybeIncorrect
	ApplicabilityHasPlaceholders
)

func (a Applicability) String() string {
	switch a {
	case ApplicabilityMachineApplicable:
		return "machine-applicable"
	case ApplicabilityMaybeIncorrect:
		return "maybe-incorrect"
	case ApplicabilityHasPlaceholders:
		return "has-placeholders"
	}
	return "unspecified"
}

// TextEdit is one replacement inside a fix. OldText, when non-empty, acts
// as a guard: the fix engine refuses the edit if the file content under
// Span no longer matches it.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a suggestion attached to a diagnostic. With Edits it is an
// actionable replacement; with only Snippet it is an illustrative example
// that tooling must never apply.
type Fix struct {
	Title         string
	Applicability Applicability
	Edits         []TextEdit
	Snippet       string
}

// Actionable reports whether the fix carries edits that can be applied.
func (f *Fix) Actionable() bool {
	return f != nil && len(f.Edits) > 0
}

// Diagnostic is one finding: a rule code, severity, primary location,
// message and optional notes and fixes. Immutable once emitted.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
