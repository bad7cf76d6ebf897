// Package diag defines the diagnostic model shared by the parser, the
// lowering step and the lint passes.
//
// Diagnostic is the central record: a stable rule Code, a Severity on the
// info < gas < low < med < high scale, a primary source.Span, the message,
// and optional Notes and Fixes. Fixes carry either concrete TextEdits with
// an Applicability confidence level, or a display-only Snippet.
//
// Producers emit through a Reporter so that emission stays decoupled from
// storage; BagReporter aggregates into a Bag, which supports deterministic
// sorting, merging, filtering and deduplication. Rendering lives in
// internal/diagfmt and fix application in internal/fix; this package
// performs no IO.
//
// Keep the data model deterministic and side-effect free: diagnostics are
// serialised for the result cache and compared byte-for-byte in tests.
package diag
