package token

import "sollint/internal/source"

// TriviaKind classifies non-semantic source text.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
)

// Comment is one source comment with its span and raw text, including
// the delimiters. The suppression directive scanner consumes these.
type Comment struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
