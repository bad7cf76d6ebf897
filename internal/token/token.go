package token

import (
	"sollint/internal/source"
)

// Token represents a single source token with its location.
// Text is populated for identifiers and literals only.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}
