// Package suppress implements the inline lint-suppression directives.
//
// A directive is a source comment carrying the literal marker
// `forge-lint:` followed by one of the disable forms, optionally scoped
// to a parenthesized list of rule ids. All comments of one source unit
// are reduced into an Index that answers per-diagnostic suppression
// queries after the passes have run.
package suppress

import (
	"strings"

	"sollint/internal/diag"
	"sollint/internal/source"
	"sollint/internal/token"
)

// Marker is the literal token that introduces a directive inside a
// comment.
const Marker = "forge-lint:"

// Kind enumerates the recognized directive forms.
type Kind uint8

const (
	KindNone Kind = iota
	KindDisableLine
	KindDisableNextLine
	KindDisableNextItem
	KindDisableStart
	KindDisableEnd
)

func (k Kind) String() string {
	switch k {
	case KindDisableLine:
		return "disable-line"
	case KindDisableNextLine:
		return "disable-next-line"
	case KindDisableNextItem:
		return "disable-next-item"
	case KindDisableStart:
		return "disable-start"
	case KindDisableEnd:
		return "disable-end"
	}
	return "none"
}

// Directive is one parsed suppression comment.
type Directive struct {
	Kind Kind
	// Rules is empty for the unscoped forms, meaning every rule.
	Rules []diag.Code
	Span  source.Span
}

// keywords is checked in declaration order; prefixes never collide
// because a keyword match requires a boundary after it.
var keywords = []struct {
	text string
	kind Kind
}{
	{"disable-next-line", KindDisableNextLine},
	{"disable-next-item", KindDisableNextItem},
	{"disable-start", KindDisableStart},
	{"disable-end", KindDisableEnd},
	{"disable-line", KindDisableLine},
}

// ParseComment classifies one comment. It returns ok=false both for
// ordinary comments and for forge-lint comments whose directive text is
// unrecognized; malformed directives are a no-op, never an error.
func ParseComment(c token.Comment) (Directive, bool) {
	body := stripMarkers(c)
	rest, ok := afterMarker(body)
	if !ok {
		return Directive{}, false
	}
	rest = strings.TrimLeft(rest, " \t")
	for _, kw := range keywords {
		if !strings.HasPrefix(rest, kw.text) {
			continue
		}
		tail := rest[len(kw.text):]
		rules, ok := parseRuleList(tail)
		if !ok {
			return Directive{}, false
		}
		return Directive{Kind: kw.kind, Rules: rules, Span: c.Span}, true
	}
	// Bare `disable`, `enable` and anything else are not valid forms.
	return Directive{}, false
}

// stripMarkers removes the comment delimiters so the directive grammar
// only ever sees the comment body.
func stripMarkers(c token.Comment) string {
	text := c.Text
	switch c.Kind {
	case token.TriviaLineComment:
		text = strings.TrimPrefix(text, "//")
	case token.TriviaBlockComment:
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
	}
	return text
}

// afterMarker finds the forge-lint marker after optional leading
// whitespace and returns the text following it.
func afterMarker(body string) (string, bool) {
	trimmed := strings.TrimLeft(body, " \t")
	if !strings.HasPrefix(trimmed, Marker) {
		return "", false
	}
	return trimmed[len(Marker):], true
}

// parseRuleList parses the optional `(<ids>)` scope. An empty tail or a
// tail starting with whitespace means the unscoped form. Anything else
// directly after the keyword makes the whole comment unrecognized.
func parseRuleList(tail string) ([]diag.Code, bool) {
	if tail == "" {
		return nil, true
	}
	if tail[0] != '(' {
		if tail[0] == ' ' || tail[0] == '\t' {
			return nil, true
		}
		return nil, false
	}
	closing := strings.IndexByte(tail, ')')
	if closing < 0 {
		return nil, false
	}
	var rules []diag.Code
	for _, part := range strings.Split(tail[1:closing], ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		rules = append(rules, diag.Code(id))
	}
	return rules, true
}
