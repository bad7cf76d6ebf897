package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// isMixedCase accepts mixedCase identifiers. Leading and trailing
// underscores are conventional (storage gaps, internal markers) and do
// not count against the name; inner underscores do.
func isMixedCase(name string) bool {
	core := strings.Trim(name, "_")
	if core == "" {
		return true
	}
	if strings.ContainsRune(core, '_') {
		return false
	}
	return !unicode.IsUpper(firstLetter(core))
}

// isPascalCase accepts PascalCase type names.
func isPascalCase(name string) bool {
	core := strings.Trim(name, "_")
	if core == "" {
		return true
	}
	if strings.ContainsRune(core, '_') {
		return false
	}
	return unicode.IsUpper(firstLetter(core))
}

// isScreamingSnake accepts SCREAMING_SNAKE_CASE constant names.
func isScreamingSnake(name string) bool {
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func firstLetter(s string) rune {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return r
		}
	}
	return 0
}

// toMixedCase derives a mixedCase suggestion from an arbitrary name,
// preserving leading and trailing underscores.
func toMixedCase(name string) string {
	prefix, core, suffix := splitUnderscores(name)
	words := splitWords(core)
	if len(words) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	b.WriteString(suffix)
	return b.String()
}

// toPascalCase derives a PascalCase suggestion.
func toPascalCase(name string) string {
	prefix, core, suffix := splitUnderscores(name)
	words := splitWords(core)
	if len(words) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, w := range words {
		b.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	b.WriteString(suffix)
	return b.String()
}

// toScreamingSnake derives a SCREAMING_SNAKE_CASE suggestion.
func toScreamingSnake(name string) string {
	prefix, core, suffix := splitUnderscores(name)
	words := splitWords(core)
	if len(words) == 0 {
		return name
	}
	upper := make([]string, len(words))
	for i, w := range words {
		upper[i] = strings.ToUpper(w)
	}
	return prefix + strings.Join(upper, "_") + suffix
}

func splitUnderscores(name string) (prefix, core, suffix string) {
	core = strings.TrimLeft(name, "_")
	prefix = name[:len(name)-len(core)]
	trimmed := strings.TrimRight(core, "_")
	suffix = core[len(trimmed):]
	return prefix, trimmed, suffix
}

// splitWords breaks an identifier into words at underscores and
// lower-to-upper case boundaries.
func splitWords(s string) []string {
	var words []string
	for _, chunk := range strings.Split(s, "_") {
		if chunk == "" {
			continue
		}
		start := 0
		runes := []rune(chunk)
		for i := 1; i < len(runes); i++ {
			if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}
