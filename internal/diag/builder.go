package diag

import "sollint/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

// ReplaceSpan builds an actionable single-edit fix.
func ReplaceSpan(title string, span source.Span, newText, oldText string, app Applicability) Fix {
	return Fix{
		Title:         title,
		Applicability: app,
		Edits: []TextEdit{{
			Span:    span,
			NewText: newText,
			OldText: oldText,
		}},
	}
}

// DeleteSpan builds a fix that removes the text covered by span.
func DeleteSpan(title string, span source.Span, oldText string, app Applicability) Fix {
	return ReplaceSpan(title, span, "", oldText, app)
}

// ExampleFix builds a non-actionable suggestion with an illustrative snippet.
func ExampleFix(title, snippet string) Fix {
	return Fix{
		Title:   title,
		Snippet: snippet,
	}
}
