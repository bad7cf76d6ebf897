package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sollint/internal/diag"
	"sollint/internal/source"
)

// Pretty renders diagnostics human-readably. It walks bag.Items() and
// expects bag.Sort() to have run already. Each diagnostic prints as
//
//	path:line:col: sev [code]: message
//	  N | offending source line
//	    |     ^~~~~~
//
// followed by notes and fix suggestions when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevHigh:
		return color.New(color.FgRed, color.Bold)
	case diag.SevMed:
		return color.New(color.FgYellow, color.Bold)
	case diag.SevLow:
		return color.New(color.FgBlue, color.Bold)
	case diag.SevGas:
		return color.New(color.FgGreen, color.Bold)
	}
	return color.New(color.FgCyan, color.Bold)
}

func (p *prettyPrinter) path(span source.Span) string {
	file := p.fs.Get(span.File)
	if file == nil {
		return "<unknown>"
	}
	return file.FormatPath(p.opts.PathMode.mode(), p.fs.BaseDir())
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	start, _ := p.fs.Resolve(d.Primary)
	head := fmt.Sprintf("%s:%d:%d", p.path(d.Primary), start.Line, start.Col)
	sev := p.paint(severityColor(d.Severity), d.Severity.String())
	code := p.paint(color.New(color.Bold), "["+d.Code.String()+"]")
	fmt.Fprintf(p.w, "%s: %s %s: %s\n", head, sev, code, d.Message)

	p.sourceContext(d.Primary)

	if p.opts.EmitDescriptions && p.opts.Describe != nil {
		if desc := p.opts.Describe(d.Code); desc != "" {
			fmt.Fprintf(p.w, "    = %s\n", desc)
		}
	}
	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "    = note: %s\n", n.Msg)
		}
	}
	if p.opts.ShowFixes {
		for _, fix := range d.Fixes {
			p.fix(fix)
		}
	}
	fmt.Fprintln(p.w)
}

// sourceContext prints the diagnostic's first line with a caret
// underline. Display width drives the underline so tabs and wide runes
// stay aligned.
func (p *prettyPrinter) sourceContext(span source.Span) {
	file := p.fs.Get(span.File)
	if file == nil || span.Start >= uint32(len(file.Content)) {
		return
	}
	start, end := p.fs.Resolve(span)
	lineText := file.GetLine(start.Line)
	gutter := fmt.Sprintf("%4d", start.Line)

	fmt.Fprintf(p.w, "%s |\n", strings.Repeat(" ", len(gutter)))
	fmt.Fprintf(p.w, "%s | %s\n", gutter, lineText)

	colEnd := end.Col
	if end.Line != start.Line {
		// Multi-line spans underline to the end of the first line.
		colEnd = uint32(len(lineText)) + 1
	}
	if colEnd <= start.Col {
		colEnd = start.Col + 1
	}
	pad := displayWidth(lineText, int(start.Col)-1)
	width := displayWidth(lineText[min(int(start.Col)-1, len(lineText)):], int(colEnd-start.Col))
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "%s | %s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", pad),
		p.paint(color.New(color.FgRed, color.Bold), underline))
}

// displayWidth measures the terminal width of the first n bytes of s,
// counting tabs as four columns.
func displayWidth(s string, n int) int {
	if n < 0 {
		return 0
	}
	if n > len(s) {
		n = len(s)
	}
	width := 0
	for _, r := range s[:n] {
		if r == '\t' {
			width += 4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

func (p *prettyPrinter) fix(fix diag.Fix) {
	title := fix.Title
	if title == "" {
		title = "suggested fix"
	}
	fmt.Fprintf(p.w, "    = help: %s", title)
	if fix.Applicability != diag.ApplicabilityUnspecified {
		fmt.Fprintf(p.w, " (%s)", fix.Applicability)
	}
	fmt.Fprintln(p.w)
	for _, edit := range fix.Edits {
		if edit.NewText == "" {
			continue
		}
		fmt.Fprintf(p.w, "            %s\n", edit.NewText)
	}
	if fix.Snippet != "" {
		for _, line := range strings.Split(fix.Snippet, "\n") {
			fmt.Fprintf(p.w, "            %s\n", line)
		}
	}
}
