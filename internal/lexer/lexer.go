package lexer

import (
	"sollint/internal/diag"
	"sollint/internal/source"
	"sollint/internal/token"
)

// Lexer tokenizes one Solidity source file, collecting comments on the
// side so that the suppression directive scanner can consume them.
type Lexer struct {
	file     *source.File
	off      uint32
	reporter diag.Reporter
	comments []token.Comment
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:     file,
		reporter: reporter,
	}
}

// Comments returns every comment seen so far, in source order.
func (lx *Lexer) Comments() []token.Comment {
	return lx.comments
}

// Tokenize consumes the whole file, returning tokens ending with EOF.
func (lx *Lexer) Tokenize() []token.Token {
	toks := make([]token.Token, 0, len(lx.file.Content)/4)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.off}
}

func (lx *Lexer) eof() bool {
	return lx.off >= uint32(len(lx.file.Content))
}

// peek returns the byte at the cursor, or 0 past the end. Callers that
// must tell a literal NUL byte from end of input check eof() instead.
func (lx *Lexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.file.Content[lx.off]
}

func (lx *Lexer) peekAt(n uint32) byte {
	if lx.off+n >= uint32(len(lx.file.Content)) {
		return 0
	}
	return lx.file.Content[lx.off+n]
}

// Next returns the next significant token, skipping whitespace and
// stashing comments.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	start := lx.off
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.span(start)}
	}

	c := lx.peek()
	switch {
	case isIdentStart(c):
		return lx.lexIdent(start)
	case c >= '0' && c <= '9':
		return lx.lexNumber(start)
	case c == '"' || c == '\'':
		return lx.lexString(start, c)
	}
	return lx.lexOperator(start)
}

func (lx *Lexer) skipTrivia() {
	for {
		c := lx.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			lx.off++
		case c == '/' && lx.peekAt(1) == '/':
			lx.lexLineComment()
		case c == '/' && lx.peekAt(1) == '*':
			lx.lexBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) lexLineComment() {
	start := lx.off
	for !lx.eof() && lx.peek() != '\n' {
		lx.off++
	}
	sp := lx.span(start)
	lx.comments = append(lx.comments, token.Comment{
		Kind: token.TriviaLineComment,
		Span: sp,
		Text: lx.file.Text(sp),
	})
}

func (lx *Lexer) lexBlockComment() {
	start := lx.off
	lx.off += 2
	for {
		if lx.eof() {
			lx.reporter.Report(diag.CodeParseError, diag.SevHigh, lx.span(start),
				"unterminated block comment", nil, nil)
			break
		}
		if lx.peek() == '*' && lx.peekAt(1) == '/' {
			lx.off += 2
			break
		}
		lx.off++
	}
	sp := lx.span(start)
	lx.comments = append(lx.comments, token.Comment{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: lx.file.Text(sp),
	})
}

func (lx *Lexer) lexIdent(start uint32) token.Token {
	for isIdentPart(lx.peek()) {
		lx.off++
	}
	sp := lx.span(start)
	text := lx.file.Text(sp)
	return token.Token{Kind: token.LookupIdent(text), Span: sp, Text: text}
}

func (lx *Lexer) lexNumber(start uint32) token.Token {
	// hex, decimal, underscores and exponent suffixes are all kept verbatim
	for {
		c := lx.peek()
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
			c == 'x' || c == 'X' || c == '_' || c == '.' || c == 'e' {
			lx.off++
			continue
		}
		break
	}
	sp := lx.span(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) lexString(start uint32, quote byte) token.Token {
	lx.off++
	for {
		if lx.eof() || lx.peek() == '\n' {
			lx.reporter.Report(diag.CodeParseError, diag.SevHigh, lx.span(start),
				"unterminated string literal", nil, nil)
			break
		}
		c := lx.peek()
		if c == '\\' {
			// skip the escape; a trailing backslash must not run the
			// cursor past the end of the file
			lx.off += 2
			if n := uint32(len(lx.file.Content)); lx.off > n {
				lx.off = n
			}
			continue
		}
		if c == quote {
			lx.off++
			break
		}
		lx.off++
	}
	sp := lx.span(start)
	text := lx.file.Text(sp)
	// strip the quotes when the literal closed properly
	if len(text) >= 2 && text[len(text)-1] == quote {
		text = text[1 : len(text)-1]
	} else if len(text) >= 1 {
		text = text[1:]
	}
	return token.Token{Kind: token.String, Span: sp, Text: text}
}

type opEntry struct {
	text string
	kind token.Kind
}

// longest match first inside each leading-byte group
var operators = []opEntry{
	{"<<", token.Shl},
	{"<=", token.LtEq},
	{"<", token.Lt},
	{">>", token.Shr},
	{">=", token.GtEq},
	{">", token.Gt},
	{"==", token.EqEq},
	{"=>", token.Arrow},
	{"=", token.Assign},
	{"!=", token.BangEq},
	{"!", token.Bang},
	{"&&", token.AndAnd},
	{"&", token.Amp},
	{"||", token.OrOr},
	{"|", token.Pipe},
	{"++", token.Inc},
	{"+=", token.PlusAssign},
	{"+", token.Plus},
	{"--", token.Dec},
	{"-=", token.MinusAssign},
	{"-", token.Minus},
	{"**", token.StarStar},
	{"*=", token.StarAssign},
	{"*", token.Star},
	{"/=", token.SlashAssign},
	{"/", token.Slash},
	{"%", token.Percent},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{":", token.Colon},
	{"?", token.Question},
}

func (lx *Lexer) lexOperator(start uint32) token.Token {
	rest := lx.file.Content[lx.off:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			lx.off += uint32(len(op.text))
			return token.Token{Kind: op.kind, Span: lx.span(start)}
		}
	}
	lx.off++
	sp := lx.span(start)
	lx.reporter.Report(diag.CodeParseError, diag.SevHigh, sp,
		"unexpected character "+string(lx.file.Content[start]), nil, nil)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
