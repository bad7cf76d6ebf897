package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number
	String

	// keywords
	KwPragma
	KwImport
	KwContract
	KwAbstract
	KwInterface
	KwLibrary
	KwFunction
	KwModifier
	KwConstructor
	KwFallback
	KwReceive
	KwEvent
	KwStruct
	KwEnum
	KwMapping
	KwPublic
	KwPrivate
	KwInternal
	KwExternal
	KwPure
	KwView
	KwPayable
	KwConstant
	KwImmutable
	KwIndexed
	KwVirtual
	KwOverride
	KwMemory
	KwStorage
	KwCalldata
	KwReturns
	KwReturn
	KwIf
	KwElse
	KwFor
	KwWhile
	KwEmit
	KwAssembly
	KwUnchecked
	KwNew
	KwDelete
	KwIs
	KwAs
	KwFrom
	KwTrue
	KwFalse
	KwUsing

	// punctuation and operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	Question
	Arrow
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	Shl
	Shr
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	BangEq
	AndAnd
	OrOr
	Bang
	Amp
	Pipe
	Caret
	Tilde
	Inc
	Dec
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
)

// IsKeyword reports whether the token kind is a language keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwPragma && k <= KwUsing
}

var kindNames = [...]string{
	Invalid: "invalid",
	EOF:     "eof",
	Ident:   "ident",
	Number:  "number",
	String:  "string",

	KwPragma:      "pragma",
	KwImport:      "import",
	KwContract:    "contract",
	KwAbstract:    "abstract",
	KwInterface:   "interface",
	KwLibrary:     "library",
	KwFunction:    "function",
	KwModifier:    "modifier",
	KwConstructor: "constructor",
	KwFallback:    "fallback",
	KwReceive:     "receive",
	KwEvent:       "event",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwMapping:     "mapping",
	KwPublic:      "public",
	KwPrivate:     "private",
	KwInternal:    "internal",
	KwExternal:    "external",
	KwPure:        "pure",
	KwView:        "view",
	KwPayable:     "payable",
	KwConstant:    "constant",
	KwImmutable:   "immutable",
	KwIndexed:     "indexed",
	KwVirtual:     "virtual",
	KwOverride:    "override",
	KwMemory:      "memory",
	KwStorage:     "storage",
	KwCalldata:    "calldata",
	KwReturns:     "returns",
	KwReturn:      "return",
	KwIf:          "if",
	KwElse:        "else",
	KwFor:         "for",
	KwWhile:       "while",
	KwEmit:        "emit",
	KwAssembly:    "assembly",
	KwUnchecked:   "unchecked",
	KwNew:         "new",
	KwDelete:      "delete",
	KwIs:          "is",
	KwAs:          "as",
	KwFrom:        "from",
	KwTrue:        "true",
	KwFalse:       "false",
	KwUsing:       "using",

	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Colon:       ":",
	Question:    "?",
	Arrow:       "=>",
	Assign:      "=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	StarStar:    "**",
	Shl:         "<<",
	Shr:         ">>",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	EqEq:        "==",
	BangEq:      "!=",
	AndAnd:      "&&",
	OrOr:        "||",
	Bang:        "!",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	Tilde:       "~",
	Inc:         "++",
	Dec:         "--",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
