package ast

// NodeKind is the closed set of syntax node kinds. Early lint passes
// declare interest per kind, so the enum spans items, statements and
// expressions alike.
type NodeKind uint8

const (
	KindSourceUnit NodeKind = iota

	// items
	KindPragma
	KindImport
	KindContract
	KindFunction
	KindModifier
	KindStateVar
	KindEvent
	KindStruct
	KindEnum

	// statements
	KindBlock
	KindVarDecl
	KindExprStmt
	KindReturn
	KindIf
	KindFor
	KindEmit
	KindAssembly

	// expressions
	KindIdent
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindBinary
	KindUnary
	KindAssign
	KindCall
	KindMember
	KindIndex
	KindTuple

	nodeKindCount // keep last
)

// NumNodeKinds is the size of the NodeKind value space, used to build
// dense dispatch tables.
const NumNodeKinds = int(nodeKindCount)

func (k NodeKind) String() string {
	switch k {
	case KindSourceUnit:
		return "source-unit"
	case KindPragma:
		return "pragma"
	case KindImport:
		return "import"
	case KindContract:
		return "contract"
	case KindFunction:
		return "function"
	case KindModifier:
		return "modifier"
	case KindStateVar:
		return "state-var"
	case KindEvent:
		return "event"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindBlock:
		return "block"
	case KindVarDecl:
		return "var-decl"
	case KindExprStmt:
		return "expr-stmt"
	case KindReturn:
		return "return"
	case KindIf:
		return "if"
	case KindFor:
		return "for"
	case KindEmit:
		return "emit"
	case KindAssembly:
		return "assembly"
	case KindIdent:
		return "ident"
	case KindNumberLit:
		return "number-lit"
	case KindStringLit:
		return "string-lit"
	case KindBoolLit:
		return "bool-lit"
	case KindBinary:
		return "binary"
	case KindUnary:
		return "unary"
	case KindAssign:
		return "assign"
	case KindCall:
		return "call"
	case KindMember:
		return "member"
	case KindIndex:
		return "index"
	case KindTuple:
		return "tuple"
	}
	return "unknown"
}

// IsItem reports whether the kind is a declaration-level node.
func (k NodeKind) IsItem() bool {
	return k >= KindPragma && k <= KindEnum
}
