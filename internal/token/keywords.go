package token

var keywords = map[string]Kind{
	"pragma":      KwPragma,
	"import":      KwImport,
	"contract":    KwContract,
	"abstract":    KwAbstract,
	"interface":   KwInterface,
	"library":     KwLibrary,
	"function":    KwFunction,
	"modifier":    KwModifier,
	"constructor": KwConstructor,
	"fallback":    KwFallback,
	"receive":     KwReceive,
	"event":       KwEvent,
	"struct":      KwStruct,
	"enum":        KwEnum,
	"mapping":     KwMapping,
	"public":      KwPublic,
	"private":     KwPrivate,
	"internal":    KwInternal,
	"external":    KwExternal,
	"pure":        KwPure,
	"view":        KwView,
	"payable":     KwPayable,
	"constant":    KwConstant,
	"immutable":   KwImmutable,
	"indexed":     KwIndexed,
	"virtual":     KwVirtual,
	"override":    KwOverride,
	"memory":      KwMemory,
	"storage":     KwStorage,
	"calldata":    KwCalldata,
	"returns":     KwReturns,
	"return":      KwReturn,
	"if":          KwIf,
	"else":        KwElse,
	"for":         KwFor,
	"while":       KwWhile,
	"emit":        KwEmit,
	"assembly":    KwAssembly,
	"unchecked":   KwUnchecked,
	"new":         KwNew,
	"delete":      KwDelete,
	"is":          KwIs,
	"as":          KwAs,
	"from":        KwFrom,
	"true":        KwTrue,
	"false":       KwFalse,
	"using":       KwUsing,
}

// LookupIdent maps an identifier to its keyword kind, or Ident.
func LookupIdent(name string) Kind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return Ident
}
