package ast

import (
	"sollint/internal/source"
)

// Item is a declaration-level node: a top-level unit member or a contract
// member. Kind selects which payload arena Payload indexes into.
type Item struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

// ContractKind distinguishes the contract-like declaration forms.
type ContractKind uint8

const (
	ContractPlain ContractKind = iota
	ContractAbstract
	ContractInterface
	ContractLibrary
)

func (k ContractKind) String() string {
	switch k {
	case ContractAbstract:
		return "abstract contract"
	case ContractInterface:
		return "interface"
	case ContractLibrary:
		return "library"
	}
	return "contract"
}

// Visibility of a function or state variable.
type Visibility uint8

const (
	VisUnspecified Visibility = iota
	VisPrivate
	VisInternal
	VisPublic
	VisExternal
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisInternal:
		return "internal"
	case VisPublic:
		return "public"
	case VisExternal:
		return "external"
	}
	return ""
}

// Mutability of a function.
type Mutability uint8

const (
	MutNonPayable Mutability = iota
	MutView
	MutPure
	MutPayable
)

func (m Mutability) String() string {
	switch m {
	case MutView:
		return "view"
	case MutPure:
		return "pure"
	case MutPayable:
		return "payable"
	}
	return ""
}

// VarMutability of a state variable.
type VarMutability uint8

const (
	VarMutable VarMutability = iota
	VarConstant
	VarImmutable
)

// FnKind distinguishes the function-like declaration forms.
type FnKind uint8

const (
	FnPlain FnKind = iota
	FnConstructor
	FnFallback
	FnReceive
)

// TypeRef is an unresolved textual type reference.
type TypeRef struct {
	Name source.StringID
	Span source.Span
}

// Param is one parameter, return value, struct field or event field.
type Param struct {
	Type TypeRef
	Name source.StringID // NoStringID for unnamed returns
	Span source.Span
}

// ModifierRef is one modifier invocation on a function header.
type ModifierRef struct {
	Name source.StringID
	Span source.Span
	Args []ExprID
}

type PragmaItem struct {
	Text string
}

// ImportSymbol is one entry of an `import {A as B} from "..."` list.
type ImportSymbol struct {
	Name  source.StringID
	Alias source.StringID
	Span  source.Span
}

type ImportItem struct {
	Path     source.StringID
	PathSpan source.Span
	Alias    source.StringID // `import "x" as y`
	Symbols  []ImportSymbol
}

type ContractItem struct {
	CKind    ContractKind
	Name     source.StringID
	NameSpan source.Span
	Bases    []TypeRef
	Members  []ItemID
}

type FunctionItem struct {
	FKind      FnKind
	Name       source.StringID
	NameSpan   source.Span
	Params     []Param
	Returns    []Param
	Visibility Visibility
	Mutability Mutability
	IsVirtual  bool
	IsOverride bool
	Modifiers  []ModifierRef
	Body       StmtID // NoStmtID for bodyless declarations
}

type ModifierItem struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
	Body     StmtID
}

type StateVarItem struct {
	Type       TypeRef
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility
	VarMut     VarMutability
	Value      ExprID
}

type EventItem struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
}

type StructItem struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   []Param
}

type EnumVariant struct {
	Name source.StringID
	Span source.Span
}

type EnumItem struct {
	Name     source.StringID
	NameSpan source.Span
	Variants []EnumVariant
}

// Items owns the item arena plus one payload arena per item kind.
type Items struct {
	Arena     *Arena[Item]
	Pragmas   *Arena[PragmaItem]
	Imports   *Arena[ImportItem]
	Contracts *Arena[ContractItem]
	Fns       *Arena[FunctionItem]
	Modifiers *Arena[ModifierItem]
	StateVars *Arena[StateVarItem]
	Events    *Arena[EventItem]
	Structs   *Arena[StructItem]
	Enums     *Arena[EnumItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Pragmas:   NewArena[PragmaItem](4),
		Imports:   NewArena[ImportItem](capHint),
		Contracts: NewArena[ContractItem](8),
		Fns:       NewArena[FunctionItem](capHint),
		Modifiers: NewArena[ModifierItem](8),
		StateVars: NewArena[StateVarItem](capHint),
		Events:    NewArena[EventItem](8),
		Structs:   NewArena[StructItem](8),
		Enums:     NewArena[EnumItem](8),
	}
}

func (i *Items) New(kind NodeKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) Pragma(it *Item) *PragmaItem       { return i.Pragmas.Get(uint32(it.Payload)) }
func (i *Items) Import(it *Item) *ImportItem       { return i.Imports.Get(uint32(it.Payload)) }
func (i *Items) Contract(it *Item) *ContractItem   { return i.Contracts.Get(uint32(it.Payload)) }
func (i *Items) Function(it *Item) *FunctionItem   { return i.Fns.Get(uint32(it.Payload)) }
func (i *Items) Modifier(it *Item) *ModifierItem   { return i.Modifiers.Get(uint32(it.Payload)) }
func (i *Items) StateVar(it *Item) *StateVarItem   { return i.StateVars.Get(uint32(it.Payload)) }
func (i *Items) Event(it *Item) *EventItem         { return i.Events.Get(uint32(it.Payload)) }
func (i *Items) Struct(it *Item) *StructItem       { return i.Structs.Get(uint32(it.Payload)) }
func (i *Items) Enum(it *Item) *EnumItem           { return i.Enums.Get(uint32(it.Payload)) }
