package hir

import (
	"errors"
	"strings"

	"sollint/internal/ast"
	"sollint/internal/source"
)

// ErrLowerFatal is returned when no usable module could be produced at
// all. Individual unresolved symbols are not fatal; they only bump
// Module.Unresolved.
var ErrLowerFatal = errors.New("lowering failed")

// Lower transforms a parsed file into its HIR module. Name resolution is
// best-effort: references that cannot be bound produce nil symbols and
// unresolved types rather than errors.
func Lower(builder *ast.Builder, fileID ast.FileID) (*Module, error) {
	if builder == nil || !fileID.IsValid() {
		return nil, ErrLowerFatal
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, ErrLowerFatal
	}

	l := &lowerer{
		builder: builder,
		module: &Module{
			Source:    file.Source,
			SourceAST: fileID,
		},
		moduleScope: make(map[string]*Symbol),
	}

	l.collectModuleScope(file)

	for _, itemID := range file.Items {
		item := builder.Items.Get(itemID)
		switch item.Kind {
		case ast.KindContract:
			l.module.Contracts = append(l.module.Contracts, l.lowerContract(itemID, item))
		case ast.KindFunction:
			l.module.Functions = append(l.module.Functions, l.lowerFunction(itemID, item, nil))
		}
	}

	return l.module, nil
}

type lowerer struct {
	builder     *ast.Builder
	module      *Module
	moduleScope map[string]*Symbol
}

func (l *lowerer) name(id source.StringID) string {
	return l.builder.Name(id)
}

// collectModuleScope registers every file-level declaration before any
// body is lowered, so forward references resolve.
func (l *lowerer) collectModuleScope(file *ast.File) {
	items := l.builder.Items
	for _, itemID := range file.Items {
		item := items.Get(itemID)
		switch item.Kind {
		case ast.KindContract:
			c := items.Contract(item)
			l.moduleScope[l.name(c.Name)] = &Symbol{
				Kind:     SymContract,
				Name:     l.name(c.Name),
				Type:     Type{Name: l.name(c.Name)},
				DeclSpan: c.NameSpan,
			}
		case ast.KindFunction:
			f := items.Function(item)
			l.moduleScope[l.name(f.Name)] = &Symbol{
				Kind:     SymFunction,
				Name:     l.name(f.Name),
				DeclSpan: f.NameSpan,
			}
		case ast.KindStruct:
			s := items.Struct(item)
			l.moduleScope[l.name(s.Name)] = &Symbol{
				Kind:     SymStruct,
				Name:     l.name(s.Name),
				Type:     Type{Name: l.name(s.Name)},
				DeclSpan: s.NameSpan,
			}
		case ast.KindEnum:
			e := items.Enum(item)
			l.moduleScope[l.name(e.Name)] = &Symbol{
				Kind:     SymEnum,
				Name:     l.name(e.Name),
				Type:     Type{Name: l.name(e.Name)},
				DeclSpan: e.NameSpan,
			}
		case ast.KindImport:
			imp := items.Import(item)
			// imported symbols resolve to opaque contract-like symbols
			for _, sym := range imp.Symbols {
				visible := sym.Alias
				if visible == source.NoStringID {
					visible = sym.Name
				}
				l.moduleScope[l.name(visible)] = &Symbol{
					Kind:     SymContract,
					Name:     l.name(visible),
					Type:     Type{Name: l.name(sym.Name)},
					DeclSpan: sym.Span,
				}
			}
		}
	}
}

// resolveType binds a textual type reference. Elementary types and
// module-scope declarations resolve; everything else stays unresolved.
func (l *lowerer) resolveType(ref ast.TypeRef, scope *contractScope) Type {
	name := l.name(ref.Name)
	if name == "" {
		l.module.Unresolved++
		return Type{Unresolved: true}
	}
	if isElementaryType(name) {
		return Type{Name: name}
	}
	if scope != nil {
		if _, ok := scope.members[baseTypeName(name)]; ok {
			return Type{Name: name}
		}
	}
	if _, ok := l.moduleScope[baseTypeName(name)]; ok {
		return Type{Name: name}
	}
	l.module.Unresolved++
	return Type{Name: name, Unresolved: true}
}

// baseTypeName strips array suffixes: "Foo[]" -> "Foo".
func baseTypeName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

func isElementaryType(name string) bool {
	base := baseTypeName(name)
	switch base {
	case "bool", "address", "string", "bytes":
		return true
	}
	for _, prefix := range []string{"uint", "int", "bytes", "fixed", "ufixed"} {
		if strings.HasPrefix(base, prefix) && isDigits(base[len(prefix):]) {
			return true
		}
	}
	return strings.HasPrefix(base, "mapping(") || strings.HasPrefix(base, "mapping (")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

type contractScope struct {
	members map[string]*Symbol
}

func (l *lowerer) lowerContract(itemID ast.ItemID, item *ast.Item) *Contract {
	items := l.builder.Items
	decl := items.Contract(item)

	out := &Contract{
		CKind:    decl.CKind,
		Name:     l.name(decl.Name),
		Span:     item.Span,
		NameSpan: decl.NameSpan,
		Syntax:   itemID,
	}

	scope := &contractScope{members: make(map[string]*Symbol)}

	// member declarations first, bodies second
	for _, memberID := range decl.Members {
		member := items.Get(memberID)
		switch member.Kind {
		case ast.KindStateVar:
			v := items.StateVar(member)
			scope.members[l.name(v.Name)] = &Symbol{
				Kind:     SymStateVar,
				Name:     l.name(v.Name),
				DeclSpan: v.NameSpan,
			}
		case ast.KindFunction:
			f := items.Function(member)
			if f.FKind == ast.FnPlain {
				scope.members[l.name(f.Name)] = &Symbol{
					Kind:     SymFunction,
					Name:     l.name(f.Name),
					DeclSpan: f.NameSpan,
				}
			}
		case ast.KindModifier:
			m := items.Modifier(member)
			scope.members[l.name(m.Name)] = &Symbol{
				Kind:     SymModifier,
				Name:     l.name(m.Name),
				DeclSpan: m.NameSpan,
			}
		case ast.KindEvent:
			e := items.Event(member)
			scope.members[l.name(e.Name)] = &Symbol{
				Kind:     SymEvent,
				Name:     l.name(e.Name),
				DeclSpan: e.NameSpan,
			}
		case ast.KindStruct:
			s := items.Struct(member)
			scope.members[l.name(s.Name)] = &Symbol{
				Kind:     SymStruct,
				Name:     l.name(s.Name),
				Type:     Type{Name: l.name(s.Name)},
				DeclSpan: s.NameSpan,
			}
		case ast.KindEnum:
			e := items.Enum(member)
			scope.members[l.name(e.Name)] = &Symbol{
				Kind:     SymEnum,
				Name:     l.name(e.Name),
				Type:     Type{Name: l.name(e.Name)},
				DeclSpan: e.NameSpan,
			}
		}
	}

	for _, memberID := range decl.Members {
		member := items.Get(memberID)
		switch member.Kind {
		case ast.KindStateVar:
			out.StateVars = append(out.StateVars, l.lowerStateVar(member, scope))
		case ast.KindFunction:
			out.Functions = append(out.Functions, l.lowerFunction(memberID, member, scope))
		case ast.KindModifier:
			out.Functions = append(out.Functions, l.lowerModifier(memberID, member, scope))
		}
	}

	return out
}

func (l *lowerer) lowerStateVar(item *ast.Item, scope *contractScope) *Variable {
	decl := l.builder.Items.StateVar(item)
	name := l.name(decl.Name)

	sym := scope.members[name]
	if sym == nil {
		sym = &Symbol{Kind: SymStateVar, Name: name, DeclSpan: decl.NameSpan}
	}
	sym.Type = l.resolveType(decl.Type, scope)

	v := &Variable{
		Sym:        sym,
		IsState:    true,
		VarMut:     decl.VarMut,
		Visibility: decl.Visibility,
		Span:       item.Span,
		NameSpan:   decl.NameSpan,
	}
	if decl.Value.IsValid() {
		fl := &funcLowerer{lowerer: l, scope: scope, locals: make(map[string]*Symbol)}
		v.Value = fl.lowerExpr(decl.Value)
	}
	return v
}
