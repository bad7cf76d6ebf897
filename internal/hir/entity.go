package hir

// EntityKind enumerates the semantic constructs late lint passes can
// subscribe to. Dispatch tables are keyed by this enum the same way the
// early tier keys on ast.NodeKind.
type EntityKind uint8

const (
	EntityModule EntityKind = iota
	EntityContract
	EntityFunction
	EntityVariable
	EntityCall
	EntityBinary
	EntityAssembly

	entityKindCount // keep last
)

// NumEntityKinds is the size of the EntityKind value space.
const NumEntityKinds = int(entityKindCount)

func (k EntityKind) String() string {
	switch k {
	case EntityModule:
		return "module"
	case EntityContract:
		return "contract"
	case EntityFunction:
		return "function"
	case EntityVariable:
		return "variable"
	case EntityCall:
		return "call"
	case EntityBinary:
		return "binary"
	case EntityAssembly:
		return "assembly"
	}
	return "unknown"
}
