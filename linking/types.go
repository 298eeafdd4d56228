package linking

// Kind identifies the kind of a definition in a module's index spaces
type Kind uint8

const (
	KindFunc Kind = iota
	KindTable
	KindMemory
	KindGlobal
	KindInstance
	KindModule
	KindType

	numKinds = int(KindType) + 1
)

// String returns the kind's name as it appears in error messages
func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	case KindInstance:
		return "instance"
	case KindModule:
		return "module"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// ValType is a core value type, carried verbatim from the base format
type ValType byte

const (
	ValI32 ValType = 0x7f
	ValI64 ValType = 0x7e
	ValF32 ValType = 0x7d
	ValF64 ValType = 0x7c
)

// String returns the value type's text-format name
func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	default:
		return "unknown"
	}
}

// RefType is a core reference type used as a table element type
type RefType byte

const (
	RefFunc   RefType = 0x70
	RefExtern RefType = 0x6f
)

// Limits bounds a table or memory. Max is nil when unbounded.
type Limits struct {
	Max *uint32
	Min uint32
}

// DefType is the type of one definition: one of the six kinds that can be
// imported, exported, aliased, and indexed.
//
// Func, table, memory, and global types are structural leaves compared by
// exact equality. Instance and module types are compared only through the
// subtype relations, never by equality, so reordering their name entries
// cannot affect validity.
type DefType interface {
	// Kind returns the index-space kind this definition belongs to
	Kind() Kind

	isDefType()
}

// FuncType is a core function signature
type FuncType struct {
	Params  []ValType
	Results []ValType
}

func (FuncType) Kind() Kind { return KindFunc }
func (FuncType) isDefType() {}

// TableType is a core table type
type TableType struct {
	Limits Limits
	Elem   RefType
}

func (TableType) Kind() Kind { return KindTable }
func (TableType) isDefType() {}

// MemoryType is a core linear memory type
type MemoryType struct {
	Limits Limits
}

func (MemoryType) Kind() Kind { return KindMemory }
func (MemoryType) isDefType() {}

// GlobalType is a core global type
type GlobalType struct {
	Val     ValType
	Mutable bool
}

func (GlobalType) Kind() Kind { return KindGlobal }
func (GlobalType) isDefType() {}

// InstanceType maps export names to definition types. The map is
// order-irrelevant and must not be mutated after construction: instances
// have no observable identity, only structure.
type InstanceType struct {
	Exports map[string]DefType
}

func (InstanceType) Kind() Kind { return KindInstance }
func (InstanceType) isDefType() {}

// ModuleType carries a module's imports and exports, both name-unique and
// order-irrelevant. Import and export names are independent namespaces.
type ModuleType struct {
	Imports map[string]DefType
	Exports map[string]DefType
}

func (ModuleType) Kind() Kind { return KindModule }
func (ModuleType) isDefType() {}

// leafEqual reports invariant equality between two leaf definition types.
// Callers have already matched the kinds.
func leafEqual(a, b DefType) bool {
	switch at := a.(type) {
	case FuncType:
		bt := b.(FuncType)
		return valTypesEqual(at.Params, bt.Params) && valTypesEqual(at.Results, bt.Results)
	case TableType:
		bt := b.(TableType)
		return at.Elem == bt.Elem && limitsEqual(at.Limits, bt.Limits)
	case MemoryType:
		bt := b.(MemoryType)
		return limitsEqual(at.Limits, bt.Limits)
	case GlobalType:
		bt := b.(GlobalType)
		return at == bt
	default:
		return false
	}
}

func valTypesEqual(a, b []ValType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func limitsEqual(a, b Limits) bool {
	if a.Min != b.Min {
		return false
	}
	if (a.Max == nil) != (b.Max == nil) {
		return false
	}
	return a.Max == nil || *a.Max == *b.Max
}
