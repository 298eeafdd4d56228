package linking

// Definition is one item of a module's definition sequence, already decoded
// from whatever surface syntax produced it. Definitions are validated
// strictly in declaration order; each one may only reference indices that
// existed before it was appended.
type Definition interface {
	isDefinition()
}

// TypeDecl declares a type into the type index space
type TypeDecl struct {
	Type DefType
}

// ImportDecl declares an import. The imported definition lands in the index
// space of its own kind, and the name is registered in the module's import
// namespace.
type ImportDecl struct {
	Type DefType
	Name string
}

// ModuleDecl declares a nested module as its own definition sequence.
// Validation of the subsequence runs in a child scope whose view of every
// ancestor's index spaces is frozen at this point.
type ModuleDecl struct {
	Defs []Definition
}

// InstantiateDecl creates an instance by supplying named arguments to a
// module already present in the module index space.
type InstantiateDecl struct {
	Args   []InstanceArg
	Module uint32
}

// TupleDecl creates an instance directly from named definitions, without a
// backing module.
type TupleDecl struct {
	Args []InstanceArg
}

// ExportAliasDecl injects one export of an already-created instance into
// the current scope's index space for Kind.
type ExportAliasDecl struct {
	Name     string
	Instance uint32
	Kind     Kind
}

// OuterAliasDecl injects a definition from an enclosing scope. Count 0 is
// the immediately enclosing scope. Only module and type definitions are
// legal targets: stateful definitions cannot be duplicated across copies.
type OuterAliasDecl struct {
	Count uint32
	Kind  Kind
	Index uint32
}

// ExportDecl exports the definition at (Kind, Index) under Name
type ExportDecl struct {
	Name  string
	Kind  Kind
	Index uint32
}

func (TypeDecl) isDefinition()        {}
func (ImportDecl) isDefinition()      {}
func (ModuleDecl) isDefinition()      {}
func (InstantiateDecl) isDefinition() {}
func (TupleDecl) isDefinition()       {}
func (ExportAliasDecl) isDefinition() {}
func (OuterAliasDecl) isDefinition()  {}
func (ExportDecl) isDefinition()      {}

// InstanceArg references a definition by kind and index, bound to an import
// name of the module being instantiated.
type InstanceArg struct {
	Name  string
	Kind  Kind
	Index uint32
}

// NamedArg is a resolved instantiation argument, as supplied by a host
// embedding or produced by resolving an InstanceArg.
type NamedArg struct {
	Type DefType
	Name string
}
