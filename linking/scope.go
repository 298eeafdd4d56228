package linking

import (
	"github.com/wippyai/module-linking/errors"
	"github.com/wippyai/module-linking/linking/internal/arena"
)

// Scope is the validation state of one module: six append-only index
// spaces, the accumulated import and export maps, and a non-owning link to
// the lexically enclosing scope used only for outer-alias resolution.
type Scope struct {
	parent *Scope

	// outerLimits[i][k] is the length of ancestor i's kind-k space at the
	// moment this scope was declared, nearest ancestor first. An inner
	// module can only outer-alias definitions that lexically precede its
	// own declaration.
	outerLimits [][]uint32

	spaces [numKinds]arena.Space[DefType]

	importNames arena.Names
	exportNames arena.Names
	imports     map[string]DefType
	exports     map[string]DefType
}

// NewScope creates the validation scope for a module declared under parent
// (nil for a top-level module). Ancestor space lengths are snapshotted here.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		parent:  parent,
		imports: make(map[string]DefType),
		exports: make(map[string]DefType),
	}
	if parent != nil {
		self := make([]uint32, numKinds)
		for k := 0; k < numKinds; k++ {
			self[k] = uint32(parent.spaces[k].Len())
		}
		// Deeper ancestors were already frozen when parent was declared.
		s.outerLimits = make([][]uint32, 0, len(parent.outerLimits)+1)
		s.outerLimits = append(s.outerLimits, self)
		s.outerLimits = append(s.outerLimits, parent.outerLimits...)
	}
	return s
}

// Declare appends def to the kind-k space and returns its new index
func (s *Scope) Declare(k Kind, def DefType) uint32 {
	return s.spaces[k].Declare(def)
}

// Resolve returns the definition at idx in the kind-k space. The bound is
// evaluated at the moment of the call, so a definition can never see
// definitions appended after it.
func (s *Scope) Resolve(k Kind, idx uint32) (DefType, error) {
	def, ok := s.spaces[k].Resolve(idx)
	if !ok {
		return nil, errors.UnboundIndex(errors.PhaseValidate, k.String(), int(idx), s.spaces[k].Len())
	}
	return def, nil
}

// Len returns the current length of the kind-k space
func (s *Scope) Len(k Kind) int {
	return s.spaces[k].Len()
}

// DeclareImport registers an import name, records its type in the module
// type under construction, and declares the imported definition into the
// index space of its own kind.
func (s *Scope) DeclareImport(name string, def DefType) error {
	if !s.importNames.Add(name) {
		return errors.DuplicateName(errors.PhaseValidate, "import", name)
	}
	s.imports[name] = def
	s.Declare(def.Kind(), def)
	return nil
}

// AddExport registers an export name and its resolved type. Exports are
// write-only: nothing reads them back until the scope is frozen.
func (s *Scope) AddExport(name string, def DefType) error {
	if !s.exportNames.Add(name) {
		return errors.DuplicateName(errors.PhaseValidate, "export", name)
	}
	s.exports[name] = def
	return nil
}

// Depth returns the number of enclosing scopes
func (s *Scope) Depth() int {
	return len(s.outerLimits)
}

// ResolveOuter resolves (k, idx) against the ancestor count parent links
// away, bounded by the ancestor's space length as snapshotted when this
// scope was declared.
func (s *Scope) ResolveOuter(count uint32, k Kind, idx uint32) (DefType, error) {
	if int(count) >= len(s.outerLimits) {
		return nil, errors.AliasDepth(int(count), len(s.outerLimits))
	}
	anc := s.parent
	for i := uint32(0); i < count; i++ {
		anc = anc.parent
	}
	bound := s.outerLimits[count][k]
	def, ok := anc.spaces[k].ResolveBounded(idx, bound)
	if !ok {
		return nil, errors.UnboundIndex(errors.PhaseValidate, "outer "+k.String(), int(idx), int(bound))
	}
	return def, nil
}

// Type freezes the scope into its module type: the accumulated imports and
// exports with declaration order erased. The returned maps are copies; the
// scope itself is discardable afterwards.
func (s *Scope) Type() ModuleType {
	imports := make(map[string]DefType, len(s.imports))
	for name, def := range s.imports {
		imports[name] = def
	}
	exports := make(map[string]DefType, len(s.exports))
	for name, def := range s.exports {
		exports[name] = def
	}
	return ModuleType{Imports: imports, Exports: exports}
}
