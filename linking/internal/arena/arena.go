// Package arena implements the append-only index spaces that back every
// validation scope.
//
// A Space is a growable vector that is never shrunk and never reordered.
// Index i is valid iff i was assigned before the lookup, so a definition can
// only ever reference definitions that precede it. That single rule is what
// keeps the whole definition graph acyclic without a cycle check.
package arena

// Space is an append-only index space over definitions of one kind.
// The zero value is ready to use.
type Space[T any] struct {
	defs []T
}

// Declare appends def and returns its index. The n-th declared definition
// gets index n-1. Declare never fails.
func (s *Space[T]) Declare(def T) uint32 {
	idx := uint32(len(s.defs))
	s.defs = append(s.defs, def)
	return idx
}

// Resolve returns the definition at idx. The bound is the space's length at
// the moment of the call, so forward references cannot resolve.
func (s *Space[T]) Resolve(idx uint32) (T, bool) {
	if int(idx) >= len(s.defs) {
		var zero T
		return zero, false
	}
	return s.defs[idx], true
}

// ResolveBounded is Resolve with an explicit upper bound. Outer aliases use
// it to read an ancestor space as it was when the aliasing scope was
// declared, not at the ancestor's live length.
func (s *Space[T]) ResolveBounded(idx, bound uint32) (T, bool) {
	if idx >= bound || int(idx) >= len(s.defs) {
		var zero T
		return zero, false
	}
	return s.defs[idx], true
}

// Len returns the current length of the space
func (s *Space[T]) Len() int {
	return len(s.defs)
}

// Names tracks a single namespace of declared names. Import and export
// names live in separate Names sets: the two namespaces are independent.
type Names struct {
	seen map[string]struct{}
}

// Add records name, reporting false if it was already present
func (n *Names) Add(name string) bool {
	if n.seen == nil {
		n.seen = make(map[string]struct{})
	}
	if _, dup := n.seen[name]; dup {
		return false
	}
	n.seen[name] = struct{}{}
	return true
}

// Has reports whether name was recorded
func (n *Names) Has(name string) bool {
	_, ok := n.seen[name]
	return ok
}
