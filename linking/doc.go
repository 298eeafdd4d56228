// Package linking implements the module-linking type system: module and
// instance types, their structural subtype relations, and the validator
// that checks a module's definition sequence in a single forward pass.
//
// A module is an ordered sequence of definitions: types, imports, nested
// modules, instance creations, aliases, and exports. Validation builds
// per-kind index spaces incrementally; a definition may only reference
// indices that existed before it was appended, which makes the definition
// graph acyclic by construction. The type of a fully validated module is
// its accumulated imports and exports with declaration order erased.
package linking
