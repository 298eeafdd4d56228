package linking

// InstanceSubtype reports whether a is a structural subtype of b: every
// export b demands must be present in a with a compatible type. Exports of
// a that b does not mention are ignored.
func InstanceSubtype(a, b InstanceType) bool {
	for name, want := range b.Exports {
		got, ok := a.Exports[name]
		if !ok || !defSubtype(got, want) {
			return false
		}
	}
	return true
}

// ModuleSubtype reports whether a is a subtype of b. Exports are covariant
// under the instance rule. Imports are contravariant: b's import
// requirements, read as an instance type, must cover a's, so a module
// needing fewer or weaker imports is a subtype of one needing more.
func ModuleSubtype(a, b ModuleType) bool {
	if !InstanceSubtype(InstanceType{Exports: a.Exports}, InstanceType{Exports: b.Exports}) {
		return false
	}
	return InstanceSubtype(InstanceType{Exports: b.Imports}, InstanceType{Exports: a.Imports})
}

// defSubtype is the definition-level relation: subtyping for instance and
// module types, invariant equality for the leaf kinds.
func defSubtype(a, b DefType) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch want := b.(type) {
	case InstanceType:
		return InstanceSubtype(a.(InstanceType), want)
	case ModuleType:
		return ModuleSubtype(a.(ModuleType), want)
	default:
		return leafEqual(a, b)
	}
}
