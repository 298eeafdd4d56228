package linking

import (
	"github.com/wippyai/module-linking/errors"
)

// Instantiate checks a named-argument list against mod's declared imports
// and returns the type of the created instance: exactly mod's exports.
//
// Matching is name-based and order-irrelevant. Every declared import must be
// covered by exactly one argument whose type is a subtype of the import
// type; argument names the module does not import are ignored. The same
// routine backs nested instantiate definitions and host-driven
// instantiation.
func Instantiate(mod ModuleType, args []NamedArg) (InstanceType, error) {
	byName := make(map[string]DefType, len(args))
	for _, arg := range args {
		if _, dup := byName[arg.Name]; dup {
			return InstanceType{}, errors.DuplicateArg(arg.Name)
		}
		byName[arg.Name] = arg.Type
	}

	for name, want := range mod.Imports {
		got, ok := byName[name]
		if !ok {
			return InstanceType{}, errors.MissingImport(name)
		}
		if !defSubtype(got, want) {
			return InstanceType{}, errors.Subtype(name)
		}
	}

	return InstanceType{Exports: mod.Exports}, nil
}

// tupleType forms an instance type directly from named definitions.
// Names are the instance's export names and must be unique.
func tupleType(args []NamedArg) (InstanceType, error) {
	exports := make(map[string]DefType, len(args))
	for _, arg := range args {
		if _, dup := exports[arg.Name]; dup {
			return InstanceType{}, errors.DuplicateName(errors.PhaseValidate, "tuple", arg.Name)
		}
		exports[arg.Name] = arg.Type
	}
	return InstanceType{Exports: exports}, nil
}
