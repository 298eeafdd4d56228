// Package modulelinking provides a type system and validator for the
// WebAssembly module-linking proposal: first-class modules and instances,
// two-level imports collapsed into single-level instance imports, aliases
// into enclosing modules and instance exports, and structural subtyping
// over module and instance types.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	module-linking/
//	├── linking/         Index spaces, scopes, aliases, subtyping, the validator
//	├── core/            Core wasm module typing backed by wazero
//	├── stream/          JSON interchange for definition sequences
//	├── version/         Versioned-import name conventions (libc-1.0.0)
//	├── errors/          Structured error types for debugging
//	└── cmd/lint/        CLI and TUI over the validator
//
// # Quick Start
//
// Validate a module's definition sequence and read back its type:
//
//	mt, err := linking.ValidateModule(defs, nil)
//	if err != nil {
//		// a structured *errors.Error with phase, kind, and path
//	}
//	for name, ty := range mt.Exports {
//		fmt.Println(name, ty.Kind())
//	}
//
// Check whether one module can stand in for another, and simulate an
// instantiation:
//
//	if linking.ModuleSubtype(mt, required) {
//		inst, err := linking.Instantiate(required, args)
//		...
//	}
package modulelinking
