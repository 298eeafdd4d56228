// Package core types core modules by delegating to the wazero engine.
//
// The linking validator treats core validation as an external, already
// correct subroutine. This package is that collaborator: it compiles a core
// wasm binary with wazero and reads the compiled module's import and export
// signatures back as linking definition types, so embedding hosts can feed
// real core modules into module-type checks.
package core

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/module-linking/errors"
	"github.com/wippyai/module-linking/linking"
)

// ModuleType compiles a core wasm binary and extracts its module type.
// wazero surfaces function and memory definitions; table and global
// imports are not visible through its public compiled-module API.
func ModuleType(ctx context.Context, wasm []byte) (linking.ModuleType, error) {
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return linking.ModuleType{}, errors.Wrap(errors.PhaseCore, errors.KindInvalidData, err, "compile core module")
	}
	defer compiled.Close(ctx)

	imports := make(map[string]linking.DefType)
	for _, fn := range compiled.ImportedFunctions() {
		mod, name, _ := fn.Import()
		imports[importName(mod, name)] = funcType(fn)
	}
	for _, mem := range compiled.ImportedMemories() {
		mod, name, _ := mem.Import()
		imports[importName(mod, name)] = memoryType(mem)
	}

	exports := make(map[string]linking.DefType)
	for name, fn := range compiled.ExportedFunctions() {
		exports[name] = funcType(fn)
	}
	for name, mem := range compiled.ExportedMemories() {
		exports[name] = memoryType(mem)
	}

	return linking.ModuleType{Imports: imports, Exports: exports}, nil
}

// importName joins the core two-level import name into the single-level
// form used by module types.
func importName(module, name string) string {
	if name == "" {
		return module
	}
	return module + "." + name
}

func funcType(def api.FunctionDefinition) linking.FuncType {
	return linking.FuncType{
		Params:  valTypes(def.ParamTypes()),
		Results: valTypes(def.ResultTypes()),
	}
}

// valTypes converts engine value types. The byte encodings match the
// binary format on both sides, so this is a straight cast per element.
func valTypes(vts []api.ValueType) []linking.ValType {
	if len(vts) == 0 {
		return nil
	}
	out := make([]linking.ValType, len(vts))
	for i, vt := range vts {
		out[i] = linking.ValType(vt)
	}
	return out
}

func memoryType(def api.MemoryDefinition) linking.MemoryType {
	limits := linking.Limits{Min: def.Min()}
	if max, ok := def.Max(); ok {
		limits.Max = &max
	}
	return linking.MemoryType{Limits: limits}
}
