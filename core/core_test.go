package core

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/module-linking/errors"
	"github.com/wippyai/module-linking/linking"
)

// (module (func (export "f")))
var exportOnlyWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic + version
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type: () -> ()
	0x03, 0x02, 0x01, 0x00, // func: one func of type 0
	0x07, 0x05, 0x01, 0x01, 0x66, 0x00, 0x00, // export "f" (func 0)
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b, // code: one empty body
}

// (module (import "env" "g" (func)) (memory (export "mem") 1))
var importExportWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type: () -> ()
	0x02, 0x09, 0x01, 0x03, 0x65, 0x6e, 0x76, 0x01, 0x67, 0x00, 0x00, // import "env" "g" (func 0)
	0x05, 0x03, 0x01, 0x00, 0x01, // memory: min 1, no max
	0x07, 0x07, 0x01, 0x03, 0x6d, 0x65, 0x6d, 0x02, 0x00, // export "mem" (memory 0)
}

func TestModuleTypeExports(t *testing.T) {
	mt, err := ModuleType(context.Background(), exportOnlyWasm)
	if err != nil {
		t.Fatalf("ModuleType: %v", err)
	}

	if len(mt.Imports) != 0 {
		t.Errorf("imports = %v, want none", mt.Imports)
	}
	fn, ok := mt.Exports["f"].(linking.FuncType)
	if !ok {
		t.Fatalf("export f = %T, want FuncType", mt.Exports["f"])
	}
	if len(fn.Params) != 0 || len(fn.Results) != 0 {
		t.Errorf("export f = %v, want nullary", fn)
	}
}

func TestModuleTypeImports(t *testing.T) {
	mt, err := ModuleType(context.Background(), importExportWasm)
	if err != nil {
		t.Fatalf("ModuleType: %v", err)
	}

	if _, ok := mt.Imports["env.g"].(linking.FuncType); !ok {
		t.Errorf("imports = %v, want env.g as func", mt.Imports)
	}
	mem, ok := mt.Exports["mem"].(linking.MemoryType)
	if !ok {
		t.Fatalf("export mem = %T, want MemoryType", mt.Exports["mem"])
	}
	if mem.Limits.Min != 1 || mem.Limits.Max != nil {
		t.Errorf("mem limits = %+v, want min 1, no max", mem.Limits)
	}
}

func TestModuleTypeFeedsInstantiate(t *testing.T) {
	lib, err := ModuleType(context.Background(), exportOnlyWasm)
	if err != nil {
		t.Fatalf("ModuleType: %v", err)
	}

	// A consumer importing the core module's exports as an instance.
	consumer := linking.ModuleType{
		Imports: map[string]linking.DefType{
			"lib": linking.InstanceType{Exports: lib.Exports},
		},
	}
	if _, err := linking.Instantiate(consumer, []linking.NamedArg{
		{Name: "lib", Type: linking.InstanceType{Exports: lib.Exports}},
	}); err != nil {
		t.Errorf("Instantiate with core-derived types: %v", err)
	}
}

func TestModuleTypeInvalidBinary(t *testing.T) {
	_, err := ModuleType(context.Background(), []byte{0x00, 0x61, 0x73})
	if err == nil {
		t.Fatal("expected error for truncated binary")
	}
	if !stderrors.Is(err, errors.InvalidData(errors.PhaseCore, "")) {
		t.Errorf("err = %v, want core invalid_data", err)
	}
}
