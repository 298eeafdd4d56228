package linking

import "testing"

func inst(exports map[string]DefType) InstanceType {
	return InstanceType{Exports: exports}
}

func mod(imports, exports map[string]DefType) ModuleType {
	return ModuleType{Imports: imports, Exports: exports}
}

var voidFunc = FuncType{}

func TestInstanceSubtype(t *testing.T) {
	tests := []struct {
		name string
		a    InstanceType
		b    InstanceType
		want bool
	}{
		{
			name: "empty is subtype of empty",
			a:    inst(nil),
			b:    inst(nil),
			want: true,
		},
		{
			name: "extra export is ignored",
			a:    inst(map[string]DefType{"": voidFunc}),
			b:    inst(nil),
			want: true,
		},
		{
			name: "missing export fails",
			a:    inst(nil),
			b:    inst(map[string]DefType{"": voidFunc}),
			want: false,
		},
		{
			name: "nested instance covariant",
			a:    inst(map[string]DefType{"": inst(map[string]DefType{"e": voidFunc})}),
			b:    inst(map[string]DefType{"": inst(nil)}),
			want: true,
		},
		{
			name: "nested instance missing inner export",
			a:    inst(map[string]DefType{"": inst(nil)}),
			b:    inst(map[string]DefType{"": inst(map[string]DefType{"e": voidFunc})}),
			want: false,
		},
		{
			name: "leaf kinds compare by invariant equality",
			a:    inst(map[string]DefType{"f": FuncType{Params: []ValType{ValI32}}}),
			b:    inst(map[string]DefType{"f": FuncType{Params: []ValType{ValI64}}}),
			want: false,
		},
		{
			name: "kind mismatch fails",
			a:    inst(map[string]DefType{"m": MemoryType{Limits: Limits{Min: 1}}}),
			b:    inst(map[string]DefType{"m": voidFunc}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InstanceSubtype(tt.a, tt.b); got != tt.want {
				t.Errorf("InstanceSubtype = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModuleSubtype(t *testing.T) {
	tests := []struct {
		name string
		a    ModuleType
		b    ModuleType
		want bool
	}{
		{
			name: "empty is subtype of empty",
			a:    mod(nil, nil),
			b:    mod(nil, nil),
			want: true,
		},
		{
			name: "needing fewer imports is fine",
			a:    mod(nil, nil),
			b:    mod(map[string]DefType{"": inst(nil)}, nil),
			want: true,
		},
		{
			name: "needing more imports fails",
			a:    mod(map[string]DefType{"": inst(nil)}, nil),
			b:    mod(nil, nil),
			want: false,
		},
		{
			name: "weaker import requirement is fine",
			a:    mod(map[string]DefType{"": inst(nil)}, nil),
			b:    mod(map[string]DefType{"": inst(map[string]DefType{"e": voidFunc})}, nil),
			want: true,
		},
		{
			name: "stronger import requirement fails",
			a:    mod(map[string]DefType{"": inst(map[string]DefType{"e": voidFunc})}, nil),
			b:    mod(map[string]DefType{"": inst(nil)}, nil),
			want: false,
		},
		{
			name: "exports covariant",
			a:    mod(nil, map[string]DefType{"f": voidFunc, "g": voidFunc}),
			b:    mod(nil, map[string]DefType{"f": voidFunc}),
			want: true,
		},
		{
			name: "missing export fails",
			a:    mod(nil, nil),
			b:    mod(nil, map[string]DefType{"f": voidFunc}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModuleSubtype(tt.a, tt.b); got != tt.want {
				t.Errorf("ModuleSubtype = %v, want %v", got, tt.want)
			}
		})
	}
}

// sampleInstances is a small universe used by the relation property tests
func sampleInstances() []InstanceType {
	max := uint32(8)
	return []InstanceType{
		inst(nil),
		inst(map[string]DefType{"": voidFunc}),
		inst(map[string]DefType{"f": FuncType{Params: []ValType{ValI32}, Results: []ValType{ValI64}}}),
		inst(map[string]DefType{"m": MemoryType{Limits: Limits{Min: 1, Max: &max}}}),
		inst(map[string]DefType{"g": GlobalType{Val: ValF64, Mutable: true}}),
		inst(map[string]DefType{"t": TableType{Elem: RefFunc, Limits: Limits{Min: 0}}}),
		inst(map[string]DefType{"": inst(map[string]DefType{"e": voidFunc})}),
		inst(map[string]DefType{"": inst(nil), "f": voidFunc}),
	}
}

func sampleModules() []ModuleType {
	mods := []ModuleType{mod(nil, nil)}
	for _, i := range sampleInstances() {
		mods = append(mods,
			mod(map[string]DefType{"dep": i}, nil),
			mod(nil, map[string]DefType{"out": i}),
			mod(map[string]DefType{"dep": i}, map[string]DefType{"out": i}),
		)
	}
	return mods
}

func TestInstanceSubtypeReflexive(t *testing.T) {
	for i, it := range sampleInstances() {
		if !InstanceSubtype(it, it) {
			t.Errorf("instance %d: not reflexive", i)
		}
	}
}

func TestModuleSubtypeReflexive(t *testing.T) {
	for i, mt := range sampleModules() {
		if !ModuleSubtype(mt, mt) {
			t.Errorf("module %d: not reflexive", i)
		}
	}
}

func TestInstanceSubtypeTransitive(t *testing.T) {
	universe := sampleInstances()
	for i, a := range universe {
		for j, b := range universe {
			if !InstanceSubtype(a, b) {
				continue
			}
			for k, c := range universe {
				if InstanceSubtype(b, c) && !InstanceSubtype(a, c) {
					t.Errorf("instances %d ≤ %d ≤ %d but not %d ≤ %d", i, j, k, i, k)
				}
			}
		}
	}
}

func TestModuleSubtypeTransitive(t *testing.T) {
	universe := sampleModules()
	for i, a := range universe {
		for j, b := range universe {
			if !ModuleSubtype(a, b) {
				continue
			}
			for k, c := range universe {
				if ModuleSubtype(b, c) && !ModuleSubtype(a, c) {
					t.Errorf("modules %d ≤ %d ≤ %d but not %d ≤ %d", i, j, k, i, k)
				}
			}
		}
	}
}

func TestExportMonotonicity(t *testing.T) {
	// Adding an export to the subtype side never breaks the relation.
	b := inst(map[string]DefType{"f": voidFunc})
	a := inst(map[string]DefType{"f": voidFunc})
	if !InstanceSubtype(a, b) {
		t.Fatal("baseline relation should hold")
	}

	grown := inst(map[string]DefType{"f": voidFunc, "extra": MemoryType{Limits: Limits{Min: 1}}})
	if !InstanceSubtype(grown, b) {
		t.Error("adding an export broke the subtype relation")
	}
}

func TestImportAntitonicity(t *testing.T) {
	// Removing an import from the subtype side never breaks the relation.
	super := mod(map[string]DefType{"a": inst(nil), "b": inst(nil)}, nil)
	sub := mod(map[string]DefType{"a": inst(nil), "b": inst(nil)}, nil)
	if !ModuleSubtype(sub, super) {
		t.Fatal("baseline relation should hold")
	}

	shrunk := mod(map[string]DefType{"a": inst(nil)}, nil)
	if !ModuleSubtype(shrunk, super) {
		t.Error("removing an import broke the subtype relation")
	}
}
