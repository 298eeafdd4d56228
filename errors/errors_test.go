package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindKindMismatch,
				Path:   []string{"module[2]", "alias[0]"},
				Detail: "expected func, found memory",
			},
			contains: []string{"[validate]", "kind_mismatch", "module[2].alias[0]", "expected func, found memory"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInstantiate,
				Kind:  KindMissingImport,
			},
			contains: []string{"[instantiate]", "missing_import"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidData,
				Detail: "bad definition tag",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[decode]", "invalid_data", "bad definition tag", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseValidate,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseValidate,
		Kind:  KindUnboundIndex,
		Path:  []string{"module[0]"},
	}

	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindUnboundIndex}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseInstantiate, Kind: KindUnboundIndex}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseValidate, Kind: KindAliasDepth}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseValidate, Kind: KindUnboundIndex}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindKindMismatch).
		Path("module[1]", "export[2]").
		Cause(cause).
		Detail("expected %s, found %s", "func", "global").
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindKindMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindKindMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "module[1]" || err.Path[1] != "export[2]" {
		t.Errorf("Path = %v, want [module[1] export[2]]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected func, found global" {
		t.Errorf("Detail = %v, want 'expected func, found global'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("DuplicateName", func(t *testing.T) {
		err := DuplicateName(PhaseValidate, "export", "run")
		if err.Kind != KindDuplicateName {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateName)
		}
		if !strings.Contains(err.Detail, `"run"`) {
			t.Errorf("Detail = %v, should contain name", err.Detail)
		}
	})

	t.Run("UnboundIndex", func(t *testing.T) {
		err := UnboundIndex(PhaseValidate, "instance", 3, 1)
		if err.Kind != KindUnboundIndex {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnboundIndex)
		}
		if !strings.Contains(err.Detail, "3") || !strings.Contains(err.Detail, "instance") {
			t.Errorf("Detail = %v, should contain index and kind", err.Detail)
		}
	})

	t.Run("KindMismatch", func(t *testing.T) {
		err := KindMismatch(PhaseValidate, "func", "memory")
		if err.Kind != KindKindMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindKindMismatch)
		}
	})

	t.Run("Subtype", func(t *testing.T) {
		err := Subtype("libc")
		if err.Kind != KindSubtype || err.Phase != PhaseInstantiate {
			t.Errorf("got %v/%v, want instantiate/subtype", err.Phase, err.Kind)
		}
	})

	t.Run("MissingImport", func(t *testing.T) {
		err := MissingImport("g")
		if err.Kind != KindMissingImport {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingImport)
		}
	})

	t.Run("DuplicateArg", func(t *testing.T) {
		err := DuplicateArg("libc")
		if err.Kind != KindDuplicateArg {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateArg)
		}
	})

	t.Run("AliasDepth", func(t *testing.T) {
		err := AliasDepth(2, 1)
		if err.Kind != KindAliasDepth {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAliasDepth)
		}
		if !strings.Contains(err.Detail, "2") || !strings.Contains(err.Detail, "1") {
			t.Errorf("Detail = %v, should contain depth and chain length", err.Detail)
		}
	})

	t.Run("UnboundExport", func(t *testing.T) {
		err := UnboundExport("malloc")
		if err.Kind != KindUnboundExport {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnboundExport)
		}
	})
}

func TestWithPath(t *testing.T) {
	base := UnboundIndex(PhaseValidate, "func", 1, 0)
	wrapped := WithPath(WithPath(base, "instance[0]"), "module[3]")

	e, ok := wrapped.(*Error)
	if !ok {
		t.Fatalf("WithPath returned %T, want *Error", wrapped)
	}
	if len(e.Path) != 2 || e.Path[0] != "module[3]" || e.Path[1] != "instance[0]" {
		t.Errorf("Path = %v, want [module[3] instance[0]]", e.Path)
	}
	if len(base.Path) != 0 {
		t.Errorf("WithPath mutated the original error path: %v", base.Path)
	}

	plain := errors.New("plain")
	if WithPath(plain, "module[0]") != plain {
		t.Error("WithPath should return non-structured errors unchanged")
	}
}
