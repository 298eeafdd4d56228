package linking

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/module-linking/errors"
)

// validatorState tracks a scope's progress through its definition sequence
type validatorState byte

const (
	stateEmpty validatorState = iota
	stateAccumulating
	stateFrozen // terminal, success
	stateFailed // terminal, first error wins
)

type validator struct {
	scope *Scope
	state validatorState
}

// ValidateModule validates a definition sequence in declaration order and
// returns the module's type, or the first validation error. parent is the
// lexically enclosing scope, nil for a top-level module.
//
// Validation is all-or-nothing: any error aborts the sequence immediately
// and no partial module type is produced.
func ValidateModule(defs []Definition, parent *Scope) (ModuleType, error) {
	v := &validator{scope: NewScope(parent), state: stateEmpty}

	for i, def := range defs {
		v.state = stateAccumulating
		if err := v.define(def); err != nil {
			v.state = stateFailed
			Logger().Debug("validation failed",
				zap.Int("definition", i),
				zap.Error(err))
			return ModuleType{}, err
		}
	}

	v.state = stateFrozen
	mt := v.scope.Type()
	Logger().Debug("module frozen",
		zap.Int("definitions", len(defs)),
		zap.Int("imports", len(mt.Imports)),
		zap.Int("exports", len(mt.Exports)))
	return mt, nil
}

// ValidateModules validates independent top-level definition sequences
// concurrently. Sibling modules cannot reference each other, so each runs
// on its own goroutine; errors are collected per sequence rather than
// failing fast across siblings.
func ValidateModules(seqs [][]Definition) ([]ModuleType, []error) {
	types := make([]ModuleType, len(seqs))
	errs := make([]error, len(seqs))

	var wg sync.WaitGroup
	for i, defs := range seqs {
		i, defs := i, defs
		wg.Add(1)
		go func() {
			defer wg.Done()
			types[i], errs[i] = ValidateModule(defs, nil)
		}()
	}
	wg.Wait()

	return types, errs
}

// define consumes one definition, growing the scope's index spaces
func (v *validator) define(def Definition) error {
	switch d := def.(type) {
	case TypeDecl:
		v.scope.Declare(KindType, d.Type)
		return nil

	case ImportDecl:
		return v.scope.DeclareImport(d.Name, d.Type)

	case ModuleDecl:
		ord := v.scope.Len(KindModule)
		mt, err := ValidateModule(d.Defs, v.scope)
		if err != nil {
			return errors.WithPath(err, fmt.Sprintf("module[%d]", ord))
		}
		v.scope.Declare(KindModule, mt)
		return nil

	case InstantiateDecl:
		mod, err := v.scope.Resolve(KindModule, d.Module)
		if err != nil {
			return err
		}
		args, err := v.resolveArgs(d.Args)
		if err != nil {
			return err
		}
		// The module space only ever holds module types.
		inst, err := Instantiate(mod.(ModuleType), args)
		if err != nil {
			return err
		}
		v.scope.Declare(KindInstance, inst)
		return nil

	case TupleDecl:
		args, err := v.resolveArgs(d.Args)
		if err != nil {
			return err
		}
		inst, err := tupleType(args)
		if err != nil {
			return err
		}
		v.scope.Declare(KindInstance, inst)
		return nil

	case ExportAliasDecl:
		return v.aliasInstanceExport(d)

	case OuterAliasDecl:
		return v.aliasOuter(d)

	case ExportDecl:
		target, err := v.scope.Resolve(d.Kind, d.Index)
		if err != nil {
			return err
		}
		return v.scope.AddExport(d.Name, target)

	default:
		return errors.InvalidData(errors.PhaseValidate, fmt.Sprintf("unsupported definition %T", def))
	}
}

// resolveArgs resolves instantiation arguments against the current scope.
// Bounds are checked here, at reference time, like every other resolution.
func (v *validator) resolveArgs(args []InstanceArg) ([]NamedArg, error) {
	resolved := make([]NamedArg, len(args))
	for i, arg := range args {
		def, err := v.scope.Resolve(arg.Kind, arg.Index)
		if err != nil {
			return nil, err
		}
		resolved[i] = NamedArg{Name: arg.Name, Type: def}
	}
	return resolved, nil
}
