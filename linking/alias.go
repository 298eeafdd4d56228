package linking

import (
	"github.com/wippyai/module-linking/errors"
)

// aliasInstanceExport injects one export of an already-created instance
// into the current scope. The lookup uses the export map recorded when the
// instance was created, never a re-derived type.
func (v *validator) aliasInstanceExport(d ExportAliasDecl) error {
	def, err := v.scope.Resolve(KindInstance, d.Instance)
	if err != nil {
		return err
	}
	inst := def.(InstanceType)

	export, ok := inst.Exports[d.Name]
	if !ok {
		return errors.UnboundExport(d.Name)
	}
	if export.Kind() != d.Kind {
		return errors.KindMismatch(errors.PhaseValidate, d.Kind.String(), export.Kind().String())
	}

	v.scope.Declare(d.Kind, export)
	return nil
}

// aliasOuter injects a definition from an enclosing scope. Only module and
// type definitions may cross scope boundaries: the stateful kinds cannot be
// duplicated into a nested module's copies.
func (v *validator) aliasOuter(d OuterAliasDecl) error {
	if d.Kind != KindModule && d.Kind != KindType {
		return errors.KindMismatch(errors.PhaseValidate, "module or type", d.Kind.String())
	}

	def, err := v.scope.ResolveOuter(d.Count, d.Kind, d.Index)
	if err != nil {
		return err
	}

	v.scope.Declare(d.Kind, def)
	return nil
}
