package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate    Phase = "validate"    // module definition sequence validation
	PhaseInstantiate Phase = "instantiate" // instantiation argument matching
	PhaseDecode      Phase = "decode"      // definition stream decoding
	PhaseCore        Phase = "core"        // core module typing
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateName Kind = "duplicate_name" // two imports or two exports share a name
	KindUnboundIndex  Kind = "unbound_index"  // index not yet present in its space
	KindKindMismatch  Kind = "kind_mismatch"  // reference resolves to the wrong kind
	KindSubtype       Kind = "subtype"        // argument type is not a subtype of the import type
	KindMissingImport Kind = "missing_import" // no argument supplied for a declared import
	KindDuplicateArg  Kind = "duplicate_arg"  // instantiation argument name repeated
	KindAliasDepth    Kind = "alias_depth"    // outer alias depth exceeds enclosing scopes
	KindUnboundExport Kind = "unbound_export" // instance has no export with that name
	KindInvalidData   Kind = "invalid_data"   // malformed input
)

// Error is the structured error type used throughout the validator.
// Path records the lexical position of the failing definition, outermost
// element first (e.g. ["module[2]", "instance[0]"]).
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the definition path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the validation taxonomy

// DuplicateName reports a name already taken among a module's imports,
// exports, or tuple fields. side is "import", "export" or "tuple".
func DuplicateName(phase Phase, side, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("duplicate %s name %q", side, name),
	}
}

// UnboundIndex reports a reference to an index not yet present in the
// named kind's space. length is the space's length at the time of the call.
func UnboundIndex(phase Phase, kind string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnboundIndex,
		Detail: fmt.Sprintf("%s index %d out of range (space has %d)", kind, index, length),
	}
}

// KindMismatch reports a reference resolving to a definition of the wrong kind
func KindMismatch(phase Phase, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKindMismatch,
		Detail: fmt.Sprintf("expected %s, found %s", want, got),
	}
}

// Subtype reports an instantiation argument failing the subtype check
func Subtype(name string) *Error {
	return &Error{
		Phase:  PhaseInstantiate,
		Kind:   KindSubtype,
		Detail: fmt.Sprintf("argument %q is not a subtype of the declared import type", name),
	}
}

// MissingImport reports a declared import with no matching argument
func MissingImport(name string) *Error {
	return &Error{
		Phase:  PhaseInstantiate,
		Kind:   KindMissingImport,
		Detail: fmt.Sprintf("no argument supplied for import %q", name),
	}
}

// DuplicateArg reports a repeated name in an instantiation argument list
func DuplicateArg(name string) *Error {
	return &Error{
		Phase:  PhaseInstantiate,
		Kind:   KindDuplicateArg,
		Detail: fmt.Sprintf("argument name %q repeated", name),
	}
}

// AliasDepth reports an outer alias whose depth count exceeds the number
// of enclosing scopes.
func AliasDepth(count, depth int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindAliasDepth,
		Detail: fmt.Sprintf("outer alias depth %d exceeds %d enclosing scope(s)", count, depth),
	}
}

// UnboundExport reports an instance-export alias naming an absent export
func UnboundExport(name string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnboundExport,
		Detail: fmt.Sprintf("instance has no export %q", name),
	}
}

// InvalidData reports malformed input
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath prepends a path element to err when it is a structured *Error;
// other errors are returned unchanged. The orchestrator uses this to record
// the nesting position of a failing definition as the failure propagates.
func WithPath(err error, elem string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	out := *e
	out.Path = append([]string{elem}, e.Path...)
	return &out
}
