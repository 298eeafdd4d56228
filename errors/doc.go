// Package errors provides structured error types for the module-linking validator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the lexical definition path and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindKindMismatch).
//		Path("module[1]", "alias[0]").
//		Detail("expected func, found memory").
//		Build()
//
// Or use convenience constructors for the validation taxonomy:
//
//	err := errors.UnboundIndex(errors.PhaseValidate, "instance", 3, 1)
//	err := errors.MissingImport("libc")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
