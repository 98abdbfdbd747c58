// Package errors provides structured error types for the layer chassis.
//
// Errors are categorized by Phase (where in call processing the error
// occurred) and Kind (error category). The Error type includes rich
// context: the entry point, the offending handle, the reporting component,
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindInvalidHandle).
//		Entry("CreateBuffer").
//		Handle(id).
//		Detail("buffer create info references a destroyed swapchain").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidHandle(errors.PhaseDispatch, "DestroyBuffer", id)
//	err := errors.Veto("threading", "CreateBuffer", "pool accessed from two threads")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
