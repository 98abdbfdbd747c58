package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in call processing the error occurred
type Phase string

const (
	PhaseSettings  Phase = "settings"  // configuration loading
	PhaseConstruct Phase = "construct" // scope object construction
	PhaseValidate  Phase = "validate"  // pre-call validation
	PhaseRecord    Phase = "record"    // pre/post call recording
	PhaseDispatch  Phase = "dispatch"  // forwarding to the implementation
	PhaseWrap      Phase = "wrap"      // handle wrapping/unwrapping
	PhaseTeardown  Phase = "teardown"  // scope destruction
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle Kind = "invalid_handle"
	KindVetoed        Kind = "vetoed"
	KindInitFailure   Kind = "init_failure"
	KindExhausted     Kind = "exhausted"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindUnsupported   Kind = "unsupported"
)

// Error is the structured error type used throughout the chassis
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Entry     string // entry point name, if call-scoped
	Component string // validation component that raised it, if any
	Handle    uint64 // offending virtual handle, if any
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Entry != "" {
		b.WriteString(" in ")
		b.WriteString(e.Entry)
	}
	if e.Component != "" {
		b.WriteString(" (")
		b.WriteString(e.Component)
		b.WriteByte(')')
	}
	if e.Handle != 0 {
		b.WriteString(" handle 0x")
		b.WriteString(strconv.FormatUint(e.Handle, 16))
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

// Entry sets the entry point name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Component sets the originating validation component
func (b *Builder) Component(name string) *Builder {
	b.err.Component = name
	return b
}

// Handle sets the offending virtual handle
func (b *Builder) Handle(id uint64) *Builder {
	b.err.Handle = id
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

// Convenience constructors for common error patterns

// InvalidHandle creates an invalid-handle usage error
func InvalidHandle(phase Phase, entry string, id uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Entry:  entry,
		Handle: id,
		Detail: "handle was never issued or has been erased",
	}
}

// Veto creates the error a component returns from its pre-call-validate
// phase to stop the call from reaching the implementation
func Veto(component, entry, detail string) *Error {
	return &Error{
		Phase:     PhaseValidate,
		Kind:      KindVetoed,
		Entry:     entry,
		Component: component,
		Detail:    detail,
	}
}

// InitFailure creates a component initialization error
func InitFailure(component string, cause error) *Error {
	return &Error{
		Phase:     PhaseConstruct,
		Kind:      KindInitFailure,
		Component: component,
		Detail:    "component failed to initialize",
		Cause:     cause,
	}
}

// Exhausted creates a resource exhaustion error. Exhaustion of chassis
// bookkeeping has no recovery path; callers treat it as fatal.
func Exhausted(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindExhausted,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// TeardownFailed wraps an error surfaced while tearing a scope down
func TeardownFailed(component string, cause error) *Error {
	return &Error{
		Phase:     PhaseTeardown,
		Kind:      KindInitFailure,
		Component: component,
		Detail:    "component teardown failed",
		Cause:     cause,
	}
}
